// Package genai implements the generation gateway: prompt construction,
// chat-completion calls, and parsing of the structured JSON payloads the
// assistant embeds in its responses.
//
// Responses are expected to contain a JSON object, typically wrapped in
// triple-backtick fences; the parser locates it regardless of
// surrounding prose. A response whose payload cannot be located or does
// not match the expected shape produces a FormatError, which is a
// distinct kind from transport failures.
package genai
