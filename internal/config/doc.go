// Package config loads application configuration from a YAML file with
// environment-variable overrides. All settings are optional; the zero
// configuration yields a working client as long as credentials are
// supplied at sign-in time and via OPENAI_API_KEY.
package config
