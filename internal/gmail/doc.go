// Package gmail implements the mail side of the sync pipeline: the
// wire codec, the message model, and the provider gateway.
//
// The package covers three concerns:
//   - Wire codec: base64url encode/decode and recursive multipart body
//     extraction from the provider's payload tree.
//   - Message model: parsing raw API messages into immutable domain
//     Messages, with mandatory Subject/From/Message-ID headers and
//     tolerant timestamp handling.
//   - Gateway: the wire-exact REST calls (thread listing, full-format
//     thread fetch, raw MIME send) plus the inbox assembly algorithm
//     that reduces each thread to its latest parseable message.
//
// Authentication is an opaque bearer token supplied by the session
// layer; a client without a token treats every operation as a silent
// no-op so a signed-out state never produces errors.
//
// Example usage:
//
//	client := gmail.NewClient(token)
//	rows, err := client.FetchInbox(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range rows {
//	    fmt.Println(row.Subject, row.From)
//	}
package gmail
