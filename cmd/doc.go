// Package cmd implements the aireply command-line interface.
//
// Every command loads configuration, wires the mail and generation
// gateways into a session, and tries to restore a previous sign-in from
// the system keyring before running. Commands that need a signed-in
// session fail with a hint to run 'aireply login'.
package cmd
