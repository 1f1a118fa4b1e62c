// Package session owns the sign-in lifecycle and the in-memory mail
// state. A Session is the single mutation boundary: the credential, the
// inbox rows, the loading flag, and the last user-visible error are all
// guarded by one mutex, while provider calls run outside it. Results of
// calls that outlive the session they started in (a sign-out or a new
// sign-in happened meanwhile) are discarded, never committed.
//
// Operations on a signed-out session are silent no-ops returning empty
// results; only SignIn itself can fail on a missing credential.
package session
