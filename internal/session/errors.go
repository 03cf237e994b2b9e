package session

import "errors"

// Sentinel errors for the session package. Callers should match them with
// errors.Is; storage failures additionally carry a *storage.Error retrievable
// with errors.As.
var (
	// ErrCorruptRecord marks a persisted session payload that could not be
	// decoded even after schema migration.
	ErrCorruptRecord = errors.New("corrupt session record")

	// ErrNotSignedIn is returned by operations that require a session.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrClosed is returned once the store's write queue has been shut down.
	ErrClosed = errors.New("session store closed")
)
