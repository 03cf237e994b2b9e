package cli

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
)

// reauthAttempts bounds the credential challenge before showing the QR token.
const reauthAttempts = 3

var errReauthFailed = errors.New("re-authentication failed")

// Login prompts for a name and credential, then creates the session. The
// store persists before publishing, so a failure here means nothing changed.
func (a *App) Login(ctx context.Context) error {
	if a.isSignedIn() {
		fmt.Fprintln(a.out, "Already signed in; logout first.")
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New("name must not be empty")
	}
	credential, err := getCredential("Enter password", a.out)
	if err != nil {
		return err
	}

	if err := a.store.Login(ctx, name, credential); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", name)
	return nil
}

// Logout removes the durable record and clears the session. On failure the
// session is kept, matching the store's divergence guard.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// ShowQR displays the current QR token after a credential challenge: the
// stored secret is compared verbatim against the entered value. This is the
// console analogue of the QR modal's local re-authentication prompt.
func (a *App) ShowQR(ctx context.Context) error {
	snap := a.store.Snapshot()
	if snap.User == nil {
		return errors.New("sign in first")
	}

	for attempt := 0; attempt < reauthAttempts; attempt++ {
		entered, err := getCredential("Confirm password", a.out)
		if err != nil {
			return err
		}
		if subtle.ConstantTimeCompare([]byte(entered), []byte(snap.User.CredentialSecret)) == 1 {
			fmt.Fprintf(a.out, "QR payload: %s\n", snap.User.QRToken)
			return nil
		}
		fmt.Fprintln(a.out, "Wrong password.")
	}
	return errReauthFailed
}

// Regenerate issues a fresh QR token. The new token is visible immediately;
// the durable write settles in the background.
func (a *App) Regenerate(ctx context.Context) error {
	token := a.store.RegenerateQRToken()
	if token == "" {
		return errors.New("sign in first")
	}
	fmt.Fprintf(a.out, "New QR payload: %s\n", token)
	return nil
}

// Inbox lists the notifications with read markers and relative timestamps.
func (a *App) Inbox(ctx context.Context) error {
	snap := a.store.Snapshot()
	if snap.User == nil {
		return errors.New("sign in first")
	}
	if len(snap.User.Notifications) == 0 {
		fmt.Fprintln(a.out, "Inbox is empty.")
		return nil
	}

	fmt.Fprintf(a.out, "Inbox (%d unread):\n", snap.User.UnreadCount())
	for _, n := range snap.User.Notifications {
		marker := "*"
		if n.Read {
			marker = " "
		}
		fmt.Fprintf(a.out, " %s [%s] %s: %s (%s)\n", marker, n.ID, n.Title, n.Message, relativeTime(n.Timestamp, a.now()))
	}
	return nil
}

// Read prints one notification in full and marks it read.
func (a *App) Read(ctx context.Context, id string) error {
	snap := a.store.Snapshot()
	if snap.User == nil {
		return errors.New("sign in first")
	}
	n := snap.User.Notification(id)
	if n == nil {
		return fmt.Errorf("no notification with id %q", id)
	}

	fmt.Fprintf(a.out, "%s\n%s\n(%s)\n", n.Title, n.Message, relativeTime(n.Timestamp, a.now()))
	a.store.MarkNotificationAsRead(id)
	return nil
}
