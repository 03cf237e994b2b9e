// Package session owns the canonical in-memory representation of the
// signed-in identity: the single User record, its durable persistence, QR
// token issuance, and notification read state.
package session

import (
	"encoding/json"
	"time"
)

// StorageKey is the single durable record key this system uses.
const StorageKey = "@auth_user"

// Notification is one entry in the user's inbox. Timestamp is epoch
// milliseconds; IDs are unique within the owning user's inbox.
type Notification struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"read"`
}

// User is the session record. ID is assigned once at login and never changes;
// QRToken changes only via explicit regeneration. CredentialSecret is the
// value compared verbatim by local re-authentication challenges (a
// placeholder scheme, not a security boundary).
type User struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	CredentialSecret string         `json:"credentialSecret"`
	QRToken          string         `json:"qrToken"`
	Notifications    []Notification `json:"notifications"`
}

// Clone returns a deep copy. Snapshots hand clones to consumers so no caller
// can alias store-owned memory.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Notifications = make([]Notification, len(u.Notifications))
	copy(c.Notifications, u.Notifications)
	return &c
}

// UnreadCount recomputes the number of unread notifications from the
// authoritative sequence on every call; it is never cached.
func (u *User) UnreadCount() int {
	if u == nil {
		return 0
	}
	n := 0
	for _, notif := range u.Notifications {
		if !notif.Read {
			n++
		}
	}
	return n
}

// Notification returns the inbox entry with the given id, or nil.
func (u *User) Notification(id string) *Notification {
	if u == nil {
		return nil
	}
	for i := range u.Notifications {
		if u.Notifications[i].ID == id {
			return &u.Notifications[i]
		}
	}
	return nil
}

func (u *User) encode() ([]byte, error) {
	return json.Marshal(u)
}

// starterInbox is the fixed inbox every fresh login begins with: a welcome
// entry stamped now and a QR confirmation stamped five minutes earlier, both
// unread.
func starterInbox(name string, now time.Time) []Notification {
	return []Notification{
		{
			ID:        "1",
			Title:     "Welcome!",
			Message:   "Welcome to the app, " + name + "!",
			Timestamp: now.UnixMilli(),
			Read:      false,
		},
		{
			ID:        "2",
			Title:     "QR Code Generated",
			Message:   "Your QR code has been generated successfully.",
			Timestamp: now.Add(-5 * time.Minute).UnixMilli(),
			Read:      false,
		},
	}
}

// welcomeBackNotification is synthesized when a legacy record is backfilled
// with an inbox during load.
func welcomeBackNotification(name string, now time.Time) Notification {
	return Notification{
		ID:        "1",
		Title:     "Welcome!",
		Message:   "Welcome back, " + name,
		Timestamp: now.UnixMilli(),
		Read:      false,
	}
}
