package session

import (
	"encoding/json"
	"fmt"
	"time"
)

// The durable record has no stored version field (the wire format predates
// versioning), so the version is inferred from shape:
//
//	v0: legacy key names, "password" and/or "qrData"
//	v1: current key names, but no "notifications" array
//	v2: current shape
//
// Decoding runs the migration steps from the detected version up to
// currentVersion as an ordered pipeline; each step transforms the raw record
// in place. A migrated record is re-persisted by the caller.
const currentVersion = 2

type rawRecord map[string]json.RawMessage

// migrations[i] upgrades a version-i record to version i+1.
var migrations = []func(rec rawRecord, now time.Time) error{
	migrateLegacyKeys,
	backfillInbox,
}

func detectVersion(rec rawRecord) int {
	if _, ok := rec["password"]; ok {
		return 0
	}
	if _, ok := rec["qrData"]; ok {
		return 0
	}
	if _, ok := rec["notifications"]; !ok {
		return 1
	}
	return currentVersion
}

// migrateLegacyKeys renames password -> credentialSecret and
// qrData -> qrToken, keeping the values verbatim. Current-name keys win if
// both are somehow present.
func migrateLegacyKeys(rec rawRecord, _ time.Time) error {
	if v, ok := rec["password"]; ok {
		if _, exists := rec["credentialSecret"]; !exists {
			rec["credentialSecret"] = v
		}
		delete(rec, "password")
	}
	if v, ok := rec["qrData"]; ok {
		if _, exists := rec["qrToken"]; !exists {
			rec["qrToken"] = v
		}
		delete(rec, "qrData")
	}
	return nil
}

// backfillInbox inserts a single synthesized welcome notification for records
// persisted before the inbox existed.
func backfillInbox(rec rawRecord, now time.Time) error {
	if _, ok := rec["notifications"]; ok {
		return nil
	}
	var name string
	if raw, ok := rec["name"]; ok {
		if err := json.Unmarshal(raw, &name); err != nil {
			return fmt.Errorf("%w: bad name field: %v", ErrCorruptRecord, err)
		}
	}
	inbox, err := json.Marshal([]Notification{welcomeBackNotification(name, now)})
	if err != nil {
		return err
	}
	rec["notifications"] = inbox
	return nil
}

// decodeUser parses a persisted payload, applying schema migrations as
// needed. The second result reports whether the record was upgraded and
// should be re-persisted. Malformed payloads return an error wrapping
// ErrCorruptRecord.
func decodeUser(raw []byte, now time.Time) (*User, bool, error) {
	var rec rawRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	version := detectVersion(rec)
	for v := version; v < currentVersion; v++ {
		if err := migrations[v](rec, now); err != nil {
			return nil, false, err
		}
	}

	normalized, err := json.Marshal(rec)
	if err != nil {
		return nil, false, err
	}
	var u User
	if err := json.Unmarshal(normalized, &u); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if u.ID == "" || u.Name == "" {
		return nil, false, fmt.Errorf("%w: missing id or name", ErrCorruptRecord)
	}
	return &u, version != currentVersion, nil
}
