package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaNow = time.UnixMilli(1_700_000_000_000)

func TestDecodeUser_CurrentShape(t *testing.T) {
	raw := []byte(`{
		"id": "42",
		"name": "Alice",
		"credentialSecret": "pw",
		"qrToken": "user:Alice:1",
		"notifications": [
			{"id":"1","title":"T","message":"M","timestamp":100,"read":true}
		]
	}`)

	u, migrated, err := decodeUser(raw, schemaNow)
	require.NoError(t, err)
	assert.False(t, migrated)
	assert.Equal(t, "42", u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "pw", u.CredentialSecret)
	assert.Equal(t, "user:Alice:1", u.QRToken)
	require.Len(t, u.Notifications, 1)
	assert.True(t, u.Notifications[0].Read)
}

func TestDecodeUser_LegacyKeysAreRenamed(t *testing.T) {
	raw := []byte(`{"id":"42","name":"Alice","password":"pw","qrData":"user:Alice:1","notifications":[]}`)

	u, migrated, err := decodeUser(raw, schemaNow)
	require.NoError(t, err)
	assert.True(t, migrated)
	assert.Equal(t, "pw", u.CredentialSecret)
	assert.Equal(t, "user:Alice:1", u.QRToken)
}

func TestDecodeUser_MissingInboxIsBackfilled(t *testing.T) {
	raw := []byte(`{"id":"42","name":"Alice","credentialSecret":"pw","qrToken":"x"}`)

	u, migrated, err := decodeUser(raw, schemaNow)
	require.NoError(t, err)
	assert.True(t, migrated)
	require.Len(t, u.Notifications, 1)
	n := u.Notifications[0]
	assert.Equal(t, "1", n.ID)
	assert.Equal(t, "Welcome!", n.Title)
	assert.Equal(t, "Welcome back, Alice", n.Message)
	assert.Equal(t, schemaNow.UnixMilli(), n.Timestamp)
	assert.False(t, n.Read)
}

func TestDecodeUser_LegacyKeysAndMissingInbox(t *testing.T) {
	raw := []byte(`{"id":"42","name":"Alice","password":"pw","qrData":"x"}`)

	u, migrated, err := decodeUser(raw, schemaNow)
	require.NoError(t, err)
	assert.True(t, migrated)
	assert.Equal(t, "pw", u.CredentialSecret)
	assert.Equal(t, "x", u.QRToken)
	require.Len(t, u.Notifications, 1)
}

func TestDecodeUser_CurrentNameWinsOverLegacy(t *testing.T) {
	raw := []byte(`{"id":"42","name":"A","password":"old","credentialSecret":"new","notifications":[]}`)

	u, migrated, err := decodeUser(raw, schemaNow)
	require.NoError(t, err)
	assert.True(t, migrated)
	assert.Equal(t, "new", u.CredentialSecret)
}

func TestDecodeUser_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{oops`},
		{"json but not an object", `[1,2,3]`},
		{"missing id", `{"name":"Alice","notifications":[]}`},
		{"missing name", `{"id":"42","notifications":[]}`},
		{"wrong field type", `{"id":"42","name":"A","notifications":"nope"}`},
		{"non-string name in legacy backfill", `{"id":"42","name":17}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := decodeUser([]byte(tc.raw), schemaNow)
			require.ErrorIs(t, err, ErrCorruptRecord)
		})
	}
}

func TestDecodeUser_RoundTripsEncodedUser(t *testing.T) {
	u := &User{
		ID:               "7",
		Name:             "Bob",
		CredentialSecret: "s",
		QRToken:          "user:Bob:9",
		Notifications:    starterInbox("Bob", schemaNow),
	}
	data, err := u.encode()
	require.NoError(t, err)

	decoded, migrated, err := decodeUser(data, schemaNow)
	require.NoError(t, err)
	assert.False(t, migrated)
	assert.Equal(t, u, decoded)
}
