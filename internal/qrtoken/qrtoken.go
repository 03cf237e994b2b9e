// Package qrtoken produces the credential string encoded into the QR symbol.
//
// The payload format is fixed by the scanning side:
//
//	user:<name>:<unix-millis>
//
// The token is not cryptographically verifiable; it only has to change on
// every explicit regeneration. Two tokens generated for the same name within
// the same millisecond are identical, an accepted low-probability collision.
package qrtoken

import (
	"strconv"
	"time"
)

// Token returns the QR payload for name at the given instant.
func Token(name string, at time.Time) string {
	return "user:" + name + ":" + strconv.FormatInt(at.UnixMilli(), 10)
}

// Generator issues tokens using an injectable clock. The zero value uses
// time.Now.
type Generator struct {
	Now func() time.Time
}

// New returns a Generator on the real clock.
func New() *Generator {
	return &Generator{Now: time.Now}
}

// Token issues a token for name at the generator's current instant.
func (g *Generator) Token(name string) string {
	now := g.Now
	if now == nil {
		now = time.Now
	}
	return Token(name, now())
}
