package model

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// newClientID returns note-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space, plenty for
// ids that only need to be unique until the server assigns a durable one.
func newClientID() (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return "note-" + suffix, nil
}
