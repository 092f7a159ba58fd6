package service

import (
	"crypto/rand"
	"encoding/hex"
)

// newID returns a 32-char random hex identifier, used for both accounts and
// posts.
func newID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
