package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateGameID returns 128 random bits as 32 hex characters.
func GenerateGameID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic("uid: reading random bytes: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}
