package helpers

import (
	"crypto/rand"
	"encoding/base32"
)

const confirmationCodeBytes = 8

// GenConfirmationCode generates the one-time secret mailed at
// registration and later exchanged for an access token.
func GenConfirmationCode() (string, error) {
	b := make([]byte, confirmationCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b), nil
}
