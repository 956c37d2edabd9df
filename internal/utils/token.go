package utils

import (
	"encoding/hex"
	"errors"

	"github.com/gorilla/securecookie"
)

const tokenBytes = 32

var ErrTokenGeneration = errors.New("failed to generate random token")

// GenerateToken returns a random hex encoded token with 256 bits of entropy.
func GenerateToken() (string, error) {
	key := securecookie.GenerateRandomKey(tokenBytes)
	if key == nil {
		return "", ErrTokenGeneration
	}
	return hex.EncodeToString(key), nil
}
