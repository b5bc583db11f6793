package utils

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns the trimmed value of the environment variable key,
// or def when unset/blank.
func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// GenerateSecureToken returns a random hex string of the given byte length.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func PtrTime(t time.Time) *time.Time { return &t }
