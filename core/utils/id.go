package utils

import (
	"crypto/rand"
	"encoding/base64"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet for team codes: uppercase plus digits, without 0/O/1/I which are
// easy to mistype when a runner passes the code on by word of mouth.
const teamCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateTeamCode returns the short human-readable identifier assigned to a
// team at creation, e.g. "K7KPK3".
func GenerateTeamCode() string {
	code, err := gonanoid.Generate(teamCodeAlphabet, 6)
	if err != nil {
		return ""
	}
	return code
}

// GenerateRandomString generates a cryptographically secure random string.
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to nanoid if crypto/rand fails
		id, _ := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", length)
		return id
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length]
}
