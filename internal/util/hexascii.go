package util

import (
	"encoding/hex"
	"errors"
	"strings"

	"aesecb/internal/cipher/aes128"
)

// ErrMalformedKey is returned for anything other than exactly 32 hex digits.
var ErrMalformedKey = errors.New("key must be exactly 32 hexadecimal characters")

func IsLikelyHex(s string) bool {
	s = strings.TrimSpace(strings.ReplaceAll(s, " ", ""))
	if len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// IsKeyHex reports whether s is exactly 32 characters of 0-9a-fA-F.
func IsKeyHex(s string) bool {
	if len(s) != 2*aes128.KeySize {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// ParseKey decodes a 32 digit hex key, most significant nibble first.
// Any other character, whitespace included, makes the key malformed.
func ParseKey(s string) (aes128.Key, error) {
	var k aes128.Key
	if !IsKeyHex(s) {
		return k, ErrMalformedKey
	}
	if _, err := hex.Decode(k[:], []byte(s)); err != nil {
		return k, ErrMalformedKey
	}
	return k, nil
}

func ToHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if IsLikelyHex(s) {
		return strings.ToLower(strings.ReplaceAll(s, " ", "")), nil
	}
	return hex.EncodeToString([]byte(s)), nil
}
