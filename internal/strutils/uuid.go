package strutils

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const VALID_HEX_DIGITS = "0123456789abcdefABCDEF"

const STRIPPED_UUID_LENGTH = 32

// Removes dashes, converts all characters to lowercase and formats as 8-4-4-4-12
func NormalizeUUID(id string) (string, error) {
	var stripped strings.Builder
	stripped.Grow(STRIPPED_UUID_LENGTH)

	for _, char := range id {
		if char == '-' {
			continue
		} else if strings.ContainsRune(VALID_HEX_DIGITS, char) {
			stripped.WriteRune(unicode.ToLower(char))
		} else {
			return "", fmt.Errorf("invalid character in UUID. input: '%s'", id)
		}
	}
	if stripped.Len() != STRIPPED_UUID_LENGTH {
		return "", fmt.Errorf("normalized UUID has incorrect length. input: '%s'", id)
	}

	s := stripped.String()
	return fmt.Sprintf("%s-%s-%s-%s-%s", s[0:8], s[8:12], s[12:16], s[16:20], s[20:32]), nil
}

// Parses a uuid as returned by the identity service: exactly 32 hex characters, no dashes
func ParseServiceUUID(id string) (uuid.UUID, error) {
	if len(id) != STRIPPED_UUID_LENGTH || strings.ContainsRune(id, '-') {
		return uuid.UUID{}, fmt.Errorf("expected %d hex characters. input: '%s'", STRIPPED_UUID_LENGTH, id)
	}

	normalized, err := NormalizeUUID(id)
	if err != nil {
		return uuid.UUID{}, err
	}
	parsed, err := uuid.Parse(normalized)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to parse normalized UUID: %w", err)
	}
	return parsed, nil
}

// Formats a uuid the way the identity service expects it in paths: lowercase hex without dashes
func StripUUID(id uuid.UUID) string {
	return hex.EncodeToString(id[:])
}
