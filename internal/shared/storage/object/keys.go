package object

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxNameLen = 100

var errInvalidName = errors.New("invalid file name")

// BuildKey returns folder/<owner hash>/<uuid>_<cleaned name>. Owner IDs are hashed
// because guest and google IDs contain ':'.
func BuildKey(ownerID, folder, fileName string) (string, error) {
	name, err := cleanFileName(fileName)
	if err != nil {
		return "", err
	}
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" || strings.Contains(folder, "..") {
		return "", fmt.Errorf("invalid folder %q", folder)
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return path.Join(folder, ownerSegment(ownerID), id+"_"+name), nil
}

func ownerSegment(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	return hex.EncodeToString(sum[:])
}

// cleanFileName keeps the base name, turns whitespace runs into '-' and drops control characters.
func cleanFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidName
	}
	var b strings.Builder
	space := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune('_')
			space = false
		case unicode.IsSpace(r):
			if !space {
				b.WriteRune('-')
			}
			space = true
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
			space = false
		}
	}
	out := b.String()
	if out == "" {
		return "", errInvalidName
	}
	if r := []rune(out); len(r) > maxNameLen {
		out = string(r[len(r)-maxNameLen:])
	}
	return out, nil
}
