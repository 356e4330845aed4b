// Package slug derives URL-safe unique identifiers from human-readable
// names.
package slug

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Make lowercases name and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Make(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) && r < unicode.MaxASCII || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Unique returns a slug for name that taken reports as free. The base
// slug is tried first; collisions get a short random suffix.
func Unique(ctx context.Context, name string, taken func(ctx context.Context, slug string) (bool, error)) (string, error) {
	base := Make(name)
	candidate := base

	for {
		inUse, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !inUse {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%s", base, uuid.NewString()[9:18])
	}
}
