package common

import "github.com/google/uuid"

// NewID returns a random identifier with the given prefix, e.g. "note-<uuid>".
func NewID(prefix string) string {
	return prefix + uuid.NewString()
}
