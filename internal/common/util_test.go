package common

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewID_PrefixAndUUID(t *testing.T) {
	id := NewID(NoteIDPrefix)
	if !strings.HasPrefix(id, NoteIDPrefix) {
		t.Fatalf("expected prefix %q, got %q", NoteIDPrefix, id)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(id, NoteIDPrefix)); err != nil {
		t.Fatalf("suffix is not a uuid: %v", err)
	}
}

func TestNewID_Unique(t *testing.T) {
	a := NewID(UserIDPrefix)
	b := NewID(UserIDPrefix)
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
}
