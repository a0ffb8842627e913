package models

type Collaboration struct {
	ID     string
	NoteID string
	UserID string
}
