// Package model contains the persisted record types and the sentinel errors
// shared across the storage, service, and HTTP layers.
package model

import (
	"time"
)

// Note types form an open set of string tags: only TypeText gets special
// treatment, everything else ("file", "audio", "image", "pdf", "docx", ...)
// is a file-bearing note.
const (
	TypeText  = "text"
	TypeFile  = "file"
	TypeAudio = "audio"
	TypeImage = "image"
	TypeVideo = "video"
	TypePDF   = "pdf"
	TypeDocx  = "docx"
)

// Note is a single user-authored record, either plain text or backed by a
// blob store entry. IDs are opaque strings at every boundary.
type Note struct {
	ID       string `json:"note_id"`
	Username string `json:"username"`
	NoteType string `json:"note_type"`
	Title    string `json:"title,omitempty"`
	// Content holds the author's text for text notes and is never populated
	// by extraction; extracted text lives in ExtractedText.
	Content          string    `json:"content,omitempty"`
	ExtractedText    string    `json:"extracted_text,omitempty"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	Extension        string    `json:"extension,omitempty"`
	StoredFilename   string    `json:"stored_filename,omitempty"`
	ContentType      string    `json:"content_type,omitempty"`
	FileID           string    `json:"file_id,omitempty"`
	CreatedAt        time.Time `json:"timestamp"`
}

// IsTextNote reports whether the note's primary payload is author text
// rather than a blob reference.
func (n *Note) IsTextNote() bool {
	return n.NoteType == TypeText
}

// User is a row in the credential store.
type User struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
