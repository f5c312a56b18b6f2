package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultNoteTag is assigned to a note created without an explicit tag.
const DefaultNoteTag = "General"

// Note is a single user-owned note with an ordered list of file attachments.
type Note struct {
	// NoteID is the unique identifier of the note, assigned by the
	// database on creation.
	NoteID uuid.UUID `json:"id"`

	// UserID references the owning user. Immutable after creation:
	// only the owner may read, modify or delete the note.
	UserID uuid.UUID `json:"user_id"`

	// Title and Description are required free-form strings.
	Title       string `json:"title"`
	Description string `json:"description"`

	// Tag is a category label; defaults to [DefaultNoteTag] when omitted.
	Tag string `json:"tag"`

	// Attachments is the ordered list of media files attached to the note.
	Attachments []Attachment `json:"attachments"`

	// CreatedAt is set once when the note is created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// Attachment holds the metadata of one uploaded file belonging to a note.
// The file bytes themselves live on the attachment file storage; only the
// metadata is kept in the database.
type Attachment struct {
	// AttachmentID is the unique identifier of the attachment record.
	AttachmentID uuid.UUID `json:"id"`

	// NoteID references the owning note. Internal, not serialized.
	NoteID uuid.UUID `json:"-"`

	// FileName is the generated name the file is stored under.
	FileName string `json:"filename"`

	// OriginalName is the file name supplied by the client at upload time.
	OriginalName string `json:"originalname"`

	// Path is the storage location of the file on disk.
	Path string `json:"path"`

	// ContentType is the MIME type reported at upload time.
	ContentType string `json:"mimetype"`

	// URL is the path the file can be retrieved from via the static route.
	URL string `json:"url"`
}

// TableName returns the name of the database table
// associated with the Attachment model.
func (a Attachment) TableName() string {
	return "attachments"
}

// NoteUpdate is an explicit patch for a note. Each updatable field is a
// pointer: nil means "leave unchanged", non-nil means "replace with this
// value". Attachments listed in AddAttachments are appended to the note's
// existing attachment list.
type NoteUpdate struct {
	Title       *string
	Description *string
	Tag         *string

	AddAttachments []Attachment
}

// Empty reports whether the patch carries no field changes and no new
// attachments.
func (u NoteUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Tag == nil && len(u.AddAttachments) == 0
}
