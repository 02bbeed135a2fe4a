package vocab

import (
	"time"

	"github.com/google/uuid"
)

// SavedAnalysis wraps an AnalysisResult the user chose to keep. The same
// struct is serialized to the local cache (JSON) and stored remotely (one
// row per record, scoped by user id).
type SavedAnalysis struct {
	ID         string         `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID     string         `json:"-" gorm:"index;type:varchar(64)"`
	Date       int64          `json:"date"` // creation/update time, epoch millis
	SourceType SourceType     `json:"sourceType" gorm:"type:varchar(32)"`
	InputText  string         `json:"inputText" gorm:"type:text"`
	FileName   string         `json:"fileName,omitempty"`
	FolderID   *string        `json:"folderId,omitempty" gorm:"type:varchar(64);index"`
	Notes      []Note         `json:"notes,omitempty" gorm:"serializer:json"`
	Result     AnalysisResult `json:"analysisResult" gorm:"serializer:json"`
	UpdatedAt  time.Time      `json:"-"` // server timestamp, remote only
}

// Matches reports whether this record is the dedup target for a save with
// the given file name and input text. The identity key is the file name if
// both sides have one; otherwise input-text equality applies, but only when
// neither side carries a file name.
func (a *SavedAnalysis) Matches(fileName, inputText string) bool {
	if a.FileName != "" || fileName != "" {
		return a.FileName != "" && a.FileName == fileName
	}
	return a.InputText == inputText
}

// AnalysisFolder is an organizational container. Deleting a folder moves
// its members to uncategorized; it never deletes the analyses.
type AnalysisFolder struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID    string    `json:"-" gorm:"index;type:varchar(64)"`
	Name      string    `json:"name"`
	CreatedAt int64     `json:"createdAt"` // epoch millis
	Color     string    `json:"color,omitempty"`
	UpdatedAt time.Time `json:"-"` // server timestamp, remote only
}

// Note is a user annotation attached to a saved analysis. The list is
// append-only; individual notes are user-removable.
type Note struct {
	ID         string `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Context    string `json:"context"`
	Timestamp  int64  `json:"timestamp"` // epoch millis
}

// NewID returns a fresh opaque record identifier.
func NewID() string {
	return uuid.NewString()
}

// NowMillis returns the current time as epoch milliseconds, the timestamp
// unit used throughout the data model.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
