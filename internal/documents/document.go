// Package documents stores uploaded PDFs and applies the page-level
// mutations of the service API: rotation, reordering and export.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Page holds the size of one page in points, in the orientation it is
// displayed, and its accumulated clockwise rotation.
type Page struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation int     `json:"rotation"`
}

// Document represents a stored PDF with its page geometry.
type Document struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	SizeBytes  int64     `json:"size_bytes"`
	PageCount  int       `json:"page_count"`
	Pages      []Page    `json:"pages,omitempty"`
	StorageKey string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCommand contains an uploaded file. Data holds the raw PDF bytes.
type CreateCommand struct {
	Filename string
	Data     []byte
}

// Rotations are the accepted clockwise page rotations in degrees.
var Rotations = []int{90, 180, 270}
