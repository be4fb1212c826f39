package models

import "github.com/google/uuid"

// WebcaptureIdent is the identifier row for a webcapture entity (an
// archived snapshot of a web resource).
type WebcaptureIdent struct {
	IdentBase
}

func (WebcaptureIdent) TableName() string { return "webcapture_ident" }

// WebcaptureRevision is an immutable webcapture revision.
type WebcaptureRevision struct {
	RevBase

	OriginalURL *string `json:"original_url,omitempty"`
	Timestamp   *string `json:"timestamp,omitempty"`
}

func (WebcaptureRevision) TableName() string { return "webcapture_rev" }

// ExternalIDs returns this revision's external identifiers. Webcaptures
// carry no catalog-level external ID kind of their own.
func (r *WebcaptureRevision) ExternalIDs() map[string]string { return nil }

// WebcaptureCDX is a sub-resource row holding one CDX index entry
// (per-resource capture record) for a webcapture revision.
type WebcaptureCDX struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RevID      uuid.UUID `gorm:"type:uuid;not null;index" json:"rev_id"`
	Surt       string    `gorm:"type:text;not null" json:"surt"`
	Timestamp  string    `gorm:"type:varchar(32);not null" json:"timestamp"`
	URL        string    `gorm:"type:text;not null" json:"url"`
	Mimetype   *string   `json:"mimetype,omitempty"`
	StatusCode *int      `json:"status_code,omitempty"`
	Sha1       *string   `gorm:"type:varchar(40)" json:"sha1,omitempty"`
}

func (WebcaptureCDX) TableName() string { return "webcapture_cdx" }

// WebcaptureEdit is an edit row bound to a webcapture identifier.
type WebcaptureEdit struct {
	EditBase
}

func (WebcaptureEdit) TableName() string { return "webcapture_edit" }
