package models

import "github.com/google/uuid"

// FileIdent is the identifier row for a file entity (a concrete
// downloadable artifact, identified by content hash).
type FileIdent struct {
	IdentBase
}

func (FileIdent) TableName() string { return "file_ident" }

// FileRevision is an immutable file revision.
type FileRevision struct {
	RevBase

	Size     *int64  `json:"size,omitempty"`
	Md5      *string `gorm:"type:varchar(32);index" json:"md5,omitempty"`
	Sha1     *string `gorm:"type:varchar(40);index" json:"sha1,omitempty"`
	Sha256   *string `gorm:"type:varchar(64);index" json:"sha256,omitempty"`
	Mimetype *string `json:"mimetype,omitempty"`
}

func (FileRevision) TableName() string { return "file_rev" }

// ExternalIDs returns this revision's external identifiers.
func (r *FileRevision) ExternalIDs() map[string]string {
	ids := map[string]string{}
	if r.Md5 != nil && *r.Md5 != "" {
		ids["md5"] = *r.Md5
	}
	if r.Sha1 != nil && *r.Sha1 != "" {
		ids["sha1"] = *r.Sha1
	}
	if r.Sha256 != nil && *r.Sha256 != "" {
		ids["sha256"] = *r.Sha256
	}
	return ids
}

// FileURL is a sub-resource row naming one location a file can be
// fetched from.
type FileURL struct {
	ID    uint      `gorm:"primaryKey" json:"id"`
	RevID uuid.UUID `gorm:"type:uuid;not null;index" json:"rev_id"`
	URL   string    `gorm:"type:text;not null" json:"url"`
	// Rel is one of web|webarchive|repository|academictorrents.
	Rel string `gorm:"type:varchar(32);not null" json:"rel"`
}

func (FileURL) TableName() string { return "file_url" }

// FileEdit is an edit row bound to a file identifier.
type FileEdit struct {
	EditBase
}

func (FileEdit) TableName() string { return "file_edit" }
