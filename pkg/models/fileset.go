package models

import "github.com/google/uuid"

// FilesetIdent is the identifier row for a fileset entity (a bundle of
// files distributed together, e.g. a dataset).
type FilesetIdent struct {
	IdentBase
}

func (FilesetIdent) TableName() string { return "fileset_ident" }

// FilesetRevision is an immutable fileset revision.
type FilesetRevision struct {
	RevBase
}

func (FilesetRevision) TableName() string { return "fileset_rev" }

// ExternalIDs returns this revision's external identifiers. Filesets
// carry no catalog-level external ID kind themselves (individual member
// files may, via their own hashes, but those are not the fileset's own
// identity).
func (r *FilesetRevision) ExternalIDs() map[string]string { return nil }

// FilesetFile is a sub-resource row describing one member file of a
// fileset revision.
type FilesetFile struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	RevID  uuid.UUID `gorm:"type:uuid;not null;index" json:"rev_id"`
	Path   string    `gorm:"type:text;not null" json:"path"`
	Size   *int64    `json:"size,omitempty"`
	Md5    *string   `gorm:"type:varchar(32)" json:"md5,omitempty"`
	Sha1   *string   `gorm:"type:varchar(40)" json:"sha1,omitempty"`
	Sha256 *string   `gorm:"type:varchar(64)" json:"sha256,omitempty"`
	Extra  JSON      `gorm:"type:jsonb" json:"extra,omitempty"`
}

func (FilesetFile) TableName() string { return "fileset_file" }

// FilesetEdit is an edit row bound to a fileset identifier.
type FilesetEdit struct {
	EditBase
}

func (FilesetEdit) TableName() string { return "fileset_edit" }
