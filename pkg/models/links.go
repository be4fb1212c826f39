package models

import "github.com/google/uuid"

// ReleaseFileLink, ReleaseFilesetLink and ReleaseWebcaptureLink are
// many-to-many join rows between a release identifier and a file/
// fileset/webcapture identifier: a given file can be attached to several
// releases (e.g. a preprint and its published version sharing a PDF),
// and a release can have several files/filesets/webcaptures. Keyed by
// identifier, not revision, so the link survives the linked entity being
// re-edited.
type ReleaseFileLink struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ReleaseIdentID uuid.UUID `gorm:"type:uuid;not null;index" json:"release_ident_id"`
	FileIdentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"file_ident_id"`
}

func (ReleaseFileLink) TableName() string { return "release_file_link" }

type ReleaseFilesetLink struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ReleaseIdentID uuid.UUID `gorm:"type:uuid;not null;index" json:"release_ident_id"`
	FilesetIdentID uuid.UUID `gorm:"type:uuid;not null;index" json:"fileset_ident_id"`
}

func (ReleaseFilesetLink) TableName() string { return "release_fileset_link" }

type ReleaseWebcaptureLink struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ReleaseIdentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"release_ident_id"`
	WebcaptureIdentID uuid.UUID `gorm:"type:uuid;not null;index" json:"webcapture_ident_id"`
}

func (ReleaseWebcaptureLink) TableName() string { return "release_webcapture_link" }
