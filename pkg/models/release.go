package models

import (
	"time"

	"github.com/google/uuid"
)

// ReleaseIdent is the identifier row for a release entity (one concrete
// edition/version/translation of a work).
type ReleaseIdent struct {
	IdentBase
}

func (ReleaseIdent) TableName() string { return "release_ident" }

// ReleaseRevision is an immutable release revision.
type ReleaseRevision struct {
	RevBase

	Title      string  `gorm:"type:text;not null" json:"title"`
	Subtitle   *string `json:"subtitle,omitempty"`
	ReleaseType *string `json:"release_type,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Language    *string `json:"language,omitempty"`

	WorkID      *uuid.UUID `gorm:"type:uuid;index" json:"work_id,omitempty"`
	ContainerID *uuid.UUID `gorm:"type:uuid;index" json:"container_id,omitempty"`

	Doi         *string `gorm:"type:varchar(255);index" json:"doi,omitempty"`
	WikidataQID *string `gorm:"column:wikidata_qid;type:varchar(16);index" json:"wikidata_qid,omitempty"`
	Isbn13      *string `gorm:"type:varchar(17);index" json:"isbn13,omitempty"`
	Pmid        *string `gorm:"type:varchar(16);index" json:"pmid,omitempty"`
	Pmcid       *string `gorm:"type:varchar(16);index" json:"pmcid,omitempty"`
	CoreID      *string `gorm:"type:varchar(16);index" json:"core_id,omitempty"`

	// Abstracts, when present, are hideable via HideFlags.
	Abstract *string `json:"abstract,omitempty"`
}

func (ReleaseRevision) TableName() string { return "release_rev" }

// ExternalIDs returns this revision's external identifiers.
func (r *ReleaseRevision) ExternalIDs() map[string]string {
	ids := map[string]string{}
	add := func(k string, v *string) {
		if v != nil && *v != "" {
			ids[k] = *v
		}
	}
	add("doi", r.Doi)
	add("wikidata_qid", r.WikidataQID)
	add("isbn13", r.Isbn13)
	add("pmid", r.Pmid)
	add("pmcid", r.Pmcid)
	add("core_id", r.CoreID)
	return ids
}

// ReleaseContrib is a sub-resource row naming one contributor (creator)
// on a release revision: sub-resources are keyed by rev_id and written
// together with the revision.
type ReleaseContrib struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	RevID   uuid.UUID `gorm:"type:uuid;not null;index" json:"rev_id"`
	Index   int       `gorm:"not null" json:"index"`
	CreatorID *uuid.UUID `gorm:"type:uuid;index" json:"creator_id,omitempty"`
	RawName string    `gorm:"type:text" json:"raw_name,omitempty"`
	Role    string    `gorm:"type:varchar(32)" json:"role,omitempty"`
}

func (ReleaseContrib) TableName() string { return "release_contrib" }

// ReleaseRef is a sub-resource row naming one outbound citation from a
// release revision, either to another catalog release or to an
// unstructured citation string.
type ReleaseRef struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RevID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"rev_id"`
	Index        int        `gorm:"not null" json:"index"`
	TargetRelID  *uuid.UUID `gorm:"column:target_release_id;type:uuid;index" json:"target_release_id,omitempty"`
	RawCitation  string     `gorm:"type:text" json:"raw_citation,omitempty"`
}

func (ReleaseRef) TableName() string { return "release_ref" }

// ReleaseEdit is an edit row bound to a release identifier.
type ReleaseEdit struct {
	EditBase
}

func (ReleaseEdit) TableName() string { return "release_edit" }
