package models

// ContainerIdent is the identifier row for a container entity (a
// publication venue: journal, conference series, book series).
type ContainerIdent struct {
	IdentBase
}

func (ContainerIdent) TableName() string { return "container_ident" }

// ContainerRevision is an immutable container revision.
type ContainerRevision struct {
	RevBase

	Name      string  `gorm:"type:text;not null" json:"name"`
	Publisher *string `json:"publisher,omitempty"`

	IssnL    *string `gorm:"column:issnl;type:varchar(9);index" json:"issnl,omitempty"`
	Wikidata *string `gorm:"type:varchar(16);index" json:"wikidata_qid,omitempty"`

	ContainerType *string `json:"container_type,omitempty"`
}

func (ContainerRevision) TableName() string { return "container_rev" }

// ExternalIDs returns the (kind, value) external identifiers set on this
// revision, used by the acceptance engine's uniqueness check.
func (r *ContainerRevision) ExternalIDs() map[string]string {
	ids := map[string]string{}
	if r.IssnL != nil && *r.IssnL != "" {
		ids["issnl"] = *r.IssnL
	}
	if r.Wikidata != nil && *r.Wikidata != "" {
		ids["wikidata_qid"] = *r.Wikidata
	}
	return ids
}

// ContainerEdit is an edit row bound to a container identifier.
type ContainerEdit struct {
	EditBase
}

func (ContainerEdit) TableName() string { return "container_edit" }
