package models

// CreatorIdent is the identifier row for a creator entity (a person or
// organization credited on releases).
type CreatorIdent struct {
	IdentBase
}

func (CreatorIdent) TableName() string { return "creator_ident" }

// CreatorRevision is an immutable creator revision.
type CreatorRevision struct {
	RevBase

	DisplayName string  `gorm:"type:text;not null" json:"display_name"`
	GivenName   *string `json:"given_name,omitempty"`
	SurName     *string `json:"surname,omitempty"`

	Orcid    *string `gorm:"type:varchar(19);index" json:"orcid,omitempty"`
	Wikidata *string `gorm:"type:varchar(16);index" json:"wikidata_qid,omitempty"`
}

func (CreatorRevision) TableName() string { return "creator_rev" }

// ExternalIDs returns this revision's external identifiers, keyed by kind.
func (r *CreatorRevision) ExternalIDs() map[string]string {
	ids := map[string]string{}
	if r.Orcid != nil && *r.Orcid != "" {
		ids["orcid"] = *r.Orcid
	}
	if r.Wikidata != nil && *r.Wikidata != "" {
		ids["wikidata_qid"] = *r.Wikidata
	}
	return ids
}

// CreatorEdit is an edit row bound to a creator identifier.
type CreatorEdit struct {
	EditBase
}

func (CreatorEdit) TableName() string { return "creator_edit" }
