package models

// WorkIdent is the identifier row for a work entity: the abstract
// grouping that releases (distinct editions/versions/translations) point
// at. A work has no sub-resources of its own; cross-links are identifier
// references only, to avoid cycles.
type WorkIdent struct {
	IdentBase
}

func (WorkIdent) TableName() string { return "work_ident" }

// WorkRevision is an immutable work revision.
type WorkRevision struct {
	RevBase

	WorkType *string `json:"work_type,omitempty"`
}

func (WorkRevision) TableName() string { return "work_rev" }

// ExternalIDs returns this revision's external identifiers. Works carry
// none of the catalog's cross-referenced external ID kinds themselves
// (those live on releases); the method exists so WorkRevision satisfies
// the same shape the generic store expects of every revision type.
func (r *WorkRevision) ExternalIDs() map[string]string { return nil }

// WorkEdit is an edit row bound to a work identifier.
type WorkEdit struct {
	EditBase
}

func (WorkEdit) TableName() string { return "work_edit" }
