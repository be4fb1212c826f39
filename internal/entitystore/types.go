// Package entitystore implements the generic per-entity-type store:
// get/get_rev/get_edit/get_history/get_redirects/create/update/delete/
// delete_edit, parametrized over each entity's concrete identifier/edit/
// revision row types rather than seven hand-written copies.
package entitystore

import "github.com/google/uuid"

// IdentRow is the identifier-table shape: exactly one of RevID/RedirectID
// is set, or both are null.
type IdentRow interface {
	GetIdentID() uuid.UUID
	SetIdentID(uuid.UUID)
	GetIsLive() bool
	SetIsLive(bool)
	GetRevID() *uuid.UUID
	SetRevID(*uuid.UUID)
	GetRedirectID() *uuid.UUID
	SetRedirectID(*uuid.UUID)
}

// EditRow is the edit-table shape.
type EditRow interface {
	GetEditID() uuid.UUID
	SetEditID(uuid.UUID)
	GetEditgroupID() uuid.UUID
	SetEditgroupID(uuid.UUID)
	GetIdentID() uuid.UUID
	SetIdentID(uuid.UUID)
	GetRevID() *uuid.UUID
	SetRevID(*uuid.UUID)
	GetRedirectID() *uuid.UUID
	SetRedirectID(*uuid.UUID)
	GetPrevRev() *uuid.UUID
	SetPrevRev(*uuid.UUID)
}

// RevisionRow is the immutable-revision-table shape.
type RevisionRow interface {
	GetRevID() uuid.UUID
	SetRevID(uuid.UUID)
}

// ExternalIDer is the method shape every revision row's ExternalIDs
// method has. Nothing asserts it: a Store receives its extractor as a
// function through WithExternalIDs.
type ExternalIDer interface {
	ExternalIDs() map[string]string
}

