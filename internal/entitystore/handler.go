package entitystore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PendingEdit is the type-erased shape of one staged edit, as needed by
// the acceptance engine — which drives every entity type through the
// same loop and so cannot hold each type's concrete E directly.
type PendingEdit struct {
	EditID     uuid.UUID
	IdentID    uuid.UUID
	RevID      *uuid.UUID
	RedirectID *uuid.UUID
	PrevRev    *uuid.UUID
}

// Handler is the type-erased acceptance-engine view of one entity type's
// Store, obtained via Store.Handler(). Exporting this narrower interface
// (rather than the generic Store itself) lets internal/acceptance hold a
// plain map[string]Handler across all seven entity types.
type Handler interface {
	EntityType() string
	PendingEdits(ctx context.Context, tx *gorm.DB, editgroupID uuid.UUID) ([]PendingEdit, error)
	LockIdent(ctx context.Context, tx *gorm.DB, identID uuid.UUID) (currentRevID *uuid.UUID, isLive bool, err error)
	ApplyAccepted(ctx context.Context, tx *gorm.DB, identID uuid.UUID, revID, redirectID *uuid.UUID) error
	ExternalIDs(ctx context.Context, tx *gorm.DB, revID uuid.UUID) (map[string]string, error)
	IsLiveExternalID(ctx context.Context, tx *gorm.DB, kind, value string, exceptIdentID uuid.UUID) (bool, error)
	RedirectTargetState(ctx context.Context, tx *gorm.DB, identID uuid.UUID) (isLive, isRedirect bool, err error)
}

type handler[I IdentRow, E EditRow, V RevisionRow] struct {
	s *Store[I, E, V]
}

// Handler adapts s to the type-erased Handler interface.
func (s *Store[I, E, V]) Handler() Handler {
	return &handler[I, E, V]{s: s}
}

func (h *handler[I, E, V]) EntityType() string { return h.s.EntityType() }

func (h *handler[I, E, V]) PendingEdits(ctx context.Context, tx *gorm.DB, editgroupID uuid.UUID) ([]PendingEdit, error) {
	edits, err := h.s.PendingEdits(ctx, tx, editgroupID)
	if err != nil {
		return nil, err
	}
	out := make([]PendingEdit, 0, len(edits))
	for _, e := range edits {
		out = append(out, PendingEdit{
			EditID:     e.GetEditID(),
			IdentID:    e.GetIdentID(),
			RevID:      e.GetRevID(),
			RedirectID: e.GetRedirectID(),
			PrevRev:    e.GetPrevRev(),
		})
	}
	return out, nil
}

func (h *handler[I, E, V]) LockIdent(ctx context.Context, tx *gorm.DB, identID uuid.UUID) (*uuid.UUID, bool, error) {
	ident, err := h.s.LockIdent(ctx, tx, identID)
	if err != nil {
		return nil, false, err
	}
	return ident.GetRevID(), ident.GetIsLive(), nil
}

func (h *handler[I, E, V]) ApplyAccepted(ctx context.Context, tx *gorm.DB, identID uuid.UUID, revID, redirectID *uuid.UUID) error {
	ident, err := h.s.LockIdent(ctx, tx, identID)
	if err != nil {
		return err
	}
	ident.SetRevID(revID)
	ident.SetRedirectID(redirectID)
	ident.SetIsLive(revID != nil || redirectID != nil)
	return tx.WithContext(ctx).Save(ident).Error
}

func (h *handler[I, E, V]) ExternalIDs(ctx context.Context, tx *gorm.DB, revID uuid.UUID) (map[string]string, error) {
	return h.s.RevExternalIDs(ctx, tx, revID)
}

func (h *handler[I, E, V]) IsLiveExternalID(ctx context.Context, tx *gorm.DB, kind, value string, exceptIdentID uuid.UUID) (bool, error) {
	return h.s.IsLiveExternalID(ctx, tx, kind, value, exceptIdentID)
}

func (h *handler[I, E, V]) RedirectTargetState(ctx context.Context, tx *gorm.DB, identID uuid.UUID) (bool, bool, error) {
	return h.s.RedirectTargetState(ctx, tx, identID)
}

// FindByExternalID and ResolveLive additionally satisfy
// internal/lookup.Resolver, so the same Handler value can back both the
// acceptance engine and lookup dispatch for a given entity type.
func (h *handler[I, E, V]) FindByExternalID(ctx context.Context, kind, value string) (uuid.UUID, error) {
	return h.s.FindLiveByExternalID(ctx, kind, value)
}

func (h *handler[I, E, V]) ResolveLive(ctx context.Context, identID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	return h.s.ResolveLive(ctx, identID)
}
