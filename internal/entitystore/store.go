package entitystore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/internal/editctx"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// Store is the generic per-entity-type engine backing every one of the
// seven catalog entity types (container, creator, work, release, file,
// fileset, webcapture). One Store[I, E, V] instance, parametrized over
// that entity's concrete ident/edit/revision row types, replaces what
// would otherwise be seven near-identical hand-written handlers.
//
// I, E and V are always pointer-to-struct types (e.g. *models.ContainerIdent)
// whose method sets satisfy IdentRow/EditRow/RevisionRow via the embedded
// models.IdentBase/EditBase/RevBase. newIdent/newEdit/newRev construct
// zero-valued instances for gorm to scan into, since a generic interface
// type parameter cannot be instantiated with new(I).
type Store[I IdentRow, E EditRow, V RevisionRow] struct {
	db         *gorm.DB
	entityType string

	newIdent func() I
	newEdit  func() E
	newRev   func() V

	// externalIDs extracts the (kind, value) external identifiers from a
	// revision. Nil until WithExternalIDs is called; for work, fileset and
	// webcapture the registered extractor returns a nil map.
	externalIDs func(V) map[string]string
}

// New constructs a Store for one entity type.
func New[I IdentRow, E EditRow, V RevisionRow](db *gorm.DB, entityType string, newIdent func() I, newEdit func() E, newRev func() V) *Store[I, E, V] {
	return &Store[I, E, V]{
		db:         db,
		entityType: entityType,
		newIdent:   newIdent,
		newEdit:    newEdit,
		newRev:     newRev,
	}
}

// WithExternalIDs registers the revision's external-id extractor, enabling
// the acceptance engine's duplicate-external-id check for this entity type.
func (s *Store[I, E, V]) WithExternalIDs(fn func(V) map[string]string) *Store[I, E, V] {
	s.externalIDs = fn
	return s
}

// WithTx returns a copy of the store bound to tx instead of the store's
// own *gorm.DB, for use inside the acceptance engine's transaction.
func (s *Store[I, E, V]) WithTx(tx *gorm.DB) *Store[I, E, V] {
	clone := *s
	clone.db = tx
	return &clone
}

// Get loads the identifier row for identID. Callers that need the live
// revision should follow with GetRev once IsLive/RevID has been checked.
func (s *Store[I, E, V]) Get(ctx context.Context, identID uuid.UUID) (I, error) {
	ident := s.newIdent()
	err := s.db.WithContext(ctx).First(ident, "ident_id = ?", identID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero I
		return zero, catalogerr.NotFound(s.entityType, identID.String())
	}
	if err != nil {
		var zero I
		return zero, catalogerr.DatabaseError(err)
	}
	return ident, nil
}

// GetRev loads one immutable revision row by rev_id.
func (s *Store[I, E, V]) GetRev(ctx context.Context, revID uuid.UUID) (V, error) {
	rev := s.newRev()
	err := s.db.WithContext(ctx).First(rev, "rev_id = ?", revID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero V
		return zero, catalogerr.NotFound(s.entityType+"_rev", revID.String())
	}
	if err != nil {
		var zero V
		return zero, catalogerr.DatabaseError(err)
	}
	return rev, nil
}

// GetEdit loads one edit row by edit_id.
func (s *Store[I, E, V]) GetEdit(ctx context.Context, editID uuid.UUID) (E, error) {
	edit := s.newEdit()
	err := s.db.WithContext(ctx).First(edit, "edit_id = ?", editID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero E
		return zero, catalogerr.NotFound(s.entityType+"_edit", editID.String())
	}
	if err != nil {
		var zero E
		return zero, catalogerr.DatabaseError(err)
	}
	return edit, nil
}

// GetHistory returns every edit ever made against identID, oldest first,
// across all editgroups regardless of acceptance state.
func (s *Store[I, E, V]) GetHistory(ctx context.Context, identID uuid.UUID) ([]E, error) {
	var edits []E
	err := s.db.WithContext(ctx).
		Order("created_at asc").
		Find(&edits, "ident_id = ?", identID).Error
	if err != nil {
		return nil, catalogerr.DatabaseError(err)
	}
	return edits, nil
}

// GetRedirects returns the ident_ids of every identifier currently
// redirecting to identID.
func (s *Store[I, E, V]) GetRedirects(ctx context.Context, identID uuid.UUID) ([]uuid.UUID, error) {
	var idents []I
	err := s.db.WithContext(ctx).
		Find(&idents, "redirect_id = ?", identID).Error
	if err != nil {
		return nil, catalogerr.DatabaseError(err)
	}
	out := make([]uuid.UUID, 0, len(idents))
	for _, id := range idents {
		out = append(out, id.GetIdentID())
	}
	return out, nil
}

// editTable is the name of this entity type's edit table, following the
// catalog-wide "<entity_type>_edit" convention every models.*Edit.TableName
// implements.
func (s *Store[I, E, V]) editTable() string {
	return s.entityType + "_edit"
}

// CreateEdit stages a new identifier plus its first edit within an open
// editgroup; the identifier is not made live until the editgroup is
// accepted. rev must already have a RevID assigned (callers generate it
// so sub-resource rows keyed by rev_id can be inserted in the same call).
func (s *Store[I, E, V]) CreateEdit(ctx context.Context, editgroupID uuid.UUID, rev V) (E, error) {
	var zero E
	ident := s.newIdent()
	ident.SetIdentID(uuid.New())
	ident.SetIsLive(false)

	if err := s.db.WithContext(ctx).Create(ident).Error; err != nil {
		return zero, catalogerr.DatabaseError(err)
	}
	if err := s.db.WithContext(ctx).Create(rev).Error; err != nil {
		return zero, catalogerr.DatabaseError(err)
	}

	if err := editctx.Dedup(ctx, s.db, s.editTable(), editgroupID, ident.GetIdentID()); err != nil {
		return zero, err
	}

	edit := s.newEdit()
	edit.SetEditID(uuid.New())
	edit.SetEditgroupID(editgroupID)
	edit.SetIdentID(ident.GetIdentID())
	revID := rev.GetRevID()
	edit.SetRevID(&revID)
	edit.SetPrevRev(nil)

	if err := s.db.WithContext(ctx).Create(edit).Error; err != nil {
		return zero, catalogerr.DatabaseError(err)
	}
	return edit, nil
}

// UpdateEdit stages a new revision against an existing identifier within
// an open editgroup. prevRev must match the identifier's current RevID
// at acceptance time or the acceptance engine rejects the edit as a
// conflict: optimistic concurrency via prev_rev.
func (s *Store[I, E, V]) UpdateEdit(ctx context.Context, editgroupID, identID uuid.UUID, rev V, prevRev *uuid.UUID) (E, error) {
	var zero E
	if err := s.db.WithContext(ctx).Create(rev).Error; err != nil {
		return zero, catalogerr.DatabaseError(err)
	}

	if err := editctx.Dedup(ctx, s.db, s.editTable(), editgroupID, identID); err != nil {
		return zero, err
	}

	edit := s.newEdit()
	edit.SetEditID(uuid.New())
	edit.SetEditgroupID(editgroupID)
	edit.SetIdentID(identID)
	revID := rev.GetRevID()
	edit.SetRevID(&revID)
	edit.SetPrevRev(prevRev)

	if err := s.db.WithContext(ctx).Create(edit).Error; err != nil {
		return zero, catalogerr.DatabaseError(err)
	}
	return edit, nil
}

// DeleteEdit stages a tombstone edit: on acceptance the identifier's
// RevID and RedirectID are both cleared and IsLive is set false.
func (s *Store[I, E, V]) DeleteEdit(ctx context.Context, editgroupID, identID uuid.UUID, prevRev *uuid.UUID) (E, error) {
	var zero E
	if err := editctx.Dedup(ctx, s.db, s.editTable(), editgroupID, identID); err != nil {
		return zero, err
	}

	edit := s.newEdit()
	edit.SetEditID(uuid.New())
	edit.SetEditgroupID(editgroupID)
	edit.SetIdentID(identID)
	edit.SetRevID(nil)
	edit.SetRedirectID(nil)
	edit.SetPrevRev(prevRev)

	if err := s.db.WithContext(ctx).Create(edit).Error; err != nil {
		return zero, catalogerr.DatabaseError(err)
	}
	return edit, nil
}

// RedirectEdit stages a redirect edit: on acceptance the identifier's
// RevID is cleared and RedirectID is set to targetIdentID.
func (s *Store[I, E, V]) RedirectEdit(ctx context.Context, editgroupID, identID, targetIdentID uuid.UUID, prevRev *uuid.UUID) (E, error) {
	var zero E
	if err := editctx.Dedup(ctx, s.db, s.editTable(), editgroupID, identID); err != nil {
		return zero, err
	}

	edit := s.newEdit()
	edit.SetEditID(uuid.New())
	edit.SetEditgroupID(editgroupID)
	edit.SetIdentID(identID)
	edit.SetRevID(nil)
	edit.SetRedirectID(&targetIdentID)
	edit.SetPrevRev(prevRev)

	if err := s.db.WithContext(ctx).Create(edit).Error; err != nil {
		return zero, catalogerr.DatabaseError(err)
	}
	return edit, nil
}

// RetractEdit removes a not-yet-accepted edit from its editgroup: an
// editor may undo their own pending edit before acceptance. Accepted
// edits are immutable: if the edit's editgroup has been accepted this
// returns EditgroupAlreadyAccepted. An edit whose editgroup row does not
// exist is removed without a state check.
func (s *Store[I, E, V]) RetractEdit(ctx context.Context, editID uuid.UUID) error {
	edit := s.newEdit()
	err := s.db.WithContext(ctx).First(edit, "edit_id = ?", editID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalogerr.NotFound(s.entityType+"_edit", editID.String())
	}
	if err != nil {
		return catalogerr.DatabaseError(err)
	}
	eg, egErr := models.GetEditgroup(s.db.WithContext(ctx), edit.GetEditgroupID())
	if egErr != nil && !errors.Is(egErr, gorm.ErrRecordNotFound) {
		return catalogerr.DatabaseError(egErr)
	}
	if eg != nil && !eg.IsOpenForEdits() {
		return catalogerr.EditgroupAlreadyAccepted(eg.EditgroupID.String())
	}
	if err := s.db.WithContext(ctx).Delete(edit).Error; err != nil {
		return catalogerr.DatabaseError(err)
	}
	return nil
}

// ApplyAccepted writes the effect of an already-accepted edit onto its
// identifier row through the store's own connection, without locking or
// validation. The acceptance engine does not use it; it applies edits via
// Handler.ApplyAccepted inside its own transaction.
func (s *Store[I, E, V]) ApplyAccepted(ctx context.Context, edit E) error {
	ident := s.newIdent()
	if err := s.db.WithContext(ctx).First(ident, "ident_id = ?", edit.GetIdentID()).Error; err != nil {
		return catalogerr.DatabaseError(err)
	}
	ident.SetRevID(edit.GetRevID())
	ident.SetRedirectID(edit.GetRedirectID())
	ident.SetIsLive(edit.GetRevID() != nil || edit.GetRedirectID() != nil)
	return s.db.WithContext(ctx).Save(ident).Error
}

// EntityType returns the entity-type name this store was constructed for
// (e.g. "release"), used in error messages and lookup dispatch.
func (s *Store[I, E, V]) EntityType() string { return s.entityType }

// DB exposes the store's underlying connection for sub-resource queries
// (e.g. release_contrib, release_ref) that have no Ident/Edit/Revision
// row shape of their own and so fall outside this store's type parameters.
func (s *Store[I, E, V]) DB() *gorm.DB { return s.db }

// PendingEdits returns every edit staged against editgroupID, ordered by
// ident_id so the acceptance engine can process them in the deterministic
// lock order required across entity types.
func (s *Store[I, E, V]) PendingEdits(ctx context.Context, tx *gorm.DB, editgroupID uuid.UUID) ([]E, error) {
	var edits []E
	err := tx.WithContext(ctx).
		Order("ident_id asc").
		Find(&edits, "editgroup_id = ?", editgroupID).Error
	if err != nil {
		return nil, catalogerr.DatabaseError(err)
	}
	return edits, nil
}

// LockIdent re-reads identID's identifier row under SELECT ... FOR UPDATE
// within tx.
func (s *Store[I, E, V]) LockIdent(ctx context.Context, tx *gorm.DB, identID uuid.UUID) (I, error) {
	ident := s.newIdent()
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(ident, "ident_id = ?", identID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero I
		return zero, catalogerr.NotFound(s.entityType, identID.String())
	}
	if err != nil {
		var zero I
		return zero, catalogerr.DatabaseError(err)
	}
	return ident, nil
}

// ApplyAcceptedEdit writes an already-validated edit's effect onto its
// identifier row within tx.
func (s *Store[I, E, V]) ApplyAcceptedEdit(ctx context.Context, tx *gorm.DB, ident I, edit E) error {
	ident.SetRevID(edit.GetRevID())
	ident.SetRedirectID(edit.GetRedirectID())
	ident.SetIsLive(edit.GetRevID() != nil || edit.GetRedirectID() != nil)
	if err := tx.WithContext(ctx).Save(ident).Error; err != nil {
		return catalogerr.DatabaseError(err)
	}
	return nil
}

// RevExternalIDs returns the external identifiers carried by revID, or
// nil if this entity type registered no extractor.
func (s *Store[I, E, V]) RevExternalIDs(ctx context.Context, tx *gorm.DB, revID uuid.UUID) (map[string]string, error) {
	if s.externalIDs == nil {
		return nil, nil
	}
	rev := s.newRev()
	err := tx.WithContext(ctx).First(rev, "rev_id = ?", revID).Error
	if err != nil {
		return nil, catalogerr.DatabaseError(err)
	}
	return s.externalIDs(rev), nil
}

// IsLiveExternalID reports whether any identifier of this entity type
// other than exceptIdentID currently carries (kind, value) as a live
// external identifier.
func (s *Store[I, E, V]) IsLiveExternalID(ctx context.Context, tx *gorm.DB, kind, value string, exceptIdentID uuid.UUID) (bool, error) {
	if s.externalIDs == nil {
		return false, nil
	}
	var idents []I
	if err := tx.WithContext(ctx).Find(&idents, "is_live = ?", true).Error; err != nil {
		return false, catalogerr.DatabaseError(err)
	}
	for _, id := range idents {
		if id.GetIdentID() == exceptIdentID || id.GetRevID() == nil {
			continue
		}
		ids, err := s.RevExternalIDs(ctx, tx, *id.GetRevID())
		if err != nil {
			return false, err
		}
		if ids[kind] == value {
			return true, nil
		}
	}
	return false, nil
}

// FindLiveByExternalID returns the ident_id of the live entity carrying
// (kind, value), for lookup dispatch.
func (s *Store[I, E, V]) FindLiveByExternalID(ctx context.Context, kind, value string) (uuid.UUID, error) {
	if s.externalIDs == nil {
		return uuid.Nil, catalogerr.NotFound(s.entityType, value)
	}
	var idents []I
	if err := s.db.WithContext(ctx).Find(&idents, "is_live = ?", true).Error; err != nil {
		return uuid.Nil, catalogerr.DatabaseError(err)
	}
	for _, id := range idents {
		if id.GetRevID() == nil {
			continue
		}
		ids, err := s.RevExternalIDs(ctx, s.db, *id.GetRevID())
		if err != nil {
			return uuid.Nil, err
		}
		if ids[kind] == value {
			return id.GetIdentID(), nil
		}
	}
	return uuid.Nil, catalogerr.NotFound(s.entityType, value)
}

// ResolveLive follows identID to its currently live revision, transparently
// hopping one redirect if the matched identifier is itself a redirect.
func (s *Store[I, E, V]) ResolveLive(ctx context.Context, identID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	ident, err := s.Get(ctx, identID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if ident.GetRedirectID() != nil {
		target, err := s.Get(ctx, *ident.GetRedirectID())
		if err != nil {
			return uuid.Nil, uuid.Nil, err
		}
		if target.GetRevID() == nil {
			return uuid.Nil, uuid.Nil, catalogerr.InternalError("redirect target is not live", nil)
		}
		return target.GetIdentID(), *target.GetRevID(), nil
	}
	if ident.GetRevID() == nil {
		return uuid.Nil, uuid.Nil, catalogerr.NotFound(s.entityType, identID.String())
	}
	return ident.GetIdentID(), *ident.GetRevID(), nil
}

// RedirectTargetState reports whether identID is currently live and
// whether it is itself a redirect, for the acceptance engine's redirect
// validity check: a redirect target must be live and must not itself be
// a redirect.
func (s *Store[I, E, V]) RedirectTargetState(ctx context.Context, tx *gorm.DB, identID uuid.UUID) (isLive bool, isRedirect bool, err error) {
	ident := s.newIdent()
	dbErr := tx.WithContext(ctx).First(ident, "ident_id = ?", identID).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return false, false, nil
	}
	if dbErr != nil {
		return false, false, catalogerr.DatabaseError(dbErr)
	}
	return ident.GetIsLive(), ident.GetRedirectID() != nil, nil
}
