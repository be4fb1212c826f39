package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/fatcat-project/fatcat/internal/auth"
	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/internal/editctx"
	"github.com/fatcat-project/fatcat/internal/entitystore"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// MutationRequest carries everything a create/update/delete/redirect call
// needs to authorize and stage an edit: the acting editor, the target
// editgroup (the zero UUID opens a fresh one on the editor's behalf), and
// the autoaccept flag passed through to editctx.Make. The flag is carried
// on the returned edit context only; the mutation functions below do not
// accept the editgroup.
type MutationRequest struct {
	EditorID    uuid.UUID
	EditgroupID uuid.UUID
	Autoaccept  bool
}

// authorize runs every gate a mutating entity operation must pass before
// an entitystore.Store is touched: the editor must exist and satisfy at
// least RoleEditor; a caller targeting an existing editgroup must own it
// or satisfy RoleAdmin; the editgroup must still be open once resolved.
// This is the same require-role/require-editgroup/make-edit-context/check
// chain every entity mutation runs through.
func (c *Catalog) authorize(ctx context.Context, req MutationRequest) (*editctx.Context, error) {
	editor, err := models.GetEditorByID(c.db.WithContext(ctx), req.EditorID)
	if err != nil {
		return nil, catalogerr.NotFound("editor", req.EditorID.String())
	}
	if err := auth.RequireRole(editor, auth.RoleEditor); err != nil {
		return nil, err
	}
	if req.EditgroupID != uuid.Nil {
		if _, err := auth.RequireEditgroup(ctx, c.db, editor, req.EditgroupID); err != nil {
			return nil, err
		}
	}
	ectx, err := editctx.Make(ctx, c.db, editor.EditorID, req.EditgroupID, req.Autoaccept)
	if err != nil {
		return nil, err
	}
	if err := ectx.Check(ctx, c.db); err != nil {
		return nil, err
	}
	return ectx, nil
}

// CreateEntity authorizes req and stages rev as a new identifier's first
// edit against store, returning the edit context alongside the staged
// edit so the caller knows which editgroup absorbed it (relevant when
// EditgroupID was the zero UUID and a fresh one was opened).
func CreateEntity[I entitystore.IdentRow, E entitystore.EditRow, V entitystore.RevisionRow](
	ctx context.Context, c *Catalog, store *entitystore.Store[I, E, V], req MutationRequest, rev V,
) (E, *editctx.Context, error) {
	var zero E
	ectx, err := c.authorize(ctx, req)
	if err != nil {
		return zero, nil, err
	}
	edit, err := store.CreateEdit(ctx, ectx.EditgroupID, rev)
	return edit, ectx, err
}

// UpdateEntity authorizes req and stages rev as a new revision against
// identID, carrying prevRev for the acceptance engine's optimistic-
// concurrency check.
func UpdateEntity[I entitystore.IdentRow, E entitystore.EditRow, V entitystore.RevisionRow](
	ctx context.Context, c *Catalog, store *entitystore.Store[I, E, V], req MutationRequest, identID uuid.UUID, rev V, prevRev *uuid.UUID,
) (E, *editctx.Context, error) {
	var zero E
	ectx, err := c.authorize(ctx, req)
	if err != nil {
		return zero, nil, err
	}
	edit, err := store.UpdateEdit(ctx, ectx.EditgroupID, identID, rev, prevRev)
	return edit, ectx, err
}

// DeleteEntity authorizes req and stages a tombstone edit against identID.
func DeleteEntity[I entitystore.IdentRow, E entitystore.EditRow, V entitystore.RevisionRow](
	ctx context.Context, c *Catalog, store *entitystore.Store[I, E, V], req MutationRequest, identID uuid.UUID, prevRev *uuid.UUID,
) (E, *editctx.Context, error) {
	var zero E
	ectx, err := c.authorize(ctx, req)
	if err != nil {
		return zero, nil, err
	}
	edit, err := store.DeleteEdit(ctx, ectx.EditgroupID, identID, prevRev)
	return edit, ectx, err
}

// RedirectEntity authorizes req and stages a redirect edit from identID to
// targetIdentID.
func RedirectEntity[I entitystore.IdentRow, E entitystore.EditRow, V entitystore.RevisionRow](
	ctx context.Context, c *Catalog, store *entitystore.Store[I, E, V], req MutationRequest, identID, targetIdentID uuid.UUID, prevRev *uuid.UUID,
) (E, *editctx.Context, error) {
	var zero E
	ectx, err := c.authorize(ctx, req)
	if err != nil {
		return zero, nil, err
	}
	edit, err := store.RedirectEdit(ctx, ectx.EditgroupID, identID, targetIdentID, prevRev)
	return edit, ectx, err
}
