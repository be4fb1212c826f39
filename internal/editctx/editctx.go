// Package editctx implements the edit context every create/update/delete
// call against an entity store runs inside: which editor is acting,
// which editgroup the edit lands in, and whether that editgroup should
// be accepted immediately after the edit is written.
package editctx

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// Context carries the editor/editgroup pair every mutating call needs,
// plus the autoaccept flag bot-authored bulk edits set so ingestion
// callers can accept their own edits without a separate review step.
type Context struct {
	EditorID    uuid.UUID
	EditgroupID uuid.UUID
	Autoaccept  bool
}

// Make resolves an edit context for editorID. If editgroupID is the zero
// UUID, a fresh OPEN editgroup is created on editorID's behalf and the
// context's Autoaccept is set when autoaccept is true or the editor is a
// bot. Make only records the flag; nothing in this package accepts the
// editgroup. An existing editgroup must be open and owned by editorID,
// unless the editor is an admin or superuser.
func Make(ctx context.Context, db *gorm.DB, editorID, editgroupID uuid.UUID, autoaccept bool) (*Context, error) {
	editor, err := models.GetEditorByID(db.WithContext(ctx), editorID)
	if err != nil {
		return nil, catalogerr.NotFound("editor", editorID.String())
	}

	if editgroupID == uuid.Nil {
		eg := &models.Editgroup{EditorID: editor.EditorID}
		if err := db.WithContext(ctx).Create(eg).Error; err != nil {
			return nil, catalogerr.DatabaseError(err)
		}
		return &Context{EditorID: editor.EditorID, EditgroupID: eg.EditgroupID, Autoaccept: autoaccept || editor.IsBot}, nil
	}

	eg, err := models.GetEditgroup(db.WithContext(ctx), editgroupID)
	if err != nil {
		return nil, catalogerr.NotFound("editgroup", editgroupID.String())
	}
	if eg.State() == models.EditgroupAccepted {
		return nil, catalogerr.EditgroupAlreadyAccepted(editgroupID.String())
	}
	if eg.EditorID != editor.EditorID && !editor.IsAdmin && !editor.IsSuperuser {
		return nil, catalogerr.InsufficientPrivileges("editgroup owner")
	}
	return &Context{EditorID: editor.EditorID, EditgroupID: eg.EditgroupID, Autoaccept: autoaccept}, nil
}

// Check re-validates that the context's editgroup is still open for
// edits immediately before a write, closing the race between Make and
// the write itself (another caller could have accepted the editgroup in
// between).
func (c *Context) Check(ctx context.Context, db *gorm.DB) error {
	eg, err := models.GetEditgroup(db.WithContext(ctx), c.EditgroupID)
	if err != nil {
		return catalogerr.NotFound("editgroup", c.EditgroupID.String())
	}
	if !eg.IsOpenForEdits() {
		return catalogerr.EditgroupAlreadyAccepted(c.EditgroupID.String())
	}
	return nil
}

// Dedup implements the in-editgroup (entity_type, ident) de-duplication
// invariant: if this editgroup already has a pending edit against identID
// in the table named by editTable, that edit's row is deleted first so
// the caller's new one is the only one pending; last write wins within
// one editgroup.
func Dedup(ctx context.Context, db *gorm.DB, editTable string, editgroupID, identID uuid.UUID) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE editgroup_id = ? AND ident_id = ?", editTable)
	if err := db.WithContext(ctx).Exec(stmt, editgroupID, identID).Error; err != nil {
		return catalogerr.DatabaseError(err)
	}
	return nil
}
