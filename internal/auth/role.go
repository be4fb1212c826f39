package auth

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// Role is a privilege level in the hierarchy Public ⊂ Human|Bot ⊂ Editor
// ⊂ Admin ⊂ Superuser. Human and Bot are orthogonal flags, both
// satisfying Editor, rather than two more hierarchy rungs.
type Role string

const (
	RolePublic    Role = "public"
	RoleEditor    Role = "editor"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

// rank orders roles for the "R or higher" comparison RequireRole performs.
var rank = map[Role]int{
	RolePublic:    0,
	RoleEditor:    1,
	RoleAdmin:     2,
	RoleSuperuser: 3,
}

// editorRole derives the highest role editor satisfies. Any authenticated
// editor (bot or human) satisfies at least RoleEditor.
func editorRole(editor *models.Editor) Role {
	switch {
	case editor.IsSuperuser:
		return RoleSuperuser
	case editor.IsAdmin:
		return RoleAdmin
	default:
		return RoleEditor
	}
}

// RequireRole checks that editor satisfies required or a more privileged
// role; a nil editor satisfies only RolePublic.
func RequireRole(editor *models.Editor, required Role) error {
	var have Role = RolePublic
	if editor != nil {
		have = editorRole(editor)
	}
	if rank[have] < rank[required] {
		return catalogerr.InsufficientPrivileges(string(required))
	}
	return nil
}

// RequireEditgroup loads editgroupID, failing NotFound if missing or
// EditgroupAlreadyAccepted if closed, and checks the caller is either the
// owning editor or Admin-or-above.
func RequireEditgroup(ctx context.Context, db *gorm.DB, editor *models.Editor, editgroupID uuid.UUID) (*models.Editgroup, error) {
	eg, err := models.GetEditgroup(db.WithContext(ctx), editgroupID)
	if err != nil {
		return nil, catalogerr.NotFound("editgroup", editgroupID.String())
	}
	if eg.State() == models.EditgroupAccepted {
		return nil, catalogerr.EditgroupAlreadyAccepted(editgroupID.String())
	}
	if editor == nil {
		return nil, catalogerr.InsufficientPrivileges(string(RoleEditor))
	}
	if editor.EditorID == eg.EditorID {
		return eg, nil
	}
	if err := RequireRole(editor, RoleAdmin); err != nil {
		return nil, err
	}
	return eg, nil
}
