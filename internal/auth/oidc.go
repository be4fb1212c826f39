package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/forPelevin/gomoji"
	"gorm.io/gorm"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// OIDCResult is returned by AuthOIDC: the resolved editor and whether a
// new account was created for this call.
type OIDCResult struct {
	Editor  *models.Editor
	Created bool
	Token   string
}

// AuthOIDC implements auth_oidc(provider, sub, preferred_username, iss):
// the caller (a server-to-server OIDC callback handler such as
// Provider.ExchangeAndLink) has already verified the ID token against the provider's
// discovery document via coreos/go-oidc/v3 and extracted a verified
// (provider, sub, preferred_username, iss) tuple; this call only performs
// the account-linkage side of the protocol. caller must hold Superuser.
func AuthOIDC(ctx context.Context, db *gorm.DB, keys *KeyRing, caller *models.Editor, provider, sub, preferredUsername, iss string) (*OIDCResult, error) {
	if err := RequireRole(caller, RoleSuperuser); err != nil {
		return nil, err
	}

	link, err := models.GetEditorOIDCLink(db.WithContext(ctx), provider, sub)
	if err == nil {
		editor, err := models.GetEditorByID(db.WithContext(ctx), link.EditorID)
		if err != nil {
			return nil, catalogerr.NotFound("editor", link.EditorID.String())
		}
		tok, err := Issue(keys, editor.EditorID, OIDCTokenLifetime)
		if err != nil {
			return nil, err
		}
		return &OIDCResult{Editor: editor, Created: false, Token: tok}, nil
	}

	username, err := uniqueUsername(db, preferredUsername)
	if err != nil {
		return nil, err
	}

	var editor *models.Editor
	txErr := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		editor = &models.Editor{Username: username}
		if err := tx.Create(editor).Error; err != nil {
			return catalogerr.DatabaseError(err)
		}
		oidcLink := &models.EditorOIDCLink{
			EditorID: editor.EditorID,
			Provider: provider,
			Subject:  sub,
			Issuer:   iss,
		}
		if err := tx.Create(oidcLink).Error; err != nil {
			return catalogerr.DatabaseError(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	tok, err := Issue(keys, editor.EditorID, OIDCTokenLifetime)
	if err != nil {
		return nil, err
	}
	return &OIDCResult{Editor: editor, Created: true, Token: tok}, nil
}

// uniqueUsername strips emoji from preferred (forPelevin/gomoji) and
// appends a numeric suffix on collision until a free username is found.
func uniqueUsername(db *gorm.DB, preferred string) (string, error) {
	base := gomoji.RemoveEmojis(preferred)
	if base == "" {
		base = "editor"
	}
	candidate := base
	for i := 0; i < 1000; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		_, err := models.GetEditorByUsername(db, candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", catalogerr.DatabaseError(err)
		}
	}
	return "", catalogerr.UsernameTaken(preferred)
}
