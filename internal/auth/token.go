// Package auth implements token issuance/verification, role checks,
// editgroup ownership checks, and OIDC account linkage.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// claims is the JWT payload: editor-id principal, issued-at and optional
// expiry. The key-id identifying which server key signed it travels in
// the token header. The token itself is treated as opaque by callers.
type claims struct {
	EditorID string `json:"editor_id"`
	jwt.RegisteredClaims
}

// DefaultTokenLifetime is the expiry applied to interactively-issued
// tokens when the caller does not specify one.
const DefaultTokenLifetime = 24 * time.Hour

// OIDCTokenLifetime is the fixed 31-day lifetime issued on successful
// OIDC account linkage.
const OIDCTokenLifetime = 31 * 24 * time.Hour

// Issue mints a bearer token for editorID, signed with the KeyRing's
// current active key.
func Issue(keys *KeyRing, editorID uuid.UUID, lifetime time.Duration) (string, error) {
	kid, key := keys.Active()
	if key == nil {
		return "", catalogerr.InternalError("no active signing key", nil)
	}
	now := time.Now().UTC()
	c := claims{
		EditorID: editorID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if lifetime != 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(lifetime))
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	tok.Header["kid"] = kid
	return tok.SignedString(key)
}

// Verify implements the five-step token verification: parse, verify
// signature against the key named by the token's kid, look up the
// editor, check auth-epoch revocation, check expiry.
func Verify(ctx context.Context, db *gorm.DB, keys *KeyRing, token string) (*models.Editor, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		key, ok := keys.Lookup(kid)
		if !ok {
			return nil, catalogerr.InvalidCredentials("unknown signing key")
		}
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, catalogerr.InvalidCredentials("malformed or invalid token")
	}
	c, ok := parsed.Claims.(*claims)
	if !ok {
		return nil, catalogerr.InvalidCredentials("malformed token claims")
	}
	editorID, err := uuid.Parse(c.EditorID)
	if err != nil {
		return nil, catalogerr.InvalidCredentials("malformed editor id")
	}

	editor, err := models.GetEditorByID(db.WithContext(ctx), editorID)
	if err != nil {
		return nil, catalogerr.NotFound("editor", editorID.String())
	}

	// iat carries whole seconds only, so the epoch is compared at the same
	// precision.
	if c.IssuedAt != nil && c.IssuedAt.Time.Before(editor.AuthEpoch.Truncate(time.Second)) {
		return nil, catalogerr.InvalidCredentials("token revoked")
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Time.Before(time.Now().UTC()) {
		return nil, catalogerr.InvalidCredentials("token expired")
	}
	return editor, nil
}
