package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthToken records a JWT issued to an editor, keyed by its jti claim, so
// that issued_at/expiry/revocation bookkeeping can be audited and a
// specific token revoked independent of the blanket Editor.AuthEpoch-based
// revocation.
//
// The JWT itself is never stored; only its metadata is. Nothing in
// internal/auth reads or writes this table: the tokens it issues carry no
// jti claim, and verifying one checks the signature, expiry and
// Editor.AuthEpoch without looking here.
type AuthToken struct {
	JTI uuid.UUID `gorm:"type:uuid;primaryKey" json:"jti"`

	EditorID uuid.UUID `gorm:"type:uuid;not null;index" json:"editor_id"`
	KeyID    string    `gorm:"type:varchar(64);not null" json:"key_id"`

	IssuedAt time.Time  `gorm:"not null" json:"issued_at"`
	Expiry   *time.Time `json:"expiry,omitempty"`

	Revoked bool `gorm:"not null;default:false" json:"revoked"`
}

func (AuthToken) TableName() string { return "auth_token" }

func (t *AuthToken) BeforeCreate(tx *gorm.DB) error {
	if t.JTI == uuid.Nil {
		t.JTI = uuid.New()
	}
	return nil
}

// GetAuthToken loads a token record by jti.
func GetAuthToken(db *gorm.DB, jti uuid.UUID) (*AuthToken, error) {
	var t AuthToken
	if err := db.First(&t, "jti = ?", jti).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Revoke marks the token record as revoked.
func (t *AuthToken) Revoke(db *gorm.DB) error {
	t.Revoked = true
	return db.Model(t).Update("revoked", true).Error
}
