package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Editor is an account that can author editgroups. Roles are additive
// flags rather than a single enum: Bot and Human are orthogonal, both
// satisfy Editor, and Admin/Superuser each imply everything below them.
type Editor struct {
	EditorID uuid.UUID `gorm:"type:uuid;primaryKey" json:"editor_id"`

	Username string `gorm:"type:varchar(64);not null;uniqueIndex" json:"username"`

	IsAdmin     bool `gorm:"not null;default:false" json:"is_admin"`
	IsBot       bool `gorm:"not null;default:false" json:"is_bot"`
	IsSuperuser bool `gorm:"not null;default:false" json:"is_superuser"`

	// AuthEpoch invalidates every token issued before this instant.
	AuthEpoch time.Time `gorm:"not null" json:"auth_epoch"`

	// WranglerID is the creating/sponsoring superuser, if any.
	WranglerID *uuid.UUID `gorm:"type:uuid" json:"wrangler_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Editor) TableName() string { return "editor" }

func (e *Editor) BeforeCreate(tx *gorm.DB) error {
	if e.EditorID == uuid.Nil {
		e.EditorID = uuid.New()
	}
	if e.AuthEpoch.IsZero() {
		e.AuthEpoch = time.Now().UTC()
	}
	return nil
}

// EditorOIDCLink binds a (provider, sub) OIDC identity to an editor.
type EditorOIDCLink struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EditorID uuid.UUID `gorm:"type:uuid;not null;index" json:"editor_id"`
	Provider string    `gorm:"type:varchar(128);not null" json:"provider"`
	Subject  string    `gorm:"type:varchar(256);not null" json:"subject"`
	Issuer   string    `gorm:"type:varchar(256);not null" json:"issuer"`

	CreatedAt time.Time `json:"created_at"`
}

func (EditorOIDCLink) TableName() string { return "editor_oidc_link" }

// GetEditorOIDCLink looks up an editor by (provider, sub).
func GetEditorOIDCLink(db *gorm.DB, provider, sub string) (*EditorOIDCLink, error) {
	var link EditorOIDCLink
	err := db.Where("provider = ? AND subject = ?", provider, sub).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetEditorByUsername looks up an editor by username.
func GetEditorByUsername(db *gorm.DB, username string) (*Editor, error) {
	var e Editor
	err := db.Where("username = ?", username).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetEditorByID looks up an editor by editor_id.
func GetEditorByID(db *gorm.DB, editorID uuid.UUID) (*Editor, error) {
	var e Editor
	err := db.First(&e, "editor_id = ?", editorID).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}
