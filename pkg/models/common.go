package models

import (
	"time"

	"github.com/google/uuid"
)

// IdentBase is the common shape of every entity's identifier row: exactly
// one of RevID/RedirectID is set (active/redirect), or both are null
// (deleted/tombstone). It is embedded into each entity-specific Ident
// struct so the seven tables share one implementation of the
// internal/entitystore.IdentRow interface via method promotion.
type IdentBase struct {
	IdentID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"ident_id"`
	IsLive     bool       `gorm:"not null;default:false" json:"is_live"`
	RevID      *uuid.UUID `gorm:"type:uuid;index" json:"rev_id,omitempty"`
	RedirectID *uuid.UUID `gorm:"type:uuid;index" json:"redirect_id,omitempty"`
}

func (b *IdentBase) GetIdentID() uuid.UUID     { return b.IdentID }
func (b *IdentBase) SetIdentID(id uuid.UUID)   { b.IdentID = id }
func (b *IdentBase) GetIsLive() bool           { return b.IsLive }
func (b *IdentBase) SetIsLive(live bool)       { b.IsLive = live }
func (b *IdentBase) GetRevID() *uuid.UUID      { return b.RevID }
func (b *IdentBase) SetRevID(id *uuid.UUID)    { b.RevID = id }
func (b *IdentBase) GetRedirectID() *uuid.UUID { return b.RedirectID }
func (b *IdentBase) SetRedirectID(id *uuid.UUID) {
	b.RedirectID = id
}

// EditBase is the common shape of every entity's edit row: if accepted,
// the identifier's ident row is set to point to rev_id, redirect_id, or
// null, with prev_rev capturing the optimistic-concurrency token.
type EditBase struct {
	EditID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"edit_id"`
	EditgroupID uuid.UUID `gorm:"type:uuid;not null;index" json:"editgroup_id"`
	IdentID     uuid.UUID `gorm:"type:uuid;not null;index" json:"ident_id"`

	RevID      *uuid.UUID `gorm:"type:uuid" json:"rev_id,omitempty"`
	RedirectID *uuid.UUID `gorm:"type:uuid" json:"redirect_id,omitempty"`
	PrevRev    *uuid.UUID `gorm:"type:uuid" json:"prev_rev,omitempty"`

	Extra JSON `gorm:"type:jsonb" json:"extra,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *EditBase) GetEditID() uuid.UUID          { return b.EditID }
func (b *EditBase) SetEditID(id uuid.UUID)        { b.EditID = id }
func (b *EditBase) GetEditgroupID() uuid.UUID     { return b.EditgroupID }
func (b *EditBase) SetEditgroupID(id uuid.UUID)   { b.EditgroupID = id }
func (b *EditBase) GetIdentID() uuid.UUID         { return b.IdentID }
func (b *EditBase) SetIdentID(id uuid.UUID)       { b.IdentID = id }
func (b *EditBase) GetRevID() *uuid.UUID          { return b.RevID }
func (b *EditBase) SetRevID(id *uuid.UUID)        { b.RevID = id }
func (b *EditBase) GetRedirectID() *uuid.UUID     { return b.RedirectID }
func (b *EditBase) SetRedirectID(id *uuid.UUID)   { b.RedirectID = id }
func (b *EditBase) GetPrevRev() *uuid.UUID        { return b.PrevRev }
func (b *EditBase) SetPrevRev(id *uuid.UUID)      { b.PrevRev = id }
func (b *EditBase) GetExtra() JSON                { return b.Extra }
func (b *EditBase) SetExtra(e JSON)               { b.Extra = e }

// RevBase is the common shape of every entity's immutable revision row.
type RevBase struct {
	RevID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"rev_id"`
	CreatedAt time.Time `json:"created_at"`
	Extra     JSON      `gorm:"type:jsonb" json:"extra,omitempty"`
}

func (b *RevBase) GetRevID() uuid.UUID   { return b.RevID }
func (b *RevBase) SetRevID(id uuid.UUID) { b.RevID = id }
