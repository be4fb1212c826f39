package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Editgroup is a batch of edits reviewed and accepted together.
//
// State is derived, not stored directly: OPEN while SubmittedAt and
// ChangelogID are both unset, SUBMITTED once SubmittedAt is set but before
// acceptance, ACCEPTED once ChangelogID is set (terminal).
type Editgroup struct {
	EditgroupID uuid.UUID `gorm:"type:uuid;primaryKey" json:"editgroup_id"`

	EditorID uuid.UUID `gorm:"type:uuid;not null;index" json:"editor_id"`

	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`

	// ChangelogID is set exactly once, at acceptance, and never changes
	// after.
	ChangelogID *int64 `gorm:"uniqueIndex" json:"changelog_id,omitempty"`

	Description *string `json:"description,omitempty"`
	Extra       JSON    `gorm:"type:jsonb" json:"extra,omitempty"`
}

func (Editgroup) TableName() string { return "editgroup" }

func (e *Editgroup) BeforeCreate(tx *gorm.DB) error {
	if e.EditgroupID == uuid.Nil {
		e.EditgroupID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return nil
}

// EditgroupState enumerates the derived editgroup lifecycle state.
type EditgroupState string

const (
	EditgroupOpen      EditgroupState = "open"
	EditgroupSubmitted EditgroupState = "submitted"
	EditgroupAccepted  EditgroupState = "accepted"
)

// State derives the editgroup's current lifecycle state.
func (e *Editgroup) State() EditgroupState {
	switch {
	case e.ChangelogID != nil:
		return EditgroupAccepted
	case e.SubmittedAt != nil:
		return EditgroupSubmitted
	default:
		return EditgroupOpen
	}
}

// IsOpenForEdits reports whether the editgroup still accepts mutations.
// Submission does not forbid further edits by the owner, so both OPEN
// and SUBMITTED accept mutations; only ACCEPTED is terminal.
func (e *Editgroup) IsOpenForEdits() bool {
	return e.State() != EditgroupAccepted
}

// GetEditgroup loads an editgroup by id.
func GetEditgroup(db *gorm.DB, id uuid.UUID) (*Editgroup, error) {
	var eg Editgroup
	if err := db.First(&eg, "editgroup_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &eg, nil
}

// Changelog is the append-only, totally ordered record of accepted
// editgroups: ids form a contiguous strictly increasing sequence from 1.
type Changelog struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EditgroupID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"editgroup_id"`
	Timestamp   time.Time `gorm:"not null" json:"timestamp"`
}

func (Changelog) TableName() string { return "changelog" }

// MaxChangelogID returns the current maximum changelog id, or 0 if the
// changelog is empty.
func MaxChangelogID(db *gorm.DB) (int64, error) {
	var max *int64
	if err := db.Model(&Changelog{}).Select("MAX(id)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// EditorChangelog returns changelog entries for editgroups accepted by
// the given editor, newest first. The changelog is defined over
// editgroups, not edits, so "an editor's changelog" means editgroups
// they authored that were later accepted.
func EditorChangelog(db *gorm.DB, editorID uuid.UUID, limit int) ([]Changelog, error) {
	var entries []Changelog
	q := db.Joins("JOIN editgroup ON editgroup.editgroup_id = changelog.editgroup_id").
		Where("editgroup.editor_id = ?", editorID).
		Order("changelog.id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
