// Package acceptance implements accept_editgroup: the single serializable
// transaction that flips every affected identifier's active revision
// pointer, checks external-identifier uniqueness and redirect validity,
// and appends the one changelog row recording the acceptance.
package acceptance

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/internal/entitystore"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// Engine runs accept_editgroup against the registered set of per-entity-
// type handlers.
type Engine struct {
	db       *gorm.DB
	handlers map[string]entitystore.Handler
}

// New constructs an Engine over one Handler per entity type. handlers is
// keyed by entity type name (e.g. "release"), matching the edit table each
// handler reads; the required (entity_type, ident) lock order is realized
// here as entity type name, then ident_id.
func New(db *gorm.DB, handlers map[string]entitystore.Handler) *Engine {
	return &Engine{db: db, handlers: handlers}
}

// entityOrder is the order in which each entity type's pending edits are
// gathered; the lock order itself comes from the sort in acceptOnce
// (entity type name, then ident_id), not from this slice.
var entityOrder = []string{"container", "creator", "work", "release", "file", "fileset", "webcapture"}

// maxSerializationRetries bounds the retry loop on Postgres SQLSTATE
// 40001 (serialization failure); EditConflict/DuplicateExternalID/
// BadRedirect are invariant violations, not transient, and are never
// retried.
const maxSerializationRetries = 5

// AcceptEditgroup runs accept_editgroup(editgroupID) to completion,
// retrying on transient Postgres serialization failures with exponential
// backoff via cenkalti/backoff/v4.
func (e *Engine) AcceptEditgroup(ctx context.Context, editgroupID uuid.UUID) error {
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxSerializationRetries)
	return backoff.Retry(func() error {
		err := e.acceptOnce(ctx, editgroupID)
		if isSerializationFailure(err) {
			return err // retryable
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}, backoff.WithContext(b, ctx))
}

func (e *Engine) acceptOnce(ctx context.Context, editgroupID uuid.UUID) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET LOCAL statement_timeout = '30s'").Error; err != nil {
			return catalogerr.DatabaseError(err)
		}

		var eg models.Editgroup
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&eg, "editgroup_id = ?", editgroupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalogerr.NotFound("editgroup", editgroupID.String())
			}
			return catalogerr.DatabaseError(err)
		}
		if eg.State() == models.EditgroupAccepted {
			return catalogerr.EditgroupAlreadyAccepted(editgroupID.String())
		}

		type located struct {
			entityType string
			edit       entitystore.PendingEdit
		}
		var all []located
		for _, entityType := range entityOrder {
			h, ok := e.handlers[entityType]
			if !ok {
				continue
			}
			edits, err := h.PendingEdits(ctx, tx, editgroupID)
			if err != nil {
				return err
			}
			for _, ed := range edits {
				all = append(all, located{entityType: entityType, edit: ed})
			}
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].entityType != all[j].entityType {
				return all[i].entityType < all[j].entityType
			}
			return all[i].edit.IdentID.String() < all[j].edit.IdentID.String()
		})

		for _, loc := range all {
			h := e.handlers[loc.entityType]
			edit := loc.edit

			currentRev, _, err := h.LockIdent(ctx, tx, edit.IdentID)
			if err != nil {
				return err
			}
			if edit.PrevRev != nil || currentRev != nil {
				if !uuidPtrEqual(edit.PrevRev, currentRev) {
					return catalogerr.EditConflict(edit.IdentID.String())
				}
			}

			if edit.RedirectID != nil {
				isLive, isRedirect, err := h.RedirectTargetState(ctx, tx, *edit.RedirectID)
				if err != nil {
					return err
				}
				if !isLive || isRedirect {
					return catalogerr.BadRedirect(edit.RedirectID.String())
				}
			}

			if edit.RevID != nil {
				ids, err := h.ExternalIDs(ctx, tx, *edit.RevID)
				if err != nil {
					return err
				}
				for kind, value := range ids {
					dup, err := h.IsLiveExternalID(ctx, tx, kind, value, edit.IdentID)
					if err != nil {
						return err
					}
					if dup {
						return catalogerr.DuplicateExternalID(kind, value)
					}
				}
			}

			if err := h.ApplyAccepted(ctx, tx, edit.IdentID, edit.RevID, edit.RedirectID); err != nil {
				return err
			}
		}

		nextID, err := models.MaxChangelogID(tx)
		if err != nil {
			return catalogerr.DatabaseError(err)
		}
		nextID++
		now := time.Now().UTC()
		changelog := &models.Changelog{ID: nextID, EditgroupID: editgroupID, Timestamp: now}
		if err := tx.Create(changelog).Error; err != nil {
			return catalogerr.DatabaseError(err)
		}

		eg.ChangelogID = &nextID
		eg.AcceptedAt = &now
		if err := tx.Save(&eg).Error; err != nil {
			return catalogerr.DatabaseError(err)
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// isSerializationFailure reports whether err is a Postgres serialization
// failure (SQLSTATE 40001), the only database-level error this engine
// retries. Both lib/pq errors and driver errors exposing SQLState() (as
// the pgx-based gorm postgres driver's do) are recognised.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001"
	}
	var stateErr interface{ SQLState() string }
	if errors.As(err, &stateErr) {
		return stateErr.SQLState() == "40001"
	}
	return false
}
