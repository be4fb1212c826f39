// Package catalog wires the seven thin per-entity-type stores (release,
// file, fileset, webcapture, container, creator, work) atop the generic
// internal/entitystore.Store, and exposes them as a single registry the
// acceptance engine and lookup dispatch both consume.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/internal/entitystore"
	"github.com/fatcat-project/fatcat/internal/lookup"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// Catalog holds one Store per entity type.
type Catalog struct {
	db *gorm.DB

	Container  *entitystore.Store[*models.ContainerIdent, *models.ContainerEdit, *models.ContainerRevision]
	Creator    *entitystore.Store[*models.CreatorIdent, *models.CreatorEdit, *models.CreatorRevision]
	Work       *entitystore.Store[*models.WorkIdent, *models.WorkEdit, *models.WorkRevision]
	Release    *entitystore.Store[*models.ReleaseIdent, *models.ReleaseEdit, *models.ReleaseRevision]
	File       *entitystore.Store[*models.FileIdent, *models.FileEdit, *models.FileRevision]
	Fileset    *entitystore.Store[*models.FilesetIdent, *models.FilesetEdit, *models.FilesetRevision]
	Webcapture *entitystore.Store[*models.WebcaptureIdent, *models.WebcaptureEdit, *models.WebcaptureRevision]
}

// New constructs every entity type's store against db and registers each
// revision type's external-id extractor where one exists.
func New(db *gorm.DB) *Catalog {
	c := &Catalog{
		db: db,

		Container: entitystore.New(db, "container",
			func() *models.ContainerIdent { return &models.ContainerIdent{} },
			func() *models.ContainerEdit { return &models.ContainerEdit{} },
			func() *models.ContainerRevision { return &models.ContainerRevision{} },
		).WithExternalIDs((*models.ContainerRevision).ExternalIDs),

		Creator: entitystore.New(db, "creator",
			func() *models.CreatorIdent { return &models.CreatorIdent{} },
			func() *models.CreatorEdit { return &models.CreatorEdit{} },
			func() *models.CreatorRevision { return &models.CreatorRevision{} },
		).WithExternalIDs((*models.CreatorRevision).ExternalIDs),

		Work: entitystore.New(db, "work",
			func() *models.WorkIdent { return &models.WorkIdent{} },
			func() *models.WorkEdit { return &models.WorkEdit{} },
			func() *models.WorkRevision { return &models.WorkRevision{} },
		).WithExternalIDs((*models.WorkRevision).ExternalIDs),

		Release: entitystore.New(db, "release",
			func() *models.ReleaseIdent { return &models.ReleaseIdent{} },
			func() *models.ReleaseEdit { return &models.ReleaseEdit{} },
			func() *models.ReleaseRevision { return &models.ReleaseRevision{} },
		).WithExternalIDs((*models.ReleaseRevision).ExternalIDs),

		File: entitystore.New(db, "file",
			func() *models.FileIdent { return &models.FileIdent{} },
			func() *models.FileEdit { return &models.FileEdit{} },
			func() *models.FileRevision { return &models.FileRevision{} },
		).WithExternalIDs((*models.FileRevision).ExternalIDs),

		Fileset: entitystore.New(db, "fileset",
			func() *models.FilesetIdent { return &models.FilesetIdent{} },
			func() *models.FilesetEdit { return &models.FilesetEdit{} },
			func() *models.FilesetRevision { return &models.FilesetRevision{} },
		).WithExternalIDs((*models.FilesetRevision).ExternalIDs),

		Webcapture: entitystore.New(db, "webcapture",
			func() *models.WebcaptureIdent { return &models.WebcaptureIdent{} },
			func() *models.WebcaptureEdit { return &models.WebcaptureEdit{} },
			func() *models.WebcaptureRevision { return &models.WebcaptureRevision{} },
		).WithExternalIDs((*models.WebcaptureRevision).ExternalIDs),
	}
	return c
}

// Handlers returns every entity type's type-erased Handler, keyed by
// entity type name, for internal/acceptance.New.
func (c *Catalog) Handlers() map[string]entitystore.Handler {
	return map[string]entitystore.Handler{
		"container":  c.Container.Handler(),
		"creator":    c.Creator.Handler(),
		"work":       c.Work.Handler(),
		"release":    c.Release.Handler(),
		"file":       c.File.Handler(),
		"fileset":    c.Fileset.Handler(),
		"webcapture": c.Webcapture.Handler(),
	}
}

// Lookup resolves an external-identifier query against entityType,
// dispatching to that entity type's Handler, which also satisfies
// lookup.Resolver.
func (c *Catalog) Lookup(ctx context.Context, entityType string, params lookup.Params) (identID, revID uuid.UUID, err error) {
	h, ok := c.Handlers()[entityType]
	if !ok {
		return uuid.Nil, uuid.Nil, catalogerr.NotFound("entity_type", entityType)
	}
	r, ok := h.(lookup.Resolver)
	if !ok {
		return uuid.Nil, uuid.Nil, catalogerr.InternalError("entity type handler does not support lookup", nil)
	}
	return lookup.Resolve(ctx, r, entityType, params)
}
