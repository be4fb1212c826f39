package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fatcat-project/fatcat/internal/catalog"
	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/internal/externalid"
	"github.com/fatcat-project/fatcat/internal/lookup"
	"github.com/fatcat-project/fatcat/pkg/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.ModelsToAutoMigrate()...))
	return db
}

func TestHandlersCoverAllSevenEntityTypes(t *testing.T) {
	cat := catalog.New(testDB(t))
	handlers := cat.Handlers()
	for _, entityType := range []string{"container", "creator", "work", "release", "file", "fileset", "webcapture"} {
		h, ok := handlers[entityType]
		require.True(t, ok, "missing handler for %s", entityType)
		assert.Equal(t, entityType, h.EntityType())
	}
}

func TestCatalogLookupDispatchesToEntityType(t *testing.T) {
	db := testDB(t)
	cat := catalog.New(db)

	orcid := "0000-0002-1825-0097"
	rev := &models.CreatorRevision{DisplayName: "Ada Lovelace", Orcid: &orcid}
	rev.RevID = uuid.New()
	edit, err := cat.Creator.CreateEdit(context.Background(), uuid.New(), rev)
	require.NoError(t, err)
	require.NoError(t, cat.Creator.ApplyAccepted(context.Background(), edit))

	identID, _, err := cat.Lookup(context.Background(), "creator", lookup.Params{
		externalid.KindORCID: orcid,
	})
	require.NoError(t, err)
	assert.Equal(t, edit.GetIdentID(), identID)
}

func TestCatalogLookupRejectsUnknownEntityType(t *testing.T) {
	cat := catalog.New(testDB(t))
	_, _, err := cat.Lookup(context.Background(), "nonsense", lookup.Params{})
	require.Error(t, err)
	assert.True(t, catalogerr.Is(err, catalogerr.KindNotFound))
}
