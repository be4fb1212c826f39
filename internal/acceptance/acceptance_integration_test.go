//go:build integration
// +build integration

package acceptance_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	postgresmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fatcat-project/fatcat/internal/acceptance"
	"github.com/fatcat-project/fatcat/internal/catalog"
	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// setupPostgres starts an ephemeral Postgres container and returns a gorm
// connection with every catalog table created. The acceptance engine
// issues a Postgres-only "SET LOCAL statement_timeout" per accept, so
// these scenarios only exercise correctly against real Postgres, not the
// sqlite path the rest of the unit suite uses.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgresmodule.Run(ctx, "postgres:16-alpine",
		postgresmodule.WithDatabase("fatcat_test"),
		postgresmodule.WithUsername("fatcat"),
		postgresmodule.WithPassword("fatcat"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.ModelsToAutoMigrate()...))
	return db
}

func openEditgroup(t *testing.T, db *gorm.DB, editorID uuid.UUID) *models.Editgroup {
	t.Helper()
	eg := &models.Editgroup{EditgroupID: uuid.New(), EditorID: editorID}
	require.NoError(t, db.Create(eg).Error)
	return eg
}

func TestAcceptEditgroupAppliesEdits(t *testing.T) {
	db := setupPostgres(t)
	cat := catalog.New(db)
	engine := acceptance.New(db, cat.Handlers())

	editor := &models.Editor{EditorID: uuid.New(), Username: "alice"}
	require.NoError(t, db.Create(editor).Error)
	eg := openEditgroup(t, db, editor.EditorID)

	rev := &models.CreatorRevision{DisplayName: "Ada Lovelace"}
	rev.RevID = uuid.New()
	edit, err := cat.Creator.CreateEdit(context.Background(), eg.EditgroupID, rev)
	require.NoError(t, err)

	require.NoError(t, engine.AcceptEditgroup(context.Background(), eg.EditgroupID))

	ident, err := cat.Creator.Get(context.Background(), edit.GetIdentID())
	require.NoError(t, err)
	require.True(t, ident.GetIsLive())

	var reloaded models.Editgroup
	require.NoError(t, db.First(&reloaded, "editgroup_id = ?", eg.EditgroupID).Error)
	require.NotNil(t, reloaded.AcceptedAt)
	require.NotNil(t, reloaded.ChangelogID)
}

func TestAcceptEditgroupDetectsEditConflict(t *testing.T) {
	db := setupPostgres(t)
	cat := catalog.New(db)
	engine := acceptance.New(db, cat.Handlers())

	editor := &models.Editor{EditorID: uuid.New(), Username: "bob"}
	require.NoError(t, db.Create(editor).Error)

	eg1 := openEditgroup(t, db, editor.EditorID)
	rev1 := &models.CreatorRevision{DisplayName: "Original"}
	rev1.RevID = uuid.New()
	edit1, err := cat.Creator.CreateEdit(context.Background(), eg1.EditgroupID, rev1)
	require.NoError(t, err)
	require.NoError(t, engine.AcceptEditgroup(context.Background(), eg1.EditgroupID))

	// Two editgroups both claim to update from the same (now stale) prev_rev.
	eg2 := openEditgroup(t, db, editor.EditorID)
	eg3 := openEditgroup(t, db, editor.EditorID)

	revA := &models.CreatorRevision{DisplayName: "Edit A"}
	revA.RevID = uuid.New()
	_, err = cat.Creator.UpdateEdit(context.Background(), eg2.EditgroupID, edit1.GetIdentID(), revA, edit1.GetRevID())
	require.NoError(t, err)
	require.NoError(t, engine.AcceptEditgroup(context.Background(), eg2.EditgroupID))

	revB := &models.CreatorRevision{DisplayName: "Edit B"}
	revB.RevID = uuid.New()
	_, err = cat.Creator.UpdateEdit(context.Background(), eg3.EditgroupID, edit1.GetIdentID(), revB, edit1.GetRevID())
	require.NoError(t, err)

	err = engine.AcceptEditgroup(context.Background(), eg3.EditgroupID)
	require.Error(t, err)
	require.True(t, catalogerr.Is(err, catalogerr.KindEditConflict))
}

func TestAcceptEditgroupRejectsAlreadyAccepted(t *testing.T) {
	db := setupPostgres(t)
	cat := catalog.New(db)
	engine := acceptance.New(db, cat.Handlers())

	editor := &models.Editor{EditorID: uuid.New(), Username: "carol"}
	require.NoError(t, db.Create(editor).Error)
	eg := openEditgroup(t, db, editor.EditorID)

	rev := &models.CreatorRevision{DisplayName: "Once"}
	rev.RevID = uuid.New()
	_, err := cat.Creator.CreateEdit(context.Background(), eg.EditgroupID, rev)
	require.NoError(t, err)

	require.NoError(t, engine.AcceptEditgroup(context.Background(), eg.EditgroupID))

	err = engine.AcceptEditgroup(context.Background(), eg.EditgroupID)
	require.Error(t, err)
	require.True(t, catalogerr.Is(err, catalogerr.KindEditgroupAccepted))
}

func TestAcceptEditgroupRejectsDuplicateExternalID(t *testing.T) {
	db := setupPostgres(t)
	cat := catalog.New(db)
	engine := acceptance.New(db, cat.Handlers())

	editor := &models.Editor{EditorID: uuid.New(), Username: "dave"}
	require.NoError(t, db.Create(editor).Error)

	orcid := "0000-0002-1825-0097"

	eg1 := openEditgroup(t, db, editor.EditorID)
	rev1 := &models.CreatorRevision{DisplayName: "First", Orcid: &orcid}
	rev1.RevID = uuid.New()
	_, err := cat.Creator.CreateEdit(context.Background(), eg1.EditgroupID, rev1)
	require.NoError(t, err)
	require.NoError(t, engine.AcceptEditgroup(context.Background(), eg1.EditgroupID))

	eg2 := openEditgroup(t, db, editor.EditorID)
	rev2 := &models.CreatorRevision{DisplayName: "Second", Orcid: &orcid}
	rev2.RevID = uuid.New()
	_, err = cat.Creator.CreateEdit(context.Background(), eg2.EditgroupID, rev2)
	require.NoError(t, err)

	err = engine.AcceptEditgroup(context.Background(), eg2.EditgroupID)
	require.Error(t, err)
	require.True(t, catalogerr.Is(err, catalogerr.KindDuplicateExternalID))
}

func TestAcceptEditgroupTimesOutStatementsEventually(t *testing.T) {
	// Smoke-checks that SET LOCAL statement_timeout is accepted by
	// Postgres and doesn't break a well-behaved accept.
	db := setupPostgres(t)
	cat := catalog.New(db)
	engine := acceptance.New(db, cat.Handlers())

	editor := &models.Editor{EditorID: uuid.New(), Username: "erin"}
	require.NoError(t, db.Create(editor).Error)
	eg := openEditgroup(t, db, editor.EditorID)

	rev := &models.CreatorRevision{DisplayName: "Quick"}
	rev.RevID = uuid.New()
	_, err := cat.Creator.CreateEdit(context.Background(), eg.EditgroupID, rev)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- engine.AcceptEditgroup(context.Background(), eg.EditgroupID) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(35 * time.Second):
		t.Fatal("accept did not complete within the statement timeout window")
	}
}
