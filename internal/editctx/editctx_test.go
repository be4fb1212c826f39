package editctx_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/internal/editctx"
	"github.com/fatcat-project/fatcat/pkg/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.ModelsToAutoMigrate()...))
	return db
}

func TestMakeCreatesFreshEditgroupWhenNilGiven(t *testing.T) {
	db := testDB(t)
	editor := &models.Editor{EditorID: uuid.New(), Username: "alice"}
	require.NoError(t, db.Create(editor).Error)

	c, err := editctx.Make(context.Background(), db, editor.EditorID, uuid.Nil, false)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.EditgroupID)
	assert.False(t, c.Autoaccept)
}

func TestMakeForcesAutoacceptForBots(t *testing.T) {
	db := testDB(t)
	bot := &models.Editor{EditorID: uuid.New(), Username: "ingest-bot", IsBot: true}
	require.NoError(t, db.Create(bot).Error)

	c, err := editctx.Make(context.Background(), db, bot.EditorID, uuid.Nil, false)
	require.NoError(t, err)
	assert.True(t, c.Autoaccept, "bot-authored editgroups always autoaccept")
}

func TestMakeRejectsUnknownEditor(t *testing.T) {
	db := testDB(t)
	_, err := editctx.Make(context.Background(), db, uuid.New(), uuid.Nil, false)
	require.Error(t, err)
	assert.True(t, catalogerr.Is(err, catalogerr.KindNotFound))
}

func TestMakeRejectsForeignEditgroup(t *testing.T) {
	db := testDB(t)
	owner := &models.Editor{EditorID: uuid.New(), Username: "owner"}
	other := &models.Editor{EditorID: uuid.New(), Username: "other"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(other).Error)

	eg := &models.Editgroup{EditgroupID: uuid.New(), EditorID: owner.EditorID}
	require.NoError(t, db.Create(eg).Error)

	_, err := editctx.Make(context.Background(), db, other.EditorID, eg.EditgroupID, false)
	require.Error(t, err)
	assert.True(t, catalogerr.Is(err, catalogerr.KindInsufficientPrivilege))
}

func TestMakeRejectsAcceptedEditgroup(t *testing.T) {
	db := testDB(t)
	editor := &models.Editor{EditorID: uuid.New(), Username: "alice"}
	require.NoError(t, db.Create(editor).Error)

	changelogID := int64(1)
	eg := &models.Editgroup{EditgroupID: uuid.New(), EditorID: editor.EditorID, ChangelogID: &changelogID}
	require.NoError(t, db.Create(eg).Error)

	_, err := editctx.Make(context.Background(), db, editor.EditorID, eg.EditgroupID, false)
	require.Error(t, err)
	assert.True(t, catalogerr.Is(err, catalogerr.KindEditgroupAccepted))
}

func TestCheckRevalidatesOpenState(t *testing.T) {
	db := testDB(t)
	editor := &models.Editor{EditorID: uuid.New(), Username: "alice"}
	require.NoError(t, db.Create(editor).Error)

	c, err := editctx.Make(context.Background(), db, editor.EditorID, uuid.Nil, false)
	require.NoError(t, err)
	require.NoError(t, c.Check(context.Background(), db))

	var eg models.Editgroup
	require.NoError(t, db.First(&eg, "editgroup_id = ?", c.EditgroupID).Error)
	changelogID := int64(1)
	eg.ChangelogID = &changelogID
	require.NoError(t, db.Save(&eg).Error)

	err = c.Check(context.Background(), db)
	require.Error(t, err)
	assert.True(t, catalogerr.Is(err, catalogerr.KindEditgroupAccepted))
}

func TestDedupRemovesPriorPendingEditInEditgroup(t *testing.T) {
	db := testDB(t)
	editgroupID := uuid.New()
	identID := uuid.New()

	edit := &models.CreatorEdit{}
	edit.EditID = uuid.New()
	edit.EditgroupID = editgroupID
	edit.IdentID = identID
	require.NoError(t, db.Create(edit).Error)

	require.NoError(t, editctx.Dedup(context.Background(), db, "creator_edit", editgroupID, identID))

	var count int64
	require.NoError(t, db.Model(&models.CreatorEdit{}).Where("editgroup_id = ? AND ident_id = ?", editgroupID, identID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
