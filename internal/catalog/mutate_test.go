package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatcat-project/fatcat/internal/catalog"
	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/pkg/models"
)

func TestCreateEntityStagesEditInFreshEditgroup(t *testing.T) {
	db := testDB(t)
	cat := catalog.New(db)

	editor := &models.Editor{EditorID: uuid.New(), Username: "alice"}
	require.NoError(t, db.Create(editor).Error)

	rev := &models.ContainerRevision{Name: "Journal of Examples"}
	rev.RevID = uuid.New()

	edit, ectx, err := catalog.CreateEntity(context.Background(), cat, cat.Container, catalog.MutationRequest{
		EditorID: editor.EditorID,
	}, rev)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, ectx.EditgroupID)
	assert.Equal(t, ectx.EditgroupID, edit.GetEditgroupID())

	ident, err := cat.Container.Get(context.Background(), edit.GetIdentID())
	require.NoError(t, err)
	assert.False(t, ident.GetIsLive(), "not live until the editgroup is accepted")
}

func TestCreateEntityRejectsUnknownEditor(t *testing.T) {
	db := testDB(t)
	cat := catalog.New(db)

	rev := &models.ContainerRevision{Name: "Journal of Examples"}
	rev.RevID = uuid.New()

	_, _, err := catalog.CreateEntity(context.Background(), cat, cat.Container, catalog.MutationRequest{
		EditorID: uuid.New(),
	}, rev)
	require.Error(t, err)
	assert.True(t, catalogerr.Is(err, catalogerr.KindNotFound))
}

func TestCreateEntityRejectsEditgroupOwnedByAnotherEditor(t *testing.T) {
	db := testDB(t)
	cat := catalog.New(db)

	owner := &models.Editor{EditorID: uuid.New(), Username: "owner"}
	other := &models.Editor{EditorID: uuid.New(), Username: "other"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(other).Error)

	eg := &models.Editgroup{EditgroupID: uuid.New(), EditorID: owner.EditorID}
	require.NoError(t, db.Create(eg).Error)

	rev := &models.ContainerRevision{Name: "Journal of Examples"}
	rev.RevID = uuid.New()

	_, _, err := catalog.CreateEntity(context.Background(), cat, cat.Container, catalog.MutationRequest{
		EditorID:    other.EditorID,
		EditgroupID: eg.EditgroupID,
	}, rev)
	require.Error(t, err)
	assert.True(t, catalogerr.Is(err, catalogerr.KindInsufficientPrivilege))
}

func TestCreateEntityRejectsAlreadyAcceptedEditgroup(t *testing.T) {
	db := testDB(t)
	cat := catalog.New(db)

	editor := &models.Editor{EditorID: uuid.New(), Username: "alice"}
	require.NoError(t, db.Create(editor).Error)

	changelogID := int64(1)
	eg := &models.Editgroup{EditgroupID: uuid.New(), EditorID: editor.EditorID, ChangelogID: &changelogID}
	require.NoError(t, db.Create(eg).Error)

	rev := &models.ContainerRevision{Name: "Journal of Examples"}
	rev.RevID = uuid.New()

	_, _, err := catalog.CreateEntity(context.Background(), cat, cat.Container, catalog.MutationRequest{
		EditorID:    editor.EditorID,
		EditgroupID: eg.EditgroupID,
	}, rev)
	require.Error(t, err)
	assert.True(t, catalogerr.Is(err, catalogerr.KindEditgroupAccepted))
}

func TestUpdateEntityStagesSecondEditInSameEditgroup(t *testing.T) {
	db := testDB(t)
	cat := catalog.New(db)

	editor := &models.Editor{EditorID: uuid.New(), Username: "alice"}
	require.NoError(t, db.Create(editor).Error)

	rev1 := &models.ContainerRevision{Name: "Journal of Examples"}
	rev1.RevID = uuid.New()
	createEdit, ectx, err := catalog.CreateEntity(context.Background(), cat, cat.Container, catalog.MutationRequest{
		EditorID: editor.EditorID,
	}, rev1)
	require.NoError(t, err)

	rev2 := &models.ContainerRevision{Name: "Journal of Examples, 2nd ed."}
	rev2.RevID = uuid.New()
	updateEdit, _, err := catalog.UpdateEntity(context.Background(), cat, cat.Container, catalog.MutationRequest{
		EditorID:    editor.EditorID,
		EditgroupID: ectx.EditgroupID,
	}, createEdit.GetIdentID(), rev2, nil)
	require.NoError(t, err)

	pending, err := cat.Container.PendingEdits(context.Background(), db, ectx.EditgroupID)
	require.NoError(t, err)
	require.Len(t, pending, 1, "the update must overwrite the prior pending create, not add a second edit")
	assert.Equal(t, updateEdit.GetEditID(), pending[0].GetEditID())
}
