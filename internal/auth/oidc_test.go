package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatcat-project/fatcat/internal/auth"
	"github.com/fatcat-project/fatcat/internal/catalogerr"
	"github.com/fatcat-project/fatcat/pkg/models"
)

func TestAuthOIDCRequiresSuperuserCaller(t *testing.T) {
	db := testDB(t)
	keys := auth.NewKeyRing(map[string][]byte{"k1": []byte("secret1")}, "k1")
	plain := &models.Editor{EditorID: uuid.New()}

	_, err := auth.AuthOIDC(context.Background(), db, keys, plain, "google", "sub-1", "alice", "https://accounts.example")
	require.Error(t, err)
	assert.True(t, catalogerr.Is(err, catalogerr.KindInsufficientPrivilege))
}

func TestAuthOIDCCreatesNewEditorOnFirstLink(t *testing.T) {
	db := testDB(t)
	keys := auth.NewKeyRing(map[string][]byte{"k1": []byte("secret1")}, "k1")
	superuser := &models.Editor{EditorID: uuid.New(), IsSuperuser: true}
	require.NoError(t, db.Create(superuser).Error)

	result, err := auth.AuthOIDC(context.Background(), db, keys, superuser, "google", "sub-1", "alice", "https://accounts.example")
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "alice", result.Editor.Username)
	assert.NotEmpty(t, result.Token)

	link, err := models.GetEditorOIDCLink(db, "google", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, result.Editor.EditorID, link.EditorID)
}

func TestAuthOIDCReturnsExistingEditorOnRelink(t *testing.T) {
	db := testDB(t)
	keys := auth.NewKeyRing(map[string][]byte{"k1": []byte("secret1")}, "k1")
	superuser := &models.Editor{EditorID: uuid.New(), IsSuperuser: true}
	require.NoError(t, db.Create(superuser).Error)

	first, err := auth.AuthOIDC(context.Background(), db, keys, superuser, "google", "sub-1", "alice", "https://accounts.example")
	require.NoError(t, err)

	second, err := auth.AuthOIDC(context.Background(), db, keys, superuser, "google", "sub-1", "alice", "https://accounts.example")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Editor.EditorID, second.Editor.EditorID)
}

func TestAuthOIDCUniquifiesCollidingUsername(t *testing.T) {
	db := testDB(t)
	keys := auth.NewKeyRing(map[string][]byte{"k1": []byte("secret1")}, "k1")
	superuser := &models.Editor{EditorID: uuid.New(), IsSuperuser: true}
	require.NoError(t, db.Create(superuser).Error)
	require.NoError(t, db.Create(&models.Editor{EditorID: uuid.New(), Username: "alice"}).Error)

	result, err := auth.AuthOIDC(context.Background(), db, keys, superuser, "google", "sub-2", "alice", "https://accounts.example")
	require.NoError(t, err)
	assert.NotEqual(t, "alice", result.Editor.Username)
	assert.Contains(t, result.Editor.Username, "alice")
}
