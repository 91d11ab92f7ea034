package memory

import (
	"context"
	"testing"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertFiles(t *testing.T, store *FileStore, userID string, parent domain.ParentRef, n int) []domain.File {
	t.Helper()

	ctx := context.Background()
	files := make([]domain.File, 0, n)

	for i := 0; i < n; i++ {
		f, err := store.Insert(ctx, domain.File{
			UserID: userID,
			Name:   "doc",
			Type:   domain.FileTypeFile,
			Parent: parent,
		})
		require.NoError(t, err)
		files = append(files, f)
	}

	return files
}

func TestFileStore_ListChildrenOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore()

	inserted := insertFiles(t, store, "u1", domain.RootParent(), 45)

	page0, err := store.ListChildren(ctx, "u1", domain.RootParent(), 0)
	require.NoError(t, err)
	require.Len(t, page0, domain.ListPageSize)

	// Newest first: the last inserted record leads page 0.
	assert.Equal(t, inserted[len(inserted)-1].ID, page0[0].ID)
	for i := 1; i < len(page0); i++ {
		assert.Greater(t, page0[i-1].ID, page0[i].ID, "listing must be ordered by descending identifier")
	}

	page1, err := store.ListChildren(ctx, "u1", domain.RootParent(), 1)
	require.NoError(t, err)
	require.Len(t, page1, domain.ListPageSize)

	// Pages never overlap and together cover records 1-40.
	seen := make(map[string]bool)
	for _, f := range append(page0, page1...) {
		assert.False(t, seen[f.ID], "pages must not overlap")
		seen[f.ID] = true
	}
	assert.Len(t, seen, 40)

	page2, err := store.ListChildren(ctx, "u1", domain.RootParent(), 2)
	require.NoError(t, err)
	assert.Len(t, page2, 5)

	empty, err := store.ListChildren(ctx, "u1", domain.RootParent(), 3)
	require.NoError(t, err)
	assert.Empty(t, empty, "out-of-range pages yield an empty sequence")
}

func TestFileStore_ListChildrenIsStable(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore()

	insertFiles(t, store, "u1", domain.RootParent(), 10)

	first, err := store.ListChildren(ctx, "u1", domain.RootParent(), 0)
	require.NoError(t, err)
	second, err := store.ListChildren(ctx, "u1", domain.RootParent(), 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFileStore_ListChildrenUnmatchedParent(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore()

	insertFiles(t, store, "u1", domain.RootParent(), 3)

	// Parent existence is not validated; an unmatched parent simply
	// yields an empty sequence.
	files, err := store.ListChildren(ctx, "u1", domain.FolderParent("5f1e7d35c7ba06511e683b21"), 0)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileStore_ListChildrenScopedToOwner(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore()

	insertFiles(t, store, "u1", domain.RootParent(), 2)
	insertFiles(t, store, "u2", domain.RootParent(), 3)

	files, err := store.ListChildren(ctx, "u1", domain.RootParent(), 0)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFileStore_SetPublic(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore()

	f, err := store.Insert(ctx, domain.File{UserID: "u1", Name: "pic", Type: domain.FileTypeImage})
	require.NoError(t, err)
	assert.False(t, f.IsPublic)

	updated, err := store.SetPublic(ctx, f.ID, "u1", true)
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)

	updated, err = store.SetPublic(ctx, f.ID, "u1", false)
	require.NoError(t, err)
	assert.False(t, updated.IsPublic)
}

func TestFileStore_SetPublicByNonOwner(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore()

	f, err := store.Insert(ctx, domain.File{UserID: "u1", Name: "pic", Type: domain.FileTypeImage})
	require.NoError(t, err)

	// Ownership mismatch is reported as not-found, never as an auth
	// failure, so existence is not leaked.
	_, err = store.SetPublic(ctx, f.ID, "u2", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := store.Get(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublic)
}

func TestFileStore_GetOwned(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore()

	f, err := store.Insert(ctx, domain.File{UserID: "u1", Name: "pic", Type: domain.FileTypeImage})
	require.NoError(t, err)

	_, err = store.GetOwned(ctx, f.ID, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := store.GetOwned(ctx, f.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	_, err := store.Create(ctx, "bob@dylan.com", []byte("hash"))
	require.NoError(t, err)

	_, err = store.Create(ctx, "bob@dylan.com", []byte("hash"))
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}
