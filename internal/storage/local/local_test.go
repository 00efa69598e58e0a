package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SaveAndDelete(t *testing.T) {
	store, err := New(t.TempDir(), "/media/")
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "cover.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".png"))

	data, err := os.ReadFile(filepath.Join(store.Root(), path))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), path))
	_, err = os.Stat(filepath.Join(store.Root(), path))
	assert.True(t, os.IsNotExist(err))
}

func TestStorage_DeleteMissingIsNoop(t *testing.T) {
	store, err := New(t.TempDir(), "/media")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "does-not-exist.png"))
}

func TestStorage_DeleteRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir(), "/media")
	require.NoError(t, err)

	assert.Error(t, store.Delete(context.Background(), "../etc/passwd"))
}

func TestStorage_URL(t *testing.T) {
	store, err := New(t.TempDir(), "/media/")
	require.NoError(t, err)

	assert.Equal(t, "/media/abc.png", store.URL("abc.png"))
}

func TestStorage_SaveStripsOddExtensions(t *testing.T) {
	store, err := New(t.TempDir(), "/media")
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "weird.superlongextension", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, path, "superlongextension")
}

func TestStorage_SaveGeneratesUniqueNames(t *testing.T) {
	store, err := New(t.TempDir(), "/media")
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "a.jpg", strings.NewReader("1"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "a.jpg", strings.NewReader("2"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
