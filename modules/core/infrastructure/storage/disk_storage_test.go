package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solstice-web/sitekit/modules/core/infrastructure/storage"
)

func TestDiskStorage_SaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store := storage.NewDiskStorage(root)

	err := store.Save(context.Background(), "ab/abcdef.png", []byte("content"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "ab", "abcdef.png"))
	require.NoError(t, err)
	require.Equal(t, "content", string(data))

	require.NoError(t, store.Remove(context.Background(), "ab/abcdef.png"))
	_, err = os.Stat(filepath.Join(root, "ab", "abcdef.png"))
	require.True(t, os.IsNotExist(err))
}

func TestDiskStorage_RemoveMissingIsNoop(t *testing.T) {
	store := storage.NewDiskStorage(t.TempDir())
	require.NoError(t, store.Remove(context.Background(), "no/such.file"))
}

func TestDiskStorage_RejectsEscapingPaths(t *testing.T) {
	store := storage.NewDiskStorage(t.TempDir())

	for _, path := range []string{"../outside.txt", "..", "/etc/passwd", "a/../../b"} {
		err := store.Save(context.Background(), path, []byte("x"))
		require.Error(t, err, "path %q", path)
	}
}
