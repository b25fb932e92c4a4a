package adapter

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "phototools.dev/pkg/phototools/internal/model"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLocalPhotoFSAdapter_ResolveDir(t *testing.T) {
	adapter := NewLocalPhotoFSAdapter()

	t.Run("absolute directory", func(t *testing.T) {
		root := t.TempDir()

		got, err := adapter.ResolveDir(m.Path(root))
		require.NoError(t, err)
		assert.Equal(t, m.Path(root), got)
	})

	t.Run("empty path is working directory", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)

		got, err := adapter.ResolveDir("")
		require.NoError(t, err)
		assert.Equal(t, m.Path(wd), got)
	})

	t.Run("relative path is made absolute", func(t *testing.T) {
		got, err := adapter.ResolveDir(".")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(string(got)))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := adapter.ResolveDir(m.Path(filepath.Join(t.TempDir(), "missing")))
		require.ErrorIs(t, err, m.ErrDirectoryUnreadable)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("file is not a directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "A.JPG")
		writeTestFile(t, file, "jpg")

		_, err := adapter.ResolveDir(m.Path(file))
		require.ErrorIs(t, err, m.ErrDirectoryUnreadable)
	})
}

func TestLocalPhotoFSAdapter_ListDir(t *testing.T) {
	adapter := NewLocalPhotoFSAdapter()
	root := t.TempDir()

	writeTestFile(t, filepath.Join(root, "DSCF0002.RAF"), "raw")
	writeTestFile(t, filepath.Join(root, "DSCF0001.JPG"), "jpg")
	writeTestFile(t, filepath.Join(root, "to_delete", "DSCF0003.JPG"), "jpg")

	listing, err := adapter.ListDir(m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, []m.Listing{
		{Name: "DSCF0001.JPG", FullPath: m.Path(filepath.Join(root, "DSCF0001.JPG"))},
		{Name: "DSCF0002.RAF", FullPath: m.Path(filepath.Join(root, "DSCF0002.RAF"))},
	}, listing)

	_, err = adapter.ListDir(m.Path(filepath.Join(root, "missing")))
	assert.ErrorIs(t, err, m.ErrDirectoryUnreadable)
}

func TestLocalPhotoFSAdapter_Move(t *testing.T) {
	adapter := NewLocalPhotoFSAdapter()

	t.Run("renames file", func(t *testing.T) {
		root := t.TempDir()
		from := filepath.Join(root, "A.JPG")
		to := filepath.Join(root, "to_delete", "A.JPG")
		writeTestFile(t, from, "jpg")
		require.NoError(t, adapter.MkdirAll(m.Path(filepath.Dir(to))))

		require.NoError(t, adapter.Move(m.Path(from), m.Path(to)))
		assert.NoFileExists(t, from)
		assert.FileExists(t, to)
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		root := t.TempDir()
		from := filepath.Join(root, "A.JPG")
		to := filepath.Join(root, "to_delete", "A.JPG")
		writeTestFile(t, from, "new")
		writeTestFile(t, to, "old")

		err := adapter.Move(m.Path(from), m.Path(to))
		require.ErrorIs(t, err, m.ErrDestinationExists)

		data, readErr := os.ReadFile(to)
		require.NoError(t, readErr)
		assert.Equal(t, "old", string(data))
		assert.FileExists(t, from)
	})

	t.Run("copies across devices", func(t *testing.T) {
		original := renameFunc
		renameFunc = func(oldpath, newpath string) error {
			return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
		}
		defer func() { renameFunc = original }()

		root := t.TempDir()
		from := filepath.Join(root, "A.RAF")
		to := filepath.Join(root, "to_delete", "A.RAF")
		writeTestFile(t, from, "raw-bytes")
		require.NoError(t, adapter.MkdirAll(m.Path(filepath.Dir(to))))

		require.NoError(t, adapter.Move(m.Path(from), m.Path(to)))
		assert.NoFileExists(t, from)

		data, err := os.ReadFile(to)
		require.NoError(t, err)
		assert.Equal(t, "raw-bytes", string(data))
	})

	t.Run("other rename errors are returned", func(t *testing.T) {
		root := t.TempDir()
		err := adapter.Move(m.Path(filepath.Join(root, "missing.JPG")), m.Path(filepath.Join(root, "x", "missing.JPG")))
		require.Error(t, err)
	})
}

func TestLocalPhotoFSAdapter_ExistsAndRemove(t *testing.T) {
	adapter := NewLocalPhotoFSAdapter()
	root := t.TempDir()
	path := filepath.Join(root, "A.JPG")
	writeTestFile(t, path, "jpg")

	ok, err := adapter.Exists(m.Path(path))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, adapter.Remove(m.Path(path)))

	ok, err = adapter.Exists(m.Path(path))
	require.NoError(t, err)
	assert.False(t, ok)
}
