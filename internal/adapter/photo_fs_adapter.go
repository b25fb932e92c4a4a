// Package adapter contains the filesystem and persistence adapters for the
// phototools CLI.
package adapter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"syscall"

	m "phototools.dev/pkg/phototools/internal/model"
)

// renameFunc is swapped in tests to simulate cross-device renames.
var renameFunc = os.Rename

// PhotoFSAdapter abstracts the filesystem operations the workflow relies on,
// so pairing and planning can be tested without touching the disk.
type PhotoFSAdapter interface {
	// ResolveDir turns the user supplied path into an absolute directory.
	// An empty path means the current working directory.
	ResolveDir(path m.Path) (m.Path, error)

	// ListDir lists the regular files directly inside dir, sorted by name.
	// Subdirectories are skipped; there is no recursion.
	ListDir(dir m.Path) ([]m.Listing, error)

	// Exists reports whether path exists.
	Exists(path m.Path) (bool, error)

	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir m.Path) error

	// Move relocates a file, refusing to overwrite an existing destination.
	Move(from, to m.Path) error

	// Remove deletes a file or an empty directory.
	Remove(path m.Path) error
}

// LocalPhotoFSAdapter implements PhotoFSAdapter on the local disk.
type LocalPhotoFSAdapter struct{}

// NewLocalPhotoFSAdapter constructs a LocalPhotoFSAdapter.
func NewLocalPhotoFSAdapter() *LocalPhotoFSAdapter {
	return &LocalPhotoFSAdapter{}
}

// ResolveDir resolves path against the working directory and checks that it
// is a readable directory.
func (a *LocalPhotoFSAdapter) ResolveDir(path m.Path) (m.Path, error) {
	dir := string(path)
	if dir == "" {
		dir = "."
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", m.ErrDirectoryUnreadable, dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %w", m.ErrDirectoryUnreadable, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", m.ErrDirectoryUnreadable, abs)
	}

	return m.Path(abs), nil
}

// ListDir lists regular files in dir.
func (a *LocalPhotoFSAdapter) ListDir(dir m.Path) ([]m.Listing, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", m.ErrDirectoryUnreadable, err)
	}

	listing := make([]m.Listing, 0, len(entries))

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			slog.Debug("skipping non-regular entry", "dir", dir, "name", entry.Name())
			continue
		}

		listing = append(listing, m.Listing{
			Name:     entry.Name(),
			FullPath: m.Path(filepath.Join(string(dir), entry.Name())),
		})
	}

	sort.Slice(listing, func(i, j int) bool { return listing[i].Name < listing[j].Name })

	return listing, nil
}

// Exists reports whether path exists without following a final symlink.
func (a *LocalPhotoFSAdapter) Exists(path m.Path) (bool, error) {
	_, err := os.Lstat(string(path))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// MkdirAll creates dir, succeeding when it already exists.
func (a *LocalPhotoFSAdapter) MkdirAll(dir m.Path) error {
	return os.MkdirAll(string(dir), 0o750)
}

// Move renames from to to. Across filesystems it falls back to copy and
// remove.
func (a *LocalPhotoFSAdapter) Move(from, to m.Path) error {
	exists, err := a.Exists(to)
	if err != nil {
		return err
	}

	if exists {
		return fmt.Errorf("%w: %s", m.ErrDestinationExists, to)
	}

	err = renameFunc(string(from), string(to))
	if err == nil {
		return nil
	}

	if !isEXDEV(err) {
		return err
	}

	slog.Debug("rename crossed devices, copying instead", "from", from, "to", to)

	info, err := os.Stat(string(from))
	if err != nil {
		return err
	}

	if err := copyFile(string(from), string(to), info.Mode()); err != nil {
		_ = os.Remove(string(to))
		return err
	}

	return os.Remove(string(from))
}

// Remove deletes path.
func (a *LocalPhotoFSAdapter) Remove(path m.Path) error {
	return os.Remove(string(path))
}

func isEXDEV(err error) bool {
	if errors.Is(err, syscall.EXDEV) {
		return true
	}

	var le *os.LinkError
	if errors.As(err, &le) && errors.Is(le.Err, syscall.EXDEV) {
		return true
	}

	return false
}

// copyFile copies a single file, failing if dst already exists.
func copyFile(src, dst string, mode os.FileMode) error {
	// #nosec G304 - src comes from the directory listing
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	// #nosec G304 - dst is the planned destination next to src
	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}

	return destFile.Close()
}
