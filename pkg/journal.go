// Package pkg provides reusable utilities for phototools.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// JournalPattern is the os.CreateTemp pattern of journal files.
const JournalPattern = ".journal-*.gob"

// ErrJournalReadOnly is returned when appending to an opened journal.
var ErrJournalReadOnly = errors.New("journal is read-only")

// Journal is an append-only, gob-encoded log of items of type T kept on disk.
type Journal[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Range(f func(index uint64, item T) error) error
	Close() error
}

type journalImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// CreateJournal creates a new journal file in dir.
func CreateJournal[T any](dir string) (Journal[T], error) {
	file, err := os.CreateTemp(dir, JournalPattern)
	if err != nil {
		slog.Error("failed to create journal", "dir", dir, "error", err)
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	slog.Debug("created journal", "path", file.Name())

	return &journalImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// OpenJournal opens an existing journal for reading.
func OpenJournal[T any](path string) (Journal[T], error) {
	j := &journalImpl[T]{path: path}

	err := j.decodeAll(func(_ uint64, _ T) error {
		j.length++
		return nil
	}, true)
	if err != nil {
		return nil, err
	}

	slog.Debug("opened journal", "path", path, "length", j.length)

	return j, nil
}

// IsJournal reports whether name looks like a journal file name.
func IsJournal(name string) bool {
	ok, err := filepath.Match(JournalPattern, name)
	return err == nil && ok
}

// Append implements Journal.
func (j *journalImpl[T]) Append(item T) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.encoder == nil {
		return ErrJournalReadOnly
	}

	if err := j.encoder.Encode(item); err != nil {
		slog.Error("failed to encode journal item", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	j.length++

	return nil
}

// AppendBatch implements Journal.
func (j *journalImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := j.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Path implements Journal.
func (j *journalImpl[T]) Path() string {
	return j.path
}

// Len implements Journal.
func (j *journalImpl[T]) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

// Range implements Journal.
func (j *journalImpl[T]) Range(fn func(index uint64, item T) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.decodeAll(fn, false)
}

// Close implements Journal.
func (j *journalImpl[T]) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}

	err := j.file.Close()
	j.file = nil
	j.encoder = nil

	if err != nil {
		slog.Error("failed to close journal", "path", j.path, "error", err)
		return err
	}

	slog.Debug("closed journal", "path", j.path, "length", j.length)

	return nil
}

// decodeAll decodes items from the start of the file. With untilEOF it reads
// until the end of the file, otherwise it stops after the known length.
func (j *journalImpl[T]) decodeAll(fn func(index uint64, item T) error, untilEOF bool) error {
	// #nosec G304 - journal paths come from the holding directory listing
	file, err := os.Open(j.path)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close journal", "path", j.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); untilEOF || i < j.length; i++ {
		var item T

		if err := decoder.Decode(&item); err != nil {
			if untilEOF && errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("failed to decode journal item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}
