// Package model defines the data structures shared by the photo orphan finder.
package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// FileClass is the format class a file belongs to.
type FileClass int

const (
	// ClassOther marks files matching neither configured extension.
	// They are tracked but never paired, reported or acted upon.
	ClassOther FileClass = iota
	// ClassRaw marks raw camera captures (e.g. RAF).
	ClassRaw
	// ClassDeveloped marks developed images (e.g. JPG).
	ClassDeveloped
)

func (c FileClass) String() string {
	switch c {
	case ClassRaw:
		return "raw"
	case ClassDeveloped:
		return "developed"
	default:
		return "other"
	}
}

// Listing is one (filename, full path) pair produced by the directory lister.
type Listing struct {
	Name     string
	FullPath Path
}

// FileEntry represents one file found in the photo directory.
type FileEntry struct {
	BaseID    string // file name without its last extension
	Extension string // extension text as found, without the dot
	FullPath  Path
}

// Name returns the final path segment of the entry.
func (e FileEntry) Name() string {
	return filepath.Base(string(e.FullPath))
}

// Mode selects which class the user wants cleaned.
type Mode string

const (
	// ModeIMG inspects developed files and reports those missing a raw.
	ModeIMG Mode = "IMG"
	// ModeRAW inspects raw files and reports those missing a developed image.
	ModeRAW Mode = "RAW"
)

// ParseMode parses IMG or RAW, ignoring case and surrounding whitespace.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(value))) {
	case ModeIMG:
		return ModeIMG, nil
	case ModeRAW:
		return ModeRAW, nil
	}

	return "", fmt.Errorf("%w: unknown mode %q (expected IMG or RAW)", ErrInvalidConfig, value)
}

// Subject returns the class hunted for orphans in this mode.
func (md Mode) Subject() FileClass {
	if md == ModeRAW {
		return ClassRaw
	}

	return ClassDeveloped
}

// PairingSummary holds counts gathered while pairing a directory.
type PairingSummary struct {
	Raw       int
	Developed int
	Other     int
	Pairs     int // base ids having both classes
	Orphans   int
}
