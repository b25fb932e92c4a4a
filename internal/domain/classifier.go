package domain

import (
	"path/filepath"
	"strings"

	m "phototools.dev/pkg/phototools/internal/model"
)

// SplitName splits the final path segment of name into stem and extension
// on the last dot. Everything before the last dot is the stem, so
// "IMG.edit.RAF" yields ("IMG.edit", "RAF"). A name without a dot is all
// stem with an empty extension.
func SplitName(name string) (stem, ext string) {
	base := filepath.Base(name)

	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return base, ""
	}

	return base[:idx], base[idx+1:]
}

// Classify returns the base identifier of name and the class its extension
// belongs to under cfg. It never fails: unknown or missing extensions are
// ClassOther.
func Classify(name string, cfg m.ExtensionConfig) (string, m.FileClass) {
	stem, ext := SplitName(name)
	return stem, classOf(ext, cfg)
}

// NewFileEntries turns a directory listing into file entries.
func NewFileEntries(listing []m.Listing) []m.FileEntry {
	entries := make([]m.FileEntry, 0, len(listing))

	for _, item := range listing {
		name := item.Name
		if name == "" {
			name = filepath.Base(string(item.FullPath))
		}

		stem, ext := SplitName(name)
		entries = append(entries, m.FileEntry{
			BaseID:    stem,
			Extension: ext,
			FullPath:  item.FullPath,
		})
	}

	return entries
}

func classOf(ext string, cfg m.ExtensionConfig) m.FileClass {
	switch {
	case ext == "":
		return m.ClassOther
	case strings.EqualFold(ext, cfg.RawExt()):
		return m.ClassRaw
	case strings.EqualFold(ext, cfg.DevelopedExt()):
		return m.ClassDeveloped
	default:
		return m.ClassOther
	}
}
