package domain

import (
	"sort"
	"strings"

	m "phototools.dev/pkg/phototools/internal/model"
)

// baseGroup records which classes are present for one base identifier.
type baseGroup struct {
	raw       bool
	developed bool
	other     bool
}

func (g baseGroup) has(class m.FileClass) bool {
	switch class {
	case m.ClassRaw:
		return g.raw
	case m.ClassDeveloped:
		return g.developed
	default:
		return g.other
	}
}

func (g *baseGroup) add(class m.FileClass) {
	switch class {
	case m.ClassRaw:
		g.raw = true
	case m.ClassDeveloped:
		g.developed = true
	default:
		g.other = true
	}
}

// FindOrphans returns the subject-class entries whose base identifier has no
// entry of the counterpart class. Pairing is decided per base identifier, so
// several subject files sharing an id are all kept as soon as one counterpart
// exists. Files of neither configured class are ignored. The result is sorted
// by base identifier, then by full path, and does not depend on the order of
// entries. A config without a raw or developed subject yields no orphans.
func FindOrphans(entries []m.FileEntry, cfg m.ExtensionConfig) []m.FileEntry {
	orphans := make([]m.FileEntry, 0)

	subject := cfg.Subject()
	if subject != m.ClassRaw && subject != m.ClassDeveloped {
		return orphans
	}

	groups := groupEntries(entries, cfg)
	counterpart := cfg.Counterpart()

	for _, entry := range entries {
		if classOf(entry.Extension, cfg) != subject {
			continue
		}

		if groups[baseKey(entry.BaseID, cfg)].has(counterpart) {
			continue
		}

		orphans = append(orphans, entry)
	}

	sortEntries(orphans)

	return orphans
}

// Summarize counts entries per class, the base identifiers holding a
// complete pair and the orphans of the configured subject.
func Summarize(entries []m.FileEntry, cfg m.ExtensionConfig) m.PairingSummary {
	var summary m.PairingSummary

	for _, entry := range entries {
		switch classOf(entry.Extension, cfg) {
		case m.ClassRaw:
			summary.Raw++
		case m.ClassDeveloped:
			summary.Developed++
		default:
			summary.Other++
		}
	}

	for _, group := range groupEntries(entries, cfg) {
		if group.raw && group.developed {
			summary.Pairs++
		}
	}

	summary.Orphans = len(FindOrphans(entries, cfg))

	return summary
}

func groupEntries(entries []m.FileEntry, cfg m.ExtensionConfig) map[string]*baseGroup {
	groups := make(map[string]*baseGroup, len(entries))

	for _, entry := range entries {
		key := baseKey(entry.BaseID, cfg)

		group, ok := groups[key]
		if !ok {
			group = &baseGroup{}
			groups[key] = group
		}

		group.add(classOf(entry.Extension, cfg))
	}

	return groups
}

func baseKey(baseID string, cfg m.ExtensionConfig) string {
	if cfg.FoldBaseCase() {
		return strings.ToLower(baseID)
	}

	return baseID
}

func sortEntries(entries []m.FileEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].BaseID != entries[j].BaseID {
			return entries[i].BaseID < entries[j].BaseID
		}

		return entries[i].FullPath < entries[j].FullPath
	})
}
