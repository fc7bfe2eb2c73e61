// Package query provides ordered, filtered views over entity indices.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"castgrid/internal/index"
	"castgrid/internal/model"
)

// Engine answers entity queries against a built index without ever
// mutating it. Callers re-query whenever kind, search text, or sort
// key changes.
type Engine struct {
	idx      *index.Index
	collator *collate.Collator
}

// New creates a query engine over the given index.
func New(idx *index.Index) *Engine {
	return &Engine{
		idx:      idx,
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// Query returns a fresh, ordered, filtered view over one entity index.
// Entities are materialized in first-sighting order and sorted stably,
// so ties fall back to first-appearance order deterministically.
func (e *Engine) Query(kind model.Kind, search string, key model.SortKey) []*model.Entity {
	entities := e.idx.ForKind(kind)
	order := e.idx.OrderForKind(kind)

	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]*model.Entity, 0, len(order))
	for _, name := range order {
		if needle != "" && !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		out = append(out, entities[name])
	}

	switch key {
	case model.SortMostRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].LastIndex > out[j].LastIndex
		})
	case model.SortFirstAppearance:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].FirstIndex < out[j].FirstIndex
		})
	case model.SortAlphabetical:
		sort.SliceStable(out, func(i, j int) bool {
			return e.collator.CompareString(out[i].Name, out[j].Name) < 0
		})
	default: // most appearances
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Appearances() > out[j].Appearances()
		})
	}
	return out
}
