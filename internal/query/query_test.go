package query

import (
	"testing"

	"castgrid/internal/corpus"
	"castgrid/internal/index"
	"castgrid/internal/model"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	raw := model.RawCorpus{
		Episodes: []model.RawEpisode{
			{Title: "One", Number: "1", Date: "2009-01-01", Guests: []string{"A"}, Characters: []string{"zeppo", "alpha"}},
			{Title: "Two", Number: "2", Date: "2009-02-01", Guests: []string{"B"}},
			{Title: "Three", Number: "3", Date: "2009-03-01", Guests: []string{"A"}},
		},
	}
	episodes, err := corpus.Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return New(index.Build(episodes, nil, nil, nil))
}

func names(entities []*model.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Name
	}
	return out
}

func TestQueryMostAppearances(t *testing.T) {
	e := testEngine(t)
	got := names(e.Query(model.KindGuest, "", model.SortMostAppearances))
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestQuerySearchFilter(t *testing.T) {
	e := testEngine(t)
	got := names(e.Query(model.KindGuest, "b", model.SortMostAppearances))
	if len(got) != 1 || got[0] != "B" {
		t.Fatalf("expected only B, got %v", got)
	}
	if got := e.Query(model.KindGuest, "zz", model.SortMostAppearances); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", names(got))
	}
}

func TestQueryMostRecent(t *testing.T) {
	e := testEngine(t)
	got := names(e.Query(model.KindGuest, "", model.SortMostRecent))
	// A last appears at index 2, B at index 1.
	if got[0] != "A" || got[1] != "B" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestQueryFirstAppearance(t *testing.T) {
	e := testEngine(t)
	got := names(e.Query(model.KindGuest, "", model.SortFirstAppearance))
	if got[0] != "A" || got[1] != "B" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestQueryAlphabetical(t *testing.T) {
	e := testEngine(t)
	got := names(e.Query(model.KindCharacter, "", model.SortAlphabetical))
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zeppo" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestQueryTiesKeepFirstSightingOrder(t *testing.T) {
	e := testEngine(t)
	// Both characters appear once in the same episode; the tie resolves
	// to their first-sighting order (zeppo was listed first).
	got := names(e.Query(model.KindCharacter, "", model.SortMostAppearances))
	if got[0] != "zeppo" || got[1] != "alpha" {
		t.Fatalf("unexpected tie order: %v", got)
	}
}

func TestQueryDoesNotMutateIndex(t *testing.T) {
	e := testEngine(t)
	before := names(e.Query(model.KindGuest, "", model.SortFirstAppearance))
	_ = e.Query(model.KindGuest, "", model.SortAlphabetical)
	after := names(e.Query(model.KindGuest, "", model.SortFirstAppearance))
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("query mutated underlying order: %v vs %v", before, after)
		}
	}
}
