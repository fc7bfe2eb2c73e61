package index

import (
	"reflect"
	"testing"

	"castgrid/internal/corpus"
	"castgrid/internal/model"
)

func testEpisodes(t *testing.T) []model.Episode {
	t.Helper()
	raw := model.RawCorpus{
		Episodes: []model.RawEpisode{
			{Title: "One", Number: "1", Date: "2009-05-01", Guests: []string{"A", "B"}, Characters: []string{"X"}},
			{Title: "Two", Number: "2", Date: "2009-06-01", Guests: []string{"B"}, Characters: []string{"X", "Y"}},
			{Title: "Three", Number: "3", Date: "2010-01-15", Guests: []string{"A"}},
		},
	}
	episodes, err := corpus.Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return episodes
}

func TestBuildEntityIndices(t *testing.T) {
	idx := Build(testEpisodes(t), nil, nil, nil)

	a := idx.Guests["A"]
	if a == nil {
		t.Fatalf("guest A missing")
	}
	if !reflect.DeepEqual(a.EpisodeIndices, []int{0, 2}) {
		t.Fatalf("unexpected indices for A: %v", a.EpisodeIndices)
	}
	if a.FirstIndex != 0 || a.LastIndex != 2 {
		t.Fatalf("unexpected bounds for A: first=%d last=%d", a.FirstIndex, a.LastIndex)
	}

	for _, entity := range idx.Guests {
		assertEntityInvariants(t, entity)
	}
	for _, entity := range idx.Characters {
		assertEntityInvariants(t, entity)
	}

	if got := idx.GuestOrder; !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("unexpected guest order: %v", got)
	}
}

func assertEntityInvariants(t *testing.T, entity *model.Entity) {
	t.Helper()
	if len(entity.EpisodeIndices) == 0 {
		t.Fatalf("%s has no episodes", entity.Name)
	}
	for i := 1; i < len(entity.EpisodeIndices); i++ {
		if entity.EpisodeIndices[i] <= entity.EpisodeIndices[i-1] {
			t.Fatalf("%s indices not strictly ascending: %v", entity.Name, entity.EpisodeIndices)
		}
	}
	if entity.FirstIndex != entity.EpisodeIndices[0] {
		t.Fatalf("%s first index mismatch", entity.Name)
	}
	if entity.LastIndex != entity.EpisodeIndices[len(entity.EpisodeIndices)-1] {
		t.Fatalf("%s last index mismatch", entity.Name)
	}
}

func TestBuildPlayedByUnion(t *testing.T) {
	idx := Build(testEpisodes(t), nil, nil, nil)
	x := idx.Characters["X"]
	if x == nil {
		t.Fatalf("character X missing")
	}
	want := map[string]struct{}{"A": {}, "B": {}}
	if !reflect.DeepEqual(x.PlayedBy, want) {
		t.Fatalf("unexpected playedBy for X: %v", x.PlayedBy)
	}
	y := idx.Characters["Y"]
	if _, ok := y.PlayedBy["B"]; !ok || len(y.PlayedBy) != 1 {
		t.Fatalf("unexpected playedBy for Y: %v", y.PlayedBy)
	}
}

func TestBuildExplicitCastOverridesUnion(t *testing.T) {
	cast := map[string][]string{"A": {"X"}}
	idx := Build(testEpisodes(t), nil, nil, cast)
	x := idx.Characters["X"]
	if !reflect.DeepEqual(x.PlayedBy, map[string]struct{}{"A": {}}) {
		t.Fatalf("explicit cast not applied: %v", x.PlayedBy)
	}
	// Y is not named by the mapping and keeps the union heuristic.
	y := idx.Characters["Y"]
	if _, ok := y.PlayedBy["B"]; !ok {
		t.Fatalf("union heuristic lost for Y: %v", y.PlayedBy)
	}
}

func TestBuildYearBuckets(t *testing.T) {
	idx := Build(testEpisodes(t), nil, nil, nil)
	if !reflect.DeepEqual(idx.YearAxis, []int{2009, 2010}) {
		t.Fatalf("unexpected year axis: %v", idx.YearAxis)
	}
	if len(idx.Years[2009]) != 2 || len(idx.Years[2010]) != 1 {
		t.Fatalf("unexpected bucket sizes: %d %d", len(idx.Years[2009]), len(idx.Years[2010]))
	}
	bucket := idx.Years[2009]
	if bucket[0].Date.After(bucket[1].Date) {
		t.Fatalf("bucket not chronological")
	}
}

func TestBuildAttachesImages(t *testing.T) {
	guestImages := map[string]string{"A": "http://img/a.jpg", "Nobody": "http://img/n.jpg"}
	charImages := map[string]string{"X": "http://img/x.jpg"}
	idx := Build(testEpisodes(t), guestImages, charImages, nil)
	if idx.Guests["A"].ImageURL != "http://img/a.jpg" {
		t.Fatalf("guest image not attached")
	}
	if idx.Characters["X"].ImageURL != "http://img/x.jpg" {
		t.Fatalf("character image not attached")
	}
	if idx.Guests["B"].ImageURL != "" {
		t.Fatalf("absent image must default to empty")
	}
}

func TestBuildIdempotent(t *testing.T) {
	episodes := testEpisodes(t)
	first := Build(episodes, nil, nil, nil)
	second := Build(episodes, nil, nil, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("index build is not idempotent")
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	idx := Build(nil, nil, nil, nil)
	if len(idx.Guests) != 0 || len(idx.Characters) != 0 || len(idx.YearAxis) != 0 {
		t.Fatalf("empty corpus must produce empty indices")
	}
}
