package stats

import (
	"testing"

	"castgrid/internal/corpus"
	"castgrid/internal/index"
	"castgrid/internal/model"
)

func TestIsLive(t *testing.T) {
	cases := []struct {
		number string
		title  string
		want   bool
	}{
		{"BO2013.1", "Tour Stop", true},
		{"145", "The Best of CBB", false},
		{"200", "Live from Austin", true},
		{"201", "I'll Always Live Here", true},
		{"202", "Alive and Delivering", false},
		{"88.5", "Half Numbered", false},
		{"from the road", "Regular Title", true},
	}
	for _, tc := range cases {
		if got := IsLive(tc.number, tc.title); got != tc.want {
			t.Fatalf("IsLive(%q, %q) = %v, want %v", tc.number, tc.title, got, tc.want)
		}
	}
}

func TestComputeMaxima(t *testing.T) {
	raw := model.RawCorpus{
		Episodes: []model.RawEpisode{
			{Title: "One", Number: "1", Date: "2009-01-01", Guests: []string{"A"}, Characters: []string{"X", "Y"}},
			{Title: "Two", Number: "2", Date: "2009-02-01", Guests: []string{"A", "B", "C"}, Characters: []string{"X"}},
			{Title: "On Tour", Number: "BO2009.1", Date: "2009-03-01", Guests: []string{"A"}},
			{Title: "Solo", Number: "3", Date: "2010-01-01", Characters: []string{"X", "Y", "Z"}},
		},
	}
	episodes, err := corpus.Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	idx := index.Build(episodes, nil, nil, nil)
	s := Compute(episodes, idx.Years)

	if s.MaxEpisodesPerYearWithLive != 3 {
		t.Fatalf("with-live max: got %d", s.MaxEpisodesPerYearWithLive)
	}
	if s.MaxEpisodesPerYearWithoutLive != 2 {
		t.Fatalf("without-live max: got %d", s.MaxEpisodesPerYearWithoutLive)
	}
	if s.MaxGuestsPerEpisode != 3 {
		t.Fatalf("guests max: got %d", s.MaxGuestsPerEpisode)
	}
	if s.MaxCharactersPerEpisode != 3 {
		t.Fatalf("characters max: got %d", s.MaxCharactersPerEpisode)
	}
	// The zero-guest "Solo" episode (3 characters) must not contribute;
	// the max ratio is 2/1 from "One".
	if s.MaxCharsPerGuestPerEpisode != 2 {
		t.Fatalf("ratio max: got %v", s.MaxCharsPerGuestPerEpisode)
	}
}

func TestFractionNoDataForZeroGuests(t *testing.T) {
	s := model.Stats{MaxCharsPerGuestPerEpisode: 2, MaxGuestsPerEpisode: 3, MaxCharactersPerEpisode: 3}
	solo := model.Episode{NumCharacters: 3}
	if _, ok := Fraction(solo, model.ColorCharsPerGuest, s); ok {
		t.Fatalf("zero-guest episode must be no-data under chars-per-guest")
	}
	if f, ok := Fraction(solo, model.ColorCharacters, s); !ok || f != 1 {
		t.Fatalf("characters fraction: got %v ok=%v", f, ok)
	}
	withGuests := model.Episode{NumGuests: 1, NumCharacters: 2, CharsPerGuest: 2, HasCharsPerGuest: true}
	if f, ok := Fraction(withGuests, model.ColorCharsPerGuest, s); !ok || f != 1 {
		t.Fatalf("ratio fraction: got %v ok=%v", f, ok)
	}
}
