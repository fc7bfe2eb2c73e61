// Package model defines shared data structures.
package model

import "time"

// Kind distinguishes the two entity index kinds.
type Kind string

// Entity kinds.
const (
	KindGuest     Kind = "guest"
	KindCharacter Kind = "character"
)

// SortKey selects the ordering of entity query results.
type SortKey string

// Sort keys.
const (
	SortMostAppearances SortKey = "appearances"
	SortMostRecent      SortKey = "recent"
	SortFirstAppearance SortKey = "first"
	SortAlphabetical    SortKey = "alphabetical"
)

// ColorMode selects the per-episode value used for cell coloring.
type ColorMode string

// Color modes.
const (
	ColorGuests        ColorMode = "guests"
	ColorCharacters    ColorMode = "characters"
	ColorCharsPerGuest ColorMode = "chars-per-guest"
)

// RawEpisode is one entry of an unprocessed corpus feed.
type RawEpisode struct {
	Title      string   `json:"title"`
	Number     string   `json:"number"`
	Date       string   `json:"date"`
	Guests     []string `json:"guests"`
	Characters []string `json:"characters"`
	ImageURL   string   `json:"imageUrl"`
}

// RawCorpus is the in-memory input contract for the engine.
type RawCorpus struct {
	Episodes          []RawEpisode        `json:"episodes"`
	GuestImages       map[string]string   `json:"guestImages"`
	CharacterImages   map[string]string   `json:"characterImages"`
	GuestToCharacters map[string][]string `json:"guestToCharacters"`
}

// Episode is a normalized episode, immutable after construction.
// Index is the 0-based position in global chronological order and is
// the corpus's single ordering authority.
type Episode struct {
	Title      string
	Number     string
	Date       time.Time
	Guests     []string
	Characters []string
	ImageURL   string

	Index         int
	Year          int
	NumGuests     int
	NumCharacters int
	// CharsPerGuest is meaningful only when HasCharsPerGuest is true
	// (NumGuests > 0). A zero-guest episode has no ratio, not a zero one.
	CharsPerGuest    float64
	HasCharsPerGuest bool
}

// Entity is a guest or character record built during indexing.
// EpisodeIndices is strictly ascending with no duplicates.
type Entity struct {
	Name           string
	Kind           Kind
	EpisodeIndices []int
	FirstIndex     int
	LastIndex      int
	ImageURL       string
	// PlayedBy holds, for characters, the union of guest names across
	// all episodes the character appears in. When the feed supplies an
	// explicit guest-to-character mapping it takes precedence for the
	// characters it names.
	PlayedBy map[string]struct{}
}

// Appearances returns the number of episodes the entity appears in.
func (e *Entity) Appearances() int {
	return len(e.EpisodeIndices)
}

// Stats holds corpus-wide scalar maxima used for visual scaling.
// Computed once per corpus load, read-only afterward.
type Stats struct {
	MaxEpisodesPerYearWithLive    int
	MaxEpisodesPerYearWithoutLive int
	MaxGuestsPerEpisode           int
	MaxCharactersPerEpisode       int
	MaxCharsPerGuestPerEpisode    float64
}

// ExplorerConfig carries the explorer's initial settings.
type ExplorerConfig struct {
	Sort        SortKey
	ColorMode   ColorMode
	IncludeLive bool
	WikiBase    string
	AudioBase   string
}
