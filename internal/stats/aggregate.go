// Package stats derives corpus-wide aggregate statistics.
package stats

import (
	"regexp"

	"castgrid/internal/model"
)

var (
	plainNumber = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
	liveWord    = regexp.MustCompile(`(?i)\blive\b`)
)

// IsLive reports whether an episode is a tour/live-audience recording:
// its number is not a plain integer-or-decimal, or its title contains
// the standalone word "live". Word-boundary matching keeps "alive" and
// "deliver" out.
func IsLive(number, title string) bool {
	return !plainNumber.MatchString(number) || liveWord.MatchString(title)
}

// Compute derives the corpus-wide scalar maxima in a single pass over
// the year buckets and the episode sequence. Episodes with zero guests
// contribute no data point to the characters-per-guest maximum.
func Compute(episodes []model.Episode, years map[int][]model.Episode) model.Stats {
	var s model.Stats
	for _, bucket := range years {
		withLive := len(bucket)
		withoutLive := 0
		for _, ep := range bucket {
			if !IsLive(ep.Number, ep.Title) {
				withoutLive++
			}
		}
		if withLive > s.MaxEpisodesPerYearWithLive {
			s.MaxEpisodesPerYearWithLive = withLive
		}
		if withoutLive > s.MaxEpisodesPerYearWithoutLive {
			s.MaxEpisodesPerYearWithoutLive = withoutLive
		}
	}
	for _, ep := range episodes {
		if ep.NumGuests > s.MaxGuestsPerEpisode {
			s.MaxGuestsPerEpisode = ep.NumGuests
		}
		if ep.NumCharacters > s.MaxCharactersPerEpisode {
			s.MaxCharactersPerEpisode = ep.NumCharacters
		}
		if ep.HasCharsPerGuest && ep.CharsPerGuest > s.MaxCharsPerGuestPerEpisode {
			s.MaxCharsPerGuestPerEpisode = ep.CharsPerGuest
		}
	}
	return s
}
