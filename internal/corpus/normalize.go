package corpus

import (
	"errors"
	"sort"
	"time"

	"castgrid/internal/model"
)

// ErrNoData reports that no usable episodes survived normalization.
var ErrNoData = errors.New("corpus has no episodes")

// Date layouts accepted from raw feeds. Records whose date matches
// none of these are dropped entirely.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"January 2, 2006",
	"1/2/2006",
}

// Normalize maps raw episode records into the canonical chronological
// sequence. Records with unparseable dates are silently dropped. The
// surviving records are stably sorted ascending by date and assigned a
// dense 0-based Index; every downstream component orders by that Index.
func Normalize(raw model.RawCorpus) ([]model.Episode, error) {
	episodes := make([]model.Episode, 0, len(raw.Episodes))
	for _, rec := range raw.Episodes {
		date, ok := parseDate(rec.Date)
		if !ok {
			continue
		}
		ep := model.Episode{
			Title:      rec.Title,
			Number:     rec.Number,
			Date:       date,
			Guests:     append([]string(nil), rec.Guests...),
			Characters: append([]string(nil), rec.Characters...),
			ImageURL:   rec.ImageURL,
		}
		episodes = append(episodes, ep)
	}
	if len(episodes) == 0 {
		return nil, ErrNoData
	}

	// Stable: date ties keep input order.
	sort.SliceStable(episodes, func(i, j int) bool {
		return episodes[i].Date.Before(episodes[j].Date)
	})

	for i := range episodes {
		ep := &episodes[i]
		ep.Index = i
		ep.Year = ep.Date.Year()
		ep.NumGuests = len(ep.Guests)
		ep.NumCharacters = len(ep.Characters)
		if ep.NumGuests > 0 {
			ep.CharsPerGuest = float64(ep.NumCharacters) / float64(ep.NumGuests)
			ep.HasCharsPerGuest = true
		}
	}
	return episodes, nil
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
