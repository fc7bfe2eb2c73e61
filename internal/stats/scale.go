package stats

import "castgrid/internal/model"

// Fraction returns an episode's scaling value in [0,1] for a color
// mode. ok is false when the episode has no data point for the mode:
// a zero-guest episode under chars-per-guest is "no data", never zero.
func Fraction(ep model.Episode, mode model.ColorMode, s model.Stats) (float64, bool) {
	switch mode {
	case model.ColorCharacters:
		return scale(float64(ep.NumCharacters), float64(s.MaxCharactersPerEpisode)), true
	case model.ColorCharsPerGuest:
		if !ep.HasCharsPerGuest {
			return 0, false
		}
		return scale(ep.CharsPerGuest, s.MaxCharsPerGuestPerEpisode), true
	default:
		return scale(float64(ep.NumGuests), float64(s.MaxGuestsPerEpisode)), true
	}
}

func scale(value, max float64) float64 {
	if max <= 0 {
		return 0
	}
	f := value / max
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
