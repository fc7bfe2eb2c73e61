// Package index builds cross-reference indices over a normalized corpus.
package index

import (
	"sort"

	"castgrid/internal/model"
)

// Index holds the guest and character indices plus year buckets for a
// corpus. Built once per corpus load and immutable afterward.
type Index struct {
	Guests     map[string]*model.Entity
	Characters map[string]*model.Entity

	// First-sighting order per kind; the deterministic base order for
	// entity queries.
	GuestOrder     []string
	CharacterOrder []string

	// Years maps calendar year to its episodes in chronological order.
	// YearAxis is the sorted list of years with at least one episode.
	Years    map[int][]model.Episode
	YearAxis []int
}

// Build walks the episode sequence once in index order, creating or
// updating an entity record per guest and character sighting and
// bucketing episodes by year in the same pass. Image URLs and the
// optional explicit cast mapping are attached after construction.
func Build(episodes []model.Episode, guestImages, characterImages map[string]string, cast map[string][]string) *Index {
	idx := &Index{
		Guests:     map[string]*model.Entity{},
		Characters: map[string]*model.Entity{},
		Years:      map[int][]model.Episode{},
	}

	for _, ep := range episodes {
		if _, ok := idx.Years[ep.Year]; !ok {
			idx.YearAxis = append(idx.YearAxis, ep.Year)
		}
		idx.Years[ep.Year] = append(idx.Years[ep.Year], ep)

		for _, name := range ep.Guests {
			sight(idx.Guests, &idx.GuestOrder, name, model.KindGuest, ep.Index)
		}
		for _, name := range ep.Characters {
			entity := sight(idx.Characters, &idx.CharacterOrder, name, model.KindCharacter, ep.Index)
			if entity.PlayedBy == nil {
				entity.PlayedBy = map[string]struct{}{}
			}
			// Every guest credited on the episode counts as a player of
			// this appearance; the raw data has no finer attribution.
			for _, guest := range ep.Guests {
				entity.PlayedBy[guest] = struct{}{}
			}
		}
	}

	applyCast(idx.Characters, cast)
	attachImages(idx.Guests, guestImages)
	attachImages(idx.Characters, characterImages)

	sort.Ints(idx.YearAxis)
	return idx
}

// ForKind returns the entity map for the given kind.
func (idx *Index) ForKind(kind model.Kind) map[string]*model.Entity {
	if kind == model.KindCharacter {
		return idx.Characters
	}
	return idx.Guests
}

// OrderForKind returns the first-sighting name order for the given kind.
func (idx *Index) OrderForKind(kind model.Kind) []string {
	if kind == model.KindCharacter {
		return idx.CharacterOrder
	}
	return idx.GuestOrder
}

// sight records one appearance of an entity. Episodes arrive in index
// order, so LastIndex only ever grows and EpisodeIndices stays strictly
// ascending. An entity appears at most once per episode by construction.
func sight(entities map[string]*model.Entity, order *[]string, name string, kind model.Kind, episodeIndex int) *model.Entity {
	entity, ok := entities[name]
	if !ok {
		entity = &model.Entity{
			Name:       name,
			Kind:       kind,
			FirstIndex: episodeIndex,
			LastIndex:  episodeIndex,
		}
		entities[name] = entity
		*order = append(*order, name)
	}
	if n := len(entity.EpisodeIndices); n > 0 && entity.EpisodeIndices[n-1] == episodeIndex {
		return entity
	}
	entity.EpisodeIndices = append(entity.EpisodeIndices, episodeIndex)
	entity.LastIndex = episodeIndex
	return entity
}

// applyCast overrides the union heuristic with the feed's explicit
// guest-to-character mapping for the characters it names.
func applyCast(characters map[string]*model.Entity, cast map[string][]string) {
	if len(cast) == 0 {
		return
	}
	explicit := map[string]map[string]struct{}{}
	for guest, names := range cast {
		for _, name := range names {
			if _, ok := characters[name]; !ok {
				continue
			}
			if explicit[name] == nil {
				explicit[name] = map[string]struct{}{}
			}
			explicit[name][guest] = struct{}{}
		}
	}
	for name, players := range explicit {
		characters[name].PlayedBy = players
	}
}

func attachImages(entities map[string]*model.Entity, images map[string]string) {
	for name, url := range images {
		if entity, ok := entities[name]; ok {
			entity.ImageURL = url
		}
	}
}
