// Package ranking orders the stories of one time block by score and applies
// the rank and score thresholds from the user's settings.
package ranking

import (
	"cmp"
	"slices"

	"hnblocks/internal/models"
)

// Sort returns a copy of stories ordered by points, highest first.
// Stories with equal points keep their input order.
func Sort(stories []models.Story) []models.Story {
	sorted := slices.Clone(stories)
	slices.SortStableFunc(sorted, func(a, b models.Story) int {
		return cmp.Compare(b.Points, a.Points)
	})
	return sorted
}

// Rank sorts stories and attaches their 1-based position.
func Rank(stories []models.Story) []models.RankedStory {
	sorted := Sort(stories)
	ranked := make([]models.RankedStory, len(sorted))
	for i, s := range sorted {
		ranked[i] = models.RankedStory{Rank: i + 1, Story: s}
	}
	return ranked
}

// Filter drops ranked stories outside the top MinRanking or below MinPoints.
// A zero threshold disables that filter.
func Filter(ranked []models.RankedStory, settings models.SettingsConfig) []models.RankedStory {
	out := make([]models.RankedStory, 0, len(ranked))
	for _, s := range ranked {
		if settings.MinRanking > 0 && s.Rank > settings.MinRanking {
			continue
		}
		if settings.MinPoints > 0 && s.Points < settings.MinPoints {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Apply sorts, ranks and filters stories and reports how many survived.
func Apply(stories []models.Story, settings models.SettingsConfig) models.StoryView {
	filtered := Filter(Rank(stories), settings)
	return models.StoryView{
		Stories:       filtered,
		Count:         len(filtered),
		OriginalCount: len(stories),
		State:         models.StateFor(len(filtered), len(stories)),
	}
}
