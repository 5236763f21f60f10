package service

import "github.com/tradeposthq/tradepost/internal/models"

// NextContentKind decides whether the next post should attempt a review or an
// image, given the kinds of the most recently created posts (newest first).
//
// Reviews land roughly one post in three: a review is attempted only when
// review posting is enabled, at least two prior posts exist, and neither of
// the last two was a review. The function is pure so the alternation cadence
// stays testable without touching storage.
func NextContentKind(recent []models.ContentKind, reviewsEnabled bool) models.ContentKind {
	if !reviewsEnabled || len(recent) < 2 {
		return models.ContentKindImage
	}
	for _, k := range recent[:2] {
		if k == models.ContentKindReview {
			return models.ContentKindImage
		}
	}
	return models.ContentKindReview
}
