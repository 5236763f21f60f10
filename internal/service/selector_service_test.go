package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	config "github.com/tradeposthq/tradepost/configs"
	"github.com/tradeposthq/tradepost/internal/models"
)

func testRotationConfig() config.Config {
	return config.Config{
		Rotation: config.Rotation{
			SingleItemCooldownDays:  14,
			ReviewReuseCooldownDays: 30,
			SlotScanDays:            14,
			MaxDailySlots:           3,
			RetryCeiling:            3,
			DueBatchSize:            50,
			PublishDelaySeconds:     2,
		},
	}
}

func newTestSelector(media *fakeMediaRepo, reviews *fakeReviewRepo, now time.Time) *contentSelector {
	sel := NewContentSelector(testRotationConfig(), media, reviews).(*contentSelector)
	sel.now = func() time.Time { return now }
	return sel
}

func TestNextMediaItemPicksFromLeastPostedTieSet(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	media := &fakeMediaRepo{items: []*models.MediaItem{
		{ID: 1, CompanyID: 7, Available: true, TimesPosted: 0},
		{ID: 2, CompanyID: 7, Available: true, TimesPosted: 0},
		{ID: 3, CompanyID: 7, Available: true, TimesPosted: 2},
	}}
	sel := newTestSelector(media, &fakeReviewRepo{}, now)
	company := &models.Company{ID: 7}

	seen := make(map[int64]bool)
	for i := 0; i < 200; i++ {
		item, err := sel.NextMediaItem(context.Background(), company)
		assert.NoError(t, err)
		assert.NotNil(t, item)
		assert.NotEqual(t, int64(3), item.ID, "item outside the minimum tie set was chosen")
		seen[item.ID] = true
	}

	// Both tied items should surface over 200 draws.
	assert.True(t, seen[1])
	assert.True(t, seen[2])
}

func TestNextMediaItemExhaustedPool(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sel := newTestSelector(&fakeMediaRepo{}, &fakeReviewRepo{}, now)

	item, err := sel.NextMediaItem(context.Background(), &models.Company{ID: 7})

	assert.NoError(t, err)
	assert.Nil(t, item)
}

func TestNextMediaItemSingleItemCooldown(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	company := &models.Company{ID: 7}

	recent := &fakeMediaRepo{items: []*models.MediaItem{
		{ID: 1, CompanyID: 7, Available: true, TimesPosted: 3, LastPostedAt: timePtr(now.AddDate(0, 0, -5))},
	}}
	sel := newTestSelector(recent, &fakeReviewRepo{}, now)
	item, err := sel.NextMediaItem(context.Background(), company)
	assert.NoError(t, err)
	assert.Nil(t, item, "single item posted 5 days ago must sit out the cooldown")

	stale := &fakeMediaRepo{items: []*models.MediaItem{
		{ID: 1, CompanyID: 7, Available: true, TimesPosted: 3, LastPostedAt: timePtr(now.AddDate(0, 0, -20))},
	}}
	sel = newTestSelector(stale, &fakeReviewRepo{}, now)
	item, err = sel.NextMediaItem(context.Background(), company)
	assert.NoError(t, err)
	assert.NotNil(t, item)
}

func TestNextReviewPrefersUnposted(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	reviews := &fakeReviewRepo{reviews: []*models.Review{
		{ID: 1, CompanyID: 7, Rating: 5, Text: "great", UsedInPost: true, LastPostedAt: timePtr(now.AddDate(0, 0, -90))},
		{ID: 2, CompanyID: 7, Rating: 5, Text: "solid", UsedInPost: false},
		{ID: 3, CompanyID: 7, Rating: 4, Text: "quick", UsedInPost: false},
	}}
	sel := newTestSelector(&fakeMediaRepo{}, reviews, now)
	company := &models.Company{ID: 7, ReviewMinRating: 4}

	for i := 0; i < 50; i++ {
		review, err := sel.NextReview(context.Background(), company)
		assert.NoError(t, err)
		assert.NotNil(t, review)
		assert.False(t, review.UsedInPost, "an already-used review was re-picked while unposted ones remained")
	}
}

func TestNextReviewHonorsMinRating(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	reviews := &fakeReviewRepo{reviews: []*models.Review{
		{ID: 1, CompanyID: 7, Rating: 3, Text: "meh"},
		{ID: 2, CompanyID: 7, Rating: 5, Text: "great"},
	}}
	sel := newTestSelector(&fakeMediaRepo{}, reviews, now)

	review, err := sel.NextReview(context.Background(), &models.Company{ID: 7, ReviewMinRating: 4})

	assert.NoError(t, err)
	assert.NotNil(t, review)
	assert.Equal(t, int64(2), review.ID)
}

func TestNextReviewReuseCooldown(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	company := &models.Company{ID: 7, ReviewMinRating: 4}

	fresh := &fakeReviewRepo{reviews: []*models.Review{
		{ID: 1, CompanyID: 7, Rating: 5, Text: "great", UsedInPost: true, LastPostedAt: timePtr(now.AddDate(0, 0, -10))},
	}}
	sel := newTestSelector(&fakeMediaRepo{}, fresh, now)
	review, err := sel.NextReview(context.Background(), company)
	assert.NoError(t, err)
	assert.Nil(t, review, "a review reused 10 days ago must wait out the cooldown")

	stale := &fakeReviewRepo{reviews: []*models.Review{
		{ID: 1, CompanyID: 7, Rating: 5, Text: "great", UsedInPost: true, LastPostedAt: timePtr(now.AddDate(0, 0, -40))},
		{ID: 2, CompanyID: 7, Rating: 5, Text: "good", UsedInPost: true, LastPostedAt: timePtr(now.AddDate(0, 0, -35))},
	}}
	sel = newTestSelector(&fakeMediaRepo{}, stale, now)
	review, err = sel.NextReview(context.Background(), company)
	assert.NoError(t, err)
	assert.NotNil(t, review)
	assert.Equal(t, int64(1), review.ID, "the least recently reused review goes first")
}
