package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tradeposthq/tradepost/internal/models"
)

func pendingImagePost(id int64) *models.ScheduledPost {
	mediaID := int64(42)
	return &models.ScheduledPost{
		ID:          id,
		CompanyID:   7,
		ContentKind: models.ContentKindImage,
		MediaItemID: &mediaID,
		Caption:     "New roof finished in Leeds",
		Hashtags:    "roofing leeds",
		AssetURL:    "https://cdn.example.com/42.jpg",
		Status:      models.PostStatusPending,
	}
}

func newTestPublisher(posts *fakePostRepo, media *fakeMediaRepo, reviews *fakeReviewRepo, conns *fakeConnectionRepo, results *fakeResultRepo, adapters ...PlatformAdapter) *publisherService {
	p := NewPublisher(posts, media, reviews, conns, results, adapters).(*publisherService)
	p.now = func() time.Time { return time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC) }
	return p
}

func TestPublishPostPartialSuccessIsPosted(t *testing.T) {
	posts := newFakePostRepo()
	post := pendingImagePost(1)
	posts.posts[1] = post
	media := &fakeMediaRepo{}
	conns := &fakeConnectionRepo{connections: []*models.PlatformConnection{
		{ID: 1, CompanyID: 7, Platform: models.PlatformInstagram, AccountID: "ig-acct"},
		{ID: 2, CompanyID: 7, Platform: models.PlatformFacebook, AccountID: "fb-page"},
	}}
	results := &fakeResultRepo{}
	instagram := &fakeAdapter{platform: models.PlatformInstagram, id: "ig_media_1"}
	facebook := &fakeAdapter{platform: models.PlatformFacebook, err: errors.New("rate_limited")}
	p := newTestPublisher(posts, media, &fakeReviewRepo{}, conns, results, instagram, facebook)

	posted, err := p.PublishPost(context.Background(), 1)

	assert.NoError(t, err)
	assert.True(t, posted)
	assert.Equal(t, models.PostStatusPosted, post.Status)
	assert.NotNil(t, post.PostedAt)
	assert.Equal(t, "facebook: rate_limited", post.ErrorMessage, "the partial failure must land on the posted row")

	// One result row per attempted platform, success and failure alike.
	assert.Len(t, results.results, 2)
	byPlatform := make(map[string]*models.PublishResult)
	for _, r := range results.results {
		byPlatform[r.Platform] = r
	}
	assert.Equal(t, "ig_media_1", byPlatform[models.PlatformInstagram].PlatformPostID)
	assert.Equal(t, "rate_limited", byPlatform[models.PlatformFacebook].ErrorMessage)

	assert.Equal(t, []int64{42}, media.touched)
}

func TestPublishPostNoConnectionsIsTerminal(t *testing.T) {
	posts := newFakePostRepo()
	post := pendingImagePost(1)
	post.RetryCount = 1
	posts.posts[1] = post
	p := newTestPublisher(posts, &fakeMediaRepo{}, &fakeReviewRepo{}, &fakeConnectionRepo{}, &fakeResultRepo{})

	posted, err := p.PublishPost(context.Background(), 1)

	assert.NoError(t, err)
	assert.False(t, posted)
	assert.Equal(t, "No social accounts connected", posts.terminalFailed[1])
	assert.Equal(t, 1, post.RetryCount, "no-accounts failure must not burn retry budget")
}

func TestPublishPostAllPlatformsFail(t *testing.T) {
	posts := newFakePostRepo()
	post := pendingImagePost(1)
	posts.posts[1] = post
	conns := &fakeConnectionRepo{connections: []*models.PlatformConnection{
		{ID: 1, CompanyID: 7, Platform: models.PlatformInstagram},
		{ID: 2, CompanyID: 7, Platform: models.PlatformFacebook},
	}}
	instagram := &fakeAdapter{platform: models.PlatformInstagram, err: errors.New("container expired")}
	facebook := &fakeAdapter{platform: models.PlatformFacebook, err: errors.New("token revoked")}
	media := &fakeMediaRepo{}
	p := newTestPublisher(posts, media, &fakeReviewRepo{}, conns, &fakeResultRepo{}, instagram, facebook)

	posted, err := p.PublishPost(context.Background(), 1)

	assert.NoError(t, err)
	assert.False(t, posted)
	assert.Equal(t, models.PostStatusFailed, post.Status)
	assert.Equal(t, "instagram: container expired; facebook: token revoked", posts.failed[1])
	assert.Equal(t, 1, post.RetryCount)
	assert.Empty(t, media.touched)
}

func TestPublishPostNeverRegressesStatus(t *testing.T) {
	posts := newFakePostRepo()
	post := pendingImagePost(1)
	post.Status = models.PostStatusPosted
	posts.posts[1] = post
	instagram := &fakeAdapter{platform: models.PlatformInstagram, id: "ig_media_1"}
	conns := &fakeConnectionRepo{connections: []*models.PlatformConnection{
		{ID: 1, CompanyID: 7, Platform: models.PlatformInstagram},
	}}
	p := newTestPublisher(posts, &fakeMediaRepo{}, &fakeReviewRepo{}, conns, &fakeResultRepo{}, instagram)

	posted, err := p.PublishPost(context.Background(), 1)

	assert.NoError(t, err)
	assert.True(t, posted)
	assert.Empty(t, instagram.captions, "an already-posted post must not be republished")

	post.Status = models.PostStatusSkipped
	posted, err = p.PublishPost(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, posted)
	assert.Empty(t, instagram.captions)
}

func TestPublishPostCaptionFormatting(t *testing.T) {
	posts := newFakePostRepo()
	posts.posts[1] = pendingImagePost(1)
	conns := &fakeConnectionRepo{connections: []*models.PlatformConnection{
		{ID: 1, CompanyID: 7, Platform: models.PlatformInstagram},
		{ID: 2, CompanyID: 7, Platform: models.PlatformGBP},
	}}
	instagram := &fakeAdapter{platform: models.PlatformInstagram, id: "ig_media_1"}
	gbp := &fakeAdapter{platform: models.PlatformGBP, id: "localPosts/1"}
	p := newTestPublisher(posts, &fakeMediaRepo{}, &fakeReviewRepo{}, conns, &fakeResultRepo{}, instagram, gbp)

	_, err := p.PublishPost(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, []string{"New roof finished in Leeds\n\n#roofing #leeds"}, instagram.captions)
	assert.Equal(t, []string{"New roof finished in Leeds"}, gbp.captions)
}

func TestPublishPostTouchesReviewContent(t *testing.T) {
	reviewID := int64(9)
	posts := newFakePostRepo()
	posts.posts[1] = &models.ScheduledPost{
		ID:          1,
		CompanyID:   7,
		ContentKind: models.ContentKindReview,
		ReviewID:    &reviewID,
		Caption:     "Kind words",
		AssetURL:    "https://cdn.example.com/review-graphics/9.png",
		Status:      models.PostStatusPending,
	}
	reviews := &fakeReviewRepo{}
	conns := &fakeConnectionRepo{connections: []*models.PlatformConnection{
		{ID: 1, CompanyID: 7, Platform: models.PlatformFacebook},
	}}
	facebook := &fakeAdapter{platform: models.PlatformFacebook, id: "fb_1"}
	p := newTestPublisher(posts, &fakeMediaRepo{}, reviews, conns, &fakeResultRepo{}, facebook)

	posted, err := p.PublishPost(context.Background(), 1)

	assert.NoError(t, err)
	assert.True(t, posted)
	assert.Equal(t, []int64{9}, reviews.touched)
	assert.Empty(t, posts.posts[1].ErrorMessage, "a clean publish leaves no failure entries behind")
}

func TestFormatCaption(t *testing.T) {
	assert.Equal(t, "hello\n\n#roofing #leeds", FormatCaption("hello", []string{"roofing", "leeds"}, models.PlatformInstagram))
	assert.Equal(t, "hello\n\n#roofing", FormatCaption("hello", []string{"#roofing", " "}, models.PlatformFacebook))
	assert.Equal(t, "hello", FormatCaption("hello", []string{"roofing"}, models.PlatformGBP))
	assert.Equal(t, "hello", FormatCaption("hello", nil, models.PlatformInstagram))
}
