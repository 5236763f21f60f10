package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/tradeposthq/tradepost/internal/models"
	"github.com/tradeposthq/tradepost/internal/transfer"
)

type fakeCompanyRepo struct {
	companies map[int64]*models.Company
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) ListActive(ctx context.Context) ([]*models.Company, error) {
	var out []*models.Company
	for _, c := range f.companies {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCompanyRepo) UpdateCadence(ctx context.Context, company *models.Company) error {
	return nil
}

type fakeMediaRepo struct {
	items    []*models.MediaItem
	stamped  []int64
	touched  []int64
	stampErr error
}

func (f *fakeMediaRepo) ListAvailable(ctx context.Context, companyID int64) ([]*models.MediaItem, error) {
	var out []*models.MediaItem
	for _, m := range f.items {
		if m.CompanyID == companyID && m.Available {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMediaRepo) StampPosted(ctx context.Context, id int64, postedAt time.Time) error {
	if f.stampErr != nil {
		return f.stampErr
	}
	f.stamped = append(f.stamped, id)
	return nil
}

func (f *fakeMediaRepo) TouchPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeReviewRepo struct {
	reviews    []*models.Review
	graphicSet map[int64]string
	stamped    []int64
	touched    []int64
}

func (f *fakeReviewRepo) ListEligible(ctx context.Context, companyID int64, minRating int) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		if r.CompanyID == companyID && r.Rating >= minRating && r.Text != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) SetGraphicURL(ctx context.Context, id int64, graphicURL string) error {
	if f.graphicSet == nil {
		f.graphicSet = make(map[int64]string)
	}
	f.graphicSet[id] = graphicURL
	return nil
}

func (f *fakeReviewRepo) StampPosted(ctx context.Context, id int64, postedAt time.Time) error {
	f.stamped = append(f.stamped, id)
	return nil
}

func (f *fakeReviewRepo) TouchPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakePostRepo struct {
	posts          map[int64]*models.ScheduledPost
	nextID         int64
	created        []*models.ScheduledPost
	createErr      error
	recentKinds    []models.ContentKind
	pendingTimes   []time.Time
	pendingFuture  int
	due            []*models.ScheduledPost
	markedPosted   map[int64]time.Time
	failed         map[int64]string
	terminalFailed map[int64]string
	skipped        []int64
	retried        []int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:          make(map[int64]*models.ScheduledPost),
		markedPosted:   make(map[int64]time.Time),
		failed:         make(map[int64]string),
		terminalFailed: make(map[int64]string),
	}
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	return f.posts[id], nil
}

func (f *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.ScheduledPost) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	post.ID = f.nextID
	post.Status = models.PostStatusPending
	f.posts[post.ID] = post
	f.created = append(f.created, post)
	return post.ID, nil
}

func (f *fakePostRepo) ListByCompany(ctx context.Context, companyID int64) ([]*models.ScheduledPost, error) {
	var out []*models.ScheduledPost
	for _, p := range f.posts {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) ListFailed(ctx context.Context) ([]*models.ScheduledPost, error) {
	var out []*models.ScheduledPost
	for _, p := range f.posts {
		if p.Status == models.PostStatusFailed {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) ListRecentKinds(ctx context.Context, companyID int64, limit int) ([]models.ContentKind, error) {
	return f.recentKinds, nil
}

func (f *fakePostRepo) CountPendingFuture(ctx context.Context, companyID int64, now time.Time) (int, error) {
	return f.pendingFuture, nil
}

func (f *fakePostRepo) ListPendingTimes(ctx context.Context, companyID int64) ([]time.Time, error) {
	return f.pendingTimes, nil
}

func (f *fakePostRepo) ListDue(ctx context.Context, now time.Time, limit, retryCeiling int) ([]*models.ScheduledPost, error) {
	var out []*models.ScheduledPost
	for _, p := range f.due {
		if p.RetryCount < retryCeiling && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) MarkPosted(ctx context.Context, id int64, postedAt time.Time, errorMessage string) error {
	f.markedPosted[id] = postedAt
	if p, ok := f.posts[id]; ok {
		p.Status = models.PostStatusPosted
		p.PostedAt = &postedAt
		p.ErrorMessage = errorMessage
	}
	return nil
}

func (f *fakePostRepo) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	f.failed[id] = errorMessage
	if p, ok := f.posts[id]; ok {
		p.Status = models.PostStatusFailed
		p.ErrorMessage = errorMessage
		p.RetryCount++
	}
	return nil
}

func (f *fakePostRepo) MarkFailedTerminal(ctx context.Context, id int64, errorMessage string) error {
	f.terminalFailed[id] = errorMessage
	if p, ok := f.posts[id]; ok {
		p.Status = models.PostStatusFailed
		p.ErrorMessage = errorMessage
	}
	return nil
}

func (f *fakePostRepo) MarkSkipped(ctx context.Context, id int64) error {
	f.skipped = append(f.skipped, id)
	if p, ok := f.posts[id]; ok && p.Status == models.PostStatusPending {
		p.Status = models.PostStatusSkipped
	}
	return nil
}

func (f *fakePostRepo) MarkRetry(ctx context.Context, id int64) error {
	f.retried = append(f.retried, id)
	if p, ok := f.posts[id]; ok && p.Status == models.PostStatusFailed {
		p.Status = models.PostStatusPending
		p.ErrorMessage = ""
	}
	return nil
}

type fakeResultRepo struct {
	results []*models.PublishResult
}

func (f *fakeResultRepo) Create(ctx context.Context, result *models.PublishResult) (int64, error) {
	f.results = append(f.results, result)
	return int64(len(f.results)), nil
}

func (f *fakeResultRepo) ListByPostID(ctx context.Context, postID int64) ([]*models.PublishResult, error) {
	var out []*models.PublishResult
	for _, r := range f.results {
		if r.PostID == postID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeConnectionRepo struct {
	connections []*models.PlatformConnection
}

func (f *fakeConnectionRepo) ListConnected(ctx context.Context, companyID int64) ([]*models.PlatformConnection, error) {
	var out []*models.PlatformConnection
	for _, c := range f.connections {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeSelector struct {
	item      *models.MediaItem
	review    *models.Review
	itemCalls int
}

func (f *fakeSelector) NextMediaItem(ctx context.Context, company *models.Company) (*models.MediaItem, error) {
	f.itemCalls++
	return f.item, nil
}

func (f *fakeSelector) NextReview(ctx context.Context, company *models.Company) (*models.Review, error) {
	return f.review, nil
}

type fakeCaptionService struct {
	result *transfer.CaptionResult
	err    error
}

func (f *fakeCaptionService) Generate(ctx context.Context, company *models.Company, ref models.ContentRef) (*transfer.CaptionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeGraphicService struct {
	url   string
	err   error
	calls int
}

func (f *fakeGraphicService) EnsureGraphic(ctx context.Context, company *models.Company, review *models.Review) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeComposer struct {
	results []error
	calls   int
}

func (f *fakeComposer) Compose(ctx context.Context, company *models.Company) (int64, error) {
	err := f.results[f.calls%len(f.results)]
	f.calls++
	if err != nil {
		return 0, err
	}
	return int64(f.calls), nil
}

type fakeAdapter struct {
	platform string
	id       string
	err      error
	captions []string
}

func (f *fakeAdapter) Platform() string {
	return f.platform
}

func (f *fakeAdapter) Publish(ctx context.Context, conn *models.PlatformConnection, assetURL, caption string) (string, error) {
	f.captions = append(f.captions, caption)
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

type fakePublisher struct {
	posted map[int64]bool
	order  []int64
}

func (f *fakePublisher) PublishPost(ctx context.Context, postID int64) (bool, error) {
	f.order = append(f.order, postID)
	return f.posted[postID], nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
