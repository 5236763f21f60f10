package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tradeposthq/tradepost/internal/models"
	"github.com/tradeposthq/tradepost/internal/repository"
)

// PostService is the operator surface over the schedule: listing, manual
// skip before pickup, and manual retry past the automatic ceiling.
type PostService interface {
	List(ctx context.Context, companyID int64) ([]*models.ScheduledPost, error)
	ListFailed(ctx context.Context) ([]*models.ScheduledPost, error)
	Results(ctx context.Context, postID int64) ([]*models.PublishResult, error)
	Skip(ctx context.Context, postID int64) error
	Retry(ctx context.Context, postID int64) (*models.ScheduledPost, error)
}

type postService struct {
	posts   repository.ScheduledPostRepository
	results repository.PublishResultRepository
}

func NewPostService(posts repository.ScheduledPostRepository, results repository.PublishResultRepository) PostService {
	return &postService{posts: posts, results: results}
}

func (s *postService) List(ctx context.Context, companyID int64) ([]*models.ScheduledPost, error) {
	if companyID == 0 {
		return nil, errors.New("company id is not valid")
	}

	posts, err := s.posts.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

func (s *postService) ListFailed(ctx context.Context) ([]*models.ScheduledPost, error) {
	posts, err := s.posts.ListFailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing failed posts: %w", err)
	}
	return posts, nil
}

func (s *postService) Results(ctx context.Context, postID int64) ([]*models.PublishResult, error) {
	results, err := s.results.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing publish results: %w", err)
	}
	return results, nil
}

// Skip only applies before the due processor picks the post up; an in-flight
// publish runs to completion.
func (s *postService) Skip(ctx context.Context, postID int64) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return errors.New("post doesn't exist")
	}
	if post.Status != models.PostStatusPending {
		return fmt.Errorf("only pending posts can be skipped, post is %s", post.Status)
	}

	if err := s.posts.MarkSkipped(ctx, postID); err != nil {
		return fmt.Errorf("error skipping post: %w", err)
	}

	slog.Info("post skipped", slog.Int64("post_id", postID))
	return nil
}

// Retry is the manual intervention for posts at or past the retry ceiling.
// The post goes back to pending; the caller enqueues the publish.
func (s *postService) Retry(ctx context.Context, postID int64) (*models.ScheduledPost, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.New("post doesn't exist")
	}
	if post.Status != models.PostStatusFailed {
		return nil, fmt.Errorf("only failed posts can be retried, post is %s", post.Status)
	}

	if err := s.posts.MarkRetry(ctx, postID); err != nil {
		return nil, fmt.Errorf("error resetting post for retry: %w", err)
	}

	slog.Info("post queued for manual retry", slog.Int64("post_id", postID))
	return post, nil
}
