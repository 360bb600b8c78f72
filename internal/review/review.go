// Package review implements the purchase-gated review flow. Eligibility is
// the server's call; the client only asks first so it never offers a form
// that cannot be submitted.
package review

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Nafiz001/booknest-client/internal/logger"
	"github.com/Nafiz001/booknest-client/internal/validate"

	"go.uber.org/zap"
)

var (
	ErrNotEligible  = errors.New("not eligible to review this book")
	ErrInvalidInput = errors.New("invalid review input")
)

type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubmitRequest struct {
	BookID  string `json:"bookId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
}

type Service interface {
	List(ctx context.Context, bookID string) ([]Review, error)
	CanReview(ctx context.Context, bookID string) (bool, error)

	// Submit refuses locally unless CanReview established eligibility for
	// the book in this session. On success the fresh server-side list is
	// returned; the new review is never appended locally.
	Submit(ctx context.Context, bookID string, rating int, comment string) ([]Review, error)
}

type service struct {
	client gateway

	mu       sync.Mutex
	eligible map[string]bool
}

func NewService(client gateway) Service {
	return &service{
		client:   client,
		eligible: make(map[string]bool),
	}
}

func (s *service) List(ctx context.Context, bookID string) ([]Review, error) {
	var reviews []Review
	if err := s.client.Get(ctx, "/reviews/book/"+bookID, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *service) CanReview(ctx context.Context, bookID string) (bool, error) {
	var out struct {
		CanReview bool `json:"canReview"`
	}
	if err := s.client.Get(ctx, "/reviews/can-review/"+bookID, &out); err != nil {
		return false, err
	}

	s.mu.Lock()
	s.eligible[bookID] = out.CanReview
	s.mu.Unlock()

	return out.CanReview, nil
}

func (s *service) Submit(ctx context.Context, bookID string, rating int, comment string) ([]Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SubmitReview"),
		zap.String("book_id", bookID),
	)

	s.mu.Lock()
	eligible := s.eligible[bookID]
	s.mu.Unlock()
	if !eligible {
		return nil, ErrNotEligible
	}

	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be 1-5", ErrInvalidInput)
	}
	if !validate.Length(comment, validate.CommentMinLength, validate.CommentMaxLength) {
		return nil, fmt.Errorf("%w: comment must be %d-%d characters",
			ErrInvalidInput, validate.CommentMinLength, validate.CommentMaxLength)
	}

	var created Review
	if err := s.client.Post(ctx, "/reviews", SubmitRequest{
		BookID:  bookID,
		Rating:  rating,
		Comment: comment,
	}, &created); err != nil {
		log.Error("failed to submit review", zap.Error(err))
		return nil, err
	}

	// One review per buyer per book.
	s.mu.Lock()
	s.eligible[bookID] = false
	s.mu.Unlock()

	log.Info("review submitted", zap.String("review_id", created.ID), zap.Int("rating", rating))
	return s.List(ctx, bookID)
}
