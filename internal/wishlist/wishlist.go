// Package wishlist wraps the wishlist endpoints. A duplicate add is not a
// failure: the server answers 409 and the client reports the benign
// ErrAlreadyInWishlist instead of an error toast.
package wishlist

import (
	"context"
	"errors"
	"time"

	"github.com/Nafiz001/booknest-client/internal/api"
	"github.com/Nafiz001/booknest-client/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrAlreadyInWishlist = errors.New("book is already in the wishlist")
	ErrItemNotFound      = errors.New("wishlist item not found")
)

// Item carries a denormalized book snapshot so the list renders without one
// fetch per row.
type Item struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	BookID    string    `json:"bookId"`
	BookTitle string    `json:"bookTitle"`
	BookImage string    `json:"bookImage"`
	BookPrice float64   `json:"bookPrice"`
	CreatedAt time.Time `json:"createdAt"`
}

type gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
}

type Service interface {
	List(ctx context.Context, userID string) ([]Item, error)
	Add(ctx context.Context, bookID string) (*Item, error)
	Remove(ctx context.Context, itemID string) error
}

type service struct {
	client gateway
}

func NewService(client gateway) Service {
	return &service{client: client}
}

func (s *service) List(ctx context.Context, userID string) ([]Item, error) {
	var items []Item
	if err := s.client.Get(ctx, "/wishlist/"+userID, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) Add(ctx context.Context, bookID string) (*Item, error) {
	var item Item
	err := s.client.Post(ctx, "/wishlist", map[string]string{"bookId": bookID}, &item)
	if err != nil {
		if api.IsConflict(err) {
			return nil, ErrAlreadyInWishlist
		}
		return nil, err
	}

	logger.FromCtx(ctx).Info("book added to wishlist",
		zap.String("book_id", bookID),
		zap.String("item_id", item.ID),
	)
	return &item, nil
}

func (s *service) Remove(ctx context.Context, itemID string) error {
	if err := s.client.Delete(ctx, "/wishlist/"+itemID); err != nil {
		if api.IsNotFound(err) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}
