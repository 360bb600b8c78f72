package order

import (
	"context"
	"fmt"

	"github.com/Nafiz001/booknest-client/internal/api"
)

type gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
}

type Repository interface {
	Place(ctx context.Context, req CreateRequest) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListByLibrarian(ctx context.Context, librarianID string) ([]Order, error)
	Cancel(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}

type repository struct {
	client gateway
}

func NewRepository(client gateway) Repository {
	return &repository{client: client}
}

func (r *repository) Place(ctx context.Context, req CreateRequest) (*Order, error) {
	var o Order
	if err := r.client.Post(ctx, "/orders", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := r.client.Get(ctx, "/orders/"+id, &o); err != nil {
		if api.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	var orders []Order
	if err := r.client.Get(ctx, "/orders/user/"+userID, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListByLibrarian(ctx context.Context, librarianID string) ([]Order, error) {
	var orders []Order
	if err := r.client.Get(ctx, "/orders/librarian/"+librarianID, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) Cancel(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := r.client.Patch(ctx, fmt.Sprintf("/orders/%s/cancel", id), nil, &o); err != nil {
		if api.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	body := map[string]string{"status": string(status)}
	var o Order
	if err := r.client.Patch(ctx, fmt.Sprintf("/orders/%s/status", id), body, &o); err != nil {
		if api.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}
