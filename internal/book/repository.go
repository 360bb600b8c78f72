package book

import (
	"context"
	"fmt"

	"github.com/Nafiz001/booknest-client/internal/api"
)

// gateway is the slice of the API client the repository uses.
type gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
}

type Repository interface {
	List(ctx context.Context) ([]Book, error)
	ListByLibrarian(ctx context.Context, librarianID string) ([]Book, error)
	GetByID(ctx context.Context, id string) (*Book, error)
	Create(ctx context.Context, req CreateRequest) (*Book, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Book, error)
	SetStatus(ctx context.Context, id string, status Status) (*Book, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	client gateway
}

func NewRepository(client gateway) Repository {
	return &repository{client: client}
}

func (r *repository) List(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := r.client.Get(ctx, "/books", &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) ListByLibrarian(ctx context.Context, librarianID string) ([]Book, error) {
	var books []Book
	if err := r.client.Get(ctx, "/books/librarian/"+librarianID, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Book, error) {
	var b Book
	if err := r.client.Get(ctx, "/books/"+id, &b); err != nil {
		if api.IsNotFound(err) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) Create(ctx context.Context, req CreateRequest) (*Book, error) {
	var b Book
	if err := r.client.Post(ctx, "/books", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Update(ctx context.Context, id string, req UpdateRequest) (*Book, error) {
	var b Book
	if err := r.client.Patch(ctx, "/books/"+id, req, &b); err != nil {
		if api.IsNotFound(err) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) SetStatus(ctx context.Context, id string, status Status) (*Book, error) {
	body := map[string]string{"status": string(status)}
	var b Book
	if err := r.client.Patch(ctx, fmt.Sprintf("/books/%s/status", id), body, &b); err != nil {
		if api.IsNotFound(err) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/books/"+id); err != nil {
		if api.IsNotFound(err) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}
