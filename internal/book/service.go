package book

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Nafiz001/booknest-client/internal/logger"
	"github.com/Nafiz001/booknest-client/internal/validate"

	"go.uber.org/zap"
)

type Service interface {
	Browse(ctx context.Context, q ListQuery) ([]Book, error)
	Detail(ctx context.Context, id string) (*Book, error)
	MyBooks(ctx context.Context, librarianID string) ([]Book, error)
	AllBooks(ctx context.Context) ([]Book, error)
	Create(ctx context.Context, req CreateRequest) (*Book, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Book, error)
	SetStatus(ctx context.Context, id string, status Status) (*Book, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Browse lists the catalog a buyer sees: published books only, narrowed and
// ordered client-side. Filtering here is presentation, not security; the
// server never hands drafts to buyers anyway.
func (s *service) Browse(ctx context.Context, q ListQuery) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := books[:0:0]
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, b := range books {
		if b.Status != StatusPublished {
			continue
		}
		if q.Category != "" && b.Category != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Title), search) &&
			!strings.Contains(strings.ToLower(b.Author), search) {
			continue
		}
		filtered = append(filtered, b)
	}

	sortBooks(filtered, q.SortBy, q.Descending)
	return filtered, nil
}

func sortBooks(books []Book, field SortField, desc bool) {
	if field == "" {
		return
	}

	less := func(i, j int) bool { return false }
	switch field {
	case SortTitle:
		less = func(i, j int) bool {
			return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
		}
	case SortPrice:
		less = func(i, j int) bool { return books[i].Price < books[j].Price }
	case SortDate:
		less = func(i, j int) bool { return books[i].CreatedAt.Before(books[j].CreatedAt) }
	case SortRating:
		less = func(i, j int) bool { return books[i].Rating < books[j].Rating }
	}

	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(books, less)
}

func (s *service) Detail(ctx context.Context, id string) (*Book, error) {
	return s.repo.GetByID(ctx, id)
}

// MyBooks scopes the listing to one librarian's catalog. The server filters
// by the token anyway; passing the id just keeps the response small.
func (s *service) MyBooks(ctx context.Context, librarianID string) ([]Book, error) {
	return s.repo.ListByLibrarian(ctx, librarianID)
}

// AllBooks is the admin view: every book in every status.
func (s *service) AllBooks(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Book, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateBook"),
	)

	if err := validateCreate(req); err != nil {
		log.Debug("book input rejected", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		log.Error("failed to create book", zap.Error(err))
		return nil, err
	}

	log.Info("book created",
		zap.String("book_id", created.ID),
		zap.String("title", created.Title),
	)
	return created, nil
}

func validateCreate(req CreateRequest) error {
	if !validate.Length(req.Title, validate.TitleMinLength, validate.TitleMaxLength) {
		return fmt.Errorf("%w: title must be %d-%d characters",
			ErrInvalidInput, validate.TitleMinLength, validate.TitleMaxLength)
	}
	if strings.TrimSpace(req.Author) == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidInput)
	}
	if !validate.Length(req.Description, validate.DescriptionMinLength, validate.DescriptionMaxLength) {
		return fmt.Errorf("%w: description must be %d-%d characters",
			ErrInvalidInput, validate.DescriptionMinLength, validate.DescriptionMaxLength)
	}
	if !validate.ISBN(req.ISBN) {
		return ErrInvalidISBN
	}
	if !ValidCategory(req.Category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
	}
	if req.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	return nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Book, error) {
	if req.Title != nil && !validate.Length(*req.Title, validate.TitleMinLength, validate.TitleMaxLength) {
		return nil, fmt.Errorf("%w: title must be %d-%d characters",
			ErrInvalidInput, validate.TitleMinLength, validate.TitleMaxLength)
	}
	if req.Category != nil && !ValidCategory(*req.Category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, *req.Category)
	}
	if req.Price != nil && *req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	return s.repo.Update(ctx, id, req)
}

func (s *service) SetStatus(ctx context.Context, id string, status Status) (*Book, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.repo.SetStatus(ctx, id, status)
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("book deleted", zap.String("book_id", id))
	return nil
}
