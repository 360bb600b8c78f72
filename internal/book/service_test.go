package book

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Book), args.Error(1)
}

func (m *MockRepository) ListByLibrarian(ctx context.Context, librarianID string) ([]Book, error) {
	args := m.Called(ctx, librarianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Book), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Book), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, req CreateRequest) (*Book, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Book), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id string, req UpdateRequest) (*Book, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Book), args.Error(1)
}

func (m *MockRepository) SetStatus(ctx context.Context, id string, status Status) (*Book, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Book), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func catalog() []Book {
	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	}
	return []Book{
		{ID: "b1", Title: "Dune", Author: "Frank Herbert", Category: "Science Fiction",
			Price: 15.99, Rating: 4.8, Status: StatusPublished, CreatedAt: day(1)},
		{ID: "b2", Title: "Annihilation", Author: "Jeff VanderMeer", Category: "Science Fiction",
			Price: 9.50, Rating: 4.1, Status: StatusPublished, CreatedAt: day(3)},
		{ID: "b3", Title: "Gone Girl", Author: "Gillian Flynn", Category: "Thriller",
			Price: 12.00, Rating: 4.3, Status: StatusPublished, CreatedAt: day(2)},
		{ID: "b4", Title: "Unlisted Draft", Author: "Frank Herbert", Category: "Science Fiction",
			Price: 5.00, Rating: 0, Status: StatusDraft, CreatedAt: day(4)},
		{ID: "b5", Title: "Pulled Title", Author: "Someone", Category: "Thriller",
			Price: 7.00, Rating: 3.0, Status: StatusUnpublished, CreatedAt: day(5)},
	}
}

// --- Tests ---

func TestService_Browse(t *testing.T) {
	ctx := context.Background()

	ids := func(books []Book) []string {
		out := make([]string, len(books))
		for i, b := range books {
			out[i] = b.ID
		}
		return out
	}

	testCases := []struct {
		name  string
		query ListQuery
		want  []string
	}{
		{"only published books, server order", ListQuery{}, []string{"b1", "b2", "b3"}},
		{"category filter", ListQuery{Category: "Thriller"}, []string{"b3"}},
		{"search matches title", ListQuery{Search: "dune"}, []string{"b1"}},
		{"search matches author", ListQuery{Search: "flynn"}, []string{"b3"}},
		{"search never surfaces drafts", ListQuery{Search: "unlisted"}, []string{}},
		{"sort by title asc", ListQuery{SortBy: SortTitle}, []string{"b2", "b1", "b3"}},
		{"sort by price desc", ListQuery{SortBy: SortPrice, Descending: true}, []string{"b1", "b3", "b2"}},
		{"sort by date desc (newest first)", ListQuery{SortBy: SortDate, Descending: true}, []string{"b2", "b3", "b1"}},
		{"sort by rating desc", ListQuery{SortBy: SortRating, Descending: true}, []string{"b1", "b3", "b2"}},
		{"category and sort combined", ListQuery{Category: "Science Fiction", SortBy: SortPrice}, []string{"b2", "b1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("List", ctx).Return(catalog(), nil)
			svc := NewService(repo)

			got, err := svc.Browse(ctx, tc.query)

			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}

	t.Run("repository error passes through", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("List", ctx).Return(nil, errors.New("gateway timeout"))
		svc := NewService(repo)

		_, err := svc.Browse(ctx, ListQuery{})

		assert.Error(t, err)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	valid := CreateRequest{
		Title:       "The Left Hand of Darkness",
		Author:      "Ursula K. Le Guin",
		Description: "A lone envoy on a planet of ambisexual inhabitants.",
		ISBN:        "9780306406157",
		Publisher:   "Ace",
		Pages:       304,
		Language:    "English",
		Category:    "Science Fiction",
		Price:       11.99,
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, valid).
			Return(&Book{ID: "b9", Title: valid.Title, Status: StatusDraft}, nil)
		svc := NewService(repo)

		created, err := svc.Create(ctx, valid)

		require.NoError(t, err)
		assert.Equal(t, "b9", created.ID)
		assert.Equal(t, StatusDraft, created.Status)
		repo.AssertExpectations(t)
	})

	t.Run("rejected inputs never reach the repository", func(t *testing.T) {
		testCases := []struct {
			name    string
			mutate  func(*CreateRequest)
			wantErr error
		}{
			{"bad isbn checksum", func(r *CreateRequest) { r.ISBN = "9780306406158" }, ErrInvalidISBN},
			{"title too short", func(r *CreateRequest) { r.Title = "Ab" }, ErrInvalidInput},
			{"missing author", func(r *CreateRequest) { r.Author = "  " }, ErrInvalidInput},
			{"description too short", func(r *CreateRequest) { r.Description = "Short." }, ErrInvalidInput},
			{"unknown category", func(r *CreateRequest) { r.Category = "Cryptozoology" }, ErrInvalidCategory},
			{"zero price", func(r *CreateRequest) { r.Price = 0 }, ErrInvalidInput},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				repo := new(MockRepository)
				svc := NewService(repo)

				req := valid
				tc.mutate(&req)
				_, err := svc.Create(ctx, req)

				assert.ErrorIs(t, err, tc.wantErr)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		price := 13.50
		req := UpdateRequest{Price: &price}
		repo.On("Update", ctx, "b1", req).Return(&Book{ID: "b1", Price: price}, nil)
		svc := NewService(repo)

		updated, err := svc.Update(ctx, "b1", req)

		require.NoError(t, err)
		assert.Equal(t, price, updated.Price)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		price := -1.0

		_, err := svc.Update(ctx, "b1", UpdateRequest{Price: &price})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		cat := "Made Up"

		_, err := svc.Update(ctx, "b1", UpdateRequest{Category: &cat})

		assert.ErrorIs(t, err, ErrInvalidCategory)
	})
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Publish", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SetStatus", ctx, "b1", StatusPublished).
			Return(&Book{ID: "b1", Status: StatusPublished}, nil)
		svc := NewService(repo)

		updated, err := svc.SetStatus(ctx, "b1", StatusPublished)

		require.NoError(t, err)
		assert.Equal(t, StatusPublished, updated.Status)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.SetStatus(ctx, "b1", Status("archived"))

		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	repo.On("Delete", ctx, "b1").Return(nil)
	svc := NewService(repo)

	assert.NoError(t, svc.Delete(ctx, "b1"))
	repo.AssertExpectations(t)
}
