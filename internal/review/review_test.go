package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Get(ctx context.Context, path string, out interface{}) error {
	args := m.Called(ctx, path, out)
	return args.Error(0)
}

func (m *MockGateway) Post(ctx context.Context, path string, body, out interface{}) error {
	args := m.Called(ctx, path, body, out)
	return args.Error(0)
}

func grantEligibility(t *testing.T, gw *MockGateway, svc Service, bookID string) {
	t.Helper()
	gw.On("Get", mock.Anything, "/reviews/can-review/"+bookID, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*struct {
				CanReview bool `json:"canReview"`
			})
			out.CanReview = true
		}).Return(nil).Once()

	ok, err := svc.CanReview(context.Background(), bookID)
	require.NoError(t, err)
	require.True(t, ok)
}

// --- Tests ---

func TestService_CanReview(t *testing.T) {
	ctx := context.Background()

	t.Run("EligibleBuyer", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw)

		gw.On("Get", ctx, "/reviews/can-review/b1", mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(2).(*struct {
					CanReview bool `json:"canReview"`
				})
				out.CanReview = true
			}).Return(nil)

		ok, err := svc.CanReview(ctx, "b1")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("NotEligible", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw)

		gw.On("Get", ctx, "/reviews/can-review/b1", mock.Anything).Return(nil)

		ok, err := svc.CanReview(ctx, "b1")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ServerError", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw)

		gw.On("Get", ctx, "/reviews/can-review/b1", mock.Anything).
			Return(errors.New("gateway timeout"))

		_, err := svc.CanReview(ctx, "b1")

		assert.Error(t, err)
	})
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	comment := "A sweeping epic that rewards careful reading."

	t.Run("Success_RefetchesList", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw)
		grantEligibility(t, gw, svc, "b1")

		gw.On("Post", ctx, "/reviews", SubmitRequest{BookID: "b1", Rating: 5, Comment: comment}, mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(3).(*Review)
				out.ID = "r1"
			}).Return(nil)
		gw.On("Get", ctx, "/reviews/book/b1", mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(2).(*[]Review)
				*out = []Review{{ID: "r1", Rating: 5, Comment: comment}}
			}).Return(nil)

		reviews, err := svc.Submit(ctx, "b1", 5, comment)

		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, "r1", reviews[0].ID)
		gw.AssertExpectations(t)
	})

	t.Run("WithoutEligibilityCheck", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw)

		_, err := svc.Submit(ctx, "b1", 5, comment)

		assert.ErrorIs(t, err, ErrNotEligible)
		gw.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EligibilityDeniedEarlier", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw)

		gw.On("Get", ctx, "/reviews/can-review/b1", mock.Anything).Return(nil)
		_, err := svc.CanReview(ctx, "b1")
		require.NoError(t, err)

		_, err = svc.Submit(ctx, "b1", 5, comment)

		assert.ErrorIs(t, err, ErrNotEligible)
	})

	t.Run("bad input is refused locally", func(t *testing.T) {
		testCases := []struct {
			name    string
			rating  int
			comment string
		}{
			{"rating too low", 0, comment},
			{"rating too high", 6, comment},
			{"comment too short", 4, "Nice."},
			{"comment too long", 4, strings.Repeat("x", 501)},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				gw := new(MockGateway)
				svc := NewService(gw)
				grantEligibility(t, gw, svc, "b1")

				_, err := svc.Submit(ctx, "b1", tc.rating, tc.comment)

				assert.ErrorIs(t, err, ErrInvalidInput)
				gw.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("SecondSubmissionBlocked", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw)
		grantEligibility(t, gw, svc, "b1")

		gw.On("Post", ctx, "/reviews", mock.Anything, mock.Anything).Return(nil)
		gw.On("Get", ctx, "/reviews/book/b1", mock.Anything).Return(nil)

		_, err := svc.Submit(ctx, "b1", 4, comment)
		require.NoError(t, err)

		_, err = svc.Submit(ctx, "b1", 4, comment)

		assert.ErrorIs(t, err, ErrNotEligible)
	})
}
