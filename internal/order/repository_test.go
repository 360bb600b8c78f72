package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Nafiz001/booknest-client/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

func newTestRepo(t *testing.T, handler http.HandlerFunc) Repository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRepository(api.NewClient(srv.URL, 5*time.Second, staticToken("tok")))
}

func TestRepository_Place(t *testing.T) {
	ctx := context.Background()

	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		var req CreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "b1", req.BookID)
		assert.Equal(t, DeliveryTypeDelivery, req.DeliveryType)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Order{ID: "o1", BookID: req.BookID, Status: StatusPending})
	})

	placed, err := repo.Place(ctx, CreateRequest{BookID: "b1", DeliveryType: DeliveryTypeDelivery})

	require.NoError(t, err)
	assert.Equal(t, "o1", placed.ID)
}

func TestRepository_ListByUser(t *testing.T) {
	ctx := context.Background()

	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/user/u1", r.URL.Path)
		json.NewEncoder(w).Encode([]Order{{ID: "o1"}, {ID: "o2"}})
	})

	orders, err := repo.ListByUser(ctx, "u1")

	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestRepository_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/orders/o1/cancel", r.URL.Path)
			json.NewEncoder(w).Encode(Order{ID: "o1", Status: StatusCancelled})
		})

		cancelled, err := repo.Cancel(ctx, "o1")

		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Order not found"})
		})

		_, err := repo.Cancel(ctx, "gone")

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/orders/o1/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "confirmed", body["status"])

		json.NewEncoder(w).Encode(Order{ID: "o1", Status: StatusConfirmed})
	})

	updated, err := repo.UpdateStatus(ctx, "o1", StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)
}
