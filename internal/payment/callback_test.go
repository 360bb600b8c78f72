package payment

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackListener(t *testing.T) {
	t.Run("SuccessRedirectDeliversSessionID", func(t *testing.T) {
		l, err := NewCallbackListener("127.0.0.1:0")
		require.NoError(t, err)
		defer l.Close()

		url := strings.Replace(l.SuccessURL(), "{CHECKOUT_SESSION_ID}", "cs_123", 1)
		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "Payment received")

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		sessionID, err := l.Wait(ctx)

		require.NoError(t, err)
		assert.Equal(t, "cs_123", sessionID)
	})

	t.Run("MissingSessionIDRejected", func(t *testing.T) {
		l, err := NewCallbackListener("127.0.0.1:0")
		require.NoError(t, err)
		defer l.Close()

		base := strings.Split(l.SuccessURL(), "?")[0]
		resp, err := http.Get(base)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("CancelRedirect", func(t *testing.T) {
		l, err := NewCallbackListener("127.0.0.1:0")
		require.NoError(t, err)
		defer l.Close()

		resp, err := http.Get(l.CancelURL())
		require.NoError(t, err)
		resp.Body.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_, err = l.Wait(ctx)

		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("WaitHonorsContext", func(t *testing.T) {
		l, err := NewCallbackListener("127.0.0.1:0")
		require.NoError(t, err)
		defer l.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = l.Wait(ctx)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
