package payment

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Nafiz001/booknest-client/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ErrNoSession means the redirect came back without a session id, which is
// what the hosted page does on cancel.
var ErrNoSession = errors.New("payment was not completed")

// CallbackListener is a short-lived loopback server that catches the hosted
// checkout's return redirect and extracts the session id from it.
type CallbackListener struct {
	srv      *http.Server
	ln       net.Listener
	sessions chan string
	cancels  chan struct{}
}

// NewCallbackListener binds addr (loopback) and starts serving the return
// routes immediately, so the redirect URL is valid before checkout begins.
func NewCallbackListener(addr string) (*CallbackListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	l := &CallbackListener{
		ln:       ln,
		sessions: make(chan string, 1),
		cancels:  make(chan struct{}, 1),
	}

	r := chi.NewRouter()
	r.Get("/payment-success", l.handleSuccess)
	r.Get("/payment-cancelled", l.handleCancel)

	l.srv = &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Warn("payment callback listener stopped", zap.Error(err))
		}
	}()

	return l, nil
}

// SuccessURL is the redirect target to register with the checkout session.
func (l *CallbackListener) SuccessURL() string {
	return "http://" + l.ln.Addr().String() + "/payment-success?session_id={CHECKOUT_SESSION_ID}"
}

func (l *CallbackListener) CancelURL() string {
	return "http://" + l.ln.Addr().String() + "/payment-cancelled"
}

func (l *CallbackListener) handleSuccess(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "missing session_id", http.StatusBadRequest)
		return
	}

	select {
	case l.sessions <- sessionID:
	default:
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Payment received. You can return to the terminal.\n"))
}

func (l *CallbackListener) handleCancel(w http.ResponseWriter, r *http.Request) {
	select {
	case l.cancels <- struct{}{}:
	default:
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Payment cancelled. You can return to the terminal.\n"))
}

// Wait blocks until the redirect lands or ctx expires. A cancel redirect
// returns ErrNoSession.
func (l *CallbackListener) Wait(ctx context.Context) (string, error) {
	select {
	case sessionID := <-l.sessions:
		return sessionID, nil
	case <-l.cancels:
		return "", ErrNoSession
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (l *CallbackListener) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return l.srv.Shutdown(ctx)
}
