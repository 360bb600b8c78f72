// Package payment drives the hosted-checkout flow: create a session, hand
// the buyer to the payment page, and reconcile the result with the server
// once the redirect comes back.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nafiz001/booknest-client/internal/logger"
	"github.com/Nafiz001/booknest-client/internal/order"

	"go.uber.org/zap"
)

var (
	ErrAlreadyPaid     = errors.New("order is already paid")
	ErrReconcileFailed = errors.New("payment could not be confirmed")
)

// CheckoutSession is the hosted payment page the buyer is sent to.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type gateway interface {
	Post(ctx context.Context, path string, body, out interface{}) error
}

type Service interface {
	// Start re-fetches the order and opens a checkout session for it. An
	// order that is already paid short-circuits with ErrAlreadyPaid so a
	// stale link can never charge twice.
	Start(ctx context.Context, orderID string) (*CheckoutSession, error)

	// Reconcile reports the completed session to the server, which verifies
	// it with the payment provider and flips the order to paid. Payment is
	// not done until this succeeds.
	Reconcile(ctx context.Context, sessionID string) (*order.Order, error)
}

type service struct {
	client gateway
	orders order.Repository
}

func NewService(client gateway, orders order.Repository) Service {
	return &service{client: client, orders: orders}
}

func (s *service) Start(ctx context.Context, orderID string) (*CheckoutSession, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "StartPayment"),
		zap.String("order_id", orderID),
	)

	current, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current.PaymentStatus == order.PaymentPaid {
		log.Info("order already paid, skipping checkout session")
		return nil, ErrAlreadyPaid
	}

	var session CheckoutSession
	if err := s.client.Post(ctx, "/create-checkout-session", map[string]interface{}{
		"order": current,
	}, &session); err != nil {
		log.Error("failed to create checkout session", zap.Error(err))
		return nil, err
	}
	if session.URL == "" {
		return nil, errors.New("checkout session has no url")
	}

	log.Info("checkout session created", zap.String("session_id", session.SessionID))
	return &session, nil
}

func (s *service) Reconcile(ctx context.Context, sessionID string) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ReconcilePayment"),
		zap.String("session_id", sessionID),
	)

	if sessionID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrReconcileFailed)
	}

	var paid order.Order
	if err := s.client.Post(ctx, "/payment-success", map[string]string{
		"sessionId": sessionID,
	}, &paid); err != nil {
		log.Error("payment reconciliation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrReconcileFailed, err)
	}

	log.Info("payment reconciled",
		zap.String("order_id", paid.ID),
		zap.String("payment_status", string(paid.PaymentStatus)),
	)
	return &paid, nil
}
