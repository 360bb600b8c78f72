// Package invoice is the read-only projection of paid orders. Invoices are
// created server-side during payment reconciliation; the client only lists
// and displays them.
package invoice

import (
	"context"
	"time"
)

type Invoice struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	BookTitle string    `json:"bookTitle"`
	Amount    float64   `json:"amount"`
	SessionID string    `json:"sessionId"`
	PaidAt    time.Time `json:"paidAt"`
}

type gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
}

type Service interface {
	ListByUser(ctx context.Context, userID string) ([]Invoice, error)
}

type service struct {
	client gateway
}

func NewService(client gateway) Service {
	return &service{client: client}
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]Invoice, error) {
	var invoices []Invoice
	if err := s.client.Get(ctx, "/invoices/user/"+userID, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}
