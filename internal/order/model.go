package order

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// Order mirrors the server record. The book fields are a snapshot taken at
// order time so the row stays meaningful if the book is later edited or
// deleted.
type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	BookID        string        `json:"bookId"`
	BookTitle     string        `json:"bookTitle"`
	BookImage     string        `json:"bookImage"`
	BookPrice     float64       `json:"bookPrice"`
	LibrarianID   string        `json:"librarianId"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	DeliveryType  DeliveryType  `json:"deliveryType"`
	Notes         string        `json:"notes"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// CreateRequest is the placement payload sent to the server.
type CreateRequest struct {
	BookID       string       `json:"bookId"`
	BookTitle    string       `json:"bookTitle"`
	BookImage    string       `json:"bookImage"`
	BookPrice    float64      `json:"bookPrice"`
	LibrarianID  string       `json:"librarianId"`
	Phone        string       `json:"phone"`
	Address      string       `json:"address"`
	DeliveryType DeliveryType `json:"deliveryType"`
	Notes        string       `json:"notes"`
}

// transitions is the full one-step lifecycle. Cancellation is only reachable
// from pending, and only through the dedicated cancel operation.
var transitions = map[Status]Status{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusShipped,
	StatusShipped:   StatusDelivered,
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// validateTransition enforces the librarian's one-step advance. The same
// table lives on the server; checking here just saves a doomed round trip.
func validateTransition(current, next Status) error {
	if current.Terminal() {
		return fmt.Errorf("%w: %s is a terminal status", ErrTerminalStatus, current)
	}
	if transitions[current] != next {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
	}
	return nil
}
