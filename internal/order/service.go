package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nafiz001/booknest-client/internal/book"
	"github.com/Nafiz001/booknest-client/internal/logger"
	"github.com/Nafiz001/booknest-client/internal/validate"

	"go.uber.org/zap"
)

// Draft is everything the buyer fills in before placing an order. The book
// is the record they were viewing; its title, image, price and librarian are
// snapshotted into the request.
type Draft struct {
	Book         *book.Book
	Phone        string
	Address      string
	City         string
	ZipCode      string
	DeliveryType DeliveryType
	Notes        string
}

type Service interface {
	Place(ctx context.Context, draft Draft) (*Order, error)
	MyOrders(ctx context.Context, userID string) ([]Order, error)
	SellerOrders(ctx context.Context, librarianID string) ([]Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	Cancel(ctx context.Context, id string) (*Order, error)
	Advance(ctx context.Context, id string, next Status) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Place validates the draft locally, then submits it. Server-side rejections
// come back verbatim through the gateway error.
func (s *service) Place(ctx context.Context, draft Draft) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
	)

	if err := validateDraft(draft); err != nil {
		log.Debug("order draft rejected", zap.Error(err))
		return nil, err
	}

	req := CreateRequest{
		BookID:       draft.Book.ID,
		BookTitle:    draft.Book.Title,
		BookImage:    draft.Book.Image,
		BookPrice:    draft.Book.Price,
		LibrarianID:  draft.Book.LibrarianID,
		Phone:        draft.Phone,
		Address:      joinAddress(draft),
		DeliveryType: draft.DeliveryType,
		Notes:        draft.Notes,
	}

	placed, err := s.repo.Place(ctx, req)
	if err != nil {
		log.Error("failed to place order", zap.Error(err))
		return nil, err
	}

	log.Info("order placed",
		zap.String("order_id", placed.ID),
		zap.String("book_id", placed.BookID),
		zap.String("delivery_type", string(placed.DeliveryType)),
	)
	return placed, nil
}

func validateDraft(draft Draft) error {
	if draft.Book == nil {
		return fmt.Errorf("%w: no book selected", ErrInvalidDraft)
	}
	if !validate.Phone(draft.Phone) {
		return fmt.Errorf("%w: phone must have %d digits", ErrInvalidDraft, validate.PhoneLength)
	}
	switch draft.DeliveryType {
	case DeliveryTypeDelivery:
		if strings.TrimSpace(draft.Address) == "" {
			return fmt.Errorf("%w: address is required for delivery", ErrInvalidDraft)
		}
		if draft.ZipCode != "" && !validate.ZipCode(draft.ZipCode) {
			return fmt.Errorf("%w: invalid zip code", ErrInvalidDraft)
		}
	case DeliveryTypePickup:
	default:
		return fmt.Errorf("%w: unknown delivery type %q", ErrInvalidDraft, draft.DeliveryType)
	}
	return nil
}

func joinAddress(draft Draft) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{draft.Address, draft.City, draft.ZipCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

func (s *service) MyOrders(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) SellerOrders(ctx context.Context, librarianID string) ([]Order, error) {
	return s.repo.ListByLibrarian(ctx, librarianID)
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Cancel refuses anything past pending before the round trip; the server's
// verdict still wins, we just don't send requests that cannot succeed.
// Cancellation is irreversible.
func (s *service) Cancel(ctx context.Context, id string) (*Order, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != StatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrNotCancellable, current.Status)
	}

	cancelled, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order cancelled", zap.String("order_id", id))
	return cancelled, nil
}

// Advance moves an order one step through its lifecycle on the librarian's
// behalf.
func (s *service) Advance(ctx context.Context, id string, next Status) (*Order, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateTransition(current.Status, next); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next)),
	)
	return updated, nil
}
