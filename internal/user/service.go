package user

import (
	"context"
	"fmt"

	"github.com/Nafiz001/booknest-client/internal/logger"
	"github.com/Nafiz001/booknest-client/internal/validate"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]User, error)

	// ChangeRole applies the role change and returns the re-fetched user
	// list so the caller always renders server truth.
	ChangeRole(ctx context.Context, id string, role Role) ([]User, error)

	UpdateProfile(ctx context.Context, id string, req ProfileUpdate) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) ChangeRole(ctx context.Context, id string, role Role) ([]User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ChangeRole"),
	)

	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	updated, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		log.Error("failed to change role", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}

	log.Info("user role changed",
		zap.String("user_id", updated.ID),
		zap.String("role", string(updated.Role)),
	)
	return s.repo.List(ctx)
}

func (s *service) UpdateProfile(ctx context.Context, id string, req ProfileUpdate) (*User, error) {
	if req.DisplayName != nil &&
		!validate.Length(*req.DisplayName, validate.NameMinLength, validate.NameMaxLength) {
		return nil, fmt.Errorf("%w: name must be %d-%d characters",
			ErrInvalidInput, validate.NameMinLength, validate.NameMaxLength)
	}

	return s.repo.UpdateProfile(ctx, id, req)
}
