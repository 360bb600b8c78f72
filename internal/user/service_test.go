package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Mirror(ctx context.Context, req MirrorRequest) (*User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Me(ctx context.Context) (*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) UpdateRole(ctx context.Context, id string, role Role) (*User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, id string, req ProfileUpdate) (*User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

// --- Tests ---

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleLibrarian.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestService_ChangeRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RefetchesList", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("UpdateRole", ctx, "u2", RoleLibrarian).
			Return(&User{ID: "u2", Role: RoleLibrarian}, nil)
		repo.On("List", ctx).
			Return([]User{{ID: "u1", Role: RoleAdmin}, {ID: "u2", Role: RoleLibrarian}}, nil)

		users, err := svc.ChangeRole(ctx, "u2", RoleLibrarian)

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, RoleLibrarian, users[1].Role)
		repo.AssertExpectations(t)
	})

	t.Run("UnknownRole", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.ChangeRole(ctx, "u2", Role("owner"))

		assert.ErrorIs(t, err, ErrInvalidRole)
		repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("UpdateRole", ctx, "gone", RoleAdmin).Return(nil, ErrUserNotFound)

		_, err := svc.ChangeRole(ctx, "gone", RoleAdmin)

		assert.ErrorIs(t, err, ErrUserNotFound)
		repo.AssertNotCalled(t, "List", mock.Anything)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		name := "Jane Doe"
		req := ProfileUpdate{DisplayName: &name}
		repo.On("UpdateProfile", ctx, "u1", req).
			Return(&User{ID: "u1", DisplayName: name}, nil)

		updated, err := svc.UpdateProfile(ctx, "u1", req)

		require.NoError(t, err)
		assert.Equal(t, name, updated.DisplayName)
	})

	t.Run("NameTooShort", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		name := "J"
		_, err := svc.UpdateProfile(ctx, "u1", ProfileUpdate{DisplayName: &name})

		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		photo := "https://img.test/p.png"
		repo.On("UpdateProfile", ctx, "u1", mock.Anything).
			Return(nil, errors.New("gateway timeout"))

		_, err := svc.UpdateProfile(ctx, "u1", ProfileUpdate{PhotoURL: &photo})

		assert.Error(t, err)
	})
}
