package user

import (
	"context"
	"fmt"

	"github.com/Nafiz001/booknest-client/internal/api"
)

type gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
}

type Repository interface {
	// Mirror upserts the provider identity into the marketplace directory
	// and returns the directory record with its role.
	Mirror(ctx context.Context, req MirrorRequest) (*User, error)

	// Me resolves the bearer token to its directory record.
	Me(ctx context.Context) (*User, error)

	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id string, role Role) (*User, error)
	UpdateProfile(ctx context.Context, id string, req ProfileUpdate) (*User, error)
}

// ProfileUpdate carries the self-service profile fields.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoURL,omitempty"`
}

type repository struct {
	client gateway
}

func NewRepository(client gateway) Repository {
	return &repository{client: client}
}

func (r *repository) Mirror(ctx context.Context, req MirrorRequest) (*User, error) {
	var u User
	if err := r.client.Post(ctx, "/auth/user", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Me(ctx context.Context) (*User, error) {
	var u User
	if err := r.client.Get(ctx, "/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.client.Get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) UpdateRole(ctx context.Context, id string, role Role) (*User, error) {
	body := map[string]string{"role": string(role)}
	var u User
	if err := r.client.Patch(ctx, fmt.Sprintf("/users/%s/role", id), body, &u); err != nil {
		if api.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id string, req ProfileUpdate) (*User, error) {
	var u User
	if err := r.client.Patch(ctx, "/users/"+id, req, &u); err != nil {
		if api.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
