package repository

import (
	"context"
	"net/http"

	"task-tracker/internal/model"
)

// UserRepository creates and fetches users on the remote service.
type UserRepository struct {
	client *Client
}

func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	var created model.User
	if err := r.client.do(ctx, http.MethodPost, usersPath(), "", nil, user, &created); err != nil {
		return model.User{}, err
	}
	return created, nil
}

func (r *UserRepository) ByID(ctx context.Context, userID string) (model.User, error) {
	var user model.User
	err := r.client.do(ctx, http.MethodGet, userDetailPath(userID), "", nil, nil, &user)
	if statusOf(err) == http.StatusNotFound {
		return model.User{}, ErrUserNotFound
	}
	return user, err
}
