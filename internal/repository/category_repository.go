package repository

import (
	"context"
	"net/http"

	"task-tracker/internal/model"
)

// CategoryRepository fetches read-only category reference data. The wizard
// caches the result for a session's lifetime; nothing is cached here.
type CategoryRepository struct {
	client *Client
}

func NewCategoryRepository(client *Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

func (r *CategoryRepository) All(ctx context.Context, user model.User) ([]model.Category, error) {
	var envelope listResponse[model.Category]
	if err := r.client.do(ctx, http.MethodGet, categoriesPath(), user.UserID, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Results, nil
}
