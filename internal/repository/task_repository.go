package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"task-tracker/internal/model"
)

const listPageSize = 5

// TaskRepository translates task operations into calls against the remote
// service, with per-call error translation into domain errors.
type TaskRepository struct {
	client *Client
	loc    *time.Location
}

func NewTaskRepository(client *Client, loc *time.Location) *TaskRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskRepository{client: client, loc: loc}
}

func listPath() string                { return "/api/v1/tasks/" }
func detailPath(id string) string     { return fmt.Sprintf("/api/v1/tasks/%s/", id) }
func completePath(id string) string   { return fmt.Sprintf("/api/v1/tasks/%s/complete/", id) }
func categoriesPath() string          { return "/api/v1/tasks/categories/" }
func usersPath() string               { return "/api/v1/users/" }
func userDetailPath(id string) string { return fmt.Sprintf("/api/v1/users/%s", id) }

// Create submits a new task assembled by the wizard.
func (r *TaskRepository) Create(ctx context.Context, user model.User, body map[string]any) error {
	err := r.client.do(ctx, http.MethodPost, listPath(), user.UserID, nil, body, nil)
	switch statusOf(err) {
	case http.StatusBadRequest:
		return ErrIncorrectDeadline
	case http.StatusConflict:
		return ErrTaskAlreadyExists
	}
	return err
}

// Update patches an existing task with the fields the user changed.
func (r *TaskRepository) Update(ctx context.Context, user model.User, body map[string]any, taskID string) error {
	err := r.client.do(ctx, http.MethodPatch, detailPath(taskID), user.UserID, nil, body, nil)
	switch statusOf(err) {
	case http.StatusBadRequest:
		return ErrIncorrectDeadline
	case http.StatusConflict:
		return ErrTaskAlreadyExists
	case http.StatusForbidden:
		return ErrTaskAnotherAuthor
	}
	return err
}

// TodayTasks lists the user's tasks whose deadline falls on today in the
// repository's timezone. An empty page is a valid outcome.
func (r *TaskRepository) TodayTasks(ctx context.Context, user model.User, page int) ([]model.Task, bool, bool, error) {
	query := r.listQuery(user, page)
	query.Set("deadline", time.Now().In(r.loc).Format("2006-01-02"))
	return r.list(ctx, user, query)
}

// ActiveTasks lists tasks that are not yet finished.
func (r *TaskRepository) ActiveTasks(ctx context.Context, user model.User, page int) ([]model.Task, bool, bool, error) {
	query := r.listQuery(user, page)
	query.Set("is_active", "true")
	return r.list(ctx, user, query)
}

// ArchivedTasks lists finished tasks.
func (r *TaskRepository) ArchivedTasks(ctx context.Context, user model.User, page int) ([]model.Task, bool, bool, error) {
	query := r.listQuery(user, page)
	query.Set("is_active", "false")
	return r.list(ctx, user, query)
}

func (r *TaskRepository) listQuery(user model.User, page int) url.Values {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("user_id", user.UserID)
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(listPageSize))
	query.Set("ordering", "deadline")
	return query
}

func (r *TaskRepository) list(ctx context.Context, user model.User, query url.Values) ([]model.Task, bool, bool, error) {
	var envelope listResponse[model.Task]
	if err := r.client.do(ctx, http.MethodGet, listPath(), user.UserID, query, nil, &envelope); err != nil {
		return nil, false, false, err
	}
	return envelope.Results, envelope.Next != nil, envelope.Previous != nil, nil
}

// Detail fetches a single task.
func (r *TaskRepository) Detail(ctx context.Context, user model.User, taskID string) (model.Task, error) {
	var task model.Task
	err := r.client.do(ctx, http.MethodGet, detailPath(taskID), user.UserID, nil, nil, &task)
	if statusOf(err) == http.StatusNotFound {
		return model.Task{}, ErrTaskNotFound
	}
	return task, err
}

// Complete transitions a task to the done status.
func (r *TaskRepository) Complete(ctx context.Context, user model.User, taskID string) error {
	err := r.client.do(ctx, http.MethodPost, completePath(taskID), user.UserID, nil, nil, nil)
	switch statusOf(err) {
	case http.StatusNotFound:
		return ErrTaskNotFound
	case http.StatusConflict:
		return ErrTaskAlreadyDone
	case http.StatusForbidden:
		return ErrTaskAnotherAuthor
	}
	return err
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, user model.User, taskID string) error {
	err := r.client.do(ctx, http.MethodDelete, detailPath(taskID), user.UserID, nil, nil, nil)
	if statusOf(err) == http.StatusForbidden {
		return ErrTaskAnotherAuthor
	}
	return err
}
