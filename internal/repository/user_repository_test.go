package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/model"
)

func TestUserCreateSendsProfile(t *testing.T) {
	var got model.User
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users/", r.URL.Path)
		// Registration happens before the user exists, no User-Id header.
		assert.Empty(t, r.Header.Get("User-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(got)
	}))
	repo := NewUserRepository(client)

	user := model.User{UserID: "42", Username: "ivan", FirstName: "Иван", LastName: "Петров"}
	created, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.Equal(t, user, created)
}

func TestUserByIDMapsNotFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/42", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	repo := NewUserRepository(client)

	_, err := repo.ByID(context.Background(), "42")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserByIDDecodesUser(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id": "42", "username": "ivan", "first_name": "Иван", "last_name": "Петров"}`))
	}))
	repo := NewUserRepository(client)

	user, err := repo.ByID(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", user.UserID)
	assert.Equal(t, "Иван", user.FirstName)
}

func TestCategoriesAll(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tasks/categories/", r.URL.Path)
		assert.Equal(t, "42", r.Header.Get("User-Id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [{"id": 1, "name": "Работа"}, {"id": 2, "name": "Дом"}], "next": null, "previous": null}`))
	}))
	repo := NewCategoryRepository(client)

	got, err := repo.All(context.Background(), model.User{UserID: "42"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, "Дом", got[1].Name)
}

func TestSubscriberUpsertIsIdempotent(t *testing.T) {
	db, err := NewCacheDB(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	repo := NewSubscriberRepository(db)
	ctx := context.Background()

	_, err = repo.Upsert(ctx, 100, "42", "Иван")
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, 100, "42", "Ваня")
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, 200, "43", "Петр")
	require.NoError(t, err)

	subs, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)

	byChat := make(map[int64]string, len(subs))
	for _, sub := range subs {
		byChat[sub.ChatID] = sub.FirstName
	}
	assert.Equal(t, "Ваня", byChat[100])
	assert.Equal(t, "Петр", byChat[200])
}
