package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	userserrors "stayhub/internal/users/errors"
	"stayhub/pkg/docstore"
	"stayhub/pkg/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id string, fn func(user *model.User) error) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type docUserRepository struct {
	collection *docstore.Collection[model.User]
}

func NewUserRepository(db *docstore.Database) UserRepository {
	return &docUserRepository{
		collection: docstore.NewCollection[model.User](db, docstore.Users),
	}
}

func (r *docUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := docstore.Find(users, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", userserrors.ErrNotFound, id)
	}
	return &user, nil
}

func (r *docUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexByEmail(users, email, ""); i >= 0 {
		return &users[i], nil
	}
	return nil, fmt.Errorf("%w: %s", userserrors.ErrNotFound, email)
}

// Create appends the user unless another user already holds the email.
// The check and the write happen under the same collection lock.
func (r *docUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	return r.collection.Mutate(ctx, func(users []model.User) ([]model.User, error) {
		if indexByEmail(users, user.Email, "") >= 0 {
			return nil, fmt.Errorf("%w: %s", userserrors.ErrEmailTaken, user.Email)
		}
		return append(users, *user), nil
	})
}

func (r *docUserRepository) Update(ctx context.Context, id string, fn func(user *model.User) error) (*model.User, error) {
	var updated model.User
	err := r.collection.Mutate(ctx, func(users []model.User) ([]model.User, error) {
		i := docstore.IndexOf(users, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", userserrors.ErrNotFound, id)
		}
		updated = users[i]
		if err := fn(&updated); err != nil {
			return nil, err
		}
		updated.ID = users[i].ID
		updated.CreatedAt = users[i].CreatedAt
		if indexByEmail(users, updated.Email, id) >= 0 {
			return nil, fmt.Errorf("%w: %s", userserrors.ErrEmailTaken, updated.Email)
		}
		users[i] = updated
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *docUserRepository) Delete(ctx context.Context, id string) error {
	return r.collection.Mutate(ctx, func(users []model.User) ([]model.User, error) {
		rest, ok := docstore.Remove(users, id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", userserrors.ErrNotFound, id)
		}
		return rest, nil
	})
}

// indexByEmail finds a user by case-insensitive email, ignoring exceptID.
func indexByEmail(users []model.User, email, exceptID string) int {
	for i, u := range users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return i
		}
	}
	return -1
}
