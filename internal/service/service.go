// Package service holds the account and todo use cases. Every method returns
// either a value or an *apperr.Error; callers never see raw store errors.
package service

import (
	"context"
	"time"

	"github.com/geocoder89/todohub/internal/auth"
	"github.com/geocoder89/todohub/internal/domain/todo"
	"github.com/geocoder89/todohub/internal/domain/user"
)

const msgInternal = "internal server error"

type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type TodoStore interface {
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]todo.Todo, error)
	GetByOwner(ctx context.Context, ownerID, id string) (todo.Todo, error)
	Create(ctx context.Context, ownerID string, in todo.CreateInput) (todo.Todo, error)
	Update(ctx context.Context, t todo.Todo) (todo.Todo, error)
	DeleteByOwner(ctx context.Context, ownerID, id string) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encoded string) bool
}

type TokenIssuer interface {
	Issue(subject string) (auth.Token, error)
}

type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
