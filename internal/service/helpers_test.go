package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/geocoder89/todohub/internal/domain/todo"
	"github.com/geocoder89/todohub/internal/domain/user"
	"github.com/geocoder89/todohub/internal/security"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fastHasher keeps argon2 cheap so the suite stays quick.
func fastHasher() *security.Argon2Hasher {
	return security.NewArgon2Hasher(security.Params{
		Memory:     64,
		Iterations: 1,
		Threads:    1,
		SaltLength: 16,
		KeyLength:  32,
	})
}

type fakeUserStore struct {
	CreateFn     func(ctx context.Context, email, passwordHash string) (user.User, error)
	GetByEmailFn func(ctx context.Context, email string) (user.User, error)
}

func (f *fakeUserStore) Create(ctx context.Context, email, passwordHash string) (user.User, error) {
	return f.CreateFn(ctx, email, passwordHash)
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return f.GetByEmailFn(ctx, email)
}

// failingTodoStore wraps a real store and lets a test break single methods.
type failingTodoStore struct {
	TodoStore
	countErr  error
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error
}

func (f *failingTodoStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.TodoStore.CountByOwner(ctx, ownerID)
}

func (f *failingTodoStore) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]todo.Todo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.TodoStore.ListByOwner(ctx, ownerID, limit, offset)
}

func (f *failingTodoStore) GetByOwner(ctx context.Context, ownerID, id string) (todo.Todo, error) {
	if f.getErr != nil {
		return todo.Todo{}, f.getErr
	}
	return f.TodoStore.GetByOwner(ctx, ownerID, id)
}

func (f *failingTodoStore) Create(ctx context.Context, ownerID string, in todo.CreateInput) (todo.Todo, error) {
	if f.createErr != nil {
		return todo.Todo{}, f.createErr
	}
	return f.TodoStore.Create(ctx, ownerID, in)
}

func (f *failingTodoStore) Update(ctx context.Context, t todo.Todo) (todo.Todo, error) {
	if f.updateErr != nil {
		return todo.Todo{}, f.updateErr
	}
	return f.TodoStore.Update(ctx, t)
}

func (f *failingTodoStore) DeleteByOwner(ctx context.Context, ownerID, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.TodoStore.DeleteByOwner(ctx, ownerID, id)
}
