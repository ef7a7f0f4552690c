package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/geocoder89/todohub/internal/apperr"
	"github.com/geocoder89/todohub/internal/domain/todo"
	"github.com/geocoder89/todohub/internal/validation"
	"github.com/google/uuid"
)

const (
	msgTodosEmpty       = "todos does not exist"
	msgOffsetExceeds    = "offset exceeds the total page"
	msgTodoUpdateFailed = "todo updating failed"
)

type TodoService struct {
	todos TodoStore
	val   *validation.Validator
	log   *slog.Logger
	now   clock
}

type TodoOption func(*TodoService)

// WithTodoClock overrides the time source used for updated_at.
func WithTodoClock(now func() time.Time) TodoOption {
	return func(s *TodoService) { s.now = now }
}

func NewTodoService(todos TodoStore, val *validation.Validator, log *slog.Logger, opts ...TodoOption) *TodoService {
	if log == nil {
		log = slog.Default()
	}
	s := &TodoService{todos: todos, val: val, log: log, now: utcNow}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func todoNotFound(id string) *apperr.Error {
	return apperr.NotFound(fmt.Sprintf("todo with ID: %s not found", id))
}

func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func (s *TodoService) List(ctx context.Context, owner string, params todo.PageParams) (todo.Page, error) {
	p := todo.NormalizePage(params)

	total, err := s.todos.CountByOwner(ctx, owner)
	if err != nil {
		s.log.ErrorContext(ctx, "count todos failed", "user_id", owner, "err", err)
		return todo.Page{}, apperr.Internal(msgInternal, err)
	}

	if total == 0 {
		return todo.Page{}, apperr.NotFound(msgTodosEmpty)
	}
	if p.Offset >= total {
		return todo.Page{}, apperr.Validation(msgOffsetExceeds, nil)
	}

	items, err := s.todos.ListByOwner(ctx, owner, p.Limit, p.Offset)
	if err != nil {
		s.log.ErrorContext(ctx, "list todos failed", "user_id", owner, "err", err)
		return todo.Page{}, apperr.Internal(msgInternal, err)
	}

	return todo.NewPage(items, total, p), nil
}

func (s *TodoService) Get(ctx context.Context, owner, id string) (todo.Todo, error) {
	if !validID(id) {
		return todo.Todo{}, todoNotFound(id)
	}

	t, err := s.todos.GetByOwner(ctx, owner, id)
	if err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			return todo.Todo{}, todoNotFound(id)
		}
		s.log.ErrorContext(ctx, "get todo failed", "user_id", owner, "todo_id", id, "err", err)
		return todo.Todo{}, apperr.Internal(msgInternal, err)
	}

	return t, nil
}

func (s *TodoService) Create(ctx context.Context, owner string, in todo.CreateInput) (todo.Todo, error) {
	if fields := s.val.Struct(in); fields != nil {
		return todo.Todo{}, apperr.Validation(msgValidation, fields)
	}

	t, err := s.todos.Create(ctx, owner, in)
	if err != nil {
		s.log.ErrorContext(ctx, "create todo failed", "user_id", owner, "err", err)
		return todo.Todo{}, apperr.Internal(msgInternal, err)
	}

	return t, nil
}

// Update fetches the owner's todo, applies the patch and writes it back. The
// fetch and the write are not atomic; a row deleted in between is reported
// as an update failure.
func (s *TodoService) Update(ctx context.Context, owner, id string, patch todo.Patch) (todo.Todo, error) {
	current, err := s.Get(ctx, owner, id)
	if err != nil {
		return todo.Todo{}, err
	}

	updated, err := s.todos.Update(ctx, patch.Apply(current, s.now()))
	if err != nil {
		s.log.ErrorContext(ctx, "update todo failed", "user_id", owner, "todo_id", id, "err", err)
		return todo.Todo{}, apperr.Internal(msgTodoUpdateFailed, err)
	}

	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, owner, id string) error {
	if !validID(id) {
		return todoNotFound(id)
	}

	if err := s.todos.DeleteByOwner(ctx, owner, id); err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			return todoNotFound(id)
		}
		s.log.ErrorContext(ctx, "delete todo failed", "user_id", owner, "todo_id", id, "err", err)
		return apperr.Internal(msgInternal, err)
	}

	return nil
}
