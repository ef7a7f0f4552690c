package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/todohub/internal/domain/todo"
	"github.com/google/uuid"
)

// TodosRepo mirrors the postgres store: every lookup is scoped by owner and
// lists come back in creation order.
type TodosRepo struct {
	mu    sync.RWMutex
	items map[string]todo.Todo // {"id": todo}
	order map[string][]string  // {"ownerID": [ids in creation order]}
}

func NewTodosRepo() *TodosRepo {
	return &TodosRepo{
		items: make(map[string]todo.Todo),
		order: make(map[string][]string),
	}
}

func (r *TodosRepo) CountByOwner(_ context.Context, ownerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order[ownerID]), nil
}

func (r *TodosRepo) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]todo.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.order[ownerID]
	if offset >= len(ids) {
		return []todo.Todo{}, nil
	}

	end := len(ids)
	if limit < end-offset {
		end = offset + limit
	}

	output := make([]todo.Todo, 0, end-offset)
	for _, id := range ids[offset:end] {
		output = append(output, r.items[id])
	}

	return output, nil
}

func (r *TodosRepo) GetByOwner(_ context.Context, ownerID, id string) (todo.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok || t.UserID != ownerID {
		return todo.Todo{}, todo.ErrNotFound
	}

	return t, nil
}

func (r *TodosRepo) Create(_ context.Context, ownerID string, in todo.CreateInput) (todo.Todo, error) {
	now := time.Now().UTC()
	t := todo.Todo{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	r.items[t.ID] = t
	r.order[ownerID] = append(r.order[ownerID], t.ID)
	r.mu.Unlock()

	return t, nil
}

func (r *TodosRepo) Update(_ context.Context, t todo.Todo) (todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[t.ID]
	if !ok || current.UserID != t.UserID {
		return todo.Todo{}, todo.ErrNotFound
	}

	current.Title = t.Title
	current.Description = t.Description
	current.Completed = t.Completed
	current.UpdatedAt = t.UpdatedAt
	r.items[t.ID] = current

	return current, nil
}

func (r *TodosRepo) DeleteByOwner(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok || t.UserID != ownerID {
		return todo.ErrNotFound
	}

	delete(r.items, id)

	ids := r.order[ownerID]
	for i, v := range ids {
		if v == id {
			r.order[ownerID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}

	return nil
}
