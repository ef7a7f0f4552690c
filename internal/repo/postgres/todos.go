package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/todohub/internal/domain/todo"
	"github.com/geocoder89/todohub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const todoColumns = `id, user_id, title, description, completed, created_at, updated_at`

// TodosRepo scopes every statement by user_id.
type TodosRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewTodosRepo(pool *pgxpool.Pool, prom *observability.Prom) *TodosRepo {
	return &TodosRepo{pool: pool, prom: prom}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (todo.Todo, error) {
	var t todo.Todo
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *TodosRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var total int

	err := observe(r.prom, "todos.count_by_owner", func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM todos WHERE user_id = $1`, ownerID).Scan(&total)
	})
	if err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}

	return total, nil
}

func (r *TodosRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]todo.Todo, error) {
	// limit comes from the query string; never size allocations from it
	output := []todo.Todo{}

	err := observe(r.prom, "todos.list_by_owner", func() error {
		// stable ordering for pagination
		rows, err := r.pool.Query(ctx,
			`SELECT `+todoColumns+`
			FROM todos
			WHERE user_id = $1
			ORDER BY created_at ASC, id ASC
			LIMIT $2 OFFSET $3`,
			ownerID, limit, offset,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTodo(rows)
			if err != nil {
				return err
			}
			output = append(output, t)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return output, nil
}

func (r *TodosRepo) GetByOwner(ctx context.Context, ownerID, id string) (todo.Todo, error) {
	var t todo.Todo

	err := observe(r.prom, "todos.get_by_owner", func() error {
		var err error
		t, err = scanTodo(r.pool.QueryRow(ctx,
			`SELECT `+todoColumns+`
			FROM todos
			WHERE id = $1 AND user_id = $2`,
			id, ownerID,
		))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return todo.Todo{}, todo.ErrNotFound
		}
		return todo.Todo{}, fmt.Errorf("select todo: %w", err)
	}

	return t, nil
}

func (r *TodosRepo) Create(ctx context.Context, ownerID string, in todo.CreateInput) (todo.Todo, error) {
	var t todo.Todo

	err := observe(r.prom, "todos.create", func() error {
		var err error
		t, err = scanTodo(r.pool.QueryRow(ctx,
			`INSERT INTO todos (title, description, user_id)
			VALUES ($1, $2, $3)
			RETURNING `+todoColumns,
			in.Title, in.Description, ownerID,
		))
		return err
	})
	if err != nil {
		return todo.Todo{}, fmt.Errorf("insert todo: %w", err)
	}

	return t, nil
}

// Update writes the mutable fields of t. A row that disappeared since it was
// read yields todo.ErrNotFound.
func (r *TodosRepo) Update(ctx context.Context, t todo.Todo) (todo.Todo, error) {
	var out todo.Todo

	err := observe(r.prom, "todos.update", func() error {
		var err error
		out, err = scanTodo(r.pool.QueryRow(ctx,
			`UPDATE todos
			SET title = $1,
				description = $2,
				completed = $3,
				updated_at = $4
			WHERE id = $5 AND user_id = $6
			RETURNING `+todoColumns,
			t.Title, t.Description, t.Completed, t.UpdatedAt, t.ID, t.UserID,
		))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return todo.Todo{}, todo.ErrNotFound
		}
		return todo.Todo{}, fmt.Errorf("update todo: %w", err)
	}

	return out, nil
}

func (r *TodosRepo) DeleteByOwner(ctx context.Context, ownerID, id string) error {
	var tag pgconn.CommandTag

	err := observe(r.prom, "todos.delete_by_owner", func() error {
		var err error
		tag, err = r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, ownerID)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	// if no rows were deleted as a result return a not found error
	if tag.RowsAffected() == 0 {
		return todo.ErrNotFound
	}

	return nil
}
