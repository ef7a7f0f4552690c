package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/geocoder89/todohub/internal/domain/todo"
	"github.com/geocoder89/todohub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

type TodoService interface {
	List(ctx context.Context, owner string, params todo.PageParams) (todo.Page, error)
	Get(ctx context.Context, owner, id string) (todo.Todo, error)
	Create(ctx context.Context, owner string, in todo.CreateInput) (todo.Todo, error)
	Update(ctx context.Context, owner, id string, patch todo.Patch) (todo.Todo, error)
	Delete(ctx context.Context, owner, id string) error
}

type TodosHandler struct {
	todos TodoService
}

func NewTodosHandler(todos TodoService) *TodosHandler {
	return &TodosHandler{todos: todos}
}

// withRequestTimeout bounds store work while still honouring client disconnects.
func withRequestTimeout(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), requestTimeout)
}

// owner reads the subject set by RequireAuth. Routes using it are always
// behind that middleware, so a miss is a wiring bug.
func owner(ctx *gin.Context) (string, bool) {
	id, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondStatus(ctx, http.StatusUnauthorized, "missing or invalid authorization header")
	}
	return id, ok
}

// queryInt returns fallback when the parameter is absent or not an integer.
func queryInt(ctx *gin.Context, key string, fallback int) int {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func (h *TodosHandler) ListTodos(ctx *gin.Context) {
	userID, ok := owner(ctx)
	if !ok {
		return
	}

	params := todo.PageParams{
		Limit:  queryInt(ctx, "limit", todo.DefaultLimit),
		Offset: queryInt(ctx, "offset", 0),
	}

	cctx, cancel := withRequestTimeout(ctx)
	defer cancel()

	page, err := h.todos.List(cctx, userID, params)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	RespondOK(ctx, "todos fetched successfully", page)
}

func (h *TodosHandler) GetTodo(ctx *gin.Context) {
	userID, ok := owner(ctx)
	if !ok {
		return
	}

	cctx, cancel := withRequestTimeout(ctx)
	defer cancel()

	t, err := h.todos.Get(cctx, userID, ctx.Param("id"))
	if err != nil {
		RespondError(ctx, err)
		return
	}

	RespondOK(ctx, "todo fetched successfully", t)
}

func (h *TodosHandler) CreateTodo(ctx *gin.Context) {
	userID, ok := owner(ctx)
	if !ok {
		return
	}

	var req todo.CreateInput
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := withRequestTimeout(ctx)
	defer cancel()

	t, err := h.todos.Create(cctx, userID, req)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	RespondCreated(ctx, "todo created successfully", t)
}

func (h *TodosHandler) UpdateTodo(ctx *gin.Context) {
	userID, ok := owner(ctx)
	if !ok {
		return
	}

	var patch todo.Patch
	if !BindJSON(ctx, &patch) {
		return
	}

	cctx, cancel := withRequestTimeout(ctx)
	defer cancel()

	t, err := h.todos.Update(cctx, userID, ctx.Param("id"), patch)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	RespondOK(ctx, "todo updated successfully", t)
}

func (h *TodosHandler) DeleteTodo(ctx *gin.Context) {
	userID, ok := owner(ctx)
	if !ok {
		return
	}

	cctx, cancel := withRequestTimeout(ctx)
	defer cancel()

	if err := h.todos.Delete(cctx, userID, ctx.Param("id")); err != nil {
		RespondError(ctx, err)
		return
	}

	RespondOK(ctx, "todo deleted successfully", nil)
}
