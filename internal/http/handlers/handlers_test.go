package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/todohub/internal/domain/todo"
	"github.com/geocoder89/todohub/internal/domain/user"
	"github.com/geocoder89/todohub/internal/service"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test
func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAccounts struct {
	registerFn func(ctx context.Context, in user.Credentials) (user.Public, error)
	loginFn    func(ctx context.Context, in user.Credentials) (service.LoginResult, error)
}

func (f *fakeAccounts) Register(ctx context.Context, in user.Credentials) (user.Public, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, in)
	}
	return user.Public{}, nil
}

func (f *fakeAccounts) Login(ctx context.Context, in user.Credentials) (service.LoginResult, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, in)
	}
	return service.LoginResult{}, nil
}

type fakeTodos struct {
	listFn   func(ctx context.Context, owner string, p todo.PageParams) (todo.Page, error)
	getFn    func(ctx context.Context, owner, id string) (todo.Todo, error)
	createFn func(ctx context.Context, owner string, in todo.CreateInput) (todo.Todo, error)
	updateFn func(ctx context.Context, owner, id string, patch todo.Patch) (todo.Todo, error)
	deleteFn func(ctx context.Context, owner, id string) error
}

func (f *fakeTodos) List(ctx context.Context, owner string, p todo.PageParams) (todo.Page, error) {
	if f.listFn != nil {
		return f.listFn(ctx, owner, p)
	}
	return todo.Page{}, nil
}

func (f *fakeTodos) Get(ctx context.Context, owner, id string) (todo.Todo, error) {
	if f.getFn != nil {
		return f.getFn(ctx, owner, id)
	}
	return todo.Todo{}, nil
}

func (f *fakeTodos) Create(ctx context.Context, owner string, in todo.CreateInput) (todo.Todo, error) {
	if f.createFn != nil {
		return f.createFn(ctx, owner, in)
	}
	return todo.Todo{}, nil
}

func (f *fakeTodos) Update(ctx context.Context, owner, id string, patch todo.Patch) (todo.Todo, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, owner, id, patch)
	}
	return todo.Todo{}, nil
}

func (f *fakeTodos) Delete(ctx context.Context, owner, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, owner, id)
	}
	return nil
}

type dataEnvelope[T any] struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) dataEnvelope[T] {
	t.Helper()

	var env dataEnvelope[T]
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json response: %v body=%s", err, w.Body.String())
	}
	if env.StatusCode != w.Code {
		t.Fatalf("statusCode %d does not mirror HTTP status %d", env.StatusCode, w.Code)
	}
	return env
}
