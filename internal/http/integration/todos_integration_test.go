package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/geocoder89/todohub/internal/auth"
	"github.com/geocoder89/todohub/internal/config"
	"github.com/geocoder89/todohub/internal/db"
	apphttp "github.com/geocoder89/todohub/internal/http"
	"github.com/geocoder89/todohub/internal/observability"
	"github.com/geocoder89/todohub/internal/repo/postgres"
	"github.com/geocoder89/todohub/internal/security"
	"github.com/geocoder89/todohub/internal/service"
	"github.com/geocoder89/todohub/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

type envelope struct {
	Message    string          `json:"message"`
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
}

func setupTestRouter(t *testing.T) (*gin.Engine, *pgxpool.Pool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping postgres integration test")
	}

	ctx := context.Background()

	if err := db.Migrate(ctx, dsn, db.MigrateUp); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	pool, err := db.NewPool(ctx, dsn, 5)
	if err != nil {
		t.Fatalf("failed to create pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)

	resetDB(t, pool)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	prom := observability.NewProm(prometheus.NewRegistry())
	val := validation.New()
	tokens := auth.NewManager("test-secret-key", auth.AccessTokenTTL)

	cfg := config.Config{Env: "test", JWTSecret: "test-secret-key", MaxBodyBytes: 1 << 20}

	router := apphttp.NewRouter(cfg, logger, apphttp.Deps{
		Accounts: service.NewAccountService(postgres.NewUsersRepo(pool, prom), security.NewArgon2Hasher(security.DefaultParams), tokens, val, logger),
		Todos:    service.NewTodoService(postgres.NewTodosRepo(pool, prom), val, logger),
		Tokens:   tokens,
		Ping:     pool.Ping,
		Prom:     prom,
	})

	return router, pool
}

func resetDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `TRUNCATE todos, users CASCADE`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func do(t *testing.T, r http.Handler, method, path, token, body string) (int, envelope) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, w.Body.String())
	}
	return w.Code, env
}

func login(t *testing.T, r http.Handler, email string) string {
	t.Helper()

	creds := fmt.Sprintf(`{"email":%q,"password":"password1"}`, email)
	if code, env := do(t, r, http.MethodPost, "/api/users/sign-up", "", creds); code != http.StatusCreated {
		t.Fatalf("sign-up got %d %q", code, env.Message)
	}

	code, env := do(t, r, http.MethodPost, "/api/users/sign-in", "", creds)
	if code != http.StatusOK {
		t.Fatalf("sign-in got %d %q", code, env.Message)
	}

	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &res); err != nil || res.Token == "" {
		t.Fatalf("missing token: %s", env.Data)
	}
	return res.Token
}

func TestPostgres_RegistrationConflict(t *testing.T) {
	r, _ := setupTestRouter(t)
	login(t, r, "a@x.com")

	code, env := do(t, r, http.MethodPost, "/api/users/sign-up", "", `{"email":"a@x.com","password":"password1"}`)
	if code != http.StatusConflict || env.Message != "email already exists" {
		t.Fatalf("duplicate got %d %q", code, env.Message)
	}
}

func TestPostgres_TodoPaginationAndOwnership(t *testing.T) {
	r, _ := setupTestRouter(t)
	alice := login(t, r, "alice@x.com")
	bob := login(t, r, "bob@x.com")

	var firstID string
	for i := 0; i < 25; i++ {
		code, env := do(t, r, http.MethodPost, "/api/todos", alice, fmt.Sprintf(`{"title":"t%02d","description":"d"}`, i))
		if code != http.StatusCreated {
			t.Fatalf("create got %d %q", code, env.Message)
		}
		if i == 0 {
			var td struct {
				ID string `json:"id"`
			}
			_ = json.Unmarshal(env.Data, &td)
			firstID = td.ID
		}
	}

	code, env := do(t, r, http.MethodGet, "/api/todos?limit=10&offset=20", alice, "")
	if code != http.StatusOK {
		t.Fatalf("list got %d %q", code, env.Message)
	}
	var page struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
		Page  int `json:"page"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("bad page: %v", err)
	}
	if page.Total != 25 || page.Page != 3 || len(page.Items) != 5 {
		t.Fatalf("unexpected page: %+v", page)
	}

	if code, _ := do(t, r, http.MethodGet, "/api/todos/"+firstID, bob, ""); code != http.StatusNotFound {
		t.Fatalf("bob read alice's todo: %d", code)
	}
	if code, _ := do(t, r, http.MethodDelete, "/api/todos/"+firstID, bob, ""); code != http.StatusNotFound {
		t.Fatalf("bob deleted alice's todo: %d", code)
	}

	code, env = do(t, r, http.MethodPatch, "/api/todos/"+firstID, alice, `{"completed":true}`)
	if code != http.StatusOK {
		t.Fatalf("patch got %d %q", code, env.Message)
	}
	var td struct {
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	}
	_ = json.Unmarshal(env.Data, &td)
	if td.Title != "t00" || !td.Completed {
		t.Fatalf("unexpected patched todo: %+v", td)
	}

	if code, _ := do(t, r, http.MethodDelete, "/api/todos/"+firstID, alice, ""); code != http.StatusOK {
		t.Fatalf("delete got %d", code)
	}
	if code, _ := do(t, r, http.MethodDelete, "/api/todos/"+firstID, alice, ""); code != http.StatusNotFound {
		t.Fatalf("second delete got %d", code)
	}
}

func TestPostgres_Readyz(t *testing.T) {
	r, _ := setupTestRouter(t)

	if code, env := do(t, r, http.MethodGet, "/readyz", "", ""); code != http.StatusOK {
		t.Fatalf("readyz got %d %q", code, env.Message)
	}
}
