package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/geocoder89/todohub/internal/config"
	"github.com/geocoder89/todohub/internal/http/handlers"
	"github.com/geocoder89/todohub/internal/http/middlewares"
	"github.com/geocoder89/todohub/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Accounts handlers.AccountService
	Todos    handlers.TodoService
	Tokens   middlewares.TokenVerifier

	// Ping backs /readyz; nil reports ready.
	Ping func(ctx context.Context) error

	// Prom and Gatherer are optional; without them /metrics is not mounted.
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg config.Config, log *slog.Logger, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(handlers.Recovery())
	r.Use(middlewares.RequestID())

	if cfg.OTLPEndpoint != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	}
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))

	// health
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/health-check", h.HealthCheck)
	r.GET("/readyz", h.Readyz)

	// docs
	r.GET("/api-docs/openapi.yaml", handlers.OpenAPISpec)
	r.GET("/swagger-ui", handlers.SwaggerUI)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	usersHandler := handlers.NewUsersHandler(deps.Accounts)
	todosHandler := handlers.NewTodosHandler(deps.Todos)
	authMW := middlewares.NewAuthMiddleware(deps.Tokens)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		users.Use(middlewares.RequireJSON())
		users.POST("/sign-up", usersHandler.SignUp)
		users.POST("/sign-in", usersHandler.SignIn)

		todos := api.Group("/todos")
		todos.Use(authMW.RequireAuth(), middlewares.RequireJSON())
		todos.GET("", todosHandler.ListTodos)
		todos.POST("", todosHandler.CreateTodo)
		todos.GET("/:id", todosHandler.GetTodo)
		todos.PATCH("/:id", todosHandler.UpdateTodo)
		todos.DELETE("/:id", todosHandler.DeleteTodo)
	}

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondStatus(ctx, http.StatusNotFound, "route not found")
	})

	return r
}
