package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/founder-command-center/internal/config"
	"github.com/yukikurage/founder-command-center/internal/constants"
	apierrors "github.com/yukikurage/founder-command-center/internal/errors"
	"github.com/yukikurage/founder-command-center/internal/handlers"
	"github.com/yukikurage/founder-command-center/internal/metrics"
	"github.com/yukikurage/founder-command-center/internal/middleware"
	"github.com/yukikurage/founder-command-center/internal/repository"
	"github.com/yukikurage/founder-command-center/internal/services"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	DB       *gorm.DB
	Sessions sessions.Store
	Logger   *zap.Logger
}

// NewSessionStore creates the session backend selected by SESSION_STORE.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		s, err := redisStore.NewStore(
			cfg.RedisPoolSize,
			"tcp",
			cfg.RedisAddr,
			"",
			cfg.RedisPassword,
			[]byte(cfg.SecretKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = s
	case config.SessionStoreCookie:
		store = cookie.NewStore([]byte(cfg.SecretKey))
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   !cfg.Debug,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	log := deps.Logger
	store := repository.NewStore(deps.DB)

	authService := services.NewAuthService(store.Users)
	csrf := middleware.NewCSRF(cfg.CSRFTrustedOrigins, !cfg.Debug, cfg.SessionMaxAge)

	authHandler := handlers.NewAuthHandler(authService, csrf, deps.Sessions, log)
	clientHandler := handlers.NewClientHandler(services.NewClientService(store), log)
	workerHandler := handlers.NewWorkerHandler(services.NewWorkerService(store), log)
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(store), log)

	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			log.Error("Panic recovered",
				zap.Any("panic", recovered),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
			apierrors.InternalError(c, "")
		}),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		metrics.Middleware(),
	)

	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "")
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api",
		middleware.AllowedHosts(cfg.AllowedHosts),
		sessions.Sessions(constants.SessionCookieName, deps.Sessions),
	)
	{
		// Auth routes (public)
		api.GET("/auth/csrf/", authHandler.CSRFToken)
		api.POST("/auth/login/", authHandler.Login)

		// Session authenticated routes
		authed := api.Group("", middleware.RequireAuth(authService), csrf.Require())
		authed.POST("/auth/logout/", authHandler.Logout)
		authed.GET("/auth/check/", authHandler.Check)

		clients := authed.Group("/clients")
		{
			clients.GET("/", clientHandler.List)
			clients.POST("/", clientHandler.Create)
			clients.GET("/:id/", clientHandler.Get)
			clients.PUT("/:id/", clientHandler.Update)
			clients.PATCH("/:id/", clientHandler.Update)
			clients.DELETE("/:id/", clientHandler.Delete)
		}

		workers := authed.Group("/workers")
		{
			workers.GET("/", workerHandler.List)
			workers.POST("/", workerHandler.Create)
			workers.GET("/:id/", workerHandler.Get)
			workers.PUT("/:id/", workerHandler.Update)
			workers.PATCH("/:id/", workerHandler.Update)
			workers.DELETE("/:id/", workerHandler.Delete)
		}

		tasks := authed.Group("/tasks")
		{
			tasks.GET("/", taskHandler.List)
			tasks.POST("/", taskHandler.Create)
			tasks.GET("/analytics/", taskHandler.Analytics)
			tasks.GET("/:id/", taskHandler.Get)
			tasks.PUT("/:id/", taskHandler.Update)
			tasks.PATCH("/:id/", taskHandler.Update)
			tasks.DELETE("/:id/", taskHandler.Delete)
		}
	}

	return r
}

// NewHandler wraps the router with CORS and tracing.
func NewHandler(cfg *config.Config, router http.Handler) http.Handler {
	options := cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", constants.CSRFHeaderName, constants.RequestIDHeader},
		ExposedHeaders:   []string{constants.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		// An empty list would otherwise allow every origin.
		options.AllowOriginFunc = func(*http.Request, string) bool { return false }
	}

	return otelhttp.NewHandler(cors.Handler(options)(router), "founder-command-center")
}

// NewHTTPServer creates the http.Server listening on cfg.Addr().
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
