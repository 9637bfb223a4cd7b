package http

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Marco21c/backend-noticias/internal/apperr"
	"github.com/Marco21c/backend-noticias/internal/auth"
	"github.com/Marco21c/backend-noticias/internal/config"
	"github.com/Marco21c/backend-noticias/internal/http/handlers"
	"github.com/Marco21c/backend-noticias/internal/http/middlewares"
	"github.com/Marco21c/backend-noticias/internal/observability"
	"github.com/Marco21c/backend-noticias/internal/policy"
	"github.com/Marco21c/backend-noticias/internal/ratelimit"
	"github.com/Marco21c/backend-noticias/internal/security"
	"github.com/Marco21c/backend-noticias/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Stores is one storage backend: mongo, postgres or memory.
type Stores struct {
	Users      service.UserStore
	Categories service.CategoryStore
	News       service.NewsStore
	Ping       handlers.Pinger
}

type Deps struct {
	Stores Stores

	// Hasher defaults to bcrypt at the default cost.
	Hasher service.PasswordHasher

	// LoginLimiter defaults to an in-process limiter built from config.
	LoginLimiter ratelimit.Limiter

	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) (*gin.Engine, error) {
	if cfg.Env != config.EnvDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := handlers.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("registering validators: %w", err)
	}

	if deps.Prom == nil {
		reg := prometheus.NewRegistry()
		deps.Prom = observability.NewProm(reg)
		deps.Gatherer = reg
	}
	if deps.Hasher == nil {
		deps.Hasher = security.NewHasher()
	}
	if deps.LoginLimiter == nil {
		deps.LoginLimiter = ratelimit.NewMemory(cfg.LoginRateLimit, cfg.LoginRateWindow)
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL())
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set; login and signup will fail")
	}

	userSvc := service.NewUserService(deps.Stores.Users, deps.Hasher)
	categorySvc := service.NewCategoryService(deps.Stores.Categories)
	newsSvc := service.NewNewsService(deps.Stores.News, categorySvc)
	authSvc := service.NewAuthService(deps.Stores.Users, deps.Hasher, tokens)

	r := gin.New()

	// middleware; the translator sits outside recovery so panics still get an envelope
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(deps.Prom.GinHandleMiddleware())
	r.Use(middlewares.ErrorTranslator(cfg.IsDevelopment()))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		_ = c.Error(fmt.Errorf("panic: %v", recovered))
		c.Abort()
	}))
	r.Use(middlewares.SecurityHeaders(cfg.Env == config.EnvProduction))
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, apperr.ErrRouteNotFound)
	})

	// health
	h := handlers.NewHealthHandler(deps.Stores.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	authenticate := middlewares.Authenticate(authSvc)
	api := r.Group("/api")

	// auth
	authHandler := handlers.NewAuthHandler(authSvc)
	loginLimit := middlewares.RateLimit("login", deps.LoginLimiter, middlewares.KeyByIP, deps.Prom)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/login", loginLimit, authHandler.Login)
	authRoutes.POST("/signup", loginLimit, authHandler.SignUp)
	authRoutes.GET("/me", authenticate, authHandler.Me)

	// users
	usersHandler := handlers.NewUsersHandler(userSvc)
	manageUsers := middlewares.Require(policy.ManageUsers)

	users := api.Group("/user", authenticate)
	users.GET("", manageUsers, usersHandler.List)
	users.GET("/email", manageUsers, usersHandler.GetByEmail)
	users.POST("", manageUsers, usersHandler.Create)
	users.GET("/:id", manageUsers, usersHandler.GetByID)
	users.PUT("/:id", usersHandler.Update)
	users.DELETE("/:id", manageUsers, usersHandler.Delete)

	// categories
	categoriesHandler := handlers.NewCategoriesHandler(categorySvc)
	manageCategories := []gin.HandlerFunc{authenticate, middlewares.Require(policy.ManageCategories)}

	categories := api.Group("/categories")
	categories.GET("", categoriesHandler.List)
	categories.GET("/:id", categoriesHandler.GetByID)
	categories.POST("", append(manageCategories, categoriesHandler.Create)...)
	categories.PUT("/:id", append(manageCategories, categoriesHandler.Update)...)
	categories.DELETE("/:id", append(manageCategories, categoriesHandler.Delete)...)

	// news
	newsHandler := handlers.NewNewsHandler(newsSvc)
	writeNews := []gin.HandlerFunc{authenticate, middlewares.Require(policy.WriteNews)}

	newsRoutes := api.Group("/news")
	newsRoutes.GET("", newsHandler.List)
	newsRoutes.GET("/category", newsHandler.ListByCategory)
	newsRoutes.GET("/:id", newsHandler.GetByID)
	newsRoutes.POST("", append(writeNews, newsHandler.Create)...)
	newsRoutes.PUT("/:id", append(writeNews, newsHandler.Update)...)
	newsRoutes.DELETE("/:id", append(writeNews, newsHandler.Delete)...)

	log.Debug("router ready", "storage", cfg.StorageDriver, "token_ttl", cfg.TokenTTL().Round(time.Second).String())

	return r, nil
}
