package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pharmacare/backend/internal/infrastructure/auth"
	"github.com/pharmacare/backend/internal/infrastructure/config"
	"github.com/pharmacare/backend/internal/infrastructure/logger"
	"github.com/pharmacare/backend/internal/interfaces/http/handler"
	"github.com/pharmacare/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a group of routes on the versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds everything the router needs to assemble the HTTP surface
type Config struct {
	Env        string
	HTTP       config.HTTPConfig
	Logger     *zap.Logger
	JWTService *auth.JWTService
	System     *handler.SystemHandler
	Registrars []RouteRegistrar
}

// New builds the gin engine with the full middleware chain and all routes.
// Requests flow through request ID assignment, structured request logging,
// panic recovery and CORS before JWT authentication guards the /api/v1
// group. /health and /auth/login stay reachable without a token.
func New(cfg Config) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.CORS(cfg.HTTP))

	if cfg.System != nil {
		engine.GET("/health", cfg.System.Health)
	}

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: cfg.JWTService,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/auth/login",
		},
		Logger: cfg.Logger,
	}))

	if cfg.System != nil {
		api.GET("/health", cfg.System.Health)
		api.GET("/system/info", cfg.System.SystemInfo)
	}

	for _, registrar := range cfg.Registrars {
		registrar.RegisterRoutes(api)
	}

	return engine
}
