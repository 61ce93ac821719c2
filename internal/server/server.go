package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pgtypegen/internal/handlers"
	"pgtypegen/internal/middlewares"
	"pgtypegen/internal/routes"
)

type Options struct {
	Addr          string
	DefaultSchema string
	NewService    handlers.ServiceFactory
	Logger        *slog.Logger
}

// NewRouter builds the preview API. Every request reads the catalog afresh.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestID)
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Accept", middlewares.RequestIDHeader},
		ExposeHeaders:   []string{middlewares.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	// Dependency injection
	typesHandler := handlers.NewTypesHandler(opts.NewService, opts.DefaultSchema, opts.Logger)
	routes.RegisterRoutes(router, typesHandler)

	return router
}

func NewServer(opts Options) *http.Server {
	return &http.Server{
		Addr:         opts.Addr,
		Handler:      NewRouter(opts),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
