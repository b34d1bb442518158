// Package router assembles the gin engine and its routes.
package router

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "todo_backend/internal/feature/auth/transport/handler"
	taskhandler "todo_backend/internal/feature/tasks/transport/handler"
	"todo_backend/internal/platform/http/handler"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/platform/logger"
	"todo_backend/internal/shared/ratelimiter"
)

// Options carries the cross-cutting dependencies of the router.
type Options struct {
	CORSOrigins []string
	// TrustedProxies may set the client IP through X-Forwarded-For.
	// Nil trusts none.
	TrustedProxies []string
	Verifier       jwtmw.Verifier
	AuthLimiter    ratelimiter.Limiter
	// Ready backs /readyz, usually a database ping.
	Ready func(ctx context.Context) error
}

func NewRouter(opts Options, authHandler *authhandler.AuthHandler, tasks *taskhandler.TaskHandler) (*gin.Engine, error) {
	r := gin.New()
	// ClientIP keys the rate limiter; only listed proxies may override it
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), logger.RequestLogger())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	// No authentication
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Readiness(opts.Ready))

	limited := r.Group("/")
	if opts.AuthLimiter != nil {
		limited.Use(ratelimiter.Middleware(opts.AuthLimiter))
	}
	{
		limited.POST("/signup", authHandler.Signup)
		limited.POST("/signin", authHandler.Signin)
	}

	// Bearer token required
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opts.Verifier))
	{
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", authHandler.Me)

		auth.GET("/tasks", tasks.List)
		auth.POST("/tasks", tasks.Create)
		auth.GET("/tasks/:id", tasks.Get)
		auth.PUT("/tasks/:id", tasks.Update)
		auth.DELETE("/tasks/:id", tasks.Delete)
		auth.PATCH("/tasks/:id/complete", tasks.ToggleCompletion)
	}

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	// credentials cannot be combined with a wildcard origin
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
