package router // package router wires HTTP routes to their handlers and middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-recommendation/internal/config"
	"github.com/iliyamo/movie-recommendation/internal/handler"
	"github.com/iliyamo/movie-recommendation/internal/middleware"
	"github.com/iliyamo/movie-recommendation/internal/model"
)

// Handlers collects every handler the router needs.  main constructs them
// once with their repositories and passes the bundle here.
type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Lists   *handler.ListHandler
	Movies  *handler.MovieHandler
}

// Register wires all routes onto the Echo instance.
//
// Layout:
//
//	GET  /healthz                              – liveness probe
//	POST /api/auth/signup, /api/auth/login     – open, rate limited
//	GET  /api/movies/popular                   – open, response cached
//	/api/profile...                            – gated by JWTAuth
//	GET  /uploads/*                            – stored profile photos
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	e.GET("/healthz", handler.Health)

	// Auth endpoints sit behind the token bucket so bulk bcrypt attempts
	// are cut off early.
	auth := e.Group("/api/auth")
	auth.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)

	// Catalog passthrough, cached in Redis.
	movies := e.Group("/api/movies")
	movies.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	movies.GET("/popular", h.Movies.Popular)

	// Everything under /api/profile requires a verified token.  The gate
	// injects the subject id; handlers answer 404 when the record is gone.
	profile := e.Group("/api/profile")
	profile.Use(middleware.JWTAuth(cfg.JWTSecret))
	profile.GET("", h.Profile.Get)
	profile.POST("", h.Profile.Update)

	profile.GET("/favorites", h.Lists.Get(model.ListFavorites))
	profile.POST("/favorites", h.Lists.Add(model.ListFavorites))
	profile.DELETE("/favorites/:movieId", h.Lists.Remove(model.ListFavorites))

	profile.GET("/watchlist", h.Lists.Get(model.ListWatchlist))
	profile.POST("/watchlist", h.Lists.Add(model.ListWatchlist))
	profile.DELETE("/watchlist/:movieId", h.Lists.Remove(model.ListWatchlist))

	// Uploaded photos are served as static files.
	e.Static("/uploads", cfg.UploadDir)
}
