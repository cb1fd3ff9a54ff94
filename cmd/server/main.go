package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-recommendation/internal/catalog"
	"github.com/iliyamo/movie-recommendation/internal/config"
	"github.com/iliyamo/movie-recommendation/internal/database"
	"github.com/iliyamo/movie-recommendation/internal/handler"
	"github.com/iliyamo/movie-recommendation/internal/queue"
	"github.com/iliyamo/movie-recommendation/internal/repository"
	"github.com/iliyamo/movie-recommendation/internal/router"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	lists := repository.NewListRepo(db)

	h := router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, users),
		Profile: handler.NewProfileHandler(cfg, users),
		Lists:   handler.NewListHandler(movies, lists),
		Movies:  handler.NewMovieHandler(catalog.New(cfg.TMDBBaseURL, cfg.TMDBAPIKey)),
	}

	e := echo.New()
	router.Register(e, cfg, rdb, h)

	// Activity consumer runs for the life of the process and reconnects on
	// broker failures.
	go queue.StartActivityConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
