package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-recommendation/internal/middleware"
	"github.com/iliyamo/movie-recommendation/internal/model"
	"github.com/iliyamo/movie-recommendation/internal/queue"
	"github.com/iliyamo/movie-recommendation/internal/repository"
)

// ListHandler serves the per-user favorites and watchlist endpoints.  Both
// lists share one handler; the route decides the list kind.
type ListHandler struct {
	Movies *repository.MovieRepo
	Lists  *repository.ListRepo
}

func NewListHandler(m *repository.MovieRepo, l *repository.ListRepo) *ListHandler {
	return &ListHandler{Movies: m, Lists: l}
}

// addReq references a movie either by local id or, for titles not yet in
// the local catalog, by its external id plus enough data to upsert it.
type addReq struct {
	MovieID  uint64  `json:"movieId"`
	TMDBID   int64   `json:"tmdbId"`
	Title    string  `json:"title"`
	Poster   string  `json:"poster"`
	Backdrop string  `json:"backdrop"`
	Type     string  `json:"type"`
	Rating   float64 `json:"rating"`
}

type listMovie struct {
	ID       uint64  `json:"id"`
	TMDBID   int64   `json:"tmdbId"`
	Title    string  `json:"title"`
	Poster   string  `json:"poster"`
	Backdrop string  `json:"backdrop"`
	Type     string  `json:"type"`
	Rating   float64 `json:"rating"`
}

func toListMovie(m model.Movie) listMovie {
	return listMovie{
		ID:       m.ID,
		TMDBID:   m.TMDBID,
		Title:    m.Title,
		Poster:   m.Poster,
		Backdrop: m.Backdrop,
		Type:     m.Type,
		Rating:   m.Rating,
	}
}

func addedActivity(list string) string {
	if list == model.ListWatchlist {
		return queue.ActivityWatchlistAdded
	}
	return queue.ActivityFavoriteAdded
}

func removedActivity(list string) string {
	if list == model.ListWatchlist {
		return queue.ActivityWatchlistRemoved
	}
	return queue.ActivityFavoriteRemoved
}

// Get returns the movies on the given list, newest first.
func (h *ListHandler) Get(list string) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		movies, err := h.Lists.Movies(ctx, uid, list)
		if err != nil {
			log.Printf("lists: load %s for user %d failed: %v", list, uid, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not load list"})
		}
		out := make([]listMovie, 0, len(movies))
		for _, m := range movies {
			out = append(out, toListMovie(m))
		}
		return c.JSON(http.StatusOK, out)
	}
}

// Add puts a movie on the list.  A movieId must reference an existing
// catalog row (404 otherwise); a tmdbId payload upserts the catalog row
// first.  Adding a movie that is already on the list answers 400.
func (h *ListHandler) Add(list string) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
		}
		var req addReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		var movie model.Movie
		var err error
		switch {
		case req.MovieID != 0:
			movie, err = h.Movies.GetByID(ctx, req.MovieID)
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"message": "movie not found"})
			}
		case req.TMDBID != 0 && req.Title != "":
			mtype := req.Type
			if mtype == "" {
				mtype = "movie"
			}
			movie, err = h.Movies.Upsert(ctx, model.Movie{
				TMDBID:   req.TMDBID,
				Title:    req.Title,
				Poster:   req.Poster,
				Backdrop: req.Backdrop,
				Type:     mtype,
				Rating:   req.Rating,
			})
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "movieId or tmdbId with title required"})
		}
		if err != nil {
			log.Printf("lists: resolve movie failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not resolve movie"})
		}

		if err := h.Lists.Add(ctx, uid, movie.ID, list); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return c.JSON(http.StatusBadRequest, echo.Map{"message": "movie already on list"})
			}
			log.Printf("lists: add movie %d to %s failed: %v", movie.ID, list, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update list"})
		}

		publishActivity(queue.UserActivityEvent{
			Kind: addedActivity(list), UserID: uid, MovieID: movie.ID, MovieTitle: movie.Title,
		})
		return c.JSON(http.StatusOK, echo.Map{"message": "movie added", "movie": toListMovie(movie)})
	}
}

// Remove takes a movie off the list.
func (h *ListHandler) Remove(list string) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := middleware.CurrentUserID(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
		}
		movieID, err := strconv.ParseUint(c.Param("movieId"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid movie id"})
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		if err := h.Lists.Remove(ctx, uid, movieID, list); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"message": "movie not on list"})
			}
			log.Printf("lists: remove movie %d from %s failed: %v", movieID, list, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update list"})
		}

		publishActivity(queue.UserActivityEvent{
			Kind: removedActivity(list), UserID: uid, MovieID: movieID,
		})
		return c.JSON(http.StatusOK, echo.Map{"message": "movie removed"})
	}
}
