package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-recommendation/internal/catalog"
)

// MovieHandler proxies the external movie catalog.
type MovieHandler struct {
	Catalog *catalog.Client
}

func NewMovieHandler(c *catalog.Client) *MovieHandler {
	return &MovieHandler{Catalog: c}
}

// Popular returns the current popular-movies page from the catalog API.
// The route sits behind the Redis response cache, so the upstream is only
// consulted when the cached page has expired.
func (h *MovieHandler) Popular(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	entries, err := h.Catalog.Popular(c.Request().Context(), page)
	if err != nil {
		log.Printf("movies: catalog fetch failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error fetching movies"})
	}
	return c.JSON(http.StatusOK, entries)
}
