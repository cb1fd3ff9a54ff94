package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-recommendation/internal/model"
	"github.com/iliyamo/movie-recommendation/internal/repository"
)

func newListHandler(t *testing.T) (*ListHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewListHandler(repository.NewMovieRepo(db), repository.NewListRepo(db)), mock
}

func movieRow(id uint64, tmdbID int64, title string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tmdb_id", "title", "poster", "backdrop", "type", "rating", "created_at",
	}).AddRow(id, tmdbID, title, "/p.jpg", "/b.jpg", "movie", 8.4, time.Now().UTC())
}

func listRequest(t *testing.T, h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestListAdd_UnknownMovie(t *testing.T) {
	t.Parallel()
	h, mock := newListHandler(t)

	mock.ExpectQuery("SELECT .+ FROM movies WHERE id=").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tmdb_id", "title", "poster", "backdrop", "type", "rating", "created_at",
		}))

	rec := listRequest(t, h.Add(model.ListFavorites), http.MethodPost,
		"/api/profile/favorites", `{"movieId":99}`, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListAdd_AlreadyOnList(t *testing.T) {
	t.Parallel()
	h, mock := newListHandler(t)

	mock.ExpectQuery("SELECT .+ FROM movies WHERE id=").
		WithArgs(uint64(2)).
		WillReturnRows(movieRow(2, 550, "Fight Club"))
	mock.ExpectExec("INSERT INTO user_movie_lists").
		WillReturnError(&mysqlDupErr{})

	rec := listRequest(t, h.Add(model.ListFavorites), http.MethodPost,
		"/api/profile/favorites", `{"movieId":2}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "already on list") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestListAdd_UpsertsByTMDBID(t *testing.T) {
	t.Parallel()
	h, mock := newListHandler(t)

	mock.ExpectExec("INSERT INTO movies").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery("SELECT .+ FROM movies WHERE tmdb_id=").
		WithArgs(int64(550)).
		WillReturnRows(movieRow(5, 550, "Fight Club"))
	mock.ExpectExec("INSERT INTO user_movie_lists").
		WithArgs(uint64(1), uint64(5), model.ListWatchlist).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := listRequest(t, h.Add(model.ListWatchlist), http.MethodPost,
		"/api/profile/watchlist",
		`{"tmdbId":550,"title":"Fight Club","poster":"/p.jpg","backdrop":"/b.jpg","rating":8.4}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListRemove_NotOnList(t *testing.T) {
	t.Parallel()
	h, mock := newListHandler(t)

	mock.ExpectExec("DELETE FROM user_movie_lists").
		WithArgs(uint64(1), uint64(3), model.ListFavorites).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := listRequest(t, h.Remove(model.ListFavorites), http.MethodDelete,
		"/api/profile/favorites/3", "", map[string]string{"movieId": "3"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListGet_ReturnsMovies(t *testing.T) {
	t.Parallel()
	h, mock := newListHandler(t)

	rows := sqlmock.NewRows([]string{
		"id", "tmdb_id", "title", "poster", "backdrop", "type", "rating", "created_at",
	}).AddRow(2, 550, "Fight Club", "/p.jpg", "/b.jpg", "movie", 8.4, time.Now().UTC())
	mock.ExpectQuery("SELECT m.id, m.tmdb_id").
		WithArgs(uint64(1), model.ListFavorites).
		WillReturnRows(rows)

	rec := listRequest(t, h.Get(model.ListFavorites), http.MethodGet,
		"/api/profile/favorites", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Fight Club") {
		t.Fatalf("expected movie in body: %s", rec.Body.String())
	}
}
