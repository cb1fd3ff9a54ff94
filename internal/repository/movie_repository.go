package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-recommendation/internal/model"
)

// MovieRepo stores catalog entries imported from the external movie API.
type MovieRepo struct {
	DB *sql.DB
}

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

const movieColumns = "id,tmdb_id,title,poster,backdrop,type,rating,created_at"

func scanMovie(row *sql.Row) (model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.TMDBID, &m.Title, &m.Poster, &m.Backdrop,
		&m.Type, &m.Rating, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, ErrNotFound
	}
	return m, err
}

// Upsert inserts a movie or refreshes its mutable columns when a row with
// the same tmdb_id already exists.  Returns the stored row either way.
func (r *MovieRepo) Upsert(ctx context.Context, m model.Movie) (model.Movie, error) {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO movies (tmdb_id, title, poster, backdrop, type, rating)
		 VALUES (?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE title=VALUES(title), poster=VALUES(poster),
		 backdrop=VALUES(backdrop), type=VALUES(type), rating=VALUES(rating)`,
		m.TMDBID, m.Title, m.Poster, m.Backdrop, m.Type, m.Rating)
	if err != nil {
		return model.Movie{}, err
	}
	return r.GetByTMDBID(ctx, m.TMDBID)
}

// GetByID fetches a movie by primary key.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	return scanMovie(r.DB.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id=? LIMIT 1", id))
}

// GetByTMDBID fetches a movie by its external catalog id.
func (r *MovieRepo) GetByTMDBID(ctx context.Context, tmdbID int64) (model.Movie, error) {
	return scanMovie(r.DB.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE tmdb_id=? LIMIT 1", tmdbID))
}
