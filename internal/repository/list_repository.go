package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-recommendation/internal/model"
)

// ListRepo manages per-user movie lists (favorites and watchlist) in the
// `user_movie_lists` table.  A composite unique key on
// (user_id, movie_id, list) makes Add race-safe under concurrent requests:
// the loser surfaces ErrDuplicate instead of inserting a second row.
type ListRepo struct {
	DB *sql.DB
}

func NewListRepo(db *sql.DB) *ListRepo { return &ListRepo{DB: db} }

// Add puts a movie on one of the user's lists.
func (r *ListRepo) Add(ctx context.Context, userID, movieID uint64, list string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_movie_lists (user_id, movie_id, list) VALUES (?,?,?)",
		userID, movieID, list)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// Remove takes a movie off one of the user's lists.  Removing a movie that
// is not on the list reports ErrNotFound so the handler can answer 404.
func (r *ListRepo) Remove(ctx context.Context, userID, movieID uint64, list string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_movie_lists WHERE user_id=? AND movie_id=? AND list=?",
		userID, movieID, list)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Contains reports whether a movie is already on the user's list.
func (r *ListRepo) Contains(ctx context.Context, userID, movieID uint64, list string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM user_movie_lists WHERE user_id=? AND movie_id=? AND list=? LIMIT 1",
		userID, movieID, list).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Movies returns the catalog entries on the user's list, newest first.
func (r *ListRepo) Movies(ctx context.Context, userID uint64, list string) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT m.id, m.tmdb_id, m.title, m.poster, m.backdrop, m.type, m.rating, m.created_at
		 FROM user_movie_lists l
		 JOIN movies m ON m.id = l.movie_id
		 WHERE l.user_id=? AND l.list=?
		 ORDER BY l.created_at DESC`,
		userID, list)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.TMDBID, &m.Title, &m.Poster, &m.Backdrop,
			&m.Type, &m.Rating, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
