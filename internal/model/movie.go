package model

import "time"

// Movie is a catalog entry cached locally from the external movie API.
// Rows are keyed by the unique TMDBID so re-importing a title is an
// upsert, never a duplicate.
type Movie struct {
	ID        uint64    // movies.id
	TMDBID    int64     // movies.tmdb_id (unique)
	Title     string    // movies.title
	Poster    string    // movies.poster
	Backdrop  string    // movies.backdrop
	Type      string    // movies.type ("movie" or "tv")
	Rating    float64   // movies.rating (0–10)
	CreatedAt time.Time // movies.created_at
}

// List kinds for per-user movie lists stored in `user_movie_lists`.
const (
	ListFavorites = "FAVORITES"
	ListWatchlist = "WATCHLIST"
)
