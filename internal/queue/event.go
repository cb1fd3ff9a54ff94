// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity kinds published on the user.activity queue.
const (
	ActivitySignup           = "signup"
	ActivityFavoriteAdded    = "favorite_added"
	ActivityFavoriteRemoved  = "favorite_removed"
	ActivityWatchlistAdded   = "watchlist_added"
	ActivityWatchlistRemoved = "watchlist_removed"
)

// UserActivityEvent is published when a user signs up or changes one of
// their movie lists.  It carries enough information for downstream
// consumers (activity log, recommendation pipeline) without querying the
// primary database.  MovieID and MovieTitle are zero for signup events.
type UserActivityEvent struct {
	Kind       string `json:"kind"`
	UserID     uint64 `json:"user_id"`
	MovieID    uint64 `json:"movie_id,omitempty"`
	MovieTitle string `json:"movie_title,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
