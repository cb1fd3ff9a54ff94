// Package catalog is a thin client for the external movie-catalog API
// (TMDB).  The service only proxies and caches catalog data; nothing here
// is persisted except titles a user explicitly adds to a list.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Entry is one title as returned by the catalog API.  Field names follow
// the upstream JSON so the passthrough stays shape-compatible with it.
type Entry struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
}

type popularResponse struct {
	Page    int     `json:"page"`
	Results []Entry `json:"results"`
}

// Client calls the catalog API with a process-wide key.  The zero value is
// not usable; construct with New.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New returns a catalog client.  The HTTP timeout bounds how long a
// passthrough request can hold an inbound connection.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Popular fetches one page of popular movies from the catalog.
func (c *Client) Popular(ctx context.Context, page int) ([]Entry, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", "en-US")
	q.Set("page", fmt.Sprint(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/movie/popular?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}
	var out popularResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
