package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPopular(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/popular" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "k" {
			t.Errorf("missing api key in %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected page=2, got %q", r.URL.Query().Get("page"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":2,"results":[
			{"id":550,"title":"Fight Club","vote_average":8.4,"poster_path":"/p.jpg"}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	entries, err := c.Popular(context.Background(), 2)
	if err != nil {
		t.Fatalf("Popular error: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Fight Club" || entries[0].ID != 550 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestPopular_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-key")
	if _, err := c.Popular(context.Background(), 1); err == nil {
		t.Fatalf("expected error for non-200 upstream response")
	}
}
