package middleware

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-recommendation/internal/config"
)

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

// deadRedis returns a client whose address has no listener, so every
// command fails immediately.
func deadRedis(t *testing.T) *redis.Client {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	return client
}

func serveCached(t *testing.T, h echo.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestRedisCache_NilClientDisables(t *testing.T) {
	t.Parallel()

	calls := 0
	h := NewRedisCache(cacheTestConfig(), nil)(func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "upstream")
	})

	for i := 0; i < 2; i++ {
		rec := serveCached(t, h, http.MethodGet, "/popular")
		if rec.Code != http.StatusOK || rec.Body.String() != "upstream" {
			t.Fatalf("unexpected response: %d %q", rec.Code, rec.Body.String())
		}
	}
	if calls != 2 {
		t.Fatalf("nil client must pass every request through, handler ran %d times", calls)
	}
}

func TestRedisCache_MissThenHit(t *testing.T) {
	t.Parallel()

	calls := 0
	h := NewRedisCache(cacheTestConfig(), testRedis(t))(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"page": 1})
	})

	first := serveCached(t, h, http.MethodGet, "/popular?page=1")
	if first.Code != http.StatusOK {
		t.Fatalf("first request: %d", first.Code)
	}
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("first request X-Cache = %q, want MISS", got)
	}

	second := serveCached(t, h, http.MethodGet, "/popular?page=1")
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Fatalf("second request X-Cache = %q, want HIT", got)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replayed body %q differs from original %q",
			second.Body.String(), first.Body.String())
	}
	if ct := second.Header().Get(echo.HeaderContentType); ct != first.Header().Get(echo.HeaderContentType) {
		t.Fatalf("replayed Content-Type = %q", ct)
	}
	if calls != 1 {
		t.Fatalf("upstream handler ran %d times, want 1", calls)
	}
}

func TestRedisCache_DistinctQueriesGetDistinctEntries(t *testing.T) {
	t.Parallel()

	calls := 0
	h := NewRedisCache(cacheTestConfig(), testRedis(t))(func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, c.QueryParam("page"))
	})

	serveCached(t, h, http.MethodGet, "/popular?page=1")
	rec := serveCached(t, h, http.MethodGet, "/popular?page=2")
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Fatal("a different query string must not hit the first entry")
	}
	if rec.Body.String() != "2" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
	if calls != 2 {
		t.Fatalf("upstream handler ran %d times, want 2", calls)
	}
}

func TestRedisCache_ErrorsNotStored(t *testing.T) {
	t.Parallel()

	calls := 0
	h := NewRedisCache(cacheTestConfig(), testRedis(t))(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "upstream down"})
	})

	serveCached(t, h, http.MethodGet, "/popular")
	rec := serveCached(t, h, http.MethodGet, "/popular")
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Fatal("a non-200 response must not be served from cache")
	}
	if calls != 2 {
		t.Fatalf("upstream handler ran %d times, want 2", calls)
	}
}

func TestRedisCache_UncachedMethodPassesThrough(t *testing.T) {
	t.Parallel()

	rdb := testRedis(t)
	h := NewRedisCache(cacheTestConfig(), rdb)(func(c echo.Context) error {
		return c.String(http.StatusOK, "created")
	})

	rec := serveCached(t, h, http.MethodPost, "/popular")
	if rec.Header().Get("X-Cache") != "" {
		t.Fatal("non-configured methods must bypass the cache entirely")
	}
	keys, err := rdb.Keys(context.Background(), "*").Result()
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("POST response was cached: %v", keys)
	}
}

func TestRedisCache_OversizeBodyNotStored(t *testing.T) {
	t.Parallel()

	cfg := cacheTestConfig()
	cfg.MaxBodyBytes = 8
	calls := 0
	h := NewRedisCache(cfg, testRedis(t))(func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "this body is longer than eight bytes")
	})

	first := serveCached(t, h, http.MethodGet, "/popular")
	second := serveCached(t, h, http.MethodGet, "/popular")
	// The client still gets the full body on both requests.
	if first.Body.String() != second.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", first.Body.String(), second.Body.String())
	}
	if second.Header().Get("X-Cache") != "MISS" {
		t.Fatal("a body over the size cap must not be stored")
	}
	if calls != 2 {
		t.Fatalf("upstream handler ran %d times, want 2", calls)
	}
}

func TestRedisCache_FailsOpenWhenRedisDown(t *testing.T) {
	t.Parallel()

	calls := 0
	h := NewRedisCache(cacheTestConfig(), deadRedis(t))(func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "upstream")
	})

	rec := serveCached(t, h, http.MethodGet, "/popular")
	if rec.Code != http.StatusOK || rec.Body.String() != "upstream" {
		t.Fatalf("unexpected response with Redis down: %d %q", rec.Code, rec.Body.String())
	}
	if calls != 1 {
		t.Fatalf("upstream handler ran %d times, want 1", calls)
	}
}
