// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

func fixed(n int) Counter {
	return func(context.Context) (int, error) { return n, nil }
}

func newRouter(cfg HandlerConfig) chi.Router {
	r := chi.NewRouter()
	r.Route("/api/admin", NewHandler(cfg).RegisterRoutes)
	return r
}

func TestDashboard(t *testing.T) {
	router := newRouter(HandlerConfig{Counters: Counters{
		Users:      fixed(3),
		Categories: fixed(5),
		Tips:       fixed(42),
		Favorites:  fixed(7),
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := DashboardResponse{Users: 3, Categories: 5, Tips: 42, Favorites: 7}
	if resp != want {
		t.Errorf("dashboard = %+v, want %+v", resp, want)
	}
}

func TestDashboard_CounterFailure(t *testing.T) {
	router := newRouter(HandlerConfig{Counters: Counters{
		Users: fixed(1),
		Tips: func(context.Context) (int, error) {
			return 0, errors.New("connection reset")
		},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestSystemStats(t *testing.T) {
	router := newRouter(HandlerConfig{
		DBStats:    func() sql.DBStats { return sql.DBStats{MaxOpenConnections: 25, InUse: 2} },
		RedisStats: func() *redis.PoolStats { return &redis.PoolStats{Hits: 9} },
		DBPing:     func(context.Context) error { return nil },
		RedisPing:  func(context.Context) error { return errors.New("down") },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp SystemStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Database.Healthy || resp.Redis.Healthy {
		t.Errorf("health = db %v redis %v", resp.Database.Healthy, resp.Redis.Healthy)
	}
	if resp.Database.Stats.MaxOpenConnections != 25 || resp.Redis.Stats.Hits != 9 {
		t.Errorf("stats = %+v / %+v", resp.Database.Stats, resp.Redis.Stats)
	}
	if resp.Runtime.GoVersion == "" {
		t.Error("runtime stats missing")
	}
}

func TestStats_NotConfigured(t *testing.T) {
	router := newRouter(HandlerConfig{})

	for _, path := range []string{"/api/admin/stats/db", "/api/admin/stats/redis"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rec.Code)
		}
	}
}
