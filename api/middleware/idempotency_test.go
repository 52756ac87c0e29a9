package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	redislib "github.com/redis/go-redis/v9"
)

type memoryIdempotencyStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{values: map[string]string{}}
}

func (s *memoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (s *memoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; ok {
		return false, nil
	}
	s.values[key] = fmt.Sprint(value)
	return true, nil
}

func (s *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "idem:" + scope + ":" + id
}

func (s *memoryIdempotencyStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"data":{"attempt":%d}}`, calls)
	})
	handler := Idempotency(store, nil)(next)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/shops/abc/sales", strings.NewReader(`{"quantity":2}`))
		req.Header.Set("Idempotency-Key", "retry-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	second := send()

	if calls != 1 {
		t.Fatalf("handler should run once, ran %d times", calls)
	}
	if second.Code != http.StatusCreated {
		t.Fatalf("replay should keep status, got %d", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replay body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newMemoryIdempotencyStore()
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	first := httptest.NewRequest(http.MethodPost, "/api/v1/shops/abc/restocks", strings.NewReader(`{"quantity":2}`))
	first.Header.Set("Idempotency-Key", "retry-2")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first request should pass, got %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/shops/abc/restocks", strings.NewReader(`{"quantity":9}`))
	second.Header.Set("Idempotency-Key", "retry-2")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for reused key with new body, got %d", rec.Code)
	}
}

func TestIdempotencyRequiresHeaderOnLedgerWrites(t *testing.T) {
	handler := Idempotency(newMemoryIdempotencyStore(), nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shops/abc/sales", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without Idempotency-Key, got %d", rec.Code)
	}
}

// The middleware is installed with r.Use on a mounted subrouter, where chi has
// not resolved the leaf route yet. Rule matching must therefore work off the
// concrete URL path, not the route pattern.
func TestIdempotencyGuardsMountedSubrouterRoutes(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	router := chi.NewRouter()
	router.Route("/api/v1/shops", func(r chi.Router) {
		r.Use(Idempotency(store, nil))
		r.Route("/{shopId}", func(r chi.Router) {
			r.Post("/sales", func(w http.ResponseWriter, _ *http.Request) {
				calls++
				w.WriteHeader(http.StatusCreated)
				fmt.Fprintf(w, `{"data":{"attempt":%d}}`, calls)
			})
		})
	})

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/shops/7be9a304-8c7d-4e6f-9a2b-1f3c5d7e9a0b/sales", strings.NewReader(`{"quantity":1}`))
		if key != "" {
			req.Header.Set("Idempotency-Key", key)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	missing := send("")
	if missing.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without Idempotency-Key, got %d", missing.Code)
	}

	first := send("retry-3")
	second := send("retry-3")
	if calls != 1 {
		t.Fatalf("handler should run once through the mounted router, ran %d times", calls)
	}
	if second.Code != http.StatusCreated || first.Body.String() != second.Body.String() {
		t.Fatalf("replay mismatch: %d %q vs %q", second.Code, first.Body.String(), second.Body.String())
	}
}

func TestIdempotencyIgnoresReadRequests(t *testing.T) {
	calls := 0
	handler := Idempotency(newMemoryIdempotencyStore(), nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/abc/sales", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET must pass untouched, got %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("expected handler to run twice, ran %d", calls)
	}
}
