package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medcore/medstock-api/internal/domain/entity"
)

type memIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memIdempotencyRepo) GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ikey, ok := r.keys[key]
	if !ok {
		return nil, nil
	}
	copied := *ikey
	return &copied, nil
}

func (r *memIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *ikey
	r.keys[ikey.Key] = &copied
	return nil
}

func (r *memIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, ikey := range r.keys {
		if ikey.IsExpired() {
			delete(r.keys, key)
		}
	}
	return nil
}

func (r *memIdempotencyRepo) has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.keys[key]
	return ok
}

func newIdempotentRouter(repo *memIdempotencyRepo, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/billing", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusOK, gin.H{"bill_number": "BILL-1"})
	})
	return router
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	repo := newMemIdempotencyRepo()
	var calls int
	router := newIdempotentRouter(repo, &calls)

	first := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/billing", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(first, req)

	second := httptest.NewRecorder()
	retry := httptest.NewRequest("POST", "/billing", nil)
	retry.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(second, retry)

	if calls != 1 {
		t.Errorf("handler ran %d times, want 1", calls)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("replayed response missing X-Idempotency-Replayed header")
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestIdempotency_MissingHeaderPassesThrough(t *testing.T) {
	repo := newMemIdempotencyRepo()
	var calls int
	router := newIdempotentRouter(repo, &calls)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/billing", nil))
	}

	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
}

func TestStartIdempotencyCleanup_PurgesExpiredKeys(t *testing.T) {
	repo := newMemIdempotencyRepo()
	_ = repo.Create(context.Background(), &entity.IdempotencyKey{
		Key:       "expired",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	_ = repo.Create(context.Background(), &entity.IdempotencyKey{
		Key:       "live",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartIdempotencyCleanup(ctx, repo, 5*time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for repo.has("expired") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if repo.has("expired") {
		t.Error("expired key still present after cleanup interval")
	}
	if !repo.has("live") {
		t.Error("live key removed by cleanup")
	}
}
