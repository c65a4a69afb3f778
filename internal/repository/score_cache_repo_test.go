package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"LeaseMatch/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("打开内存库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Property{}, &model.BrokerProfile{}, &model.Opportunity{},
		&model.FederalProperty{}, &model.ScoreCache{},
	); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	return db
}

func cacheEntry(key string, score float64, ttl time.Duration) *model.ScoreCache {
	now := time.Now()
	return &model.ScoreCache{
		CacheKey:   key,
		ScoreType:  model.ScoreTypeMatch,
		Payload:    []byte(`{"overall_score":` + fmt.Sprintf("%.2f", score) + `}`),
		Grade:      "B",
		Qualified:  true,
		Score:      score,
		ComputedAt: now,
		ExpiresAt:  now.Add(ttl),
	}
}

func TestScoreCachePutGet(t *testing.T) {
	repo := NewScoreCacheRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Put(ctx, cacheEntry("match:p1:o1", 75.5, time.Hour)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := repo.Get(ctx, "match:p1:o1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Score != 75.5 || got.Grade != "B" {
		t.Errorf("Get = %+v, want stored entry", got)
	}
}

func TestScoreCacheMissOnAbsentKey(t *testing.T) {
	repo := NewScoreCacheRepository(newTestDB(t))
	got, err := repo.Get(context.Background(), "match:nope:nope")
	if err != nil {
		t.Fatalf("absent key must be a silent miss, got error: %v", err)
	}
	if got != nil {
		t.Errorf("absent key must miss, got %+v", got)
	}
}

func TestScoreCacheMissOnExpiredEntry(t *testing.T) {
	repo := NewScoreCacheRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Put(ctx, cacheEntry("match:p1:o1", 60, -time.Minute)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := repo.Get(ctx, "match:p1:o1")
	if err != nil {
		t.Fatalf("expired entry must be a silent miss, got error: %v", err)
	}
	if got != nil {
		t.Errorf("expired entry must miss, got %+v", got)
	}
}

func TestScoreCachePutOverwritesSameKey(t *testing.T) {
	repo := NewScoreCacheRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Put(ctx, cacheEntry("match:p1:o1", 50, time.Hour)); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if err := repo.Put(ctx, cacheEntry("match:p1:o1", 88, time.Hour)); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	got, err := repo.Get(ctx, "match:p1:o1")
	if err != nil || got == nil {
		t.Fatalf("Get after overwrite failed: %v, %+v", err, got)
	}
	if got.Score != 88 {
		t.Errorf("score = %.2f, want overwritten 88", got.Score)
	}
}

func TestScoreCacheListRecentScores(t *testing.T) {
	repo := NewScoreCacheRepository(newTestDB(t))
	ctx := context.Background()

	for i, s := range []float64{10, 20, 30} {
		e := cacheEntry(fmt.Sprintf("presence:%d", i), s, time.Hour)
		e.ScoreType = model.ScoreTypePresence
		if err := repo.Put(ctx, e); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	// 不同类型不应混入
	if err := repo.Put(ctx, cacheEntry("match:p:o", 99, time.Hour)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	scores, err := repo.ListRecentScores(ctx, model.ScoreTypePresence, 10)
	if err != nil {
		t.Fatalf("ListRecentScores failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("got %d presence scores, want 3: %v", len(scores), scores)
	}
}

func TestScoreCacheDeleteExpired(t *testing.T) {
	repo := NewScoreCacheRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Put(ctx, cacheEntry("k1", 10, -time.Minute)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := repo.Put(ctx, cacheEntry("k2", 20, time.Hour)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	deleted, err := repo.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if got, _ := repo.Get(ctx, "k2"); got == nil {
		t.Error("live entry must survive DeleteExpired")
	}
}
