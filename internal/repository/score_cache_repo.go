package repository

import (
	"context"
	"errors"
	"time"

	"LeaseMatch/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreCacheRepository 评分缓存仓储接口。缓存是建议性的：Get 的 miss 与错误
// 对调用方等价（都走现算），Put 失败只记日志、绝不回传给读路径
type ScoreCacheRepository interface {
	// Get 按键读取未过期的缓存行；无命中返回 (nil, nil)，过期/缺失都算 miss
	Get(ctx context.Context, cacheKey string) (*model.ScoreCache, error)
	// Put 按键写入缓存行（已存在则整行覆盖）
	Put(ctx context.Context, entry *model.ScoreCache) error
	// ListRecentScores 最近 limit 条指定类型的综合得分（百分位参考分布用）
	ListRecentScores(ctx context.Context, scoreType string, limit int) ([]float64, error)
	// DeleteExpired 清理已过期的缓存行，返回删除条数
	DeleteExpired(ctx context.Context) (int64, error)
}

type scoreCacheRepository struct {
	db *gorm.DB
}

// NewScoreCacheRepository 创建 ScoreCacheRepository 实例
func NewScoreCacheRepository(db *gorm.DB) ScoreCacheRepository {
	return &scoreCacheRepository{db: db}
}

func (r *scoreCacheRepository) Get(ctx context.Context, cacheKey string) (*model.ScoreCache, error) {
	var entry model.ScoreCache
	err := r.db.WithContext(ctx).
		Where("cache_key = ?", cacheKey).
		Where("expires_at > ?", time.Now()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // miss，不是错误
	}
	if err != nil {
		return nil, err
	}
	if len(entry.Payload) == 0 {
		return nil, nil // 载荷损坏同样按 miss 处理
	}
	return &entry, nil
}

func (r *scoreCacheRepository) Put(ctx context.Context, entry *model.ScoreCache) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score_type", "payload", "grade", "qualified", "competitive",
			"score", "computed_at", "expires_at",
		}),
	}).Create(entry).Error
}

func (r *scoreCacheRepository) ListRecentScores(ctx context.Context, scoreType string, limit int) ([]float64, error) {
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	var scores []float64
	if err := r.db.WithContext(ctx).Model(&model.ScoreCache{}).
		Where("score_type = ?", scoreType).
		Order("computed_at DESC").
		Limit(limit).
		Pluck("score", &scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *scoreCacheRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&model.ScoreCache{})
	return res.RowsAffected, res.Error
}
