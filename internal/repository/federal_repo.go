package repository

import (
	"context"

	"LeaseMatch/internal/model"
	"LeaseMatch/internal/utils/geoutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FederalRepository 联邦房产参考数据仓储接口
type FederalRepository interface {
	// ListInBox 包围盒内的联邦房产（廉价粗筛；调用方再按大圆距离精筛）
	ListInBox(ctx context.Context, box geoutil.BoundingBox) ([]*model.FederalProperty, error)
	// UpsertBatch 按 property_code 批量插入或更新（清单同步用）
	UpsertBatch(ctx context.Context, records []*model.FederalProperty) error
	// Count 当前清单记录总数
	Count(ctx context.Context) (int64, error)
}

type federalRepository struct {
	db *gorm.DB
}

// NewFederalRepository 创建 FederalRepository 实例
func NewFederalRepository(db *gorm.DB) FederalRepository {
	return &federalRepository{db: db}
}

func (r *federalRepository) ListInBox(ctx context.Context, box geoutil.BoundingBox) ([]*model.FederalProperty, error) {
	var records []*model.FederalProperty
	if err := r.db.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// upsert分批大小，避免单条SQL参数过多
const upsertBatchSize = 200

func (r *federalRepository) UpsertBatch(ctx context.Context, records []*model.FederalProperty) error {
	if len(records) == 0 {
		return nil
	}
	for start := 0; start < len(records); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "city", "state", "latitude", "longitude",
				"ownership_type", "total_sqft", "vacant_sqft",
				"lease_expiration", "sync_run_id", "updated_at",
			}),
		}).Create(records[start:end]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *federalRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.FederalProperty{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
