package repository

import (
	"context"

	"LeaseMatch/internal/model"

	"gorm.io/gorm"
)

// PropertyFilter 房源列表筛选条件
type PropertyFilter struct {
	City   string // 城市
	State  string // 州
	Class  string // 楼宇等级
	Status string // 状态：active/withdrawn
}

// PropertyRepository 房源与经纪人画像仓储接口
type PropertyRepository interface {
	// GetByUUID 通过 property_uuid 获取房源
	GetByUUID(ctx context.Context, propertyUUID string) (*model.Property, error)
	// ListProperties 按过滤条件分页查询房源
	ListProperties(ctx context.Context, filter PropertyFilter, page, pageSize int) ([]*model.Property, int64, error)
	// GetBrokerProfile 通过 broker_id 获取经纪人画像；无记录返回 gorm.ErrRecordNotFound
	GetBrokerProfile(ctx context.Context, brokerID uint64) (*model.BrokerProfile, error)
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository 创建 PropertyRepository 实例
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) GetByUUID(ctx context.Context, propertyUUID string) (*model.Property, error) {
	var p model.Property
	if err := r.db.WithContext(ctx).Where("property_uuid = ?", propertyUUID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) ListProperties(ctx context.Context, filter PropertyFilter, page, pageSize int) ([]*model.Property, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.Property{})
	if filter.City != "" {
		db = db.Where("city = ?", filter.City)
	}
	if filter.State != "" {
		db = db.Where("state = ?", filter.State)
	}
	if filter.Class != "" {
		db = db.Where("building_class = ?", filter.Class)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []*model.Property
	if err := db.
		Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&properties).Error; err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *propertyRepository) GetBrokerProfile(ctx context.Context, brokerID uint64) (*model.BrokerProfile, error) {
	var bp model.BrokerProfile
	if err := r.db.WithContext(ctx).Where("broker_id = ?", brokerID).First(&bp).Error; err != nil {
		return nil, err
	}
	return &bp, nil
}
