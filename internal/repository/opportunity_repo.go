package repository

import (
	"context"

	"LeaseMatch/internal/model"

	"gorm.io/gorm"
)

// OpportunityFilter 招标列表筛选条件
type OpportunityFilter struct {
	State  string // 目标州
	Agency string // 发标机构
	Status string // 状态：open/closed/awarded
}

// OpportunityRepository 招标记录仓储接口
type OpportunityRepository interface {
	// GetByUUID 通过 opportunity_uuid 获取招标记录
	GetByUUID(ctx context.Context, opportunityUUID string) (*model.Opportunity, error)
	// ListOpportunities 按过滤条件分页查询招标记录
	ListOpportunities(ctx context.Context, filter OpportunityFilter, page, pageSize int) ([]*model.Opportunity, int64, error)
}

type opportunityRepository struct {
	db *gorm.DB
}

// NewOpportunityRepository 创建 OpportunityRepository 实例
func NewOpportunityRepository(db *gorm.DB) OpportunityRepository {
	return &opportunityRepository{db: db}
}

func (r *opportunityRepository) GetByUUID(ctx context.Context, opportunityUUID string) (*model.Opportunity, error) {
	var o model.Opportunity
	if err := r.db.WithContext(ctx).Where("opportunity_uuid = ?", opportunityUUID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *opportunityRepository) ListOpportunities(ctx context.Context, filter OpportunityFilter, page, pageSize int) ([]*model.Opportunity, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.Opportunity{})
	if filter.State != "" {
		db = db.Where("state = ?", filter.State)
	}
	if filter.Agency != "" {
		db = db.Where("agency_name = ?", filter.Agency)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var opportunities []*model.Opportunity
	if err := db.
		Order("response_deadline ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&opportunities).Error; err != nil {
		return nil, 0, err
	}
	return opportunities, total, nil
}
