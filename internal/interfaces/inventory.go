package interfaces

import (
	"context"

	"LeaseMatch/internal/model"
)

// InventoryAdapter 联邦资产清单数据源必须实现的核心接口
type InventoryAdapter interface {
	// GetName 数据源名称
	GetName() string
	// FetchProperties 全量拉取清单记录
	FetchProperties(ctx context.Context) ([]*model.FederalProperty, error)
}

// InventoryRepository 清单入库接口
type InventoryRepository interface {
	UpsertBatch(ctx context.Context, records []*model.FederalProperty) error
}
