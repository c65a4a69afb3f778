package service

import (
	"context"
	"fmt"

	"LeaseMatch/internal/adapter/iolp"
	"LeaseMatch/internal/config"
	"LeaseMatch/internal/interfaces"
	"LeaseMatch/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InventorySyncService 联邦资产清单同步服务：从清单数据源拉取全量记录，
// 按 property_code 幂等入库。存在度评分只消费入库后的数据
type InventorySyncService struct {
	adapter     interfaces.InventoryAdapter
	federalRepo repository.FederalRepository
	logger      *logrus.Logger
}

// NewInventorySyncService 创建 InventorySyncService
func NewInventorySyncService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *InventorySyncService {
	return &InventorySyncService{
		adapter:     iolp.NewInventoryAdapter(&cfg.Inventory, logger),
		federalRepo: repository.NewFederalRepository(db),
		logger:      logger,
	}
}

// SyncResult 单次同步结果
type SyncResult struct {
	RunID   string `json:"run_id"`   // 同步批次ID
	Fetched int    `json:"fetched"`  // 拉取条数
	Total   int64  `json:"total"`    // 入库后清单总条数
}

// Run 执行一次全量同步
func (s *InventorySyncService) Run(ctx context.Context) (*SyncResult, error) {
	runID := uuid.NewString()
	log := s.logger.WithFields(logrus.Fields{"source": s.adapter.GetName(), "run_id": runID})

	records, err := s.adapter.FetchProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s拉取清单失败: %w", s.adapter.GetName(), err)
	}
	if len(records) == 0 {
		log.Warn("清单数据源未返回任何记录，跳过入库")
		total, _ := s.federalRepo.Count(ctx)
		return &SyncResult{RunID: runID, Fetched: 0, Total: total}, nil
	}

	for _, rec := range records {
		rec.SyncRunID = runID
	}
	if err := s.federalRepo.UpsertBatch(ctx, records); err != nil {
		return nil, fmt.Errorf("清单入库失败: %w", err)
	}

	total, err := s.federalRepo.Count(ctx)
	if err != nil {
		log.WithError(err).Warn("统计清单总数失败")
	}
	log.Infof("清单同步完成：本次%d条，库内共%d条", len(records), total)
	return &SyncResult{RunID: runID, Fetched: len(records), Total: total}, nil
}
