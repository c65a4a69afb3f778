package api

import (
	"net/http"

	"LeaseMatch/internal/config"
	"LeaseMatch/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SyncHandler 联邦资产清单同步接口
type SyncHandler struct {
	syncService *service.InventorySyncService
	logger      *logrus.Logger
}

// NewSyncHandler 创建 SyncHandler
func NewSyncHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *SyncHandler {
	return &SyncHandler{
		syncService: service.NewInventorySyncService(db, logger, cfg),
		logger:      logger,
	}
}

// SyncFederalInventory 触发一次联邦清单全量同步
// POST /sync/federal
func (h *SyncHandler) SyncFederalInventory(c *gin.Context) {
	result, err := h.syncService.Run(c.Request.Context())
	if err != nil {
		h.logger.Errorf("联邦清单同步失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
