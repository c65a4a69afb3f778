package api

import (
	"errors"
	"net/http"
	"strconv"

	"LeaseMatch/internal/config"
	"LeaseMatch/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ScoreHandler 评分接口：房源-招标匹配评分 + 联邦存在度评分
type ScoreHandler struct {
	scoreService *service.ScoreService
	logger       *logrus.Logger
}

// NewScoreHandler 创建 ScoreHandler
func NewScoreHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *ScoreHandler {
	return &ScoreHandler{
		scoreService: service.NewScoreService(db, logger, cfg),
		logger:       logger,
	}
}

// CalculateMatch 匹配评分接口
// GET /api/properties/:property_uuid/match/:opportunity_uuid
func (h *ScoreHandler) CalculateMatch(c *gin.Context) {
	propertyUUID := c.Param("property_uuid")
	opportunityUUID := c.Param("opportunity_uuid")

	score, cached, err := h.scoreService.CalculateMatch(c.Request.Context(), propertyUUID, opportunityUUID)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"property_uuid":    propertyUUID,
			"opportunity_uuid": opportunityUUID,
		}).Error("CalculateMatch failed")
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"score":  score,
		"cached": cached,
	})
}

// GetPresenceScore 联邦存在度评分接口
// GET /api/presence-score?lat=38.8977&lng=-77.0365&radius=10
func (h *ScoreHandler) GetPresenceScore(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required numeric parameters"})
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "10"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "radius must be numeric"})
		return
	}

	score, err := h.scoreService.GetPresenceScore(c.Request.Context(), lat, lng, radius)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"lat": lat, "lng": lng, "radius": radius,
		}).Error("GetPresenceScore failed")
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, score)
}

// statusForError 错误分类 → HTTP状态码。
// InvalidInput/NotFound 不可重试；UpstreamUnavailable 可重试
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
