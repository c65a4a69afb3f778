package api

import (
	"errors"
	"net/http"
	"strconv"

	"LeaseMatch/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PropertyHandler 提供给前端的房源/招标查询接口
type PropertyHandler struct {
	propertyRepo repository.PropertyRepository
	oppRepo      repository.OpportunityRepository
	logger       *logrus.Logger
}

// NewPropertyHandler 创建 PropertyHandler
func NewPropertyHandler(db *gorm.DB, logger *logrus.Logger) *PropertyHandler {
	return &PropertyHandler{
		propertyRepo: repository.NewPropertyRepository(db),
		oppRepo:      repository.NewOpportunityRepository(db),
		logger:       logger,
	}
}

// ListProperties 房源列表接口
// GET /api/properties?city=Washington&state=DC&class=A&status=active&page=1&page_size=20
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.PropertyFilter{
		City:   c.Query("city"),
		State:  c.Query("state"),
		Class:  c.Query("class"),
		Status: c.DefaultQuery("status", "active"),
	}

	properties, total, err := h.propertyRepo.ListProperties(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListProperties failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":      page,
		"page_size": pageSize,
		"total":     total,
		"items":     properties,
	})
}

// GetProperty 房源详情接口
// GET /api/properties/:property_uuid
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	propertyUUID := c.Param("property_uuid")
	if propertyUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_uuid is required"})
		return
	}

	property, err := h.propertyRepo.GetByUUID(c.Request.Context(), propertyUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		h.logger.WithError(err).Error("GetProperty failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, property)
}

// ListOpportunities 招标列表接口
// GET /api/opportunities?state=DC&status=open&page=1&page_size=20
func (h *PropertyHandler) ListOpportunities(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.OpportunityFilter{
		State:  c.Query("state"),
		Agency: c.Query("agency"),
		Status: c.DefaultQuery("status", "open"),
	}

	opportunities, total, err := h.oppRepo.ListOpportunities(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListOpportunities failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":      page,
		"page_size": pageSize,
		"total":     total,
		"items":     opportunities,
	})
}

// GetOpportunity 招标详情接口
// GET /api/opportunities/:opportunity_uuid
func (h *PropertyHandler) GetOpportunity(c *gin.Context) {
	opportunityUUID := c.Param("opportunity_uuid")
	if opportunityUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "opportunity_uuid is required"})
		return
	}

	opp, err := h.oppRepo.GetByUUID(c.Request.Context(), opportunityUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "opportunity not found"})
			return
		}
		h.logger.WithError(err).Error("GetOpportunity failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, opp)
}
