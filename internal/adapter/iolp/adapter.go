package iolp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"LeaseMatch/internal/config"
	"LeaseMatch/internal/interfaces"
	"LeaseMatch/internal/model"
	"LeaseMatch/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// Adapter 联邦自有及租赁资产清单（IOLP）数据源适配器。
// 清单API按页返回JSON记录，整页拉完后由同步服务统一入库
type Adapter struct {
	cfg        *config.InventoryConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewInventoryAdapter 创建IOLP适配器
func NewInventoryAdapter(cfg *config.InventoryConfig, logger *logrus.Logger) interfaces.InventoryAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现InventoryAdapter接口 ==========
func (a *Adapter) GetName() string {
	return "IOLP"
}

// inventoryRecord 清单API单条记录
type inventoryRecord struct {
	PropertyCode    string   `json:"property_code"`
	Name            string   `json:"real_property_asset_name"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	OwnedOrLeased   string   `json:"owned_or_leased"` // F=自有 L=租赁
	TotalSqft       float64  `json:"building_rentable_square_feet"`
	VacantSqft      float64  `json:"available_square_feet"`
	LeaseExpiration *string  `json:"lease_expiration_date"` // YYYY-MM-DD
}

// FetchProperties 分页拉取全量清单记录
func (a *Adapter) FetchProperties(ctx context.Context) ([]*model.FederalProperty, error) {
	var all []*model.FederalProperty
	for page := 1; ; page++ {
		records, err := a.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("拉取清单第%d页失败: %w", page, err)
		}
		for _, rec := range records {
			converted := a.convert(rec)
			if converted != nil {
				all = append(all, converted)
			}
		}
		if len(records) < a.cfg.PageSize {
			break
		}
	}
	a.logger.WithField("count", len(all)).Infof("%s清单拉取完成", a.GetName())
	return all, nil
}

// fetchPage 单页拉取，按配置的重试次数重试
func (a *Adapter) fetchPage(ctx context.Context, page int) ([]*inventoryRecord, error) {
	pageURL := fmt.Sprintf("%s/properties?page=%d&page_size=%d", a.cfg.BaseURL, page, a.cfg.PageSize)

	var lastErr error
	for attempt := 0; attempt <= a.cfg.RetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, err
		}
		if a.cfg.AuthToken != "" {
			req.Header.Set("Authorization", "Bearer "+a.cfg.AuthToken)
		}

		resp, err := a.httpClient.Do(req)
		if err != nil {
			lastErr = err
			a.logger.WithError(err).Warnf("清单第%d页请求失败（第%d次尝试）", page, attempt+1)
			continue
		}

		records, decodeErr := decodePage(resp)
		if decodeErr != nil {
			lastErr = decodeErr
			a.logger.WithError(decodeErr).Warnf("清单第%d页解析失败（第%d次尝试）", page, attempt+1)
			continue
		}
		return records, nil
	}
	return nil, lastErr
}

// decodePage 独立函数以便defer立即关闭Body（避免循环内defer泄漏）
func decodePage(resp *http.Response) ([]*inventoryRecord, error) {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("清单API返回状态码%d", resp.StatusCode)
	}
	var records []*inventoryRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// convert 清单记录 → 数据库模型。坐标缺失/非法的记录直接丢弃
// （无法参与半径查询）
func (a *Adapter) convert(rec *inventoryRecord) *model.FederalProperty {
	if rec.PropertyCode == "" || (rec.Latitude == 0 && rec.Longitude == 0) {
		return nil
	}
	ownership := model.OwnershipOwned
	if strings.EqualFold(rec.OwnedOrLeased, "L") || strings.EqualFold(rec.OwnedOrLeased, "leased") {
		ownership = model.OwnershipLeased
	}
	fp := &model.FederalProperty{
		PropertyCode:  rec.PropertyCode,
		Name:          rec.Name,
		City:          rec.City,
		State:         strings.ToUpper(strings.TrimSpace(rec.State)),
		Latitude:      rec.Latitude,
		Longitude:     rec.Longitude,
		OwnershipType: ownership,
		TotalSqft:     rec.TotalSqft,
		VacantSqft:    rec.VacantSqft,
	}
	if rec.LeaseExpiration != nil && *rec.LeaseExpiration != "" {
		if exp, err := time.Parse("2006-01-02", *rec.LeaseExpiration); err == nil {
			fp.LeaseExpiration = &exp
		}
	}
	return fp
}
