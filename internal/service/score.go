package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"LeaseMatch/internal/config"
	"LeaseMatch/internal/model"
	"LeaseMatch/internal/repository"
	"LeaseMatch/internal/utils/geoutil"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ScoreService 评分引擎对外门面：缓存查找 → 未命中现算 → 带TTL回写。
// 缓存是建议性的：任何缓存读写失败都只记日志，绝不阻断评分结果返回
type ScoreService struct {
	propertyRepo repository.PropertyRepository
	oppRepo      repository.OpportunityRepository
	federalRepo  repository.FederalRepository
	cacheRepo    repository.ScoreCacheRepository
	logger       *logrus.Logger
	cfg          *config.Config
}

// NewScoreService 创建 ScoreService（由 db 构建默认仓储）
func NewScoreService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *ScoreService {
	return NewScoreServiceWithDeps(
		repository.NewPropertyRepository(db),
		repository.NewOpportunityRepository(db),
		repository.NewFederalRepository(db),
		repository.NewScoreCacheRepository(db),
		logger, cfg,
	)
}

// NewScoreServiceWithDeps 注入仓储创建 ScoreService（测试用）
func NewScoreServiceWithDeps(
	propertyRepo repository.PropertyRepository,
	oppRepo repository.OpportunityRepository,
	federalRepo repository.FederalRepository,
	cacheRepo repository.ScoreCacheRepository,
	logger *logrus.Logger,
	cfg *config.Config,
) *ScoreService {
	return &ScoreService{
		propertyRepo: propertyRepo,
		oppRepo:      oppRepo,
		federalRepo:  federalRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cfg:          cfg,
	}
}

// MatchCacheKey 匹配评分缓存键
func MatchCacheKey(propertyUUID, opportunityUUID string) string {
	return fmt.Sprintf("match:%s:%s", propertyUUID, opportunityUUID)
}

// PresenceCacheKey 存在度评分缓存键。经纬度四位小数（约11米）、半径一位小数，
// 让邻近查询落到同一行
func PresenceCacheKey(lat, lng, radiusMiles float64) string {
	return fmt.Sprintf("presence:%.4f:%.4f:%.1f", lat, lng, radiusMiles)
}

// CalculateMatch 计算房源对招标的匹配评分。返回 (评分, 是否命中缓存, 错误)。
// 标识符解析失败返回 ErrNotFound；输入合法且记录存在时必有评分返回
// （可能是完全被淘汰的评分）
func (s *ScoreService) CalculateMatch(ctx context.Context, propertyUUID, opportunityUUID string) (*model.MatchScore, bool, error) {
	if propertyUUID == "" || opportunityUUID == "" {
		return nil, false, fmt.Errorf("%w: property and opportunity identifiers are required", ErrInvalidInput)
	}

	cacheKey := MatchCacheKey(propertyUUID, opportunityUUID)
	if cached := s.lookupCache(ctx, cacheKey); cached != nil {
		var score model.MatchScore
		if err := json.Unmarshal(cached.Payload, &score); err != nil {
			s.logger.WithError(err).WithField("cache_key", cacheKey).Warn("缓存载荷反序列化失败，按miss处理")
		} else {
			return &score, true, nil
		}
	}

	property, err := s.propertyRepo.GetByUUID(ctx, propertyUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("%w: property %s", ErrNotFound, propertyUUID)
		}
		return nil, false, fmt.Errorf("查询房源失败: %w", err)
	}
	opp, err := s.oppRepo.GetByUUID(ctx, opportunityUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("%w: opportunity %s", ErrNotFound, opportunityUUID)
		}
		return nil, false, fmt.Errorf("查询招标记录失败: %w", err)
	}

	// 经纪人画像独立来源，可缺失：缺失按零信号计，不报错
	profile, err := s.propertyRepo.GetBrokerProfile(ctx, property.BrokerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.WithError(err).WithField("broker_id", property.BrokerID).Warn("查询经纪人画像失败，按零信号计分")
		profile = nil
	}

	req := ExtractRequirement(opp, &s.cfg.Scoring)
	score := ScoreMatch(property, req, profile, &s.cfg.Scoring)
	score.OpportunityUUID = opp.OpportunityUUID

	s.storeCache(ctx, cacheKey, model.ScoreTypeMatch, score.OverallScore, score.Grade,
		score.Qualified, score.Competitive, score, s.cfg.Cache.MatchTTL)
	return score, false, nil
}

// GetPresenceScore 计算某点给定半径内的联邦房地产活跃度评分。
// 坐标越界或半径≤0返回 ErrInvalidInput；数据源超时/出错返回
// ErrUpstreamUnavailable（可重试）；半径内无数据返回全零评分而不是错误
func (s *ScoreService) GetPresenceScore(ctx context.Context, lat, lng, radiusMiles float64) (*model.PresenceScore, error) {
	if !geoutil.ValidCoordinates(lat, lng) {
		return nil, fmt.Errorf("%w: coordinates (%.4f, %.4f) out of range", ErrInvalidInput, lat, lng)
	}
	if radiusMiles <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %.2f", ErrInvalidInput, radiusMiles)
	}

	cacheKey := PresenceCacheKey(lat, lng, radiusMiles)
	if cached := s.lookupCache(ctx, cacheKey); cached != nil {
		var score model.PresenceScore
		if err := json.Unmarshal(cached.Payload, &score); err != nil {
			s.logger.WithError(err).WithField("cache_key", cacheKey).Warn("缓存载荷反序列化失败，按miss处理")
		} else {
			return &score, nil
		}
	}

	// 数据源查询必须有界：调用方约30秒后会回退占位结果，超时按可重试错误上抛
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.Presence.FetchTimeout)
	defer cancel()

	box := geoutil.BoxAround(lat, lng, radiusMiles)
	candidates, err := s.federalRepo.ListInBox(fetchCtx, box)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || fetchCtx.Err() != nil {
			return nil, fmt.Errorf("%w: federal inventory query timed out after %s", ErrUpstreamUnavailable, s.cfg.Presence.FetchTimeout)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	// 包围盒只是粗筛，按大圆距离精筛
	records := make([]*model.FederalProperty, 0, len(candidates))
	for _, rec := range candidates {
		if geoutil.HaversineMiles(lat, lng, rec.Latitude, rec.Longitude) <= radiusMiles {
			records = append(records, rec)
		}
	}

	score := computePresence(lat, lng, radiusMiles, records, time.Now(), &s.cfg.Presence)
	score.Percentile = s.presencePercentile(ctx, score.TotalScore)

	s.storeCache(ctx, cacheKey, model.ScoreTypePresence, score.TotalScore, GradeFor(score.TotalScore),
		false, false, score, s.cfg.Cache.PresenceTTL)
	return score, nil
}

// presencePercentile 综合分相对参考分布的百分位。优先用最近观测到的
// 综合分；样本不足或查询失败时退化为静态分布
func (s *ScoreService) presencePercentile(ctx context.Context, totalScore float64) int {
	observed, err := s.cacheRepo.ListRecentScores(ctx, model.ScoreTypePresence, 200)
	if err != nil {
		s.logger.WithError(err).Warn("读取存在度参考分布失败，使用静态分布")
		observed = nil
	}
	if len(observed) < s.cfg.Presence.PercentileMinSamples {
		observed = nil
	}
	return PercentileAgainst(totalScore, observed)
}

// lookupCache 缓存读取。任何错误都按miss处理并记日志——缓存只是性能优化
func (s *ScoreService) lookupCache(ctx context.Context, cacheKey string) *model.ScoreCache {
	entry, err := s.cacheRepo.Get(ctx, cacheKey)
	if err != nil {
		s.logger.WithError(err).WithField("cache_key", cacheKey).Warn("缓存读取失败，走现算")
		return nil
	}
	return entry
}

// storeCache 缓存写入（fire-and-forget）。失败只记日志、吞掉错误，
// 绝不影响已算出的评分返回
func (s *ScoreService) storeCache(ctx context.Context, cacheKey, scoreType string, score float64, grade string, qualified, competitive bool, payload any, ttl time.Duration) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.WithError(err).WithField("cache_key", cacheKey).Warn("评分结果序列化失败，跳过缓存")
		return
	}
	now := time.Now()
	entry := &model.ScoreCache{
		CacheKey:    cacheKey,
		ScoreType:   scoreType,
		Payload:     raw,
		Grade:       grade,
		Qualified:   qualified,
		Competitive: competitive,
		Score:       score,
		ComputedAt:  now,
		ExpiresAt:   now.Add(ttl),
	}
	if err := s.cacheRepo.Put(ctx, entry); err != nil {
		s.logger.WithError(err).WithField("cache_key", cacheKey).Warn("缓存写入失败（不影响评分返回）")
	}
}
