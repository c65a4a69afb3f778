package service

import (
	"time"

	"LeaseMatch/internal/config"
	"LeaseMatch/internal/model"
	"LeaseMatch/internal/utils/geoutil"
)

// 存在度六项分项的固定满分，构造上合计≤100
const (
	maxDensityPoints  = 25.0
	maxLeasePoints    = 25.0
	maxExpiringPoints = 20.0
	maxDemandPoints   = 15.0
	maxVacancyPoints  = 10.0
	maxGrowthPoints   = 5.0
)

// computePresence 半径内联邦房产集合 → 存在度评分（不含百分位，由调用方
// 结合参考分布回填）。空集合得到全零结果而不是错误
func computePresence(lat, lng, radiusMiles float64, records []*model.FederalProperty, now time.Time, cfg *config.PresenceConfig) *model.PresenceScore {
	score := &model.PresenceScore{
		Latitude:    lat,
		Longitude:   lng,
		RadiusMiles: radiusMiles,
	}
	if len(records) == 0 {
		return score
	}

	horizon := now.AddDate(0, cfg.ExpiringHorizonMonths, 0)
	expiring := 0
	for _, rec := range records {
		score.TotalCount++
		score.TotalSqft += rec.TotalSqft
		score.VacantSqft += rec.VacantSqft
		switch rec.OwnershipType {
		case model.OwnershipLeased:
			score.LeasedCount++
		case model.OwnershipOwned:
			score.OwnedCount++
		}
		if rec.LeaseExpiration != nil && rec.LeaseExpiration.After(now) && rec.LeaseExpiration.Before(horizon) {
			expiring++
		}
	}

	total := float64(score.TotalCount)
	areaSqMi := geoutil.CircleAreaSqMiles(radiusMiles)
	score.DensityPerSqMi = total / areaSqMi

	sub := &score.SubScores

	// 密度：相对参考密度线性，封顶
	sub.Density = clamp(score.DensityPerSqMi/cfg.ReferenceDensity*maxDensityPoints, 0, maxDensityPoints)

	// 租赁活跃度：租赁持有占比
	sub.LeaseActivity = float64(score.LeasedCount) / total * maxLeasePoints

	// 即将到期租约：观察窗口内到期占比，封顶
	sub.ExpiringLeases = clamp(float64(expiring)/total*maxExpiringPoints, 0, maxExpiringPoints)

	// 需求：总面积相对参考面积，封顶
	sub.Demand = clamp(score.TotalSqft/cfg.ReferenceAreaSqft*maxDemandPoints, 0, maxDemandPoints)

	// 空置竞争：空置率越低越好，双倍扣减、下限0
	if score.TotalSqft > 0 {
		vacantRatio := score.VacantSqft / score.TotalSqft
		sub.VacancyCompetition = clamp(maxVacancyPoints-vacantRatio*maxVacancyPoints*2, 0, maxVacancyPoints)
	}

	// 增长：配置的趋势信号换算的剩余分，下限0
	sub.Growth = clamp(cfg.GrowthTrendSignal*maxGrowthPoints, 0, maxGrowthPoints)

	score.TotalScore = round2(clamp(
		sub.Density+sub.LeaseActivity+sub.ExpiringLeases+sub.Demand+sub.VacancyCompetition+sub.Growth,
		0, 100))
	sub.Density = round2(sub.Density)
	sub.LeaseActivity = round2(sub.LeaseActivity)
	sub.ExpiringLeases = round2(sub.ExpiringLeases)
	sub.Demand = round2(sub.Demand)
	sub.VacancyCompetition = round2(sub.VacancyCompetition)
	sub.Growth = round2(sub.Growth)
	score.DensityPerSqMi = round2(score.DensityPerSqMi)
	return score
}
