package service

import (
	"testing"
	"time"

	"LeaseMatch/internal/config"
	"LeaseMatch/internal/model"
)

func testPresenceConfig() *config.PresenceConfig {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return &cfg.Presence
}

func fedProp(code, ownership string, total, vacant float64, expiration *time.Time) *model.FederalProperty {
	return &model.FederalProperty{
		PropertyCode:    code,
		Latitude:        38.9,
		Longitude:       -77.03,
		OwnershipType:   ownership,
		TotalSqft:       total,
		VacantSqft:      vacant,
		LeaseExpiration: expiration,
	}
}

func TestComputePresenceEmptySet(t *testing.T) {
	score := computePresence(38.9, -77.03, 10, nil, time.Now(), testPresenceConfig())

	if score.TotalScore != 0 {
		t.Errorf("empty set composite = %.2f, want 0", score.TotalScore)
	}
	sub := score.SubScores
	for name, v := range map[string]float64{
		"density": sub.Density, "lease_activity": sub.LeaseActivity,
		"expiring": sub.ExpiringLeases, "demand": sub.Demand,
		"vacancy": sub.VacancyCompetition, "growth": sub.Growth,
	} {
		if v != 0 {
			t.Errorf("empty set sub-score %s = %.2f, want 0", name, v)
		}
	}
	if score.TotalCount != 0 {
		t.Errorf("total count = %d, want 0", score.TotalCount)
	}
}

func TestComputePresenceSubScoreMaxima(t *testing.T) {
	now := time.Now()
	soon := now.AddDate(0, 6, 0)
	// 极端密集的集合：所有封顶都应生效
	var records []*model.FederalProperty
	for i := 0; i < 500; i++ {
		records = append(records, fedProp("X", model.OwnershipLeased, 100_000, 0, &soon))
	}
	score := computePresence(38.9, -77.03, 1, records, now, testPresenceConfig())

	sub := score.SubScores
	checks := []struct {
		name string
		got  float64
		max  float64
	}{
		{"density", sub.Density, 25},
		{"lease_activity", sub.LeaseActivity, 25},
		{"expiring_leases", sub.ExpiringLeases, 20},
		{"demand", sub.Demand, 15},
		{"vacancy_competition", sub.VacancyCompetition, 10},
		{"growth", sub.Growth, 5},
	}
	for _, c := range checks {
		if c.got < 0 || c.got > c.max {
			t.Errorf("%s = %.2f, want within [0, %.0f]", c.name, c.got, c.max)
		}
	}
	if score.TotalScore > 100 {
		t.Errorf("composite = %.2f, want <= 100", score.TotalScore)
	}
}

func TestComputePresenceCounts(t *testing.T) {
	now := time.Now()
	within := now.AddDate(0, 12, 0)
	beyond := now.AddDate(0, 48, 0) // 超出24个月观察窗口
	past := now.AddDate(0, -2, 0)   // 已到期不计
	records := []*model.FederalProperty{
		fedProp("A", model.OwnershipLeased, 200_000, 20_000, &within),
		fedProp("B", model.OwnershipLeased, 150_000, 0, &beyond),
		fedProp("C", model.OwnershipOwned, 300_000, 60_000, nil),
		fedProp("D", model.OwnershipLeased, 100_000, 0, &past),
	}
	score := computePresence(38.9, -77.03, 10, records, now, testPresenceConfig())

	if score.TotalCount != 4 || score.LeasedCount != 3 || score.OwnedCount != 1 {
		t.Errorf("counts = total %d / leased %d / owned %d, want 4/3/1",
			score.TotalCount, score.LeasedCount, score.OwnedCount)
	}
	if score.TotalSqft != 750_000 || score.VacantSqft != 80_000 {
		t.Errorf("sqft = total %.0f / vacant %.0f, want 750000/80000", score.TotalSqft, score.VacantSqft)
	}
	// 仅A在观察窗口内到期：expiring = 1/4 * 20 = 5
	if score.SubScores.ExpiringLeases != 5 {
		t.Errorf("expiring sub-score = %.2f, want 5", score.SubScores.ExpiringLeases)
	}
	// lease activity = 3/4 * 25 = 18.75
	if score.SubScores.LeaseActivity != 18.75 {
		t.Errorf("lease activity = %.2f, want 18.75", score.SubScores.LeaseActivity)
	}
}

func TestComputePresenceVacancyFloor(t *testing.T) {
	// 空置率80%：10 - 0.8*10*2 = -6 → 下限0
	records := []*model.FederalProperty{
		fedProp("A", model.OwnershipOwned, 100_000, 80_000, nil),
	}
	score := computePresence(38.9, -77.03, 10, records, time.Now(), testPresenceConfig())
	if score.SubScores.VacancyCompetition != 0 {
		t.Errorf("vacancy sub-score = %.2f, want floored at 0", score.SubScores.VacancyCompetition)
	}
}

func TestComputePresenceGrowthFromTrendSignal(t *testing.T) {
	cfg := testPresenceConfig()
	cfg.GrowthTrendSignal = 1.2 // 配置越界也要封顶
	records := []*model.FederalProperty{fedProp("A", model.OwnershipOwned, 1000, 0, nil)}
	score := computePresence(38.9, -77.03, 10, records, time.Now(), cfg)
	if score.SubScores.Growth != 5 {
		t.Errorf("growth = %.2f, want capped at 5", score.SubScores.Growth)
	}
}
