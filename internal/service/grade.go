package service

import (
	"math"
	"sort"
)

// GradeFor 固定分数段 → 字母等级
func GradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}

// round2 保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clamp 限制在 [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// staticReferenceDistribution 存在度综合分的静态参考分布（十分位），
// 观测样本不足时兜底使用
var staticReferenceDistribution = []float64{5, 12, 20, 28, 36, 45, 54, 63, 74, 86}

// PercentileAgainst 综合分相对参考分布的百分位（0-99）。
// 分布为空时退化为静态表
func PercentileAgainst(score float64, distribution []float64) int {
	if len(distribution) == 0 {
		distribution = staticReferenceDistribution
	}
	sorted := make([]float64, len(distribution))
	copy(sorted, distribution)
	sort.Float64s(sorted)

	below := 0
	for _, v := range sorted {
		if v <= score {
			below++
		}
	}
	p := int(float64(below) / float64(len(sorted)) * 100)
	if p > 99 {
		p = 99
	}
	return p
}
