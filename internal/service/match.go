package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"LeaseMatch/internal/config"
	"LeaseMatch/internal/model"
	"LeaseMatch/internal/utils/geoutil"
)

// categoryResult 单类别评分中间结果。硬性淘汰条目以列表累积：
// 即使被淘汰也必须返回完整 MatchScore，不抛错误
type categoryResult struct {
	score          float64
	best           string // 该类别贡献最大的子因子描述（用于优势条目）
	weakness       string
	recommendation string
	disqualifiers  []model.Disqualifier
}

// 楼宇类别内部权重
const (
	buildingClassWeight  = 0.40
	buildingAccessWeight = 0.25
	buildingFeatWeight   = 0.20
	buildingCertWeight   = 0.15
)

// 时间线类别内部权重
const (
	timelineFeasibilityWeight = 0.60
	timelineTermWeight        = 0.40
)

// ScoreMatch 计算房源对招标需求的匹配评分。对合法输入永不失败：
// 不满足强制约束时返回 qualified=false + 淘汰条目，而不是错误。
// profile 可为 nil（无经纪人画像时经验类按零信号计）
func ScoreMatch(p *model.Property, req model.OpportunityRequirement, profile *model.BrokerProfile, cfg *config.ScoringConfig) *model.MatchScore {
	results := map[string]categoryResult{
		model.CategoryLocation:   scoreLocation(p, req.Location, cfg),
		model.CategorySpace:      scoreSpace(p, req.Space, cfg),
		model.CategoryBuilding:   scoreBuilding(p, req.Building),
		model.CategoryTimeline:   scoreTimeline(p, req.Timeline, cfg),
		model.CategoryExperience: scoreExperience(profile, cfg),
	}

	breakdown := model.CategoryScores{
		Location:   round2(results[model.CategoryLocation].score),
		Space:      round2(results[model.CategorySpace].score),
		Building:   round2(results[model.CategoryBuilding].score),
		Timeline:   round2(results[model.CategoryTimeline].score),
		Experience: round2(results[model.CategoryExperience].score),
	}

	w := cfg.Weights
	overall := round2(breakdown.Location*w.Location +
		breakdown.Space*w.Space +
		breakdown.Building*w.Building +
		breakdown.Timeline*w.Timeline +
		breakdown.Experience*w.Experience)

	score := &model.MatchScore{
		PropertyUUID:    p.PropertyUUID,
		OverallScore:    overall,
		Grade:           GradeFor(overall),
		Breakdown:       breakdown,
		Strengths:       []model.Insight{},
		Weaknesses:      []model.Insight{},
		Recommendations: []model.Insight{},
		Disqualifiers:   []model.Disqualifier{},
	}

	// 类别顺序固定，保证优劣势列表有序可复现
	for _, cat := range []string{
		model.CategoryLocation, model.CategorySpace, model.CategoryBuilding,
		model.CategoryTimeline, model.CategoryExperience,
	} {
		r := results[cat]
		score.Disqualifiers = append(score.Disqualifiers, r.disqualifiers...)
		if r.score >= cfg.StrongThreshold && r.best != "" {
			score.Strengths = append(score.Strengths, model.Insight{Category: cat, Message: r.best})
		}
		if r.score < cfg.WeakThreshold && r.weakness != "" {
			score.Weaknesses = append(score.Weaknesses, model.Insight{Category: cat, Message: r.weakness})
			score.Recommendations = append(score.Recommendations, model.Insight{Category: cat, Message: r.recommendation})
		}
	}

	score.Qualified = len(score.Disqualifiers) == 0
	score.Competitive = score.Qualified && overall >= cfg.CompetitiveThreshold
	return score
}

// scoreLocation 位置类别：有地理编码中心时按大圆距离从100线性衰减到半径处为0，
// 城市+州精确匹配另加固定加分；无中心时退化为城市/州粗匹配。
// 位置永不硬性淘汰，只影响得分
func scoreLocation(p *model.Property, loc model.LocationRequirement, cfg *config.ScoringConfig) categoryResult {
	cityMatch := loc.City != "" && strings.EqualFold(p.City, loc.City) && strings.EqualFold(p.State, loc.State)

	var r categoryResult
	r.weakness = "property sits outside the requirement's stated search area"
	r.recommendation = "confirm delineated-area flexibility with the contracting officer or emphasize regional accessibility"

	hasCoords := geoutil.ValidCoordinates(p.Latitude, p.Longitude) && (p.Latitude != 0 || p.Longitude != 0)
	if loc.HasCenter() && hasCoords {
		dist := geoutil.HaversineMiles(p.Latitude, p.Longitude, *loc.CenterLatitude, *loc.CenterLongitude)
		base := 0.0
		if loc.RadiusMiles > 0 {
			base = clamp(100*(1-dist/loc.RadiusMiles), 0, 100)
		}
		if cityMatch {
			base = math.Min(100, base+cfg.CityMatchBonus)
		}
		if base <= 0 {
			// 半径之外且城市不匹配：低分但不淘汰
			base = cfg.OutOfRadiusFloor
		}
		r.score = base
		if cityMatch {
			r.best = fmt.Sprintf("located in the target market (%s, %s)", loc.City, loc.State)
		} else {
			r.best = fmt.Sprintf("%.1f miles from the requirement center", dist)
		}
		return r
	}

	// 无地理编码中心：城市/州粗匹配
	switch {
	case cityMatch:
		r.score = 90
		r.best = fmt.Sprintf("located in the target market (%s, %s)", loc.City, loc.State)
	case strings.EqualFold(p.State, loc.State):
		r.score = 55
		r.best = "located in the target state"
	default:
		r.score = 20
	}
	return r
}

// scoreSpace 面积类别：按可租面积与 [min, target, max] 区间的关系打分。
// 区间内越接近目标越高（80-100）；低于min或高于max线性扣分；
// 要求连续而房源不连续时打六折；缺口超过容忍比例时追加硬性淘汰
func scoreSpace(p *model.Property, space model.SpaceRequirement, cfg *config.ScoringConfig) categoryResult {
	avail := p.AvailableSqft
	if space.UsableUnit && p.UsableSqft > 0 {
		avail = p.UsableSqft
	}

	var r categoryResult
	r.weakness = "available space is below the requirement's target"
	r.recommendation = "consider highlighting expansion options or adjacent space that could be combined"

	switch {
	case avail >= space.MinSqft && avail <= space.MaxSqft:
		halfBand := math.Max(space.TargetSqft-space.MinSqft, space.MaxSqft-space.TargetSqft)
		if halfBand <= 0 {
			r.score = 100
		} else {
			r.score = 100 - 20*math.Abs(avail-space.TargetSqft)/halfBand
		}
		r.best = fmt.Sprintf("%.0f sq ft available against a %.0f sq ft target", avail, space.TargetSqft)
	case avail < space.MinSqft:
		if space.MinSqft > 0 {
			r.score = clamp(80*avail/space.MinSqft, 0, 80)
		}
		r.weakness = "available space falls short of the required minimum"
	default: // avail > max
		over := (avail - space.MaxSqft) / space.MaxSqft
		r.score = clamp(80*(1-over), 0, 80)
		r.weakness = "available space exceeds the requirement's maximum"
		r.recommendation = "consider offering a divisible portion sized to the requirement band"
	}

	// 连续性要求未满足：降分
	if space.Contiguous && !p.Contiguous {
		r.score *= 0.6
		if r.weakness == "" {
			r.weakness = "requirement demands contiguous space but the listing is non-contiguous"
		}
	}

	// 缺口超出容忍比例：硬性淘汰
	if space.MinSqft > 0 && avail < space.MinSqft*(1-cfg.SpaceTolerance) {
		r.disqualifiers = append(r.disqualifiers, model.Disqualifier{
			Category: model.CategorySpace,
			Reason: fmt.Sprintf("available space %.0f sq ft is more than %.0f%% below the required minimum of %.0f sq ft",
				avail, cfg.SpaceTolerance*100, space.MinSqft),
		})
	}
	return r
}

// scoreBuilding 楼宇类别：等级匹配、无障碍强制项、设施交集比、认证交集比
// 的加权和。ADA 是唯一硬性淘汰的楼宇属性（法定要求）
func scoreBuilding(p *model.Property, b model.BuildingRequirement) categoryResult {
	var r categoryResult

	// 等级：精确命中100；与任一可接受等级序数相邻60；其余20
	classScore := 20.0
	exact := false
	ord := model.ClassOrdinal(p.BuildingClass)
	for _, c := range b.AcceptableClasses {
		if strings.EqualFold(c, p.BuildingClass) {
			classScore = 100
			exact = true
			break
		}
		if abs := ord - model.ClassOrdinal(c); abs == 1 || abs == -1 {
			classScore = 60
		}
	}

	// 无障碍强制项：每个 required-but-absent 都拉低分数；ADA 缺失额外淘汰
	mandates, satisfied := 0, 0
	if b.RequireADA {
		mandates++
		if p.ADACompliant {
			satisfied++
		} else {
			r.disqualifiers = append(r.disqualifiers, model.Disqualifier{
				Category: model.CategoryBuilding,
				Reason:   "ADA compliance is mandatory for this requirement and the property is not ADA compliant",
			})
		}
	}
	if b.RequireTransit {
		mandates++
		if p.TransitAccess {
			satisfied++
		}
	}
	if b.MinParkingRatio > 0 {
		mandates++
		if p.ParkingRatio >= b.MinParkingRatio {
			satisfied++
		}
	}
	accessScore := 100.0
	if mandates > 0 {
		accessScore = float64(satisfied) / float64(mandates) * 100
	}

	featScore := intersectionRatio(model.DecodeStringSet(p.Features), b.RequiredFeatures) * 100
	certScore := intersectionRatio(model.DecodeStringSet(p.Certifications), b.RequiredCerts) * 100

	r.score = classScore*buildingClassWeight +
		accessScore*buildingAccessWeight +
		featScore*buildingFeatWeight +
		certScore*buildingCertWeight

	// 优势描述取贡献最高的子因子
	switch maxOf4(classScore, accessScore, featScore, certScore) {
	case 0:
		if exact {
			r.best = fmt.Sprintf("building class %s matches the acceptable class set", p.BuildingClass)
		}
	case 1:
		r.best = "all mandated accessibility requirements are met"
	case 2:
		r.best = "all required building features are present"
	default:
		r.best = "all required certifications are held"
	}
	r.weakness = "the building falls short of class, feature or certification requirements"
	r.recommendation = "consider targeted upgrades to close the feature and certification gaps"
	return r
}

// scoreTimeline 时间线类别：交付可行性（可租日+装修周期 vs 入驻日）与
// 租期兼容性的加权和。延迟超出宽限窗口时硬性淘汰
func scoreTimeline(p *model.Property, t model.TimelineRequirement, cfg *config.ScoringConfig) categoryResult {
	var r categoryResult

	readiness := p.AvailableDate.Add(time.Duration(p.BuildOutWeeks) * 7 * 24 * time.Hour)
	lateDays := readiness.Sub(t.OccupancyDate).Hours() / 24

	feasibility := 100.0
	if lateDays > 0 {
		feasibility = clamp(100-lateDays/float64(cfg.TimelineLateScale)*100, 0, 100)
		r.weakness = fmt.Sprintf("delivery would run %.0f days past the required occupancy date", math.Ceil(lateDays))
		r.recommendation = "consider phased occupancy or compressing the build-out schedule"
	}
	if lateDays > float64(cfg.TimelineGraceDays) {
		r.disqualifiers = append(r.disqualifiers, model.Disqualifier{
			Category: model.CategoryTimeline,
			Reason: fmt.Sprintf("property cannot be delivered by the required occupancy date (%.0f days late, grace %d days)",
				math.Ceil(lateDays), cfg.TimelineGraceDays),
		})
	}

	// 租期兼容：房源 [min,max] 租期须覆盖固定期；max=0 视为无上限
	term := 100.0
	switch {
	case p.MaxLeaseMonths > 0 && p.MaxLeaseMonths < t.FirmTermMonths:
		term = clamp(100*float64(p.MaxLeaseMonths)/float64(t.FirmTermMonths), 0, 100)
		if r.weakness == "" {
			r.weakness = "the property's maximum lease term cannot cover the firm term"
			r.recommendation = "explore extension options to cover the full firm term"
		}
	case t.TotalTermMonths > 0 && p.MinLeaseMonths > t.TotalTermMonths:
		excess := float64(p.MinLeaseMonths-t.TotalTermMonths) / float64(t.TotalTermMonths)
		term = clamp(100*(1-excess), 0, 100)
	}

	r.score = feasibility*timelineFeasibilityWeight + term*timelineTermWeight
	if lateDays <= 0 {
		lead := -lateDays
		r.best = fmt.Sprintf("deliverable %.0f days ahead of the required occupancy date", math.Floor(lead))
	}
	return r
}

// scoreExperience 经验类别：政府租约数（封顶+对数刻度）、GSA认证、经营年限
// （封顶线性）、配合意愿加分的归一化和。该类别永不淘汰，只计分
func scoreExperience(profile *model.BrokerProfile, cfg *config.ScoringConfig) categoryResult {
	var r categoryResult
	r.weakness = "the listing broker shows little government leasing track record"
	r.recommendation = "consider pairing with a GSA-experienced co-broker or documenting comparable past performance"
	if profile == nil {
		return r
	}

	count := profile.GovLeaseCount
	if count > cfg.GovLeaseCountCap {
		count = cfg.GovLeaseCountCap
	}
	govPoints := 0.0
	if count > 0 {
		govPoints = 40 * math.Log1p(float64(count)) / math.Log1p(float64(cfg.GovLeaseCountCap))
	}

	years := profile.YearsInBusiness
	if years > cfg.YearsInBusinessCap {
		years = cfg.YearsInBusinessCap
	}
	yearPoints := 25 * float64(years) / float64(cfg.YearsInBusinessCap)

	certPoints := 0.0
	if profile.GSACertified {
		certPoints = 20
	}
	willingPoints := 0.0
	if profile.WillingBuildToSuit {
		willingPoints += 7.5
	}
	if profile.WillingToImprove {
		willingPoints += 7.5
	}

	r.score = clamp(govPoints+yearPoints+certPoints+willingPoints, 0, 100)

	switch {
	case govPoints >= yearPoints && govPoints >= certPoints:
		r.best = fmt.Sprintf("broker has closed %d government leases", profile.GovLeaseCount)
	case certPoints > 0:
		r.best = "broker is GSA certified"
	default:
		r.best = fmt.Sprintf("broker has %d years in business", profile.YearsInBusiness)
	}
	return r
}

// intersectionRatio 必备集合中被满足的比例。无必备项视为满分
func intersectionRatio(have, required []string) float64 {
	if len(required) == 0 {
		return 1
	}
	haveSet := make(map[string]struct{}, len(have))
	for _, h := range have {
		haveSet[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	hit := 0
	for _, req := range required {
		if _, ok := haveSet[strings.ToLower(strings.TrimSpace(req))]; ok {
			hit++
		}
	}
	return float64(hit) / float64(len(required))
}

// maxOf4 四个子分中最大者的下标
func maxOf4(a, b, c, d float64) int {
	best, idx := a, 0
	for i, v := range []float64{b, c, d} {
		if v > best {
			best, idx = v, i+1
		}
	}
	return idx
}
