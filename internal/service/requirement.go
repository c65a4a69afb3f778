package service

import (
	"strings"
	"time"

	"LeaseMatch/internal/config"
	"LeaseMatch/internal/model"
)

// classTypicalBand 楼宇等级典型面积区间（平方英尺）。
// 招标文档未解析出明确面积时按此回填
type classTypicalBand struct {
	min, target, max float64
}

var classTypicalBands = map[string]classTypicalBand{
	model.ClassAPlus: {50_000, 100_000, 250_000},
	model.ClassA:     {30_000, 75_000, 200_000},
	model.ClassB:     {10_000, 40_000, 120_000},
	model.ClassC:     {5_000, 15_000, 60_000},
}

// ExtractRequirement 把招标原始记录归一化为结构化租赁需求。
// 纯函数、无I/O、不失败：上游记录常常只被部分机器抽取，缺失字段
// 一律按文档化默认值补齐而不是报错。
// 不变式：入驻日期 ≥ 投标截止日期（入驻不可能早于产生它的截止日）
func ExtractRequirement(opp *model.Opportunity, cfg *config.ScoringConfig) model.OpportunityRequirement {
	var req model.OpportunityRequirement

	// 位置：州缺失回退默认管辖州，半径缺失回退默认半径
	req.Location = model.LocationRequirement{
		City:            strings.TrimSpace(opp.City),
		State:           strings.ToUpper(strings.TrimSpace(opp.State)),
		Zip:             strings.TrimSpace(opp.Zip),
		RadiusMiles:     opp.SearchRadiusMiles,
		CenterLatitude:  opp.CenterLatitude,
		CenterLongitude: opp.CenterLongitude,
	}
	if opp.DelineatedAreaID != nil {
		req.Location.DelineatedAreaID = *opp.DelineatedAreaID
	}
	if req.Location.State == "" {
		req.Location.State = cfg.DefaultState
	}
	if req.Location.RadiusMiles <= 0 {
		req.Location.RadiusMiles = cfg.DefaultRadiusMiles
	}

	// 楼宇：可接受等级缺失时默认 {A+, A, B}
	classes := model.DecodeStringSet(opp.AcceptableClasses)
	if len(classes) == 0 {
		classes = []string{model.ClassAPlus, model.ClassA, model.ClassB}
	}
	req.Building = model.BuildingRequirement{
		AcceptableClasses: classes,
		MinFloors:         opp.MinFloors,
		MaxFloors:         opp.MaxFloors,
		RequireADA:        opp.RequireADA,
		RequireTransit:    opp.RequireTransit,
		MinParkingRatio:   opp.MinParkingRatio,
		RequiredFeatures:  model.DecodeStringSet(opp.RequiredFeatures),
		RequiredCerts:     model.DecodeStringSet(opp.RequiredCerts),
	}

	// 面积：未解析出明确数字时回填首个可接受等级的典型区间
	req.Space = model.SpaceRequirement{
		MinSqft:    opp.MinSqft,
		MaxSqft:    opp.MaxSqft,
		TargetSqft: opp.TargetSqft,
		UsableUnit: opp.UsableUnit,
		Contiguous: opp.Contiguous,
		Divisible:  opp.Divisible,
	}
	if req.Space.MinSqft <= 0 && req.Space.MaxSqft <= 0 {
		band, ok := classTypicalBands[classes[0]]
		if !ok {
			band = classTypicalBands[model.ClassB]
		}
		req.Space.MinSqft = band.min
		req.Space.TargetSqft = band.target
		req.Space.MaxSqft = band.max
	}
	if req.Space.MaxSqft < req.Space.MinSqft {
		req.Space.MaxSqft = req.Space.MinSqft
	}
	if req.Space.TargetSqft < req.Space.MinSqft || req.Space.TargetSqft > req.Space.MaxSqft {
		req.Space.TargetSqft = (req.Space.MinSqft + req.Space.MaxSqft) / 2
	}

	// 时间线：截止日缺失按"现在"，入驻日缺失按截止日+固定缓冲
	deadline := time.Now()
	if opp.ResponseDeadline != nil {
		deadline = *opp.ResponseDeadline
	}
	buffer := time.Duration(cfg.OccupancyBufferDays) * 24 * time.Hour
	occupancy := deadline.Add(buffer)
	if opp.OccupancyDate != nil && !opp.OccupancyDate.Before(deadline) {
		occupancy = *opp.OccupancyDate
	}
	req.Timeline = model.TimelineRequirement{
		OccupancyDate:    occupancy,
		FirmTermMonths:   opp.FirmTermMonths,
		TotalTermMonths:  opp.TotalTermMonths,
		ResponseDeadline: deadline,
	}
	if req.Timeline.FirmTermMonths <= 0 {
		req.Timeline.FirmTermMonths = 60 // 联邦租约常见的5年固定期
	}
	if req.Timeline.TotalTermMonths < req.Timeline.FirmTermMonths {
		req.Timeline.TotalTermMonths = req.Timeline.FirmTermMonths
	}

	return req
}
