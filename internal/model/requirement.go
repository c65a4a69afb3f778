package model

import "time"

// OpportunityRequirement 结构化租赁需求。由需求提取器在每次评分时从
// Opportunity 原始记录现算——它是视图，不落库
type OpportunityRequirement struct {
	Location LocationRequirement
	Space    SpaceRequirement
	Building BuildingRequirement
	Timeline TimelineRequirement
}

// LocationRequirement 位置需求
type LocationRequirement struct {
	City             string
	State            string
	Zip              string
	DelineatedAreaID string   // 仅透传，不做多边形判定
	RadiusMiles      float64
	CenterLatitude   *float64 // 地理编码中心；为空时退化为城市/州粗匹配
	CenterLongitude  *float64
}

// HasCenter 是否有地理编码中心
func (l LocationRequirement) HasCenter() bool {
	return l.CenterLatitude != nil && l.CenterLongitude != nil
}

// SpaceRequirement 面积需求（平方英尺）
type SpaceRequirement struct {
	MinSqft    float64
	MaxSqft    float64
	TargetSqft float64
	UsableUnit bool // 按实用面积计（否则按可租面积）
	Contiguous bool // 要求连续空间
	Divisible  bool // 接受分割空间
}

// BuildingRequirement 楼宇需求
type BuildingRequirement struct {
	AcceptableClasses []string
	MinFloors         *int
	MaxFloors         *int
	RequireADA        bool // 法定无障碍要求，唯一会硬性淘汰的楼宇属性
	RequireTransit    bool
	MinParkingRatio   float64
	RequiredFeatures  []string
	RequiredCerts     []string
}

// TimelineRequirement 时间线需求。不变式：OccupancyDate ≥ ResponseDeadline
type TimelineRequirement struct {
	OccupancyDate    time.Time
	FirmTermMonths   int
	TotalTermMonths  int
	ResponseDeadline time.Time
}
