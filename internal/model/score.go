package model

// 评分类别名（破格/优劣势条目均挂在具体类别下）
const (
	CategoryLocation   = "location"
	CategorySpace      = "space"
	CategoryBuilding   = "building"
	CategoryTimeline   = "timeline"
	CategoryExperience = "experience"
)

// CategoryScores 五大类分项得分（各自0-100）
type CategoryScores struct {
	Location   float64 `json:"location"`
	Space      float64 `json:"space"`
	Building   float64 `json:"building"`
	Timeline   float64 `json:"timeline"`
	Experience float64 `json:"experience"`
}

// Disqualifier 硬性淘汰条目：命名被违反的强制约束
type Disqualifier struct {
	Category string `json:"category"` // 所属类别
	Reason   string `json:"reason"`   // 违反的约束描述
}

// Insight 面向用户的单条结论（优势/劣势/建议），挂在一个类别下
type Insight struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// MatchScore 房源-招标匹配评分结果。创建后不可变，重评产生新实例
type MatchScore struct {
	PropertyUUID    string         `json:"property_uuid"`
	OpportunityUUID string         `json:"opportunity_uuid"`
	OverallScore    float64        `json:"overall_score"` // 0-100，保留两位小数
	Grade           string         `json:"grade"`         // A+ ~ D
	Qualified       bool           `json:"qualified"`     // 无任何硬性淘汰条目
	Competitive     bool           `json:"competitive"`   // qualified 且 overall ≥ 竞争力阈值
	Breakdown       CategoryScores `json:"breakdown"`
	Strengths       []Insight      `json:"strengths"`
	Weaknesses      []Insight      `json:"weaknesses"`
	Recommendations []Insight      `json:"recommendations"`
	Disqualifiers   []Disqualifier `json:"disqualifiers"`
}

// PresenceSubScores 存在度六项分项得分，各自有固定满分（25/25/20/15/10/5），
// 构造上合计不超过100
type PresenceSubScores struct {
	Density            float64 `json:"density"`             // ≤25
	LeaseActivity      float64 `json:"lease_activity"`      // ≤25
	ExpiringLeases     float64 `json:"expiring_leases"`     // ≤20
	Demand             float64 `json:"demand"`              // ≤15
	VacancyCompetition float64 `json:"vacancy_competition"` // ≤10
	Growth             float64 `json:"growth"`              // ≤5
}

// PresenceScore 某点给定半径内的联邦房地产活跃度评分
type PresenceScore struct {
	Latitude       float64           `json:"latitude"`
	Longitude      float64           `json:"longitude"`
	RadiusMiles    float64           `json:"radius_miles"`
	TotalScore     float64           `json:"total_score"` // 0-100
	SubScores      PresenceSubScores `json:"sub_scores"`
	TotalCount     int               `json:"total_count"`      // 半径内联邦房产总数
	LeasedCount    int               `json:"leased_count"`     // 租赁持有数
	OwnedCount     int               `json:"owned_count"`      // 自有持有数
	TotalSqft      float64           `json:"total_sqft"`       // 总面积
	VacantSqft     float64           `json:"vacant_sqft"`      // 空置面积
	DensityPerSqMi float64           `json:"density_per_sqmi"` // 每平方英里房产数
	Percentile     int               `json:"percentile"`       // 相对参考分布的百分位
}
