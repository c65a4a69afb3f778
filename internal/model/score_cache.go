package model

import (
	"time"

	"gorm.io/datatypes"
)

// 缓存评分类型
const (
	ScoreTypeMatch    = "match"
	ScoreTypePresence = "presence"
)

// ScoreCache 评分缓存行。仅靠 expires_at 过期淘汰，上游数据变更不做主动失效
// （房源与联邦清单均为天级变化，接受时效换性能）。写失败不影响读路径
type ScoreCache struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	CacheKey    string         `gorm:"column:cache_key;type:varchar(128);uniqueIndex;not null;comment:缓存键"`
	ScoreType   string         `gorm:"column:score_type;type:varchar(16);not null;index;comment:评分类型：match/presence"`
	Payload     datatypes.JSON `gorm:"column:payload;type:jsonb;not null;comment:序列化评分结果"`
	Grade       string         `gorm:"column:grade;type:varchar(4);comment:字母等级（便于人工查询）"`
	Qualified   bool           `gorm:"column:qualified;type:boolean;default:false;comment:是否合格（仅match）"`
	Competitive bool           `gorm:"column:competitive;type:boolean;default:false;comment:是否有竞争力（仅match）"`
	Score       float64        `gorm:"column:score;type:numeric(6,2);default:0;comment:综合得分"`
	ComputedAt  time.Time      `gorm:"column:computed_at;type:timestamp;not null;comment:计算时间"`
	ExpiresAt   time.Time      `gorm:"column:expires_at;type:timestamp;not null;index;comment:过期时间"`
}

func (ScoreCache) TableName() string { return "score_cache" }
