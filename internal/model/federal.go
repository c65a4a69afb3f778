package model

import "time"

// 联邦资产持有方式
const (
	OwnershipOwned  = "owned"
	OwnershipLeased = "leased"
)

// FederalProperty 联邦房产参考记录（来源：公开的联邦资产清单，变更节奏为天级）。
// 存在度评分只读；由清单同步任务刷新
type FederalProperty struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	PropertyCode    string     `gorm:"column:property_code;type:varchar(64);uniqueIndex;not null;comment:清单内唯一资产编码"`
	Name            string     `gorm:"column:name;type:varchar(256);comment:资产名称"`
	City            string     `gorm:"column:city;type:varchar(128);comment:城市"`
	State           string     `gorm:"column:state;type:varchar(8);comment:州代码"`
	Latitude        float64    `gorm:"column:latitude;type:numeric(10,6);index:idx_fed_lat;comment:纬度"`
	Longitude       float64    `gorm:"column:longitude;type:numeric(10,6);index:idx_fed_lng;comment:经度"`
	OwnershipType   string     `gorm:"column:ownership_type;type:varchar(16);not null;comment:持有方式：owned/leased"`
	TotalSqft       float64    `gorm:"column:total_sqft;type:numeric(14,2);default:0;comment:总面积（平方英尺）"`
	VacantSqft      float64    `gorm:"column:vacant_sqft;type:numeric(14,2);default:0;comment:空置面积（平方英尺）"`
	LeaseExpiration *time.Time `gorm:"column:lease_expiration;type:timestamp;comment:租约到期日（仅leased）"`
	SyncRunID       string     `gorm:"column:sync_run_id;type:varchar(64);comment:最近一次同步批次ID"`
	CreatedAt       time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

func (FederalProperty) TableName() string { return "federal_properties" }
