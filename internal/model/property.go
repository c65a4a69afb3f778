package model

import (
	"time"

	"gorm.io/datatypes"
)

// 楼宇等级序数（用于相邻等级部分得分）
const (
	ClassAPlus = "A+"
	ClassA     = "A"
	ClassB     = "B"
	ClassC     = "C"
)

// ClassOrdinal 楼宇等级 → 序数（A+最高）。未知等级按C处理
func ClassOrdinal(class string) int {
	switch class {
	case ClassAPlus:
		return 3
	case ClassA:
		return 2
	case ClassB:
		return 1
	default:
		return 0
	}
}

// Property 可出租商业地产（挂牌房源）。仅通过挂牌编辑变更，评分引擎只读
type Property struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	PropertyUUID string    `gorm:"column:property_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	BrokerID     uint64    `gorm:"column:broker_id;type:bigint;not null;index;comment:挂牌经纪人ID"`
	Name         string    `gorm:"column:name;type:varchar(256);not null;comment:房源名称"`
	Address      string    `gorm:"column:address;type:varchar(256);comment:街道地址"`
	City         string    `gorm:"column:city;type:varchar(128);not null;comment:城市"`
	State        string    `gorm:"column:state;type:varchar(8);not null;comment:州代码"`
	Zip          string    `gorm:"column:zip;type:varchar(16);comment:邮编"`
	Latitude     float64   `gorm:"column:latitude;type:numeric(10,6);comment:纬度"`
	Longitude    float64   `gorm:"column:longitude;type:numeric(10,6);comment:经度"`

	// 面积属性（平方英尺）
	TotalSqft        float64 `gorm:"column:total_sqft;type:numeric(14,2);default:0;comment:总面积"`
	AvailableSqft    float64 `gorm:"column:available_sqft;type:numeric(14,2);default:0;comment:可租面积"`
	UsableSqft       float64 `gorm:"column:usable_sqft;type:numeric(14,2);default:0;comment:实用面积"`
	MinDivisibleSqft float64 `gorm:"column:min_divisible_sqft;type:numeric(14,2);default:0;comment:最小可分割面积"`
	Contiguous       bool    `gorm:"column:contiguous;type:boolean;default:true;comment:可租面积是否连续"`

	// 楼宇属性
	BuildingClass   string         `gorm:"column:building_class;type:varchar(4);not null;comment:楼宇等级：A+/A/B/C"`
	FloorCount      int            `gorm:"column:floor_count;type:int;default:1;comment:总楼层数"`
	AvailableFloors int            `gorm:"column:available_floors;type:int;default:1;comment:可租楼层数"`
	ADACompliant    bool           `gorm:"column:ada_compliant;type:boolean;default:false;comment:是否符合ADA无障碍标准"`
	TransitAccess   bool           `gorm:"column:transit_access;type:boolean;default:false;comment:是否临近公共交通"`
	ParkingRatio    float64        `gorm:"column:parking_ratio;type:numeric(6,2);default:0;comment:车位比（每千平方英尺车位数）"`
	Features        datatypes.JSON `gorm:"column:features;type:jsonb;comment:设施特性集合（fiber/backup_power/...）"`
	Certifications  datatypes.JSON `gorm:"column:certifications;type:jsonb;comment:认证集合（LEED/EnergyStar/...）"`

	// 时间线属性
	AvailableDate  time.Time `gorm:"column:available_date;type:timestamp;comment:最早可交付日期"`
	MinLeaseMonths int       `gorm:"column:min_lease_months;type:int;default:0;comment:最短租期（月）"`
	MaxLeaseMonths int       `gorm:"column:max_lease_months;type:int;default:0;comment:最长租期（月）"`
	BuildOutWeeks  int       `gorm:"column:build_out_weeks;type:int;default:0;comment:装修改造周期（周）"`

	Status    string    `gorm:"column:status;type:varchar(16);default:active;comment:状态：active/withdrawn"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// BrokerProfile 经纪人过往业绩画像。独立于房源维护，评分引擎只读
type BrokerProfile struct {
	ID                 uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	BrokerID           uint64         `gorm:"column:broker_id;type:bigint;uniqueIndex;not null;comment:经纪人ID"`
	HasGovLease        bool           `gorm:"column:has_gov_lease;type:boolean;default:false;comment:是否有政府租约经验"`
	GovLeaseCount      int            `gorm:"column:gov_lease_count;type:int;default:0;comment:政府租约数量"`
	GSACertified       bool           `gorm:"column:gsa_certified;type:boolean;default:false;comment:是否GSA认证"`
	YearsInBusiness    int            `gorm:"column:years_in_business;type:int;default:0;comment:经营年限"`
	PortfolioSqft      float64        `gorm:"column:portfolio_sqft;type:numeric(16,2);default:0;comment:在管总面积"`
	References         datatypes.JSON `gorm:"column:references_list;type:jsonb;comment:业绩证明人列表"`
	WillingBuildToSuit bool           `gorm:"column:willing_build_to_suit;type:boolean;default:false;comment:是否愿意定制建造"`
	WillingToImprove   bool           `gorm:"column:willing_to_improve;type:boolean;default:false;comment:是否愿意出资改造"`
	CreatedAt          time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

func (Property) TableName() string      { return "properties" }
func (BrokerProfile) TableName() string { return "broker_profiles" }
