package model

import (
	"time"

	"gorm.io/datatypes"
)

// Opportunity 政府租赁招标原始记录。字段多为机器抽取结果，允许大量缺失——
// 缺失字段由需求提取器按文档化默认值补齐，而不是报错
type Opportunity struct {
	ID                 uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	OpportunityUUID    string     `gorm:"column:opportunity_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	SolicitationNumber string     `gorm:"column:solicitation_number;type:varchar(64);comment:招标编号"`
	Title              string     `gorm:"column:title;type:varchar(256);not null;comment:招标标题"`
	AgencyName         string     `gorm:"column:agency_name;type:varchar(128);comment:发标机构"`

	// 位置需求
	City              string   `gorm:"column:city;type:varchar(128);comment:目标城市"`
	State             string   `gorm:"column:state;type:varchar(8);comment:目标州"`
	Zip               string   `gorm:"column:zip;type:varchar(16);comment:目标邮编"`
	DelineatedAreaID  *string  `gorm:"column:delineated_area_id;type:varchar(64);comment:划定区域标识（仅记录，不做多边形判定）"`
	CenterLatitude    *float64 `gorm:"column:center_latitude;type:numeric(10,6);comment:地理编码中心纬度"`
	CenterLongitude   *float64 `gorm:"column:center_longitude;type:numeric(10,6);comment:地理编码中心经度"`
	SearchRadiusMiles float64  `gorm:"column:search_radius_miles;type:numeric(8,2);default:0;comment:搜索半径（英里）"`

	// 面积需求（平方英尺）
	MinSqft     float64 `gorm:"column:min_sqft;type:numeric(14,2);default:0;comment:最小面积"`
	MaxSqft     float64 `gorm:"column:max_sqft;type:numeric(14,2);default:0;comment:最大面积"`
	TargetSqft  float64 `gorm:"column:target_sqft;type:numeric(14,2);default:0;comment:目标面积"`
	UsableUnit  bool    `gorm:"column:usable_unit;type:boolean;default:false;comment:按实用面积计（否则按可租面积）"`
	Contiguous  bool    `gorm:"column:contiguous;type:boolean;default:false;comment:是否要求连续空间"`
	Divisible   bool    `gorm:"column:divisible;type:boolean;default:false;comment:是否接受分割空间"`

	// 楼宇需求
	AcceptableClasses datatypes.JSON `gorm:"column:acceptable_classes;type:jsonb;comment:可接受楼宇等级集合"`
	MinFloors         *int           `gorm:"column:min_floors;type:int;comment:最少楼层"`
	MaxFloors         *int           `gorm:"column:max_floors;type:int;comment:最多楼层"`
	RequireADA        bool           `gorm:"column:require_ada;type:boolean;default:true;comment:是否强制ADA无障碍（法定要求）"`
	RequireTransit    bool           `gorm:"column:require_transit;type:boolean;default:false;comment:是否强制临近公共交通"`
	MinParkingRatio   float64        `gorm:"column:min_parking_ratio;type:numeric(6,2);default:0;comment:最低车位比"`
	RequiredFeatures  datatypes.JSON `gorm:"column:required_features;type:jsonb;comment:必备设施集合"`
	RequiredCerts     datatypes.JSON `gorm:"column:required_certs;type:jsonb;comment:必备认证集合"`

	// 时间线需求
	ResponseDeadline *time.Time `gorm:"column:response_deadline;type:timestamp;comment:投标截止日期"`
	OccupancyDate    *time.Time `gorm:"column:occupancy_date;type:timestamp;comment:要求入驻日期（缺失时=截止日+缓冲）"`
	FirmTermMonths   int        `gorm:"column:firm_term_months;type:int;default:0;comment:固定租期（月）"`
	TotalTermMonths  int        `gorm:"column:total_term_months;type:int;default:0;comment:含续租权总租期（月）"`

	Status    string    `gorm:"column:status;type:varchar(16);default:open;comment:状态：open/closed/awarded"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

func (Opportunity) TableName() string { return "opportunities" }
