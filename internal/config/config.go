package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`    // 服务器配置
	Postgres  PostgresConfig  `mapstructure:"postgres"`  // PostgreSQL配置
	Scoring   ScoringConfig   `mapstructure:"scoring"`   // 匹配评分配置
	Presence  PresenceConfig  `mapstructure:"presence"`  // 联邦存在度评分配置
	Cache     CacheConfig     `mapstructure:"cache"`     // 评分缓存配置
	Inventory InventoryConfig `mapstructure:"inventory"` // 联邦资产清单同步配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// ScoringConfig 匹配评分配置。所有权重与阈值均可在 config.yaml 覆盖，
// 未配置（零值）时由 ApplyDefaults 回填默认值
type ScoringConfig struct {
	Weights              CategoryWeights `mapstructure:"weights"`               // 五大类权重（和须为1.0）
	CompetitiveThreshold float64         `mapstructure:"competitive_threshold"` // 竞争力阈值（默认70）
	StrongThreshold      float64         `mapstructure:"strong_threshold"`      // 优势阈值（默认80）
	WeakThreshold        float64         `mapstructure:"weak_threshold"`        // 劣势阈值（默认60）
	SpaceTolerance       float64         `mapstructure:"space_tolerance"`       // 面积缺口容忍比例（默认0.10）
	TimelineGraceDays    int             `mapstructure:"timeline_grace_days"`   // 交付延迟宽限天数（默认0）
	TimelineLateScale    int             `mapstructure:"timeline_late_scale"`   // 延迟扣分满刻度天数（默认60）
	CityMatchBonus       float64         `mapstructure:"city_match_bonus"`      // 城市+州精确匹配加分（默认15）
	OutOfRadiusFloor     float64         `mapstructure:"out_of_radius_floor"`   // 超出半径时的保底位置分（默认10）
	DefaultState         string          `mapstructure:"default_state"`         // 默认管辖州（默认DC）
	DefaultRadiusMiles   float64         `mapstructure:"default_radius_miles"`  // 默认搜索半径（英里，默认10）
	OccupancyBufferDays  int             `mapstructure:"occupancy_buffer_days"` // 截止日到入驻日的默认缓冲（默认90天）
	GovLeaseCountCap     int             `mapstructure:"gov_lease_count_cap"`   // 政府租约数量上限（对数刻度，默认25）
	YearsInBusinessCap   int             `mapstructure:"years_in_business_cap"` // 经营年限上限（默认20）
}

// CategoryWeights 五大类权重
type CategoryWeights struct {
	Location   float64 `mapstructure:"location"`   // 位置
	Space      float64 `mapstructure:"space"`      // 面积
	Building   float64 `mapstructure:"building"`   // 楼宇
	Timeline   float64 `mapstructure:"timeline"`   // 时间线
	Experience float64 `mapstructure:"experience"` // 经纪人经验
}

// PresenceConfig 联邦存在度评分配置
type PresenceConfig struct {
	ReferenceDensity      float64       `mapstructure:"reference_density"`       // 参考密度（处/平方英里，默认0.5）
	ReferenceAreaSqft     float64       `mapstructure:"reference_area_sqft"`     // 参考总面积（平方英尺，默认2000000）
	ExpiringHorizonMonths int           `mapstructure:"expiring_horizon_months"` // 租约到期观察窗口（月，默认24）
	GrowthTrendSignal     float64       `mapstructure:"growth_trend_signal"`     // 增长趋势信号[0,1]（默认0.5）
	FetchTimeout          time.Duration `mapstructure:"fetch_timeout"`           // 联邦数据查询超时（默认30s）
	PercentileMinSamples  int           `mapstructure:"percentile_min_samples"`  // 百分位计算的最小样本量（默认20）
}

// CacheConfig 评分缓存配置
type CacheConfig struct {
	MatchTTL    time.Duration `mapstructure:"match_ttl"`    // 匹配评分TTL（默认24h）
	PresenceTTL time.Duration `mapstructure:"presence_ttl"` // 存在度评分TTL（默认24h）
}

// InventoryConfig 联邦资产清单（IOLP）同步配置
type InventoryConfig struct {
	BaseURL    string `mapstructure:"base_url"`    // 清单API基础地址
	Timeout    int    `mapstructure:"timeout"`     // 请求超时（秒）
	RetryCount int    `mapstructure:"retry_count"` // 重试次数
	PageSize   int    `mapstructure:"page_size"`   // 分页大小
	AuthToken  string `mapstructure:"auth_token"`  // 认证Token
	Proxy      string `mapstructure:"proxy"`       // 代理地址
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)

	// 4. 评分相关常量回填默认值（零值即视为未配置）
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("INVENTORY_AUTH_TOKEN"); v != "" {
		cfg.Inventory.AuthToken = v
	}
	if v := os.Getenv("INVENTORY_PROXY"); v != "" {
		cfg.Inventory.Proxy = v
	}
}

// ApplyDefaults 回填评分/缓存/同步相关默认值。权重之和偏离1.0时整组回退默认权重
func ApplyDefaults(cfg *Config) {
	s := &cfg.Scoring
	sum := s.Weights.Location + s.Weights.Space + s.Weights.Building + s.Weights.Timeline + s.Weights.Experience
	if math.Abs(sum-1.0) > 1e-6 {
		s.Weights = CategoryWeights{Location: 0.25, Space: 0.25, Building: 0.20, Timeline: 0.15, Experience: 0.15}
	}
	if s.CompetitiveThreshold <= 0 {
		s.CompetitiveThreshold = 70
	}
	if s.StrongThreshold <= 0 {
		s.StrongThreshold = 80
	}
	if s.WeakThreshold <= 0 {
		s.WeakThreshold = 60
	}
	if s.SpaceTolerance <= 0 {
		s.SpaceTolerance = 0.10
	}
	if s.TimelineLateScale <= 0 {
		s.TimelineLateScale = 60
	}
	if s.CityMatchBonus <= 0 {
		s.CityMatchBonus = 15
	}
	if s.OutOfRadiusFloor <= 0 {
		s.OutOfRadiusFloor = 10
	}
	if s.DefaultState == "" {
		s.DefaultState = "DC"
	}
	if s.DefaultRadiusMiles <= 0 {
		s.DefaultRadiusMiles = 10
	}
	if s.OccupancyBufferDays <= 0 {
		s.OccupancyBufferDays = 90
	}
	if s.GovLeaseCountCap <= 0 {
		s.GovLeaseCountCap = 25
	}
	if s.YearsInBusinessCap <= 0 {
		s.YearsInBusinessCap = 20
	}

	p := &cfg.Presence
	if p.ReferenceDensity <= 0 {
		p.ReferenceDensity = 0.5
	}
	if p.ReferenceAreaSqft <= 0 {
		p.ReferenceAreaSqft = 2_000_000
	}
	if p.ExpiringHorizonMonths <= 0 {
		p.ExpiringHorizonMonths = 24
	}
	if p.GrowthTrendSignal <= 0 {
		p.GrowthTrendSignal = 0.5
	}
	if p.FetchTimeout <= 0 {
		p.FetchTimeout = 30 * time.Second
	}
	if p.PercentileMinSamples <= 0 {
		p.PercentileMinSamples = 20
	}

	c := &cfg.Cache
	if c.MatchTTL <= 0 {
		c.MatchTTL = 24 * time.Hour
	}
	if c.PresenceTTL <= 0 {
		c.PresenceTTL = 24 * time.Hour
	}

	i := &cfg.Inventory
	if i.Timeout <= 0 {
		i.Timeout = 30
	}
	if i.PageSize <= 0 {
		i.PageSize = 500
	}
}

// GetGORMConfig 获取GORM配置（可扩展：添加日志、命名策略等）
func (m *PostgresConfig) GetGORMConfig() gorm.Config {
	return gorm.Config{}
}
