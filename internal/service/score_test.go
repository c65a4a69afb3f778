package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"LeaseMatch/internal/config"
	"LeaseMatch/internal/model"
	"LeaseMatch/internal/repository"
	"LeaseMatch/internal/utils/geoutil"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

// newServiceTestDB 每个测试独立的内存库
func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("打开内存库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Property{}, &model.BrokerProfile{}, &model.Opportunity{},
		&model.FederalProperty{}, &model.ScoreCache{},
	); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	return db
}

func seedMatchRecords(t *testing.T, db *gorm.DB) {
	t.Helper()
	p := baseProperty()
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed property failed: %v", err)
	}
	bp := baseProfile()
	if err := db.Create(bp).Error; err != nil {
		t.Fatalf("seed broker profile failed: %v", err)
	}
	deadline := time.Now().Add(30 * 24 * time.Hour)
	occupancy := time.Now().Add(120 * 24 * time.Hour)
	opp := &model.Opportunity{
		OpportunityUUID:   "opp-001",
		Title:             "Office space, Washington DC",
		City:              "Washington",
		State:             "DC",
		CenterLatitude:    ptrFloat(38.9072),
		CenterLongitude:   ptrFloat(-77.0369),
		SearchRadiusMiles: 10,
		MinSqft:           40_000,
		MaxSqft:           120_000,
		TargetSqft:        50_000,
		AcceptableClasses: model.EncodeStringSet([]string{model.ClassA, model.ClassAPlus, model.ClassB}),
		RequireADA:        true,
		ResponseDeadline:  &deadline,
		OccupancyDate:     &occupancy,
		FirmTermMonths:    60,
		TotalTermMonths:   120,
	}
	if err := db.Create(opp).Error; err != nil {
		t.Fatalf("seed opportunity failed: %v", err)
	}
}

func TestCalculateMatchIdempotentWithCache(t *testing.T) {
	db := newServiceTestDB(t)
	seedMatchRecords(t, db)
	svc := NewScoreService(db, testLogger(), testConfig())
	ctx := context.Background()

	first, cached, err := svc.CalculateMatch(ctx, "prop-001", "opp-001")
	if err != nil {
		t.Fatalf("first CalculateMatch failed: %v", err)
	}
	if cached {
		t.Error("first call must be a cache miss")
	}
	if !first.Qualified {
		t.Fatalf("expected qualified result, got %+v", first.Disqualifiers)
	}

	second, cached, err := svc.CalculateMatch(ctx, "prop-001", "opp-001")
	if err != nil {
		t.Fatalf("second CalculateMatch failed: %v", err)
	}
	if !cached {
		t.Error("second call with unchanged inputs must hit the cache")
	}
	if second.OverallScore != first.OverallScore || second.Grade != first.Grade ||
		second.Qualified != first.Qualified || second.Competitive != first.Competitive {
		t.Errorf("cached score differs: %+v vs %+v", second, first)
	}
	if second.Breakdown != first.Breakdown {
		t.Errorf("cached breakdown differs: %+v vs %+v", second.Breakdown, first.Breakdown)
	}
}

func TestCalculateMatchNotFound(t *testing.T) {
	db := newServiceTestDB(t)
	seedMatchRecords(t, db)
	svc := NewScoreService(db, testLogger(), testConfig())

	if _, _, err := svc.CalculateMatch(context.Background(), "prop-missing", "opp-001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown property: err = %v, want ErrNotFound", err)
	}
	if _, _, err := svc.CalculateMatch(context.Background(), "prop-001", "opp-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown opportunity: err = %v, want ErrNotFound", err)
	}
}

func TestCalculateMatchInvalidInput(t *testing.T) {
	svc := NewScoreService(newServiceTestDB(t), testLogger(), testConfig())
	if _, _, err := svc.CalculateMatch(context.Background(), "", "opp-001"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty property uuid: err = %v, want ErrInvalidInput", err)
	}
}

// failingCacheRepo 缓存层全挂的仓储：读写都报错
type failingCacheRepo struct{}

func (f *failingCacheRepo) Get(ctx context.Context, key string) (*model.ScoreCache, error) {
	return nil, errors.New("cache store unavailable")
}
func (f *failingCacheRepo) Put(ctx context.Context, entry *model.ScoreCache) error {
	return errors.New("cache store unavailable")
}
func (f *failingCacheRepo) ListRecentScores(ctx context.Context, scoreType string, limit int) ([]float64, error) {
	return nil, errors.New("cache store unavailable")
}
func (f *failingCacheRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, errors.New("cache store unavailable")
}

func TestCalculateMatchSurvivesCacheFailure(t *testing.T) {
	db := newServiceTestDB(t)
	seedMatchRecords(t, db)
	svc := NewScoreServiceWithDeps(
		repository.NewPropertyRepository(db),
		repository.NewOpportunityRepository(db),
		repository.NewFederalRepository(db),
		&failingCacheRepo{},
		testLogger(), testConfig(),
	)

	score, cached, err := svc.CalculateMatch(context.Background(), "prop-001", "opp-001")
	if err != nil {
		t.Fatalf("cache failure must never fail the read path: %v", err)
	}
	if cached {
		t.Error("broken cache cannot produce a hit")
	}
	if score == nil || !score.Qualified {
		t.Errorf("expected live-computed qualified score, got %+v", score)
	}
}

func seedFederal(t *testing.T, db *gorm.DB) {
	t.Helper()
	exp := time.Now().AddDate(0, 12, 0)
	records := []*model.FederalProperty{
		{PropertyCode: "FED-1", Latitude: 38.9072, Longitude: -77.0369, OwnershipType: model.OwnershipLeased, TotalSqft: 200_000, VacantSqft: 10_000, LeaseExpiration: &exp},
		{PropertyCode: "FED-2", Latitude: 38.92, Longitude: -77.05, OwnershipType: model.OwnershipOwned, TotalSqft: 300_000, VacantSqft: 30_000},
		// 西雅图：远在半径外，包围盒粗筛后也要被精筛剔除
		{PropertyCode: "FED-FAR", Latitude: 47.6062, Longitude: -122.3321, OwnershipType: model.OwnershipLeased, TotalSqft: 500_000},
	}
	if err := db.Create(&records).Error; err != nil {
		t.Fatalf("seed federal failed: %v", err)
	}
}

func TestGetPresenceScore(t *testing.T) {
	db := newServiceTestDB(t)
	seedFederal(t, db)
	svc := NewScoreService(db, testLogger(), testConfig())

	score, err := svc.GetPresenceScore(context.Background(), 38.9072, -77.0369, 10)
	if err != nil {
		t.Fatalf("GetPresenceScore failed: %v", err)
	}
	if score.TotalCount != 2 {
		t.Errorf("total count = %d, want 2 (far record excluded)", score.TotalCount)
	}
	if score.LeasedCount != 1 || score.OwnedCount != 1 {
		t.Errorf("leased/owned = %d/%d, want 1/1", score.LeasedCount, score.OwnedCount)
	}
	if score.TotalScore <= 0 || score.TotalScore > 100 {
		t.Errorf("composite = %.2f, want (0,100]", score.TotalScore)
	}
}

func TestGetPresenceScoreEmptyRadius(t *testing.T) {
	db := newServiceTestDB(t) // 不播种任何联邦记录
	svc := NewScoreService(db, testLogger(), testConfig())

	score, err := svc.GetPresenceScore(context.Background(), 38.9072, -77.0369, 10)
	if err != nil {
		t.Fatalf("empty radius must not error: %v", err)
	}
	if score.TotalScore != 0 || score.TotalCount != 0 {
		t.Errorf("empty radius: composite=%.2f count=%d, want 0/0", score.TotalScore, score.TotalCount)
	}
	if score.Percentile > 10 {
		t.Errorf("zero composite percentile = %d, want low end", score.Percentile)
	}
}

func TestGetPresenceScoreInvalidArguments(t *testing.T) {
	svc := NewScoreService(newServiceTestDB(t), testLogger(), testConfig())
	ctx := context.Background()

	cases := []struct {
		name             string
		lat, lng, radius float64
	}{
		{"lat out of range", 91, -77, 10},
		{"lng out of range", 38, 181, 10},
		{"zero radius", 38.9, -77, 0},
		{"negative radius", 38.9, -77, -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.GetPresenceScore(ctx, tc.lat, tc.lng, tc.radius); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

// timeoutFederalRepo 模拟数据源超时
type timeoutFederalRepo struct{}

func (f *timeoutFederalRepo) ListInBox(ctx context.Context, box geoutil.BoundingBox) ([]*model.FederalProperty, error) {
	return nil, context.DeadlineExceeded
}
func (f *timeoutFederalRepo) UpsertBatch(ctx context.Context, records []*model.FederalProperty) error {
	return nil
}
func (f *timeoutFederalRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func TestGetPresenceScoreUpstreamTimeout(t *testing.T) {
	db := newServiceTestDB(t)
	svc := NewScoreServiceWithDeps(
		repository.NewPropertyRepository(db),
		repository.NewOpportunityRepository(db),
		&timeoutFederalRepo{},
		repository.NewScoreCacheRepository(db),
		testLogger(), testConfig(),
	)

	_, err := svc.GetPresenceScore(context.Background(), 38.9072, -77.0369, 10)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestPresenceScoreCachedSecondCall(t *testing.T) {
	db := newServiceTestDB(t)
	seedFederal(t, db)
	svc := NewScoreService(db, testLogger(), testConfig())
	ctx := context.Background()

	first, err := svc.GetPresenceScore(ctx, 38.9072, -77.0369, 10)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	// 同键第二次调用走缓存，结果一致
	second, err := svc.GetPresenceScore(ctx, 38.9072, -77.0369, 10)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if second.TotalScore != first.TotalScore || second.TotalCount != first.TotalCount {
		t.Errorf("cached presence differs: %+v vs %+v", second, first)
	}
}
