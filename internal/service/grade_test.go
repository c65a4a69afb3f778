package service

import "testing"

func TestGradeFor(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A+"}, {90, "A+"}, {89.99, "A"}, {80, "A"},
		{79.99, "B"}, {70, "B"}, {69.99, "C"}, {60, "C"},
		{59.99, "D"}, {0, "D"},
	}
	for _, tc := range cases {
		if got := GradeFor(tc.score); got != tc.want {
			t.Errorf("GradeFor(%.2f) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := round2(72.3456); got != 72.35 {
		t.Errorf("round2(72.3456) = %v, want 72.35", got)
	}
	if got := round2(72.344); got != 72.34 {
		t.Errorf("round2(72.344) = %v, want 72.34", got)
	}
}

func TestPercentileAgainst(t *testing.T) {
	dist := []float64{10, 20, 30, 40, 50}
	cases := []struct {
		score float64
		want  int
	}{
		{5, 0},   // 低于全部
		{25, 40}, // 2/5
		{50, 99}, // 全覆盖封顶99
		{100, 99},
	}
	for _, tc := range cases {
		if got := PercentileAgainst(tc.score, dist); got != tc.want {
			t.Errorf("PercentileAgainst(%.0f) = %d, want %d", tc.score, got, tc.want)
		}
	}
}

func TestPercentileAgainstStaticFallback(t *testing.T) {
	// 空分布退化为静态表：0分在最低端
	if got := PercentileAgainst(0, nil); got != 0 {
		t.Errorf("PercentileAgainst(0, nil) = %d, want 0", got)
	}
	if got := PercentileAgainst(100, nil); got != 99 {
		t.Errorf("PercentileAgainst(100, nil) = %d, want 99", got)
	}
}
