package geoutil

import "testing"

func TestHaversineMiles(t *testing.T) {
	// 华盛顿特区 → 巴尔的摩，约35英里
	dc := [2]float64{38.9072, -77.0369}
	baltimore := [2]float64{39.2904, -76.6122}
	d := HaversineMiles(dc[0], dc[1], baltimore[0], baltimore[1])
	if d < 30 || d > 40 {
		t.Errorf("DC-Baltimore distance = %.1f miles, want ~35", d)
	}

	if d := HaversineMiles(dc[0], dc[1], dc[0], dc[1]); d != 0 {
		t.Errorf("same point distance = %f, want 0", d)
	}

	// 对称性
	back := HaversineMiles(baltimore[0], baltimore[1], dc[0], dc[1])
	if diff := d - back; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", d, back)
	}
}

func TestBoxAroundContainsRadius(t *testing.T) {
	lat, lng, radius := 38.9072, -77.0369, 10.0
	box := BoxAround(lat, lng, radius)

	if box.MinLat >= lat || box.MaxLat <= lat || box.MinLng >= lng || box.MaxLng <= lng {
		t.Fatalf("center must be inside the box: %+v", box)
	}
	// 正北/正东 radius 英里处的点必须落在盒内（盒是半径的超集）
	north := lat + radius/69.0
	if north > box.MaxLat {
		t.Errorf("point %f due north escapes box max lat %f", north, box.MaxLat)
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lng float64
		want     bool
	}{
		{38.9, -77.0, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{0, 181, false},
		{-91, 0, false},
	}
	for _, tc := range cases {
		if got := ValidCoordinates(tc.lat, tc.lng); got != tc.want {
			t.Errorf("ValidCoordinates(%.1f, %.1f) = %v, want %v", tc.lat, tc.lng, got, tc.want)
		}
	}
}

func TestCircleAreaSqMiles(t *testing.T) {
	got := CircleAreaSqMiles(10)
	if got < 314 || got > 315 {
		t.Errorf("CircleAreaSqMiles(10) = %.2f, want ~314.16", got)
	}
}
