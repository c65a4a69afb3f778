package geoutil

import "math"

// 地球平均半径（英里）
const earthRadiusMiles = 3958.8

// 每纬度对应的英里数（近似常量）
const milesPerLatDegree = 69.0

// HaversineMiles 两点间大圆距离（英里）
func HaversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// BoundingBox 半径（英里）对应的经纬度包围盒，作为库内粗筛；
// 精确筛选仍需对每条记录算大圆距离
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoxAround 以(lat,lng)为中心、radiusMiles为半径的包围盒。
// 经度跨度随纬度收缩；高纬极端情况直接放开到全经度
func BoxAround(lat, lng, radiusMiles float64) BoundingBox {
	latDelta := radiusMiles / milesPerLatDegree
	cosLat := math.Cos(lat * math.Pi / 180)
	lngDelta := 180.0
	if cosLat > 1e-6 {
		lngDelta = radiusMiles / (milesPerLatDegree * cosLat)
	}
	return BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLng: lng - lngDelta,
		MaxLng: lng + lngDelta,
	}
}

// ValidCoordinates 经纬度是否在合法范围内
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// CircleAreaSqMiles 半径（英里）对应的圆面积（平方英里）
func CircleAreaSqMiles(radiusMiles float64) float64 {
	return math.Pi * radiusMiles * radiusMiles
}
