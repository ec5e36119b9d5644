package Maps

import (
	"math"

	"Escapade/Models"
)

// Earth radius in kilometers
const earthRadius = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Haversine calculates the great-circle distance between two points in km.
func Haversine(p1, p2 Models.Coordinates) float64 {
	lat1 := toRadians(p1.Lat)
	lng1 := toRadians(p1.Lng)
	lat2 := toRadians(p2.Lat)
	lng2 := toRadians(p2.Lng)

	dlat := lat2 - lat1
	dlng := lng2 - lng1
	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Bearing returns the initial great-circle bearing from p1 to p2 in degrees,
// normalized to [0, 360).
func Bearing(p1, p2 Models.Coordinates) float64 {
	lat1 := toRadians(p1.Lat)
	lat2 := toRadians(p2.Lat)
	dlng := toRadians(p2.Lng - p1.Lng)

	y := math.Sin(dlng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlng)
	bearing := toDegrees(math.Atan2(y, x))

	return math.Mod(bearing+360, 360)
}

// PointAtDistance returns the point reached by travelling distanceKm from
// origin along the given bearing (degrees).
func PointAtDistance(origin Models.Coordinates, bearingDeg, distanceKm float64) Models.Coordinates {
	lat1 := toRadians(origin.Lat)
	lng1 := toRadians(origin.Lng)
	brng := toRadians(bearingDeg)
	d := distanceKm / earthRadius

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lng2 := lng1 + math.Atan2(
		math.Sin(brng)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2),
	)

	return Models.Coordinates{Lat: toDegrees(lat2), Lng: toDegrees(lng2)}
}
