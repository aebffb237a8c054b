// Package geo holds small coordinate helpers used to label stops that have no
// usable venue or city name.
package geo

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two
// points given in decimal degrees.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Place is a named reference point.
type Place struct {
	Name string
	Lat  float64
	Lng  float64
}

// SwissPlaces are the reference towns used for coordinate-derived labels.
var SwissPlaces = []Place{
	{"Zürich", 47.3769, 8.5417},
	{"Genève", 46.2044, 6.1432},
	{"Basel", 47.5596, 7.5886},
	{"Bern", 46.9480, 7.4474},
	{"Lausanne", 46.5197, 6.6323},
	{"Luzern", 47.0502, 8.3093},
	{"St. Gallen", 47.4245, 9.3767},
	{"Lugano", 46.0037, 8.9511},
	{"Winterthur", 47.4988, 8.7237},
	{"Biel/Bienne", 47.1368, 7.2468},
	{"Thun", 46.7580, 7.6280},
	{"Fribourg", 46.8065, 7.1620},
	{"Chur", 46.8508, 9.5320},
	{"Neuchâtel", 46.9896, 6.9293},
	{"Sion", 46.2331, 7.3606},
	{"Schaffhausen", 47.6973, 8.6349},
	{"Interlaken", 46.6863, 7.8632},
	{"Zermatt", 46.0207, 7.7491},
	{"St. Moritz", 46.4908, 9.8355},
	{"Locarno", 46.1709, 8.7995},
}

// MaxNearestKm bounds NearestPlace; points farther than this from every
// reference place have no nearby name.
const MaxNearestKm = 25.0

// NearestPlace returns the closest place in places within MaxNearestKm of the
// given point. ok is false when places is empty or nothing is close enough.
func NearestPlace(lat, lng float64, places []Place) (Place, bool) {
	var (
		best     Place
		bestDist = math.Inf(1)
	)
	for _, p := range places {
		if d := HaversineKm(lat, lng, p.Lat, p.Lng); d < bestDist {
			best, bestDist = p, d
		}
	}
	if bestDist > MaxNearestKm {
		return Place{}, false
	}
	return best, true
}
