// Package geo treats latitude/longitude as planar coordinates. Results are reported as miles
// even though they are not; a Haversine distance is needed for real geography.
package geo

import "math"

// NearbyRadius is the inclusive cut-off used by the store lookup.
const NearbyRadius = 30.0

func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

func Within(distance float64) bool {
	return distance <= NearbyRadius
}
