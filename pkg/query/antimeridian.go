package query

import "oceanroute/pkg/geo"

// LineString is one contiguous run of coordinates after antimeridian
// splitting.
type LineString struct {
	Coordinates []geo.Coordinate
}

// SplitAntimeridian walks coords and breaks the line wherever two
// consecutive longitudes differ by more than 180 degrees: it appends a
// synthetic point at +-180 on the departing side and starts a new
// segment at the mirrored +-180 on the arriving side. The split
// points preserve the crossing's latitude via linear
// interpolation so no segment crosses the antimeridian internally.
func SplitAntimeridian(coords []geo.Coordinate) []LineString {
	if len(coords) == 0 {
		return nil
	}

	var lines []LineString
	cur := []geo.Coordinate{coords[0]}

	for i := 1; i < len(coords); i++ {
		prev := coords[i-1]
		next := coords[i]
		// int64: the difference of two int32 longitudes can exceed int32.
		delta := int64(next.Lon) - int64(prev.Lon)

		if delta > 180*int64(geo.Factor) || delta < -180*int64(geo.Factor) {
			lat := interpolateLat(prev, next)
			var departSign, arriveSign int32 = 1, -1
			if delta > 0 {
				// next is far to the east numerically, so the line
				// really heads west across the antimeridian: prev
				// departs at -180, next arrives at +180.
				departSign, arriveSign = -1, 1
			}
			departPt := geo.Coordinate{Lon: departSign * 180 * int32(geo.Factor), Lat: lat}
			arrivePt := geo.Coordinate{Lon: arriveSign * 180 * int32(geo.Factor), Lat: lat}

			cur = append(cur, departPt)
			lines = append(lines, LineString{Coordinates: cur})
			cur = []geo.Coordinate{arrivePt, next}
		} else {
			cur = append(cur, next)
		}
	}

	lines = append(lines, LineString{Coordinates: cur})
	return lines
}

// interpolateLat linearly interpolates the latitude at the
// antimeridian crossing between prev and next, using the wrapped
// longitude delta so the interpolation parameter stays in [0,1].
func interpolateLat(prev, next geo.Coordinate) int32 {
	factor := int64(geo.Factor)
	var prevToEdge, edgeToNext int64
	if int64(next.Lon)-int64(prev.Lon) > 0 {
		// prev is near -180 and the line heads west; next is near +180.
		prevToEdge = int64(-180*factor) - int64(prev.Lon)
		edgeToNext = int64(next.Lon) - int64(180*factor)
	} else {
		prevToEdge = int64(180*factor) - int64(prev.Lon)
		edgeToNext = int64(next.Lon) - int64(-180*factor)
	}
	total := prevToEdge + edgeToNext
	if total == 0 {
		return prev.Lat
	}
	t := float64(prevToEdge) / float64(total)
	return prev.Lat + int32(t*float64(next.Lat-prev.Lat))
}
