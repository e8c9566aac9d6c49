package query

// GeoJSON shaping for the query façade's output: a
// polyline is GeoJSON-shaped: FeatureCollection of LineStrings in
// (lon,lat) order").

// FeatureCollection is the top-level GeoJSON document returned by a
// successful FindPath.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature wraps a single LineString geometry.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   LineStringJSON `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// LineStringJSON is a GeoJSON LineString geometry: coordinates in
// [lon,lat] order, floating-point degrees.
type LineStringJSON struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// ToGeoJSON converts a Result's split LineStrings into a
// FeatureCollection, every feature carrying the shared total distance
// in its properties, since a result can split into several features
// across the antimeridian while sharing one total distance.
func (r Result) ToGeoJSON() FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection"}
	for _, line := range r.Features {
		coords := make([][2]float64, len(line.Coordinates))
		for i, c := range line.Coordinates {
			coords[i] = [2]float64{c.LonDeg(), c.LatDeg()}
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: LineStringJSON{
				Type:        "LineString",
				Coordinates: coords,
			},
			Properties: map[string]any{
				"total_distance_m": r.Distance,
			},
		})
	}
	return fc
}
