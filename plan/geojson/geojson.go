// Package geojson provides the minimal GeoJSON data types used by the map
// export. This package has no dependencies on plan/ — it stores pure data
// types that marshal directly to RFC 7946 documents.
package geojson

// FeatureCollection is the top-level GeoJSON document.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
	// Center is a foreign member holding the suggested map center as
	// [longitude, latitude]. Foreign members are permitted by RFC 7946 §6.1.
	Center []float64 `json:"center,omitempty"`
}

// Feature is a single geometry with arbitrary properties.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Geometry holds a GeoJSON geometry. Coordinates follow the GeoJSON
// convention of [longitude, latitude] positions.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// NewCollection creates an empty FeatureCollection.
func NewCollection() *FeatureCollection {
	return &FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0)}
}

// AddPoint appends a Point feature at (lon, lat) with the given properties.
func (fc *FeatureCollection) AddPoint(lon, lat float64, properties map[string]any) {
	fc.Features = append(fc.Features, Feature{
		Type:       "Feature",
		Geometry:   Geometry{Type: "Point", Coordinates: []float64{lon, lat}},
		Properties: properties,
	})
}

// AddLine appends a two-position LineString feature with the given properties.
func (fc *FeatureCollection) AddLine(fromLon, fromLat, toLon, toLat float64, properties map[string]any) {
	fc.Features = append(fc.Features, Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "LineString",
			Coordinates: [][]float64{{fromLon, fromLat}, {toLon, toLat}},
		},
		Properties: properties,
	})
}
