package geojson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_MarshalsToRFC7946Shape(t *testing.T) {
	fc := NewCollection()
	fc.AddPoint(-81.60, 41.50, map[string]any{"id": "F1"})
	fc.AddLine(-81.61, 41.51, -81.60, 41.50, map[string]any{"weight": 4.0})
	fc.Center = []float64{-81.605, 41.505}

	data, err := json.Marshal(fc)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "FeatureCollection", doc["type"])

	features := doc["features"].([]any)
	require.Len(t, features, 2)

	point := features[0].(map[string]any)
	geometry := point["geometry"].(map[string]any)
	assert.Equal(t, "Point", geometry["type"])
	// GeoJSON positions are [longitude, latitude].
	coords := geometry["coordinates"].([]any)
	assert.Equal(t, -81.60, coords[0])
	assert.Equal(t, 41.50, coords[1])

	line := features[1].(map[string]any)
	assert.Equal(t, "LineString", line["geometry"].(map[string]any)["type"])
}

func TestNewCollection_EmptyFeaturesMarshalAsArray(t *testing.T) {
	data, err := json.Marshal(NewCollection())
	require.NoError(t, err)
	// An empty collection still serializes features as [], not null.
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}
