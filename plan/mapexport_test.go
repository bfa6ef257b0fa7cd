package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapFixture() (*Plan, *Dataset) {
	ds := &Dataset{
		Facilities: []Facility{
			{ID: "F1", Name: "Alpha", Latitude: 41.50, Longitude: -81.60},
			{ID: "F2", Name: "Beta", Latitude: 41.52, Longitude: -81.62},
		},
		Warehouses: []Warehouse{
			{ID: "W1", Name: "North", Latitude: 41.51, Longitude: -81.61},
			{ID: "W2", Name: "South", Latitude: 41.49, Longitude: -81.59},
		},
		AnnualDemand:   map[string]float64{"F1": 100, "F2": 50},
		AnnualCapacity: map[string]float64{"W1": 120, "W2": 80},
	}
	p := &Plan{
		Warehouses: []WarehousePlan{
			{ID: "W1", Open: true, UsedUnits: 150, Utilization: 1.25 / 1.5},
			{ID: "W2", Open: false},
		},
		Shipments: []Shipment{
			{Warehouse: "W1", Facility: "F1", Units: 100},
			{Warehouse: "W1", Facility: "F2", Units: 50},
		},
	}
	return p, ds
}

func TestBuildMap_FeaturePerEntityAndFlow(t *testing.T) {
	p, ds := mapFixture()
	fc := p.BuildMap(ds)

	assert.Equal(t, "FeatureCollection", fc.Type)
	// 2 facilities + 2 warehouses + 2 flows
	require.Len(t, fc.Features, 6)

	kinds := make(map[string]int)
	for _, f := range fc.Features {
		kinds[f.Properties["kind"].(string)]++
	}
	assert.Equal(t, 2, kinds["facility"])
	assert.Equal(t, 2, kinds["warehouse"])
	assert.Equal(t, 2, kinds["flow"])
}

func TestBuildMap_CenterIsMeanFacilityCoordinate(t *testing.T) {
	p, ds := mapFixture()
	fc := p.BuildMap(ds)

	require.Len(t, fc.Center, 2)
	assert.InDelta(t, -81.61, fc.Center[0], 1e-9) // lon
	assert.InDelta(t, 41.51, fc.Center[1], 1e-9)  // lat
}

func TestBuildMap_WarehouseStateProperties(t *testing.T) {
	p, ds := mapFixture()
	fc := p.BuildMap(ds)

	states := make(map[string]bool)
	for _, f := range fc.Features {
		if f.Properties["kind"] == "warehouse" {
			states[f.Properties["id"].(string)] = f.Properties["open"].(bool)
		}
	}
	assert.True(t, states["W1"])
	assert.False(t, states["W2"])
}

func TestBuildMap_FlowWeightsScaleWithUnits(t *testing.T) {
	p, ds := mapFixture()
	fc := p.BuildMap(ds)

	weights := make(map[string]float64)
	for _, f := range fc.Features {
		if f.Properties["kind"] == "flow" {
			weights[f.Properties["to"].(string)] = f.Properties["weight"].(float64)
		}
	}
	// The largest flow gets the full weight span; half the flow gets half.
	assert.InDelta(t, minLineWeight+lineWeightSpan, weights["F1"], 1e-9)
	assert.InDelta(t, minLineWeight+lineWeightSpan/2, weights["F2"], 1e-9)
}

func TestBuildMap_EmptyPlanStillMapsEntities(t *testing.T) {
	_, ds := mapFixture()
	p := &Plan{Status: StatusInfeasible}
	fc := p.BuildMap(ds)

	require.Len(t, fc.Features, 4)
	for _, f := range fc.Features {
		if f.Properties["kind"] == "warehouse" {
			assert.False(t, f.Properties["open"].(bool))
		}
	}
}
