package plan

import (
	"gonum.org/v1/gonum/stat"

	"github.com/depotplan/depotplan/plan/geojson"
)

// Flow line weights are scaled between minLineWeight and minLineWeight +
// lineWeightSpan by flow magnitude relative to the largest flow.
const (
	minLineWeight  = 2.0
	lineWeightSpan = 6.0
)

// BuildMap renders the plan as a GeoJSON FeatureCollection: one point per
// facility, one point per warehouse (tagged open/closed and with its
// utilization), and one weighted line per positive flow. The collection's
// center is the mean facility coordinate.
func (p *Plan) BuildMap(ds *Dataset) *geojson.FeatureCollection {
	fc := geojson.NewCollection()

	lats := make([]float64, 0, len(ds.Facilities))
	lons := make([]float64, 0, len(ds.Facilities))
	facilityByID := make(map[string]Facility, len(ds.Facilities))
	for _, f := range ds.Facilities {
		lats = append(lats, f.Latitude)
		lons = append(lons, f.Longitude)
		facilityByID[f.ID] = f
		fc.AddPoint(f.Longitude, f.Latitude, map[string]any{
			"kind":   "facility",
			"id":     f.ID,
			"name":   f.Name,
			"demand": ds.AnnualDemand[f.ID],
		})
	}
	if len(lats) > 0 {
		fc.Center = []float64{stat.Mean(lons, nil), stat.Mean(lats, nil)}
	}

	openByID := make(map[string]WarehousePlan, len(p.Warehouses))
	for _, wp := range p.Warehouses {
		openByID[wp.ID] = wp
	}
	warehouseByID := make(map[string]Warehouse, len(ds.Warehouses))
	for _, w := range ds.Warehouses {
		warehouseByID[w.ID] = w
		wp := openByID[w.ID]
		fc.AddPoint(w.Longitude, w.Latitude, map[string]any{
			"kind":        "warehouse",
			"id":          w.ID,
			"name":        w.Name,
			"open":        wp.Open,
			"utilization": wp.Utilization,
		})
	}

	maxFlow := 0.0
	for _, s := range p.Shipments {
		if s.Units > maxFlow {
			maxFlow = s.Units
		}
	}
	for _, s := range p.Shipments {
		w, okW := warehouseByID[s.Warehouse]
		f, okF := facilityByID[s.Facility]
		if !okW || !okF {
			continue
		}
		weight := minLineWeight
		if maxFlow > 0 {
			weight += s.Units / maxFlow * lineWeightSpan
		}
		fc.AddLine(w.Longitude, w.Latitude, f.Longitude, f.Latitude, map[string]any{
			"kind":   "flow",
			"from":   s.Warehouse,
			"to":     s.Facility,
			"units":  s.Units,
			"weight": weight,
		})
	}
	return fc
}
