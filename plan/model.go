package plan

import (
	"github.com/nextmv-io/sdk/mip"
)

// modelHandles keeps the decision-variable handles needed to read a solution
// back out of the solver.
type modelHandles struct {
	open map[string]mip.Bool   // warehouse ID → open indicator
	flow map[CostKey]mip.Float // (warehouse, facility) → annual units shipped
}

// buildModel translates the dataset into the mixed-integer program:
//
//	min  Σ_w fixed[w]·open[w] + Σ_{w,f} unitCost[w,f]·flow[w,f]
//	s.t. Σ_w flow[w,f] = demand[f]                      for each facility f
//	     Σ_f flow[w,f] − capacity[w]·open[w] ≤ 0        for each warehouse w
//	     Σ_w fixed[w]·open[w] + Σ unitCost·flow ≤ budget
//	     Σ_w open[w] = requiredOpen                      when requiredOpen > 0
//	     flow ≥ 0, open ∈ {0,1}
func buildModel(ds *Dataset, params ModelParams) (mip.Model, *modelHandles) {
	m := mip.NewModel()
	h := &modelHandles{
		open: make(map[string]mip.Bool, len(ds.Warehouses)),
		flow: make(map[CostKey]mip.Float, len(ds.Warehouses)*len(ds.Facilities)),
	}

	for _, w := range ds.Warehouses {
		h.open[w.ID] = m.NewBool()
		for _, f := range ds.Facilities {
			key := CostKey{Warehouse: w.ID, Facility: f.ID}
			// A single flow can never exceed its warehouse's capacity, so the
			// annual capacity doubles as the variable's upper bound.
			h.flow[key] = m.NewFloat(0.0, ds.AnnualCapacity[w.ID])
		}
	}

	m.Objective().SetMinimize()
	for _, w := range ds.Warehouses {
		m.Objective().NewTerm(ds.AnnualFixedCost[w.ID], h.open[w.ID])
		for _, f := range ds.Facilities {
			key := CostKey{Warehouse: w.ID, Facility: f.ID}
			m.Objective().NewTerm(ds.UnitCost[key], h.flow[key])
		}
	}

	// Demand satisfaction: each facility receives exactly its annual demand.
	for _, f := range ds.Facilities {
		demand := m.NewConstraint(mip.Equal, ds.AnnualDemand[f.ID])
		for _, w := range ds.Warehouses {
			demand.NewTerm(1.0, h.flow[CostKey{Warehouse: w.ID, Facility: f.ID}])
		}
	}

	// Capacity linkage: a closed warehouse (open = 0) forces all of its
	// outgoing flows to zero.
	for _, w := range ds.Warehouses {
		capacity := m.NewConstraint(mip.LessThanOrEqual, 0.0)
		for _, f := range ds.Facilities {
			capacity.NewTerm(1.0, h.flow[CostKey{Warehouse: w.ID, Facility: f.ID}])
		}
		capacity.NewTerm(-ds.AnnualCapacity[w.ID], h.open[w.ID])
	}

	// Budget ceiling over the same terms as the objective.
	budget := m.NewConstraint(mip.LessThanOrEqual, params.Budget)
	for _, w := range ds.Warehouses {
		budget.NewTerm(ds.AnnualFixedCost[w.ID], h.open[w.ID])
		for _, f := range ds.Facilities {
			key := CostKey{Warehouse: w.ID, Facility: f.ID}
			budget.NewTerm(ds.UnitCost[key], h.flow[key])
		}
	}

	if params.RequiredOpen > 0 {
		count := m.NewConstraint(mip.Equal, float64(params.RequiredOpen))
		for _, w := range ds.Warehouses {
			count.NewTerm(1.0, h.open[w.ID])
		}
	}

	return m, h
}
