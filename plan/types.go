package plan

import "time"

// Facility is a demand point requiring supply.
type Facility struct {
	ID        string  // unique facility identifier, e.g. "MED_CENTER"
	Name      string  // display name
	Latitude  float64 // WGS84 coordinates
	Longitude float64
}

// Warehouse is a candidate supply site.
type Warehouse struct {
	ID               string  // unique warehouse identifier, e.g. "WH_NORTH"
	Name             string  // display name
	Latitude         float64 // WGS84 coordinates
	Longitude        float64
	ConstructionCost float64 // one-time build cost (amortized into the annual fixed cost)
	OperationalCost  float64 // cost per day of operation
	DailyCapacity    float64 // units the warehouse can ship per day
}

// CostKey indexes the unit transportation cost table by (warehouse, facility).
type CostKey struct {
	Warehouse string
	Facility  string
}

// Tables holds the raw input records exactly as read from the CSV files,
// before filtering, validation, and annualization.
type Tables struct {
	Facilities []Facility
	Warehouses []Warehouse
	Demands    map[string]float64 // facility ID → daily demand
	UnitCosts  map[CostKey]float64
}

// DatasetOptions control how raw tables are turned into a Dataset.
type DatasetOptions struct {
	Facilities  []string // target facility IDs (empty = all facilities)
	Warehouses  []string // target warehouse IDs (empty = all warehouses)
	DaysPerYear int      // annualization day count (default 365)
	AmortYears  int      // construction cost amortization horizon (default 10)
}

// Default annualization parameters, matching the planning convention of
// a 365-day operating year and a 10-year construction amortization.
const (
	DefaultDaysPerYear = 365
	DefaultAmortYears  = 10
)

// Dataset is the immutable, validated, annualized input to model
// construction. Build one per run with NewDataset and do not modify it.
type Dataset struct {
	Facilities []Facility // selected facilities, in input order
	Warehouses []Warehouse

	AnnualDemand    map[string]float64 // facility ID → units per year
	AnnualCapacity  map[string]float64 // warehouse ID → units per year
	AnnualFixedCost map[string]float64 // warehouse ID → amortized + operational cost per year
	UnitCost        map[CostKey]float64
}

// TotalDemand returns the summed annual demand over all selected facilities.
func (d *Dataset) TotalDemand() float64 {
	total := 0.0
	for _, f := range d.Facilities {
		total += d.AnnualDemand[f.ID]
	}
	return total
}

// ModelParams are the scenario-level knobs of the optimization model itself.
type ModelParams struct {
	Budget       float64 // annual cost ceiling (fixed + transport), > 0
	RequiredOpen int     // exact number of warehouses to open; 0 = solver's choice
}

// Status classifies the outcome of a solve.
type Status string

const (
	// StatusOptimal: the solver proved the returned plan cost-minimal.
	StatusOptimal Status = "OPTIMAL"
	// StatusFeasibleSuboptimal: a feasible plan was found but the time or
	// gap limit was reached before optimality was proven.
	StatusFeasibleSuboptimal Status = "FEASIBLE_SUBOPTIMAL"
	// StatusInfeasible: no assignment satisfies demand, capacity, and budget.
	StatusInfeasible Status = "INFEASIBLE"
	// StatusUnbounded: kept for completeness; a minimization over
	// non-negative costs and bounded flows cannot reach it.
	StatusUnbounded Status = "UNBOUNDED"
	// StatusSolverError: the external solver itself failed.
	StatusSolverError Status = "SOLVER_ERROR"
)

// WarehousePlan is the per-warehouse slice of a solved plan.
type WarehousePlan struct {
	ID          string
	Open        bool
	UsedUnits   float64 // annual units shipped from this warehouse
	Utilization float64 // UsedUnits / AnnualCapacity, 0 when closed
}

// Shipment is one positive (warehouse → facility) flow in a solved plan.
type Shipment struct {
	Warehouse string
	Facility  string
	Units     float64 // annual units shipped
	Cost      float64 // Units × unit transportation cost
}

// Plan is the extracted solution of one run.
type Plan struct {
	RunID  string // unique identifier for this solve, for log/export correlation
	Status Status

	TotalCost     float64 // FixedCost + TransportCost
	FixedCost     float64 // Σ annual fixed cost over opened warehouses
	TransportCost float64 // Σ unit cost × shipped units
	TotalUnits    float64 // Σ shipped units (= total demand when feasible)
	Budget        float64 // the ceiling the plan was solved under

	Warehouses []WarehousePlan // input order
	Shipments  []Shipment      // positive flows only, warehouse-major order

	Runtime time.Duration // wall-clock time spent in the solver
}

// Remaining returns the unspent budget.
func (p *Plan) Remaining() float64 {
	return p.Budget - p.TotalCost
}

// CostPerUnit returns the average cost per delivered unit, 0 when nothing
// was shipped.
func (p *Plan) CostPerUnit() float64 {
	if p.TotalUnits <= 0 {
		return 0
	}
	return p.TotalCost / p.TotalUnits
}
