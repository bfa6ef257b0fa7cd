package plan

import (
	"errors"
	"testing"

	"github.com/depotplan/depotplan/plan/internal/testutil"
)

// twoByTwoDataset builds the reference instance directly in annual units:
// two facilities demanding 100 and 50, two warehouses with capacity 120
// (fixed 1000) and 80 (fixed 800), uniform unit cost 1.
func twoByTwoDataset() *Dataset {
	return &Dataset{
		Facilities: []Facility{{ID: "F1"}, {ID: "F2"}},
		Warehouses: []Warehouse{{ID: "W1"}, {ID: "W2"}},
		AnnualDemand: map[string]float64{
			"F1": 100, "F2": 50,
		},
		AnnualCapacity: map[string]float64{
			"W1": 120, "W2": 80,
		},
		AnnualFixedCost: map[string]float64{
			"W1": 1000, "W2": 800,
		},
		UnitCost: map[CostKey]float64{
			{"W1", "F1"}: 1, {"W1", "F2"}: 1,
			{"W2", "F1"}: 1, {"W2", "F2"}: 1,
		},
	}
}

func TestPrecheck_FeasibleInstancePasses(t *testing.T) {
	if err := precheck(twoByTwoDataset(), ModelParams{Budget: 100000}); err != nil {
		t.Fatalf("unexpected precheck error: %v", err)
	}
}

func TestPrecheck_CapacityBelowDemand_Infeasible(t *testing.T) {
	ds := twoByTwoDataset()
	// Single warehouse of capacity 100 against total demand 150.
	ds.Warehouses = ds.Warehouses[:1]
	ds.AnnualCapacity = map[string]float64{"W1": 100}

	err := precheck(ds, ModelParams{Budget: 100000})
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("want *InfeasibleError, got %v", err)
	}
}

func TestPrecheck_RequiredOpenExceedsCandidates_Infeasible(t *testing.T) {
	err := precheck(twoByTwoDataset(), ModelParams{Budget: 100000, RequiredOpen: 3})
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("want *InfeasibleError, got %v", err)
	}
}

func TestPrecheck_TopKCapacityShortfall_Infeasible(t *testing.T) {
	ds := twoByTwoDataset()
	// Forced to open exactly one warehouse; even the larger one (120) cannot
	// cover demand 150.
	err := precheck(ds, ModelParams{Budget: 100000, RequiredOpen: 1})
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("want *InfeasibleError, got %v", err)
	}
}

func TestAssemblePlan_OptimalTwoByTwo(t *testing.T) {
	ds := twoByTwoDataset()
	res := rawResult{
		hasValues: true,
		optimal:   true,
		objective: 1950,
		open:      map[string]float64{"W1": 1, "W2": 1},
		flow: map[CostKey]float64{
			{"W1", "F1"}: 100,
			{"W2", "F2"}: 50,
		},
	}

	p, err := assemblePlan(ds, ModelParams{Budget: 100000}, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusOptimal {
		t.Errorf("status = %s, want %s", p.Status, StatusOptimal)
	}
	if p.RunID == "" {
		t.Error("plan should carry a run ID")
	}
	for _, wp := range p.Warehouses {
		if !wp.Open {
			t.Errorf("warehouse %s should be open", wp.ID)
		}
	}
	testutil.AssertFloatEqual(t, "total units", 150, p.TotalUnits, 1e-9)
	testutil.AssertFloatEqual(t, "fixed cost", 1800, p.FixedCost, 1e-9)
	testutil.AssertFloatEqual(t, "transport cost", 150, p.TransportCost, 1e-9)
	testutil.AssertFloatEqual(t, "total cost", 1950, p.TotalCost, 1e-9)
	if len(p.Shipments) != 2 {
		t.Fatalf("shipments = %d, want 2", len(p.Shipments))
	}
}

func TestAssemblePlan_DemandSatisfiedPerFacility(t *testing.T) {
	ds := twoByTwoDataset()
	res := rawResult{
		hasValues: true,
		optimal:   true,
		open:      map[string]float64{"W1": 1, "W2": 1},
		flow: map[CostKey]float64{
			{"W1", "F1"}: 70,
			{"W2", "F1"}: 30,
			{"W1", "F2"}: 50,
		},
	}

	p, err := assemblePlan(ds, ModelParams{Budget: 100000}, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	received := make(map[string]float64)
	for _, s := range p.Shipments {
		received[s.Facility] += s.Units
	}
	for id, demand := range ds.AnnualDemand {
		testutil.AssertFloatEqual(t, "demand for "+id, demand, received[id], 1e-9)
	}
}

func TestAssemblePlan_ClosedWarehouseShipsNothing(t *testing.T) {
	ds := twoByTwoDataset()
	res := rawResult{
		hasValues: true,
		optimal:   true,
		open:      map[string]float64{"W1": 1, "W2": 0},
		flow: map[CostKey]float64{
			{"W1", "F1"}: 100,
			{"W1", "F2"}: 50,
			{"W2", "F1"}: 1e-9, // solver noise below the flow epsilon
		},
	}

	p, err := assemblePlan(ds, ModelParams{Budget: 100000}, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range p.Shipments {
		if s.Warehouse == "W2" {
			t.Errorf("closed warehouse W2 must ship nothing, got %v units", s.Units)
		}
	}
	var w2 WarehousePlan
	for _, wp := range p.Warehouses {
		if wp.ID == "W2" {
			w2 = wp
		}
	}
	if w2.Open || w2.UsedUnits != 0 || w2.Utilization != 0 {
		t.Errorf("W2 = %+v, want closed with zero use", w2)
	}
	// Only W1's fixed cost counts.
	testutil.AssertFloatEqual(t, "fixed cost", 1000, p.FixedCost, 1e-9)
}

func TestAssemblePlan_StaysWithinBudget(t *testing.T) {
	ds := twoByTwoDataset()
	res := rawResult{
		hasValues: true,
		optimal:   true,
		open:      map[string]float64{"W1": 1, "W2": 1},
		flow: map[CostKey]float64{
			{"W1", "F1"}: 100,
			{"W2", "F2"}: 50,
		},
	}

	p, err := assemblePlan(ds, ModelParams{Budget: 2000}, res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalCost > p.Budget {
		t.Errorf("total cost %.2f exceeds budget %.2f", p.TotalCost, p.Budget)
	}
	testutil.AssertFloatEqual(t, "remaining budget", 50, p.Remaining(), 1e-9)
	testutil.AssertFloatEqual(t, "cost per unit", 13, p.CostPerUnit(), 1e-9)
}

func TestAssemblePlan_NoValues_Infeasible(t *testing.T) {
	p, err := assemblePlan(twoByTwoDataset(), ModelParams{Budget: 100000}, rawResult{})
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("want *InfeasibleError, got %v", err)
	}
	if p.Status != StatusInfeasible {
		t.Errorf("status = %s, want %s", p.Status, StatusInfeasible)
	}
}

func TestAssemblePlan_NotProvenOptimal_ReturnsLimitError(t *testing.T) {
	ds := twoByTwoDataset()
	res := rawResult{
		hasValues: true,
		optimal:   false,
		open:      map[string]float64{"W1": 1, "W2": 1},
		flow: map[CostKey]float64{
			{"W1", "F1"}: 100,
			{"W2", "F2"}: 50,
		},
	}

	p, err := assemblePlan(ds, ModelParams{Budget: 100000}, res)
	var limit *SolverLimitError
	if !errors.As(err, &limit) {
		t.Fatalf("want *SolverLimitError, got %v", err)
	}
	if p.Status != StatusFeasibleSuboptimal {
		t.Errorf("status = %s, want %s", p.Status, StatusFeasibleSuboptimal)
	}
	// The incumbent plan is still fully usable.
	testutil.AssertFloatEqual(t, "incumbent cost", p.TotalCost, limit.Incumbent, 1e-9)
	if p.TotalUnits != 150 {
		t.Errorf("total units = %v, want 150", p.TotalUnits)
	}
}

func TestSolve_NonPositiveBudget_RejectedAsDataError(t *testing.T) {
	_, err := Solve(twoByTwoDataset(), ModelParams{Budget: 0}, SolveOptions{})
	var dataErr *DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("want *DataError for non-positive budget, got %v", err)
	}
}

// Budget feasibility is the solver's verdict, not the precheck's: an
// instance with ample capacity but a budget below any fixed+shipping total
// must pass precheck and reach the solver, which reports it infeasible.
func TestPrecheck_IgnoresBudget(t *testing.T) {
	ds := twoByTwoDataset()
	// Budget 1 cannot cover even the cheapest fixed cost (800).
	if err := precheck(ds, ModelParams{Budget: 1}); err != nil {
		t.Fatalf("precheck must not rule on budget, got %v", err)
	}
	// The solver-side verdict for such an instance is a no-values result,
	// which maps to INFEASIBLE.
	p, err := assemblePlan(ds, ModelParams{Budget: 1}, rawResult{})
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("want *InfeasibleError, got %v", err)
	}
	if p.Status != StatusInfeasible {
		t.Errorf("status = %s, want %s", p.Status, StatusInfeasible)
	}
}

// Solve short-circuits on the capacity precheck, so this path needs no
// solver runtime.
func TestSolve_CapacityShortfall_ReturnsInfeasiblePlan(t *testing.T) {
	ds := twoByTwoDataset()
	ds.Warehouses = ds.Warehouses[:1]
	ds.AnnualCapacity = map[string]float64{"W1": 100}

	p, err := Solve(ds, ModelParams{Budget: 100000}, SolveOptions{})
	var infeasible *InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("want *InfeasibleError, got %v", err)
	}
	if p == nil || p.Status != StatusInfeasible {
		t.Fatalf("plan = %+v, want INFEASIBLE status", p)
	}
}

func TestSolverFailure_UnwrapsCause(t *testing.T) {
	cause := errors.New("provider not installed")
	err := &SolverFailure{Err: cause}
	if !errors.Is(err, cause) {
		t.Error("SolverFailure should unwrap to its cause")
	}
}

func TestSolverFailure_PlanCarriesStatus(t *testing.T) {
	cause := errors.New("provider not installed")
	p, err := solverFailure(ModelParams{Budget: 100000}, cause)

	var failure *SolverFailure
	if !errors.As(err, &failure) {
		t.Fatalf("want *SolverFailure, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("solver failure should unwrap to its cause")
	}
	if p == nil || p.Status != StatusSolverError {
		t.Fatalf("plan = %+v, want SOLVER_ERROR status", p)
	}
	if p.RunID == "" {
		t.Error("failure plan should still carry a run ID")
	}
	if p.Budget != 100000 {
		t.Errorf("budget = %v, want 100000", p.Budget)
	}
}
