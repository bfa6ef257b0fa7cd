package plan

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/nextmv-io/sdk/mip"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// SolveOptions configure the external solver invocation.
type SolveOptions struct {
	MaxDuration time.Duration // solve time limit; 0 = DefaultMaxDuration
	MIPGap      float64       // relative optimality gap to accept; 0 = prove optimality
	Verbose     bool          // surface the solver's own log output
}

// DefaultMaxDuration bounds a solve when no limit is configured.
const DefaultMaxDuration = 30 * time.Second

// flowEpsilon is the threshold below which a solved flow counts as zero.
const flowEpsilon = 1e-6

// newSolver creates the MIP solver for a built model. Package-level so the
// provider choice lives in one place.
var newSolver = func(m mip.Model) (mip.Solver, error) {
	return mip.NewSolver("highs", m)
}

// Solve builds the siting model from the dataset and runs the external MIP
// solver. The returned Plan always carries a Status; the error is typed:
// *InfeasibleError, *SolverLimitError (plan still usable), or *SolverFailure.
//
// When multiple cost-equal optima exist, the plan returned is whichever one
// HiGHS reaches first under its default branching; no determinism across
// solver versions is guaranteed.
func Solve(ds *Dataset, params ModelParams, opts SolveOptions) (*Plan, error) {
	if params.Budget <= 0 {
		return nil, dataErrorf("scenario", "budget must be positive, got %v", params.Budget)
	}
	if err := precheck(ds, params); err != nil {
		return &Plan{RunID: uuid.NewString(), Status: StatusInfeasible, Budget: params.Budget}, err
	}

	model, handles := buildModel(ds, params)
	logrus.Infof("model built: %d warehouses, %d facilities, %d flow variables",
		len(ds.Warehouses), len(ds.Facilities), len(handles.flow))

	solver, err := newSolver(model)
	if err != nil {
		return solverFailure(params, err)
	}

	solveOpts := mip.NewSolveOptions()
	maxDuration := opts.MaxDuration
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}
	if err := solveOpts.SetMaximumDuration(maxDuration); err != nil {
		return solverFailure(params, err)
	}
	if err := solveOpts.SetMIPGapRelative(opts.MIPGap); err != nil {
		return solverFailure(params, err)
	}
	if !opts.Verbose {
		solveOpts.SetVerbosity(mip.Off)
	}

	solution, err := solver.Solve(solveOpts)
	if err != nil {
		return solverFailure(params, err)
	}
	return assemblePlan(ds, params, extract(solution, handles))
}

// solverFailure pairs a SOLVER_ERROR plan shell with the wrapped cause, so
// solver-level failures carry a status the same way the infeasible path does.
func solverFailure(params ModelParams, err error) (*Plan, error) {
	return &Plan{RunID: uuid.NewString(), Status: StatusSolverError, Budget: params.Budget}, &SolverFailure{Err: err}
}

// precheck rules out instances that no solve can rescue: capacity shortfalls
// visible from the data alone. Budget infeasibility is left to the solver.
func precheck(ds *Dataset, params ModelParams) error {
	totalDemand := ds.TotalDemand()
	capacities := make([]float64, 0, len(ds.Warehouses))
	for _, w := range ds.Warehouses {
		capacities = append(capacities, ds.AnnualCapacity[w.ID])
	}
	if total := floats.Sum(capacities); total < totalDemand {
		return &InfeasibleError{Reason: fmt.Sprintf(
			"total capacity %.0f is below total demand %.0f", total, totalDemand)}
	}
	if k := params.RequiredOpen; k > 0 {
		if k > len(ds.Warehouses) {
			return &InfeasibleError{Reason: fmt.Sprintf(
				"required_open %d exceeds the %d candidate warehouses", k, len(ds.Warehouses))}
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(capacities)))
		if best := floats.Sum(capacities[:k]); best < totalDemand {
			return &InfeasibleError{Reason: fmt.Sprintf(
				"the %d largest warehouses supply %.0f, below total demand %.0f", k, best, totalDemand)}
		}
	}
	return nil
}

// rawResult is the solver-independent snapshot of one solve, read out of the
// mip.Solution immediately so everything downstream is plain data.
type rawResult struct {
	hasValues bool
	optimal   bool
	objective float64
	open      map[string]float64
	flow      map[CostKey]float64
	runtime   time.Duration
}

func extract(sol mip.Solution, h *modelHandles) rawResult {
	res := rawResult{
		open: make(map[string]float64, len(h.open)),
		flow: make(map[CostKey]float64, len(h.flow)),
	}
	if sol == nil || !sol.HasValues() {
		return res
	}
	res.hasValues = true
	res.optimal = sol.IsOptimal()
	res.objective = sol.ObjectiveValue()
	res.runtime = sol.RunTime()
	for id, v := range h.open {
		res.open[id] = sol.Value(v)
	}
	for key, v := range h.flow {
		res.flow[key] = sol.Value(v)
	}
	return res
}

// assemblePlan turns raw solver values into a Plan. Costs are recomputed
// from the extracted flows so the reported totals match the shipment list
// exactly rather than echoing the solver's objective value.
func assemblePlan(ds *Dataset, params ModelParams, res rawResult) (*Plan, error) {
	p := &Plan{
		RunID:   uuid.NewString(),
		Budget:  params.Budget,
		Runtime: res.runtime,
	}
	if !res.hasValues {
		p.Status = StatusInfeasible
		return p, &InfeasibleError{Reason: "demand cannot be met within capacity and budget"}
	}

	for _, w := range ds.Warehouses {
		opened := res.open[w.ID] > 0.5
		used := 0.0
		for _, f := range ds.Facilities {
			key := CostKey{Warehouse: w.ID, Facility: f.ID}
			units := res.flow[key]
			if units <= flowEpsilon {
				continue
			}
			used += units
			cost := units * ds.UnitCost[key]
			p.Shipments = append(p.Shipments, Shipment{
				Warehouse: w.ID, Facility: f.ID, Units: units, Cost: cost,
			})
			p.TransportCost += cost
		}
		if opened {
			p.FixedCost += ds.AnnualFixedCost[w.ID]
		}
		utilization := 0.0
		if capacity := ds.AnnualCapacity[w.ID]; opened && capacity > flowEpsilon {
			utilization = used / capacity
		}
		p.Warehouses = append(p.Warehouses, WarehousePlan{
			ID: w.ID, Open: opened, UsedUnits: used, Utilization: utilization,
		})
		p.TotalUnits += used
	}
	p.TotalCost = p.FixedCost + p.TransportCost

	if res.optimal {
		p.Status = StatusOptimal
		return p, nil
	}
	p.Status = StatusFeasibleSuboptimal
	logrus.Warnf("solve limit reached: plan %s costs %.2f but is not proven optimal", p.RunID, p.TotalCost)
	return p, &SolverLimitError{Incumbent: p.TotalCost}
}
