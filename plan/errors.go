package plan

import "fmt"

// DataError reports malformed, missing, or inconsistent input data. It is
// always raised before model construction; a solve never starts on bad data.
type DataError struct {
	Table string // offending table, e.g. "transportation_costs"
	Msg   string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error in %s: %s", e.Table, e.Msg)
}

func dataErrorf(table, format string, args ...any) *DataError {
	return &DataError{Table: table, Msg: fmt.Sprintf(format, args...)}
}

// InfeasibleError reports that no assignment satisfies all hard constraints.
// Reason names the constraint class that rules the instance out when it is
// known before solving; otherwise it is the solver's verdict.
type InfeasibleError struct {
	Reason string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("no feasible plan: %s", e.Reason)
}

// SolverLimitError reports that the solver hit its time or gap limit with a
// feasible incumbent. The accompanying Plan is usable but not proven optimal.
type SolverLimitError struct {
	Incumbent float64 // objective value of the best plan found
}

func (e *SolverLimitError) Error() string {
	return fmt.Sprintf("solve limit reached; best plan found costs %.2f but is not proven optimal", e.Incumbent)
}

// SolverFailure wraps an error from the external solver itself. Reserved for
// solver-level failures; data problems surface as DataError instead.
type SolverFailure struct {
	Err error
}

func (e *SolverFailure) Error() string {
	return fmt.Sprintf("solver failure: %v", e.Err)
}

func (e *SolverFailure) Unwrap() error {
	return e.Err
}
