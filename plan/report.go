package plan

import (
	"fmt"
	"io"
)

// WriteReport prints the full human-readable result: summary, warehouse
// utilization, and routing. Only meaningful for plans that carry values
// (OPTIMAL or FEASIBLE_SUBOPTIMAL).
func (p *Plan) WriteReport(w io.Writer, ds *Dataset) {
	p.WriteSummary(w)
	fmt.Fprintln(w)
	p.WriteUtilization(w, ds)
	fmt.Fprintln(w)
	p.WriteRouting(w)
}

// WriteSummary prints the cost totals of the plan.
func (p *Plan) WriteSummary(w io.Writer) {
	fmt.Fprintln(w, "=== Optimization Summary ===")
	fmt.Fprintf(w, "Run ID               : %s\n", p.RunID)
	fmt.Fprintf(w, "Status               : %s\n", p.Status)
	fmt.Fprintf(w, "Total Annual Cost    : $%.2f\n", p.TotalCost)
	fmt.Fprintf(w, "  Fixed (warehouses) : $%.2f\n", p.FixedCost)
	fmt.Fprintf(w, "  Transportation     : $%.2f\n", p.TransportCost)
	fmt.Fprintf(w, "Units Delivered      : %.0f\n", p.TotalUnits)
	fmt.Fprintf(w, "Avg Cost Per Unit    : $%.2f\n", p.CostPerUnit())
	fmt.Fprintf(w, "Remaining Budget     : $%.2f\n", p.Remaining())
	if p.Runtime > 0 {
		fmt.Fprintf(w, "Solve Time           : %s\n", p.Runtime)
	}
}

// WriteUtilization prints per-warehouse open/closed state and capacity use.
func (p *Plan) WriteUtilization(w io.Writer, ds *Dataset) {
	fmt.Fprintln(w, "=== Warehouse Utilization ===")
	for _, wp := range p.Warehouses {
		state := "CLOSED"
		if wp.Open {
			state = "OPEN"
		}
		fmt.Fprintf(w, "%-12s | %-6s | %8.0f / %8.0f units | %5.1f%%\n",
			wp.ID, state, wp.UsedUnits, ds.AnnualCapacity[wp.ID], wp.Utilization*100)
	}
}

// WriteRouting prints every positive flow in the plan.
func (p *Plan) WriteRouting(w io.Writer) {
	fmt.Fprintln(w, "=== Optimal Routing ===")
	for _, s := range p.Shipments {
		fmt.Fprintf(w, "%s -> %s : %.0f units ($%.2f)\n", s.Warehouse, s.Facility, s.Units, s.Cost)
	}
}
