package cmd

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/depotplan/depotplan/plan"
)

// solveCmd loads the tables, solves the siting model, and prints the result
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Optimize warehouse openings and shipment flows",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := buildSpec()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		ds, err := loadDataset(spec)
		if err != nil {
			logrus.Fatalf("Loading input data: %v", err)
		}

		params := plan.ModelParams{Budget: spec.Budget, RequiredOpen: spec.RequiredOpen}
		opts := plan.SolveOptions{
			MaxDuration: spec.MaxSolveDuration(),
			MIPGap:      spec.Solve.MIPGap,
			Verbose:     spec.Solve.Verbose,
		}

		p, err := plan.Solve(ds, params, opts)
		if err != nil {
			var limitErr *plan.SolverLimitError
			var infeasibleErr *plan.InfeasibleError
			switch {
			case errors.As(err, &limitErr):
				// The plan is feasible and usable; its status already says
				// it is not proven optimal.
			case errors.As(err, &infeasibleErr):
				logrus.Fatalf("No feasible plan: %v", err)
			default:
				logrus.Fatalf("Solve failed: %v", err)
			}
		}

		p.WriteReport(os.Stdout, ds)

		if outPath != "" {
			if err := writeJSON(outPath, p); err != nil {
				logrus.Fatalf("Writing plan export: %v", err)
			}
			logrus.Infof("plan written to %s", outPath)
		}
		if mapPath != "" {
			if err := writeJSON(mapPath, p.BuildMap(ds)); err != nil {
				logrus.Fatalf("Writing map export: %v", err)
			}
			logrus.Infof("map written to %s", mapPath)
		}
	},
}

// writeJSON marshals v with indentation and writes it to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// init sets up the solve command flags
func init() {
	solveCmd.Flags().DurationVar(&maxDuration, "max-duration", 0, "Solver time limit (default 30s)")
	solveCmd.Flags().Float64Var(&mipGap, "mip-gap", 0, "Relative optimality gap to accept (0 = prove optimality)")
	solveCmd.Flags().BoolVar(&solverLog, "solver-log", false, "Surface the solver's own log output")
	solveCmd.Flags().StringVar(&outPath, "out", "", "Write the solved plan as JSON to this path")
	solveCmd.Flags().StringVar(&mapPath, "map", "", "Write a GeoJSON map of the plan to this path")

	rootCmd.AddCommand(solveCmd)
}
