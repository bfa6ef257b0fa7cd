package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/depotplan/depotplan/plan"
	"github.com/depotplan/depotplan/plan/scenario"
)

var (
	// CLI flags shared by the subcommands
	scenarioPath string        // YAML scenario file; when set it replaces the flags below
	dataDir      string        // directory holding the four default-named CSV tables
	logLevel     string        // log verbosity level
	budget       float64       // annual cost ceiling (0 = scenario default)
	daysPerYear  int           // annualization day count (0 = scenario default)
	amortYears   int           // construction amortization horizon in years (0 = scenario default)
	requiredOpen int           // exact number of warehouses to open (0 = solver's choice)
	facilityIDs  []string      // target facility IDs (empty = all)
	warehouseIDs []string      // target warehouse IDs (empty = all)
	maxDuration  time.Duration // solver time limit
	mipGap       float64       // relative optimality gap to accept
	solverLog    bool          // surface the solver's own output

	// solve outputs
	outPath string // plan JSON export path
	mapPath string // GeoJSON map export path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "depotplan",
	Short: "Warehouse siting and shipment flow planner",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildSpec assembles the scenario: from the YAML file when --scenario is
// given, otherwise from the individual flags.
func buildSpec() (*scenario.Spec, error) {
	if scenarioPath != "" {
		return scenario.Load(scenarioPath)
	}
	spec := &scenario.Spec{
		DataDir:           dataDir,
		Budget:            budget,
		DaysPerYear:       daysPerYear,
		AmortizationYears: amortYears,
		RequiredOpen:      requiredOpen,
		Facilities:        facilityIDs,
		Warehouses:        warehouseIDs,
		Solve: scenario.SolveSpec{
			MIPGap:  mipGap,
			Verbose: solverLog,
		},
	}
	if maxDuration > 0 {
		spec.Solve.MaxDuration = maxDuration.String()
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// loadDataset reads and validates the four tables named by the scenario.
func loadDataset(spec *scenario.Spec) (*plan.Dataset, error) {
	tables, err := plan.LoadTables(plan.TablePaths{
		Facilities:          spec.FacilitiesPath(),
		Demands:             spec.DemandsPath(),
		Warehouses:          spec.WarehousesPath(),
		TransportationCosts: spec.TransportationCostsPath(),
	})
	if err != nil {
		return nil, err
	}
	return plan.NewDataset(tables, plan.DatasetOptions{
		Facilities:  spec.Facilities,
		Warehouses:  spec.Warehouses,
		DaysPerYear: spec.DaysPerYear,
		AmortYears:  spec.AmortizationYears,
	})
}

// init sets up the flags shared by all subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (replaces the data/model flags)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "data", "Directory containing the four input CSV tables")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().Float64Var(&budget, "budget", 0, "Annual cost ceiling in dollars (default 1500000)")
	rootCmd.PersistentFlags().IntVar(&daysPerYear, "days-per-year", 0, "Operating days per year for annualization (default 365)")
	rootCmd.PersistentFlags().IntVar(&amortYears, "amortization-years", 0, "Construction cost amortization horizon (default 10)")
	rootCmd.PersistentFlags().IntVar(&requiredOpen, "required-open", 0, "Exact number of warehouses to open (0 = solver's choice)")
	rootCmd.PersistentFlags().StringSliceVar(&facilityIDs, "facilities", nil, "Comma-separated target facility IDs (empty = all)")
	rootCmd.PersistentFlags().StringSliceVar(&warehouseIDs, "warehouses", nil, "Comma-separated target warehouse IDs (empty = all)")
}
