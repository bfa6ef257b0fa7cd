// Package scenario loads the YAML scenario specification: which tables to
// read, which facilities and warehouses to plan over, the budget, and the
// solver limits. This package has no dependencies on plan/ — the CLI wires a
// loaded Spec into the planning pipeline.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Spec is the top-level scenario configuration.
// Loaded from YAML via Load(path).
type Spec struct {
	DataDir string    `yaml:"data_dir,omitempty"` // directory holding the default-named CSVs
	Files   FilesSpec `yaml:"files,omitempty"`    // per-table path overrides

	Budget            float64 `yaml:"budget,omitempty"`             // annual cost ceiling (default 1500000)
	DaysPerYear       int     `yaml:"days_per_year,omitempty"`      // annualization day count (default 365)
	AmortizationYears int     `yaml:"amortization_years,omitempty"` // construction amortization horizon (default 10)
	RequiredOpen      int     `yaml:"required_open,omitempty"`      // exact warehouses to open; 0 = solver's choice

	Facilities []string `yaml:"facilities,omitempty"` // target facility IDs (empty = all)
	Warehouses []string `yaml:"warehouses,omitempty"` // target warehouse IDs (empty = all)

	Solve SolveSpec `yaml:"solve,omitempty"`
}

// FilesSpec overrides individual table paths. Empty fields fall back to the
// default file name under DataDir.
type FilesSpec struct {
	Facilities          string `yaml:"facilities,omitempty"`
	Demands             string `yaml:"demands,omitempty"`
	Warehouses          string `yaml:"warehouses,omitempty"`
	TransportationCosts string `yaml:"transportation_costs,omitempty"`
}

// SolveSpec bounds the external solver.
type SolveSpec struct {
	MaxDuration string  `yaml:"max_duration,omitempty"` // Go duration string, e.g. "30s"
	MIPGap      float64 `yaml:"mip_gap,omitempty"`      // relative gap to accept; 0 = prove optimality
	Verbose     bool    `yaml:"verbose,omitempty"`      // surface solver log output
}

// Default scenario values applied by ApplyDefaults.
const (
	DefaultBudget      = 1_500_000
	DefaultDaysPerYear = 365
	DefaultAmortYears  = 10
)

// Load reads and parses a YAML scenario file. Uses strict parsing:
// unrecognized keys (typos) are rejected.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &spec, nil
}

// ApplyDefaults fills zero-valued fields with the scenario defaults.
// Idempotent.
func (s *Spec) ApplyDefaults() {
	if s.Budget == 0 {
		s.Budget = DefaultBudget
	}
	if s.DaysPerYear == 0 {
		s.DaysPerYear = DefaultDaysPerYear
	}
	if s.AmortizationYears == 0 {
		s.AmortizationYears = DefaultAmortYears
	}
}

// Validate checks that all fields in the spec are valid.
func (s *Spec) Validate() error {
	if s.Budget <= 0 {
		return fmt.Errorf("budget must be positive, got %f", s.Budget)
	}
	if s.DaysPerYear <= 0 {
		return fmt.Errorf("days_per_year must be positive, got %d", s.DaysPerYear)
	}
	if s.AmortizationYears <= 0 {
		return fmt.Errorf("amortization_years must be positive, got %d", s.AmortizationYears)
	}
	if s.RequiredOpen < 0 {
		return fmt.Errorf("required_open must be non-negative, got %d", s.RequiredOpen)
	}
	if s.Solve.MaxDuration != "" {
		if _, err := time.ParseDuration(s.Solve.MaxDuration); err != nil {
			return fmt.Errorf("solve.max_duration: %w", err)
		}
	}
	if s.Solve.MIPGap < 0 {
		return fmt.Errorf("solve.mip_gap must be non-negative, got %f", s.Solve.MIPGap)
	}
	return nil
}

// MaxSolveDuration returns the parsed solve time limit, or 0 when unset.
// Validate has already rejected unparseable values.
func (s *Spec) MaxSolveDuration() time.Duration {
	if s.Solve.MaxDuration == "" {
		return 0
	}
	d, err := time.ParseDuration(s.Solve.MaxDuration)
	if err != nil {
		return 0
	}
	return d
}

// TablePath resolves one table's file path: the explicit override when set,
// otherwise the default name under DataDir.
func (s *Spec) TablePath(override, defaultName string) string {
	if override != "" {
		return override
	}
	return filepath.Join(s.DataDir, defaultName)
}

// FacilitiesPath returns the resolved facilities.csv path.
func (s *Spec) FacilitiesPath() string {
	return s.TablePath(s.Files.Facilities, "facilities.csv")
}

// DemandsPath returns the resolved demands.csv path.
func (s *Spec) DemandsPath() string {
	return s.TablePath(s.Files.Demands, "demands.csv")
}

// WarehousesPath returns the resolved warehouses.csv path.
func (s *Spec) WarehousesPath() string {
	return s.TablePath(s.Files.Warehouses, "warehouses.csv")
}

// TransportationCostsPath returns the resolved transportation_costs.csv path.
func (s *Spec) TransportationCostsPath() string {
	return s.TablePath(s.Files.TransportationCosts, "transportation_costs.csv")
}
