package plan

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// TablePaths locates the four input CSV files.
type TablePaths struct {
	Facilities          string
	Demands             string
	Warehouses          string
	TransportationCosts string
}

// Expected CSV headers. Column order is part of the data contract:
//
//	facilities.csv:           facility_id,facility_name,latitude,longitude
//	demands.csv:              facility_id,daily_demand
//	warehouses.csv:           warehouse_id,warehouse_name,latitude,longitude,construction_cost,operational_cost,capacity
//	transportation_costs.csv: from_warehouse,to_facility,cost_per_unit
var (
	facilitiesHeader = []string{"facility_id", "facility_name", "latitude", "longitude"}
	demandsHeader    = []string{"facility_id", "daily_demand"}
	warehousesHeader = []string{"warehouse_id", "warehouse_name", "latitude", "longitude", "construction_cost", "operational_cost", "capacity"}
	costsHeader      = []string{"from_warehouse", "to_facility", "cost_per_unit"}
)

// LoadTables reads the four input tables from disk. Structural problems
// (missing file, bad header, malformed cell, negative quantity, duplicate ID)
// surface as DataError; cross-table consistency is checked later by NewDataset.
func LoadTables(paths TablePaths) (*Tables, error) {
	t := &Tables{
		Demands:   make(map[string]float64),
		UnitCosts: make(map[CostKey]float64),
	}
	if err := readTable(paths.Facilities, "facilities", facilitiesHeader, func(row int, rec []string) error {
		lat, err := parseFloat("facilities", row, "latitude", rec[2])
		if err != nil {
			return err
		}
		lon, err := parseFloat("facilities", row, "longitude", rec[3])
		if err != nil {
			return err
		}
		for _, f := range t.Facilities {
			if f.ID == rec[0] {
				return dataErrorf("facilities", "duplicate facility_id %q at row %d", rec[0], row)
			}
		}
		t.Facilities = append(t.Facilities, Facility{ID: rec[0], Name: rec[1], Latitude: lat, Longitude: lon})
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readTable(paths.Demands, "demands", demandsHeader, func(row int, rec []string) error {
		demand, err := parseNonNegative("demands", row, "daily_demand", rec[1])
		if err != nil {
			return err
		}
		if _, dup := t.Demands[rec[0]]; dup {
			return dataErrorf("demands", "duplicate facility_id %q at row %d", rec[0], row)
		}
		t.Demands[rec[0]] = demand
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readTable(paths.Warehouses, "warehouses", warehousesHeader, func(row int, rec []string) error {
		lat, err := parseFloat("warehouses", row, "latitude", rec[2])
		if err != nil {
			return err
		}
		lon, err := parseFloat("warehouses", row, "longitude", rec[3])
		if err != nil {
			return err
		}
		construction, err := parseNonNegative("warehouses", row, "construction_cost", rec[4])
		if err != nil {
			return err
		}
		operational, err := parseNonNegative("warehouses", row, "operational_cost", rec[5])
		if err != nil {
			return err
		}
		capacity, err := parseNonNegative("warehouses", row, "capacity", rec[6])
		if err != nil {
			return err
		}
		for _, w := range t.Warehouses {
			if w.ID == rec[0] {
				return dataErrorf("warehouses", "duplicate warehouse_id %q at row %d", rec[0], row)
			}
		}
		t.Warehouses = append(t.Warehouses, Warehouse{
			ID: rec[0], Name: rec[1], Latitude: lat, Longitude: lon,
			ConstructionCost: construction, OperationalCost: operational, DailyCapacity: capacity,
		})
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readTable(paths.TransportationCosts, "transportation_costs", costsHeader, func(row int, rec []string) error {
		cost, err := parseNonNegative("transportation_costs", row, "cost_per_unit", rec[2])
		if err != nil {
			return err
		}
		key := CostKey{Warehouse: rec[0], Facility: rec[1]}
		if _, dup := t.UnitCosts[key]; dup {
			return dataErrorf("transportation_costs", "duplicate (warehouse, facility) pair (%s, %s) at row %d", rec[0], rec[1], row)
		}
		t.UnitCosts[key] = cost
		return nil
	}); err != nil {
		return nil, err
	}

	logrus.Debugf("loaded tables: %d facilities, %d warehouses, %d demand rows, %d cost rows",
		len(t.Facilities), len(t.Warehouses), len(t.Demands), len(t.UnitCosts))
	return t, nil
}

// readTable opens a CSV file, checks its header, and applies fn to each row.
func readTable(path, table string, header []string, fn func(row int, rec []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s table: %w", table, err)
	}
	defer file.Close() //nolint:errcheck // read-only file; close error is not actionable

	reader := csv.NewReader(file)
	got, err := reader.Read()
	if err != nil {
		return dataErrorf(table, "reading header: %v", err)
	}
	if len(got) != len(header) {
		return dataErrorf(table, "header has %d columns, expected %d (%v)", len(got), len(header), header)
	}
	for i, name := range header {
		if got[i] != name {
			return dataErrorf(table, "header column %d is %q, expected %q", i, got[i], name)
		}
	}

	row := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return dataErrorf(table, "reading row %d: %v", row, err)
		}
		if err := fn(row, rec); err != nil {
			return err
		}
	}
	if row == 0 {
		return dataErrorf(table, "table is empty")
	}
	return nil
}

func parseFloat(table string, row int, column, cell string) (float64, error) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, dataErrorf(table, "row %d: %s %q is not a number", row, column, cell)
	}
	return v, nil
}

func parseNonNegative(table string, row int, column, cell string) (float64, error) {
	v, err := parseFloat(table, row, column, cell)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, dataErrorf(table, "row %d: %s must be non-negative, got %v", row, column, v)
	}
	return v, nil
}

// NewDataset filters the raw tables to the scenario's target IDs, verifies
// cross-table consistency, and annualizes all quantities. The returned
// Dataset is the immutable context everything downstream reads from.
func NewDataset(t *Tables, opts DatasetOptions) (*Dataset, error) {
	if opts.DaysPerYear <= 0 {
		opts.DaysPerYear = DefaultDaysPerYear
	}
	if opts.AmortYears <= 0 {
		opts.AmortYears = DefaultAmortYears
	}

	facilityIDs := make(map[string]bool, len(t.Facilities))
	for _, f := range t.Facilities {
		facilityIDs[f.ID] = true
	}
	warehouseIDs := make(map[string]bool, len(t.Warehouses))
	for _, w := range t.Warehouses {
		warehouseIDs[w.ID] = true
	}

	// Demand rows must reference known facilities and vice versa; a facility
	// without a demand row has undefined demand, not zero.
	for id := range t.Demands {
		if !facilityIDs[id] {
			return nil, dataErrorf("demands", "facility_id %q not present in facilities table", id)
		}
	}
	// Cost rows may cover pairs outside the selected targets (they are
	// skipped), but never unknown IDs.
	for key := range t.UnitCosts {
		if !warehouseIDs[key.Warehouse] {
			return nil, dataErrorf("transportation_costs", "from_warehouse %q not present in warehouses table", key.Warehouse)
		}
		if !facilityIDs[key.Facility] {
			return nil, dataErrorf("transportation_costs", "to_facility %q not present in facilities table", key.Facility)
		}
	}

	facilities, err := selectFacilities(t.Facilities, opts.Facilities)
	if err != nil {
		return nil, err
	}
	warehouses, err := selectWarehouses(t.Warehouses, opts.Warehouses)
	if err != nil {
		return nil, err
	}

	days := float64(opts.DaysPerYear)
	ds := &Dataset{
		Facilities:      facilities,
		Warehouses:      warehouses,
		AnnualDemand:    make(map[string]float64, len(facilities)),
		AnnualCapacity:  make(map[string]float64, len(warehouses)),
		AnnualFixedCost: make(map[string]float64, len(warehouses)),
		UnitCost:        make(map[CostKey]float64, len(facilities)*len(warehouses)),
	}

	for _, f := range facilities {
		daily, ok := t.Demands[f.ID]
		if !ok {
			return nil, dataErrorf("demands", "facility %q has no demand row", f.ID)
		}
		ds.AnnualDemand[f.ID] = daily * days
	}
	for _, w := range warehouses {
		ds.AnnualCapacity[w.ID] = w.DailyCapacity * days
		ds.AnnualFixedCost[w.ID] = w.ConstructionCost/float64(opts.AmortYears) + w.OperationalCost*days
	}

	// Data-completeness invariant: every selected (warehouse, facility) pair
	// needs a defined unit cost, or the model would have undefined terms.
	for _, w := range warehouses {
		for _, f := range facilities {
			key := CostKey{Warehouse: w.ID, Facility: f.ID}
			cost, ok := t.UnitCosts[key]
			if !ok {
				return nil, dataErrorf("transportation_costs", "no cost for pair (%s, %s)", w.ID, f.ID)
			}
			ds.UnitCost[key] = cost
		}
	}

	logrus.Infof("dataset ready: %d facilities, %d warehouses, total annual demand %.0f units",
		len(ds.Facilities), len(ds.Warehouses), ds.TotalDemand())
	return ds, nil
}

func selectFacilities(all []Facility, targets []string) ([]Facility, error) {
	if len(targets) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(targets))
	for _, id := range targets {
		want[id] = true
	}
	var selected []Facility
	for _, f := range all {
		if want[f.ID] {
			selected = append(selected, f)
			delete(want, f.ID)
		}
	}
	for id := range want {
		return nil, dataErrorf("facilities", "target facility %q not present in facilities table", id)
	}
	return selected, nil
}

func selectWarehouses(all []Warehouse, targets []string) ([]Warehouse, error) {
	if len(targets) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(targets))
	for _, id := range targets {
		want[id] = true
	}
	var selected []Warehouse
	for _, w := range all {
		if want[w.ID] {
			selected = append(selected, w)
			delete(want, w.ID)
		}
	}
	for id := range want {
		return nil, dataErrorf("warehouses", "target warehouse %q not present in warehouses table", id)
	}
	return selected, nil
}
