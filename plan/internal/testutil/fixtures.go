// Package testutil provides shared test fixtures for the planner: a small
// campus-logistics CSV corpus matching the documented table contract, and a
// relative-tolerance float assertion.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// Campus CSV fixtures. Three facilities, three candidate warehouses, full
// cost matrix. Daily demand totals 260 units; WH_NORTH and WH_SOUTH together
// cover it, WH_EAST alone does not.
const (
	FacilitiesCSV = `facility_id,facility_name,latitude,longitude
MED_CENTER,Medical Center,41.5034,-81.6064
ENG_BUILDING,Engineering Building,41.5021,-81.6082
DORM_A,Dormitory A,41.5009,-81.6035
`

	DemandsCSV = `facility_id,daily_demand
MED_CENTER,120
ENG_BUILDING,80
DORM_A,60
`

	WarehousesCSV = `warehouse_id,warehouse_name,latitude,longitude,construction_cost,operational_cost,capacity
WH_NORTH,North Depot,41.5102,-81.6110,900000,250,200
WH_SOUTH,South Depot,41.4957,-81.6001,700000,210,150
WH_EAST,East Depot,41.5048,-81.5923,500000,180,100
`

	CostsCSV = `from_warehouse,to_facility,cost_per_unit
WH_NORTH,MED_CENTER,1.20
WH_NORTH,ENG_BUILDING,1.45
WH_NORTH,DORM_A,1.90
WH_SOUTH,MED_CENTER,1.60
WH_SOUTH,ENG_BUILDING,1.30
WH_SOUTH,DORM_A,1.10
WH_EAST,MED_CENTER,2.10
WH_EAST,ENG_BUILDING,1.80
WH_EAST,DORM_A,1.50
`
)

// WriteDataDir writes the campus fixture tables into a temp directory with
// their default file names and returns the directory path.
func WriteDataDir(t *testing.T) string {
	t.Helper()
	return WriteDataDirWith(t, FacilitiesCSV, DemandsCSV, WarehousesCSV, CostsCSV)
}

// WriteDataDirWith writes the given table contents into a temp directory,
// letting a test swap in a malformed table.
func WriteDataDirWith(t *testing.T, facilities, demands, warehouses, costs string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"facilities.csv":           facilities,
		"demands.csv":              demands,
		"warehouses.csv":           warehouses,
		"transportation_costs.csv": costs,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}
	return dir
}

// AssertFloatEqual compares two float64 values with relative tolerance.
func AssertFloatEqual(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
