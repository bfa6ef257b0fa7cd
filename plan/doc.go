// Package plan builds and solves the warehouse siting and flow problem.
//
// # Reading Guide
//
// Start with these three files to understand the planning pipeline:
//   - dataset.go: CSV table loading, cross-table validation, annualization
//   - model.go: translation of a Dataset into the mixed-integer program
//   - solve.go: solver invocation, status mapping, and plan extraction
//
// # Architecture
//
// The pipeline is one-way: tables → Dataset → MIP model → solver → Plan.
// A Dataset is immutable after construction; solving never mutates it.
// The MIP itself is delegated to the nextmv solver SDK (HiGHS provider);
// this package only formulates the program and interprets the result.
//
// Sub-packages:
//   - plan/scenario/: YAML scenario specs (budget, filters, solver limits)
//   - plan/geojson/: dependency-free GeoJSON types for the map export
package plan
