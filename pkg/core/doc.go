// Package core provides the fundamental data structures of the equilibrium
// pipeline.
//
// This package contains the domain records passed between pipeline stages:
//
//   - EquationSystem: the fixed equation set and ordered unknown list
//   - SolutionBranch: one formal solution returned by the algebra engine
//   - SelectedSolution: the branch designated economically canonical
//   - WelfareResult: clearing residual, allocation, and welfare measures
//   - Warning: non-fatal findings attached to otherwise complete outputs
//
// Every record is created once by its producing stage and never mutated;
// dataflow is strictly forward through the pipeline. The types carry no
// behavior beyond accessors and formatting, so each stage can be tested in
// isolation against hand-built records.
package core
