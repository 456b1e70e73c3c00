// Package scoring implements the workload and candidate-scoring primitives
// behind automatic task assignment.
//
// Calculator derives a user's current weekly workload from their assigned
// tasks; Scorer combines skill match and remaining capacity into a single
// composite suitability score. Both are pure with respect to the task
// store: they read current state and never write.
//
// All tunable constants (the 35-hour weekly cap, score weights, alert
// thresholds) live in Policy rather than package constants, so they are
// testable and tenant-configurable.
package scoring
