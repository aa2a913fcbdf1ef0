// Package core provides the fundamental data structures for the workplan
// allocation engine.
//
// This package contains the domain models shared by the cascade, scope, and
// allocator engines:
//
//   - Phase: ordered project stages (SD, DD, CD, Bidding, CA)
//   - Discipline: engineering trades (Electrical, Plumbing, Mechanical)
//   - WeightMap: relative weights with clamping normalization
//   - TaskRecord: one unit of billable scope with tags and overrides
//   - Override: unit-count and conditional override behavior, resolved once
//     at library load
//
// Example usage:
//
//	frac := core.WeightMap{"SD": 12, "DD": 40, "CD": 28}.Normalize()
//
//	task := core.TaskRecord{
//		Phase:      core.PhaseCD,
//		Name:       "Construction Documents",
//		BaseWeight: 180,
//		Enabled:    true,
//	}
//
// The core package is designed to be:
//   - Immutable in use (engines never mutate a TaskRecord)
//   - Type-safe with strong domain boundaries
//   - Independent of configuration and transport concerns
package core
