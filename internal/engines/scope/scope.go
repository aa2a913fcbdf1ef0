// Package scope decides which tasks participate in an allocation run and
// with what weight. It combines the tag filter (scope toggles) with the
// unit-count and conditional override resolver.
package scope

import (
	"github.com/mepworks/workplan-generator/internal/interfaces"
	"github.com/mepworks/workplan-generator/pkg/core"
)

// IsActive reports whether a task participates in allocation given the
// merged toggle map. A disabled task never participates. Otherwise any
// toggle set to false whose key matches one of the task's tags excludes it.
// Unknown toggle keys have no effect.
//
// Toggle maps must already be merged (common plus discipline, discipline
// winning) and key-normalized; see config.Snapshot.MergedToggles.
func IsActive(task *core.TaskRecord, toggles map[string]bool) bool {
	if !task.Enabled {
		return false
	}
	for tag, included := range toggles {
		if included {
			continue
		}
		if task.HasTag(tag) {
			return false
		}
	}
	return true
}

// ResolveWeight resolves a task's effective weight.
//
// Returns ok=false when the task must be dropped entirely (its IncludeIf
// condition is false). For ScaleByUnitCount tasks, weight is an absolute
// hour quantity (hoursPerUnit x count, missing count = 0) and fixed is
// true: the allocator takes those hours off the top of the phase pool
// rather than folding them into the proportional split.
func ResolveWeight(task *core.TaskRecord, unitCounts map[string]int, conditions map[string]bool) (weight float64, fixed bool, ok bool) {
	switch task.Override.Kind {
	case core.OverrideScaleByUnitCount:
		count := unitCounts[task.Override.UnitKey]
		return task.Override.HoursPerUnit * float64(count), true, true
	case core.OverrideIncludeIf:
		if !conditions[task.Override.ConditionKey] {
			return 0, false, false
		}
		return task.BaseWeight, false, true
	default:
		return task.BaseWeight, false, true
	}
}

// Candidates returns the candidate tasks of one phase, in library order,
// after tag filtering and override resolution.
func Candidates(
	library []core.TaskRecord,
	phase core.Phase,
	toggles map[string]bool,
	unitCounts map[string]int,
	conditions map[string]bool,
) []interfaces.CandidateTask {
	var out []interfaces.CandidateTask
	for i := range library {
		task := &library[i]
		if task.Phase != phase {
			continue
		}
		if !IsActive(task, toggles) {
			continue
		}
		weight, fixed, ok := ResolveWeight(task, unitCounts, conditions)
		if !ok {
			continue
		}
		out = append(out, interfaces.CandidateTask{
			Task:       *task,
			Weight:     weight,
			FixedHours: fixed,
		})
	}
	return out
}
