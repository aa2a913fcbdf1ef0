package v1alpha1

import (
	"fmt"
	"math"
)

const (
	// APIVersion identifies this revision of the snapshot document schema.
	APIVersion = "workplan.mepworks.io/v1alpha1"

	// KindConfigSnapshot is the document kind for a full configuration
	// snapshot.
	KindConfigSnapshot = "ConfigSnapshot"
)

// ConfigSnapshot is the serialization contract for one allocation run: the
// full set of inputs (rates, splits, toggles, task libraries, unit counts,
// area table) that round-trips losslessly through an external store. The
// engine must be able to reconstruct an identical allocation from this
// document alone.
//
// Missing fields never fail a load; the loader substitutes documented
// defaults per field (see pkg/config).
type ConfigSnapshot struct {
	// APIVersion is the schema revision, e.g. "workplan.mepworks.io/v1alpha1".
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Kind is the document kind, always "ConfigSnapshot".
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Rate is the billing rate specification.
	Rate RateSpec `json:"rate" yaml:"rate"`

	// ConstructionCostPerSF is the construction cost input in $/SF,
	// multiplied by total area to produce the total construction cost.
	ConstructionCostPerSF float64 `json:"constructionCostPerSF" yaml:"constructionCostPerSF"`

	// ArchFeePct is the architectural fee as a percent of construction cost.
	ArchFeePct float64 `json:"archFeePct" yaml:"archFeePct"`

	// MEPFeePct is the MEP fee as a percent of the architectural fee, used
	// when the area table does not drive the fee.
	MEPFeePct float64 `json:"mepFeePct" yaml:"mepFeePct"`

	// PhaseSplit maps phase name to percent. Shared across disciplines.
	// Not required to sum to 100; the engine normalizes.
	PhaseSplit map[string]float64 `json:"phaseSplit" yaml:"phaseSplit"`

	// DisciplinePct maps discipline name to percent of the MEP fee.
	DisciplinePct map[string]float64 `json:"disciplinePct" yaml:"disciplinePct"`

	// UnitInputs holds the user-supplied unit counts and conditions
	// consumed by task overrides.
	UnitInputs UnitInputs `json:"unitInputs" yaml:"unitInputs"`

	// ScopeToggles maps toggle name to include flag, applied to every
	// discipline. A false toggle excludes all tasks carrying that tag.
	ScopeToggles map[string]bool `json:"scopeToggles,omitempty" yaml:"scopeToggles,omitempty"`

	// DisciplineToggles holds per-discipline toggle maps. On key collision
	// with ScopeToggles the discipline value wins.
	DisciplineToggles map[string]map[string]bool `json:"disciplineToggles,omitempty" yaml:"disciplineToggles,omitempty"`

	// AreaTable lists the project spaces feeding the area-based fee.
	AreaTable []AreaRow `json:"areaTable,omitempty" yaml:"areaTable,omitempty"`

	// TaskLibraries maps discipline name to its ordered task library.
	TaskLibraries map[string][]TaskEntry `json:"taskLibraries,omitempty" yaml:"taskLibraries,omitempty"`
}

// RateSpec defines the billing rate: dollars per hour used to convert
// between fee and hours in both directions.
type RateSpec struct {
	// BaseRawRate is the raw hourly cost before multiplier.
	BaseRawRate float64 `json:"baseRawRate" yaml:"baseRawRate"`

	// Multiplier scales the raw rate to the billing rate.
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// BillingRate returns baseRawRate x multiplier.
func (r RateSpec) BillingRate() float64 {
	return r.BaseRawRate * r.Multiplier
}

// UnitInputs holds the unit-count and condition inputs referenced by task
// overrides. Unknown keys referenced by a task simply resolve to zero/false.
type UnitInputs struct {
	// Podium indicates the project includes a podium level.
	Podium bool `json:"podium" yaml:"podium"`

	// LuxUnits, TypUnits and DomUnits are residential unit counts.
	LuxUnits int `json:"luxUnits" yaml:"luxUnits"`
	TypUnits int `json:"typUnits" yaml:"typUnits"`
	DomUnits int `json:"domUnits" yaml:"domUnits"`
}

// AreaRow is one space in the area-based fee calculator.
type AreaRow struct {
	// Name is the user-facing space label.
	Name string `json:"name" yaml:"name"`

	// SpaceType is a key into the $/SF ratebook.
	SpaceType string `json:"spaceType" yaml:"spaceType"`

	// AreaSF is the space area in square feet.
	AreaSF float64 `json:"areaSF" yaml:"areaSF"`

	// OverrideRate replaces the ratebook $/SF when set. Required for
	// space types whose ratebook entry is null.
	OverrideRate *float64 `json:"overrideRate,omitempty" yaml:"overrideRate,omitempty"`
}

// TaskEntry is one TaskRecord-shaped row of a discipline's task library.
type TaskEntry struct {
	// Phase must be one of the fixed phase identifiers.
	Phase string `json:"phase" yaml:"phase"`

	// Task is the human-readable task label.
	Task string `json:"task" yaml:"task"`

	// BaseHours is the task's relative weight within its phase.
	BaseHours float64 `json:"baseHours" yaml:"baseHours"`

	// Enabled defaults to true when omitted.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Tags are scope tags; legacy override tag forms
	// ("unit:<key>:<hoursPerUnit>", "requires:<key>") are still accepted
	// here and compiled into Override at load.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Override declares the task's override behavior explicitly. Takes
	// precedence over legacy tag forms.
	Override *OverrideSpec `json:"override,omitempty" yaml:"override,omitempty"`
}

// Override kinds accepted in OverrideSpec.Kind.
const (
	OverrideKindScaleByUnitCount = "ScaleByUnitCount"
	OverrideKindIncludeIf        = "IncludeIf"
)

// OverrideSpec declares unit-count scaling or conditional inclusion for a
// task.
type OverrideSpec struct {
	// Kind is "ScaleByUnitCount" or "IncludeIf".
	Kind string `json:"kind" yaml:"kind"`

	// UnitKey and HoursPerUnit apply to ScaleByUnitCount.
	UnitKey      string  `json:"unitKey,omitempty" yaml:"unitKey,omitempty"`
	HoursPerUnit float64 `json:"hoursPerUnit,omitempty" yaml:"hoursPerUnit,omitempty"`

	// ConditionKey applies to IncludeIf.
	ConditionKey string `json:"conditionKey,omitempty" yaml:"conditionKey,omitempty"`
}

// Validate checks for structurally invalid values the loader cannot coerce.
// Numeric coercion (negatives, NaN) is the loader's job; Validate only
// rejects documents that cannot mean anything.
func (s *ConfigSnapshot) Validate() error {
	if s.Kind != "" && s.Kind != KindConfigSnapshot {
		return fmt.Errorf("unsupported document kind %q, expected %q", s.Kind, KindConfigSnapshot)
	}
	for disc, lib := range s.TaskLibraries {
		for i, entry := range lib {
			if entry.Task == "" {
				return fmt.Errorf("task library %q row %d: task name is required", disc, i)
			}
			if entry.Override != nil {
				if err := entry.Override.Validate(); err != nil {
					return fmt.Errorf("task library %q row %d: %w", disc, i, err)
				}
			}
		}
	}
	return nil
}

// Validate checks an override declaration.
func (o *OverrideSpec) Validate() error {
	switch o.Kind {
	case OverrideKindScaleByUnitCount:
		if o.UnitKey == "" {
			return fmt.Errorf("override kind %q requires unitKey", o.Kind)
		}
		if o.HoursPerUnit < 0 || math.IsNaN(o.HoursPerUnit) || math.IsInf(o.HoursPerUnit, 0) {
			return fmt.Errorf("override kind %q requires hoursPerUnit >= 0, got %v", o.Kind, o.HoursPerUnit)
		}
	case OverrideKindIncludeIf:
		if o.ConditionKey == "" {
			return fmt.Errorf("override kind %q requires conditionKey", o.Kind)
		}
	default:
		return fmt.Errorf("unsupported override kind %q", o.Kind)
	}
	return nil
}
