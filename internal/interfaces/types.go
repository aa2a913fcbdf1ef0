// Package interfaces defines the shared decision and result types exchanged
// between the cascade, scope, and allocator engines. Keeping them here avoids
// import cycles between the engine packages.
package interfaces

import (
	"github.com/mepworks/workplan-generator/pkg/core"
)

// CandidateTask is a task that passed scope filtering, carrying the weight
// the allocator should use in place of BaseWeight.
type CandidateTask struct {
	// Task is the underlying library record.
	Task core.TaskRecord

	// Weight is the resolved weight. For fixed-hour tasks this is an
	// absolute hour quantity rather than a proportional weight.
	Weight float64

	// FixedHours marks unit-count-driven tasks whose Weight is an absolute
	// hour quantity taken off the top of the phase pool.
	FixedHours bool
}

// AllocationRow is one line of an assembled workplan: a task with its
// allocated hours and fee. Hours are rounded to one decimal and fees to
// whole dollars; rounding happens only when rows are emitted.
type AllocationRow struct {
	Discipline core.Discipline `json:"discipline"`
	Phase      core.Phase      `json:"phase"`
	Task       string          `json:"task"`
	Hours      float64         `json:"hours"`
	Fee        float64         `json:"fee"`
}

// PhaseSubtotal aggregates the rows of one phase within a discipline.
type PhaseSubtotal struct {
	Phase core.Phase `json:"phase"`
	Hours float64    `json:"hours"`
	Fee   float64    `json:"fee"`
}

// DisciplinePlan is the assembled plan for a single discipline.
type DisciplinePlan struct {
	Discipline core.Discipline `json:"discipline"`

	// Rows preserve phase order, then task-library order within a phase.
	Rows []AllocationRow `json:"rows"`

	// Subtotals lists per-phase totals in phase order. Phases that
	// produced no rows are omitted.
	Subtotals []PhaseSubtotal `json:"subtotals"`

	TotalHours float64 `json:"totalHours"`
	TotalFee   float64 `json:"totalFee"`
}

// WorkPlan is the full assembled output across all disciplines.
type WorkPlan struct {
	// Disciplines preserves the fixed discipline order.
	Disciplines []DisciplinePlan `json:"disciplines"`

	// Combined is the flat cross-discipline table in export column order.
	Combined []AllocationRow `json:"combined"`

	TotalHours float64 `json:"totalHours"`
	TotalFee   float64 `json:"totalFee"`
}

// CascadeBreakdown holds every intermediate figure of the fee cascade for
// one allocation run, from the top-level construction cost down to the
// per-(discipline, phase) budgets.
type CascadeBreakdown struct {
	ConstructionCost float64 `json:"constructionCost"`
	ArchFee          float64 `json:"archFee"`

	// MEPFee is the total fee distributed to the disciplines. AreaBased
	// records whether it came from the area table rather than the
	// percentage chain.
	MEPFee    float64 `json:"mepFee"`
	AreaBased bool    `json:"areaBased"`

	DisciplineFees map[core.Discipline]float64                `json:"disciplineFees"`
	PhaseFees      map[core.Discipline]map[core.Phase]float64 `json:"phaseFees"`

	// RawDisciplineTotal and RawPhaseTotal are the un-normalized
	// percentage sums, surfaced as input-validation badges.
	RawDisciplineTotal float64 `json:"rawDisciplineTotal"`
	RawPhaseTotal      float64 `json:"rawPhaseTotal"`
}
