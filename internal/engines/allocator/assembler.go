package allocator

import (
	"context"
	"errors"

	"github.com/mepworks/workplan-generator/internal/collector"
	"github.com/mepworks/workplan-generator/internal/engines/cascade"
	"github.com/mepworks/workplan-generator/internal/engines/scope"
	"github.com/mepworks/workplan-generator/internal/interfaces"
	"github.com/mepworks/workplan-generator/internal/logging"
	"github.com/mepworks/workplan-generator/pkg/config"
	"github.com/mepworks/workplan-generator/pkg/core"
)

// Assembler runs the full pipeline for one snapshot: area cost collection,
// fee cascade, per-phase scope filtering and allocation, and final totals.
type Assembler struct {
	costs *collector.CostCollector
}

// NewAssembler creates an assembler backed by the given cost collector.
func NewAssembler(costs *collector.CostCollector) (*Assembler, error) {
	if costs == nil {
		return nil, errors.New("cost collector cannot be nil")
	}
	return &Assembler{costs: costs}, nil
}

// Assemble produces the complete workplan for a compiled snapshot. The
// returned breakdown carries the cascade intermediates for display next to
// the plan. Assemble never mutates the snapshot; concurrent calls with the
// same snapshot are safe.
func (a *Assembler) Assemble(ctx context.Context, snap *config.Snapshot) (*interfaces.WorkPlan, *interfaces.CascadeBreakdown, error) {
	if snap == nil {
		return nil, nil, errors.New("snapshot cannot be nil")
	}
	logger := logging.FromContext(ctx)

	cost := a.costs.Collect(snap.AreaTable, snap.ConstructionCostPerSF)
	breakdown := cascade.Compute(cascade.ContextFrom(snap, cost))
	logger.V(logging.DEBUG).Info("fee cascade computed",
		"constructionCost", breakdown.ConstructionCost,
		"mepFee", breakdown.MEPFee,
		"areaBased", breakdown.AreaBased)

	plan := &interfaces.WorkPlan{}
	for _, d := range cascade.OrderedDisciplines(breakdown) {
		dp := a.assembleDiscipline(d, snap, breakdown)
		plan.TotalHours += dp.TotalHours
		plan.TotalFee += dp.TotalFee
		plan.Combined = append(plan.Combined, dp.Rows...)
		plan.Disciplines = append(plan.Disciplines, dp)
	}

	logger.V(logging.DEBUG).Info("workplan assembled",
		"disciplines", len(plan.Disciplines),
		"rows", len(plan.Combined),
		"totalHours", plan.TotalHours,
		"totalFee", plan.TotalFee)
	return plan, breakdown, nil
}

func (a *Assembler) assembleDiscipline(d core.Discipline, snap *config.Snapshot, breakdown *interfaces.CascadeBreakdown) interfaces.DisciplinePlan {
	toggles := snap.MergedToggles(d)
	library := snap.Library(d)

	dp := interfaces.DisciplinePlan{Discipline: d}
	for _, p := range core.Phases {
		phaseFee := breakdown.PhaseFees[d][p]
		candidates := scope.Candidates(library, p, toggles, snap.UnitCounts, snap.Conditions)
		rows := Allocate(d, p, phaseFee, snap.BillingRate, candidates)
		if len(rows) == 0 {
			continue
		}

		sub := interfaces.PhaseSubtotal{Phase: p}
		for _, row := range rows {
			sub.Hours += row.Hours
			sub.Fee += row.Fee
		}
		dp.Rows = append(dp.Rows, rows...)
		dp.Subtotals = append(dp.Subtotals, sub)
		dp.TotalHours += sub.Hours
		dp.TotalFee += sub.Fee
	}
	return dp
}
