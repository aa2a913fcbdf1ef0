// Package cascade implements the fee cascade: the pure arithmetic chain
// from total construction cost down to per-(discipline, phase) fee budgets.
package cascade

import (
	"sort"

	"github.com/mepworks/workplan-generator/internal/collector"
	"github.com/mepworks/workplan-generator/internal/interfaces"
	"github.com/mepworks/workplan-generator/pkg/config"
	"github.com/mepworks/workplan-generator/pkg/core"
)

// Context holds the immutable inputs of one cascade computation. The engine
// never mutates it. All values are assumed non-negative; coercion happens
// at snapshot compile time.
type Context struct {
	// ConstructionCost is the total project construction cost in dollars.
	ConstructionCost float64

	// ArchFeePct is the architectural fee as a percent of construction cost.
	ArchFeePct float64

	// MEPFeePct is the MEP fee as a percent of the architectural fee.
	MEPFeePct float64

	// DisciplinePct splits the MEP fee across disciplines. Raw percents;
	// normalization absorbs any total.
	DisciplinePct core.WeightMap

	// PhaseSplit splits each discipline's fee across phases, shared by all
	// disciplines.
	PhaseSplit core.WeightMap

	// BillingRate is dollars per hour, used downstream by the allocator.
	BillingRate float64

	// AreaBasedMEPFee, when set, replaces the percentage-chain MEP fee
	// with the area-table total.
	AreaBasedMEPFee *float64
}

// ContextFrom builds a cascade context from a compiled snapshot and the
// collected project cost. The area-based fee wins whenever the area table
// produced a positive total; otherwise the percentage chain applies.
func ContextFrom(snap *config.Snapshot, cost *collector.ProjectCost) Context {
	ctx := Context{
		ArchFeePct:    snap.ArchFeePct,
		MEPFeePct:     snap.MEPFeePct,
		DisciplinePct: snap.DisciplinePct,
		PhaseSplit:    snap.PhaseSplit,
		BillingRate:   snap.BillingRate,
	}
	if cost != nil {
		ctx.ConstructionCost = cost.ConstructionCost
		if cost.AreaBasedMEPFee > 0 {
			fee := cost.AreaBasedMEPFee
			ctx.AreaBasedMEPFee = &fee
		}
	}
	return ctx
}

// Compute runs the cascade:
//
//	archFee          = constructionCost x archFeePct/100
//	mepFee           = archFee x mepFeePct/100   (or the area-based total)
//	disciplineFee[d] = mepFee x normalize(disciplinePct)[d]
//	phaseFee[d,p]    = disciplineFee[d] x normalize(phaseSplit)[p]
//
// Discipline percentages are not required to sum to 100; the raw totals are
// reported on the breakdown for UI validation badges.
func Compute(ctx Context) *interfaces.CascadeBreakdown {
	breakdown := &interfaces.CascadeBreakdown{
		ConstructionCost:   ctx.ConstructionCost,
		ArchFee:            ctx.ConstructionCost * ctx.ArchFeePct / 100,
		DisciplineFees:     make(map[core.Discipline]float64, len(ctx.DisciplinePct)),
		PhaseFees:          make(map[core.Discipline]map[core.Phase]float64, len(ctx.DisciplinePct)),
		RawDisciplineTotal: ctx.DisciplinePct.Sum(),
		RawPhaseTotal:      ctx.PhaseSplit.Sum(),
	}

	if ctx.AreaBasedMEPFee != nil {
		breakdown.MEPFee = *ctx.AreaBasedMEPFee
		breakdown.AreaBased = true
	} else {
		breakdown.MEPFee = breakdown.ArchFee * ctx.MEPFeePct / 100
	}

	discFrac := ctx.DisciplinePct.Normalize()
	phaseFrac := ctx.PhaseSplit.Normalize()

	for name, frac := range discFrac {
		d := core.Discipline(name)
		fee := breakdown.MEPFee * frac
		breakdown.DisciplineFees[d] = fee

		phaseFees := make(map[core.Phase]float64, len(core.Phases))
		for _, p := range core.Phases {
			phaseFees[p] = fee * phaseFrac[string(p)]
		}
		breakdown.PhaseFees[d] = phaseFees
	}

	return breakdown
}

// OrderedDisciplines returns the breakdown's disciplines in deterministic
// output order: the fixed discipline sequence first, then any additional
// disciplines sorted by name.
func OrderedDisciplines(b *interfaces.CascadeBreakdown) []core.Discipline {
	ordered := make([]core.Discipline, 0, len(b.DisciplineFees))
	seen := make(map[core.Discipline]bool, len(b.DisciplineFees))
	for _, d := range core.Disciplines {
		if _, ok := b.DisciplineFees[d]; ok {
			ordered = append(ordered, d)
			seen[d] = true
		}
	}
	var extra []string
	for d := range b.DisciplineFees {
		if !seen[d] {
			extra = append(extra, string(d))
		}
	}
	sort.Strings(extra)
	for _, d := range extra {
		ordered = append(ordered, core.Discipline(d))
	}
	return ordered
}
