package config

import (
	"fmt"
	"math"

	v1alpha1 "github.com/mepworks/workplan-generator/api/v1alpha1"
	"github.com/mepworks/workplan-generator/internal/logging"
	"github.com/mepworks/workplan-generator/pkg/core"
)

// Snapshot is the compiled, precondition-clean runtime form of a
// configuration document. All numeric coercion (negatives and non-finite
// values to zero), tag normalization, and override resolution happen here
// once, so the engines can assume valid inputs on entry.
//
// A Snapshot is immutable after Compile; one allocation run reads exactly
// one Snapshot and is fully reproducible from it.
type Snapshot struct {
	// BillingRate is baseRawRate x multiplier, dollars per hour.
	BillingRate float64

	// Rate preserves the raw rate inputs for display and re-serialization.
	Rate v1alpha1.RateSpec

	ConstructionCostPerSF float64
	ArchFeePct            float64
	MEPFeePct             float64

	// PhaseSplit and DisciplinePct are raw (un-normalized) weight maps.
	PhaseSplit    core.WeightMap
	DisciplinePct core.WeightMap

	// UnitCounts maps normalized unit keys to their counts.
	UnitCounts map[string]int

	// Conditions maps normalized condition keys to their state.
	Conditions map[string]bool

	// CommonToggles applies to every discipline; DisciplineToggles holds
	// per-discipline overrides that win on key collision. Keys are
	// normalized.
	CommonToggles     map[string]bool
	DisciplineToggles map[core.Discipline]map[string]bool

	// AreaTable is the coerced space mix feeding the area-based fee.
	AreaTable []v1alpha1.AreaRow

	// Libraries holds the compiled task library per discipline, in
	// document order.
	Libraries map[core.Discipline][]core.TaskRecord
}

// Compile validates and compiles a snapshot document into its runtime form.
func Compile(doc *v1alpha1.ConfigSnapshot) (*Snapshot, error) {
	if doc == nil {
		return nil, fmt.Errorf("snapshot document cannot be nil")
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot document: %w", err)
	}

	snap := &Snapshot{
		Rate: v1alpha1.RateSpec{
			BaseRawRate: clampNumber(doc.Rate.BaseRawRate),
			Multiplier:  clampNumber(doc.Rate.Multiplier),
		},
		ConstructionCostPerSF: clampNumber(doc.ConstructionCostPerSF),
		ArchFeePct:            clampNumber(doc.ArchFeePct),
		MEPFeePct:             clampNumber(doc.MEPFeePct),
		PhaseSplit:            compileWeights(doc.PhaseSplit),
		DisciplinePct:         compileWeights(doc.DisciplinePct),
		UnitCounts:            compileUnitCounts(doc.UnitInputs),
		Conditions:            compileConditions(doc.UnitInputs),
		CommonToggles:         compileToggles(doc.ScopeToggles),
		DisciplineToggles:     make(map[core.Discipline]map[string]bool, len(doc.DisciplineToggles)),
		AreaTable:             compileAreaTable(doc.AreaTable),
		Libraries:             make(map[core.Discipline][]core.TaskRecord, len(doc.TaskLibraries)),
	}
	snap.BillingRate = snap.Rate.BillingRate()

	for disc, toggles := range doc.DisciplineToggles {
		snap.DisciplineToggles[core.Discipline(disc)] = compileToggles(toggles)
	}
	for disc, lib := range doc.TaskLibraries {
		snap.Libraries[core.Discipline(disc)] = compileLibrary(disc, lib)
	}

	return snap, nil
}

// MergedToggles returns the effective toggle map for a discipline: common
// toggles with the discipline's own toggles layered on top. Collisions
// resolve to the discipline value. The result is a fresh map.
func (s *Snapshot) MergedToggles(d core.Discipline) map[string]bool {
	merged := make(map[string]bool, len(s.CommonToggles)+len(s.DisciplineToggles[d]))
	for k, v := range s.CommonToggles {
		merged[k] = v
	}
	for k, v := range s.DisciplineToggles[d] {
		merged[k] = v
	}
	return merged
}

// Library returns the compiled task library for a discipline, or nil if the
// snapshot carries none.
func (s *Snapshot) Library(d core.Discipline) []core.TaskRecord {
	return s.Libraries[d]
}

// TotalAreaSF returns the summed area of all spaces.
func (s *Snapshot) TotalAreaSF() float64 {
	total := 0.0
	for _, row := range s.AreaTable {
		total += row.AreaSF
	}
	return total
}

// clampNumber coerces negatives, NaN and infinities to zero. This is the
// single choke point for the "invalid numeric input" policy.
func clampNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func compileWeights(raw map[string]float64) core.WeightMap {
	out := make(core.WeightMap, len(raw))
	for k, v := range raw {
		out[k] = clampNumber(v)
	}
	return out
}

func compileUnitCounts(u v1alpha1.UnitInputs) map[string]int {
	counts := map[string]int{
		core.NormalizeTag("luxUnits"): u.LuxUnits,
		core.NormalizeTag("typUnits"): u.TypUnits,
		core.NormalizeTag("domUnits"): u.DomUnits,
	}
	for k, v := range counts {
		if v < 0 {
			counts[k] = 0
		}
	}
	return counts
}

func compileConditions(u v1alpha1.UnitInputs) map[string]bool {
	return map[string]bool{
		core.NormalizeTag("podium"): u.Podium,
	}
}

func compileToggles(raw map[string]bool) map[string]bool {
	out := make(map[string]bool, len(raw))
	for k, v := range raw {
		out[core.NormalizeTag(k)] = v
	}
	return out
}

func compileAreaTable(rows []v1alpha1.AreaRow) []v1alpha1.AreaRow {
	out := make([]v1alpha1.AreaRow, 0, len(rows))
	for _, row := range rows {
		row.AreaSF = clampNumber(row.AreaSF)
		if row.OverrideRate != nil {
			v := clampNumber(*row.OverrideRate)
			row.OverrideRate = &v
		}
		out = append(out, row)
	}
	return out
}

// compileLibrary converts document rows into TaskRecords. Override behavior
// is resolved here, once: an explicit override spec wins; otherwise the
// first legacy override tag is honored and stripped from the tag set. Rows
// with an unknown phase are skipped rather than failing the load.
func compileLibrary(discipline string, entries []v1alpha1.TaskEntry) []core.TaskRecord {
	out := make([]core.TaskRecord, 0, len(entries))
	for _, entry := range entries {
		phase := core.Phase(entry.Phase)
		if !core.ValidPhase(phase) {
			logging.Log.Info("Skipping task with unknown phase",
				"discipline", discipline,
				"task", entry.Task,
				"phase", entry.Phase)
			continue
		}

		task := core.TaskRecord{
			Phase:      phase,
			Name:       entry.Task,
			BaseWeight: clampNumber(entry.BaseHours),
			Enabled:    entry.Enabled == nil || *entry.Enabled,
		}

		if entry.Override != nil {
			task.Override = compileOverride(entry.Override)
		}

		for _, tag := range entry.Tags {
			if ov, ok := core.ParseOverrideTag(tag); ok {
				if task.Override.Kind == core.OverrideNone {
					task.Override = ov
				}
				continue
			}
			if normalized := core.NormalizeTag(tag); normalized != "" {
				task.Tags = append(task.Tags, normalized)
			}
		}

		out = append(out, task)
	}
	return out
}

func compileOverride(spec *v1alpha1.OverrideSpec) core.Override {
	switch spec.Kind {
	case v1alpha1.OverrideKindScaleByUnitCount:
		return core.Override{
			Kind:         core.OverrideScaleByUnitCount,
			UnitKey:      core.NormalizeTag(spec.UnitKey),
			HoursPerUnit: clampNumber(spec.HoursPerUnit),
		}
	case v1alpha1.OverrideKindIncludeIf:
		return core.Override{
			Kind:         core.OverrideIncludeIf,
			ConditionKey: core.NormalizeTag(spec.ConditionKey),
		}
	default:
		// Validate rejected unknown kinds already.
		return core.Override{}
	}
}
