package core

import (
	"strconv"
	"strings"
)

// Phase represents a project stage used as the first fee-splitting axis.
type Phase string

const (
	// PhaseSD is Schematic Design.
	PhaseSD Phase = "SD"
	// PhaseDD is Design Development.
	PhaseDD Phase = "DD"
	// PhaseCD is Construction Documents.
	PhaseCD Phase = "CD"
	// PhaseBidding is Bidding support.
	PhaseBidding Phase = "Bidding"
	// PhaseCA is Construction Administration.
	PhaseCA Phase = "CA"
)

// Phases is the fixed, ordered phase sequence. Plan assembly and all
// exported output preserve this order.
var Phases = []Phase{PhaseSD, PhaseDD, PhaseCD, PhaseBidding, PhaseCA}

// ValidPhase reports whether p is one of the fixed phase identifiers.
func ValidPhase(p Phase) bool {
	for _, ph := range Phases {
		if p == ph {
			return true
		}
	}
	return false
}

// Discipline represents an engineering trade, the second fee-splitting axis.
type Discipline string

const (
	DisciplineElectrical Discipline = "Electrical"
	DisciplinePlumbing   Discipline = "Plumbing"
	DisciplineMechanical Discipline = "Mechanical"
)

// Disciplines is the fixed, ordered discipline sequence.
var Disciplines = []Discipline{DisciplineElectrical, DisciplinePlumbing, DisciplineMechanical}

// Display returns the human-readable discipline label.
func (d Discipline) Display() string {
	if d == DisciplinePlumbing {
		return "Plumbing / Fire"
	}
	return string(d)
}

// OverrideKind enumerates the special weight-resolution behaviors a task
// may carry. At most one override applies per task.
type OverrideKind int

const (
	// OverrideNone means the task's BaseWeight is used as-is.
	OverrideNone OverrideKind = iota
	// OverrideScaleByUnitCount means the task receives a fixed hour
	// quantity of HoursPerUnit times the user-supplied unit count.
	OverrideScaleByUnitCount
	// OverrideIncludeIf means the task participates only while the named
	// boolean condition holds.
	OverrideIncludeIf
)

// Override is the resolved override behavior for a task. It is parsed once
// when the task library loads, never re-parsed during an allocation run.
type Override struct {
	Kind OverrideKind

	// UnitKey and HoursPerUnit apply to OverrideScaleByUnitCount.
	UnitKey      string
	HoursPerUnit float64

	// ConditionKey applies to OverrideIncludeIf.
	ConditionKey string
}

// TaskRecord represents one unit of billable scope within a discipline's
// task library. Records are read-only to the engines: user edits produce a
// new library snapshot rather than mutating rows in place.
type TaskRecord struct {
	// Phase is the key into the phase WeightMap.
	Phase Phase

	// Name is a human-readable label, not required to be unique.
	Name string

	// BaseWeight is the task's share of its phase's hours before
	// normalization. Non-negative.
	BaseWeight float64

	// Enabled excludes the task entirely when false, regardless of tags.
	Enabled bool

	// Tags is a set of lowercase, trimmed strings consumed by the scope
	// engine. May be empty.
	Tags []string

	// Override is the task's resolved override behavior.
	Override Override
}

// HasTag reports whether the task carries the given tag. The argument is
// normalized before comparison; stored tags are already normalized.
func (t *TaskRecord) HasTag(tag string) bool {
	tag = NormalizeTag(tag)
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// NormalizeTag lowercases and trims a tag or toggle key. Tag comparison is
// case-insensitive everywhere; normalization happens at the boundary so the
// engines compare exact strings.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Legacy tag prefixes carrying override behavior. Earlier snapshot formats
// dispatched on these strings at allocation time; they are now parsed once
// at library load into an Override.
const (
	unitTagPrefix      = "unit:"
	conditionTagPrefix = "requires:"
)

// ParseOverrideTag parses a legacy override tag form:
//
//	unit:<unitKey>:<hoursPerUnit>  -> OverrideScaleByUnitCount
//	requires:<conditionKey>        -> OverrideIncludeIf
//
// Returns ok=false for any other tag. A malformed hoursPerUnit is treated
// as zero rather than an error; the task then contributes zero fixed hours.
func ParseOverrideTag(tag string) (Override, bool) {
	tag = NormalizeTag(tag)
	switch {
	case strings.HasPrefix(tag, unitTagPrefix):
		rest := strings.TrimPrefix(tag, unitTagPrefix)
		key, hoursStr, found := strings.Cut(rest, ":")
		if key == "" {
			return Override{}, false
		}
		hours := 0.0
		if found {
			if v, err := strconv.ParseFloat(hoursStr, 64); err == nil && v > 0 {
				hours = v
			}
		}
		return Override{
			Kind:         OverrideScaleByUnitCount,
			UnitKey:      key,
			HoursPerUnit: hours,
		}, true
	case strings.HasPrefix(tag, conditionTagPrefix):
		key := strings.TrimPrefix(tag, conditionTagPrefix)
		if key == "" {
			return Override{}, false
		}
		return Override{
			Kind:         OverrideIncludeIf,
			ConditionKey: key,
		}, true
	default:
		return Override{}, false
	}
}
