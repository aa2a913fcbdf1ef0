// Package allocator distributes per-phase fee budgets across candidate
// tasks and assembles the full multi-discipline workplan.
package allocator

import (
	"math"

	"github.com/mepworks/workplan-generator/internal/interfaces"
	"github.com/mepworks/workplan-generator/pkg/core"
)

// SentinelNoTasks is the task name of the row emitted for a phase that has
// a fee budget but no participating tasks. The phase's budget is dropped,
// not redistributed.
const SentinelNoTasks = "No tasks enabled"

// Allocate distributes one phase's fee budget across the candidate tasks.
//
// phaseHours = phaseFee / billingRate (zero when the rate is non-positive:
// hours are undefined, a defined output rather than an error). Fixed-hour
// candidates take their absolute hours off the top of the pool; the
// remaining hours are split across the weighted candidates in proportion to
// their weights. A non-positive weighted sum leaves the weighted candidates
// at zero hours. Fee follows from hours times the billing rate.
//
// Rounding (hours to one decimal, fees to whole dollars) happens here, at
// the output boundary, and nowhere upstream.
func Allocate(
	discipline core.Discipline,
	phase core.Phase,
	phaseFee float64,
	billingRate float64,
	candidates []interfaces.CandidateTask,
) []interfaces.AllocationRow {
	if len(candidates) == 0 {
		if phaseFee > 0 {
			return []interfaces.AllocationRow{{
				Discipline: discipline,
				Phase:      phase,
				Task:       SentinelNoTasks,
				Hours:      0,
				Fee:        0,
			}}
		}
		return nil
	}

	phaseHours := 0.0
	if billingRate > 0 {
		phaseHours = phaseFee / billingRate
	}

	fixedTotal := 0.0
	weightedSum := 0.0
	for _, c := range candidates {
		if c.FixedHours {
			fixedTotal += c.Weight
		} else {
			weightedSum += c.Weight
		}
	}

	remainder := phaseHours - fixedTotal
	if remainder < 0 {
		remainder = 0
	}

	rows := make([]interfaces.AllocationRow, 0, len(candidates))
	for _, c := range candidates {
		var hours float64
		switch {
		case c.FixedHours:
			hours = c.Weight
		case weightedSum > 0:
			hours = c.Weight / weightedSum * remainder
		}
		rows = append(rows, interfaces.AllocationRow{
			Discipline: discipline,
			Phase:      phase,
			Task:       c.Task.Name,
			Hours:      roundHours(hours),
			Fee:        roundFee(hours * billingRate),
		})
	}
	return rows
}

// roundHours rounds to one decimal for display.
func roundHours(h float64) float64 {
	return math.Round(h*10) / 10
}

// roundFee rounds to the nearest whole dollar.
func roundFee(f float64) float64 {
	return math.Round(f)
}
