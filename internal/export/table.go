package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mepworks/workplan-generator/internal/interfaces"
)

// WriteTable writes a human-readable plan: a cascade summary followed by one
// section per discipline with per-phase subtotals and a grand total.
func WriteTable(w io.Writer, plan *interfaces.WorkPlan, breakdown *interfaces.CascadeBreakdown) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}

	if breakdown != nil {
		feeSource := "% of arch fee"
		if breakdown.AreaBased {
			feeSource = "area table"
		}
		fmt.Fprintf(w, "Construction cost: $%.0f\n", breakdown.ConstructionCost)
		fmt.Fprintf(w, "Architectural fee: $%.0f\n", breakdown.ArchFee)
		fmt.Fprintf(w, "MEP fee:           $%.0f (%s)\n\n", breakdown.MEPFee, feeSource)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, dp := range plan.Disciplines {
		fmt.Fprintf(tw, "%s\n", dp.Discipline.Display())
		fmt.Fprintf(tw, "  Phase\tTask\tHours\tFee\n")
		for _, row := range dp.Rows {
			fmt.Fprintf(tw, "  %s\t%s\t%.1f\t$%.0f\n", row.Phase, row.Task, row.Hours, row.Fee)
		}
		for _, sub := range dp.Subtotals {
			fmt.Fprintf(tw, "  %s subtotal\t\t%.1f\t$%.0f\n", sub.Phase, sub.Hours, sub.Fee)
		}
		fmt.Fprintf(tw, "  Total\t\t%.1f\t$%.0f\n\n", dp.TotalHours, dp.TotalFee)
	}
	fmt.Fprintf(tw, "Grand total\t\t%.1f\t$%.0f\n", plan.TotalHours, plan.TotalFee)
	return tw.Flush()
}
