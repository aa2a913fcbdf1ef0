// Package export renders assembled workplans for external consumers: a flat
// CSV table for spreadsheet import and a JSON document pairing the plan with
// its fee-cascade breakdown.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mepworks/workplan-generator/internal/interfaces"
)

// csvHeader is the fixed column order of the flat export.
var csvHeader = []string{"discipline", "phase", "task", "hours", "fee"}

// WriteCSV writes the plan's combined row table as CSV. One row per
// allocation row, discipline order preserved, hours with one decimal and
// fees as whole dollars.
func WriteCSV(w io.Writer, plan *interfaces.WorkPlan) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range plan.Combined {
		record := []string{
			string(row.Discipline),
			string(row.Phase),
			row.Task,
			strconv.FormatFloat(row.Hours, 'f', 1, 64),
			strconv.FormatFloat(row.Fee, 'f', 0, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Result is the JSON export document: the assembled plan together with the
// cascade figures it was computed from.
type Result struct {
	Plan      *interfaces.WorkPlan         `json:"plan"`
	Breakdown *interfaces.CascadeBreakdown `json:"breakdown"`
}

// WriteJSON writes the plan and breakdown as an indented JSON document.
func WriteJSON(w io.Writer, plan *interfaces.WorkPlan, breakdown *interfaces.CascadeBreakdown) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Result{Plan: plan, Breakdown: breakdown}); err != nil {
		return fmt.Errorf("encoding workplan JSON: %w", err)
	}
	return nil
}
