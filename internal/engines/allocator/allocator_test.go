package allocator

import (
	"math"
	"testing"

	"github.com/mepworks/workplan-generator/internal/interfaces"
	"github.com/mepworks/workplan-generator/pkg/core"
)

func candidate(name string, weight float64, fixed bool) interfaces.CandidateTask {
	return interfaces.CandidateTask{
		Task:       core.TaskRecord{Phase: core.PhaseCD, Name: name, BaseWeight: weight, Enabled: true},
		Weight:     weight,
		FixedHours: fixed,
	}
}

func TestAllocate_ProportionalSplit(t *testing.T) {
	rate := 201.6
	candidates := []interfaces.CandidateTask{
		candidate("A", 60, false),
		candidate("B", 30, false),
		candidate("C", 10, false),
	}

	rows := Allocate(core.DisciplineElectrical, core.PhaseCD, 20_160, rate, candidates)
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	// 20160 / 201.6 = 100 hours split 60/30/10.
	wantHours := []float64{60, 30, 10}
	for i, row := range rows {
		if row.Hours != wantHours[i] {
			t.Errorf("rows[%d].Hours = %v, want %v", i, row.Hours, wantHours[i])
		}
	}

	// Fees sum back to the phase budget within rounding tolerance.
	feeSum := 0.0
	for _, row := range rows {
		feeSum += row.Fee
	}
	if math.Abs(feeSum-20_160) > float64(len(rows)) {
		t.Errorf("fee sum = %v, want 20160 within rounding", feeSum)
	}
}

func TestAllocate_FeeConservation(t *testing.T) {
	cases := []struct {
		name       string
		phaseFee   float64
		candidates []interfaces.CandidateTask
	}{
		{
			name:     "weighted only",
			phaseFee: 14_700,
			candidates: []interfaces.CandidateTask{
				candidate("A", 7, false),
				candidate("B", 13, false),
				candidate("C", 3, false),
			},
		},
		{
			name:     "fixed plus weighted",
			phaseFee: 14_700,
			candidates: []interfaces.CandidateTask{
				candidate("Fixed", 12, true),
				candidate("A", 40, false),
				candidate("B", 25, false),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := Allocate(core.DisciplineMechanical, core.PhaseDD, tc.phaseFee, 201.6, tc.candidates)
			sum := 0.0
			for _, row := range rows {
				sum += row.Fee
			}
			// Each row rounds to a whole dollar, so the sum can drift by
			// at most half a dollar per row.
			if math.Abs(sum-tc.phaseFee) > float64(len(rows)) {
				t.Errorf("fee sum = %v, want %v within rounding", sum, tc.phaseFee)
			}
		})
	}
}

func TestAllocate_FixedHoursOffTheTop(t *testing.T) {
	rate := 100.0
	candidates := []interfaces.CandidateTask{
		candidate("Unit Fixtures", 32, true), // 8 units x 4 h/unit
		candidate("A", 1, false),
		candidate("B", 1, false),
	}

	rows := Allocate(core.DisciplinePlumbing, core.PhaseCD, 10_000, rate, candidates)

	if rows[0].Hours != 32 {
		t.Errorf("fixed task hours = %v, want 32", rows[0].Hours)
	}
	if rows[0].Fee != 3200 {
		t.Errorf("fixed task fee = %v, want 3200", rows[0].Fee)
	}
	// 100 pool hours - 32 fixed = 68 split evenly.
	if rows[1].Hours != 34 || rows[2].Hours != 34 {
		t.Errorf("weighted hours = %v, %v, want 34 each", rows[1].Hours, rows[2].Hours)
	}
}

func TestAllocate_FixedHoursExceedPool(t *testing.T) {
	candidates := []interfaces.CandidateTask{
		candidate("Fixed", 200, true),
		candidate("A", 50, false),
	}

	rows := Allocate(core.DisciplineElectrical, core.PhaseSD, 10_000, 100, candidates)

	// Fixed hours are honored even past the pool; the remainder clamps to
	// zero instead of going negative.
	if rows[0].Hours != 200 {
		t.Errorf("fixed hours = %v, want 200", rows[0].Hours)
	}
	if rows[1].Hours != 0 {
		t.Errorf("weighted hours = %v, want 0", rows[1].Hours)
	}
}

func TestAllocate_ZeroWeightedSum(t *testing.T) {
	candidates := []interfaces.CandidateTask{
		candidate("A", 0, false),
		candidate("B", 0, false),
	}

	rows := Allocate(core.DisciplineElectrical, core.PhaseSD, 5_000, 100, candidates)
	for i, row := range rows {
		if row.Hours != 0 || row.Fee != 0 {
			t.Errorf("rows[%d] = %+v, want zero hours and fee", i, row)
		}
	}
}

func TestAllocate_ZeroBillingRate(t *testing.T) {
	candidates := []interfaces.CandidateTask{candidate("A", 10, false)}

	rows := Allocate(core.DisciplineElectrical, core.PhaseSD, 5_000, 0, candidates)
	if rows[0].Hours != 0 || rows[0].Fee != 0 {
		t.Errorf("row = %+v, want zero hours and fee with zero rate", rows[0])
	}
}

func TestAllocate_SentinelRow(t *testing.T) {
	rows := Allocate(core.DisciplinePlumbing, core.PhaseBidding, 220.5, 201.6, nil)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1 sentinel row", len(rows))
	}
	row := rows[0]
	if row.Task != SentinelNoTasks {
		t.Errorf("sentinel task = %q, want %q", row.Task, SentinelNoTasks)
	}
	if row.Hours != 0 || row.Fee != 0 {
		t.Errorf("sentinel row = %+v, want zero hours and fee", row)
	}
}

func TestAllocate_NoSentinelForZeroFee(t *testing.T) {
	if rows := Allocate(core.DisciplinePlumbing, core.PhaseBidding, 0, 201.6, nil); rows != nil {
		t.Errorf("rows = %v, want nil for empty candidates with zero fee", rows)
	}
}

func TestAllocate_RoundingBoundary(t *testing.T) {
	candidates := []interfaces.CandidateTask{
		candidate("A", 1, false),
		candidate("B", 2, false),
	}

	rows := Allocate(core.DisciplineElectrical, core.PhaseSD, 1_000, 201.6, candidates)

	// Hours carry one decimal, fees are whole dollars.
	for i, row := range rows {
		if row.Hours != math.Round(row.Hours*10)/10 {
			t.Errorf("rows[%d].Hours = %v not rounded to one decimal", i, row.Hours)
		}
		if row.Fee != math.Round(row.Fee) {
			t.Errorf("rows[%d].Fee = %v not a whole dollar", i, row.Fee)
		}
	}
}
