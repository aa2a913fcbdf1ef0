package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mepworks/workplan-generator/internal/interfaces"
	"github.com/mepworks/workplan-generator/pkg/core"
)

func samplePlan() *interfaces.WorkPlan {
	rows := []interfaces.AllocationRow{
		{Discipline: core.DisciplineElectrical, Phase: core.PhaseSD, Task: "PM / Coordination", Hours: 21.9, Fee: 4410},
		{Discipline: core.DisciplineElectrical, Phase: core.PhaseSD, Task: "Design / Analysis", Hours: 51, Fee: 10290},
		{Discipline: core.DisciplinePlumbing, Phase: core.PhaseBidding, Task: "No tasks enabled", Hours: 0, Fee: 0},
	}
	return &interfaces.WorkPlan{
		Disciplines: []interfaces.DisciplinePlan{
			{Discipline: core.DisciplineElectrical, Rows: rows[:2], TotalHours: 72.9, TotalFee: 14700},
			{Discipline: core.DisciplinePlumbing, Rows: rows[2:]},
		},
		Combined:   rows,
		TotalHours: 72.9,
		TotalFee:   14700,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samplePlan()))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"discipline", "phase", "task", "hours", "fee"}, records[0])
	assert.Equal(t, []string{"Electrical", "SD", "PM / Coordination", "21.9", "4410"}, records[1])
	assert.Equal(t, []string{"Electrical", "SD", "Design / Analysis", "51.0", "10290"}, records[2])
	assert.Equal(t, []string{"Plumbing", "Bidding", "No tasks enabled", "0.0", "0"}, records[3])
}

func TestWriteCSV_NilPlan(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteCSV(&buf, nil))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	breakdown := &interfaces.CascadeBreakdown{
		ConstructionCost: 10_000_000,
		ArchFee:          350_000,
		MEPFee:           52_500,
		AreaBased:        true,
	}
	require.NoError(t, WriteTable(&buf, samplePlan(), breakdown))

	out := buf.String()
	assert.Contains(t, out, "MEP fee:           $52500 (area table)")
	assert.Contains(t, out, "Plumbing / Fire")
	assert.Contains(t, out, "Grand total")
}

func TestWriteJSON(t *testing.T) {
	plan := samplePlan()
	breakdown := &interfaces.CascadeBreakdown{MEPFee: 52_500, AreaBased: true}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, plan, breakdown))

	var got Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, plan.TotalFee, got.Plan.TotalFee)
	assert.Equal(t, 52_500.0, got.Breakdown.MEPFee)
	assert.True(t, got.Breakdown.AreaBased)
	assert.Len(t, got.Plan.Combined, 3)
}
