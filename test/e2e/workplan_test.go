package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1alpha1 "github.com/mepworks/workplan-generator/api/v1alpha1"
	"github.com/mepworks/workplan-generator/internal/collector"
	"github.com/mepworks/workplan-generator/internal/engines/allocator"
	"github.com/mepworks/workplan-generator/internal/export"
	"github.com/mepworks/workplan-generator/internal/interfaces"
	"github.com/mepworks/workplan-generator/internal/server"
	"github.com/mepworks/workplan-generator/pkg/config"
)

func newAssembler() *allocator.Assembler {
	costs, err := collector.NewCostCollector(collector.NewRatebookSource(nil))
	Expect(err).NotTo(HaveOccurred())
	asm, err := allocator.NewAssembler(costs)
	Expect(err).NotTo(HaveOccurred())
	return asm
}

func assemble(doc *v1alpha1.ConfigSnapshot) (*interfaces.WorkPlan, *interfaces.CascadeBreakdown) {
	snap, err := config.Compile(doc)
	Expect(err).NotTo(HaveOccurred())
	plan, breakdown, err := newAssembler().Assemble(context.Background(), snap)
	Expect(err).NotTo(HaveOccurred())
	return plan, breakdown
}

var _ = Describe("Full allocation pipeline", func() {
	It("conserves the MEP fee through the cascade and allocation", func() {
		plan, breakdown := assemble(config.DefaultDocument())

		Expect(breakdown.AreaBased).To(BeTrue())
		Expect(breakdown.MEPFee).To(BeNumerically(">", 0))

		// Every row rounds its fee to a whole dollar, so the grand total
		// may drift from the cascade total by at most half a dollar per row.
		Expect(math.Abs(plan.TotalFee - breakdown.MEPFee)).
			To(BeNumerically("<=", float64(len(plan.Combined))))

		// Discipline fees sum to the MEP fee exactly before rounding.
		sum := 0.0
		for _, fee := range breakdown.DisciplineFees {
			sum += fee
		}
		Expect(sum).To(BeNumerically("~", breakdown.MEPFee, 1e-6))
	})

	It("produces disciplines in fixed order with phase-ordered rows", func() {
		plan, _ := assemble(config.DefaultDocument())

		names := make([]string, 0, len(plan.Disciplines))
		for _, dp := range plan.Disciplines {
			names = append(names, string(dp.Discipline))
		}
		Expect(names).To(Equal([]string{"Electrical", "Plumbing", "Mechanical"}))
	})

	It("never grows the plan when a scope toggle turns off", func() {
		before, _ := assemble(config.DefaultDocument())

		doc := config.DefaultDocument()
		doc.ScopeToggles["residential"] = false
		after, _ := assemble(doc)

		Expect(len(after.Combined)).To(BeNumerically("<=", len(before.Combined)))

		seen := make(map[string]bool)
		for _, row := range before.Combined {
			seen[string(row.Discipline)+"|"+string(row.Phase)+"|"+row.Task] = true
		}
		for _, row := range after.Combined {
			key := string(row.Discipline) + "|" + string(row.Phase) + "|" + row.Task
			Expect(seen).To(HaveKey(key))
		}
	})

	It("includes podium work only when the podium condition holds", func() {
		doc := config.DefaultDocument()
		doc.UnitInputs.Podium = true
		withPodium, _ := assemble(doc)

		doc2 := config.DefaultDocument()
		doc2.UnitInputs.Podium = false
		withoutPodium, _ := assemble(doc2)

		Expect(taskNames(withPodium)).To(ContainElement("Podium Storm Riser Design"))
		Expect(taskNames(withoutPodium)).NotTo(ContainElement("Podium Storm Riser Design"))
	})

	It("scales unit-count tasks linearly with the count", func() {
		doc := config.DefaultDocument()
		doc.UnitInputs.LuxUnits = 8
		plan, _ := assemble(doc)

		row := findRow(plan, "Luxury Unit Fixture Layouts")
		Expect(row).NotTo(BeNil())
		Expect(row.Hours).To(Equal(32.0)) // 8 units x 4 h/unit

		doc.UnitInputs.LuxUnits = 16
		plan2, _ := assemble(doc)
		row2 := findRow(plan2, "Luxury Unit Fixture Layouts")
		Expect(row2.Hours).To(Equal(64.0))
	})

	It("survives a snapshot round-trip without changing the plan", func() {
		doc := config.DefaultDocument()
		doc.UnitInputs.Podium = true
		doc.UnitInputs.LuxUnits = 8

		data, err := json.Marshal(doc)
		Expect(err).NotTo(HaveOccurred())
		reloaded, err := config.ParseDocument(data)
		Expect(err).NotTo(HaveOccurred())

		original, _ := assemble(doc)
		roundTripped, _ := assemble(reloaded)
		Expect(roundTripped).To(Equal(original))
	})
})

var _ = Describe("HTTP workplan API", func() {
	var handler http.Handler

	BeforeEach(func() {
		srv, err := server.NewServer(newAssembler(), nil)
		Expect(err).NotTo(HaveOccurred())
		handler = srv.Handler()
	})

	It("serves the default plan as JSON", func() {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/workplan", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		var result export.Result
		Expect(json.Unmarshal(rec.Body.Bytes(), &result)).To(Succeed())
		Expect(result.Plan.Disciplines).To(HaveLen(3))
	})

	It("honors snapshot overrides posted in the body", func() {
		body, err := json.Marshal(map[string]any{
			"unitInputs": map[string]any{"podium": true},
		})
		Expect(err).NotTo(HaveOccurred())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/workplan", bytes.NewReader(body)))

		Expect(rec.Code).To(Equal(http.StatusOK))
		var result export.Result
		Expect(json.Unmarshal(rec.Body.Bytes(), &result)).To(Succeed())
		Expect(taskNames(result.Plan)).To(ContainElement("Podium Storm Riser Design"))
	})
})

func taskNames(plan *interfaces.WorkPlan) []string {
	names := make([]string, 0, len(plan.Combined))
	for _, row := range plan.Combined {
		names = append(names, row.Task)
	}
	return names
}

func findRow(plan *interfaces.WorkPlan, task string) *interfaces.AllocationRow {
	for i := range plan.Combined {
		if plan.Combined[i].Task == task {
			return &plan.Combined[i]
		}
	}
	return nil
}
