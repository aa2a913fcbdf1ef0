package scope

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mepworks/workplan-generator/pkg/core"
)

func makeTask(name string, enabled bool, tags ...string) core.TaskRecord {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized = append(normalized, core.NormalizeTag(tag))
	}
	return core.TaskRecord{
		Phase:      core.PhaseCD,
		Name:       name,
		BaseWeight: 100,
		Enabled:    enabled,
		Tags:       normalized,
	}
}

var _ = Describe("IsActive", func() {
	Context("with a disabled task", func() {
		It("should always exclude it, even with no toggles", func() {
			task := makeTask("Off", false)
			Expect(IsActive(&task, nil)).To(BeFalse())
		})

		It("should exclude it even when every toggle is on", func() {
			task := makeTask("Off", false, "low-voltage")
			Expect(IsActive(&task, map[string]bool{"low-voltage": true})).To(BeFalse())
		})
	})

	Context("with toggle-based exclusion", func() {
		It("should exclude a task whose tag is toggled off", func() {
			task := makeTask("LV Rough-In", true, "low-voltage")
			Expect(IsActive(&task, map[string]bool{"low-voltage": false})).To(BeFalse())
		})

		It("should keep a task whose tags are all toggled on", func() {
			task := makeTask("LV Rough-In", true, "low-voltage")
			Expect(IsActive(&task, map[string]bool{"low-voltage": true})).To(BeTrue())
		})

		It("should ignore toggles that match no tag", func() {
			task := makeTask("Plain", true)
			Expect(IsActive(&task, map[string]bool{"low-voltage": false})).To(BeTrue())
		})

		It("should exclude when any one of several tags is toggled off", func() {
			task := makeTask("Mixed", true, "low-voltage", "residential")
			toggles := map[string]bool{"low-voltage": true, "residential": false}
			Expect(IsActive(&task, toggles)).To(BeFalse())
		})
	})

	Context("monotonicity", func() {
		It("turning a toggle off never adds tasks to the candidate set", func() {
			library := []core.TaskRecord{
				makeTask("A", true, "low-voltage"),
				makeTask("B", true),
				makeTask("C", true, "residential"),
			}
			before := Candidates(library, core.PhaseCD, map[string]bool{"low-voltage": true}, nil, nil)
			after := Candidates(library, core.PhaseCD, map[string]bool{"low-voltage": false}, nil, nil)

			Expect(len(after)).To(BeNumerically("<=", len(before)))
			names := make(map[string]bool)
			for _, c := range before {
				names[c.Task.Name] = true
			}
			for _, c := range after {
				Expect(names).To(HaveKey(c.Task.Name))
			}
		})
	})
})

var _ = Describe("ResolveWeight", func() {
	Context("with no override", func() {
		It("should return the base weight", func() {
			task := makeTask("Plain", true)
			weight, fixed, ok := ResolveWeight(&task, nil, nil)
			Expect(ok).To(BeTrue())
			Expect(fixed).To(BeFalse())
			Expect(weight).To(Equal(100.0))
		})
	})

	Context("with a ScaleByUnitCount override", func() {
		It("should produce hoursPerUnit times the unit count as fixed hours", func() {
			task := makeTask("Fixtures", true)
			task.Override = core.Override{
				Kind:         core.OverrideScaleByUnitCount,
				UnitKey:      "luxunits",
				HoursPerUnit: 4,
			}
			weight, fixed, ok := ResolveWeight(&task, map[string]int{"luxunits": 8}, nil)
			Expect(ok).To(BeTrue())
			Expect(fixed).To(BeTrue())
			Expect(weight).To(Equal(32.0))
		})

		It("should treat a missing unit count as zero", func() {
			task := makeTask("Fixtures", true)
			task.Override = core.Override{
				Kind:         core.OverrideScaleByUnitCount,
				UnitKey:      "luxunits",
				HoursPerUnit: 4,
			}
			weight, fixed, ok := ResolveWeight(&task, map[string]int{}, nil)
			Expect(ok).To(BeTrue())
			Expect(fixed).To(BeTrue())
			Expect(weight).To(BeZero())
		})
	})

	Context("with an IncludeIf override", func() {
		var task core.TaskRecord

		BeforeEach(func() {
			task = makeTask("Podium Storm Riser", true)
			task.BaseWeight = 35
			task.Override = core.Override{
				Kind:         core.OverrideIncludeIf,
				ConditionKey: "podium",
			}
		})

		It("should keep the base weight while the condition holds", func() {
			weight, fixed, ok := ResolveWeight(&task, nil, map[string]bool{"podium": true})
			Expect(ok).To(BeTrue())
			Expect(fixed).To(BeFalse())
			Expect(weight).To(Equal(35.0))
		})

		It("should drop the task when the condition is false", func() {
			_, _, ok := ResolveWeight(&task, nil, map[string]bool{"podium": false})
			Expect(ok).To(BeFalse())
		})

		It("should drop the task when the condition is unknown", func() {
			_, _, ok := ResolveWeight(&task, nil, map[string]bool{})
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("Candidates", func() {
	var library []core.TaskRecord

	BeforeEach(func() {
		podium := makeTask("Podium Storm Riser", true)
		podium.Phase = core.PhaseDD
		podium.BaseWeight = 35
		podium.Override = core.Override{Kind: core.OverrideIncludeIf, ConditionKey: "podium"}

		library = []core.TaskRecord{
			makeTask("Details / Isometrics", true),
			podium,
			makeTask("Disabled Task", false),
		}
	})

	It("should keep library order and filter by phase", func() {
		got := Candidates(library, core.PhaseCD, nil, nil, nil)
		Expect(got).To(HaveLen(1))
		Expect(got[0].Task.Name).To(Equal("Details / Isometrics"))
	})

	It("should include the conditional task only while its condition holds", func() {
		with := Candidates(library, core.PhaseDD, nil, nil, map[string]bool{"podium": true})
		Expect(with).To(HaveLen(1))
		Expect(with[0].Task.Name).To(Equal("Podium Storm Riser"))

		without := Candidates(library, core.PhaseDD, nil, nil, map[string]bool{"podium": false})
		Expect(without).To(BeEmpty())
	})
})
