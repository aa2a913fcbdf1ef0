package config

import (
	v1alpha1 "github.com/mepworks/workplan-generator/api/v1alpha1"
)

// Documented per-field defaults. A snapshot document missing any of these
// fields loads as if it contained these values; no field's absence prevents
// the rest of the snapshot from loading.
const (
	DefaultBaseRawRate           = 56.0
	DefaultRateMultiplier        = 3.6
	DefaultConstructionCostPerSF = 300.0
	DefaultArchFeePct            = 3.5
	DefaultMEPFeePct             = 15.0
)

// DefaultPhaseSplit returns the default phase percentage split.
func DefaultPhaseSplit() map[string]float64 {
	return map[string]float64{
		"SD":      12,
		"DD":      40,
		"CD":      28,
		"Bidding": 1.5,
		"CA":      18.5,
	}
}

// DefaultDisciplinePct returns the default discipline percentage split.
func DefaultDisciplinePct() map[string]float64 {
	return map[string]float64{
		"Electrical": 28,
		"Plumbing":   24,
		"Mechanical": 48,
	}
}

// DefaultScopeToggles returns the toggles applied to all disciplines.
func DefaultScopeToggles() map[string]bool {
	return map[string]bool{
		"low-voltage": true,
		"residential": true,
	}
}

// DefaultAreaTable returns the default project space mix.
func DefaultAreaTable() []v1alpha1.AreaRow {
	return []v1alpha1.AreaRow{
		{Name: "Amenities", SpaceType: "Amenity Areas", AreaSF: 18000},
		{Name: "Back of House", SpaceType: "BOH Rooms", AreaSF: 14000},
		{Name: "Retail", SpaceType: "Retail (Core & Shell Restaurant)", AreaSF: 5000},
		{Name: "Office", SpaceType: "Office (Core & Shell)", AreaSF: 4500},
		{Name: "Parking", SpaceType: "Parking (Enclosed)", AreaSF: 80000},
		{Name: "Residential", SpaceType: "Multifamily (High Rise)", AreaSF: 175000},
	}
}

// DefaultTaskLibraries returns the built-in per-discipline task libraries.
func DefaultTaskLibraries() map[string][]v1alpha1.TaskEntry {
	return map[string][]v1alpha1.TaskEntry{
		"Electrical": {
			{Phase: "SD", Task: "PM / Coordination", BaseHours: 30},
			{Phase: "SD", Task: "Design / Analysis", BaseHours: 70},
			{Phase: "DD", Task: "PM / Coordination", BaseHours: 40},
			{Phase: "DD", Task: "Plans / Schedules", BaseHours: 120},
			{Phase: "CD", Task: "PM / QAQC", BaseHours: 50},
			{Phase: "CD", Task: "Construction Documents", BaseHours: 180},
			{Phase: "CD", Task: "Low-Voltage / Security Rough-In", BaseHours: 40, Tags: []string{"low-voltage"}},
			{
				Phase: "CD", Task: "Unit Devices / Typical Units",
				Tags: []string{"residential"},
				Override: &v1alpha1.OverrideSpec{
					Kind:         v1alpha1.OverrideKindScaleByUnitCount,
					UnitKey:      "typUnits",
					HoursPerUnit: 0.5,
				},
			},
			{Phase: "Bidding", Task: "Bidding Support", BaseHours: 10},
			{Phase: "CA", Task: "Construction Administration", BaseHours: 120},
		},
		"Plumbing": {
			{Phase: "SD", Task: "Sizing / Coordination", BaseHours: 80},
			{Phase: "DD", Task: "Layouts / Coordination", BaseHours: 140},
			{
				Phase: "DD", Task: "Podium Storm Riser Design", BaseHours: 35,
				Override: &v1alpha1.OverrideSpec{
					Kind:         v1alpha1.OverrideKindIncludeIf,
					ConditionKey: "podium",
				},
			},
			{Phase: "CD", Task: "Details / Isometrics", BaseHours: 200},
			{
				Phase: "CD", Task: "Luxury Unit Fixture Layouts",
				Tags: []string{"residential"},
				Override: &v1alpha1.OverrideSpec{
					Kind:         v1alpha1.OverrideKindScaleByUnitCount,
					UnitKey:      "luxUnits",
					HoursPerUnit: 4,
				},
			},
			{Phase: "Bidding", Task: "Bidding Support", BaseHours: 10},
			{Phase: "CA", Task: "Construction Administration", BaseHours: 120},
		},
		"Mechanical": {
			{Phase: "SD", Task: "Preliminary Design", BaseHours: 55},
			{Phase: "DD", Task: "System Design / Modeling", BaseHours: 198},
			{Phase: "CD", Task: "Detailed Design", BaseHours: 134},
			{
				Phase: "CD", Task: "Dwelling Unit Ventilation", BaseHours: 0,
				Tags: []string{"residential"},
				Override: &v1alpha1.OverrideSpec{
					Kind:         v1alpha1.OverrideKindScaleByUnitCount,
					UnitKey:      "domUnits",
					HoursPerUnit: 1.5,
				},
			},
			{Phase: "Bidding", Task: "Bidding / CPS", BaseHours: 55},
			{Phase: "CA", Task: "Construction Administration", BaseHours: 60},
		},
	}
}

// DefaultDocument returns a fully populated snapshot document. Loading
// unmarshals user data over this document, so absent fields inherit these
// values while present fields (including explicit zeros) win.
func DefaultDocument() *v1alpha1.ConfigSnapshot {
	return &v1alpha1.ConfigSnapshot{
		APIVersion:            v1alpha1.APIVersion,
		Kind:                  v1alpha1.KindConfigSnapshot,
		Rate:                  v1alpha1.RateSpec{BaseRawRate: DefaultBaseRawRate, Multiplier: DefaultRateMultiplier},
		ConstructionCostPerSF: DefaultConstructionCostPerSF,
		ArchFeePct:            DefaultArchFeePct,
		MEPFeePct:             DefaultMEPFeePct,
		PhaseSplit:            DefaultPhaseSplit(),
		DisciplinePct:         DefaultDisciplinePct(),
		ScopeToggles:          DefaultScopeToggles(),
		AreaTable:             DefaultAreaTable(),
		TaskLibraries:         DefaultTaskLibraries(),
	}
}
