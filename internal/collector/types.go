/*
Copyright 2025 The MEP Workplan Generator Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package collector

import (
	"sort"
)

// Ratebook maps space types to their $/SF MEP fee rate. A nil rate means
// the space type is recognized but has no book rate: a per-row override is
// required.
type Ratebook map[string]*float64

// rate is a helper to take the address of a literal in the default book.
func rate(v float64) *float64 { return &v }

// DefaultRatebook returns the built-in $/SF lookup table.
func DefaultRatebook() Ratebook {
	return Ratebook{
		"Office (Fitout / Renovation)":                   rate(1.50),
		"Office (Core & Shell)":                          rate(0.95),
		"Lobby / Reception":                              rate(1.50),
		"Conference Rooms":                               rate(1.50),
		"Ballrooms":                                      rate(1.75),
		"Hotel Rooms":                                    rate(1.50),
		"Retail (dry non-cooking)":                       rate(0.85),
		"Retail (Core & Shell Restaurant)":               rate(0.95),
		"Restaurant (Kitchen / Dining Areas)":            rate(2.75),
		"Parking (Open)":                                 rate(0.35),
		"Parking (Enclosed)":                             rate(0.45),
		"Multifamily (Garden Style)":                     rate(0.85),
		"Multifamily (High Rise)":                        rate(1.01),
		"BOH Rooms":                                      rate(0.75),
		"Classroom":                                      rate(1.50),
		"Bar / Lounge Areas":                             rate(1.25),
		"Amenity Areas":                                  rate(1.25),
		"Manufacturing Light (Mainly Storage)":           rate(0.95),
		"Manufacturing Complex (Process Equipment Etc.)": rate(1.50),
		"Site Lighting":                                  nil,
		"Site Parking":                                   nil,
	}
}

// SpaceTypes returns the ratebook's space types in sorted order for
// deterministic listings.
func (r Ratebook) SpaceTypes() []string {
	types := make([]string, 0, len(r))
	for t := range r {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// SpaceCost is the resolved cost of one area-table row.
type SpaceCost struct {
	// Name is the user-facing space label.
	Name string `json:"name"`

	// SpaceType is the ratebook key.
	SpaceType string `json:"spaceType"`

	// AreaSF is the space area in square feet.
	AreaSF float64 `json:"areaSF"`

	// Rate is the effective $/SF used, after override resolution.
	Rate float64 `json:"rate"`

	// TotalCost is AreaSF x Rate.
	TotalCost float64 `json:"totalCost"`

	// Overridden records whether an explicit per-row rate was applied.
	Overridden bool `json:"overridden"`
}

// ProjectCost aggregates the area table into the cascade's scalar inputs.
type ProjectCost struct {
	// Spaces lists the per-row breakdown in table order.
	Spaces []SpaceCost `json:"spaces"`

	// TotalAreaSF is the summed area of all spaces.
	TotalAreaSF float64 `json:"totalAreaSF"`

	// ConstructionCost is TotalAreaSF x the construction $/SF input.
	ConstructionCost float64 `json:"constructionCost"`

	// AreaBasedMEPFee is the summed Space TotalCost: the MEP fee derived
	// from the ratebook rather than the percentage chain.
	AreaBasedMEPFee float64 `json:"areaBasedMEPFee"`
}
