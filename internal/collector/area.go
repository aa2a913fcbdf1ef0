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
	"fmt"

	v1alpha1 "github.com/mepworks/workplan-generator/api/v1alpha1"
)

// CostCollector resolves the area table against a rate source.
type CostCollector struct {
	source RateSource
}

// NewCostCollector creates a new CostCollector instance.
func NewCostCollector(source RateSource) (*CostCollector, error) {
	if source == nil {
		return nil, fmt.Errorf("rate source cannot be nil")
	}
	return &CostCollector{source: source}, nil
}

// Collect computes the per-space and total cost figures for an area table.
// Rate resolution per row: an explicit override wins; otherwise the rate
// source's book rate applies; an unknown space type or an override-required
// entry without an override contributes zero cost.
func (c *CostCollector) Collect(rows []v1alpha1.AreaRow, constructionCostPerSF float64) *ProjectCost {
	cost := &ProjectCost{
		Spaces: make([]SpaceCost, 0, len(rows)),
	}
	for _, row := range rows {
		space := SpaceCost{
			Name:      row.Name,
			SpaceType: row.SpaceType,
			AreaSF:    row.AreaSF,
		}
		switch {
		case row.OverrideRate != nil:
			space.Rate = *row.OverrideRate
			space.Overridden = true
		default:
			if r, ok := c.source.Lookup(row.SpaceType); ok && r != nil {
				space.Rate = *r
			}
		}
		space.TotalCost = space.AreaSF * space.Rate

		cost.Spaces = append(cost.Spaces, space)
		cost.TotalAreaSF += space.AreaSF
		cost.AreaBasedMEPFee += space.TotalCost
	}
	cost.ConstructionCost = cost.TotalAreaSF * constructionCostPerSF
	return cost
}
