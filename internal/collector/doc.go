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

// Package collector turns the project's area table into the scalar fee
// inputs of the cascade: total area, total construction cost, and the
// area-based MEP fee.
//
// Rates come from pluggable RateSource implementations:
//
//   - RatebookSource: the built-in $/SF ratebook over a closed set of
//     space types
//   - FileSource: a YAML overlay that adds to or replaces built-in rates
//
// Some space types (site lighting, site parking) have no book rate at all;
// for those an explicit per-row override is required and a missing override
// contributes zero cost rather than failing the run.
package collector
