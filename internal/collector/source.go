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
	"os"

	"gopkg.in/yaml.v3"
)

// RateSource is the interface for pluggable $/SF rate sources.
// Implementations include the built-in ratebook and YAML overlay files.
type RateSource interface {
	// Name returns the unique name of this source (e.g., "ratebook", "file").
	Name() string

	// Lookup returns the $/SF rate for a space type. ok is false for an
	// unknown space type. A nil rate with ok=true means the space type is
	// recognized but requires a per-row override.
	Lookup(spaceType string) (rate *float64, ok bool)
}

// RatebookSource serves rates from an in-memory ratebook.
type RatebookSource struct {
	book Ratebook
}

// NewRatebookSource creates a source over the given ratebook, or over the
// default ratebook when book is nil.
func NewRatebookSource(book Ratebook) *RatebookSource {
	if book == nil {
		book = DefaultRatebook()
	}
	return &RatebookSource{book: book}
}

// Name implements RateSource.
func (s *RatebookSource) Name() string { return "ratebook" }

// Lookup implements RateSource.
func (s *RatebookSource) Lookup(spaceType string) (*float64, bool) {
	r, ok := s.book[spaceType]
	return r, ok
}

// FileSource overlays rates from a YAML file onto a base source. Entries in
// the file win over the base; a file entry with a null value marks the
// space type as override-required.
//
// File format is a flat map:
//
//	Amenity Areas: 1.40
//	Rooftop Terrace: 1.10
//	Site Lighting: null
type FileSource struct {
	base    RateSource
	overlay Ratebook
}

// NewFileSource reads a YAML ratebook overlay from path.
func NewFileSource(path string, base RateSource) (*FileSource, error) {
	if base == nil {
		return nil, fmt.Errorf("base rate source cannot be nil")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ratebook %s: %w", path, err)
	}
	overlay := Ratebook{}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing ratebook %s: %w", path, err)
	}
	return &FileSource{base: base, overlay: overlay}, nil
}

// Name implements RateSource.
func (s *FileSource) Name() string { return "file" }

// Lookup implements RateSource.
func (s *FileSource) Lookup(spaceType string) (*float64, bool) {
	if r, ok := s.overlay[spaceType]; ok {
		return r, true
	}
	return s.base.Lookup(spaceType)
}
