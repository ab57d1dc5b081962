// Package parse extracts top-level symbol names from source files. It exists
// to answer one question for the validation engine: does a required name
// exist anywhere reachable in this file. Extraction is tiered per language -
// a structural Tree-sitter pass where a grammar is available, a pattern-based
// fallback otherwise - trading precision for availability.
package parse

import "sort"

// Symbols is the set of top-level names declared by a source file, split by
// construct kind. Methods land in Functions alongside free functions; the
// engine only cares about existence, not ownership.
type Symbols struct {
	Classes   map[string]bool
	Functions map[string]bool
	Globals   map[string]bool
}

// NewSymbols returns an empty, non-nil symbol set.
func NewSymbols() *Symbols {
	return &Symbols{
		Classes:   make(map[string]bool),
		Functions: make(map[string]bool),
		Globals:   make(map[string]bool),
	}
}

// All returns the union of classes, functions, and globals.
func (s *Symbols) All() map[string]bool {
	all := make(map[string]bool, len(s.Classes)+len(s.Functions)+len(s.Globals))
	for name := range s.Classes {
		all[name] = true
	}
	for name := range s.Functions {
		all[name] = true
	}
	for name := range s.Globals {
		all[name] = true
	}
	return all
}

// Missing returns required names absent from the file, sorted for stable
// error messages. An empty required list always yields an empty result.
func (s *Symbols) Missing(required []string) []string {
	all := s.All()
	var missing []string
	for _, name := range required {
		if !all[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
