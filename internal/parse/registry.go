package parse

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extractor is the per-language symbol extraction contract. Extract reports
// a *Error on undecodable or syntax-broken input; TestNames is advisory and
// returns an empty set instead of failing.
type Extractor interface {
	// Extract returns the top-level symbols declared in content.
	Extract(path string, content []byte) (*Symbols, error)

	// TestNames best-effort collects test case identifiers from a test
	// file. Never returns an error; a file that cannot be parsed simply
	// yields no names.
	TestNames(path string, content []byte) map[string]bool

	// Extensions returns the file extensions this extractor handles,
	// with the leading dot. The first is the canonical extension.
	Extensions() []string

	// Language returns a short lowercase language identifier.
	Language() string
}

// Registry routes extraction requests to the extractor registered for a
// file's extension. Adding a language touches only the registry, never the
// validation engine.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// DefaultRegistry returns a registry with all built-in extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPython())
	r.Register(NewJavaScript())
	return r
}

// Register adds an extractor for each of its supported extensions,
// replacing any previous registration.
func (r *Registry) Register(e Extractor) {
	for _, ext := range e.Extensions() {
		r.extractors[normalizeExt(ext)] = e
	}
}

// ForPath returns the extractor for a file path, or nil if the extension is
// not recognized.
func (r *Registry) ForPath(path string) Extractor {
	return r.extractors[normalizeExt(filepath.Ext(path))]
}

// Has reports whether an extractor is registered for the file's extension.
func (r *Registry) Has(path string) bool {
	return r.ForPath(path) != nil
}

// Extensions returns every registered extension, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ExtractFile reads path from disk and extracts its symbols. A read failure
// is reported as a *Error; an unrecognized extension returns (nil, nil) so
// callers can skip it without special-casing.
func (r *Registry) ExtractFile(path string) (*Symbols, error) {
	extractor := r.ForPath(path)
	if extractor == nil {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return extractor.Extract(path, content)
}

// TestNamesFile reads path and best-effort extracts test case names.
// Unreadable files and unrecognized extensions yield an empty set.
func (r *Registry) TestNamesFile(path string) map[string]bool {
	extractor := r.ForPath(path)
	if extractor == nil {
		return map[string]bool{}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return map[string]bool{}
	}
	return extractor.TestNames(path, content)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
