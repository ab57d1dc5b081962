package validate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"archcheck/internal/model"
	"archcheck/internal/parse"
)

// DefaultExcludedDirs are the path segments the bottom-up scan never
// descends into: version control metadata, dependency caches, virtual
// environments, and demonstration code.
func DefaultExcludedDirs() map[string]bool {
	return map[string]bool{
		".git":         true,
		"__pycache__":  true,
		"node_modules": true,
		".venv":        true,
		"venv":         true,
		"examples":     true,
	}
}

// CodeInventory reconciles declared code files against the actual tree in
// both directions. Top-down: every declared code file must exist, and files
// with a must_define entry must define a superset of the required symbols.
// Bottom-up: every on-disk file with a supported source extension must be
// declared by some implementation. Paths are interpreted relative to root;
// exclude defaults to DefaultExcludedDirs when nil.
func CodeInventory(root string, impls []model.Implementation, goals []model.Goal, registry *parse.Registry, exclude map[string]bool) []Issue {
	var issues []Issue
	if exclude == nil {
		exclude = DefaultExcludedDirs()
	}

	declared := make(map[string]bool)
	for _, impl := range impls {
		for _, f := range impl.CodeFiles {
			declared[f] = true
		}
		for _, f := range impl.TestFiles {
			declared[f] = true
		}
	}
	for _, g := range goals {
		if g.AcceptanceTest != "" {
			declared[g.AcceptanceTest] = true
		}
	}

	// Top-down: declared files exist and define what they promise.
	for _, impl := range impls {
		for _, file := range impl.CodeFiles {
			fullPath := filepath.Join(root, filepath.FromSlash(file))
			if !fileExists(fullPath) {
				issues = append(issues, Issue{
					Kind:    KindMissingFile,
					Message: fmt.Sprintf("%s: missing code file %s", impl.ID, file),
				})
				continue
			}

			required, ok := impl.MustDefine[file]
			if !ok {
				continue
			}
			// Unrecognized extensions are skipped, not reported; parsing
			// is attempted only because must_define names this file.
			if !registry.Has(fullPath) {
				continue
			}
			symbols, err := registry.ExtractFile(fullPath)
			if err != nil {
				issues = append(issues, Issue{
					Kind:    KindParseFailure,
					Message: fmt.Sprintf("%s: %s - %v", impl.ID, file, err),
				})
				continue
			}
			if missing := symbols.Missing(required); len(missing) > 0 {
				issues = append(issues, Issue{
					Kind:    KindMissingSymbol,
					Message: fmt.Sprintf("%s: %s missing symbols: %s", impl.ID, file, strings.Join(missing, ", ")),
				})
			}
		}
	}

	// Bottom-up: no stray source files outside the declaration.
	supported := make(map[string]bool)
	for _, ext := range registry.Extensions() {
		supported[ext] = true
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if path != root && exclude[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !supported[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !declared[rel] {
			issues = append(issues, Issue{
				Kind:    KindUndeclaredFile,
				Message: fmt.Sprintf("undeclared code file: %s (not in any implementation)", rel),
			})
		}
		return nil
	})

	return issues
}

// TestInventory verifies that every goal's acceptance test and every
// implementation's test files exist on disk. Existence only; contents are
// not parsed here.
func TestInventory(root string, goals []model.Goal, impls []model.Implementation) []Issue {
	var issues []Issue

	for _, g := range goals {
		if !fileExists(filepath.Join(root, filepath.FromSlash(g.AcceptanceTest))) {
			issues = append(issues, Issue{
				Kind:    KindMissingFile,
				Message: fmt.Sprintf("%s: missing acceptance test file %s", g.ID, g.AcceptanceTest),
			})
		}
	}

	for _, impl := range impls {
		for _, testFile := range impl.TestFiles {
			if !fileExists(filepath.Join(root, filepath.FromSlash(testFile))) {
				issues = append(issues, Issue{
					Kind:    KindMissingFile,
					Message: fmt.Sprintf("%s: missing test file %s", impl.ID, testFile),
				})
			}
		}
	}

	return issues
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
