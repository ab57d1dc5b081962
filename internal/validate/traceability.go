package validate

import (
	"fmt"

	"archcheck/internal/model"
)

// Traceability verifies the Implementation -> Solution -> Goal chains:
// every reference resolves, every solution satisfies at least one goal,
// every goal is satisfied, and every solution is implemented. All
// violations found are reported together.
func Traceability(impls []model.Implementation, sols []model.Solution, goals []model.Goal) []Issue {
	var issues []Issue

	solutionIndex := indexSolutions(sols)
	goalIndex := make(map[string]bool, len(goals))
	for _, g := range goals {
		goalIndex[g.ID] = true
	}

	// Every implementation points at a declared solution.
	for _, impl := range impls {
		if _, ok := solutionIndex[impl.Implements]; !ok {
			issues = append(issues, Issue{
				Kind:    KindDanglingReference,
				Message: fmt.Sprintf("%s implements %s which doesn't exist", impl.ID, impl.Implements),
			})
		}
	}

	// A solution with no satisfies entries is reported once and skipped
	// for the goal-reference check to avoid duplicate noise.
	for _, sol := range sols {
		if len(sol.Satisfies) == 0 {
			issues = append(issues, Issue{
				Kind:    KindOrphanedEntity,
				Message: fmt.Sprintf("%s satisfies no goals (orphaned solution)", sol.ID),
			})
			continue
		}
		for _, goalID := range sol.Satisfies {
			if !goalIndex[goalID] {
				issues = append(issues, Issue{
					Kind:    KindDanglingReference,
					Message: fmt.Sprintf("%s satisfies %s which doesn't exist", sol.ID, goalID),
				})
			}
		}
	}

	// Every goal is satisfied by at least one solution.
	satisfied := make(map[string]bool)
	for _, sol := range sols {
		for _, goalID := range sol.Satisfies {
			satisfied[goalID] = true
		}
	}
	for _, g := range goals {
		if !satisfied[g.ID] {
			issues = append(issues, Issue{
				Kind:    KindOrphanedEntity,
				Message: fmt.Sprintf("%s is not satisfied by any solution (orphaned goal)", g.ID),
			})
		}
	}

	// Every solution is realized by at least one implementation.
	implemented := make(map[string]bool)
	for _, impl := range impls {
		implemented[impl.Implements] = true
	}
	for _, sol := range sols {
		if !implemented[sol.ID] {
			issues = append(issues, Issue{
				Kind:    KindOrphanedEntity,
				Message: fmt.Sprintf("%s has no implementation (unimplemented solution)", sol.ID),
			})
		}
	}

	return issues
}

// indexSolutions builds an id lookup. On duplicate ids the first declaration
// wins; duplicates themselves are reported by DuplicateIDs.
func indexSolutions(sols []model.Solution) map[string]*model.Solution {
	index := make(map[string]*model.Solution, len(sols))
	for i := range sols {
		if _, exists := index[sols[i].ID]; !exists {
			index[sols[i].ID] = &sols[i]
		}
	}
	return index
}
