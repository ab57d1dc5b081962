package validate

import (
	"fmt"
	"strings"

	"archcheck/internal/model"
)

// DFS colors for cycle detection.
const (
	colorUnvisited = iota
	colorOnPath
	colorDone
)

// Dependencies verifies the requires relation over solutions: every
// reference resolves, and the relation is acyclic. Cycles are reported as
// the arrow-joined path from the re-entered solution back to itself; each
// weakly-connected component is scanned once, and every independent cycle
// found is reported.
func Dependencies(sols []model.Solution) []Issue {
	var issues []Issue

	index := indexSolutions(sols)
	for _, sol := range sols {
		for _, reqID := range sol.Requires {
			if _, ok := index[reqID]; !ok {
				issues = append(issues, Issue{
					Kind:    KindDanglingReference,
					Message: fmt.Sprintf("%s requires %s which doesn't exist", sol.ID, reqID),
				})
			}
		}
	}

	color := make(map[string]int, len(sols))
	var path []string
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		color[id] = colorOnPath
		path = append(path, id)

		sol := index[id]
		for _, reqID := range sol.Requires {
			req, ok := index[reqID]
			if !ok {
				continue // dangling, already reported
			}
			switch color[req.ID] {
			case colorUnvisited:
				visit(req.ID)
			case colorOnPath:
				start := 0
				for i, p := range path {
					if p == req.ID {
						start = i
						break
					}
				}
				cycle := make([]string, 0, len(path)-start+1)
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, req.ID)
				cycles = append(cycles, cycle)
			}
			// colorDone: fully explored, never re-expanded.
		}

		path = path[:len(path)-1]
		color[id] = colorDone
	}

	for _, sol := range sols {
		if color[sol.ID] == colorUnvisited {
			visit(sol.ID)
		}
	}

	for _, cycle := range cycles {
		issues = append(issues, Issue{
			Kind:    KindCyclicDependency,
			Message: fmt.Sprintf("circular dependency detected: %s", strings.Join(cycle, " -> ")),
		})
	}

	return issues
}
