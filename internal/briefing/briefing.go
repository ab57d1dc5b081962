// Package briefing renders the per-implementation mission briefing: a
// focused markdown summary of one Implementation, the Solution it realizes,
// the Goals that Solution satisfies, and the files and symbols the
// Implementation owes. Pure read-only graph traversal; no validation
// semantics live here.
package briefing

import (
	"fmt"
	"sort"
	"strings"

	"archcheck/internal/model"
)

// Generate builds the mission briefing for the Implementation with the
// given id. Dangling references are rendered as placeholders rather than
// failing: the briefing is a reading aid, and the validator is the place
// where broken references are reported.
func Generate(arch *model.Architecture, implID string) (string, error) {
	impl, ok := arch.ImplementationByID(implID)
	if !ok {
		return "", fmt.Errorf("implementation %s not found", implID)
	}

	var b strings.Builder
	write := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	write("# Mission Briefing: %s", impl.Name)

	sol, haveSol := arch.SolutionByID(impl.Implements)
	if haveSol {
		write("> **Context**: Implementing solution '%s'", sol.Name)
	} else {
		write("> **Context**: Implementing solution '%s' (undeclared)", impl.Implements)
	}
	if impl.Description != "" {
		write("")
		write("%s", impl.Description)
	}

	write("")
	write("## 1. Goals (The Why)")
	if haveSol {
		for _, goalID := range sol.Satisfies {
			goal, okGoal := arch.GoalByID(goalID)
			if !okGoal {
				write("- **%s** (undeclared goal)", goalID)
				continue
			}
			write("- **%s** (verify via `%s`)", goal.Name, goal.AcceptanceTest)
			if goal.Description != "" {
				write("  %s", goal.Description)
			}
		}
	}

	write("")
	write("## 2. Solution Context")
	if haveSol && sol.Description != "" {
		write("%s", sol.Description)
	}

	write("")
	write("## 3. Constraints (The Boundaries)")
	if haveSol && len(sol.Constraints) > 0 {
		for _, name := range sortedKeys(sol.Constraints) {
			write("- **%s**: `%s`", name, sol.Constraints[name])
		}
	} else {
		write("- No constraints specified")
	}

	write("")
	write("## 4. Required Output")
	write("Modify/create these files:")
	for _, f := range impl.CodeFiles {
		write("- `%s`", f)
	}
	if len(impl.MustDefine) > 0 {
		write("")
		write("Ensure these symbols exist:")
		files := make([]string, 0, len(impl.MustDefine))
		for f := range impl.MustDefine {
			files = append(files, f)
		}
		sort.Strings(files)
		for _, f := range files {
			write("- `%s`: %s", f, strings.Join(impl.MustDefine[f], ", "))
		}
	}

	return b.String(), nil
}

func sortedKeys(m map[string]model.ConstraintValue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
