// Package model holds the declared architecture graph: Goals, Solutions,
// and Implementations with their cross-references. The records are plain
// data owned by the host project's declaration; the validation engine only
// reads them.
package model

// Goal is the Why and What: a business objective anchored to an acceptance test.
type Goal struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	AcceptanceTest string `yaml:"acceptance_test"`
	Description    string `yaml:"description,omitempty"`
}

// Solution is the How: an architectural strategy. Satisfies and Requires hold
// ids, not pointers, so dangling references are representable and surface as
// validation findings rather than nil dereferences.
type Solution struct {
	ID          string                     `yaml:"id"`
	Name        string                     `yaml:"name"`
	Satisfies   []string                   `yaml:"satisfies"`
	Requires    []string                   `yaml:"requires,omitempty"`
	Constraints map[string]ConstraintValue `yaml:"constraints,omitempty"`
	Description string                     `yaml:"description,omitempty"`
}

// Implementation is the Reality: the physical code artifacts realizing a
// Solution, plus the symbols each file is required to define.
type Implementation struct {
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`
	Implements  string              `yaml:"implements"`
	CodeFiles   []string            `yaml:"code_files"`
	TestFiles   []string            `yaml:"test_files,omitempty"`
	MustDefine  map[string][]string `yaml:"must_define,omitempty"`
	Description string              `yaml:"description,omitempty"`
}

// Architecture is the complete declared graph. The slices preserve
// declaration order; every lookup and validation pass iterates them in that
// order so results are deterministic.
type Architecture struct {
	Goals           []Goal           `yaml:"goals"`
	Solutions       []Solution       `yaml:"solutions"`
	Implementations []Implementation `yaml:"implementations"`
}

// GoalByID returns the first Goal declared with the given id.
// First-declaration-wins on duplicate ids; the engine reports duplicates
// separately.
func (a *Architecture) GoalByID(id string) (*Goal, bool) {
	for i := range a.Goals {
		if a.Goals[i].ID == id {
			return &a.Goals[i], true
		}
	}
	return nil, false
}

// SolutionByID returns the first Solution declared with the given id.
func (a *Architecture) SolutionByID(id string) (*Solution, bool) {
	for i := range a.Solutions {
		if a.Solutions[i].ID == id {
			return &a.Solutions[i], true
		}
	}
	return nil, false
}

// ImplementationByID returns the first Implementation declared with the given id.
func (a *Architecture) ImplementationByID(id string) (*Implementation, bool) {
	for i := range a.Implementations {
		if a.Implementations[i].ID == id {
			return &a.Implementations[i], true
		}
	}
	return nil, false
}

// DeclaredFiles returns the union of every code file, test file, and
// acceptance test path in the graph, keyed by slash-separated path relative
// to the project root.
func (a *Architecture) DeclaredFiles() map[string]bool {
	declared := make(map[string]bool)
	for _, impl := range a.Implementations {
		for _, f := range impl.CodeFiles {
			declared[f] = true
		}
		for _, f := range impl.TestFiles {
			declared[f] = true
		}
	}
	for _, g := range a.Goals {
		if g.AcceptanceTest != "" {
			declared[g.AcceptanceTest] = true
		}
	}
	return declared
}
