package validate

import (
	"testing"

	"archcheck/internal/model"
	"archcheck/internal/parse"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// fixtureArch builds the minimal valid project used by the end-to-end
// scenarios: one goal, one solution, one implementation with a symbol
// requirement on src/z.py.
func fixtureArch() *model.Architecture {
	return &model.Architecture{
		Goals: []model.Goal{
			{ID: "G-1", Name: "Records persist", AcceptanceTest: "tests/uat/test_persist.py"},
		},
		Solutions: []model.Solution{
			{ID: "S-1", Name: "Single-file store", Satisfies: []string{"G-1"}},
		},
		Implementations: []model.Implementation{{
			ID: "I-1", Name: "Store module", Implements: "S-1",
			CodeFiles:  []string{"src/z.py"},
			MustDefine: map[string][]string{"src/z.py": {"Foo"}},
		}},
	}
}

func TestEngineValidProjectHasNoIssues(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/z.py":                  "class Foo:\n    pass\n",
		"tests/uat/test_persist.py": "def test_persist():\n    pass\n",
	})

	engine := New(root, parse.DefaultRegistry(), nil)
	assert.Empty(t, engine.Validate(fixtureArch()))
}

func TestEngineMissingSymbolScenario(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/z.py":                  "class Bar:\n    pass\n",
		"tests/uat/test_persist.py": "def test_persist():\n    pass\n",
	})

	engine := New(root, parse.DefaultRegistry(), nil)
	issues := engine.Validate(fixtureArch())
	assert.Len(t, issues, 1)
	assert.Equal(t, KindMissingSymbol, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "I-1")
	assert.Contains(t, issues[0].Message, "src/z.py")
	assert.Contains(t, issues[0].Message, "Foo")
}

func TestEngineUndeclaredFileScenario(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/z.py":                  "class Foo:\n    pass\n",
		"src/y.py":                  "Y = 1\n",
		"tests/uat/test_persist.py": "def test_persist():\n    pass\n",
	})

	engine := New(root, parse.DefaultRegistry(), nil)
	arch := fixtureArch()

	issues := engine.Validate(arch)
	assert.Len(t, issues, 1)
	assert.Equal(t, KindUndeclaredFile, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "src/y.py")

	// Declaring the stray file removes the finding on the next run.
	arch.Implementations[0].CodeFiles = append(arch.Implementations[0].CodeFiles, "src/y.py")
	assert.Empty(t, engine.Validate(arch))
}

func TestEngineCycleScenario(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/z.py":                  "class Foo:\n    pass\n",
		"tests/uat/test_persist.py": "def test_persist():\n    pass\n",
	})

	arch := fixtureArch()
	arch.Solutions = []model.Solution{
		{ID: "S-1", Name: "S-1", Satisfies: []string{"G-1"}, Requires: []string{"S-2"}},
		{ID: "S-2", Name: "S-2", Satisfies: []string{"G-1"}, Requires: []string{"S-1"}},
	}
	arch.Implementations = append(arch.Implementations, model.Implementation{
		ID: "I-2", Name: "I-2", Implements: "S-2",
	})

	engine := New(root, parse.DefaultRegistry(), nil)
	issues := engine.Validate(arch)
	assert.Len(t, issues, 1)
	assert.Equal(t, KindCyclicDependency, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "S-1")
	assert.Contains(t, issues[0].Message, "S-2")
}

func TestEngineIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/z.py":   "class Bar:\n    pass\n",
		"src/new.py": "N = 1\n",
	})

	arch := fixtureArch()
	arch.Goals = append(arch.Goals, model.Goal{ID: "G-2", Name: "G-2", AcceptanceTest: "tests/uat/missing.py"})

	engine := New(root, parse.DefaultRegistry(), nil)
	first := engine.Validate(arch)
	second := engine.Validate(arch)

	assert.NotEmpty(t, first)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("validation is not idempotent (-first +second):\n%s", diff)
	}
}

func TestEngineFixedCheckOrder(t *testing.T) {
	// One finding per check: duplicate id, traceability, dependency,
	// code inventory, test inventory - concatenated in that order.
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/z.py": "class Foo:\n    pass\n",
		"src/y.py": "Y = 1\n",
	})

	arch := fixtureArch()
	arch.Goals = append(arch.Goals, model.Goal{ID: "G-1", Name: "dup", AcceptanceTest: "tests/uat/test_persist.py"})
	arch.Solutions = append(arch.Solutions,
		model.Solution{ID: "S-2", Satisfies: []string{"G-1"}, Requires: []string{"S-2"}},
	)
	arch.Implementations = append(arch.Implementations, model.Implementation{
		ID: "I-2", Name: "I-2", Implements: "S-2",
	})

	engine := New(root, parse.DefaultRegistry(), nil)
	issues := engine.Validate(arch)

	kinds := make([]Kind, len(issues))
	for i, issue := range issues {
		kinds[i] = issue.Kind
	}
	assert.Equal(t, []Kind{
		KindDuplicateID,      // G-1 declared twice
		KindCyclicDependency, // S-2 requires itself
		KindUndeclaredFile,   // src/y.py on disk, not declared
		KindMissingFile,      // acceptance test missing on disk
		KindMissingFile,      // duplicate goal's acceptance test missing too
	}, kinds)
}

func TestDuplicateIDs(t *testing.T) {
	arch := &model.Architecture{
		Goals: []model.Goal{goal("G-1"), goal("G-1")},
		Solutions: []model.Solution{
			solution("S-1", "G-1"), solution("S-1", "G-1"),
		},
		Implementations: []model.Implementation{
			implementation("I-1", "S-1"), implementation("I-1", "S-1"),
		},
	}

	issues := DuplicateIDs(arch)
	assert.Len(t, issues, 3)
	for _, issue := range issues {
		assert.Equal(t, KindDuplicateID, issue.Kind)
	}
}
