package validate

import (
	"strings"
	"testing"

	"archcheck/internal/model"

	"github.com/stretchr/testify/assert"
)

func solutionRequiring(id string, requires ...string) model.Solution {
	return model.Solution{ID: id, Name: id, Satisfies: []string{"G-1"}, Requires: requires}
}

func TestDependenciesNoRequiresNoCycles(t *testing.T) {
	sols := []model.Solution{
		solutionRequiring("S-1"),
		solutionRequiring("S-2"),
		solutionRequiring("S-3"),
	}
	assert.Empty(t, Dependencies(sols))
}

func TestDependenciesAcyclicChain(t *testing.T) {
	sols := []model.Solution{
		solutionRequiring("S-1", "S-2"),
		solutionRequiring("S-2", "S-3"),
		solutionRequiring("S-3"),
	}
	assert.Empty(t, Dependencies(sols))
}

func TestDependenciesDanglingRequire(t *testing.T) {
	sols := []model.Solution{solutionRequiring("S-1", "S-404")}

	issues := Dependencies(sols)
	assert.Len(t, issues, 1)
	assert.Equal(t, KindDanglingReference, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "S-404")
}

func TestDependenciesTwoNodeCycle(t *testing.T) {
	sols := []model.Solution{
		solutionRequiring("S-1", "S-2"),
		solutionRequiring("S-2", "S-1"),
	}

	issues := Dependencies(sols)
	assert.Len(t, issues, 1)
	assert.Equal(t, KindCyclicDependency, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "S-1")
	assert.Contains(t, issues[0].Message, "S-2")
}

func TestDependenciesCycleReportedRegardlessOfOrder(t *testing.T) {
	// Same cycle, reversed declaration order: still exactly one report
	// naming both solutions.
	sols := []model.Solution{
		solutionRequiring("S-2", "S-1"),
		solutionRequiring("S-1", "S-2"),
	}

	issues := Dependencies(sols)
	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "S-1")
	assert.Contains(t, issues[0].Message, "S-2")
}

func TestDependenciesSelfCycle(t *testing.T) {
	sols := []model.Solution{solutionRequiring("S-1", "S-1")}

	issues := Dependencies(sols)
	assert.Len(t, issues, 1)
	assert.Equal(t, KindCyclicDependency, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "S-1 -> S-1")
}

func TestDependenciesMultipleIndependentCycles(t *testing.T) {
	sols := []model.Solution{
		solutionRequiring("S-1", "S-2"),
		solutionRequiring("S-2", "S-1"),
		solutionRequiring("S-3", "S-4"),
		solutionRequiring("S-4", "S-3"),
	}

	issues := Dependencies(sols)
	assert.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, KindCyclicDependency, issue.Kind)
	}
}

func TestDependenciesCyclePathFormat(t *testing.T) {
	sols := []model.Solution{
		solutionRequiring("S-1", "S-2"),
		solutionRequiring("S-2", "S-3"),
		solutionRequiring("S-3", "S-1"),
	}

	issues := Dependencies(sols)
	assert.Len(t, issues, 1)
	// Arrow-joined path from the re-entered node back to itself.
	assert.True(t, strings.HasSuffix(issues[0].Message, "S-1 -> S-2 -> S-3 -> S-1"),
		"unexpected cycle format: %s", issues[0].Message)
}

func TestDependenciesSharedNodeNotACycle(t *testing.T) {
	// Diamond: two paths converge without closing a loop.
	sols := []model.Solution{
		solutionRequiring("S-1", "S-2", "S-3"),
		solutionRequiring("S-2", "S-4"),
		solutionRequiring("S-3", "S-4"),
		solutionRequiring("S-4"),
	}
	assert.Empty(t, Dependencies(sols))
}
