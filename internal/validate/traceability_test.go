package validate

import (
	"testing"

	"archcheck/internal/model"

	"github.com/stretchr/testify/assert"
)

func goal(id string) model.Goal {
	return model.Goal{ID: id, Name: id, AcceptanceTest: "tests/uat/" + id + ".py"}
}

func solution(id string, satisfies ...string) model.Solution {
	return model.Solution{ID: id, Name: id, Satisfies: satisfies}
}

func implementation(id, implements string, codeFiles ...string) model.Implementation {
	return model.Implementation{ID: id, Name: id, Implements: implements, CodeFiles: codeFiles}
}

func TestTraceabilityValidChain(t *testing.T) {
	goals := []model.Goal{goal("G-1")}
	sols := []model.Solution{solution("S-1", "G-1")}
	impls := []model.Implementation{implementation("I-1", "S-1", "src/a.py")}

	assert.Empty(t, Traceability(impls, sols, goals))
}

func TestTraceabilityDanglingSolutionReference(t *testing.T) {
	goals := []model.Goal{goal("G-1")}
	sols := []model.Solution{solution("S-1", "G-1")}
	impls := []model.Implementation{
		implementation("I-1", "S-1"),
		implementation("I-2", "S-404"),
	}

	issues := Traceability(impls, sols, goals)
	assert.Len(t, issues, 1)
	assert.Equal(t, KindDanglingReference, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "I-2")
	assert.Contains(t, issues[0].Message, "S-404")
}

func TestTraceabilityEmptySatisfiesShortCircuits(t *testing.T) {
	// A solution with no satisfies entries is reported once and is not
	// additionally checked for dangling goal references.
	goals := []model.Goal{goal("G-1")}
	sols := []model.Solution{solution("S-1", "G-1"), solution("S-2")}
	impls := []model.Implementation{
		implementation("I-1", "S-1"),
		implementation("I-2", "S-2"),
	}

	issues := Traceability(impls, sols, goals)
	assert.Len(t, issues, 1)
	assert.Equal(t, KindOrphanedEntity, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "S-2")
	assert.Contains(t, issues[0].Message, "orphaned solution")
}

func TestTraceabilityDanglingGoalReference(t *testing.T) {
	goals := []model.Goal{goal("G-1")}
	sols := []model.Solution{solution("S-1", "G-1", "G-404")}
	impls := []model.Implementation{implementation("I-1", "S-1")}

	issues := Traceability(impls, sols, goals)
	assert.Len(t, issues, 1)
	assert.Equal(t, KindDanglingReference, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "G-404")
}

func TestTraceabilityOrphanedGoal(t *testing.T) {
	goals := []model.Goal{goal("G-1"), goal("G-2")}
	sols := []model.Solution{solution("S-1", "G-1")}
	impls := []model.Implementation{implementation("I-1", "S-1")}

	issues := Traceability(impls, sols, goals)
	assert.Len(t, issues, 1)
	assert.Equal(t, KindOrphanedEntity, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "G-2")
	assert.Contains(t, issues[0].Message, "orphaned goal")

	// Satisfied goals are never reported.
	for _, issue := range issues {
		assert.NotContains(t, issue.Message, "G-1 is not satisfied")
	}
}

func TestTraceabilityUnimplementedSolution(t *testing.T) {
	goals := []model.Goal{goal("G-1")}
	sols := []model.Solution{solution("S-1", "G-1"), solution("S-2", "G-1")}
	impls := []model.Implementation{implementation("I-1", "S-1")}

	issues := Traceability(impls, sols, goals)
	assert.Len(t, issues, 1)
	assert.Equal(t, KindOrphanedEntity, issues[0].Kind)
	assert.Contains(t, issues[0].Message, "S-2")
	assert.Contains(t, issues[0].Message, "unimplemented solution")
}

func TestTraceabilityReportsAllViolationsTogether(t *testing.T) {
	goals := []model.Goal{goal("G-1"), goal("G-2")}
	sols := []model.Solution{solution("S-1", "G-404")}
	impls := []model.Implementation{implementation("I-1", "S-404")}

	issues := Traceability(impls, sols, goals)
	// Dangling impl ref, dangling goal ref, two orphaned goals, one
	// unimplemented solution.
	assert.Len(t, issues, 5)
}
