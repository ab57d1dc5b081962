package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"archcheck/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runnerArch() *model.Architecture {
	return &model.Architecture{
		Goals: []model.Goal{
			{ID: "G-1", Name: "G-1", AcceptanceTest: "tests/uat/test_g1.py"},
		},
		Implementations: []model.Implementation{{
			ID: "I-1", Name: "I-1", Implements: "S-1",
			TestFiles: []string{"tests/test_a.py", "tests/test_b.py"},
		}, {
			ID: "I-2", Name: "I-2", Implements: "S-1",
		}},
	}
}

func TestTestFilesForImplementation(t *testing.T) {
	files, err := TestFilesFor(runnerArch(), "I-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/test_a.py", "tests/test_b.py"}, files)
}

func TestTestFilesForGoal(t *testing.T) {
	files, err := TestFilesFor(runnerArch(), "G-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/uat/test_g1.py"}, files)
}

func TestTestFilesForUnknownNode(t *testing.T) {
	_, err := TestFilesFor(runnerArch(), "X-9")
	assert.ErrorContains(t, err, "not found")
}

func TestTestFilesForNodeWithoutTests(t *testing.T) {
	_, err := TestFilesFor(runnerArch(), "I-2")
	assert.ErrorContains(t, err, "no test files")
}

func TestRunStreamsOutput(t *testing.T) {
	var out bytes.Buffer
	r := New(t.TempDir(), []string{"echo", "running"}, nil)

	err := r.Run(context.Background(), runnerArch(), "I-1", &out)
	require.NoError(t, err)

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "running"), "output: %q", got)
	assert.Contains(t, got, "tests/test_a.py")
	assert.Contains(t, got, "tests/test_b.py")
}

func TestRunFailingCommand(t *testing.T) {
	var out bytes.Buffer
	r := New(t.TempDir(), []string{"false"}, nil)

	err := r.Run(context.Background(), runnerArch(), "I-1", &out)
	assert.Error(t, err)
}

func TestRunNoCommandConfigured(t *testing.T) {
	r := New(t.TempDir(), nil, nil)
	err := r.Run(context.Background(), runnerArch(), "I-1", &bytes.Buffer{})
	assert.ErrorContains(t, err, "no test command")
}
