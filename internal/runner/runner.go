// Package runner invokes the project's external test runner for a declared
// node: an Implementation's unit test files or a Goal's acceptance test.
// It is a thin process wrapper with no validation semantics.
package runner

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"archcheck/internal/model"

	"go.uber.org/zap"
)

// Runner shells out to a configured test command with the resolved test
// files appended as arguments.
type Runner struct {
	root    string
	command []string
	log     *zap.Logger
}

// New creates a Runner executing command (argv form) from the project root.
func New(root string, command []string, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{root: root, command: command, log: log}
}

// TestFilesFor resolves a node id to its test files: an Implementation's
// test_files first, then a Goal's acceptance test.
func TestFilesFor(arch *model.Architecture, nodeID string) ([]string, error) {
	if impl, ok := arch.ImplementationByID(nodeID); ok {
		if len(impl.TestFiles) == 0 {
			return nil, fmt.Errorf("node %s has no test files", nodeID)
		}
		return impl.TestFiles, nil
	}
	if goal, ok := arch.GoalByID(nodeID); ok {
		if goal.AcceptanceTest == "" {
			return nil, fmt.Errorf("node %s has no test files", nodeID)
		}
		return []string{goal.AcceptanceTest}, nil
	}
	return nil, fmt.Errorf("node %s not found", nodeID)
}

// Run executes the test command for the given node, streaming combined
// output to out. The returned error carries the process exit status; a
// failing test run is an error from the command, not from the Runner.
func (r *Runner) Run(ctx context.Context, arch *model.Architecture, nodeID string, out io.Writer) error {
	if len(r.command) == 0 {
		return fmt.Errorf("no test command configured")
	}
	files, err := TestFilesFor(arch, nodeID)
	if err != nil {
		return err
	}

	args := append(append([]string{}, r.command[1:]...), files...)
	cmd := exec.CommandContext(ctx, r.command[0], args...)
	cmd.Dir = r.root
	cmd.Stdout = out
	cmd.Stderr = out

	r.log.Debug("running tests",
		zap.String("node", nodeID),
		zap.String("command", r.command[0]),
		zap.Strings("files", files))

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("test run for %s: %w", nodeID, err)
	}
	return nil
}
