package main

import (
	"os"

	"archcheck/internal/runner"

	"github.com/spf13/cobra"
)

var testID string

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the tests declared for a goal or implementation",
	Long: `Resolves a node id to its declared test files - an Implementation's
test_files, or a Goal's acceptance test - and hands them to the configured
external test runner.`,
	RunE: runTest,
}

func init() {
	testCmd.Flags().StringVar(&testID, "id", "", "goal or implementation id (required)")
	_ = testCmd.MarkFlagRequired("id")
}

func runTest(cmd *cobra.Command, args []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}

	r := runner.New(proj.root, proj.cfg.TestCommand, logger)
	return r.Run(cmd.Context(), proj.arch, testID, os.Stdout)
}
