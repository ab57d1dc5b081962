package main

import (
	"fmt"
	"path/filepath"

	"archcheck/internal/history"
	"archcheck/internal/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var noHistory bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the architecture against the source tree",
	Long: `Runs the full validation suite: duplicate ids, traceability,
dependency cycles, code inventory reconciliation, and test inventory.
Exits non-zero if any check reports a finding.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this run in the history database")
}

func runValidate(cmd *cobra.Command, args []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}

	issues := proj.engine.Validate(proj.arch)

	if !noHistory {
		recordRun(proj, issues)
	}

	if len(issues) > 0 {
		fmt.Println(failStyle.Render("ARCHITECTURE FAILED"))
		for _, issue := range issues {
			fmt.Printf("  %s\n", issueStyle.Render(issue.Message))
		}
		return fmt.Errorf("%d validation error(s)", len(issues))
	}

	fmt.Println(passStyle.Render("ARCHITECTURE VALIDATED"))
	fmt.Println(dimStyle.Render("  all references resolve, all files declared, all symbols present"))
	return nil
}

// recordRun appends the result to the history database. History is an aid,
// not a gate: failures here are logged and never affect the exit status.
func recordRun(proj *project, issues []validate.Issue) {
	store, err := history.Open(filepath.Join(proj.root, proj.cfg.HistoryPath))
	if err != nil {
		logger.Warn("history unavailable", zap.Error(err))
		return
	}
	defer store.Close()

	if _, err := store.Record(issues); err != nil {
		logger.Warn("failed to record run", zap.Error(err))
	}
}
