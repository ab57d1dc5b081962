package main

import (
	"fmt"
	"path/filepath"

	"archcheck/internal/history"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyRunID string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded validation runs",
	Long: `Shows past validation runs from the project's history database,
newest first. Use --run to print the findings of a specific run.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of runs to show")
	historyCmd.Flags().StringVar(&historyRunID, "run", "", "show the findings of one run")
}

func runHistory(cmd *cobra.Command, args []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}

	store, err := history.Open(filepath.Join(proj.root, proj.cfg.HistoryPath))
	if err != nil {
		return err
	}
	defer store.Close()

	if historyRunID != "" {
		issues, err := store.Issues(historyRunID)
		if err != nil {
			return err
		}
		if len(issues) == 0 {
			fmt.Println(passStyle.Render("run passed with no findings"))
			return nil
		}
		for _, issue := range issues {
			fmt.Printf("  [%s] %s\n", issue.Kind, issueStyle.Render(issue.Message))
		}
		return nil
	}

	runs, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println(dimStyle.Render("no recorded runs"))
		return nil
	}
	for _, r := range runs {
		status := passStyle.Render("PASS")
		if !r.Passed {
			status = failStyle.Render(fmt.Sprintf("FAIL (%d)", r.IssueCount))
		}
		fmt.Printf("%s  %s  %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"), status, dimStyle.Render(r.ID))
	}
	return nil
}
