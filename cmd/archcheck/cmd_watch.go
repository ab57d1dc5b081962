package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"archcheck/internal/manifest"
	"archcheck/internal/validate"
	"archcheck/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate whenever the project tree changes",
	Long: `Watches the project root and re-runs the full validation suite after
each change burst settles. The manifest is re-read on every pass so edits
to the declaration itself are picked up. Interrupt to stop.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}

	exclude := validate.DefaultExcludedDirs()
	for _, name := range proj.cfg.ExcludeDirs {
		exclude[name] = true
	}

	revalidate := func() {
		arch := proj.arch
		path := proj.cfg.Manifest
		if manifestPath != "" {
			path = manifestPath
		}
		if fresh, loadErr := manifest.Load(joinRoot(proj.root, path)); loadErr == nil {
			arch = fresh
		} else {
			logger.Warn("manifest reload failed, using last good declaration", zap.Error(loadErr))
		}

		issues := proj.engine.Validate(arch)
		if len(issues) == 0 {
			fmt.Println(passStyle.Render("ARCHITECTURE VALIDATED"))
			return
		}
		fmt.Println(failStyle.Render(fmt.Sprintf("ARCHITECTURE FAILED (%d issues)", len(issues))))
		for _, issue := range issues {
			fmt.Printf("  %s\n", issueStyle.Render(issue.Message))
		}
	}

	watcher, err := watch.New(proj.root, exclude, revalidate, logger)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	if err := watcher.Start(cmd.Context()); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Stop()

	fmt.Println(dimStyle.Render("watching " + proj.root + " (interrupt to stop)"))
	revalidate()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	return nil
}
