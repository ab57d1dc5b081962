// archcheck validates that a project's declared architecture - goals,
// solutions, implementations - is internally consistent and matches the
// source tree on disk.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"archcheck/internal/config"
	"archcheck/internal/manifest"
	"archcheck/internal/model"
	"archcheck/internal/parse"
	"archcheck/internal/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	rootDir      string
	manifestPath string
	verbose      bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "archcheck",
	Short: "archcheck - executable architecture validator",
	Long: `archcheck checks a declared architecture graph against reality.

A project declares business Goals, architectural Solutions, and concrete
Implementations in architecture.yaml. archcheck verifies that the graph is
internally consistent (no dangling references, no orphans, no dependency
cycles) and that it matches the source tree: every declared file exists,
every required symbol is defined, and every source file is declared.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run validation.
		return runValidate(cmd, args)
	},
}

// project bundles everything a command needs to operate on one project.
type project struct {
	root   string
	cfg    *config.Config
	arch   *model.Architecture
	engine *validate.Engine
}

// loadProject resolves the root, reads config and manifest, and builds the
// validation engine. Root is explicit everywhere; nothing below this point
// consults the process working directory.
func loadProject() (*project, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	path := manifestPath
	if path == "" {
		path = cfg.Manifest
	}
	arch, err := manifest.Load(joinRoot(root, path))
	if err != nil {
		return nil, err
	}

	engine := validate.New(root, parse.DefaultRegistry(), logger)
	engine.ExcludeDirs(cfg.ExcludeDirs...)

	return &project{root: root, cfg: cfg, arch: arch, engine: engine}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root directory")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "architecture manifest path (default: from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(specCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
}

// joinRoot anchors a relative path at the project root; absolute paths pass
// through unchanged.
func joinRoot(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
