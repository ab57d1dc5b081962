package main

import (
	"fmt"
	"os"

	"archcheck/internal/briefing"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	specID  string
	specRaw bool
)

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Generate the mission briefing for an implementation",
	Long: `Assembles a focused markdown briefing for one Implementation: the
Solution it realizes, the Goals that Solution satisfies, the declared
constraints, and the files and symbols the Implementation owes.`,
	RunE: runSpec,
}

func init() {
	specCmd.Flags().StringVar(&specID, "id", "", "implementation id (required)")
	specCmd.Flags().BoolVar(&specRaw, "raw", false, "print raw markdown without terminal rendering")
	_ = specCmd.MarkFlagRequired("id")
}

func runSpec(cmd *cobra.Command, args []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}

	doc, err := briefing.Generate(proj.arch, specID)
	if err != nil {
		return err
	}

	if specRaw || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(doc)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(doc)
		return nil
	}
	rendered, err := renderer.Render(doc)
	if err != nil {
		fmt.Print(doc)
		return nil
	}
	fmt.Print(rendered)
	return nil
}
