package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mcbridejc/kicad-component-layout/pkg/kicad/board"
	"github.com/mcbridejc/kicad-component-layout/pkg/layout"
)

var (
	applyLayoutPath string
	applyOutPath    string
	applyDryRun     bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <board.kicad_pcb>",
	Short: "Apply a layout document to a board file",
	Long: `Reads a layout document and applies it to the board: components are
moved, rotated, flipped and re-footprinted to match. The document defaults to
layout.yaml in the board file's directory. Footprint library paths in the
document resolve relative to that directory as well.

Unknown reference designators are reported as warnings and skipped. A
footprint that fails to load aborts the operation; in that case the board
file is left unwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVarP(&applyLayoutPath, "layout", "l", "", "layout document (default: layout.yaml next to the board)")
	applyCmd.Flags().StringVarP(&applyOutPath, "out", "o", "", "write the modified board here instead of in place")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "apply and report, but do not save the board")
}

func runApply(cmd *cobra.Command, args []string) error {
	boardPath := args[0]
	logger := newLogger(cmd.ErrOrStderr())

	layoutPath := applyLayoutPath
	if layoutPath == "" {
		layoutPath = filepath.Join(filepath.Dir(boardPath), "layout.yaml")
	}

	doc, err := layout.LoadDocument(layoutPath)
	if err != nil {
		return err
	}
	logger.Debug("loaded layout document", "path", layoutPath, "components", len(doc.References()))

	b, err := board.Load(boardPath)
	if err != nil {
		return err
	}

	report, applyErr := layout.Apply(doc, b, logger)
	for _, w := range report.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if applyErr != nil {
		return applyErr
	}

	if applyDryRun {
		logger.Info("dry run, board not saved")
		return nil
	}

	outPath := applyOutPath
	if outPath == "" {
		outPath = boardPath
	}
	if err := b.SaveAs(outPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d component(s) to %s\n", len(doc.References()), outPath)
	return nil
}
