package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcbridejc/kicad-component-layout/pkg/kicad/board"
	"github.com/mcbridejc/kicad-component-layout/pkg/layout"
)

var extractOutPath string

var extractCmd = &cobra.Command{
	Use:   "extract <board.kicad_pcb>",
	Short: "Extract the current placement into a layout document",
	Long: `Reads a board file and writes a layout document describing every
component's position, rotation and mounting side. The document's origin is
always [0, 0] and footprint assignments are not exported, so re-applying an
extracted document never replaces footprints.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractOutPath, "out", "o", "", "write the layout document here instead of stdout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	b, err := board.Load(args[0])
	if err != nil {
		return err
	}

	doc := layout.Extract(b)

	if extractOutPath == "" {
		return doc.Encode(cmd.OutOrStdout())
	}

	f, err := os.Create(extractOutPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	if err := doc.Encode(f); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d component(s) to %s\n", len(doc.References()), extractOutPath)
	return nil
}
