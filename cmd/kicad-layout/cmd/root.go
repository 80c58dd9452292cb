package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kicad-layout",
	Short: "Apply and extract declarative KiCad component layouts",
	Long: `kicad-layout moves, rotates, flips and re-footprints components on a
KiCad board file from a declarative layout.yaml document, or extracts the
board's current placement into the same format.

Example layout.yaml:

  origin: [200, 80]          # offset applied to all locations, mm
  components:
    D1:
      location: [12, 0]      # mm, relative to origin
      rotation: 90           # degrees, absolute
      flip: true             # mount on the back side
      footprint:
        path: parts.pretty   # relative to the board file
        name: LED_0805_2012Metric

All per-component fields are optional; an absent field leaves that property
unchanged.

Examples:
  kicad-layout apply board.kicad_pcb              # layout.yaml next to the board
  kicad-layout apply --layout ring.yaml board.kicad_pcb
  kicad-layout extract board.kicad_pcb --out layout.yaml`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger builds the diagnostic logger for one command invocation. The
// sink is passed in explicitly so tests can capture it.
func newLogger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level: level,
	})
}
