package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcbridejc/kicad-component-layout/pkg/kicad/board"
	"github.com/mcbridejc/kicad-component-layout/pkg/layout"
)

const testBoard = `(kicad_pcb
	(version 20221018)
	(generator pcbnew)
	(net 0 "")
	(net 1 "GND")
	(footprint "Resistor_SMD:R_0603_1608Metric"
		(layer "F.Cu")
		(at 10 10)
		(property "Reference" "R1")
		(property "Value" "10k")
		(pad "1" smd roundrect
			(at -0.825 0)
			(size 0.8 0.95)
			(layers "F.Cu" "F.Paste" "F.Mask")
			(net 1 "GND")
		)
		(pad "2" smd roundrect
			(at 0.825 0)
			(size 0.8 0.95)
			(layers "F.Cu" "F.Paste" "F.Mask")
		)
	)
)
`

const testLayout = `origin: [200, 80]
components:
  R1:
    location: [12, 0]
    rotation: 90
  C7:
    location: [0, 0]
`

// runCLI executes the root command with fresh flag state, capturing output.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	applyLayoutPath = ""
	applyOutPath = ""
	applyDryRun = false
	extractOutPath = ""
	verbose = false

	var out, errBuf bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errBuf.String(), err
}

func writeProject(t *testing.T) (dir, boardPath string) {
	t.Helper()
	dir = t.TempDir()
	boardPath = filepath.Join(dir, "board.kicad_pcb")
	if err := os.WriteFile(boardPath, []byte(testBoard), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "layout.yaml"), []byte(testLayout), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, boardPath
}

func TestApplyE2E(t *testing.T) {
	_, boardPath := writeProject(t)

	stdout, stderr, err := runCLI(t, "apply", boardPath)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !strings.Contains(stdout, "Applied 2 component(s)") {
		t.Errorf("stdout = %q", stdout)
	}
	// C7 is not on the board: warned, not fatal
	if !strings.Contains(stderr, "C7") {
		t.Errorf("expected C7 warning, stderr = %q", stderr)
	}

	b, err := board.Load(boardPath)
	if err != nil {
		t.Fatalf("re-load board: %v", err)
	}
	r1, ok := b.FindFootprint("R1")
	if !ok {
		t.Fatal("R1 missing from saved board")
	}
	x, y := r1.Position()
	if x != 212 || y != 80 {
		t.Errorf("R1 at (%v, %v), want (212, 80)", x, y)
	}
	if r1.OrientationDegrees() != 90 {
		t.Errorf("R1 rotation = %v, want 90", r1.OrientationDegrees())
	}
}

func TestApplyDryRunLeavesBoardUntouched(t *testing.T) {
	_, boardPath := writeProject(t)
	before, err := os.ReadFile(boardPath)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "apply", "--dry-run", boardPath); err != nil {
		t.Fatalf("apply --dry-run failed: %v", err)
	}

	after, err := os.ReadFile(boardPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("dry run modified the board file")
	}
}

func TestApplyMissingLayoutFile(t *testing.T) {
	dir := t.TempDir()
	boardPath := filepath.Join(dir, "board.kicad_pcb")
	if err := os.WriteFile(boardPath, []byte(testBoard), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, "apply", boardPath)
	if err == nil {
		t.Fatal("expected error for missing layout.yaml")
	}
}

func TestExtractE2E(t *testing.T) {
	dir, boardPath := writeProject(t)
	outPath := filepath.Join(dir, "extracted.yaml")

	stdout, _, err := runCLI(t, "extract", boardPath, "--out", outPath)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(stdout, "Extracted 1 component(s)") {
		t.Errorf("stdout = %q", stdout)
	}

	doc, err := layout.LoadDocument(outPath)
	if err != nil {
		t.Fatalf("parse extracted document: %v", err)
	}
	spec := doc.Components["R1"]
	if spec == nil {
		t.Fatal("R1 missing from extracted document")
	}
	if spec.Location.X != 10 || spec.Location.Y != 10 {
		t.Errorf("R1 location = %+v", *spec.Location)
	}
	if doc.Origin != (layout.Point{}) {
		t.Errorf("origin = %+v, want zero", doc.Origin)
	}
}

func TestExtractToStdout(t *testing.T) {
	_, boardPath := writeProject(t)

	stdout, _, err := runCLI(t, "extract", boardPath)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(stdout, "R1:") {
		t.Errorf("stdout = %q, expected YAML with R1", stdout)
	}
}
