package sexp

import (
	"strings"
	"testing"
)

func TestParseBasics(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, nodes []*Node)
	}{
		{
			name:  "simple list",
			input: "(version 20221018)",
			check: func(t *testing.T, nodes []*Node) {
				if len(nodes) != 1 {
					t.Fatalf("expected 1 node, got %d", len(nodes))
				}
				n := nodes[0]
				if n.Name() != "version" {
					t.Errorf("Name() = %q, want %q", n.Name(), "version")
				}
				v, err := n.Int(1)
				if err != nil || v != 20221018 {
					t.Errorf("Int(1) = %d, %v", v, err)
				}
			},
		},
		{
			name:  "quoted string with spaces",
			input: `(title "Example Board")`,
			check: func(t *testing.T, nodes []*Node) {
				if got := nodes[0].Str(1); got != "Example Board" {
					t.Errorf("Str(1) = %q, want %q", got, "Example Board")
				}
				if nodes[0].At(1).Kind != KindString {
					t.Errorf("expected string atom, got kind %v", nodes[0].At(1).Kind)
				}
			},
		},
		{
			name:  "escaped quote in string",
			input: `(property "Value" "1\"")`,
			check: func(t *testing.T, nodes []*Node) {
				if got := nodes[0].Str(2); got != `1"` {
					t.Errorf("Str(2) = %q", got)
				}
			},
		},
		{
			name:  "nested lists",
			input: `(footprint "LED:LED_0603" (layer "F.Cu") (at 100 50 90))`,
			check: func(t *testing.T, nodes []*Node) {
				fp := nodes[0]
				at := fp.Child("at")
				if at == nil {
					t.Fatal("Child(\"at\") = nil")
				}
				x, _ := at.Float(1)
				y, _ := at.Float(2)
				a, _ := at.Float(3)
				if x != 100 || y != 50 || a != 90 {
					t.Errorf("at = (%v %v %v)", x, y, a)
				}
			},
		},
		{
			name:  "comment skipped",
			input: "# comment line\n(net 1 \"GND\")",
			check: func(t *testing.T, nodes []*Node) {
				if nodes[0].Name() != "net" {
					t.Errorf("Name() = %q", nodes[0].Name())
				}
			},
		},
		{
			name:  "multiple top-level nodes",
			input: "(net 0 \"\") (net 1 \"GND\")",
			check: func(t *testing.T, nodes []*Node) {
				if len(nodes) != 2 {
					t.Errorf("expected 2 nodes, got %d", len(nodes))
				}
			},
		},
		{
			name:    "unbalanced paren",
			input:   "(net 1 \"GND\"",
			wantErr: true,
		},
		{
			name:    "stray close paren",
			input:   ")",
			wantErr: true,
		},
		{
			name:    "unterminated string",
			input:   `(title "oops`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := ParseString(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseString() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseString() unexpected error: %v", err)
			}
			tt.check(t, nodes)
		})
	}
}

func TestChildAll(t *testing.T) {
	nodes, err := ParseString(`(kicad_pcb (net 0 "") (net 1 "GND") (footprint "R:R1"))`)
	if err != nil {
		t.Fatal(err)
	}
	nets := nodes[0].ChildAll("net")
	if len(nets) != 2 {
		t.Fatalf("ChildAll(net) returned %d nodes, want 2", len(nets))
	}
	if got := nets[1].Str(2); got != "GND" {
		t.Errorf("net name = %q, want GND", got)
	}
}

func TestHasFlag(t *testing.T) {
	nodes, err := ParseString(`(pad "1" smd rect locked (at 0 0))`)
	if err != nil {
		t.Fatal(err)
	}
	if !nodes[0].HasFlag("locked") {
		t.Error("HasFlag(locked) = false, want true")
	}
	if nodes[0].HasFlag("hidden") {
		t.Error("HasFlag(hidden) = true, want false")
	}
}

func TestRemoveAndAppend(t *testing.T) {
	root, err := ParseOne(strings.NewReader(`(kicad_pcb (footprint "A") (footprint "B"))`))
	if err != nil {
		t.Fatal(err)
	}
	fps := root.ChildAll("footprint")
	if !root.Remove(fps[0]) {
		t.Fatal("Remove returned false")
	}
	if len(root.ChildAll("footprint")) != 1 {
		t.Errorf("expected 1 footprint after removal")
	}
	root.Append(List(Symbol("footprint"), String("C")))
	if len(root.ChildAll("footprint")) != 2 {
		t.Errorf("expected 2 footprints after append")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	input := `(kicad_pcb
	(version 20221018)
	(generator pcbnew)
	(net 0 "")
	(net 1 "GND")
	(footprint "LED_SMD:LED_0603_1608Metric"
		(layer "F.Cu")
		(at 100 52.5 90)
		(property "Reference" "D1")
		(pad "1" smd roundrect
			(at -0.8 0)
			(size 0.8 0.75)
			(layers "F.Cu" "F.Paste" "F.Mask")
			(net 1 "GND")
		)
	)
)`
	root, err := ParseOne(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var out strings.Builder
	if err := Write(&out, root); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Re-parse the output and compare structure via compact rendering
	again, err := ParseOne(strings.NewReader(out.String()))
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if root.String() != again.String() {
		t.Errorf("round trip mismatch:\nfirst:  %s\nsecond: %s", root.String(), again.String())
	}
}

func TestWriteEscapesStrings(t *testing.T) {
	n := List(Symbol("property"), String("Value"), String(`10k "precision"`))
	var out strings.Builder
	if err := Write(&out, n); err != nil {
		t.Fatal(err)
	}
	again, err := ParseOne(strings.NewReader(out.String()))
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if got := again.Str(2); got != `10k "precision"` {
		t.Errorf("round-tripped value = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100"},
		{52.5, "52.5"},
		{-0.8, "-0.8"},
		{12.345678, "12.345678"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnitConversions(t *testing.T) {
	if got := MMToIU(1.5); got != 1500000 {
		t.Errorf("MMToIU(1.5) = %d", got)
	}
	if got := MMToIU(-1.5); got != -1500000 {
		t.Errorf("MMToIU(-1.5) = %d", got)
	}
	if got := IUToMM(2500000); got != 2.5 {
		t.Errorf("IUToMM(2500000) = %v", got)
	}
	if got := NormalizeDegrees(-90); got != 270 {
		t.Errorf("NormalizeDegrees(-90) = %v", got)
	}
	if got := NormalizeDegrees(540); got != 180 {
		t.Errorf("NormalizeDegrees(540) = %v", got)
	}
}
