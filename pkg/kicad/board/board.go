// Package board exposes a KiCad PCB file (.kicad_pcb) as a mutable board
// model implementing layout.Board. The file is parsed into an S-expression
// tree that is edited in place and serialized back out, so board content the
// model does not understand (tracks, zones, setup, graphics) survives an
// apply pass untouched.
package board

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mcbridejc/kicad-component-layout/pkg/kicad/sexp"
	"github.com/mcbridejc/kicad-component-layout/pkg/layout"
)

// MinSupportedVersion is the oldest accepted file format (KiCad 6.0).
const MinSupportedVersion = 20211014

// Board is a parsed .kicad_pcb file. All mutation happens on the underlying
// S-expression tree; Save writes the tree back out.
type Board struct {
	root *sexp.Node
	path string
	dir  string
}

// Load reads and parses a board file. Footprint library paths passed to
// LoadFootprint resolve relative to the board file's directory.
func Load(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board file: %w", err)
	}
	defer f.Close()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	b.path = abs
	b.dir = filepath.Dir(abs)
	return b, nil
}

// Parse reads a board from r. A board parsed from a plain reader has no
// backing file; Save will fail but Write works.
func Parse(r io.Reader) (*Board, error) {
	root, err := sexp.ParseOne(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	if root.Name() != "kicad_pcb" {
		return nil, fmt.Errorf("not a KiCad PCB file: expected 'kicad_pcb', got '%s'", root.Name())
	}

	versionNode := root.Child("version")
	if versionNode == nil {
		return nil, fmt.Errorf("missing required 'version' field")
	}
	version, err := versionNode.Int(1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse version: %w", err)
	}
	if version < MinSupportedVersion {
		return nil, fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 6.0)",
			version, MinSupportedVersion)
	}

	return &Board{root: root}, nil
}

// Version returns the file format version.
func (b *Board) Version() int {
	v, _ := b.root.Child("version").Int(1)
	return v
}

// Path returns the backing file path, or "" for boards parsed from a reader.
func (b *Board) Path() string {
	return b.path
}

// Write serializes the board to w.
func (b *Board) Write(w io.Writer) error {
	return sexp.Write(w, b.root)
}

// Save writes the board back to its backing file.
func (b *Board) Save() error {
	if b.path == "" {
		return fmt.Errorf("board has no backing file")
	}
	return b.SaveAs(b.path)
}

// SaveAs writes the board to the given path.
func (b *Board) SaveAs(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create board file: %w", err)
	}
	if err := b.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write board file: %w", err)
	}
	return f.Close()
}

// Footprints returns a view over every footprint on the board, in file order.
func (b *Board) Footprints() []*Footprint {
	nodes := b.root.ChildAll("footprint")
	out := make([]*Footprint, len(nodes))
	for i, n := range nodes {
		out[i] = &Footprint{node: n}
	}
	return out
}

// FindFootprint resolves a reference designator to a footprint view.
func (b *Board) FindFootprint(reference string) (*Footprint, bool) {
	for _, fp := range b.Footprints() {
		if fp.Reference() == reference {
			return fp, true
		}
	}
	return nil, false
}

// layout.Board implementation

func (b *Board) FindComponent(reference string) (layout.Component, bool) {
	fp, ok := b.FindFootprint(reference)
	if !ok {
		return nil, false
	}
	return fp, true
}

func (b *Board) Components() []layout.Component {
	fps := b.Footprints()
	out := make([]layout.Component, len(fps))
	for i, fp := range fps {
		out[i] = fp
	}
	return out
}

// LoadFootprint loads <name>.kicad_mod from a .pretty library directory.
// A relative libraryPath resolves against the board file's directory, the
// same convention the layout document uses for its footprint paths.
func (b *Board) LoadFootprint(libraryPath, name string) (layout.Component, error) {
	dir := libraryPath
	if !filepath.IsAbs(dir) && b.dir != "" {
		dir = filepath.Join(b.dir, dir)
	}
	return loadFootprintFile(dir, name)
}

// RemoveComponent deletes a footprint from the board tree. The view (and
// any copies of it) must not be used afterwards.
func (b *Board) RemoveComponent(c layout.Component) {
	fp, ok := c.(*Footprint)
	if !ok {
		return
	}
	b.root.Remove(fp.node)
}

// AddComponent places a detached footprint instance onto the board, keeping
// it grouped with the other footprint nodes in the file.
func (b *Board) AddComponent(c layout.Component) {
	fp, ok := c.(*Footprint)
	if !ok {
		panic(fmt.Sprintf("board.AddComponent: foreign component type %T", c))
	}

	existing := b.root.ChildAll("footprint")
	if len(existing) == 0 {
		b.root.Append(fp.node)
		return
	}
	last := existing[len(existing)-1]
	for i, child := range b.root.Children {
		if child == last {
			rest := append([]*sexp.Node{fp.node}, b.root.Children[i+1:]...)
			b.root.Children = append(b.root.Children[:i+1], rest...)
			return
		}
	}
	b.root.Append(fp.node)
}
