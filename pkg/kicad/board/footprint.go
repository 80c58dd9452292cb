package board

import (
	"strconv"
	"strings"

	"github.com/mcbridejc/kicad-component-layout/pkg/kicad/sexp"
	"github.com/mcbridejc/kicad-component-layout/pkg/layout"
)

// Footprint is a live view over one (footprint ...) node. Mutations edit the
// node in place, so they show up when the owning board is serialized.
//
// Handles both KiCad 7+ files, where Reference/Value live in (property ...)
// nodes, and KiCad 6 files, which used (fp_text reference ...) instead.
type Footprint struct {
	node *sexp.Node
}

// Identity returns the full library id as stored in the file, e.g.
// "Resistor_SMD:R_0603_1608Metric".
func (f *Footprint) Identity() string {
	return f.node.Str(1)
}

// FootprintName returns the footprint name without its library prefix.
// Comparison against a layout document's footprint assignment is by name
// only; the file does not record which library path a footprint came from.
func (f *Footprint) FootprintName() string {
	id := f.Identity()
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}

func (f *Footprint) Reference() string {
	return f.textValue("Reference", "reference")
}

func (f *Footprint) SetReference(ref string) {
	f.setTextValue("Reference", "reference", ref)
}

func (f *Footprint) Value() string {
	return f.textValue("Value", "value")
}

func (f *Footprint) SetValue(value string) {
	f.setTextValue("Value", "value", value)
}

// Position returns the placement in mm. Board files store coordinates in mm
// directly; no internal-unit conversion applies at the file boundary.
func (f *Footprint) Position() (float64, float64) {
	at := f.node.Child("at")
	if at == nil {
		return 0, 0
	}
	x, _ := at.Float(1)
	y, _ := at.Float(2)
	return x, y
}

func (f *Footprint) SetPosition(x, y float64) {
	at := f.ensureAt()
	for at.Len() < 3 {
		at.Append(sexp.Number(0))
	}
	at.Children[1] = sexp.Number(x)
	at.Children[2] = sexp.Number(y)
}

func (f *Footprint) OrientationDegrees() float64 {
	at := f.node.Child("at")
	if at == nil {
		return 0
	}
	deg, err := at.Float(3)
	if err != nil {
		return 0
	}
	return deg
}

// SetOrientationDegrees sets the absolute orientation. Pad angles in the
// file include the footprint rotation, so every pad's angle shifts by the
// same delta.
func (f *Footprint) SetOrientationDegrees(deg float64) {
	delta := deg - f.OrientationDegrees()
	at := f.ensureAt()
	setAngle(at, deg)

	if delta == 0 {
		return
	}
	for _, pad := range f.node.ChildAll("pad") {
		padAt := pad.Child("at")
		if padAt == nil {
			continue
		}
		current, err := padAt.Float(3)
		if err != nil {
			current = 0
		}
		setAngle(padAt, sexp.NormalizeDegrees(current+delta))
	}
}

// Flipped reports whether the footprint sits on the back copper layer.
func (f *Footprint) Flipped() bool {
	layer := f.node.Child("layer")
	return layer != nil && layer.Str(1) == "B.Cu"
}

// Flip moves the footprint to the opposite side about its own position:
// every front/back layer reference in the subtree is mirrored, pad offsets
// mirror across the vertical axis, and orientations negate. This matches
// how pcbnew flips a footprint in place.
func (f *Footprint) Flip() {
	f.node.Walk(func(n *sexp.Node) {
		name := n.Name()
		if name != "layer" && name != "layers" {
			return
		}
		for _, atom := range n.Children[1:] {
			if atom.Kind == sexp.KindList {
				continue
			}
			atom.Value = mirrorLayer(atom.Value)
		}
	})

	for _, pad := range f.node.ChildAll("pad") {
		padAt := pad.Child("at")
		if padAt == nil {
			continue
		}
		x, err := padAt.Float(1)
		if err == nil {
			padAt.Children[1] = sexp.Number(-x)
		}
		angle, err := padAt.Float(3)
		if err == nil {
			setAngle(padAt, sexp.NormalizeDegrees(-angle))
		}
	}

	at := f.node.Child("at")
	if at != nil {
		if deg, err := at.Float(3); err == nil {
			setAngle(at, sexp.NormalizeDegrees(-deg))
		}
	}
}

func (f *Footprint) PadCount() int {
	return len(f.node.ChildAll("pad"))
}

func (f *Footprint) PadNet(i int) layout.Net {
	pads := f.node.ChildAll("pad")
	if i < 0 || i >= len(pads) {
		return layout.Net{}
	}
	netNode := pads[i].Child("net")
	if netNode == nil {
		return layout.Net{}
	}
	code, _ := netNode.Int(1)
	return layout.Net{Code: code, Name: netNode.Str(2)}
}

func (f *Footprint) SetPadNet(i int, net layout.Net) {
	pads := f.node.ChildAll("pad")
	if i < 0 || i >= len(pads) {
		return
	}
	pad := pads[i]

	existing := pad.Child("net")
	if net == (layout.Net{}) {
		if existing != nil {
			pad.Remove(existing)
		}
		return
	}

	if existing == nil {
		pad.Append(sexp.List(
			sexp.Symbol("net"),
			sexp.Symbol(strconv.Itoa(net.Code)),
			sexp.String(net.Name),
		))
		return
	}
	existing.Children = []*sexp.Node{
		sexp.Symbol("net"),
		sexp.Symbol(strconv.Itoa(net.Code)),
		sexp.String(net.Name),
	}
}

// textValue reads Reference/Value from a (property ...) node, falling back
// to the KiCad 6 (fp_text ...) form.
func (f *Footprint) textValue(propKey, textKind string) string {
	if p := f.findProperty(propKey); p != nil {
		return p.Str(2)
	}
	if tn := f.findText(textKind); tn != nil {
		return tn.Str(2)
	}
	return ""
}

func (f *Footprint) setTextValue(propKey, textKind, value string) {
	if p := f.findProperty(propKey); p != nil {
		p.Children[2] = sexp.String(value)
		return
	}
	if tn := f.findText(textKind); tn != nil {
		tn.Children[2] = sexp.String(value)
		return
	}
	f.node.Append(sexp.List(
		sexp.Symbol("property"),
		sexp.String(propKey),
		sexp.String(value),
	))
}

func (f *Footprint) findProperty(key string) *sexp.Node {
	for _, p := range f.node.ChildAll("property") {
		if p.Str(1) == key {
			return p
		}
	}
	return nil
}

func (f *Footprint) findText(kind string) *sexp.Node {
	for _, tn := range f.node.ChildAll("fp_text") {
		if tn.Str(1) == kind {
			return tn
		}
	}
	return nil
}

// ensureAt returns the footprint's (at ...) node, creating (at 0 0) right
// after the layer node when absent (library footprints carry no placement).
func (f *Footprint) ensureAt() *sexp.Node {
	if at := f.node.Child("at"); at != nil {
		return at
	}

	at := sexp.List(sexp.Symbol("at"), sexp.Number(0), sexp.Number(0))
	insertAt := len(f.node.Children)
	for i, child := range f.node.Children {
		if child.Kind == sexp.KindList && child.Name() == "layer" {
			insertAt = i + 1
			break
		}
	}
	rest := append([]*sexp.Node{at}, f.node.Children[insertAt:]...)
	f.node.Children = append(f.node.Children[:insertAt], rest...)
	return at
}

// setAngle writes the optional third coordinate of an (at x y [angle]) node.
func setAngle(at *sexp.Node, deg float64) {
	switch {
	case at.Len() > 3:
		at.Children[3] = sexp.Number(deg)
	default:
		at.Append(sexp.Number(deg))
	}
}

// mirrorLayer swaps the F./B. prefix of a layer name. Wildcard layers like
// "*.Mask" are side-agnostic and pass through unchanged.
func mirrorLayer(name string) string {
	switch {
	case strings.HasPrefix(name, "F."):
		return "B." + name[2:]
	case strings.HasPrefix(name, "B."):
		return "F." + name[2:]
	default:
		return name
	}
}
