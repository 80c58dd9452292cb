package layout

import (
	"fmt"

	"github.com/mcbridejc/kicad-component-layout/pkg/kicad/sexp"
)

// BoardSimulator is an in-memory Board useful for unit tests and dry runs.
// It mimics pcbnew's internal representation: positions are stored in
// internal units (nanometers) and angles in decidegrees, so the mm/degree
// conversions at the Component boundary are exercised the same way a real
// host adapter exercises them.
type BoardSimulator struct {
	parts   []*SimComponent
	library map[string]map[string]int // library path -> footprint name -> pad count
}

// NewBoardSimulator returns an empty simulated board.
func NewBoardSimulator() *BoardSimulator {
	return &BoardSimulator{
		library: make(map[string]map[string]int),
	}
}

// DefineFootprint registers a footprint definition so LoadFootprint can find
// it. pads is the pad count of the definition.
func (b *BoardSimulator) DefineFootprint(libraryPath, name string, pads int) {
	lib, ok := b.library[libraryPath]
	if !ok {
		lib = make(map[string]int)
		b.library[libraryPath] = lib
	}
	lib[name] = pads
}

// AddPart places a new component on the simulated board at the origin, front
// side, zero rotation, with one pad per entry in nets.
func (b *BoardSimulator) AddPart(reference, footprint string, nets []Net) *SimComponent {
	c := &SimComponent{
		reference: reference,
		footprint: footprint,
		nets:      append([]Net(nil), nets...),
	}
	b.parts = append(b.parts, c)
	return c
}

func (b *BoardSimulator) FindComponent(reference string) (Component, bool) {
	for _, c := range b.parts {
		if c.reference == reference {
			return c, true
		}
	}
	return nil, false
}

func (b *BoardSimulator) Components() []Component {
	out := make([]Component, len(b.parts))
	for i, c := range b.parts {
		out[i] = c
	}
	return out
}

func (b *BoardSimulator) LoadFootprint(libraryPath, name string) (Component, error) {
	lib, ok := b.library[libraryPath]
	if !ok {
		return nil, fmt.Errorf("library %s: %w", libraryPath, ErrFootprintNotFound)
	}
	pads, ok := lib[name]
	if !ok {
		return nil, fmt.Errorf("%s in library %s: %w", name, libraryPath, ErrFootprintNotFound)
	}
	return &SimComponent{
		reference: "REF**",
		footprint: name,
		nets:      make([]Net, pads),
	}, nil
}

func (b *BoardSimulator) RemoveComponent(c Component) {
	sc, ok := c.(*SimComponent)
	if !ok {
		return
	}
	for i, p := range b.parts {
		if p == sc {
			b.parts = append(b.parts[:i], b.parts[i+1:]...)
			return
		}
	}
}

func (b *BoardSimulator) AddComponent(c Component) {
	sc, ok := c.(*SimComponent)
	if !ok {
		panic(fmt.Sprintf("BoardSimulator.AddComponent: foreign component type %T", c))
	}
	b.parts = append(b.parts, sc)
}

// SimComponent is a component on a BoardSimulator.
type SimComponent struct {
	reference string
	value     string
	footprint string
	xIU, yIU  int64
	orientDD  float64 // decidegrees
	flipped   bool
	nets      []Net
}

func (c *SimComponent) Reference() string       { return c.reference }
func (c *SimComponent) SetReference(ref string) { c.reference = ref }
func (c *SimComponent) Value() string           { return c.value }
func (c *SimComponent) SetValue(value string)   { c.value = value }
func (c *SimComponent) FootprintName() string   { return c.footprint }

func (c *SimComponent) Position() (float64, float64) {
	return sexp.IUToMM(c.xIU), sexp.IUToMM(c.yIU)
}

func (c *SimComponent) SetPosition(x, y float64) {
	c.xIU = sexp.MMToIU(x)
	c.yIU = sexp.MMToIU(y)
}

func (c *SimComponent) OrientationDegrees() float64 {
	return c.orientDD * sexp.DecidegreesToDegrees
}

func (c *SimComponent) SetOrientationDegrees(deg float64) {
	c.orientDD = deg * sexp.DegreesToDecidegrees
}

func (c *SimComponent) Flipped() bool { return c.flipped }

// Flip toggles the mounting side about the component's own position and
// mirrors the orientation, matching pcbnew's flip rule.
func (c *SimComponent) Flip() {
	c.flipped = !c.flipped
	deg := sexp.NormalizeDegrees(-c.OrientationDegrees())
	c.orientDD = deg * sexp.DegreesToDecidegrees
}

func (c *SimComponent) PadCount() int { return len(c.nets) }

func (c *SimComponent) PadNet(i int) Net {
	if i < 0 || i >= len(c.nets) {
		return Net{}
	}
	return c.nets[i]
}

func (c *SimComponent) SetPadNet(i int, net Net) {
	if i < 0 || i >= len(c.nets) {
		return
	}
	c.nets[i] = net
}
