package layout

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Point is a 2D coordinate or offset in millimeters. It serializes as a
// flow-style [x, y] pair.
type Point struct {
	X float64
	Y float64
}

// MarshalYAML renders the point as [x, y].
func (p Point) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{}
	if err := node.Encode([]float64{p.X, p.Y}); err != nil {
		return nil, err
	}
	node.Style = yaml.FlowStyle
	return node, nil
}

// UnmarshalYAML accepts a [x, y] sequence.
func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	var raw []float64
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("expected [x, y] pair: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("expected [x, y] pair, got %d values", len(raw))
	}
	p.X, p.Y = raw[0], raw[1]
	return nil
}

// FootprintRef identifies a footprint definition in a library. Path locates
// the library (relative to the project root for file-backed boards); Name is
// the footprint name within it. Only Name participates in the "does the
// assignment differ" comparison, since the host cannot report which library
// a placed footprint was originally loaded from.
type FootprintRef struct {
	Path string `yaml:"path"`
	Name string `yaml:"name"`
}

// ComponentSpec describes the desired placement of one component. Every
// field is optional; a nil field leaves the corresponding board property
// unchanged.
type ComponentSpec struct {
	// Location is the position in mm, relative to the document origin.
	Location *Point
	// Rotation is the absolute orientation in degrees.
	Rotation *float64
	// Flip selects the mounting side: true means the back of the board.
	Flip *bool
	// Footprint assigns a footprint definition.
	Footprint *FootprintRef
}

// UnmarshalYAML decodes a component spec. Unknown keys are ignored for
// forward compatibility. "flipped" is accepted as a legacy alias for "flip".
func (s *ComponentSpec) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Location  *Point        `yaml:"location"`
		Rotation  *float64      `yaml:"rotation"`
		Flip      *bool         `yaml:"flip"`
		Flipped   *bool         `yaml:"flipped"`
		Footprint *FootprintRef `yaml:"footprint"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s.Location = raw.Location
	s.Rotation = raw.Rotation
	s.Footprint = raw.Footprint
	s.Flip = raw.Flip
	if s.Flip == nil {
		s.Flip = raw.Flipped
	}
	return nil
}

// MarshalYAML encodes the spec, omitting absent fields.
func (s ComponentSpec) MarshalYAML() (interface{}, error) {
	out := struct {
		Location  *Point        `yaml:"location,omitempty"`
		Rotation  *float64      `yaml:"rotation,omitempty"`
		Flip      *bool         `yaml:"flip,omitempty"`
		Footprint *FootprintRef `yaml:"footprint,omitempty"`
	}{s.Location, s.Rotation, s.Flip, s.Footprint}
	return out, nil
}

// Document is one layout document: an optional origin offset plus a mapping
// from reference designator to placement spec. Component iteration order
// follows the document (or insertion) order.
type Document struct {
	Origin     Point
	Components map[string]*ComponentSpec

	order         []string
	hasComponents bool
}

// NewDocument returns an empty document with a zero origin.
func NewDocument() *Document {
	return &Document{
		Components:    make(map[string]*ComponentSpec),
		hasComponents: true,
	}
}

// Set adds or replaces the spec for a reference designator, preserving first
// insertion order.
func (d *Document) Set(ref string, spec *ComponentSpec) {
	if d.Components == nil {
		d.Components = make(map[string]*ComponentSpec)
	}
	if _, exists := d.Components[ref]; !exists {
		d.order = append(d.order, ref)
	}
	d.Components[ref] = spec
	d.hasComponents = true
}

// References returns the reference designators in document order.
func (d *Document) References() []string {
	return append([]string(nil), d.order...)
}

// HasComponentsKey reports whether the document carried a components mapping
// at all. A document without one applies as a no-op with a warning.
func (d *Document) HasComponentsKey() bool {
	return d.hasComponents
}

// UnmarshalYAML decodes a layout document, preserving the order in which
// components appear. Unknown top-level keys are ignored.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("layout document must be a mapping")
	}

	d.Components = make(map[string]*ComponentSpec)
	d.order = nil
	d.hasComponents = false
	d.Origin = Point{}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		val := value.Content[i+1]

		switch key.Value {
		case "origin":
			if err := val.Decode(&d.Origin); err != nil {
				return fmt.Errorf("origin: %w", err)
			}
		case "components":
			d.hasComponents = true
			if val.Kind != yaml.MappingNode {
				// Empty or null components section
				continue
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				ref := val.Content[j].Value
				spec := &ComponentSpec{}
				if err := val.Content[j+1].Decode(spec); err != nil {
					return fmt.Errorf("component %s: %w", ref, err)
				}
				if _, exists := d.Components[ref]; !exists {
					d.order = append(d.order, ref)
				}
				d.Components[ref] = spec
			}
		}
	}

	return nil
}

// MarshalYAML encodes the document with components in document order.
func (d *Document) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	originKey := &yaml.Node{Kind: yaml.ScalarNode, Value: "origin"}
	originVal := &yaml.Node{}
	if err := originVal.Encode(d.Origin); err != nil {
		return nil, err
	}
	root.Content = append(root.Content, originKey, originVal)

	comps := &yaml.Node{Kind: yaml.MappingNode}
	for _, ref := range d.order {
		refKey := &yaml.Node{Kind: yaml.ScalarNode, Value: ref}
		specVal := &yaml.Node{}
		if err := specVal.Encode(d.Components[ref]); err != nil {
			return nil, err
		}
		comps.Content = append(comps.Content, refKey, specVal)
	}
	compsKey := &yaml.Node{Kind: yaml.ScalarNode, Value: "components"}
	root.Content = append(root.Content, compsKey, comps)

	return root, nil
}

// ParseDocument reads a layout document from r. An empty input yields an
// empty document (which applies as a no-op with a warning).
func ParseDocument(r io.Reader) (*Document, error) {
	doc := &Document{Components: make(map[string]*ComponentSpec)}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return nil, fmt.Errorf("failed to parse layout document: %w", err)
	}
	return doc, nil
}

// LoadDocument reads a layout document from a file.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout document: %w", err)
	}
	defer f.Close()

	doc, err := ParseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode writes the document as YAML to w.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode layout document: %w", err)
	}
	return enc.Close()
}
