package layout

import "errors"

// ErrFootprintNotFound is returned by Board.LoadFootprint when the requested
// definition does not exist in the library. Apply treats it as fatal.
var ErrFootprintNotFound = errors.New("footprint not found")

// Net identifies the electrical net a pad belongs to. Code is the host's net
// number; Name is the human-readable net name ("GND", "+5V").
type Net struct {
	Code int
	Name string
}

// Component is one placed footprint instance on a board. Positions are in
// millimeters, orientations in degrees. Implementations own the underlying
// host object; Component values borrowed from a Board become invalid once
// passed to RemoveComponent.
type Component interface {
	// Reference returns the reference designator (e.g. "R1").
	Reference() string
	SetReference(ref string)

	// Value is the free-text component value (e.g. "10k").
	Value() string
	SetValue(value string)

	// FootprintName is the footprint's name without its library prefix,
	// e.g. "LED_0603_1608Metric" for "LED_SMD:LED_0603_1608Metric".
	FootprintName() string

	Position() (x, y float64)
	SetPosition(x, y float64)

	OrientationDegrees() float64
	SetOrientationDegrees(deg float64)

	// Flipped reports whether the component is mounted on the back side.
	Flipped() bool
	// Flip toggles the mounting side about the component's own position,
	// mirroring its orientation per the host's flip rule.
	Flip()

	PadCount() int
	PadNet(i int) Net
	SetPadNet(i int, net Net)
}

// Board is the host board model consumed by Apply and Extract. A single
// apply or extract pass is the only writer; implementations need not be safe
// for concurrent use.
type Board interface {
	// FindComponent resolves a reference designator to a placed component.
	FindComponent(reference string) (Component, bool)

	// Components enumerates every placed component in host-defined order.
	Components() []Component

	// LoadFootprint loads a footprint definition from a library and returns
	// a detached instance, not yet on the board. Returns an error wrapping
	// ErrFootprintNotFound when the definition cannot be located.
	LoadFootprint(libraryPath, name string) (Component, error)

	// RemoveComponent deletes a placed component from the board.
	RemoveComponent(c Component)

	// AddComponent places a detached instance (from LoadFootprint) onto the
	// board.
	AddComponent(c Component)
}
