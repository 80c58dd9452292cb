// Package layout applies a declarative component layout to a PCB design and
// extracts the current placement back into the same declarative form.
//
// A layout document maps reference designators to placement specs: location
// in millimeters (relative to an optional document origin), absolute rotation
// in degrees, mounting side, and optionally a footprint to assign. Applying a
// document mutates the board through the Board interface; every field is
// optional and an absent field leaves the corresponding property untouched,
// so the same document can be applied repeatedly without drift.
//
// # Applying a layout
//
//	doc, err := layout.LoadDocument("layout.yaml")
//	if err != nil { ... }
//	report, err := layout.Apply(doc, board, logger)
//	if err != nil { ... }           // fatal: footprint failed to load
//	for _, w := range report.Warnings {
//		fmt.Println(w)              // non-fatal: unknown refdes etc.
//	}
//
// # Footprint replacement
//
// Host board models cannot change a placed footprint in place. When a spec
// assigns a footprint whose name differs from the component's current one,
// Apply snapshots the identity-preserving fields (reference designator,
// per-pad net assignments, value), loads the new definition, removes the old
// instance, restores the snapshot onto the new instance, and adds it to the
// board. Pad nets are restored positionally by pad index; a definition with
// a different pad count or ordering can misassign nets, which mirrors the
// behavior of KiCad's own change-footprint flow.
//
// # Boards
//
// The Board interface is implemented by the kicad/board package for
// .kicad_pcb files and by BoardSimulator for tests and dry runs.
package layout
