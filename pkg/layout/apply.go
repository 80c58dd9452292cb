package layout

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Report collects the non-fatal conditions encountered during an apply pass.
// Warnings are accumulated and reported in aggregate; they never abort the
// pass.
type Report struct {
	Warnings []string
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Apply walks the document's components in document order and applies each
// spec to the board. Per component the order is: footprint replacement,
// position, side, rotation. Replacement must come first because it discards
// the old instance; the geometric steps then set the final pose on whichever
// instance survives.
//
// A reference with no matching board component produces a warning and the
// pass continues. A footprint definition that fails to load aborts the pass
// immediately; mutations already applied to earlier components are kept (no
// rollback).
//
// logger may be nil, in which case diagnostics are discarded.
func Apply(doc *Document, board Board, logger *log.Logger) (*Report, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	report := &Report{}

	if !doc.HasComponentsKey() {
		report.warnf("no components field found in layout document")
		logger.Warn("no components field found in layout document")
	}

	for _, ref := range doc.References() {
		spec := doc.Components[ref]

		comp, ok := board.FindComponent(ref)
		if !ok {
			report.warnf("did not find component %s in PCB design", ref)
			logger.Warn("component not found on board", "ref", ref)
			continue
		}

		if fp := spec.Footprint; fp != nil && fp.Name != comp.FootprintName() {
			replaced, err := replaceFootprint(board, comp, fp)
			if err != nil {
				return report, fmt.Errorf("failed to replace footprint of %s with %s from %s: %w",
					ref, fp.Name, fp.Path, err)
			}
			logger.Info("replaced footprint", "ref", ref, "footprint", fp.Name)
			comp = replaced
		}

		if spec.Location != nil {
			x := doc.Origin.X + spec.Location.X
			y := doc.Origin.Y + spec.Location.Y
			comp.SetPosition(x, y)
			logger.Debug("moved component", "ref", ref, "x", x, "y", y)
		}

		// A single toggle only: flipping twice would land back on the
		// original side with a mirrored orientation.
		if spec.Flip != nil && *spec.Flip != comp.Flipped() {
			comp.Flip()
			logger.Debug("flipped component", "ref", ref, "back", *spec.Flip)
		}

		if spec.Rotation != nil {
			comp.SetOrientationDegrees(*spec.Rotation)
			logger.Debug("rotated component", "ref", ref, "degrees", *spec.Rotation)
		}
	}

	return report, nil
}

// padSnapshot captures the identity-preserving fields of a component before
// its footprint instance is destroyed.
type padSnapshot struct {
	reference string
	value     string
	nets      []Net
}

// replaceFootprint swaps a component's footprint by reconstruction: snapshot,
// load, remove, restore, add. The returned component is the new instance and
// becomes the target of the remaining steps of the pass.
//
// Nets are restored positionally by pad index. If the new definition has a
// different pad count, nets beyond the shorter of the two are left as the
// definition provides; no validation is performed, matching the host's own
// change-footprint behavior.
func replaceFootprint(board Board, comp Component, ref *FootprintRef) (Component, error) {
	snap := padSnapshot{
		reference: comp.Reference(),
		value:     comp.Value(),
		nets:      make([]Net, comp.PadCount()),
	}
	for i := range snap.nets {
		snap.nets[i] = comp.PadNet(i)
	}

	fresh, err := board.LoadFootprint(ref.Path, ref.Name)
	if err != nil {
		return nil, err
	}

	board.RemoveComponent(comp)

	fresh.SetReference(snap.reference)
	fresh.SetValue(snap.value)
	for i, net := range snap.nets {
		if i >= fresh.PadCount() {
			break
		}
		fresh.SetPadNet(i, net)
	}

	board.AddComponent(fresh)
	return fresh, nil
}
