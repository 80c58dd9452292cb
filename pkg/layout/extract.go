package layout

// Extract builds a layout document from the board's current placement. Every
// component contributes its position (mm), absolute rotation (degrees), and
// mounting side. The document origin is always (0, 0); extraction never
// infers an offset. Footprint identity is not exported, so a round-tripped
// document never triggers footprint replacement.
//
// Components appear in the board's enumeration order, which is host-defined;
// callers should not rely on it.
func Extract(board Board) *Document {
	doc := NewDocument()

	for _, comp := range board.Components() {
		x, y := comp.Position()
		rotation := comp.OrientationDegrees()
		flip := comp.Flipped()

		doc.Set(comp.Reference(), &ComponentSpec{
			Location: &Point{X: x, Y: y},
			Rotation: &rotation,
			Flip:     &flip,
		})
	}

	return doc
}
