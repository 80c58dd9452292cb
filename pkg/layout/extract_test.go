package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	board := NewBoardSimulator()
	d1 := board.AddPart("D1", "LED_0603", nil)
	d1.SetPosition(212, 80)
	d1.SetOrientationDegrees(90)
	d1.Flip() // back side; orientation mirrors to 270

	r1 := board.AddPart("R1", "R_0603", nil)
	r1.SetPosition(10.5, -3.125)

	doc := Extract(board)

	assert.Equal(t, Point{}, doc.Origin, "extraction never infers an origin")
	assert.ElementsMatch(t, []string{"D1", "R1"}, doc.References())

	spec := doc.Components["D1"]
	require.NotNil(t, spec)
	require.NotNil(t, spec.Location)
	assert.Equal(t, Point{X: 212, Y: 80}, *spec.Location)
	require.NotNil(t, spec.Rotation)
	assert.Equal(t, 270.0, *spec.Rotation)
	require.NotNil(t, spec.Flip)
	assert.True(t, *spec.Flip)
	assert.Nil(t, spec.Footprint, "footprint identity is not exported")

	spec = doc.Components["R1"]
	require.NotNil(t, spec)
	assert.Equal(t, Point{X: 10.5, Y: -3.125}, *spec.Location)
	assert.False(t, *spec.Flip)
}

func TestExtractApplyRoundTrip(t *testing.T) {
	board := NewBoardSimulator()
	d1 := board.AddPart("D1", "LED_0603", []Net{{Code: 1, Name: "GND"}})
	d1.SetPosition(200, 80)
	d1.SetOrientationDegrees(45)
	d1.Flip()

	r1 := board.AddPart("R1", "R_0603", nil)
	r1.SetPosition(-12.25, 3)
	r1.SetOrientationDegrees(180)

	before := boardState(board)

	doc := Extract(board)
	report, err := Apply(doc, board, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	after := boardState(board)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("re-applying an extracted layout changed the board (-before +after):\n%s", diff)
	}
}
