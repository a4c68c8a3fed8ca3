package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floatpos/pkg/dom"
	"floatpos/pkg/geom"
)

func TestAutoPlacementCandidates(t *testing.T) {
	tests := []struct {
		name      string
		requested geom.Placement
		exclude   []geom.Side
		want      []geom.Placement
	}{
		{
			name:      "bare placements only without alignment",
			requested: geom.Bottom,
			want:      []geom.Placement{geom.Bottom, geom.Top, geom.Right, geom.Left},
		},
		{
			name:      "same alignment before opposite",
			requested: geom.TopStart,
			want: []geom.Placement{
				geom.TopStart, geom.RightStart, geom.BottomStart, geom.LeftStart,
				geom.TopEnd, geom.RightEnd, geom.BottomEnd, geom.LeftEnd,
			},
		},
		{
			name:      "requested moves to front",
			requested: geom.LeftEnd,
			want: []geom.Placement{
				geom.LeftEnd, geom.TopEnd, geom.RightEnd, geom.BottomEnd,
				geom.TopStart, geom.RightStart, geom.BottomStart, geom.LeftStart,
			},
		},
		{
			name:      "excluded sides are dropped",
			requested: geom.TopStart,
			exclude:   []geom.Side{geom.SideTop, geom.SideLeft},
			want:      []geom.Placement{geom.RightStart, geom.BottomStart, geom.RightEnd, geom.BottomEnd},
		},
		{
			name:      "everything excluded",
			requested: geom.Top,
			exclude:   geom.Sides,
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, autoPlacementCandidates(tt.requested, tt.exclude))
		})
	}
}

func TestSelectPlacement(t *testing.T) {
	_, ok := selectPlacement(nil)
	assert.False(t, ok)

	fits := []CandidateScore{
		{Placement: geom.Top, Overflows: [3]float64{10, 0, 0}},
		{Placement: geom.Right, Overflows: [3]float64{0, 0, 0}},
		{Placement: geom.Bottom, Overflows: [3]float64{-5, -5, -5}},
	}
	p, ok := selectPlacement(fits)
	require.True(t, ok)
	assert.Equal(t, geom.Right, p, "first fitting candidate wins, not the roomiest")

	none := []CandidateScore{
		{Placement: geom.TopStart, Overflows: [3]float64{30, 0, 0}},
		{Placement: geom.BottomStart, Overflows: [3]float64{20, 5, 0}},
		{Placement: geom.BottomEnd, Overflows: [3]float64{20, 0, 0}},
	}
	p, _ = selectPlacement(none)
	assert.Equal(t, geom.BottomStart, p, "ties keep the earlier candidate")
}

// autoScene puts an anchor into a plain 1000x800 viewport with a 200x100
// popup.
func autoScene(anchorRect geom.Rect) (*dom.Element, *dom.Element) {
	doc := newViewport()
	anchor := doc.Body().AddChild(dom.NewElement("button", anchorRect))
	popup := addPopup(doc.Body(), 200, 100)
	return anchor, popup
}

func autoPlace(t *testing.T, anchor, popup *dom.Element, requested geom.Placement, exclude ...geom.Side) geom.Placement {
	t.Helper()
	res, err := ComputePosition(anchor, popup, Config{
		Placement:     requested,
		AutoPlacement: AutoPlacement{Enabled: true, ExcludeSides: exclude},
	})
	require.NoError(t, err)
	return res.Placement
}

func TestAutoPlacement_FlipsToFittingSide(t *testing.T) {
	anchor, popup := autoScene(geom.NewRect(100, 10, 800, 30))
	assert.Equal(t, geom.BottomStart, autoPlace(t, anchor, popup, geom.TopStart))
}

func TestAutoPlacement_KeepsAlignment(t *testing.T) {
	// bottom-end would also fit, but start-aligned candidates come first.
	anchor, popup := autoScene(geom.NewRect(900, 100, 50, 30))
	assert.Equal(t, geom.LeftStart, autoPlace(t, anchor, popup, geom.BottomStart))
}

func TestAutoPlacement_ExcludedSides(t *testing.T) {
	anchor, popup := autoScene(geom.NewRect(100, 760, 800, 30))

	assert.Equal(t, geom.TopStart, autoPlace(t, anchor, popup, geom.BottomStart))
	// With top gone nothing fits; bottom overflows least.
	assert.Equal(t, geom.BottomStart, autoPlace(t, anchor, popup, geom.TopStart, geom.SideTop))
	// Every side excluded leaves the request alone.
	assert.Equal(t, geom.TopStart, autoPlace(t, anchor, popup, geom.TopStart, geom.Sides...))
}

func TestAutoPlacement_NeverPicksExcludedSide(t *testing.T) {
	anchor, popup := autoScene(geom.NewRect(100, 760, 800, 30))
	for _, p := range geom.AllPlacements {
		got := autoPlace(t, anchor, popup, p, geom.SideTop, geom.SideRight)
		assert.NotEqual(t, geom.SideTop, got.Side(), p)
		assert.NotEqual(t, geom.SideRight, got.Side(), p)
	}
}

func TestAutoPlacement_KeepsFittingRequest(t *testing.T) {
	anchor, popup := autoScene(geom.NewRect(400, 350, 50, 30))
	for _, p := range geom.AllPlacements {
		assert.Equal(t, p, autoPlace(t, anchor, popup, p))
	}
}

func TestAutoPlacement_ScrollContainer(t *testing.T) {
	anchor, popup := scrollScene()
	ex, err := Explain(anchor, popup, Config{Placement: geom.Top, AutoPlacement: AutoPlacement{Enabled: true}})
	require.NoError(t, err)

	assert.Equal(t, geom.Right, ex.Result.Placement)
	assert.Equal(t, 100.0, ex.Result.X)
	assert.Equal(t, 0.0, ex.Result.Y)
	require.NotEmpty(t, ex.Candidates)
	assert.Equal(t, geom.Top, ex.Candidates[0].Placement)
	assert.Equal(t, 40.0, ex.Candidates[0].Overflows[0])
}
