package position

import "floatpos/pkg/geom"

// CoordsFromPlacement places the popup against the anchor edge named by
// placement, centred on the cross axis or aligned to the start or end edge,
// then shifted by offset. In RTL documents start and end swap for top and
// bottom placements, where the alignment runs horizontally.
func CoordsFromPlacement(rects geom.ElementRects, placement geom.Placement, offset geom.OffsetSpec, rtl bool) geom.Coordinates {
	anchor, popup := rects.Anchor, rects.Popup
	side := placement.Side()

	centerX := anchor.X + anchor.Width/2 - popup.Width/2
	centerY := anchor.Y + anchor.Height/2 - popup.Height/2

	var coords geom.Coordinates
	switch side {
	case geom.SideTop:
		coords = geom.Coordinates{X: centerX, Y: anchor.Y - popup.Height}
	case geom.SideBottom:
		coords = geom.Coordinates{X: centerX, Y: anchor.Y + anchor.Height}
	case geom.SideRight:
		coords = geom.Coordinates{X: anchor.X + anchor.Width, Y: centerY}
	default:
		coords = geom.Coordinates{X: anchor.X - popup.Width, Y: centerY}
	}

	alignAxis := side.Axis().Cross()
	shift := anchor.Length(alignAxis)/2 - popup.Length(alignAxis)/2
	dir := rtlMultiplier(side, rtl)
	switch placement.Alignment() {
	case geom.AlignStart:
		addAxis(&coords, alignAxis, -shift*dir)
	case geom.AlignEnd:
		addAxis(&coords, alignAxis, shift*dir)
	}

	return applyOffset(coords, placement, offset, rtl)
}

// applyOffset moves coords away from the anchor by the main-axis offset and
// along the anchor edge by the cross-axis offset. The cross-axis offset
// points away from the aligned edge, so it is negated for end alignment and
// for RTL top/bottom placements.
func applyOffset(coords geom.Coordinates, placement geom.Placement, offset geom.OffsetSpec, rtl bool) geom.Coordinates {
	side := placement.Side()
	main := offset.MainAxis
	if side.IsNegative() {
		main = -main
	}
	cross := offset.CrossAxis * rtlMultiplier(side, rtl)
	if placement.Alignment() == geom.AlignEnd {
		cross = -cross
	}
	addAxis(&coords, side.Axis(), main)
	addAxis(&coords, side.Axis().Cross(), cross)
	return coords
}

func rtlMultiplier(side geom.Side, rtl bool) float64 {
	if rtl && side.Axis() == geom.AxisY {
		return -1
	}
	return 1
}

func addAxis(c *geom.Coordinates, axis geom.Axis, delta float64) {
	if axis == geom.AxisX {
		c.X += delta
	} else {
		c.Y += delta
	}
}

// alignmentSides returns the two sides the popup can overflow through when
// it slides along the anchor edge for placement. main is the side the
// popup grows toward from its aligned edge: right for start (left in RTL)
// on the horizontal axis, bottom for start on the vertical one. The pair is
// swapped when the anchor is wider (or taller) than the popup along that
// edge, since the popup then hangs off the opposite end.
func alignmentSides(placement geom.Placement, rects geom.ElementRects, rtl bool) (main, cross geom.Side) {
	alignAxis := placement.Side().Axis().Cross()
	align := placement.Alignment()
	if alignAxis == geom.AxisX {
		start := geom.AlignStart
		if rtl {
			start = geom.AlignEnd
		}
		main = geom.SideLeft
		if align == start {
			main = geom.SideRight
		}
	} else {
		main = geom.SideTop
		if align == geom.AlignStart {
			main = geom.SideBottom
		}
	}
	if rects.Anchor.Length(alignAxis) > rects.Popup.Length(alignAxis) {
		main = main.Opposite()
	}
	return main, main.Opposite()
}
