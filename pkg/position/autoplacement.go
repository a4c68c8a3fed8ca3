package position

import (
	"slices"

	"floatpos/pkg/geom"
)

// AutoPlacement configures the best-fit search. The requested side is
// ignored; the requested alignment is kept where possible.
type AutoPlacement struct {
	Enabled      bool
	ExcludeSides []geom.Side
	// Padding keeps candidates this far inside the clipping rect.
	Padding float64
}

// CandidateScore is the evaluation of one auto-placement candidate.
type CandidateScore struct {
	Placement geom.Placement
	// Overflows holds the overflow on the candidate's own side followed by
	// the two alignment sides.
	Overflows [3]float64
}

// Fits reports whether the candidate is fully visible.
func (c CandidateScore) Fits() bool {
	return c.Overflows[0] <= 0 && c.Overflows[1] <= 0 && c.Overflows[2] <= 0
}

// autoPlacementCandidates orders the placements auto-placement may choose.
// With an alignment requested, same-alignment placements come first and
// opposite-alignment ones follow; centred placements are dropped. Without
// one, only the four bare sides are considered. The requested placement,
// when it survives, is moved to the front so a request that already fits is
// kept.
func autoPlacementCandidates(requested geom.Placement, exclude []geom.Side) []geom.Placement {
	align := requested.Alignment()
	allowed := make([]geom.Placement, 0, len(geom.AllPlacements))
	for _, p := range geom.AllPlacements {
		if !slices.Contains(exclude, p.Side()) {
			allowed = append(allowed, p)
		}
	}

	var ordered []geom.Placement
	if align == geom.AlignCenter {
		for _, p := range allowed {
			if p.Alignment() == geom.AlignCenter {
				ordered = append(ordered, p)
			}
		}
	} else {
		for _, p := range allowed {
			if p.Alignment() == align {
				ordered = append(ordered, p)
			}
		}
		for _, p := range ordered[:len(ordered):len(ordered)] {
			ordered = append(ordered, p.OppositeAlignment())
		}
	}

	if i := slices.Index(ordered, requested); i > 0 {
		ordered = slices.Insert(slices.Delete(ordered, i, i+1), 0, requested)
	}
	return ordered
}

// scoreCandidates evaluates every candidate in order, placing the popup
// for each one the same way the pipeline would.
func scoreCandidates(state State, candidates []geom.Placement, offset geom.OffsetSpec, opts AutoPlacement) []CandidateScore {
	scores := make([]CandidateScore, 0, len(candidates))
	for _, p := range candidates {
		trial := state
		trial.Placement = p
		trial.Coordinates = CoordsFromPlacement(state.Rects, p, offset, state.RTL)
		overflow := DetectOverflow(trial, OverflowOptions{Padding: opts.Padding})
		main, cross := alignmentSides(p, state.Rects, state.RTL)
		scores = append(scores, CandidateScore{
			Placement: p,
			Overflows: [3]float64{overflow.Get(p.Side()), overflow.Get(main), overflow.Get(cross)},
		})
	}
	return scores
}

// selectPlacement picks the first fully visible candidate, or failing that
// the one overflowing least on its own side. Ties keep the earlier
// candidate, preserving the preference for the requested alignment.
func selectPlacement(scores []CandidateScore) (geom.Placement, bool) {
	if len(scores) == 0 {
		return "", false
	}
	for _, s := range scores {
		if s.Fits() {
			return s.Placement, true
		}
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Overflows[0] < best.Overflows[0] {
			best = s
		}
	}
	return best.Placement, true
}

// resolveAutoPlacement runs the search and returns the chosen placement
// along with the scores it was based on. With no candidates left (every
// side excluded) the requested placement is kept.
func resolveAutoPlacement(state State, requested geom.Placement, offset geom.OffsetSpec, opts AutoPlacement) (geom.Placement, []CandidateScore) {
	candidates := autoPlacementCandidates(requested, opts.ExcludeSides)
	scores := scoreCandidates(state, candidates, offset, opts)
	if p, ok := selectPlacement(scores); ok {
		return p, scores
	}
	return requested, scores
}
