// Package position computes where a popup should sit next to its anchor.
//
// One call to ComputePosition measures the anchor and popup once, places
// the popup for the requested placement, then runs auto-placement and an
// optional caller middleware in a configurable order. Nothing is retained
// between calls.
package position

import (
	"fmt"

	"go.uber.org/zap"

	"floatpos/pkg/dom"
	"floatpos/pkg/geom"
)

// Config describes one positioning request.
type Config struct {
	// Placement defaults to bottom.
	Placement geom.Placement
	// Strategy defaults to absolute.
	Strategy      geom.Strategy
	RTL           bool
	AutoPlacement AutoPlacement
	Offset        geom.OffsetSpec

	Middleware      Middleware
	MiddlewareOrder MiddlewareOrder

	// Logger receives stage decisions at debug level. Nil disables logging.
	Logger *zap.Logger
}

// Result is where the popup goes, in the strategy's coordinate space.
type Result struct {
	X         float64
	Y         float64
	Placement geom.Placement
}

// StageTrace records the state after one pipeline stage.
type StageTrace struct {
	Name        string
	Placement   geom.Placement
	Coordinates geom.Coordinates
}

// Explanation is a Result together with the measurements behind it.
type Explanation struct {
	Result    Result
	Requested geom.Placement
	Rects     geom.ElementRects
	// ClippingRect and PopupRect are in viewport coordinates. HasClipping
	// is false for popups outside any document.
	ClippingRect geom.Rect
	HasClipping  bool
	PopupRect    geom.Rect
	Overflow     geom.Overflow
	Candidates   []CandidateScore
	Stages       []StageTrace
}

// ComputePosition places popup relative to anchor. Errors are reserved for
// programming mistakes: invalid config values and misbehaving middleware.
func ComputePosition(anchor dom.Measurer, popup dom.Node, cfg Config) (Result, error) {
	var ex Explanation
	if err := compute(anchor, popup, cfg, &ex, false); err != nil {
		return Result{}, err
	}
	return ex.Result, nil
}

// Explain runs the same computation as ComputePosition and reports the
// intermediate measurements.
func Explain(anchor dom.Measurer, popup dom.Node, cfg Config) (Explanation, error) {
	var ex Explanation
	err := compute(anchor, popup, cfg, &ex, true)
	return ex, err
}

// Measure snapshots anchor and popup for strategy, with the popup at the
// offset parent origin.
func Measure(anchor dom.Measurer, popup dom.Node, strategy geom.Strategy) State {
	anchor, popup = present(anchor, popup)
	rects, op, doc := measureElementRects(anchor, popup, strategy)
	return State{
		Anchor:       anchor,
		Popup:        popup,
		Rects:        rects,
		Strategy:     strategy,
		offsetParent: op,
		doc:          doc,
	}
}

// present turns nil element pointers into nil interfaces, so a missing
// element takes the same best-effort path as an absent one.
func present(anchor dom.Measurer, popup dom.Node) (dom.Measurer, dom.Node) {
	if isNil(anchor) {
		anchor = nil
	}
	if isNil(popup) {
		popup = nil
	}
	return anchor, popup
}

func (cfg Config) normalize() (Config, error) {
	if cfg.Placement == "" {
		cfg.Placement = geom.Bottom
	}
	if _, err := geom.ParsePlacement(string(cfg.Placement)); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	strategy, err := geom.ParseStrategy(string(cfg.Strategy))
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	cfg.Strategy = strategy
	if cfg.MiddlewareOrder != AfterAutoPlacement && cfg.MiddlewareOrder != BeforeAutoPlacement {
		return cfg, fmt.Errorf("config: %w", &geom.ParseError{Kind: "middleware order", Value: cfg.MiddlewareOrder.String()})
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg, nil
}

type stage struct {
	name string
	run  func(State) (MiddlewareResult, error)
}

func compute(anchor dom.Measurer, popup dom.Node, cfg Config, ex *Explanation, explain bool) error {
	cfg, err := cfg.normalize()
	if err != nil {
		return err
	}
	log := cfg.Logger
	anchor, popup = present(anchor, popup)

	state := Measure(anchor, popup, cfg.Strategy)
	state.RTL = cfg.RTL
	state.Placement = cfg.Placement
	state.Coordinates = CoordsFromPlacement(state.Rects, state.Placement, cfg.Offset, cfg.RTL)
	ex.Requested = cfg.Placement
	ex.Rects = state.Rects

	auto := stage{name: "autoPlacement", run: func(s State) (MiddlewareResult, error) {
		if !cfg.AutoPlacement.Enabled || s.Popup == nil {
			return MiddlewareResult{}, nil
		}
		p, scores := resolveAutoPlacement(s, s.Placement, cfg.Offset, cfg.AutoPlacement)
		ex.Candidates = scores
		log.Debug("auto placement resolved",
			zap.String("requested", string(s.Placement)),
			zap.String("placement", string(p)),
			zap.Int("candidates", len(scores)))
		return Place(p), nil
	}}
	custom := stage{name: "middleware", run: func(s State) (MiddlewareResult, error) {
		if cfg.Middleware == nil {
			return MiddlewareResult{}, nil
		}
		return cfg.Middleware(s)
	}}
	stages := []stage{auto, custom}
	if cfg.MiddlewareOrder == BeforeAutoPlacement {
		stages = []stage{custom, auto}
	}

	for _, st := range stages {
		res, err := st.run(state)
		if err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
		if err := res.validate(); err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
		state = apply(state, res, cfg.Offset)
		ex.Stages = append(ex.Stages, StageTrace{Name: st.name, Placement: state.Placement, Coordinates: state.Coordinates})
		log.Debug("stage done",
			zap.String("stage", st.name),
			zap.String("placement", string(state.Placement)),
			zap.Float64("x", state.Coordinates.X),
			zap.Float64("y", state.Coordinates.Y))
	}

	ex.Result = Result{X: state.Coordinates.X, Y: state.Coordinates.Y, Placement: state.Placement}
	if !explain {
		return nil
	}

	popupRect := state.Rects.Popup
	popupRect.X, popupRect.Y = state.Coordinates.X, state.Coordinates.Y
	ex.PopupRect = OffsetParentRectToViewport(popupRect, state.offsetParent, state.doc, state.Strategy)
	ex.ClippingRect, ex.HasClipping = ClippingRect(popup, RootViewport)
	ex.Overflow = DetectOverflow(state, OverflowOptions{})
	return nil
}

// apply folds a stage result into the state. A new placement recomputes the
// coordinates from scratch; a coordinate override is taken verbatim.
func apply(state State, res MiddlewareResult, offset geom.OffsetSpec) State {
	switch {
	case res.Placement != "":
		state.Placement = res.Placement
		state.Coordinates = CoordsFromPlacement(state.Rects, res.Placement, offset, state.RTL)
	case res.Coordinates != nil:
		if res.Coordinates.X != nil {
			state.Coordinates.X = *res.Coordinates.X
		}
		if res.Coordinates.Y != nil {
			state.Coordinates.Y = *res.Coordinates.Y
		}
	}
	return state
}
