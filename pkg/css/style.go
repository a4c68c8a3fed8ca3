package css

import (
	"strconv"
	"strings"
)

// Style is the computed style of one element, keyed by longhand property
// name. Missing properties read as their initial value.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	if s == nil {
		return "", false
	}
	val, ok := s.Properties[property]
	return val, ok
}

// Value returns the property value, or def when it is unset.
func (s *Style) Value(property, def string) string {
	if val, ok := s.Get(property); ok {
		return val
	}
	return def
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// Position type constants
type PositionType string

const (
	PositionStatic   PositionType = "static"
	PositionRelative PositionType = "relative"
	PositionAbsolute PositionType = "absolute"
	PositionFixed    PositionType = "fixed"
	PositionSticky   PositionType = "sticky"
)

// GetPosition returns the position type (default: static)
func (s *Style) GetPosition() PositionType {
	if pos, ok := s.Get("position"); ok {
		switch pos {
		case "relative":
			return PositionRelative
		case "absolute":
			return PositionAbsolute
		case "fixed":
			return PositionFixed
		case "sticky":
			return PositionSticky
		}
	}
	return PositionStatic
}

// IsOutOfFlow reports whether the element is absolutely or fixed positioned,
// which lets it escape clipping by ancestors above its containing block.
func (s *Style) IsOutOfFlow() bool {
	pos := s.GetPosition()
	return pos == PositionAbsolute || pos == PositionFixed
}

// DisplayType represents the display property value
type DisplayType string

const (
	DisplayBlock       DisplayType = "block"
	DisplayInline      DisplayType = "inline"
	DisplayInlineBlock DisplayType = "inline-block"
	DisplayContents    DisplayType = "contents"
	DisplayNone        DisplayType = "none"
)

// GetDisplay returns the display value (default: block)
func (s *Style) GetDisplay() DisplayType {
	if display, ok := s.Get("display"); ok {
		switch display {
		case "inline":
			return DisplayInline
		case "inline-block":
			return DisplayInlineBlock
		case "contents":
			return DisplayContents
		case "none":
			return DisplayNone
		}
	}
	return DisplayBlock
}

// GetOverflow returns the overflow-x and overflow-y values (default: visible).
func (s *Style) GetOverflow() (x, y string) {
	return s.Value("overflow-x", "visible"), s.Value("overflow-y", "visible")
}

// IsOverflowContainer reports whether the element can clip its descendants:
// some overflow axis is auto, scroll, overlay or hidden, and the element
// generates a box that can scroll.
func (s *Style) IsOverflowContainer() bool {
	x, y := s.GetOverflow()
	if !clipsOverflow(x) && !clipsOverflow(y) {
		return false
	}
	display := s.GetDisplay()
	return display != DisplayInline && display != DisplayContents
}

func clipsOverflow(v string) bool {
	switch v {
	case "auto", "scroll", "overlay", "hidden":
		return true
	}
	return false
}

// Direction represents the direction property value
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// GetDirection returns the direction value (default: ltr)
func (s *Style) GetDirection() Direction {
	if dir, ok := s.Get("direction"); ok && dir == "rtl" {
		return DirectionRTL
	}
	return DirectionLTR
}

// IsContainingBlock reports whether the element establishes a containing
// block for fixed and absolute descendants through a transform-like
// property rather than through its position.
func (s *Style) IsContainingBlock() bool {
	if s.Value("transform", "none") != "none" {
		return true
	}
	if s.Value("perspective", "none") != "none" {
		return true
	}
	if s.Value("filter", "none") != "none" {
		return true
	}
	if s.Value("contain", "none") == "paint" {
		return true
	}
	for _, hint := range strings.Split(s.Value("will-change", "auto"), ",") {
		switch strings.TrimSpace(hint) {
		case "transform", "perspective", "filter":
			return true
		}
	}
	return false
}

// GetScale returns the scale factors of a scale() transform, or 1,1.
// Only scale, scaleX and scaleY functions are understood.
func (s *Style) GetScale() (x, y float64) {
	x, y = 1, 1
	val := s.Value("transform", "none")
	for _, fn := range splitTransformFunctions(val) {
		name, args := fn.name, fn.args
		switch name {
		case "scale":
			if len(args) >= 1 {
				x *= args[0]
				if len(args) >= 2 {
					y *= args[1]
				} else {
					y *= args[0]
				}
			}
		case "scalex":
			if len(args) == 1 {
				x *= args[0]
			}
		case "scaley":
			if len(args) == 1 {
				y *= args[0]
			}
		}
	}
	return x, y
}

type transformFunction struct {
	name string
	args []float64
}

// splitTransformFunctions parses "scale(2) translate(3px, 4px)" into its
// functions. Arguments that are not plain numbers or px lengths are dropped.
func splitTransformFunctions(val string) []transformFunction {
	var fns []transformFunction
	rest := strings.TrimSpace(val)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closing := strings.IndexByte(rest, ')')
		if open <= 0 || closing < open {
			break
		}
		fn := transformFunction{name: strings.ToLower(strings.TrimSpace(rest[:open]))}
		for _, arg := range strings.FieldsFunc(rest[open+1:closing], func(r rune) bool {
			return r == ',' || r == ' '
		}) {
			if num, ok := ParseLength(arg); ok {
				fn.args = append(fn.args, num)
			}
		}
		fns = append(fns, fn)
		rest = strings.TrimSpace(rest[closing+1:])
	}
	return fns
}

func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	declarations := strings.Split(styleAttr, ";")
	for _, decl := range declarations {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])

		expandShorthand(style, property, value)
	}
	return style
}

// expandShorthand expands shorthand CSS properties into individual properties
func expandShorthand(style *Style, property, value string) {
	switch property {
	case "overflow":
		// overflow: hidden auto -> overflow-x: hidden, overflow-y: auto
		parts := strings.Fields(value)
		switch len(parts) {
		case 1:
			style.Set("overflow-x", parts[0])
			style.Set("overflow-y", parts[0])
		case 2:
			style.Set("overflow-x", parts[0])
			style.Set("overflow-y", parts[1])
		}
	case "border-width":
		expandBoxProperty(style, "border", "-width", value)
	default:
		style.Set(property, value)
	}
}

// expandBoxProperty expands four-sided shorthand
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
//           "10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func expandBoxProperty(style *Style, prefix, suffix, value string) {
	parts := strings.Fields(value)
	var top, right, bottom, left string
	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, right, bottom, left = parts[0], parts[1], parts[0], parts[1]
	case 3:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[1]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	style.Set(prefix+"-top"+suffix, top)
	style.Set(prefix+"-right"+suffix, right)
	style.Set(prefix+"-bottom"+suffix, bottom)
	style.Set(prefix+"-left"+suffix, left)
}
