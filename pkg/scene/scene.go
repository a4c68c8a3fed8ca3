// Package scene loads synthetic positioning scenarios: a window, a tree of
// measured elements and one computePosition request, described in YAML or
// TOML.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat  = errors.New("unknown scene format")
	ErrUnknownElement = errors.New("unknown element")
	ErrDuplicateID    = errors.New("duplicate element id")
	ErrBadBox         = errors.New("malformed box")
)

// Format is a scene file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf guesses the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Scene is one positioning scenario.
type Scene struct {
	Window   WindowSpec    `yaml:"window" toml:"window"`
	Document DocumentSpec  `yaml:"document" toml:"document"`
	Elements []ElementSpec `yaml:"elements" toml:"elements"`
	Compute  ComputeSpec   `yaml:"compute" toml:"compute"`
	// Script is optional JavaScript run by the script command.
	Script string `yaml:"script" toml:"script"`
}

type WindowSpec struct {
	Width            float64             `yaml:"width" toml:"width"`
	Height           float64             `yaml:"height" toml:"height"`
	ScrollX          float64             `yaml:"scrollX" toml:"scrollX"`
	ScrollY          float64             `yaml:"scrollY" toml:"scrollY"`
	VisualViewport   *VisualViewportSpec `yaml:"visualViewport" toml:"visualViewport"`
	VisualFixedRects bool                `yaml:"visualFixedRects" toml:"visualFixedRects"`
}

type VisualViewportSpec struct {
	Width      float64 `yaml:"width" toml:"width"`
	Height     float64 `yaml:"height" toml:"height"`
	Scale      float64 `yaml:"scale" toml:"scale"`
	OffsetLeft float64 `yaml:"offsetLeft" toml:"offsetLeft"`
	OffsetTop  float64 `yaml:"offsetTop" toml:"offsetTop"`
}

// DocumentSpec describes <html> and <body>. Width and Height are the
// scrollable size of the page and default to the window size.
type DocumentSpec struct {
	Width          float64 `yaml:"width" toml:"width"`
	Height         float64 `yaml:"height" toml:"height"`
	ScrollbarWidth float64 `yaml:"scrollbarWidth" toml:"scrollbarWidth"`
	Direction      string  `yaml:"direction" toml:"direction"`
	HTMLStyle      string  `yaml:"htmlStyle" toml:"htmlStyle"`
	BodyStyle      string  `yaml:"bodyStyle" toml:"bodyStyle"`
}

// ElementSpec is one element. Rect is required. When omitted, Offset is
// Rect undone by the style's scale() transform, Client is that size inset
// by the border widths, and ScrollSize is the client size.
type ElementSpec struct {
	ID         string        `yaml:"id" toml:"id"`
	Tag        string        `yaml:"tag" toml:"tag"`
	Style      string        `yaml:"style" toml:"style"`
	Rect       []float64     `yaml:"rect" toml:"rect"`
	Offset     []float64     `yaml:"offset" toml:"offset"`
	Client     []float64     `yaml:"client" toml:"client"`
	Scroll     []float64     `yaml:"scroll" toml:"scroll"`
	ScrollSize []float64     `yaml:"scrollSize" toml:"scrollSize"`
	Shadow     []ElementSpec `yaml:"shadow" toml:"shadow"`
	Slot       string        `yaml:"slot" toml:"slot"`
	Children   []ElementSpec `yaml:"children" toml:"children"`
}

// ComputeSpec is the request. Anchor names an element; VirtualAnchor
// replaces it with a bare rect.
type ComputeSpec struct {
	Anchor          string            `yaml:"anchor" toml:"anchor"`
	VirtualAnchor   []float64         `yaml:"virtualAnchor" toml:"virtualAnchor"`
	Popup           string            `yaml:"popup" toml:"popup"`
	Placement       string            `yaml:"placement" toml:"placement"`
	Strategy        string            `yaml:"strategy" toml:"strategy"`
	RTL             bool              `yaml:"rtl" toml:"rtl"`
	AutoPlacement   AutoPlacementSpec `yaml:"autoPlacement" toml:"autoPlacement"`
	Offset          OffsetValue       `yaml:"offset" toml:"offset"`
	MiddlewareOrder string            `yaml:"middlewareOrder" toml:"middlewareOrder"`
}

// Load reads a scene file, picking the decoder from its extension.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene. Unknown keys are rejected in both formats.
func Parse(data []byte, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("parse yaml scene: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, fmt.Errorf("parse toml scene: %w", err)
		}
		for _, key := range md.Undecoded() {
			if !decodedByUnmarshaler(key) {
				return nil, fmt.Errorf("parse toml scene: unknown key %q", key.String())
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &s, nil
}

// decodedByUnmarshaler reports keys below fields with their own
// UnmarshalTOML, which toml may list as undecoded.
func decodedByUnmarshaler(key toml.Key) bool {
	if len(key) < 3 || key[0] != "compute" {
		return false
	}
	return key[1] == "autoPlacement" || key[1] == "offset"
}
