package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"floatpos/pkg/geom"
	"floatpos/pkg/position"
	"floatpos/pkg/scene"
)

// overrides are per-invocation flags that win over the scene file.
type overrides struct {
	placement string
	strategy  string
	auto      bool
	rtl       bool
}

func (o *overrides) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.placement, "placement", "p", "", "override the scene's placement")
	cmd.Flags().StringVarP(&o.strategy, "strategy", "s", "", "override the scene's strategy (absolute or fixed)")
	cmd.Flags().BoolVar(&o.auto, "auto", false, "enable auto placement")
	cmd.Flags().BoolVar(&o.rtl, "rtl", false, "treat the document as right-to-left")
}

func (o *overrides) apply(cmd *cobra.Command, cfg *position.Config) error {
	flags := cmd.Flags()
	if flags.Changed("placement") {
		p, err := geom.ParsePlacement(o.placement)
		if err != nil {
			return err
		}
		cfg.Placement = p
	}
	if flags.Changed("strategy") {
		s, err := geom.ParseStrategy(o.strategy)
		if err != nil {
			return err
		}
		cfg.Strategy = s
	}
	if flags.Changed("auto") {
		cfg.AutoPlacement.Enabled = o.auto
	}
	if flags.Changed("rtl") {
		cfg.RTL = o.rtl
	}
	return nil
}

// loadScene reads and builds the scene at path with the configured
// defaults and flag overrides applied.
func loadScene(cmd *cobra.Command, rt *runtime, path string, o *overrides) (*scene.Scene, *scene.Built, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}
	built, err := s.Build(rt.cfg.Compute)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if o != nil {
		if err := o.apply(cmd, &built.Config); err != nil {
			return nil, nil, err
		}
	}
	built.Config.Logger = rt.log
	rt.log.Debug("scene loaded",
		zap.String("path", path),
		zap.String("placement", string(built.Config.Placement)),
		zap.String("strategy", string(built.Config.Strategy)))
	return s, built, nil
}

type rectOutput struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func rectOf(r geom.Rect) rectOutput {
	return rectOutput{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

type candidateOutput struct {
	Placement string     `yaml:"placement"`
	Overflows [3]float64 `yaml:"overflows,flow"`
	Fits      bool       `yaml:"fits"`
}

type stageOutput struct {
	Name      string  `yaml:"name"`
	Placement string  `yaml:"placement"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
}

type explainOutput struct {
	Requested    string             `yaml:"requested"`
	AnchorRect   rectOutput         `yaml:"anchorRect"`
	PopupRect    rectOutput         `yaml:"popupRect"`
	ClippingRect *rectOutput        `yaml:"clippingRect,omitempty"`
	Overflow     map[string]float64 `yaml:"overflow"`
	Candidates   []candidateOutput  `yaml:"candidates,omitempty"`
	Stages       []stageOutput      `yaml:"stages"`
}

type computeOutput struct {
	X         float64        `yaml:"x"`
	Y         float64        `yaml:"y"`
	Placement string         `yaml:"placement"`
	Strategy  string         `yaml:"strategy"`
	Explain   *explainOutput `yaml:"explain,omitempty"`
}

func newComputeOutput(ex position.Explanation, strategy geom.Strategy, explain bool) computeOutput {
	if strategy == "" {
		strategy = geom.StrategyAbsolute
	}
	out := computeOutput{
		X:         ex.Result.X,
		Y:         ex.Result.Y,
		Placement: string(ex.Result.Placement),
		Strategy:  string(strategy),
	}
	if !explain {
		return out
	}

	e := &explainOutput{
		Requested:  string(ex.Requested),
		AnchorRect: rectOf(ex.Rects.Anchor),
		PopupRect:  rectOf(ex.PopupRect),
		Overflow: map[string]float64{
			"top":    ex.Overflow.Top,
			"right":  ex.Overflow.Right,
			"bottom": ex.Overflow.Bottom,
			"left":   ex.Overflow.Left,
		},
	}
	if ex.HasClipping {
		clip := rectOf(ex.ClippingRect)
		e.ClippingRect = &clip
	}
	for _, c := range ex.Candidates {
		e.Candidates = append(e.Candidates, candidateOutput{Placement: string(c.Placement), Overflows: c.Overflows, Fits: c.Fits()})
	}
	for _, st := range ex.Stages {
		e.Stages = append(e.Stages, stageOutput{Name: st.Name, Placement: string(st.Placement), X: st.Coordinates.X, Y: st.Coordinates.Y})
	}
	out.Explain = e
	return out
}

func newComputeCmd() *cobra.Command {
	var (
		o       overrides
		explain bool
	)
	cmd := &cobra.Command{
		Use:   "compute <scene>",
		Short: "Print where the scene's popup goes",
		Long: `Compute loads a YAML or TOML scene, runs the positioning pipeline once
and prints the result as YAML. With --explain the output also carries the
measured rects, the clipping rect, the final overflow, the auto-placement
candidates and the state after each pipeline stage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			_, built, err := loadScene(cmd, rt, args[0], &o)
			if err != nil {
				return err
			}

			ex, err := position.Explain(built.Anchor, built.Popup, built.Config)
			if err != nil {
				return fmt.Errorf("compute position: %w", err)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(newComputeOutput(ex, built.Config.Strategy, explain)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	o.register(cmd)
	cmd.Flags().BoolVarP(&explain, "explain", "e", false, "include measurements and the per-stage trace")
	return cmd
}
