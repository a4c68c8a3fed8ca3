package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"floatpos/pkg/position"
	"floatpos/pkg/render"
)

func newRenderCmd() *cobra.Command {
	var (
		o      overrides
		output string
		width  int
		height int
	)
	cmd := &cobra.Command{
		Use:   "render <scene>",
		Short: "Draw the scene and the placed popup to a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			s, built, err := loadScene(cmd, rt, args[0], &o)
			if err != nil {
				return err
			}

			ex, err := position.Explain(built.Anchor, built.Popup, built.Config)
			if err != nil {
				return fmt.Errorf("compute position: %w", err)
			}

			if !cmd.Flags().Changed("width") {
				width = rt.cfg.Render.Width
			}
			if !cmd.Flags().Changed("height") {
				height = rt.cfg.Render.Height
			}
			if width == 0 {
				width = int(s.Window.Width)
			}
			if height == 0 {
				height = int(s.Window.Height)
			}
			if width <= 0 || height <= 0 {
				return fmt.Errorf("render size %dx%d: set --width/--height or the scene window size", width, height)
			}
			if output == "" {
				output = rt.cfg.Render.Output
			}

			r := render.NewRenderer(width, height)
			r.Labels = rt.cfg.Render.Labels
			r.Render(built.Document, built.Anchor, built.Popup, ex)

			if output == "-" {
				return r.EncodePNG(cmd.OutOrStdout())
			}
			if err := r.SavePNG(output); err != nil {
				return fmt.Errorf("saving PNG: %w", err)
			}
			rt.log.Info("rendered",
				zap.String("output", output),
				zap.String("placement", string(ex.Result.Placement)),
				zap.Int("width", width),
				zap.Int("height", height))
			return nil
		},
	}
	o.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output PNG path, "-" for stdout (default from render.output)`)
	cmd.Flags().IntVar(&width, "width", 0, "image width (default: render.width, else the window width)")
	cmd.Flags().IntVar(&height, "height", 0, "image height (default: render.height, else the window height)")
	return cmd
}
