// Command floatshow opens a scene in a window and re-renders it as the
// placement, strategy and auto-placement settings change.
package main

import (
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"floatpos/pkg/config"
	"floatpos/pkg/geom"
	"floatpos/pkg/observability"
	"floatpos/pkg/position"
	"floatpos/pkg/render"
	"floatpos/pkg/scene"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <scene.yaml|scene.toml>\n", os.Args[0])
		os.Exit(1)
	}
	path := os.Args[1]

	cfg := config.NewDefaultConfig()
	log := observability.NewLogger(cfg.Logger)
	defer log.Sync()

	s, err := scene.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}
	built, err := s.Build(cfg.Compute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
		os.Exit(1)
	}

	width, height := int(s.Window.Width), int(s.Window.Height)
	if width <= 0 || height <= 0 {
		width, height = 800, 600
	}

	a := app.New()
	w := a.NewWindow("floatshow - " + path)
	w.Resize(fyne.NewSize(float32(width), float32(height+80)))

	target := image.NewRGBA(image.Rect(0, 0, width, height))
	canvasImg := canvas.NewImageFromImage(target)
	canvasImg.FillMode = canvas.ImageFillOriginal

	status := widget.NewLabel("")
	request := built.Config
	request.Logger = log

	redraw := func() {
		ex, err := position.Explain(built.Anchor, built.Popup, request)
		if err != nil {
			status.SetText("Error: " + err.Error())
			return
		}
		r := render.NewRenderer(width, height)
		r.Labels = cfg.Render.Labels
		r.Render(built.Document, built.Anchor, built.Popup, ex)

		canvasImg.Image = r.Image()
		canvasImg.Refresh()
		status.SetText(fmt.Sprintf("%s at (%.1f, %.1f)  overflow t%.0f r%.0f b%.0f l%.0f",
			ex.Result.Placement, ex.Result.X, ex.Result.Y,
			ex.Overflow.Top, ex.Overflow.Right, ex.Overflow.Bottom, ex.Overflow.Left))
		log.Debug("redrawn", zap.String("placement", string(ex.Result.Placement)))
	}

	placements := make([]string, len(geom.AllPlacements))
	for i, p := range geom.AllPlacements {
		placements[i] = string(p)
	}
	placementSelect := widget.NewSelect(placements, func(v string) {
		if p, err := geom.ParsePlacement(v); err == nil {
			request.Placement = p
			redraw()
		}
	})

	strategySelect := widget.NewSelect([]string{string(geom.StrategyAbsolute), string(geom.StrategyFixed)}, func(v string) {
		if st, err := geom.ParseStrategy(v); err == nil {
			request.Strategy = st
			redraw()
		}
	})

	autoCheck := widget.NewCheck("auto placement", func(on bool) {
		request.AutoPlacement.Enabled = on
		redraw()
	})
	rtlCheck := widget.NewCheck("rtl", func(on bool) {
		request.RTL = on
		redraw()
	})

	// Setting the initial values fires the callbacks, which draw the
	// first frame.
	autoCheck.SetChecked(request.AutoPlacement.Enabled)
	rtlCheck.SetChecked(request.RTL)
	strategySelect.SetSelected(string(request.Strategy))
	placementSelect.SetSelected(string(request.Placement))

	controls := container.NewHBox(placementSelect, strategySelect, autoCheck, rtlCheck)
	content := container.NewBorder(controls, status, nil, nil, canvasImg)
	w.SetContent(content)

	w.ShowAndRun()
}
