package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/gravwell/assets"
)

// Slider positions are stored as value*sliderScale.
const sliderScale = 20

type controlPanel struct {
	container *widget.Container

	gLabel    *widget.Text
	gSlider   *widget.Slider
	tsLabel   *widget.Text
	tsSlider  *widget.Slider
	pauseBtn  *widget.Button
	mergeBtn  *widget.Button
	trailsBtn *widget.Button
	audioBtn  *widget.Button

	// last values pushed into the sliders, used to ignore echo events
	gValue  int
	tsValue int
}

// NewControlUI builds the right-hand control panel. It mirrors the keyboard
// shortcuts and reads its state back from the game every frame.
func NewControlUI(g *Game) (*ebitenui.UI, *controlPanel) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x14, B: 0x20, A: 210})
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x36, B: 0x44, A: 255}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x48, B: 0x5a, A: 255}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x24, B: 0x30, A: 255}),
	}
	trackImg := &widget.SliderTrackImage{
		Idle:  imageui.NewNineSliceColor(color.NRGBA{R: 0x28, G: 0x2b, B: 0x36, A: 255}),
		Hover: imageui.NewNineSliceColor(color.NRGBA{R: 0x30, G: 0x33, B: 0x40, A: 255}),
	}

	face := assets.Face()
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	rowData := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	p := &controlPanel{}

	label := func(s string) *widget.Text {
		return widget.NewText(widget.TextOpts.Text(s, &face, white), widget.TextOpts.WidgetOpts(rowData))
	}
	button := func(s string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(s, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Top: 4, Bottom: 4, Left: 8, Right: 8}),
			widget.ButtonOpts.WidgetOpts(rowData),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}
	slider := func(lo, hi int, changed func(v int)) *widget.Slider {
		return widget.NewSlider(
			widget.SliderOpts.Direction(widget.DirectionHorizontal),
			widget.SliderOpts.MinMax(lo, hi),
			widget.SliderOpts.Images(trackImg, btnImg),
			widget.SliderOpts.FixedHandleSize(10),
			widget.SliderOpts.WidgetOpts(rowData, widget.WidgetOpts.MinSize(180, 14)),
			widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
				changed(args.Current)
			}),
		)
	}

	p.gLabel = label("")
	p.gSlider = slider(toSlider(minG), toSlider(maxG), func(v int) {
		if v == p.gValue {
			return
		}
		p.gValue = v
		g.setGravity(fromSlider(v))
	})
	p.tsLabel = label("")
	p.tsSlider = slider(toSlider(minTime), toSlider(maxTime), func(v int) {
		if v == p.tsValue {
			return
		}
		p.tsValue = v
		g.setTimeScale(fromSlider(v))
	})

	p.pauseBtn = button("Pause", g.togglePause)
	p.mergeBtn = button("Merge", g.toggleMerge)
	p.trailsBtn = button("Trails", g.toggleTrails)
	p.audioBtn = button("Sound", g.toggleAudio)

	p.container = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				Padding:            &widget.Insets{Top: 8, Right: 8},
			}),
		),
	)
	for _, w := range []widget.PreferredSizeLocateableWidget{
		p.gLabel, p.gSlider,
		p.tsLabel, p.tsSlider,
		p.pauseBtn,
		button("Clear", g.clear),
		p.mergeBtn,
		p.trailsBtn,
		p.audioBtn,
		button("Fit view", func() { g.camera.Fit(g.world.Bodies(), fitMargin) }),
		button("Next scene", g.nextScene),
		button("Copy snapshot", g.copySnapshot),
	} {
		p.container.AddChild(w)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(p.container)

	p.sync(g)
	return &ebitenui.UI{Container: root}, p
}

func toSlider(v float64) int {
	return int(math.Round(v * sliderScale))
}

func fromSlider(v int) float64 {
	return float64(v) / sliderScale
}

// sync pushes game state into the widgets.
func (p *controlPanel) sync(g *Game) {
	p.gValue = toSlider(g.params.G)
	p.gSlider.Current = p.gValue
	p.gLabel.Label = fmt.Sprintf("Gravity  %.2f", g.params.G)

	p.tsValue = toSlider(g.params.TimeScale)
	p.tsSlider.Current = p.tsValue
	p.tsLabel.Label = fmt.Sprintf("Time scale  x%.2f", g.params.TimeScale)

	p.pauseBtn.SetText(pick(g.paused, "Resume", "Pause"))
	p.mergeBtn.SetText("Merge: " + pick(g.params.MergeEnabled, "on", "off"))
	p.trailsBtn.SetText("Trails: " + pick(g.showTrails, "on", "off"))
	p.audioBtn.SetText("Sound: " + pick(g.tones.Enabled(), "on", "off"))
}

func (p *controlPanel) rect() image.Rectangle {
	return p.container.GetWidget().Rect
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
