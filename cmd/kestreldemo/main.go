// Command kestreldemo renders a small demo interface headlessly and writes
// the result as a PNG. It exercises the full tick/draw loop: layout, input
// replay, an animation, and partial redraws, printing the dirty regions of
// every frame.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/go-kestrel/kestrel/pkg/display"
	"github.com/go-kestrel/kestrel/pkg/errors"
	"github.com/go-kestrel/kestrel/pkg/geometry"
	"github.com/go-kestrel/kestrel/pkg/input"
	"github.com/go-kestrel/kestrel/pkg/kestrel"
	"github.com/go-kestrel/kestrel/pkg/motion"
	"github.com/go-kestrel/kestrel/pkg/widget"
)

func main() {
	var (
		width     = flag.Int("width", 240, "display width in pixels")
		height    = flag.Int("height", 160, "display height in pixels")
		frames    = flag.Int("frames", 30, "number of 16ms frames to run")
		themePath = flag.String("theme", "", "YAML theme file (default: built-in light)")
		out       = flag.String("out", "kestreldemo.png", "output PNG path")
	)
	flag.Parse()

	if err := run(*width, *height, *frames, *themePath, *out); err != nil {
		fmt.Fprintf(os.Stderr, "kestreldemo: %v\n", err)
		os.Exit(1)
	}
}

func run(width, height, frames int, themePath, out string) error {
	fb := display.NewFramebuffer(geometry.Size{Width: width, Height: height})
	ui := kestrel.New(fb, kestrel.Config{
		Errors: &errors.LogHandler{Verbose: true},
	})

	if themePath != "" {
		data, err := os.ReadFile(themePath)
		if err != nil {
			return err
		}
		if err := ui.ApplyThemeYAML(data); err != nil {
			return err
		}
	}

	tree := ui.Tree()
	title, _ := tree.Add(tree.Root(), widget.KindLabel, widget.Content(widget.SizeBounds{}, widget.SizeBounds{}))
	tree.SetText(title, "kestrel demo")

	row, _ := tree.Add(tree.Root(), widget.KindContainer, widget.Fixed(width-8, 30))
	tree.SetAxis(row, widget.AxisRow)
	ok, _ := tree.Add(row, widget.KindButton, widget.Fixed(60, 22))
	tree.SetText(ok, "OK")
	tree.SetOnClick(ok, func() { fmt.Println("ok clicked") })
	tree.Add(row, widget.KindSpacer, widget.Fixed(20, 22))
	cancel, _ := tree.Add(row, widget.KindButton, widget.Fixed(60, 22))
	tree.SetText(cancel, "Cancel")
	tree.SetDisabled(cancel, true)

	slider, _ := tree.Add(tree.Root(), widget.KindSlider, widget.Fixed(width-16, 18))
	tree.SetValue(slider, 0.25)
	tree.SetOnChange(slider, func(v float32) { fmt.Printf("slider: %.2f\n", v) })

	check, _ := tree.Add(tree.Root(), widget.KindCheckbox, widget.Fixed(20, 20))
	tree.SetChecked(check, true)

	sw, _ := tree.Add(tree.Root(), widget.KindToggle, widget.Fixed(36, 18))
	tree.SetChecked(sw, true)
	tree.SetOnClick(sw, func() { fmt.Printf("toggle: %v\n", tree.Checked(sw)) })

	// Slide the title in from the left.
	if _, err := ui.Motion().Start(title, widget.PropOffsetX, -40, 0, 300*time.Millisecond, motion.EaseOut, nil); err != nil {
		return err
	}

	// Replay a pointer click on the OK button midway through.
	ui.Tick(0)
	ui.Draw()
	center := tree.ScreenRect(ok)
	click := geometry.Point{X: (center.Left + center.Right) / 2, Y: (center.Top + center.Bottom) / 2}

	for frame := 0; frame < frames; frame++ {
		if frame == frames/2 {
			ui.EnqueuePointer(input.PointerEvent{Pos: click, Pressed: true})
			ui.EnqueuePointer(input.PointerEvent{Pos: click})
		}
		ui.Tick(16 * time.Millisecond)
		regions := ui.Draw()
		if len(regions) > 0 {
			fmt.Printf("frame %2d: %d dirty region(s) %v\n", frame, len(regions), regions)
		}
	}

	return writePNG(fb, out)
}

func writePNG(fb *display.Framebuffer, path string) error {
	size := fb.Size()
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			r, g, b, a := fb.At(x, y).Components()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d)\n", path, size.Width, size.Height)
	return nil
}
