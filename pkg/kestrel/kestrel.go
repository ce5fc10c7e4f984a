// Package kestrel assembles the widget tree, dirty-region tracker, motion
// scheduler, input queue and theme registry into one retained-mode UI with
// a tick/draw loop. All capacities are fixed at construction; after New
// the UI allocates nothing on the steady-state path.
package kestrel

import (
	"time"

	"github.com/go-kestrel/kestrel/pkg/display"
	"github.com/go-kestrel/kestrel/pkg/errors"
	"github.com/go-kestrel/kestrel/pkg/geometry"
	"github.com/go-kestrel/kestrel/pkg/input"
	"github.com/go-kestrel/kestrel/pkg/motion"
	"github.com/go-kestrel/kestrel/pkg/region"
	"github.com/go-kestrel/kestrel/pkg/theme"
	"github.com/go-kestrel/kestrel/pkg/widget"
)

// Config fixes the capacities and initial theme of a UI. Zero values take
// the listed defaults.
type Config struct {
	// MaxWidgets is the number of widgets the arena can hold, on top of
	// the implicit root container. Default 64.
	MaxWidgets int
	// MaxDirtyRects is the dirty-region tracker capacity. Default 16.
	MaxDirtyRects int
	// MaxAnimations is the motion scheduler capacity. Default 16.
	MaxAnimations int
	// MaxEvents is the input queue capacity. Default 32.
	MaxEvents int
	// Theme is the initial theme. Default is the built-in light theme.
	Theme *theme.Theme
	// Errors receives dropped-input and other reported errors. Nil
	// discards them.
	Errors errors.Handler
}

func (c Config) withDefaults() Config {
	if c.MaxWidgets <= 0 {
		c.MaxWidgets = 64
	}
	if c.MaxDirtyRects <= 0 {
		c.MaxDirtyRects = 16
	}
	if c.MaxAnimations <= 0 {
		c.MaxAnimations = 16
	}
	if c.MaxEvents <= 0 {
		c.MaxEvents = 32
	}
	return c
}

// UI is a retained-mode interface bound to one display. It is not safe
// for concurrent use: the host calls Enqueue from anywhere it can tolerate
// an error return, and Tick and Draw from its single loop.
type UI struct {
	disp       display.Display
	bounds     geometry.Rect
	reg        *theme.Registry
	tree       *widget.Tree
	tracker    *region.Tracker
	motion     *motion.Scheduler
	queue      *input.Queue
	dispatcher *input.Dispatcher
	errs       errors.Handler

	regions []geometry.Rect
}

// New builds a UI drawing to disp. The first Draw repaints the whole
// display; afterwards only dirty regions are repainted.
func New(disp display.Display, cfg Config) *UI {
	cfg = cfg.withDefaults()

	size := disp.Size()
	bounds := geometry.RectFromLTWH(0, 0, size.Width, size.Height)
	reg := theme.NewRegistry(cfg.Theme)
	tracker := region.NewTracker(bounds, cfg.MaxDirtyRects)
	tracker.ForceFull()

	tree := widget.NewTree(cfg.MaxWidgets, reg)
	tree.SetDirtySink(tracker)

	ui := &UI{
		disp:       disp,
		bounds:     bounds,
		reg:        reg,
		tree:       tree,
		tracker:    tracker,
		motion:     motion.NewScheduler(tree, cfg.MaxAnimations),
		queue:      input.NewQueue(cfg.MaxEvents),
		dispatcher: input.NewDispatcher(tree),
		errs:       cfg.Errors,
		regions:    make([]geometry.Rect, 0, cfg.MaxDirtyRects),
	}

	// Token resolution is not tracked per widget and metrics feed layout,
	// so a swapped theme invalidates everything.
	reg.OnSwap(func() {
		tree.InvalidateLayout()
		tracker.ForceFull()
	})
	return ui
}

// Tree exposes the widget tree for building and mutating the interface.
func (u *UI) Tree() *widget.Tree { return u.tree }

// Motion exposes the animation scheduler.
func (u *UI) Motion() *motion.Scheduler { return u.motion }

// Theme returns the theme registry.
func (u *UI) Theme() *theme.Registry { return u.reg }

// EnqueuePointer queues a pointer sample for the next Tick. A full queue
// drops the event and returns a capacity error.
func (u *UI) EnqueuePointer(ev input.PointerEvent) error {
	return u.report(u.queue.PushPointer(ev))
}

// EnqueueKey queues a key event for the next Tick.
func (u *UI) EnqueueKey(ev input.KeyEvent) error {
	return u.report(u.queue.PushKey(ev))
}

// ApplyTheme swaps the active theme and schedules a full repaint.
func (u *UI) ApplyTheme(t *theme.Theme) {
	u.reg.Swap(t)
}

// ApplyThemeYAML parses a YAML theme definition and applies it. A parse
// error leaves the active theme in place.
func (u *UI) ApplyThemeYAML(data []byte) error {
	t, err := theme.Parse(data)
	if err != nil {
		return u.report(err)
	}
	u.reg.Swap(t)
	return nil
}

// Tick advances the UI by dt: queued input is dispatched in order, active
// animations step, and layout is re-resolved where needed. With no input,
// no animations and no mutations since the last tick, Tick is a no-op and
// the following Draw repaints nothing.
func (u *UI) Tick(dt time.Duration) {
	u.queue.Drain(u.dispatcher)
	u.motion.Tick(dt)
	u.tree.ResolveLayout(u.bounds)
}

func (u *UI) report(err error) error {
	if err == nil || u.errs == nil {
		return err
	}
	var e *errors.Error
	if errors.As(err, &e) {
		u.errs.HandleError(e)
	}
	return err
}
