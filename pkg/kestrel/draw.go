package kestrel

import (
	"github.com/go-kestrel/kestrel/pkg/geometry"
	"github.com/go-kestrel/kestrel/pkg/theme"
	"github.com/go-kestrel/kestrel/pkg/widget"
)

// thumbReach is how far a slider thumb extends past the track vertically.
const thumbReach = 3

// Draw repaints the dirty regions accumulated since the last Draw and
// returns them. The returned slice is valid until the next Draw. An empty
// result means nothing was repainted.
//
// For each region the display clip is set and every widget overlapping it
// is redrawn in tree order, so later siblings paint over earlier ones.
func (u *UI) Draw() []geometry.Rect {
	u.regions = u.tracker.Take(u.regions[:0])
	if len(u.regions) == 0 {
		return u.regions
	}

	th := u.reg.Active()
	for _, r := range u.regions {
		u.disp.SetClip(r)
		u.drawRegion(r, th)
	}
	u.disp.SetClip(u.bounds)
	return u.regions
}

func (u *UI) drawRegion(r geometry.Rect, th *theme.Theme) {
	u.disp.FillRect(r, th.Color(theme.TokenBackground))
	u.tree.Walk(func(id widget.ID) bool {
		if id == u.tree.Root() {
			return true
		}
		rect := u.tree.ScreenRect(id)
		if !rect.Intersects(r) {
			return true
		}
		u.drawWidget(id, rect, th)
		return true
	})
}

func (u *UI) drawWidget(id widget.ID, rect geometry.Rect, th *theme.Theme) {
	opacity := u.tree.Prop(id, widget.PropOpacity)
	if opacity <= 0 {
		return
	}
	m := th.Metrics()

	// Partially transparent widgets blend toward the backdrop. The
	// display has no alpha compositing, so the blend happens here.
	bg := th.Color(theme.TokenBackground)
	fade := func(c theme.Color) theme.Color {
		return theme.Lerp(bg, c, opacity)
	}

	switch u.tree.Kind(id) {
	case widget.KindContainer:
		u.disp.FillRect(rect, fade(th.Color(theme.TokenSurface)))
		if m.BorderWidth > 0 {
			u.disp.StrokeRect(rect, fade(th.Color(theme.TokenBorder)), m.BorderWidth)
		}

	case widget.KindLabel:
		text := th.Color(theme.TokenSecondaryText)
		if u.tree.Disabled(id) {
			text = th.Color(theme.TokenDisabledText)
		}
		origin := geometry.Point{X: rect.Left + m.Padding, Y: rect.Top + m.Padding}
		u.disp.DrawText(origin, u.tree.Text(id), th.Face(), fade(text))

	case widget.KindButton:
		fill := th.Color(theme.TokenPrimary)
		text := th.Color(theme.TokenPrimaryText)
		switch {
		case u.tree.Disabled(id):
			fill = th.Color(theme.TokenSurface)
			text = th.Color(theme.TokenDisabledText)
		case u.tree.State(id) == widget.StatePressed:
			fill = th.Color(theme.TokenPressedOverlay)
		case u.tree.State(id) == widget.StateHover:
			fill = th.Color(theme.TokenHoverOverlay)
		}
		u.disp.FillRect(rect, fade(fill))
		origin := geometry.Point{X: rect.Left + m.Padding, Y: rect.Top + m.Padding}
		u.disp.DrawText(origin, u.tree.Text(id), th.Face(), fade(text))
		u.drawFocusRing(id, rect, th)

	case widget.KindSlider:
		trackTop := rect.Top + (rect.Height()-m.SliderTrackHeight)/2
		track := geometry.Rect{Left: rect.Left, Top: trackTop, Right: rect.Right, Bottom: trackTop + m.SliderTrackHeight}
		u.disp.FillRect(track, fade(th.Color(theme.TokenBorder)))

		v := u.tree.Value(id)
		filled := track
		filled.Right = track.Left + int(v*float32(track.Width()))
		u.disp.FillRect(filled, fade(th.Color(theme.TokenPrimary)))

		travel := rect.Width() - m.SliderThumbWidth
		if travel < 0 {
			travel = 0
		}
		thumbLeft := rect.Left + int(v*float32(travel))
		thumb := geometry.Rect{
			Left:   thumbLeft,
			Top:    trackTop - thumbReach,
			Right:  thumbLeft + m.SliderThumbWidth,
			Bottom: trackTop + m.SliderTrackHeight + thumbReach,
		}
		accent := theme.TokenAccent
		if u.tree.Disabled(id) {
			accent = theme.TokenDisabledText
		}
		u.disp.FillRect(thumb.Intersect(rect), fade(th.Color(accent)))
		u.drawFocusRing(id, rect, th)

	case widget.KindToggle:
		track := rect.Inset(m.Padding)
		if track.IsEmpty() {
			track = rect
		}
		fill := theme.TokenBorder
		if u.tree.Checked(id) {
			fill = theme.TokenPrimary
		}
		u.disp.FillRect(track, fade(th.Color(fill)))

		side := track.Height()
		thumb := geometry.Rect{Left: track.Left, Top: track.Top, Right: track.Left + side, Bottom: track.Bottom}
		if u.tree.Checked(id) {
			thumb = thumb.Translate(track.Width()-side, 0)
		}
		knob := theme.TokenSurface
		if u.tree.Disabled(id) {
			knob = theme.TokenDisabledText
		}
		u.disp.FillRect(thumb.Intersect(track), fade(th.Color(knob)))
		width := m.BorderWidth
		if width < 1 {
			width = 1
		}
		u.disp.StrokeRect(track, fade(th.Color(theme.TokenBorder)), width)
		u.drawFocusRing(id, rect, th)

	case widget.KindCheckbox:
		box := geometry.Rect{
			Left:   rect.Left + m.Padding,
			Top:    rect.Top + m.Padding,
			Right:  rect.Left + m.Padding + m.CheckboxBox,
			Bottom: rect.Top + m.Padding + m.CheckboxBox,
		}
		box = box.Intersect(rect)
		u.disp.FillRect(box, fade(th.Color(theme.TokenSurface)))
		border := theme.TokenBorder
		if u.tree.Disabled(id) {
			border = theme.TokenDisabledText
		}
		width := m.BorderWidth
		if width < 1 {
			width = 1
		}
		u.disp.StrokeRect(box, fade(th.Color(border)), width)
		if u.tree.Checked(id) {
			mark := box.Inset(3)
			if !mark.IsEmpty() {
				c := fade(th.Color(theme.TokenAccent))
				elbow := geometry.Point{
					X: mark.Left + mark.Width()/3,
					Y: mark.Bottom - 1,
				}
				u.disp.DrawLine(geometry.Point{X: mark.Left, Y: mark.Top + mark.Height()/2}, elbow, c)
				u.disp.DrawLine(elbow, geometry.Point{X: mark.Right - 1, Y: mark.Top}, c)
			}
		}
		u.drawFocusRing(id, rect, th)
	}
}

func (u *UI) drawFocusRing(id widget.ID, rect geometry.Rect, th *theme.Theme) {
	if !u.tree.Focused(id) {
		return
	}
	width := th.Metrics().BorderWidth
	if width < 1 {
		width = 1
	}
	u.disp.StrokeRect(rect, th.Color(theme.TokenFocusRing), width)
}
