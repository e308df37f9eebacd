package engine

import (
	"image"
	"sort"

	"github.com/gogpu/gg"
	"github.com/matjam/ledsign/internal/engine/background"
	"github.com/matjam/ledsign/internal/template"
)

// DisplayTarget selects what a render call produces: both panels, or one
// panel of a dual template on its own.
type DisplayTarget int

const (
	TargetAll DisplayTarget = iota
	TargetDisplay1
	TargetDisplay2
)

// Frame is the compositor output. Display2 is nil except for dual-mode
// TargetAll renders. Every non-nil buffer is exactly FrameSize bytes.
type Frame struct {
	Display1 []byte
	Display2 []byte
}

// RenderFrame composes one frame for the template: background, then
// elements in ascending z-order, then the brightness and channel-order
// output pass. Calls for one session must not be made concurrently.
func (s *Session) RenderFrame(t *template.Template, values map[string]any, target DisplayTarget) (*Frame, error) {
	brightness := t.EffectiveBrightness()

	dual := t.Dual()
	surfW, surfH := DisplayWidth, DisplayHeight
	if dual && target == TargetAll {
		surfH = DualHeight
	}

	dc := s.compose(t, values, target, surfW, surfH)

	img := dc.Image().(*image.RGBA)
	buf := img.Pix
	applyOutputPass(buf, brightness)

	if dual && target == TargetAll {
		d1, d2, err := splitDual(buf)
		if err != nil {
			return nil, err
		}
		return &Frame{Display1: d1, Display2: d2}, nil
	}
	if err := checkFrameSize(buf); err != nil {
		return nil, err
	}
	return &Frame{Display1: buf}, nil
}

// RenderImage renders the unified surface and returns it without the
// output pass, for previews where natural channel order is wanted.
func (s *Session) RenderImage(t *template.Template, values map[string]any) *image.RGBA {
	surfW, surfH := DisplayWidth, DisplayHeight
	if t.Dual() {
		surfH = DualHeight
	}
	dc := s.compose(t, values, TargetAll, surfW, surfH)
	return dc.Image().(*image.RGBA)
}

func (s *Session) compose(t *template.Template, values map[string]any, target DisplayTarget, surfW, surfH int) *gg.Context {
	cfg := effectiveConfig(t)
	entry := s.generatorFor(t.ID, cfg)

	now := s.clock.Now()
	dt := now.Sub(entry.lastUpdate).Seconds()
	entry.lastUpdate = now
	// Bound a single catch-up step even when far more time elapsed.
	if dt > background.MaxDelta {
		dt = background.MaxDelta
	}
	entry.gen.Update(dt)

	dc := gg.NewContext(surfW, surfH)
	dc.ClearWithColor(gg.RGBA{A: 1})
	entry.gen.Render(dc, surfW, surfH, t.EffectiveBrightness())

	// Animation runs in the unified coordinate space; targeting one
	// panel of a dual template shifts the lower band into local space.
	canvasW, canvasH := float64(DisplayWidth), float64(DisplayHeight)
	if t.Dual() {
		canvasH = float64(DualHeight)
	}
	offsetY := 0.0
	if t.Dual() && target == TargetDisplay2 {
		offsetY = -float64(DisplayHeight)
	}

	for _, el := range sortedElements(t.Elements) {
		s.drawElement(dc, el, values, canvasW, canvasH, offsetY)
	}
	return dc
}

// effectiveConfig prefers the explicit background config and falls back
// to a solid fill from the legacy single color field.
func effectiveConfig(t *template.Template) *template.BackgroundConfig {
	if t.BackgroundConfig != nil {
		return t.BackgroundConfig
	}
	color := t.Background
	if color == "" {
		color = "#000000"
	}
	return template.SolidBackground(color)
}

// sortedElements orders elements by ascending z, stable for equal z.
func sortedElements(elements []template.Element) []*template.Element {
	out := make([]*template.Element, len(elements))
	for i := range elements {
		out[i] = &elements[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Z < out[j].Z
	})
	return out
}
