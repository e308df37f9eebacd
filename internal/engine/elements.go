package engine

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"github.com/matjam/ledsign/internal/template"
)

// drawElement renders one element at its animated position. offsetY
// shifts dual-canvas coordinates into panel-local space when a single
// panel of a dual template is targeted; drawing outside the surface is
// clipped, which is what keeps each panel showing only its own band.
func (s *Session) drawElement(dc *gg.Context, el *template.Element, values map[string]any, canvasW, canvasH, offsetY float64) {
	if !el.Visible {
		return
	}

	text := ""
	switch el.Type {
	case template.ElementText:
		text = el.Text
	case template.ElementData:
		text = s.resolveData(el, values)
	}

	elW, elH := s.elementExtent(el, text)
	pos, colorOverride := s.animate(el, canvasW, canvasH, elW, elH)
	pos.Y += offsetY

	color := parseElementColor(el, gg.RGBA{R: 1, G: 1, B: 1, A: 1})
	if colorOverride != nil {
		color = *colorOverride
	}

	switch el.Type {
	case template.ElementText, template.ElementData:
		s.drawText(dc, el, text, pos, color)

	case template.ElementIcon:
		s.drawIcon(dc, el, pos)

	case template.ElementShape:
		drawShape(dc, el, pos, color)
	}

	// Attached firework debris renders over the element.
	if st, ok := s.anims[el.ID]; ok {
		for _, pt := range st.particles {
			c := pt.Color
			c.A *= pt.Opacity
			dc.SetPixel(int(pt.X), int(pt.Y+offsetY), c)
		}
	}
}

// elementExtent returns the drawn size, used to compute animation
// bounding boxes so a bouncing element never clips.
func (s *Session) elementExtent(el *template.Element, text string) (w, h float64) {
	switch el.Type {
	case template.ElementText, template.ElementData:
		return measurePixelText(text, textScale(el.Style.FontSize))
	case template.ElementIcon:
		return 16, 16
	case template.ElementShape:
		if el.Shape == nil {
			return 0, 0
		}
		switch el.Shape.Kind {
		case template.ShapeCircle:
			return el.Shape.Radius * 2, el.Shape.Radius * 2
		default:
			return el.Shape.Width, el.Shape.Height
		}
	}
	return 0, 0
}

func (s *Session) resolveData(el *template.Element, values map[string]any) string {
	if s.resolver != nil {
		return s.resolver.Resolve(el.DataSource, values, el.Format, el.Timezone)
	}
	if v, ok := values[el.DataSource]; ok {
		return fmt.Sprint(v)
	}
	return ""
}

func (s *Session) drawText(dc *gg.Context, el *template.Element, text string, pos template.Position, color gg.RGBA) {
	if text == "" {
		return
	}
	if el.Style.FontPath != "" {
		size := el.Style.FontSize
		if size <= 0 {
			size = 8
		}
		if err := dc.LoadFontFace(el.Style.FontPath, size); err == nil {
			dc.SetColor(color.Color())
			dc.DrawStringAnchored(text, pos.X, pos.Y, 0, 1)
			return
		}
		log.Debugf("font %s unavailable, using pixel font", el.Style.FontPath)
	}
	drawPixelText(dc, text, pos.X, pos.Y, textScale(el.Style.FontSize), color)
}

func (s *Session) drawIcon(dc *gg.Context, el *template.Element, pos template.Position) {
	if el.Icon == nil || s.icons == nil {
		return
	}

	var img *gg.ImageBuf
	var err error
	if el.Icon.Condition != 0 {
		img, err = s.icons.Weather(el.Icon.Condition, el.Icon.Animated, s.elapsed())
	} else {
		img, err = s.icons.Static(el.Icon.Src)
	}
	if err != nil {
		// Per-element failure: skip this frame, never abort the frame.
		log.Debugf("icon for element %s unavailable: %v", el.ID, err)
		return
	}
	dc.DrawImageEx(img, gg.DrawImageOptions{
		X: pos.X, Y: pos.Y,
		Interpolation: gg.InterpNearest,
		Opacity:       1,
	})
}

func drawShape(dc *gg.Context, el *template.Element, pos template.Position, color gg.RGBA) {
	if el.Shape == nil {
		return
	}
	dc.SetColor(color.Color())
	sp := el.Shape

	switch sp.Kind {
	case template.ShapeRect:
		dc.DrawRectangle(pos.X, pos.Y, sp.Width, sp.Height)
	case template.ShapeCircle:
		dc.DrawCircle(pos.X, pos.Y, sp.Radius)
	case template.ShapeLine:
		dc.DrawLine(pos.X, pos.Y, sp.X2, sp.Y2)
		dc.SetLineWidth(1)
		_ = dc.Stroke()
		return
	default:
		return
	}

	if el.Style.Filled {
		_ = dc.Fill()
	} else {
		dc.SetLineWidth(1)
		_ = dc.Stroke()
	}
}
