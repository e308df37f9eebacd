package background

import (
	"image"
	"image/draw"
	"image/gif"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"github.com/matjam/ledsign/internal/template"
)

// minFrameDelay floors the effective per-frame delay so GIFs with zero or
// tiny encoded delays do not strobe.
const minFrameDelay = 0.02 // seconds

type gifFrame struct {
	img   *gg.ImageBuf
	delay float64
	blank bool
}

// GIF plays a decoded animated image. All decode work happens once in
// Init; Update and Render never touch the filesystem.
type GIF struct {
	frames    []gifFrame
	placement string
	srcW      int
	srcH      int

	current int
	acc     float64
	ready   bool
}

func (g *GIF) Init(cfg *template.BackgroundConfig) {
	*g = GIF{}
	p := cfg.GIF
	if p == nil || p.Path == "" {
		return
	}

	f, err := os.Open(p.Path)
	if err != nil {
		log.Warnf("gif background: cannot open %s: %v", p.Path, err)
		return
	}
	defer f.Close()

	decoded, err := gif.DecodeAll(f)
	if err != nil {
		log.Warnf("gif background: cannot decode %s: %v", p.Path, err)
		return
	}
	if len(decoded.Image) == 0 {
		return
	}

	speed := p.Speed
	if speed <= 0 {
		speed = 1
	}
	blankRatio := p.BlankRatio
	if blankRatio <= 0 || blankRatio > 1 {
		blankRatio = 0.95
	}

	bounds := decoded.Image[0].Bounds()
	g.srcW = decoded.Config.Width
	g.srcH = decoded.Config.Height
	if g.srcW == 0 || g.srcH == 0 {
		g.srcW, g.srcH = bounds.Dx(), bounds.Dy()
	}

	// Flatten partial frames onto an accumulator so disposal modes never
	// have to be handled during playback.
	accum := image.NewRGBA(image.Rect(0, 0, g.srcW, g.srcH))
	for i, frame := range decoded.Image {
		draw.Draw(accum, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		full := image.NewRGBA(accum.Bounds())
		copy(full.Pix, accum.Pix)

		delay := float64(0)
		if i < len(decoded.Delay) {
			delay = float64(decoded.Delay[i]) / 100 // centiseconds
		}
		delay /= speed
		if delay < minFrameDelay {
			delay = minFrameDelay
		}

		g.frames = append(g.frames, gifFrame{
			img:   gg.ImageBufFromImage(full),
			delay: delay,
			blank: p.SkipBlank && blankFraction(full) >= blankRatio,
		})
	}

	g.placement = p.Placement
	if g.placement == "" {
		g.placement = "stretch"
	}

	// A fully blank GIF would make frame advance spin; disable skipping.
	allBlank := true
	for _, fr := range g.frames {
		if !fr.blank {
			allBlank = false
			break
		}
	}
	if allBlank {
		for i := range g.frames {
			g.frames[i].blank = false
		}
	}
	g.ready = true
}

// blankFraction reports the fraction of pixels that are near-black or
// near-transparent.
func blankFraction(img *image.RGBA) float64 {
	total := len(img.Pix) / 4
	if total == 0 {
		return 1
	}
	blank := 0
	for i := 0; i < len(img.Pix); i += 4 {
		r, gr, b, a := img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
		if a < 16 || (r < 16 && gr < 16 && b < 16) {
			blank++
		}
	}
	return float64(blank) / float64(total)
}

func (g *GIF) Update(dt float64) {
	if !g.ready || len(g.frames) < 2 || !deltaOK(dt) {
		return
	}
	g.acc += dt
	for g.acc >= g.frames[g.current].delay {
		g.acc -= g.frames[g.current].delay
		g.advance()
	}
}

func (g *GIF) advance() {
	for i := 0; i < len(g.frames); i++ {
		g.current = (g.current + 1) % len(g.frames)
		if !g.frames[g.current].blank {
			return
		}
	}
}

func (g *GIF) Render(dc *gg.Context, width, height int, brightness int) {
	if !g.ready || len(g.frames) == 0 {
		return
	}
	frame := g.frames[g.current].img
	w, h := float64(width), float64(height)
	sw, sh := float64(g.srcW), float64(g.srcH)

	switch g.placement {
	case "fit":
		scale := min(w/sw, h/sh)
		dw, dh := sw*scale, sh*scale
		dc.DrawImageEx(frame, gg.DrawImageOptions{
			X: (w - dw) / 2, Y: (h - dh) / 2,
			DstWidth: dw, DstHeight: dh,
			Interpolation: gg.InterpNearest,
			Opacity:       1,
		})
	case "crop":
		scale := max(w/sw, h/sh)
		dw, dh := sw*scale, sh*scale
		dc.DrawImageEx(frame, gg.DrawImageOptions{
			X: (w - dw) / 2, Y: (h - dh) / 2,
			DstWidth: dw, DstHeight: dh,
			Interpolation: gg.InterpNearest,
			Opacity:       1,
		})
	case "tile":
		for y := 0.0; y < h; y += sh {
			for x := 0.0; x < w; x += sw {
				dc.DrawImageEx(frame, gg.DrawImageOptions{
					X: x, Y: y,
					Interpolation: gg.InterpNearest,
					Opacity:       1,
				})
			}
		}
	default: // stretch
		dc.DrawImageEx(frame, gg.DrawImageOptions{
			X: 0, Y: 0,
			DstWidth: w, DstHeight: h,
			Interpolation: gg.InterpNearest,
			Opacity:       1,
		})
	}
}

// Frame reports the current playback frame index.
func (g *GIF) Frame() int {
	return g.current
}

func (g *GIF) Cleanup() {
	g.frames = nil
	g.ready = false
}
