package engine

import (
	"math"
	"time"

	"github.com/gogpu/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/matjam/ledsign/internal/engine/background"
	"github.com/matjam/ledsign/internal/template"
)

// animState is the per-element animation record, created lazily on the
// first render of an animated element and kept until the session resets.
type animState struct {
	start   time.Time
	last    time.Time
	x, y    float64
	vx, vy  float64
	bounces int

	particles []*background.Particle
	nextBurst time.Time
}

// dvdPalette recolors a dvd-style logo per bounce when Recolor is set,
// indexed by bounce count.
var dvdPalette = []gg.RGBA{
	{R: 1, G: 1, B: 1, A: 1},
	{R: 1, G: 0.2, B: 0.2, A: 1},
	{R: 0.2, G: 1, B: 0.3, A: 1},
	{R: 0.25, G: 0.5, B: 1, A: 1},
	{R: 1, G: 0.9, B: 0.2, A: 1},
	{R: 1, G: 0.4, B: 0.9, A: 1},
	{R: 0.3, G: 1, B: 1, A: 1},
}

const defaultDVDSpeed = 18.0 // pixels per second

// animate advances the element's animation state and returns the position
// to draw at plus an optional color override. canvasH is the full working
// height: the unified canvas in dual mode, so a dvd logo roams across
// both panels as one region. elW/elH are the element's drawn extents,
// used so the dvd bounding box never clips the glyph.
func (s *Session) animate(el *template.Element, canvasW, canvasH, elW, elH float64) (template.Position, *gg.RGBA) {
	pos := el.Position
	if !el.Animated() {
		return pos, nil
	}
	a := el.Animation
	now := s.clock.Now()

	st, ok := s.anims[el.ID]
	if !ok {
		st = &animState{start: now, last: now, x: pos.X, y: pos.Y}
		s.anims[el.ID] = st
	}
	elapsed := now.Sub(st.start).Seconds()

	switch a.Type {
	case template.AnimationDVD:
		return s.animateDVD(el, st, now, canvasW, canvasH, elW, elH)

	case template.AnimationBounce:
		speed := a.Speed
		if speed <= 0 {
			speed = 0.5
		}
		amp := a.Amplitude
		if amp <= 0 {
			amp = 4
		}
		pos.Y += amp * math.Sin(2*math.Pi*speed*elapsed)
		return pos, nil

	case template.AnimationSlide:
		speed := a.Speed
		if speed <= 0 {
			speed = 10
		}
		if a.Direction == "reverse" {
			speed = -speed
		}
		pos.X += speed * elapsed
		return pos, nil

	case template.AnimationRainbow:
		speed := a.Speed
		if speed <= 0 {
			speed = 1
		}
		hueRange := a.HueRange
		if hueRange <= 0 {
			hueRange = 360
		}
		hue := math.Mod(elapsed*speed*60, hueRange)
		c := colorful.Hsl(hue, 1.0, 0.5)
		return pos, &gg.RGBA{R: c.R, G: c.G, B: c.B, A: 1}

	case template.AnimationFireworks:
		s.animateElementBurst(el, st, now)
		return pos, nil
	}

	return pos, nil
}

func (s *Session) animateDVD(el *template.Element, st *animState, now time.Time, canvasW, canvasH, elW, elH float64) (template.Position, *gg.RGBA) {
	a := el.Animation
	if st.vx == 0 && st.vy == 0 {
		speed := a.Speed
		if speed <= 0 {
			speed = defaultDVDSpeed
		}
		// Constant magnitude on a diagonal; only the signs ever change.
		st.vx = speed * math.Sqrt2 / 2
		st.vy = speed * math.Sqrt2 / 2
	}

	dt := now.Sub(st.last).Seconds()
	st.last = now
	if dt > background.MaxDelta {
		dt = background.MaxDelta
	}
	if dt > 0 {
		st.x += st.vx * dt
		st.y += st.vy * dt

		maxX := canvasW - elW
		maxY := canvasH - elH
		if st.x < 0 {
			st.x = -st.x
			st.vx = -st.vx
			st.bounces++
		} else if st.x > maxX {
			st.x = 2*maxX - st.x
			st.vx = -st.vx
			st.bounces++
		}
		if st.y < 0 {
			st.y = -st.y
			st.vy = -st.vy
			st.bounces++
		} else if st.y > maxY {
			st.y = 2*maxY - st.y
			st.vy = -st.vy
			st.bounces++
		}
	}

	pos := template.Position{X: st.x, Y: st.y}
	if a.Recolor {
		c := dvdPalette[st.bounces%len(dvdPalette)]
		return pos, &c
	}
	return pos, nil
}

// animateElementBurst ages an attached firework burst with the same
// physics as the background effect, reseeding at the element's position
// when the previous burst has fully burned out.
func (s *Session) animateElementBurst(el *template.Element, st *animState, now time.Time) {
	a := el.Animation

	dt := now.Sub(st.last).Seconds()
	st.last = now
	if dt > background.MaxDelta {
		dt = background.MaxDelta
	}

	alive := st.particles[:0]
	for _, pt := range st.particles {
		pt.X += pt.VX * dt
		pt.Y += pt.VY * dt
		pt.VY += 18 * dt
		pt.Life -= dt
		if pt.Life <= 0 {
			s.pool.Release(pt)
			continue
		}
		pt.Opacity = pt.Life / pt.MaxLife
		alive = append(alive, pt)
	}
	for i := len(alive); i < len(st.particles); i++ {
		st.particles[i] = nil
	}
	st.particles = alive

	if len(st.particles) > 0 || now.Before(st.nextBurst) {
		return
	}

	interval := 1.5
	if a.Speed > 0 {
		interval = 1 / a.Speed
	}
	st.nextBurst = now.Add(time.Duration(interval * float64(time.Second)))

	count := int(a.Amplitude)
	if count <= 0 {
		count = 16
	}
	color := parseElementColor(el, gg.RGBA{R: 1, G: 0.8, B: 0.2, A: 1})
	for i := 0; i < count; i++ {
		angle := (2*math.Pi/float64(count))*float64(i) + (s.rng.Float64()-0.5)*0.4
		speed := 6 + s.rng.Float64()*14
		life := 0.6 + s.rng.Float64()*0.9

		pt := s.pool.Acquire()
		pt.X = el.Position.X
		pt.Y = el.Position.Y
		pt.VX = math.Cos(angle) * speed
		pt.VY = math.Sin(angle) * speed
		pt.Color = color
		pt.Life = life
		pt.MaxLife = life
		pt.Opacity = 1
		st.particles = append(st.particles, pt)
	}
}

// BounceCount reports the accumulated wall contacts for an element's dvd
// animation, zero if no state exists.
func (s *Session) BounceCount(elementID string) int {
	if st, ok := s.anims[elementID]; ok {
		return st.bounces
	}
	return 0
}

func parseElementColor(el *template.Element, fallback gg.RGBA) gg.RGBA {
	if el.Style.Color == "" {
		return fallback
	}
	return gg.Hex(el.Style.Color)
}
