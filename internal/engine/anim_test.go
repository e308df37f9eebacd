package engine

import (
	"math"
	"testing"
	"time"

	"github.com/matjam/ledsign/internal/template"
)

const dvdEpsilon = 1e-9

func dvdElement(x, y float64) *template.Element {
	return &template.Element{
		ID:       "logo",
		Type:     template.ElementShape,
		Position: template.Position{X: x, Y: y},
		Visible:  true,
		Shape:    &template.ShapeSpec{Kind: template.ShapeRect, Width: 4, Height: 4},
		Animation: &template.Animation{
			Type:  template.AnimationDVD,
			Speed: 20,
		},
	}
}

func TestDVDReflectsOffRightWall(t *testing.T) {
	s, clock := newTestSession()
	defer s.Cleanup()

	el := dvdElement(123.5, 10)
	s.animate(el, 128, 32, 4, 4)

	clock.Advance(100 * time.Millisecond)
	pos, _ := s.animate(el, 128, 32, 4, 4)

	v := 20 * math.Sqrt2 / 2
	maxX := 128.0 - 4
	wantX := 2*maxX - (123.5 + v*0.1)
	wantY := 10 + v*0.1

	if math.Abs(pos.X-wantX) > dvdEpsilon {
		t.Errorf("x = %v, want %v", pos.X, wantX)
	}
	if math.Abs(pos.Y-wantY) > dvdEpsilon {
		t.Errorf("y = %v, want %v", pos.Y, wantY)
	}
	if got := s.BounceCount(el.ID); got != 1 {
		t.Errorf("bounce count %d, want 1", got)
	}

	st := s.anims[el.ID]
	if st.vx >= 0 {
		t.Errorf("vx = %v, want negative after reflection", st.vx)
	}
	if math.Abs(math.Abs(st.vx)-v) > dvdEpsilon || math.Abs(st.vy-v) > dvdEpsilon {
		t.Errorf("velocity magnitude changed: vx %v vy %v, want %v", st.vx, st.vy, v)
	}
}

func TestDVDFreeFlightIsLinear(t *testing.T) {
	s, clock := newTestSession()
	defer s.Cleanup()

	el := dvdElement(30, 10)
	s.animate(el, 128, 32, 4, 4)

	v := 20 * math.Sqrt2 / 2
	for i := 1; i <= 5; i++ {
		clock.Advance(100 * time.Millisecond)
		pos, _ := s.animate(el, 128, 32, 4, 4)

		wantX := 30 + v*0.1*float64(i)
		wantY := 10 + v*0.1*float64(i)
		if math.Abs(pos.X-wantX) > dvdEpsilon || math.Abs(pos.Y-wantY) > dvdEpsilon {
			t.Fatalf("step %d: pos (%v, %v), want (%v, %v)", i, pos.X, pos.Y, wantX, wantY)
		}
	}
	if got := s.BounceCount(el.ID); got != 0 {
		t.Errorf("bounce count %d, want 0 in free flight", got)
	}
}

func TestDVDRecolorCyclesPalette(t *testing.T) {
	s, clock := newTestSession()
	defer s.Cleanup()

	el := dvdElement(123.5, 10)
	el.Animation.Recolor = true

	_, c := s.animate(el, 128, 32, 4, 4)
	if c == nil || *c != dvdPalette[0] {
		t.Fatalf("initial color %v, want palette[0]", c)
	}

	clock.Advance(100 * time.Millisecond)
	_, c = s.animate(el, 128, 32, 4, 4)
	if c == nil || *c != dvdPalette[1] {
		t.Fatalf("post-bounce color %v, want palette[1]", c)
	}
}

func TestDVDClampsLargeClockJumps(t *testing.T) {
	s, clock := newTestSession()
	defer s.Cleanup()

	el := dvdElement(30, 10)
	s.animate(el, 128, 32, 4, 4)

	clock.Advance(10 * time.Second)
	pos, _ := s.animate(el, 128, 32, 4, 4)

	// A clock jump integrates at most one MaxDelta step.
	v := 20 * math.Sqrt2 / 2
	wantX := 30 + v*0.1
	if math.Abs(pos.X-wantX) > dvdEpsilon {
		t.Errorf("x = %v after clock jump, want %v", pos.X, wantX)
	}
}

func TestBounceAnimationOscillates(t *testing.T) {
	s, clock := newTestSession()
	defer s.Cleanup()

	el := &template.Element{
		ID:       "bouncy",
		Type:     template.ElementText,
		Position: template.Position{X: 5, Y: 16},
		Visible:  true,
		Text:     "HI",
		Animation: &template.Animation{
			Type:      template.AnimationBounce,
			Speed:     1,
			Amplitude: 4,
		},
	}

	s.animate(el, 128, 32, 10, 7)

	// A quarter period at speed 1 puts the sine at its peak.
	clock.Advance(250 * time.Millisecond)
	pos, _ := s.animate(el, 128, 32, 10, 7)
	if math.Abs(pos.Y-20) > 1e-6 {
		t.Errorf("y = %v at sine peak, want 20", pos.Y)
	}
	if pos.X != 5 {
		t.Errorf("x = %v, bounce must not move horizontally", pos.X)
	}
}

func TestRainbowOverridesColor(t *testing.T) {
	s, clock := newTestSession()
	defer s.Cleanup()

	el := &template.Element{
		ID:       "rgb",
		Type:     template.ElementText,
		Position: template.Position{X: 0, Y: 0},
		Visible:  true,
		Text:     "X",
		Animation: &template.Animation{
			Type:  template.AnimationRainbow,
			Speed: 1,
		},
	}

	s.animate(el, 128, 32, 5, 7)
	clock.Advance(time.Second)
	_, c1 := s.animate(el, 128, 32, 5, 7)
	if c1 == nil {
		t.Fatal("rainbow produced no color override")
	}
	if c1.A != 1 {
		t.Errorf("alpha %v, want 1", c1.A)
	}

	clock.Advance(time.Second)
	_, c2 := s.animate(el, 128, 32, 5, 7)
	if *c1 == *c2 {
		t.Error("hue did not advance between seconds")
	}
}

func TestElementFireworksRespectPool(t *testing.T) {
	s, clock := newTestSession()
	defer s.Cleanup()

	el := &template.Element{
		ID:       "burst",
		Type:     template.ElementText,
		Position: template.Position{X: 64, Y: 16},
		Visible:  true,
		Text:     "!",
		Animation: &template.Animation{
			Type:      template.AnimationFireworks,
			Speed:     0.1, // 10s between bursts, so the burnout is observable
			Amplitude: 12,
		},
	}

	s.animate(el, 128, 32, 5, 7)
	st := s.anims[el.ID]
	if len(st.particles) != 12 {
		t.Fatalf("burst spawned %d particles, want 12", len(st.particles))
	}

	// Burn the burst out; every particle must return to the pool.
	for i := 0; i < 40; i++ {
		clock.Advance(100 * time.Millisecond)
		s.animate(el, 128, 32, 5, 7)
		if len(st.particles) == 0 {
			break
		}
	}
	if len(st.particles) != 0 {
		t.Fatalf("%d particles still alive after burnout window", len(st.particles))
	}
	if s.pool.Len() != 12 {
		t.Errorf("pool holds %d particles, want 12 released", s.pool.Len())
	}
}

func TestResetAnimationsDropsState(t *testing.T) {
	s, clock := newTestSession()
	defer s.Cleanup()

	el := dvdElement(123.5, 10)
	s.animate(el, 128, 32, 4, 4)
	clock.Advance(100 * time.Millisecond)
	s.animate(el, 128, 32, 4, 4)

	if s.BounceCount(el.ID) != 1 {
		t.Fatal("expected one bounce before reset")
	}
	s.ResetAnimations()
	if s.BounceCount(el.ID) != 0 {
		t.Error("animation state survived reset")
	}
}

func TestStaticElementAllocatesNoState(t *testing.T) {
	s, _ := newTestSession()
	defer s.Cleanup()

	el := &template.Element{
		ID:       "plain",
		Type:     template.ElementText,
		Position: template.Position{X: 3, Y: 4},
		Visible:  true,
		Text:     "OK",
	}

	pos, c := s.animate(el, 128, 32, 11, 7)
	if pos != el.Position {
		t.Errorf("position moved to %v", pos)
	}
	if c != nil {
		t.Error("static element produced a color override")
	}
	if len(s.anims) != 0 {
		t.Errorf("%d animation records allocated for a static element", len(s.anims))
	}
}
