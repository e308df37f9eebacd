package engine

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/matjam/ledsign/internal/template"
)

func newTestSession() (*Session, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	s := NewSession(Options{
		Clock:  clock,
		Seed:   42,
		Seeded: true,
	})
	return s, clock
}

func pixel(buf []byte, x, y int) []byte {
	i := (y*DisplayWidth + x) * BytesPerPixel
	return buf[i : i+4]
}

func TestSolidBlackHalfBrightness(t *testing.T) {
	s, _ := newTestSession()
	defer s.Cleanup()

	tpl := &template.Template{
		ID:         "black",
		Background: "#000000",
		Brightness: 50,
	}

	frame, err := s.RenderFrame(tpl, nil, TargetAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(frame.Display1) != FrameSize {
		t.Fatalf("frame is %d bytes, want %d", len(frame.Display1), FrameSize)
	}
	if frame.Display2 != nil {
		t.Fatal("single mode produced a second buffer")
	}

	for i := 0; i+3 < len(frame.Display1); i += BytesPerPixel {
		if frame.Display1[i] != 0 || frame.Display1[i+1] != 0 || frame.Display1[i+2] != 0 {
			t.Fatalf("pixel %d not black: %v", i/4, frame.Display1[i:i+4])
		}
		if frame.Display1[i+3] != 255 {
			t.Fatalf("pixel %d alpha %d, want 255", i/4, frame.Display1[i+3])
		}
	}
}

func TestSolidRedComesOutInBluePosition(t *testing.T) {
	s, _ := newTestSession()
	defer s.Cleanup()

	tpl := &template.Template{
		ID:               "red",
		BackgroundConfig: template.SolidBackground("#ff0000"),
	}

	frame, err := s.RenderFrame(tpl, nil, TargetAll)
	if err != nil {
		t.Fatal(err)
	}

	p := pixel(frame.Display1, 64, 16)
	if p[0] != 0 || p[1] != 0 || p[2] != 255 || p[3] != 255 {
		t.Fatalf("got pixel %v, want [0 0 255 255]", p)
	}
}

func TestDualFrameSizes(t *testing.T) {
	s, _ := newTestSession()
	defer s.Cleanup()

	tpl := &template.Template{
		ID:          "dual",
		DisplayMode: template.DisplayModeDual,
		Background:  "#000000",
	}

	frame, err := s.RenderFrame(tpl, nil, TargetAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(frame.Display1) != FrameSize || len(frame.Display2) != FrameSize {
		t.Fatalf("dual frame sizes %d, %d, want %d each", len(frame.Display1), len(frame.Display2), FrameSize)
	}
}

func dualRectTemplate() *template.Template {
	return &template.Template{
		ID:          "dualrect",
		DisplayMode: template.DisplayModeDual,
		Background:  "#000000",
		Elements: []template.Element{
			{
				ID:       "box",
				Type:     template.ElementShape,
				Position: template.Position{X: 10, Y: 40},
				Visible:  true,
				Style:    template.Style{Color: "#ffffff", Filled: true},
				Shape:    &template.ShapeSpec{Kind: template.ShapeRect, Width: 6, Height: 6},
			},
		},
	}
}

func TestDualElementLandsOnLowerPanel(t *testing.T) {
	s, _ := newTestSession()
	defer s.Cleanup()

	frame, err := s.RenderFrame(dualRectTemplate(), nil, TargetAll)
	if err != nil {
		t.Fatal(err)
	}

	// Unified y=41 is display2 local y=9, inside the 6x6 box at (10, 40).
	p := pixel(frame.Display2, 12, 9)
	if p[0] != 255 || p[1] != 255 || p[2] != 255 {
		t.Fatalf("display2 pixel %v, want white", p)
	}

	// The top panel must not show the box.
	p = pixel(frame.Display1, 12, 9)
	if p[0] != 0 || p[1] != 0 || p[2] != 0 {
		t.Fatalf("display1 pixel %v, want black", p)
	}
}

func TestTargetDisplay2ShiftsIntoLocalSpace(t *testing.T) {
	s, _ := newTestSession()
	defer s.Cleanup()

	frame, err := s.RenderFrame(dualRectTemplate(), nil, TargetDisplay2)
	if err != nil {
		t.Fatal(err)
	}
	if len(frame.Display1) != FrameSize {
		t.Fatalf("frame is %d bytes, want %d", len(frame.Display1), FrameSize)
	}
	if frame.Display2 != nil {
		t.Fatal("single-panel target produced a second buffer")
	}

	p := pixel(frame.Display1, 12, 9)
	if p[0] != 255 || p[1] != 255 || p[2] != 255 {
		t.Fatalf("pixel %v, want white", p)
	}
}

func TestTargetDisplay1OmitsLowerBand(t *testing.T) {
	s, _ := newTestSession()
	defer s.Cleanup()

	frame, err := s.RenderFrame(dualRectTemplate(), nil, TargetDisplay1)
	if err != nil {
		t.Fatal(err)
	}

	// The box lives entirely in the lower band; the top panel stays black.
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			p := pixel(frame.Display1, x, y)
			if p[0] != 0 || p[1] != 0 || p[2] != 0 {
				t.Fatalf("pixel (%d,%d) = %v, want black", x, y, p)
			}
		}
	}
}

func TestRenderImageSkipsOutputPass(t *testing.T) {
	s, _ := newTestSession()
	defer s.Cleanup()

	tpl := &template.Template{
		ID:               "red",
		BackgroundConfig: template.SolidBackground("#ff0000"),
		Brightness:       50,
	}

	img := s.RenderImage(tpl, nil)
	b := img.Bounds()
	if b.Dx() != DisplayWidth || b.Dy() != DisplayHeight {
		t.Fatalf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), DisplayWidth, DisplayHeight)
	}

	// Natural channel order and full intensity: red stays in the red slot.
	i := (16*DisplayWidth + 64) * 4
	if img.Pix[i] != 255 || img.Pix[i+2] != 0 {
		t.Fatalf("pixel %v, want red first", img.Pix[i:i+4])
	}
}

func TestRenderAdvancesWithClock(t *testing.T) {
	s, clock := newTestSession()
	defer s.Cleanup()

	tpl := &template.Template{
		ID: "grad",
		BackgroundConfig: &template.BackgroundConfig{
			Type: template.BackgroundGradient,
			Gradient: &template.GradientParams{
				Colors: []string{"#ff0000", "#0000ff"},
				Speed:  1,
			},
		},
	}

	if _, err := s.RenderFrame(tpl, nil, TargetAll); err != nil {
		t.Fatal(err)
	}
	clock.Advance(50 * time.Millisecond)
	if _, err := s.RenderFrame(tpl, nil, TargetAll); err != nil {
		t.Fatal(err)
	}

	entry := s.backgrounds[tpl.ID]
	phase := entry.gen.(interface{ Phase() float64 }).Phase()
	if phase < 0.049 || phase > 0.051 {
		t.Fatalf("phase %v after 50ms at speed 1, want 0.05", phase)
	}
}
