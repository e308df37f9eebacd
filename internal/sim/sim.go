// Package sim renders frames into a terminal with tcell, two pixels per
// character cell using the upper-half-block glyph. It exists so templates
// can be previewed at full cadence without matrix hardware attached.
package sim

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matjam/ledsign/internal/engine"
)

// Simulator is a FrameSink that paints frames into the terminal.
type Simulator struct {
	screen tcell.Screen
	done   chan struct{}
}

func New() (*Simulator, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.Clear()

	s := &Simulator{
		screen: screen,
		done:   make(chan struct{}),
	}
	go s.pollEvents()
	return s, nil
}

// Done is closed when the user quits the simulator (q, ESC or Ctrl-C).
func (s *Simulator) Done() <-chan struct{} {
	return s.done
}

func (s *Simulator) pollEvents() {
	for {
		ev := s.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape,
				ev.Key() == tcell.KeyCtrlC,
				ev.Rune() == 'q':
				close(s.done)
				return
			}
		case *tcell.EventResize:
			s.screen.Sync()
		case nil:
			return
		}
	}
}

// Publish draws the frame. Dual frames stack with a one-row gap between
// the panels, matching the physical arrangement.
func (s *Simulator) Publish(frame *engine.Frame) error {
	s.drawPanel(frame.Display1, 0)
	if frame.Display2 != nil {
		s.drawPanel(frame.Display2, engine.DisplayHeight/2+1)
	}
	s.screen.Show()
	return nil
}

// drawPanel maps two frame rows onto one terminal row: the upper pixel is
// the glyph foreground, the lower the background. Frame bytes are in
// hardware order (blue first), so the channels are unswapped for display.
func (s *Simulator) drawPanel(buf []byte, originRow int) {
	if len(buf) != engine.FrameSize {
		return
	}
	for y := 0; y < engine.DisplayHeight; y += 2 {
		for x := 0; x < engine.DisplayWidth; x++ {
			top := pixelAt(buf, x, y)
			bottom := pixelAt(buf, x, y+1)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			s.screen.SetContent(x, originRow+y/2, '▀', nil, style)
		}
	}
}

func pixelAt(buf []byte, x, y int) tcell.Color {
	i := (y*engine.DisplayWidth + x) * engine.BytesPerPixel
	b, g, r := buf[i], buf[i+1], buf[i+2]
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (s *Simulator) Close() {
	s.screen.Fini()
}
