// Package sink defines where finished frames go. The engine itself only
// guarantees exact-size buffers; a FrameSink carries them to hardware, a
// simulator, or nowhere. Real transports (MQTT, WebSocket) implement this
// interface outside the repository.
package sink

import (
	"fmt"
	"os"

	"github.com/matjam/ledsign/internal/engine"
)

// FrameSink consumes composed frames. Publish is called once per render
// tick from the manager's loop goroutine.
type FrameSink interface {
	Publish(frame *engine.Frame) error
	Close()
}

// Discard drops every frame. Used when the daemon runs headless with no
// transport attached.
type Discard struct{}

func (Discard) Publish(*engine.Frame) error { return nil }
func (Discard) Close()                      {}

// Writer streams raw frame bytes to a file, FIFO, or character device.
// Display1 is written first, then Display2 when present, so a dual frame
// arrives as one 32768 byte record.
type Writer struct {
	f *os.File
}

func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("opening frame output %s: %w", path, err)
	}
	return &Writer{f: f}, nil
}

func (w *Writer) Publish(frame *engine.Frame) error {
	if _, err := w.f.Write(frame.Display1); err != nil {
		return err
	}
	if len(frame.Display2) > 0 {
		if _, err := w.f.Write(frame.Display2); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Close() {
	w.f.Close()
}
