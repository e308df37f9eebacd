package engine

import (
	"fmt"
	"math"
)

// Hardware geometry. One panel is 128×32 RGBA8888; dual mode stacks two
// panels into a 128×64 unified canvas before splitting.
const (
	DisplayWidth  = 128
	DisplayHeight = 32
	DualHeight    = DisplayHeight * 2
	BytesPerPixel = 4
	FrameSize     = DisplayWidth * DisplayHeight * BytesPerPixel
	DualFrameSize = 2 * FrameSize
)

// applyOutputPass scales R, G and B by brightness/100 and swaps the red
// and blue byte positions, in one in-place pass. The matrix hardware is
// wired BGR, so the swap compensates a fixed channel-order convention.
// Alpha is untouched. The formula is bit-exact:
//
//	out[i]   = round(in[i+2] * f)
//	out[i+1] = round(in[i+1] * f)
//	out[i+2] = round(in[i]   * f)
//	out[i+3] = in[i+3]
func applyOutputPass(buf []byte, brightness int) {
	f := float64(brightness) / 100
	for i := 0; i+3 < len(buf); i += BytesPerPixel {
		r := buf[i]
		buf[i] = byte(math.Round(float64(buf[i+2]) * f))
		buf[i+1] = byte(math.Round(float64(buf[i+1]) * f))
		buf[i+2] = byte(math.Round(float64(r) * f))
	}
}

// splitDual copies the top panel's rows into the first buffer and the
// bottom panel's rows into the second. The outputs are a pure memory
// split of the corrected unified buffer, never recomputed.
func splitDual(unified []byte) (display1, display2 []byte, err error) {
	if len(unified) != DualFrameSize {
		return nil, nil, fmt.Errorf("unified buffer is %d bytes, want %d", len(unified), DualFrameSize)
	}
	display1 = make([]byte, FrameSize)
	display2 = make([]byte, FrameSize)
	copy(display1, unified[:FrameSize])
	copy(display2, unified[FrameSize:])
	return display1, display2, nil
}

// checkFrameSize is the engine's one fatal error class: downstream
// transport assumes exact byte counts, so a short or long frame must
// never leave the compositor.
func checkFrameSize(buf []byte) error {
	if len(buf) != FrameSize {
		return fmt.Errorf("frame buffer is %d bytes, want %d", len(buf), FrameSize)
	}
	return nil
}
