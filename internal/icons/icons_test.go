package icons

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestStaticLoadsAndCaches(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "sun.png"), color.RGBA{R: 255, G: 200, A: 255})

	l := NewLibrary(dir)
	img1, err := l.Static("sun.png")
	if err != nil {
		t.Fatal(err)
	}
	img2, err := l.Static("sun.png")
	if err != nil {
		t.Fatal(err)
	}
	if img1 != img2 {
		t.Fatal("second load returned a different image, cache miss")
	}
}

func TestStaticRemembersFailures(t *testing.T) {
	l := NewLibrary(t.TempDir())
	if _, err := l.Static("missing.png"); err == nil {
		t.Fatal("missing icon loaded")
	}
	if !l.failed["missing.png"] {
		t.Fatal("failure not memoized")
	}
	if _, err := l.Static("missing.png"); err == nil {
		t.Fatal("memoized failure returned an image")
	}
}

func TestStaticRejectsEmptyPath(t *testing.T) {
	l := NewLibrary(t.TempDir())
	if _, err := l.Static(""); err == nil {
		t.Fatal("empty path accepted")
	}
}

func TestWeatherAnimatedFrameSelection(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "weather", "3", "00.png"), color.RGBA{R: 255, A: 255})
	writePNG(t, filepath.Join(dir, "weather", "3", "01.png"), color.RGBA{G: 255, A: 255})

	l := NewLibrary(dir)
	f0, err := l.Weather(3, true, 0)
	if err != nil {
		t.Fatal(err)
	}
	f1, err := l.Weather(3, true, 150*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if f0 == f1 {
		t.Fatal("frame did not advance after one interval")
	}

	// One full cycle returns to the first frame.
	f2, err := l.Weather(3, true, 300*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if f2 != f0 {
		t.Fatal("frame cycle did not wrap")
	}
}

func TestWeatherStaticFallback(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "weather", "7.png"), color.RGBA{B: 255, A: 255})

	l := NewLibrary(dir)
	if _, err := l.Weather(7, true, 0); err != nil {
		t.Fatalf("static fallback failed: %v", err)
	}
}

func TestWeatherMissingIsError(t *testing.T) {
	l := NewLibrary(t.TempDir())
	if _, err := l.Weather(99, false, 0); err == nil {
		t.Fatal("missing weather assets produced an image")
	}
}
