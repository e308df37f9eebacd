// Package icons loads and caches the image assets elements draw: static
// icons by path and weather icon sets keyed by condition code. All decode
// work happens on first use; the steady-state render loop only indexes
// into cached frames.
package icons

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
)

// frameInterval is the playback rate for animated weather icons.
const frameInterval = 150 * time.Millisecond

type weatherSet struct {
	frames []*gg.ImageBuf
	static *gg.ImageBuf
}

// Library is a decode-once icon cache. Not safe for concurrent use; it is
// owned by a single render session.
type Library struct {
	baseDir string
	static  map[string]*gg.ImageBuf
	weather map[int]*weatherSet
	failed  map[string]bool
}

func NewLibrary(baseDir string) *Library {
	return &Library{
		baseDir: baseDir,
		static:  make(map[string]*gg.ImageBuf),
		weather: make(map[int]*weatherSet),
		failed:  make(map[string]bool),
	}
}

// Static returns the cached image for a path, loading it on first use.
// Failures are remembered so a missing asset is not re-stat'd every frame.
func (l *Library) Static(path string) (*gg.ImageBuf, error) {
	if path == "" {
		return nil, fmt.Errorf("empty icon path")
	}
	if img, ok := l.static[path]; ok {
		return img, nil
	}
	if l.failed[path] {
		return nil, fmt.Errorf("icon %s previously failed to load", path)
	}

	full := path
	if !filepath.IsAbs(full) && l.baseDir != "" {
		full = filepath.Join(l.baseDir, path)
	}
	img, err := gg.LoadImage(full)
	if err != nil {
		l.failed[path] = true
		return nil, fmt.Errorf("loading icon %s: %w", full, err)
	}
	l.static[path] = img
	return img, nil
}

// Weather returns the frame to draw for a condition code. Animated sets
// live in weather/<code>/ as sorted PNG frames; a static weather/<code>.png
// is the fallback when the set is missing or animation is off. When both
// are missing the caller skips the element for this frame.
func (l *Library) Weather(condition int, animated bool, elapsed time.Duration) (*gg.ImageBuf, error) {
	set, ok := l.weather[condition]
	if !ok {
		set = l.loadWeatherSet(condition)
		l.weather[condition] = set
	}

	if animated && len(set.frames) > 0 {
		idx := int(elapsed/frameInterval) % len(set.frames)
		return set.frames[idx], nil
	}
	if set.static != nil {
		return set.static, nil
	}
	if len(set.frames) > 0 {
		return set.frames[0], nil
	}
	return nil, fmt.Errorf("no icon for weather condition %d", condition)
}

func (l *Library) loadWeatherSet(condition int) *weatherSet {
	set := &weatherSet{}
	dir := filepath.Join(l.baseDir, "weather", fmt.Sprint(condition))

	entries, err := os.ReadDir(dir)
	if err == nil {
		var names []string
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == ".png" {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			img, err := gg.LoadImage(filepath.Join(dir, name))
			if err != nil {
				log.Warnf("skipping weather frame %s: %v", name, err)
				continue
			}
			set.frames = append(set.frames, img)
		}
	}

	staticPath := filepath.Join(l.baseDir, "weather", fmt.Sprintf("%d.png", condition))
	if img, err := gg.LoadImage(staticPath); err == nil {
		set.static = img
	}

	if len(set.frames) == 0 && set.static == nil {
		log.Warnf("weather condition %d has no icon assets under %s", condition, l.baseDir)
	}
	return set
}
