// Package template defines the data model the render engine consumes: a
// Template describing a background effect and a set of positioned elements.
// Templates are plain JSON-serializable values; all animation and effect
// state is tracked externally by the engine, keyed by template and element
// ids, so a Template never mutates during rendering.
package template

import (
	"encoding/json"
	"fmt"
	"os"
)

type DisplayMode string

const (
	DisplayModeSingle DisplayMode = "single"
	DisplayModeDual   DisplayMode = "dual"
)

type ElementType string

const (
	ElementText  ElementType = "text"
	ElementData  ElementType = "data"
	ElementIcon  ElementType = "icon"
	ElementShape ElementType = "shape"
)

type AnimationType string

const (
	AnimationNone      AnimationType = "none"
	AnimationDVD       AnimationType = "dvd"
	AnimationBounce    AnimationType = "bounce"
	AnimationSlide     AnimationType = "slide"
	AnimationRainbow   AnimationType = "rainbow"
	AnimationFireworks AnimationType = "fireworks"
)

type ShapeKind string

const (
	ShapeRect   ShapeKind = "rect"
	ShapeCircle ShapeKind = "circle"
	ShapeLine   ShapeKind = "line"
)

// Position is a pixel coordinate in the unified canvas space. Y runs
// 0..31 in single mode and 0..63 across both panels in dual mode.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Style struct {
	Color    string  `json:"color,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	FontPath string  `json:"fontPath,omitempty"`
	Filled   bool    `json:"filled,omitempty"`
}

type Animation struct {
	Type      AnimationType `json:"type"`
	Speed     float64       `json:"speed,omitempty"`
	Amplitude float64       `json:"amplitude,omitempty"`
	Direction string        `json:"direction,omitempty"` // slide: "normal" or "reverse"
	Recolor   bool          `json:"recolor,omitempty"`   // dvd: cycle palette on bounce
	HueRange  float64       `json:"hueRange,omitempty"`  // rainbow: degrees, default 360
}

type IconSpec struct {
	Src       string `json:"src,omitempty"`
	Condition int    `json:"condition,omitempty"` // weather condition code
	Animated  bool   `json:"animated,omitempty"`
}

type ShapeSpec struct {
	Kind   ShapeKind `json:"kind"`
	Width  float64   `json:"width,omitempty"`
	Height float64   `json:"height,omitempty"`
	Radius float64   `json:"radius,omitempty"`
	X2     float64   `json:"x2,omitempty"` // line endpoint
	Y2     float64   `json:"y2,omitempty"`
}

// Element is one drawable item. Type selects which payload fields are
// meaningful; the rest are left at their zero values.
type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	Position Position    `json:"position"`
	Z        int         `json:"z,omitempty"`
	Visible  bool        `json:"visible"`
	Style    Style       `json:"style,omitempty"`

	Animation *Animation `json:"animation,omitempty"`

	// text
	Text string `json:"text,omitempty"`

	// data
	DataSource string `json:"dataSource,omitempty"`
	Format     string `json:"format,omitempty"`
	Timezone   string `json:"timezone,omitempty"`

	// icon
	Icon *IconSpec `json:"icon,omitempty"`

	// shape
	Shape *ShapeSpec `json:"shape,omitempty"`
}

// Animated reports whether the element carries a real animation. Elements
// with no animation object, or type "none", never allocate engine state.
func (e *Element) Animated() bool {
	return e.Animation != nil && e.Animation.Type != AnimationNone && e.Animation.Type != ""
}

// Template is the engine's input value. Background is the legacy single
// color field; BackgroundConfig, when present, takes precedence.
type Template struct {
	ID               string            `json:"id"`
	Name             string            `json:"name,omitempty"`
	DisplayMode      DisplayMode       `json:"displayMode,omitempty"`
	Background       string            `json:"background,omitempty"`
	BackgroundConfig *BackgroundConfig `json:"backgroundConfig,omitempty"`
	Brightness       int               `json:"brightness,omitempty"`
	Elements         []Element         `json:"elements"`
}

// Dual reports whether the template targets two stacked panels.
func (t *Template) Dual() bool {
	return t.DisplayMode == DisplayModeDual
}

// EffectiveBrightness returns the configured brightness clamped to
// [0,100], treating the zero value as full brightness.
func (t *Template) EffectiveBrightness() int {
	if t.Brightness <= 0 {
		return 100
	}
	if t.Brightness > 100 {
		return 100
	}
	return t.Brightness
}

// Load reads and parses a template JSON file.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	if t.ID == "" {
		t.ID = path
	}
	return &t, nil
}
