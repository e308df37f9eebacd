package template

type BackgroundType string

const (
	BackgroundSolid     BackgroundType = "solid"
	BackgroundGradient  BackgroundType = "gradient"
	BackgroundFireworks BackgroundType = "fireworks"
	BackgroundBubbles   BackgroundType = "bubbles"
	BackgroundSnow      BackgroundType = "snow"
	BackgroundStars     BackgroundType = "stars"
	BackgroundMatrix    BackgroundType = "matrix"
	BackgroundPipes     BackgroundType = "pipes"
	BackgroundFishtank  BackgroundType = "fishtank"
	BackgroundGIF       BackgroundType = "gif"
)

// BackgroundConfig is a tagged union: Type names the active variant and
// exactly one of the parameter pointers is expected to be populated. The
// engine switches exhaustively on Type and treats a missing payload as an
// inert effect rather than an error.
type BackgroundConfig struct {
	Type BackgroundType `json:"type"`

	Solid     *SolidParams     `json:"solid,omitempty"`
	Gradient  *GradientParams  `json:"gradient,omitempty"`
	Fireworks *FireworksParams `json:"fireworks,omitempty"`
	Bubbles   *DriftParams     `json:"bubbles,omitempty"`
	Snow      *DriftParams     `json:"snow,omitempty"`
	Stars     *StarsParams     `json:"stars,omitempty"`
	Matrix    *MatrixParams    `json:"matrix,omitempty"`
	Pipes     *PipesParams     `json:"pipes,omitempty"`
	Fishtank  *FishtankParams  `json:"fishtank,omitempty"`
	GIF       *GIFParams       `json:"gif,omitempty"`
}

// SolidBackground wraps a single color in a config, used as the legacy
// fallback when a template carries only the old background color field.
func SolidBackground(color string) *BackgroundConfig {
	return &BackgroundConfig{
		Type:  BackgroundSolid,
		Solid: &SolidParams{Color: color},
	}
}

type SolidParams struct {
	Color string `json:"color"`
}

type GradientParams struct {
	Colors    []string `json:"colors"`
	Direction string   `json:"direction,omitempty"` // "horizontal", "vertical" or "radial"
	Speed     float64  `json:"speed,omitempty"`     // phase units per second
	Cyclic    bool     `json:"cyclic,omitempty"`
}

type FireworksParams struct {
	Frequency     float64  `json:"frequency,omitempty"`     // bursts per second
	ParticleCount int      `json:"particleCount,omitempty"` // particles per burst
	Colors        []string `json:"colors,omitempty"`
}

// DriftParams covers both bubbles (rising) and snow (falling); the two
// effects are the same wrap rules mirrored vertically.
type DriftParams struct {
	Count   int     `json:"count,omitempty"`
	Speed   float64 `json:"speed,omitempty"` // pixels per second
	Color   string  `json:"color,omitempty"`
	SizeMin float64 `json:"sizeMin,omitempty"`
	SizeMax float64 `json:"sizeMax,omitempty"`
}

type StarsParams struct {
	Count         int     `json:"count,omitempty"`
	Color         string  `json:"color,omitempty"`
	MinBrightness float64 `json:"minBrightness,omitempty"` // 0..1
	MaxBrightness float64 `json:"maxBrightness,omitempty"` // 0..1
	TwinkleSpeed  float64 `json:"twinkleSpeed,omitempty"`  // radians per second
}

type MatrixParams struct {
	Color       string  `json:"color,omitempty"`
	SpeedMin    float64 `json:"speedMin,omitempty"` // pixels per second
	SpeedMax    float64 `json:"speedMax,omitempty"`
	TrailLength int     `json:"trailLength,omitempty"`
	Density     float64 `json:"density,omitempty"` // fraction of columns active, 0..1
}

type PipesParams struct {
	MaxPipes        int      `json:"maxPipes,omitempty"`
	TurnProbability float64  `json:"turnProbability,omitempty"`
	CellSize        int      `json:"cellSize,omitempty"`
	GrowthRate      float64  `json:"growthRate,omitempty"`  // cells per second
	Life            int      `json:"life,omitempty"`        // growth steps before a pipe stops
	MaxSegments     int      `json:"maxSegments,omitempty"` // 0 = unlimited
	Persist         bool     `json:"persist,omitempty"`     // keep stopped pipes and fade them out
	FadeTime        float64  `json:"fadeTime,omitempty"`    // seconds, with Persist
	Wrap            bool     `json:"wrap,omitempty"`        // wrap at edges instead of turning
	Colors          []string `json:"colors,omitempty"`
}

type FishtankParams struct {
	FishCount   int    `json:"fishCount,omitempty"`
	BubbleCount int    `json:"bubbleCount,omitempty"`
	PlantCount  int    `json:"plantCount,omitempty"`
	WaterColor  string `json:"waterColor,omitempty"`
}

type GIFParams struct {
	Path       string  `json:"path"`
	Speed      float64 `json:"speed,omitempty"`     // playback rate multiplier
	Placement  string  `json:"placement,omitempty"` // "stretch", "fit", "crop" or "tile"
	SkipBlank  bool    `json:"skipBlank,omitempty"`
	BlankRatio float64 `json:"blankRatio,omitempty"` // 0..1, default 0.95
}
