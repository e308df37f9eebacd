package background

import (
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/matjam/ledsign/internal/template"
)

type cell struct {
	X, Y int
}

var pipeDirections = [4]cell{
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
}

type pipe struct {
	segments []cell
	dir      int
	life     int
	color    gg.RGBA
	growing  bool
	fade     float64 // remaining fade time once stopped, with Persist
}

// Pipes runs a grid-aligned random walk per pipe. A pipe grows one cell
// per growth tick in its current direction, turning on wall contact or
// with the configured probability; it stops when its life runs out or no
// in-bounds direction remains. Segment capping, wraparound and persist/
// fade-out are config toggles on the same state machine.
type Pipes struct {
	rng *rand.Rand

	maxPipes    int
	turnProb    float64
	cellSize    int
	growthRate  float64
	life        int
	maxSegments int
	persist     bool
	fadeTime    float64
	wrap        bool
	palette     []gg.RGBA

	w, h  float64
	acc   float64
	pipes []*pipe
	ready bool
}

func (p *Pipes) Init(cfg *template.BackgroundConfig) {
	p.pipes = p.pipes[:0]
	p.acc = 0
	p.ready = false
	p.w, p.h = defaultWidth, defaultHeight

	c := cfg.Pipes
	if c == nil {
		return
	}

	p.maxPipes = c.MaxPipes
	if p.maxPipes <= 0 {
		p.maxPipes = 4
	}
	p.turnProb = c.TurnProbability
	if p.turnProb <= 0 {
		p.turnProb = 0.15
	}
	p.cellSize = c.CellSize
	if p.cellSize <= 0 {
		p.cellSize = 2
	}
	p.growthRate = c.GrowthRate
	if p.growthRate <= 0 {
		p.growthRate = 16
	}
	p.life = c.Life
	if p.life <= 0 {
		p.life = 120
	}
	p.maxSegments = c.MaxSegments
	p.persist = c.Persist
	p.fadeTime = c.FadeTime
	if p.fadeTime <= 0 {
		p.fadeTime = 2
	}
	p.wrap = c.Wrap
	p.palette = parsePalette(c.Colors, gg.RGBA{R: 0.2, G: 0.9, B: 0.6, A: 1})
	p.ready = true
}

func (p *Pipes) gridW() int { return int(p.w) / p.cellSize }
func (p *Pipes) gridH() int { return int(p.h) / p.cellSize }

func (p *Pipes) Update(dt float64) {
	if !p.ready || !deltaOK(dt) {
		return
	}

	// Spawn probabilistically while below the cap.
	if p.liveCount() < p.maxPipes && p.rng.Float64() < dt*2 {
		p.spawn()
	}

	p.acc += dt * p.growthRate
	for p.acc >= 1 {
		p.acc--
		for _, pi := range p.pipes {
			if pi.growing {
				p.grow(pi)
			}
		}
	}

	// Age out stopped pipes.
	keep := p.pipes[:0]
	for _, pi := range p.pipes {
		if !pi.growing {
			if !p.persist {
				continue
			}
			pi.fade -= dt
			if pi.fade <= 0 {
				continue
			}
		}
		keep = append(keep, pi)
	}
	for i := len(keep); i < len(p.pipes); i++ {
		p.pipes[i] = nil
	}
	p.pipes = keep
}

func (p *Pipes) liveCount() int {
	n := 0
	for _, pi := range p.pipes {
		if pi.growing {
			n++
		}
	}
	return n
}

func (p *Pipes) spawn() {
	gw, gh := p.gridW(), p.gridH()
	if gw == 0 || gh == 0 {
		return
	}
	pi := &pipe{
		segments: []cell{{p.rng.IntN(gw), p.rng.IntN(gh)}},
		dir:      p.rng.IntN(4),
		life:     p.life,
		color:    p.palette[p.rng.IntN(len(p.palette))],
		growing:  true,
		fade:     p.fadeTime,
	}
	p.pipes = append(p.pipes, pi)
}

func (p *Pipes) grow(pi *pipe) {
	gw, gh := p.gridW(), p.gridH()
	head := pi.segments[len(pi.segments)-1]

	next := step(head, pi.dir, gw, gh, p.wrap)
	needTurn := next == nil || p.rng.Float64() < p.turnProb
	if needTurn {
		dir, ok := p.pickDirection(head, pi.dir, gw, gh)
		if !ok {
			pi.growing = false
			return
		}
		pi.dir = dir
		next = step(head, pi.dir, gw, gh, p.wrap)
		if next == nil {
			pi.growing = false
			return
		}
	}

	pi.segments = append(pi.segments, *next)
	if p.maxSegments > 0 && len(pi.segments) > p.maxSegments {
		pi.segments = pi.segments[len(pi.segments)-p.maxSegments:]
	}

	pi.life--
	if pi.life <= 0 {
		pi.growing = false
	}
}

// step returns the next cell in dir, or nil when it would leave the grid
// and wrapping is off.
func step(from cell, dir, gw, gh int, wrap bool) *cell {
	d := pipeDirections[dir]
	n := cell{from.X + d.X, from.Y + d.Y}
	if wrap {
		n.X = (n.X + gw) % gw
		n.Y = (n.Y + gh) % gh
		return &n
	}
	if n.X < 0 || n.X >= gw || n.Y < 0 || n.Y >= gh {
		return nil
	}
	return &n
}

// pickDirection chooses a random in-bounds direction, never the reverse
// of the current one.
func (p *Pipes) pickDirection(from cell, current, gw, gh int) (int, bool) {
	reverse := current ^ 1
	var valid []int
	for dir := range pipeDirections {
		if dir == reverse {
			continue
		}
		if step(from, dir, gw, gh, p.wrap) != nil {
			valid = append(valid, dir)
		}
	}
	if len(valid) == 0 {
		return 0, false
	}
	return valid[p.rng.IntN(len(valid))], true
}

func (p *Pipes) Render(dc *gg.Context, width, height int, brightness int) {
	p.w, p.h = float64(width), float64(height)
	cs := float64(p.cellSize)
	for _, pi := range p.pipes {
		c := pi.color
		if !pi.growing && p.persist {
			c.A *= pi.fade / p.fadeTime
		}
		dc.SetColor(c.Color())
		for _, seg := range pi.segments {
			dc.DrawRectangle(float64(seg.X)*cs, float64(seg.Y)*cs, cs, cs)
		}
		_ = dc.Fill()
	}
}

// Segments returns a snapshot of every pipe's cells in pixel coordinates,
// used by bounds checks.
func (p *Pipes) Segments() [][]cell {
	out := make([][]cell, len(p.pipes))
	for i, pi := range p.pipes {
		segs := make([]cell, len(pi.segments))
		for j, s := range pi.segments {
			segs[j] = cell{s.X * p.cellSize, s.Y * p.cellSize}
		}
		out[i] = segs
	}
	return out
}

func (p *Pipes) Cleanup() {
	p.pipes = nil
	p.ready = false
}
