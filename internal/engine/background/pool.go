package background

import "github.com/gogpu/gg"

// MaxPoolSize bounds how many released particles are retained for reuse.
// Releases beyond the cap simply drop the record for the GC.
const MaxPoolSize = 100

// Particle is the generic simulation record shared by the particle-driven
// effects. Effect-specific state (matrix columns, pipe segments, fish)
// lives in per-effect structs instead of optional fields here, so a
// recycled particle can never leak semantics between effects.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Color   gg.RGBA
	Life    float64
	MaxLife float64
	Size    float64
	Opacity float64
}

// Pool recycles Particle records to avoid per-frame allocation churn.
// It is not safe for concurrent use.
type Pool struct {
	free []*Particle
}

func NewPool() *Pool {
	return &Pool{free: make([]*Particle, 0, MaxPoolSize)}
}

// Acquire returns a zeroed particle, reusing a pooled record when one is
// available.
func (p *Pool) Acquire() *Particle {
	n := len(p.free)
	if n == 0 {
		return &Particle{}
	}
	pt := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	return pt
}

// Release resets the particle and returns it to the pool. The caller must
// have removed it from every active simulation slice first.
func (p *Pool) Release(pt *Particle) {
	if pt == nil {
		return
	}
	*pt = Particle{}
	if len(p.free) < MaxPoolSize {
		p.free = append(p.free, pt)
	}
}

// ReleaseMany releases every particle in the slice.
func (p *Pool) ReleaseMany(list []*Particle) {
	for _, pt := range list {
		p.Release(pt)
	}
}

// Len reports how many particles are currently pooled.
func (p *Pool) Len() int {
	return len(p.free)
}
