package background

import (
	"testing"

	"github.com/matjam/ledsign/internal/template"
)

func driftCfg(up bool) *template.BackgroundConfig {
	params := &template.DriftParams{Count: 15, Speed: 20}
	cfg := &template.BackgroundConfig{}
	if up {
		cfg.Type = template.BackgroundBubbles
		cfg.Bubbles = params
	} else {
		cfg.Type = template.BackgroundSnow
		cfg.Snow = params
	}
	return cfg
}

func TestDriftParticlesStayInHorizontalBounds(t *testing.T) {
	d := &Drift{rng: testRng(), pool: NewPool(), up: false}
	d.Init(driftCfg(false))

	for i := 0; i < 400; i++ {
		d.Update(0.05)
		for _, pt := range d.particles {
			if pt.X < 0 || pt.X >= d.w {
				t.Fatalf("step %d: particle at x=%v outside [0,%v)", i, pt.X, d.w)
			}
		}
	}
}

func TestSnowRespawnsAtTop(t *testing.T) {
	d := &Drift{rng: testRng(), pool: NewPool(), up: false}
	d.Init(driftCfg(false))

	pt := d.particles[0]
	pt.Y = d.h + 5
	d.Update(0.05)
	if pt.Y != -1 {
		t.Fatalf("fallen particle at y=%v, want respawn at -1", pt.Y)
	}
}

func TestBubblesRespawnAtBottom(t *testing.T) {
	d := &Drift{rng: testRng(), pool: NewPool(), up: true}
	d.Init(driftCfg(true))

	pt := d.particles[0]
	pt.Y = -5
	pt.VY = -1
	d.Update(0.05)
	if pt.Y != d.h+1 {
		t.Fatalf("risen particle at y=%v, want respawn at %v", pt.Y, d.h+1)
	}
}

func TestBubblesRise(t *testing.T) {
	d := &Drift{rng: testRng(), pool: NewPool(), up: true}
	d.Init(driftCfg(true))

	for _, pt := range d.particles {
		if pt.VY >= 0 {
			t.Fatalf("bubble with downward velocity %v", pt.VY)
		}
	}
}

func TestSnowFalls(t *testing.T) {
	d := &Drift{rng: testRng(), pool: NewPool(), up: false}
	d.Init(driftCfg(false))

	for _, pt := range d.particles {
		if pt.VY <= 0 {
			t.Fatalf("snow with upward velocity %v", pt.VY)
		}
	}
}

func TestDriftCleanupReturnsParticles(t *testing.T) {
	pool := NewPool()
	d := &Drift{rng: testRng(), pool: pool, up: false}
	d.Init(driftCfg(false))

	d.Cleanup()
	if pool.Len() != 15 {
		t.Fatalf("pool holds %d, want 15 released", pool.Len())
	}
}

func TestDriftInertWithoutParams(t *testing.T) {
	d := &Drift{rng: testRng(), pool: NewPool(), up: true}
	d.Init(&template.BackgroundConfig{Type: template.BackgroundBubbles})
	if len(d.particles) != 0 {
		t.Fatal("inert drift spawned particles")
	}
}
