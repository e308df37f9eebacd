package background

import (
	"math/rand/v2"
	"testing"

	"github.com/matjam/ledsign/internal/template"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func fireworksConfig(freq float64, burst int) *template.BackgroundConfig {
	return &template.BackgroundConfig{
		Type: template.BackgroundFireworks,
		Fireworks: &template.FireworksParams{
			Frequency:     freq,
			ParticleCount: burst,
			Colors:        []string{"#ff0000", "#00ff00"},
		},
	}
}

func TestFireworksNeverExceedParticleCap(t *testing.T) {
	f := &Fireworks{rng: testRng(), pool: NewPool()}
	f.Init(fireworksConfig(100, 50))

	for i := 0; i < 500; i++ {
		f.Update(0.05)
		if f.Live() > MaxFireworkParticles {
			t.Fatalf("step %d: %d live particles, cap is %d", i, f.Live(), MaxFireworkParticles)
		}
	}
	if f.Live() == 0 {
		t.Fatal("saturating frequency spawned nothing")
	}
}

func TestFireworksDebrisDies(t *testing.T) {
	f := &Fireworks{rng: testRng(), pool: NewPool()}
	f.Init(fireworksConfig(100, 20))

	f.Update(0.05)
	for i := 0; i < 100 && f.Live() == 0; i++ {
		f.Update(0.05)
	}
	if f.Live() == 0 {
		t.Fatal("no burst spawned")
	}

	// Particle lifetimes top out under two seconds; with spawning gated
	// off by a zeroed frequency the population must empty.
	f.frequency = 0
	for i := 0; i < 60; i++ {
		f.Update(0.05)
	}
	if f.Live() != 0 {
		t.Fatalf("%d particles alive after lifetime window", f.Live())
	}
}

func TestFireworksCleanupReturnsParticles(t *testing.T) {
	pool := NewPool()
	f := &Fireworks{rng: testRng(), pool: pool}
	f.Init(fireworksConfig(100, 20))

	for i := 0; i < 50 && f.Live() == 0; i++ {
		f.Update(0.05)
	}
	live := f.Live()
	if live == 0 {
		t.Fatal("no burst spawned")
	}

	f.Cleanup()
	if f.Live() != 0 {
		t.Fatal("particles alive after cleanup")
	}
	if pool.Len() != live {
		t.Fatalf("pool holds %d, want %d released", pool.Len(), live)
	}
}

func TestFireworksInertWithoutParams(t *testing.T) {
	f := &Fireworks{rng: testRng(), pool: NewPool()}
	f.Init(&template.BackgroundConfig{Type: template.BackgroundFireworks})

	for i := 0; i < 100; i++ {
		f.Update(0.05)
	}
	if f.Live() != 0 {
		t.Fatal("inert generator spawned particles")
	}
}

func TestFireworksRejectsBadDeltas(t *testing.T) {
	f := &Fireworks{rng: testRng(), pool: NewPool()}
	f.Init(fireworksConfig(1000, 20))

	f.Update(0.001) // below MinDelta
	f.Update(0.5)   // above MaxDelta
	if f.Live() != 0 {
		t.Fatalf("out-of-window deltas advanced the simulation: %d live", f.Live())
	}
}
