package background

import "testing"

func TestPoolReusesReleasedParticle(t *testing.T) {
	p := NewPool()

	pt := p.Acquire()
	pt.X = 10
	pt.Life = 5
	p.Release(pt)

	got := p.Acquire()
	if got != pt {
		t.Fatal("pool allocated a fresh particle with one available")
	}
	if *got != (Particle{}) {
		t.Fatalf("recycled particle not zeroed: %+v", *got)
	}
}

func TestPoolCapsRetention(t *testing.T) {
	p := NewPool()

	particles := make([]*Particle, MaxPoolSize+50)
	for i := range particles {
		particles[i] = &Particle{X: float64(i)}
	}
	p.ReleaseMany(particles)

	if p.Len() != MaxPoolSize {
		t.Fatalf("pool holds %d particles, want %d", p.Len(), MaxPoolSize)
	}
}

func TestPoolAcquireEmpty(t *testing.T) {
	p := NewPool()
	if pt := p.Acquire(); pt == nil {
		t.Fatal("empty pool returned nil")
	}
	if p.Len() != 0 {
		t.Fatalf("pool len %d after draining, want 0", p.Len())
	}
}

func TestPoolIgnoresNilRelease(t *testing.T) {
	p := NewPool()
	p.Release(nil)
	if p.Len() != 0 {
		t.Fatal("nil release changed pool size")
	}
}

func TestPoolDrainsInLIFOOrder(t *testing.T) {
	p := NewPool()
	a, b := &Particle{}, &Particle{}
	p.Release(a)
	p.Release(b)

	if got := p.Acquire(); got != b {
		t.Error("expected most recently released particle first")
	}
	if got := p.Acquire(); got != a {
		t.Error("expected earlier release second")
	}
}
