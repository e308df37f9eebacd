// Package engine turns Templates into hardware-ready RGBA frame buffers.
// All mutable state (background generators, element animation state, the
// particle pool) hangs off a Session owned by the caller. Rendering is
// single threaded: calls for one session must not overlap.
package engine

import (
	"math/rand/v2"
	"time"

	"github.com/gogpu/gg"
	"github.com/jonboulle/clockwork"
	"github.com/matjam/ledsign/internal/engine/background"
)

// DataResolver formats a live data value for a data element. The engine
// treats formatting as opaque; live and preview renders go through the
// same call.
type DataResolver interface {
	Resolve(source string, values map[string]any, format, timezone string) string
}

// IconLibrary loads static icons and animated weather icon frames. Decode
// and caching happen inside the library; the engine only asks for the
// current frame.
type IconLibrary interface {
	Static(path string) (*gg.ImageBuf, error)
	Weather(condition int, animated bool, elapsed time.Duration) (*gg.ImageBuf, error)
}

// Options configures a Session. Zero values select the real clock and a
// random seed; tests inject a fake clock and a fixed seed to make the
// simulations fully reproducible.
type Options struct {
	Clock    clockwork.Clock
	Seed     uint64
	Seeded   bool
	Resolver DataResolver
	Icons    IconLibrary
}

// Session holds all per-caller render state. One session typically maps
// to one publish session or preview connection.
type Session struct {
	clock    clockwork.Clock
	rng      *rand.Rand
	pool     *background.Pool
	resolver DataResolver
	icons    IconLibrary

	backgrounds map[string]*backgroundEntry
	anims       map[string]*animState
	start       time.Time
}

func NewSession(opts Options) *Session {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	seed := opts.Seed
	if !opts.Seeded {
		seed = uint64(clock.Now().UnixNano())
	}
	return &Session{
		clock:       clock,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		pool:        background.NewPool(),
		resolver:    opts.Resolver,
		icons:       opts.Icons,
		backgrounds: make(map[string]*backgroundEntry),
		anims:       make(map[string]*animState),
		start:       clock.Now(),
	}
}

// Pool exposes the session's particle pool.
func (s *Session) Pool() *background.Pool {
	return s.pool
}

// ResetAnimations drops all element animation state, returning attached
// particles to the pool. Called on publish-session reset.
func (s *Session) ResetAnimations() {
	for id, st := range s.anims {
		s.pool.ReleaseMany(st.particles)
		delete(s.anims, id)
	}
}

// CleanupTemplate tears down all state held for one template.
func (s *Session) CleanupTemplate(templateID string) {
	if entry, ok := s.backgrounds[templateID]; ok {
		entry.gen.Cleanup()
		delete(s.backgrounds, templateID)
	}
}

// Cleanup tears down every generator and animation state in the session.
func (s *Session) Cleanup() {
	for id, entry := range s.backgrounds {
		entry.gen.Cleanup()
		delete(s.backgrounds, id)
	}
	s.ResetAnimations()
}

func (s *Session) elapsed() time.Duration {
	return s.clock.Now().Sub(s.start)
}
