package engine

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matjam/ledsign/internal/engine/background"
	"github.com/matjam/ledsign/internal/template"
)

type backgroundEntry struct {
	gen        background.Generator
	typ        template.BackgroundType
	snapshot   string // serialized config last applied
	lastUpdate time.Time
}

// generatorFor returns the live generator for a template, creating or
// reinitializing as needed. A type change tears the old instance down; a
// config change of the same type re-initializes in place. Config is
// compared as a serialized snapshot, not field-by-field: any change
// resets the whole effect, which guarantees stale per-effect state never
// outlives its config.
func (s *Session) generatorFor(templateID string, cfg *template.BackgroundConfig) *backgroundEntry {
	snapshot := snapshotConfig(cfg)

	entry, ok := s.backgrounds[templateID]
	if ok && entry.typ == cfg.Type {
		if entry.snapshot != snapshot {
			entry.gen.Init(cfg)
			entry.snapshot = snapshot
		}
		return entry
	}

	if ok {
		entry.gen.Cleanup()
	}

	gen, known := background.New(cfg, s.rng, s.pool)
	if !known {
		log.Warnf("unknown background type %q for template %s, using solid", cfg.Type, templateID)
		fallback := template.SolidBackground("#000000")
		gen, _ = background.New(fallback, s.rng, s.pool)
		gen.Init(fallback)
		entry = &backgroundEntry{
			gen:        gen,
			typ:        cfg.Type,
			snapshot:   snapshot,
			lastUpdate: s.clock.Now(),
		}
		s.backgrounds[templateID] = entry
		return entry
	}

	gen.Init(cfg)
	entry = &backgroundEntry{
		gen:        gen,
		typ:        cfg.Type,
		snapshot:   snapshot,
		lastUpdate: s.clock.Now(),
	}
	s.backgrounds[templateID] = entry
	return entry
}

func snapshotConfig(cfg *template.BackgroundConfig) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	return string(data)
}
