package ipc

import (
	"bytes"
	"image/png"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matjam/ledsign/internal/dataformat"
	"github.com/matjam/ledsign/internal/engine"
	"github.com/matjam/ledsign/internal/icons"
	"github.com/matjam/ledsign/internal/sink"
	"github.com/matjam/ledsign/internal/template"
	"github.com/spf13/viper"
)

// Manager owns the render loop: one goroutine renders the current
// template at a fixed cadence and hands frames to the sink. Session
// state is unsynchronized, so every session call (loop ticks and the
// preview handler alike) happens under the manager mutex.
type Manager struct {
	sync.Mutex
	templates   []string // rotation of template file paths
	currentPath string
	values      map[string]any

	session *engine.Session
	current *template.Template
	out     sink.FrameSink
	cmds    chan Command
}

// NewManager creates a manager rotating through the given template files.
func NewManager(templates []string, out sink.FrameSink) *Manager {
	if out == nil {
		out = sink.Discard{}
	}
	session := engine.NewSession(engine.Options{
		Resolver: dataformat.New(nil),
		Icons:    icons.NewLibrary(viper.GetString("icons")),
	})

	return &Manager{
		templates: templates,
		values:    make(map[string]any),
		session:   session,
		out:       out,
		cmds:      make(chan Command, 1),
	}
}

func (m *Manager) CurrentTemplate() string {
	m.Lock()
	defer m.Unlock()
	return m.currentPath
}

// SetDataValues replaces the dataValues snapshot the data-integration
// side pushes over the socket.
func (m *Manager) SetDataValues(values map[string]any) {
	m.Lock()
	defer m.Unlock()
	m.values = values
}

func (m *Manager) dataValues() map[string]any {
	m.Lock()
	defer m.Unlock()
	return m.values
}

func (m *Manager) SetTemplates(templates []string) {
	m.Lock()
	defer m.Unlock()
	m.templates = templates
}

// NextTemplate rotates the template list and loads the new head. On a
// load failure the current template stays up; misconfiguration must not
// take down the loop.
func (m *Manager) NextTemplate() {
	m.Lock()
	if len(m.templates) == 0 {
		m.Unlock()
		return
	}
	next := m.templates[0]
	m.templates = append(m.templates[1:], next)
	m.Unlock()

	t, err := template.Load(next)
	if err != nil {
		log.Errorf("loading template %s: %v", next, err)
		return
	}

	m.Lock()
	if m.current != nil {
		m.session.CleanupTemplate(m.current.ID)
	}
	m.session.ResetAnimations()
	m.current = t
	m.currentPath = next
	m.Unlock()
	log.Infof("showing template %s (%s)", t.Name, next)
}

func (m *Manager) EnqueueCommand(cmd Command) {
	m.cmds <- cmd
}

func (m *Manager) Stop() {
	if len(m.cmds) == 0 {
		m.cmds <- Command{Type: CommandStop}
	}
}

// PreviewPNG encodes the current template's frame as PNG, pre output
// pass, so preview colors match what an editor would show.
func (m *Manager) PreviewPNG() ([]byte, error) {
	m.Lock()
	defer m.Unlock()
	if m.current == nil {
		return nil, errNoTemplate
	}
	img := m.session.RenderImage(m.current, m.values)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run blocks until a stop command arrives.
func (m *Manager) Run() {
	log.Info("Starting render loop...")

	framerate := viper.GetInt("framerate")
	if framerate <= 0 {
		framerate = 30
	}
	delay := viper.GetInt("delay")
	if delay <= 0 {
		delay = 60
	}

	m.NextTemplate()
	rotated := time.Now()

	ticker := time.NewTicker(time.Second / time.Duration(framerate))
	defer ticker.Stop()

	for {
		select {
		case cmd := <-m.cmds:
			switch cmd.Type {
			case CommandStop:
				log.Info("Stopping render loop...")
				m.shutdown()
				return
			case CommandNext:
				log.Info("Received next command")
				m.NextTemplate()
				rotated = time.Now()
			case CommandLoad:
				if len(cmd.Args) == 0 {
					log.Error("No templates specified for load command")
					continue
				}
				log.Infof("Loaded %d templates", len(cmd.Args))
				m.SetTemplates(cmd.Args)
				m.NextTemplate()
				rotated = time.Now()
			default:
				log.Error("Unknown command:", cmd.Type)
			}

		case <-ticker.C:
			if time.Since(rotated) > time.Duration(delay)*time.Second {
				m.NextTemplate()
				rotated = time.Now()
			}
			m.renderTick()
		}
	}
}

func (m *Manager) renderTick() {
	m.Lock()
	if m.current == nil {
		m.Unlock()
		return
	}
	frame, err := m.session.RenderFrame(m.current, m.values, engine.TargetAll)
	m.Unlock()

	if err != nil {
		// Size violations are fatal by contract; anything reaching here
		// means the compositor is broken, not the template.
		log.Fatalf("render failed: %v", err)
	}
	if err := m.out.Publish(frame); err != nil {
		log.Errorf("publishing frame: %v", err)
	}
}

func (m *Manager) shutdown() {
	m.Lock()
	defer m.Unlock()
	m.session.Cleanup()
	m.out.Close()
	log.Info("Render loop stopped.")
}
