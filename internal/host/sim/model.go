// File: internal/host/sim/model.go
package sim

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/xkilldash9x/paramctl/internal/host"
	"github.com/xkilldash9x/paramctl/internal/paramset"
)

// Persister stores accepted parameter writes outside the process.
type Persister interface {
	LoadValues(ctx context.Context) (map[string]float64, error)
	SaveValue(ctx context.Context, path string, value float64) error
}

// Bounds is an inclusive value range.
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether v lies in [Min, Max].
func (b Bounds) Contains(v float64) bool { return v >= b.Min && v <= b.Max }

// Level classifies a recorded host message.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "info"
}

// Message is one call to a message sink.
type Message struct {
	Level Level
	Text  string
	Flag  bool
}

type param struct {
	value  float64
	bounds *Bounds
}

// Model is an in-process stand-in for a simulated controller. It keeps
// declared parameters keyed by full hierarchical path and implements
// host.Host.
type Model struct {
	mu       sync.Mutex
	params   map[string]*param
	order    []string
	open     bool
	persist  Persister
	template paramset.Template
	logger   *zap.Logger
	messages []Message
}

var _ host.Host = (*Model)(nil)

// Option configures a Model.
type Option func(*Model)

// WithOpen lets writes declare unknown parameters instead of failing.
func WithOpen(open bool) Option {
	return func(m *Model) { m.open = open }
}

// WithLogger sets the logger backing the message sinks.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// WithPersister stores every accepted write through p.
func WithPersister(p Persister) Option {
	return func(m *Model) { m.persist = p }
}

// WithTemplate sets the controller template used to resolve sibling axis
// fields for cross-field checks.
func WithTemplate(t paramset.Template) Option {
	return func(m *Model) { m.template = t }
}

// NewModel returns an empty model.
func NewModel(opts ...Option) *Model {
	m := &Model{
		params:   make(map[string]*param),
		template: paramset.NewTemplate(""),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("host")
	return m
}

// Declare adds a parameter with an initial value. A nil bounds leaves the
// parameter unconstrained. Redeclaring a path replaces it.
func (m *Model) Declare(path string, initial float64, bounds *Bounds) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.declareLocked(path, initial, bounds)
}

func (m *Model) declareLocked(path string, initial float64, bounds *Bounds) {
	if _, exists := m.params[path]; !exists {
		m.order = append(m.order, path)
	}
	var b *Bounds
	if bounds != nil {
		cp := *bounds
		b = &cp
	}
	m.params[path] = &param{value: initial, bounds: b}
}

// Paths returns the declared paths in declaration order.
func (m *Model) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Value returns the current value at path without going through the
// host status machinery.
func (m *Model) Value(path string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.params[path]
	if !ok {
		return 0, false
	}
	return p.value, true
}

// Restore overlays persisted values onto the model. Persisted paths the
// model does not declare are added only when the model is open.
func (m *Model) Restore(ctx context.Context) error {
	if m.persist == nil {
		return nil
	}
	values, err := m.persist.LoadValues(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore model state: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	restored := 0
	for path, v := range values {
		if p, ok := m.params[path]; ok {
			p.value = v
			restored++
			continue
		}
		if m.open {
			m.declareLocked(path, v, nil)
			restored++
		}
	}
	m.logger.Debug("Restored model state", zap.Int("restored", restored), zap.Int("persisted", len(values)))
	return nil
}

// SetParameter implements host.Host.
func (m *Model) SetParameter(path string, value float64) host.Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return host.Failedf("value %v is not a finite number", value)
	}

	p, ok := m.params[path]
	if !ok && !m.open {
		return host.Failedf("parameter not found: %s", path)
	}

	if ok && p.bounds != nil && !p.bounds.Contains(value) {
		return host.Failedf("value %s out of range [%s, %s]", formatFloat(value), formatFloat(p.bounds.Min), formatFloat(p.bounds.Max))
	}
	if st := m.checkInitialPositionLocked(path, value); !st.Succeeded() {
		return st
	}

	if m.persist != nil {
		if err := m.persist.SaveValue(context.Background(), path, value); err != nil {
			return host.Failed(err)
		}
	}
	if !ok {
		m.declareLocked(path, value, nil)
		return host.OK()
	}
	p.value = value
	return host.OK()
}

// checkInitialPositionLocked keeps an axis's s_init between its current
// s_min and s_max.
func (m *Model) checkInitialPositionLocked(path string, value float64) host.Status {
	name, ok := m.template.Name(path)
	if !ok {
		return host.OK()
	}
	key, ok := paramset.ParseAxisName(name)
	if !ok || key.Field != "s_init" {
		return host.OK()
	}
	lo, okLo := m.params[m.template.Path(paramset.AxisName(key.Group, key.Index, "s_min"))]
	hi, okHi := m.params[m.template.Path(paramset.AxisName(key.Group, key.Index, "s_max"))]
	if okLo && value < lo.value || okHi && value > hi.value {
		loStr, hiStr := "-inf", "+inf"
		if okLo {
			loStr = formatFloat(lo.value)
		}
		if okHi {
			hiStr = formatFloat(hi.value)
		}
		return host.Failedf("value %s out of range [%s, %s] of the axis position limits", formatFloat(value), loStr, hiStr)
	}
	return host.OK()
}

// GetParameter implements host.Host.
func (m *Model) GetParameter(path string) (host.Variant, host.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.params[path]
	if !ok {
		return host.Variant{}, host.Failedf("parameter not found: %s", path)
	}
	return host.NewVariant(p.value), host.OK()
}

// EmitInformationMessage implements host.Host.
func (m *Model) EmitInformationMessage(msg string, flag bool) {
	m.record(LevelInfo, msg, flag)
	m.logger.Info(msg, zap.Bool("flag", flag))
}

// EmitErrorMessage implements host.Host.
func (m *Model) EmitErrorMessage(msg string, flag bool) {
	m.record(LevelError, msg, flag)
	m.logger.Error(msg, zap.Bool("flag", flag))
}

func (m *Model) record(level Level, msg string, flag bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, Message{Level: level, Text: msg, Flag: flag})
}

// Messages returns the messages emitted so far, oldest first.
func (m *Model) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
