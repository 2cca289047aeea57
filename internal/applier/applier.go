// File: internal/applier/applier.go
package applier

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/paramctl/internal/host"
	"github.com/xkilldash9x/paramctl/internal/paramset"
)

// Applier writes every entry of a parameter table to a host, reads it back and
// reports the outcome of each entry through the host's message sinks.
type Applier struct {
	host     host.Host
	template paramset.Template
	flag     bool
	logger   *zap.Logger
}

// Option configures an Applier.
type Option func(*Applier)

// WithTemplate sets the controller path template. The default template
// addresses the TX2-40 HB robot controller.
func WithTemplate(t paramset.Template) Option {
	return func(a *Applier) { a.template = t }
}

// WithMessageFlag sets the constant flag passed to both host message sinks.
func WithMessageFlag(flag bool) Option {
	return func(a *Applier) { a.flag = flag }
}

// WithLogger attaches a diagnostic logger. Per-parameter outcomes are still
// reported only through the host.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Applier) { a.logger = logger }
}

// New creates an Applier for h.
func New(h host.Host, opts ...Option) *Applier {
	a := &Applier{
		host:     h,
		template: paramset.NewTemplate(""),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.Named("applier")
	return a
}

// Template returns the path template in use.
func (a *Applier) Template() paramset.Template { return a.template }

// Apply processes every entry of t in table order. A failing entry is reported
// and never stops the remaining entries.
func (a *Applier) Apply(t paramset.Table) {
	runID := uuid.New().String()
	a.logger.Debug("Applying parameter table",
		zap.String("runID", runID),
		zap.String("controller", a.template.Controller()),
		zap.Int("entries", t.Len()),
	)
	for _, e := range t.Entries() {
		a.ApplyEntry(e.Name, e.Value)
	}
	a.logger.Debug("Parameter table processed", zap.String("runID", runID))
}

// ApplyEntry writes value to the parameter called name, reads it back and
// emits exactly one message: informational when both host calls succeeded,
// error otherwise.
func (a *Applier) ApplyEntry(name string, value float64) {
	path := a.template.Path(name)

	status := a.host.SetParameter(path, value)
	readValue, readStatus := a.host.GetParameter(path)

	// A failed write takes precedence; its error is the one reported.
	if status.Succeeded() {
		status = readStatus
	}

	if status.Succeeded() {
		a.host.EmitInformationMessage(SuccessMessage(path, readValue), a.flag)
		return
	}
	a.logger.Debug("Parameter rejected by host", zap.String("path", path), zap.Float64("value", value))
	a.host.EmitErrorMessage(FailureMessage(path, status), a.flag)
}

// SuccessMessage formats the line emitted for an applied parameter.
func SuccessMessage(path string, readValue host.Variant) string {
	return "Set: " + path + " = " + readValue.String()
}

// FailureMessage formats the line emitted for a rejected parameter.
func FailureMessage(path string, status host.Status) string {
	return "Failed: " + path + " → " + status.FormattedErrorMessage()
}
