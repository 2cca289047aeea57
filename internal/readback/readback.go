// File: internal/readback/readback.go
package readback

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/xkilldash9x/paramctl/internal/host"
	"github.com/xkilldash9x/paramctl/internal/paramset"
)

const (
	// MaxParIndex is the highest transformation parameter index scanned.
	MaxParIndex = 31
	// MaxAxisIndex is the highest Axis_n / Ext_n index scanned.
	MaxAxisIndex = 98
)

// Dumper reads the current parameter values of a controller back into a table.
type Dumper struct {
	host     host.Host
	template paramset.Template
	logger   *zap.Logger
}

// New creates a Dumper reading from h under template t.
func New(h host.Host, t paramset.Template, logger *zap.Logger) *Dumper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dumper{host: h, template: t, logger: logger.Named("readback")}
}

// Dump reads KinID, par_0..par_31 and every Axis/Ext field that the host
// reports, in that order. Unreadable parameters are left out. Readable but
// non-numeric values are skipped with a warning.
func (d *Dumper) Dump() (paramset.Table, error) {
	var entries []paramset.Entry

	if e, ok := d.read(paramset.KinematicID); ok {
		entries = append(entries, e)
	}
	for i := 0; i <= MaxParIndex; i++ {
		if e, ok := d.read(paramset.ParName(i)); ok {
			entries = append(entries, e)
		}
	}
	for _, group := range paramset.AxisGroups {
		for idx := 1; idx <= MaxAxisIndex; idx++ {
			for _, field := range paramset.AxisFields {
				if e, ok := d.read(paramset.AxisName(group, idx, field)); ok {
					entries = append(entries, e)
				}
			}
		}
	}

	t, err := paramset.NewTable(entries...)
	if err != nil {
		return paramset.Table{}, fmt.Errorf("failed to build read-back table: %w", err)
	}
	d.logger.Debug("Read back controller parameters",
		zap.String("controller", d.template.Controller()),
		zap.Int("entries", t.Len()),
	)
	return t, nil
}

func (d *Dumper) read(name string) (paramset.Entry, bool) {
	path := d.template.Path(name)
	v, status := d.host.GetParameter(path)
	if !status.Succeeded() || v.IsNil() {
		return paramset.Entry{}, false
	}
	f, err := v.Float()
	if err != nil {
		d.logger.Warn("Skipping non-numeric parameter", zap.String("path", path), zap.Error(err))
		return paramset.Entry{}, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		d.logger.Warn("Skipping non-finite parameter", zap.String("path", path), zap.Float64("value", f))
		return paramset.Entry{}, false
	}
	return paramset.Entry{Name: name, Value: f}, true
}

// Dump is a convenience wrapper around New(h, t, logger).Dump().
func Dump(h host.Host, t paramset.Template, logger *zap.Logger) (paramset.Table, error) {
	return New(h, t, logger).Dump()
}
