// File: internal/host/host.go
package host

import (
	"fmt"
	"strconv"
)

// Host is the controller model's parameter store and message sink.
// Implementations own path resolution, value validation and message delivery;
// callers rely only on the returned Status.
type Host interface {
	// SetParameter writes value to the parameter addressed by path.
	SetParameter(path string, value float64) Status
	// GetParameter reads the current value of the parameter addressed by path.
	GetParameter(path string) (Variant, Status)
	// EmitInformationMessage forwards an informational message to the host log.
	EmitInformationMessage(msg string, flag bool)
	// EmitErrorMessage forwards an error message to the host log.
	EmitErrorMessage(msg string, flag bool)
}

// Status is the outcome of a single host operation.
// The zero value is a successful status.
type Status struct {
	err error
}

// OK returns a successful status.
func OK() Status { return Status{} }

// Failed wraps err in a failed status. A nil err still yields a failure.
func Failed(err error) Status {
	if err == nil {
		err = fmt.Errorf("unspecified host failure")
	}
	return Status{err: err}
}

// Failedf builds a failed status from a format string.
func Failedf(format string, args ...interface{}) Status {
	return Status{err: fmt.Errorf(format, args...)}
}

// Succeeded reports whether the operation completed successfully.
func (s Status) Succeeded() bool { return s.err == nil }

// Err returns the underlying error, or nil on success.
func (s Status) Err() error { return s.err }

// FormattedErrorMessage renders the failure for display. It is empty on success.
func (s Status) FormattedErrorMessage() string {
	if s.err == nil {
		return ""
	}
	return s.err.Error()
}

// Variant is a value reported by the host. Hosts may report numbers or raw
// strings, so the value is kept untyped and formatted on demand.
type Variant struct {
	value interface{}
}

// NewVariant wraps v.
func NewVariant(v interface{}) Variant { return Variant{value: v} }

// Value returns the wrapped value.
func (v Variant) Value() interface{} { return v.value }

// IsNil reports whether the variant holds no value.
func (v Variant) IsNil() bool { return v.value == nil }

// Float returns the variant as a float64, parsing strings when needed.
func (v Variant) Float() (float64, error) {
	switch x := v.value.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("variant %q is not numeric: %w", x, err)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("variant is empty")
	default:
		return 0, fmt.Errorf("variant of type %T is not numeric", x)
	}
}

// String formats the variant using the shortest representation that
// round-trips, so 320 prints as "320" rather than "320.000000".
func (v Variant) String() string {
	switch x := v.value.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
