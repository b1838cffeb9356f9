package petalcluster

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// FaultKind classifies a contract violation at the host boundary.
type FaultKind int

const (
	// FaultShape: a buffer length disagrees with its declared dimensions.
	FaultShape FaultKind = iota + 1
	// FaultMetric: the metric name is not one of the supported names.
	FaultMetric
	// FaultLabelName: a partial-label group name is not an integer id.
	FaultLabelName
	// FaultLabelValue: a partial-label group holds something other than
	// 1-based integer indices.
	FaultLabelValue
	// FaultParams: the backend rejected the algorithm parameters.
	FaultParams
)

func (k FaultKind) String() string {
	switch k {
	case FaultShape:
		return "shape"
	case FaultMetric:
		return "metric"
	case FaultLabelName:
		return "label name"
	case FaultLabelValue:
		return "label value"
	case FaultParams:
		return "params"
	default:
		return fmt.Sprintf("FaultKind(%d)", int(k))
	}
}

// Fault is a caller contract violation. Entry points raise it with panic;
// the call is abandoned and nothing is returned. Use Catch to turn it into
// an error at the host integration point.
type Fault struct {
	Kind FaultKind
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("petalcluster: %s fault: %v", f.Kind, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// fault panics with a *Fault of the given kind.
func fault(kind FaultKind, err error) {
	panic(&Fault{Kind: kind, Err: err})
}

// Catch runs fn and returns the *Fault it panicked with, or nil if it
// returned normally. Any other panic propagates unchanged.
func Catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f, ok := r.(*Fault)
		if !ok {
			panic(r)
		}
		err = f
	}()
	fn()
	return nil
}

// IsFault reports whether err is, or wraps, a *Fault of the given kind.
func IsFault(err error, kind FaultKind) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == kind
}
