package pipeline

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures.
type ErrorKind string

const (
	// KindConnectivity: the pre-flight probe failed, nothing was attempted.
	KindConnectivity ErrorKind = "connectivity"
	// KindResolution: metadata or the playlist could not be obtained.
	KindResolution ErrorKind = "resolution"
	// KindSelection: no stream matched the required criteria.
	KindSelection ErrorKind = "selection"
	// KindFetch: network or filesystem error while downloading.
	KindFetch ErrorKind = "fetch"
	// KindMux: the transcoder failed.
	KindMux ErrorKind = "mux"
	// KindPublish: the muxed file could not be copied to its destination.
	KindPublish ErrorKind = "publish"
)

// ErrUnreachable is reported when the connectivity probe fails.
var ErrUnreachable = errors.New("network is unreachable")

// Error is the failure of a pipeline run.
type Error struct {
	Kind  ErrorKind
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed (%s): %s", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind of a pipeline error.
func KindOf(err error) (ErrorKind, bool) {
	var pipelineErr *Error
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Kind, true
	}
	return "", false
}
