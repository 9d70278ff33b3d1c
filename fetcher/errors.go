package fetcher

import (
	"errors"
	"fmt"

	"github.com/tubemux/tubemux/source"
)

var (
	ErrNoVideoStream = errors.New("no valid video stream")
	ErrNoAudioStream = errors.New("no valid audio stream")
)

// SelectionError reports that no stream matched the selection criteria.
type SelectionError struct {
	Kind source.Kind
	Err  error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("select %s: %s", e.Kind, e.Err)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

// FetchError reports a network or filesystem failure while materializing a stream.
type FetchError struct {
	Part Part
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("fetch %s: %s", e.Part, e.Err)
	}
	return fmt.Sprintf("fetch %s to %s: %s", e.Part, e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
