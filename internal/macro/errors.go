package macro

import "github.com/pkg/errors"

var (
	// ErrRecordingInProgress is returned when a replay is requested while a
	// recording session is still active.
	ErrRecordingInProgress = errors.New("recording is not finished")

	// ErrEventStreamClosed means the device event channel was closed while
	// the dispatcher was still expected to run.
	ErrEventStreamClosed = errors.New("device event stream closed")

	// ErrRequestStreamClosed means the replay request channel was closed
	// while the replay engine was still expected to run.
	ErrRequestStreamClosed = errors.New("replay request stream closed")
)
