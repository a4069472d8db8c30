package retro

import "errors"

var (
	// ErrNoInput is returned when a run has nothing to work on: both weekly
	// reports are blank, the habit text is blank, or no weeks were saved for
	// the requested month.
	ErrNoInput = errors.New("no input to process")

	// ErrNoStore is returned when an operation needs persistence but the
	// service was built without a store.
	ErrNoStore = errors.New("no week store configured")

	// ErrNilEngine is returned by NewService when no engine is supplied.
	ErrNilEngine = errors.New("extraction engine is required")
)
