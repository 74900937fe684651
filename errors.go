package pagesnap

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [ChromeView].
	ErrClosed = errors.New("pagesnap: view is closed")

	// ErrNotLoaded is returned by CreatePDF before a page finished loading.
	ErrNotLoaded = errors.New("pagesnap: no page loaded")

	// ErrEmptySnapshot is returned when the engine produced no PDF bytes.
	ErrEmptySnapshot = errors.New("pagesnap: empty snapshot")

	// ErrBusy is reported when a session is started while a chain is running.
	ErrBusy = errors.New("pagesnap: session already running")
)
