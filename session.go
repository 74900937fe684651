package pagesnap

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// State is what the display layer observes while a session runs.
type State struct {
	LoadSucceeded bool
	LoadFailed    bool
	Uploaded      bool

	// Response is the raw upload response. It is empty when the upload
	// did not happen or failed.
	Response string

	// Snapshot is set once the PDF has been generated.
	Snapshot *Snapshot

	// Err is the failure that ended the chain, if any. It is informational;
	// failures are logged and never propagated as errors.
	Err error
}

// Session drives one page through load, snapshot and upload.
//
// All state changes of a chain are made on a single goroutine, in order,
// and each change is published to the channel returned by [Session.Start].
type Session struct {
	view     WebView
	uploader *Uploader
	page     *PageConfig
	logger   *zap.Logger

	mu      sync.Mutex
	state   State
	running bool
}

// NewSession returns a Session rendering with view. Upload and layout
// options are taken from opts.
func NewSession(view WebView, opts ...Option) *Session {
	cfg := newConfig(opts)
	return &Session{
		view:     view,
		uploader: NewUploader(opts...),
		page:     cfg.page,
		logger:   cfg.logger.Named("session"),
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// maxUpdates bounds the number of states one chain publishes.
const maxUpdates = 3

// Start runs the chain for rawURL in the background and returns a channel
// of state snapshots, closed when the chain ends. The channel is buffered
// so the chain never waits on a slow reader.
//
// If a chain is already running, the returned channel carries a single
// state with Err set to [ErrBusy].
func (s *Session) Start(ctx context.Context, rawURL string) <-chan State {
	out := make(chan State, maxUpdates)

	s.mu.Lock()
	if s.running {
		st := s.state
		s.mu.Unlock()
		st.Err = ErrBusy
		out <- st
		close(out)
		return out
	}
	s.running = true
	s.state = State{}
	s.mu.Unlock()

	go s.run(ctx, rawURL, out)
	return out
}

// Run runs the chain to completion and returns the final state.
func (s *Session) Run(ctx context.Context, rawURL string) State {
	var last State
	for st := range s.Start(ctx, rawURL) {
		last = st
	}
	return last
}

func (s *Session) run(ctx context.Context, rawURL string, out chan<- State) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		close(out)
	}()

	if err := s.view.Load(ctx, rawURL); err != nil {
		s.logger.Error("ErrorLoadWeb", zap.String("url", rawURL), zap.Error(err))
		s.update(out, func(st *State) {
			st.LoadFailed = true
			st.Err = err
		})
		return
	}
	s.update(out, func(st *State) { st.LoadSucceeded = true })

	data, err := s.view.CreatePDF(ctx, s.page)
	if err == nil && len(data) == 0 {
		err = ErrEmptySnapshot
	}
	if err != nil {
		s.logger.Error("ErrorCreatePDF", zap.Error(err))
		s.update(out, func(st *State) { st.Err = err })
		return
	}
	snap := NewSnapshot(data)
	s.update(out, func(st *State) { st.Snapshot = snap })

	resp, err := s.uploader.Do(ctx, data)
	if err != nil {
		s.logger.Error("ErrorUploadPDF", zap.Error(err))
	} else {
		s.logger.Info("ResponseUploadPDF", zap.String("response", resp))
	}
	s.update(out, func(st *State) {
		st.Response = resp
		st.Uploaded = resp != ""
		st.Err = err
	})
}

// update applies fn under the lock and publishes the result.
func (s *Session) update(out chan<- State, fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	st := s.state
	s.mu.Unlock()
	out <- st
}

// Capture loads rawURL in a temporary [ChromeView], snapshots and uploads
// it. The returned error covers only browser startup; chain failures are
// reported in the State.
func Capture(ctx context.Context, rawURL string, opts ...Option) (State, error) {
	view, err := NewChromeView(opts...)
	if err != nil {
		return State{}, err
	}
	defer view.Close()
	return NewSession(view, opts...).Run(ctx, rawURL), nil
}
