package pagesnap

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeView is a WebView whose outcomes are fixed up front.
type fakeView struct {
	loadErr error
	pdf     []byte
	pdfErr  error
	block   chan struct{} // if set, Load waits for it

	mu       sync.Mutex
	loads    []string
	pdfCalls int
	pages    []*PageConfig
}

func (f *fakeView) Load(ctx context.Context, rawURL string) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, rawURL)
	return f.loadErr
}

func (f *fakeView) CreatePDF(ctx context.Context, pg *PageConfig) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pdfCalls++
	f.pages = append(f.pages, pg)
	return f.pdf, f.pdfErr
}

func (f *fakeView) Close() error { return nil }

func newObservedSession(t *testing.T, view WebView, opts ...Option) (*Session, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return NewSession(view, append(opts, WithLogger(zap.New(core)))...), logs
}

func TestSession_LoadTriggersExactlyOneSnapshot(t *testing.T) {
	srv, got := uploadServer(t, http.StatusCreated, `{"location":"x"}`)
	pdf := minimalPDF(1)
	view := &fakeView{pdf: pdf}
	s, logs := newObservedSession(t, view, WithUploadURL(srv.URL))

	st := s.Run(context.Background(), "https://example.com")

	assert.Equal(t, []string{"https://example.com"}, view.loads)
	assert.Equal(t, 1, view.pdfCalls)
	assert.True(t, st.LoadSucceeded)
	assert.False(t, st.LoadFailed)
	assert.True(t, st.Uploaded)
	assert.Equal(t, `{"location":"x"}`, st.Response)
	assert.NoError(t, st.Err)
	require.NotNil(t, st.Snapshot)
	assert.Equal(t, pdf, st.Snapshot.Bytes())
	assert.Equal(t, pdf, *got)
	assert.Equal(t, 1, logs.FilterMessage("ResponseUploadPDF").Len())
}

func TestSession_PublishesStatesInOrder(t *testing.T) {
	srv, _ := uploadServer(t, http.StatusOK, "done")
	s, _ := newObservedSession(t, &fakeView{pdf: samplePDF}, WithUploadURL(srv.URL))

	var states []State
	for st := range s.Start(context.Background(), "https://example.com") {
		states = append(states, st)
	}

	require.Len(t, states, 3)
	assert.True(t, states[0].LoadSucceeded)
	assert.Nil(t, states[0].Snapshot)
	assert.NotNil(t, states[1].Snapshot)
	assert.False(t, states[1].Uploaded)
	assert.True(t, states[2].Uploaded)
	assert.Equal(t, "done", states[2].Response)
	assert.Equal(t, states[2], s.State())
}

func TestSession_LoadFailureSkipsSnapshotAndUpload(t *testing.T) {
	loadErr := errors.New("net::ERR_NAME_NOT_RESOLVED")
	view := &fakeView{loadErr: loadErr}
	s, logs := newObservedSession(t, view, WithUploadURL("http://127.0.0.1:1"))

	st := s.Run(context.Background(), "https://nowhere.invalid")

	assert.True(t, st.LoadFailed)
	assert.False(t, st.LoadSucceeded)
	assert.False(t, st.Uploaded)
	assert.Empty(t, st.Response)
	assert.ErrorIs(t, st.Err, loadErr)
	assert.Zero(t, view.pdfCalls)
	assert.Equal(t, 1, logs.FilterMessage("ErrorLoadWeb").Len())
}

func TestSession_SnapshotFailureSkipsUpload(t *testing.T) {
	pdfErr := errors.New("printing failed")
	view := &fakeView{pdfErr: pdfErr}
	s, logs := newObservedSession(t, view, WithUploadURL("http://127.0.0.1:1"))

	st := s.Run(context.Background(), "https://example.com")

	assert.True(t, st.LoadSucceeded)
	assert.False(t, st.Uploaded)
	assert.Nil(t, st.Snapshot)
	assert.ErrorIs(t, st.Err, pdfErr)
	assert.Equal(t, 1, view.pdfCalls)
	assert.Equal(t, 1, logs.FilterMessage("ErrorCreatePDF").Len())
	assert.Zero(t, logs.FilterMessage("ErrorUploadPDF").Len())
}

func TestSession_EmptySnapshotSkipsUpload(t *testing.T) {
	s, _ := newObservedSession(t, &fakeView{}, WithUploadURL("http://127.0.0.1:1"))

	st := s.Run(context.Background(), "https://example.com")

	assert.ErrorIs(t, st.Err, ErrEmptySnapshot)
	assert.False(t, st.Uploaded)
}

func TestSession_NetworkErrorYieldsEmptyResponse(t *testing.T) {
	srv, _ := uploadServer(t, http.StatusOK, "unused")
	url := srv.URL
	srv.Close()

	s, logs := newObservedSession(t, &fakeView{pdf: samplePDF}, WithUploadURL(url))

	var st State
	require.NotPanics(t, func() {
		st = s.Run(context.Background(), "https://example.com")
	})
	assert.True(t, st.LoadSucceeded)
	assert.NotNil(t, st.Snapshot)
	assert.Empty(t, st.Response)
	assert.False(t, st.Uploaded)
	assert.Error(t, st.Err)
	assert.Equal(t, 1, logs.FilterMessage("ErrorUploadPDF").Len())
}

func TestSession_PassesPageConfig(t *testing.T) {
	srv, _ := uploadServer(t, http.StatusOK, "ok")
	pg := &PageConfig{Size: Letter}
	view := &fakeView{pdf: samplePDF}
	s, _ := newObservedSession(t, view, WithUploadURL(srv.URL), WithPageConfig(pg))

	s.Run(context.Background(), "https://example.com")

	require.Len(t, view.pages, 1)
	assert.Same(t, pg, view.pages[0])
}

func TestSession_BusyWhileRunning(t *testing.T) {
	srv, _ := uploadServer(t, http.StatusOK, "ok")
	view := &fakeView{pdf: samplePDF, block: make(chan struct{})}
	s, _ := newObservedSession(t, view, WithUploadURL(srv.URL))

	first := s.Start(context.Background(), "https://example.com")
	second := s.Run(context.Background(), "https://example.com/other")

	assert.ErrorIs(t, second.Err, ErrBusy)

	close(view.block)
	var last State
	for st := range first {
		last = st
	}
	assert.True(t, last.Uploaded)
	assert.Equal(t, []string{"https://example.com"}, view.loads)
}

func TestSession_Rerun(t *testing.T) {
	srv, _ := uploadServer(t, http.StatusOK, "ok")
	view := &fakeView{pdf: samplePDF}
	s, _ := newObservedSession(t, view, WithUploadURL(srv.URL))

	s.Run(context.Background(), "https://example.com/a")
	st := s.Run(context.Background(), "https://example.com/b")

	assert.True(t, st.Uploaded)
	assert.Equal(t, 2, view.pdfCalls)
}
