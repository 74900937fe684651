package pagesnap

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// WebView is a rendering engine that loads one page at a time and can
// serialize the loaded page into a PDF.
type WebView interface {
	// Load navigates to rawURL and returns once the page has finished
	// loading. A non-nil error means the navigation failed.
	Load(ctx context.Context, rawURL string) error

	// CreatePDF returns a PDF rendition of the loaded page.
	// A nil pg uses the view's configured layout.
	CreatePDF(ctx context.Context, pg *PageConfig) ([]byte, error)

	Close() error
}

var _ WebView = (*ChromeView)(nil)

// ChromeView is a [WebView] backed by a headless Chrome tab.
//
// The browser process is started by [NewChromeView] and kept until
// [ChromeView.Close]. Each Load replaces the current tab. It is safe for
// concurrent use, though calls are serialized.
type ChromeView struct {
	cfg    config
	logger *zap.Logger

	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu        sync.Mutex
	tabCtx    context.Context
	tabCancel context.CancelFunc
	loaded    bool
	closed    bool
}

// NewChromeView starts a headless browser. The caller must call
// [ChromeView.Close] when finished.
func NewChromeView(opts ...Option) (*ChromeView, error) {
	cfg := newConfig(opts)

	execPath, err := resolveBrowser(cfg)
	if err != nil {
		return nil, err
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(execPath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	logger := cfg.logger.Named("webview")
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Sugar().Debugf),
		chromedp.WithErrorf(logger.Sugar().Warnf),
	)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("pagesnap: starting browser: %w", err)
	}
	logger.Debug("browser started", zap.String("exec_path", execPath))

	return &ChromeView{
		cfg:           cfg,
		logger:        logger,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Load navigates a fresh tab to rawURL and waits until the document body
// is ready. rawURL may be an http(s) or file URL, or a local file path.
func (v *ChromeView) Load(ctx context.Context, rawURL string) error {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}

	if v.tabCancel != nil {
		v.tabCancel()
	}
	v.loaded = false
	v.tabCtx, v.tabCancel = chromedp.NewContext(v.browserCtx)

	// Open the tab on its own context; a tab first used through a
	// deadline-bound context is torn down when that deadline passes.
	if err := chromedp.Run(v.tabCtx); err != nil {
		return fmt.Errorf("pagesnap: opening tab: %w", err)
	}

	runCtx, cancel := v.runContext(ctx)
	defer cancel()

	if err := chromedp.Run(runCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("pagesnap: loading %s: %w", target, err)
	}
	v.loaded = true
	v.logger.Debug("page loaded", zap.String("url", target))
	return nil
}

// CreatePDF prints the loaded tab to PDF.
func (v *ChromeView) CreatePDF(ctx context.Context, pg *PageConfig) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil, ErrClosed
	}
	if !v.loaded {
		return nil, ErrNotLoaded
	}
	if pg == nil {
		pg = v.cfg.page
	}

	runCtx, cancel := v.runContext(ctx)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, _, err = pg.printParams().Do(ctx)
		return err
	})); err != nil {
		return nil, fmt.Errorf("pagesnap: printing to PDF: %w", err)
	}
	if len(buf) == 0 {
		return nil, ErrEmptySnapshot
	}

	w, h := pg.withDefaults().paperInches()
	v.logger.Debug("snapshot created",
		zap.Int("bytes", len(buf)),
		zap.Float64("paper_width_in", w),
		zap.Float64("paper_height_in", h))
	return buf, nil
}

// Close releases the tab and the browser process. Close is idempotent.
func (v *ChromeView) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil
	}
	v.closed = true
	if v.tabCancel != nil {
		v.tabCancel()
	}
	v.browserCancel()
	v.allocCancel()
	return nil
}

// runContext derives a context for one chromedp call on the current tab.
// It ends when ctx ends or the configured timeout elapses. The tab itself
// outlives it.
func (v *ChromeView) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(v.tabCtx)
	if v.cfg.timeout > 0 {
		var cancelTimeout context.CancelFunc
		runCtx, cancelTimeout = context.WithTimeout(runCtx, v.cfg.timeout)
		prev := cancel
		cancel = func() { cancelTimeout(); prev() }
	}
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// NormalizeURL accepts http, https and file URLs as given and turns any
// other input into a file URL for an existing local path.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("pagesnap: empty URL")
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		switch u.Scheme {
		case "http", "https":
			if u.Host == "" {
				return "", fmt.Errorf("pagesnap: invalid URL %q: missing host", raw)
			}
			return raw, nil
		case "file":
			return raw, nil
		default:
			return "", fmt.Errorf("pagesnap: unsupported URL scheme %q", u.Scheme)
		}
	}
	return FileURL(raw)
}

// FileURL returns the file URL of an existing local file.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("pagesnap: resolving path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("pagesnap: %w", err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
