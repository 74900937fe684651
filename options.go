package pagesnap

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultUploadURL is the file-hosting endpoint snapshots are posted to.
const DefaultUploadURL = "https://api.escuelajs.co/api/v1/files/upload"

// DefaultSourceURL is the page loaded when no other URL is given.
const DefaultSourceURL = "https://support.muslimpro.com/hc/en-us/articles/203485970-Privacy-Policy"

// config holds internal configuration shared by ChromeView, Uploader and Session.
type config struct {
	chromePath   string
	autoDownload bool
	timeout      time.Duration
	noSandbox    bool
	headless     string
	uploadURL    string
	httpClient   *http.Client
	page         *PageConfig
	logger       *zap.Logger
}

func defaultConfig() config {
	return config{
		timeout:    30 * time.Second,
		headless:   "new",
		uploadURL:  DefaultUploadURL,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// Option configures a [ChromeView], an [Uploader] or a [Session].
// Options that do not apply to a given type are ignored by it.
type Option func(*config)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default chromedp searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *config) {
		c.chromePath = path
	}
}

// WithAutoDownload fetches a compatible Chromium build when no explicit
// Chrome path is set. The binary is cached by the rod launcher.
func WithAutoDownload() Option {
	return func(c *config) {
		c.autoDownload = true
	}
}

// WithTimeout bounds a page load and a snapshot. Defaults to 30 seconds.
// A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *config) {
		c.noSandbox = true
	}
}

// WithPageConfig sets the paper layout used for snapshots.
func WithPageConfig(pg *PageConfig) Option {
	return func(c *config) {
		c.page = pg
	}
}

// WithUploadURL overrides [DefaultUploadURL].
func WithUploadURL(u string) Option {
	return func(c *config) {
		c.uploadURL = u
	}
}

// WithHTTPClient sets the client used for uploads.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
