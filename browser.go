package pagesnap

import (
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
)

// resolveBrowser returns the Chrome executable to launch. An explicit path
// wins; otherwise, with auto-download enabled, a Chromium build is fetched
// into the rod cache. An empty result lets chromedp search PATH.
func resolveBrowser(cfg config) (string, error) {
	if cfg.chromePath != "" || !cfg.autoDownload {
		return cfg.chromePath, nil
	}
	if path, found := launcher.LookPath(); found {
		return path, nil
	}
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("pagesnap: downloading browser: %w", err)
	}
	return path, nil
}
