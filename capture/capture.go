// Package capture drives a headless browser to load a page and collect
// every network response's destination.
package capture

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"

	"github.com/ecostack/footprint/config"
	"github.com/ecostack/footprint/models"
)

// Capturer manages the global browser lifecycle and the page pool.
// It is safe for concurrent use.
type Capturer struct {
	browser     *rod.Browser
	pagePool    rod.Pool[rod.Page]
	browserCfg  config.BrowserConfig
	captureCfg  config.CaptureConfig
	activePages atomic.Int32
	startTime   time.Time
}

// NewCapturer launches a headless browser and initialises the reusable page pool.
func NewCapturer(browserCfg config.BrowserConfig, captureCfg config.CaptureConfig) (*Capturer, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}
	if browserCfg.DefaultProxy != "" {
		l = l.Proxy(browserCfg.DefaultProxy)
	}

	// Flags that keep background tabs from throttling network activity —
	// a throttled tab under-reports exactly the late third-party beacons
	// this service exists to observe.
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-ipc-flooding-protection"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewAnalysisError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewAnalysisError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	pool := rod.NewPagePool(browserCfg.MaxPages)
	slog.Info("page pool created", "maxPages", browserCfg.MaxPages)

	return &Capturer{
		browser:    browser,
		pagePool:   pool,
		browserCfg: browserCfg,
		captureCfg: captureCfg,
		startTime:  time.Now(),
	}, nil
}

// Stats returns a snapshot of the pool's current state.
func (c *Capturer) Stats() models.PoolStats {
	return models.PoolStats{
		MaxPages:    c.browserCfg.MaxPages,
		ActivePages: int(c.activePages.Load()),
	}
}

// Close drains the page pool and kills the browser process.
// Call this on graceful shutdown to prevent zombie Chrome processes.
func (c *Capturer) Close() {
	slog.Info("capturer shutting down: draining page pool")
	c.pagePool.Cleanup(func(p *rod.Page) {
		_ = p.Close()
	})
	slog.Info("capturer shutting down: closing browser")
	c.browser.MustClose()
	slog.Info("capturer shutdown complete")
}
