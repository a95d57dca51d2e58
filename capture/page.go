package capture

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/ecostack/footprint/models"
)

// DoCapture loads the requested page and returns every network response's
// (url, remoteIpAddress) pair.
//
// Lifecycle (numbered steps match the inline comments):
//
//	1. Timeout guard       – hard deadline on the entire operation
//	2. Acquire page        – borrow a tab from the pool (or create one)
//	3. DEFER: cleanup      – about:blank + return to pool (leak prevention)
//	4. Stealth injection   – mask navigator.webdriver etc. (before navigation!)
//	5. Context binding     – propagate timeout to all Rod operations
//	6. Event listener      – MUST be registered before Navigate; a listener
//	                         mounted after Navigate misses the document
//	                         response itself and every early subresource
//	7. Navigate            – triggers page load
//	8. Wait + settle       – DOM stable, then a settle window for late beacons
//	9. Snapshot            – copy the collected requests, extract title/URL
func (c *Capturer) DoCapture(ctx context.Context, req *models.AnalyzeRequest) (*Result, error) {
	// ── 1. Timeout guard ──────────────────────────────────────────────
	timeout := time.Duration(req.Timeout) * time.Second
	if timeout <= 0 {
		timeout = c.captureCfg.DefaultTimeout
	}
	if timeout > c.captureCfg.MaxTimeout {
		timeout = c.captureCfg.MaxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// ── 2. Acquire page from pool ─────────────────────────────────────
	c.activePages.Add(1)
	defer c.activePages.Add(-1)

	page, acquireErr := c.pagePool.Get(func() (*rod.Page, error) {
		return c.browser.Page(proto.TargetCreateTarget{})
	})
	if acquireErr != nil {
		return nil, models.NewAnalysisError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			acquireErr,
		)
	}

	// ── 3. CRITICAL DEFER: release the session on every exit path ─────
	// about:blank uses the ORIGINAL page reference (without request
	// context), so cleanup succeeds even if the request context expired.
	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank",
				"error", navErr,
			)
		}
		c.pagePool.Put(page)
	}()

	// ── 4. Stealth injection ──────────────────────────────────────────
	if req.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: proto.NetworkHeaders{
			"Accept-Language": gson.New("en-US,en;q=0.9"),
		},
	}.Call(page)

	// ── 5. Bind request context to page ───────────────────────────────
	p := page.Context(ctx)

	// ── 6. Network event listener, mounted BEFORE navigation ──────────
	var mu sync.Mutex
	var captured []models.CapturedRequest

	wait := p.EachEvent(func(e *proto.NetworkResponseReceived) {
		mu.Lock()
		captured = append(captured, models.CapturedRequest{
			URL:             e.Response.URL,
			RemoteIPAddress: e.Response.RemoteIPAddress,
		})
		mu.Unlock()
	})
	go wait() // pump exits when ctx is cancelled

	// ── 7. Navigate ───────────────────────────────────────────────────
	if navErr := p.Navigate(req.URL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to target URL failed")
	}

	// ── 8. Wait for DOM stability, then let late requests land ────────
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"error", stableErr,
		)
	}
	if c.captureCfg.SettleDelay > 0 {
		select {
		case <-time.After(c.captureCfg.SettleDelay):
		case <-ctx.Done():
		}
	}

	// ── 9. Snapshot the collected requests ────────────────────────────
	mu.Lock()
	requests := make([]models.CapturedRequest, len(captured))
	copy(requests, captured)
	mu.Unlock()

	title := evalStringOrEmpty(p, `() => document.title`)
	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = req.URL
	}

	slog.Debug("capture complete",
		"url", req.URL,
		"requests", len(requests),
	)

	return &Result{
		Requests: requests,
		Title:    title,
		FinalURL: finalURL,
	}, nil
}

// evalStringOrEmpty evaluates a JS expression and returns the string result,
// swallowing any errors (useful for optional metadata extraction).
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// categorizeError wraps raw errors into typed AnalysisErrors so the API layer
// can map them to appropriate HTTP status codes.
func categorizeError(err error, msg string) *models.AnalysisError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewAnalysisError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewAnalysisError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewAnalysisError(models.ErrCodeNavigation, msg, err)
	}
}
