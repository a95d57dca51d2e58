package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecostack/footprint/cache"
	"github.com/ecostack/footprint/config"
	"github.com/ecostack/footprint/models"
	"github.com/ecostack/footprint/urlutil"
	"github.com/ecostack/footprint/webhook"
)

// Service is the analysis orchestrator the handlers depend on.
type Service interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error)
	RunLocationFor(ctx context.Context, clientIP string) models.RunLocation
}

// Analyze returns the handler for GET /?url=.
//
// Orchestration flow:
//  1. Validate the url parameter — no external call happens for bad input.
//  2. Cache lookup by canonical URL.
//  3. Service.Analyze → report rows + summary.
//  4. Attach runLocation, store in cache, fire webhook, return 200.
func Analyze(svc Service, cc *cache.Cache, whCfg config.WebhookConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Validate input ───────────────────────────────────────
		raw := c.Query("url")
		if raw == "" {
			c.String(http.StatusBadRequest, "Missing URL parameter")
			return
		}
		canonical, err := urlutil.Canonicalize(raw)
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid URL protocol")
			return
		}

		req := &models.AnalyzeRequest{
			URL:     canonical,
			Stealth: c.Query("stealth") == "true",
		}
		if t, convErr := strconv.Atoi(c.Query("timeout")); convErr == nil {
			req.Timeout = t
		}
		req.Defaults()

		// ── 2. Cache lookup ─────────────────────────────────────────
		cacheKey := cache.Key(canonical)
		if cached, hit := cc.Get(cacheKey); hit {
			cached.CacheStatus = "hit"
			cached.Timing.TotalMs = time.Since(totalStart).Milliseconds()
			c.JSON(http.StatusOK, cached)
			return
		}

		// ── 3. Analyze ──────────────────────────────────────────────
		resp, err := svc.Analyze(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			if whCfg.URL != "" {
				webhook.DeliverAsync(whCfg.URL, whCfg.Secret, &webhook.Event{
					Type:      "analysis.failed",
					Timestamp: time.Now().Unix(),
					Data:      gin.H{"url": canonical, "error": err.Error()},
				})
			}
			return
		}

		// ── 4. Run location + respond ───────────────────────────────
		resp.RunLocation = runLocation(c, svc)
		resp.Timing.TotalMs = time.Since(totalStart).Milliseconds()

		cc.Set(cacheKey, resp)
		resp.CacheStatus = "miss"

		if whCfg.URL != "" {
			webhook.DeliverAsync(whCfg.URL, whCfg.Secret, &webhook.Event{
				Type:       "analysis.completed",
				AnalysisID: resp.AnalysisID,
				Timestamp:  time.Now().Unix(),
				Data:       gin.H{"url": canonical, "summary": resp.Summary},
			})
		}

		c.JSON(http.StatusOK, resp)
	}
}

// runLocation prefers edge-provided geo headers (set by CDN/load balancer);
// otherwise it asks the geolocation provider about the client IP.
func runLocation(c *gin.Context, svc Service) models.RunLocation {
	city := c.GetHeader("CF-IPCity")
	country := c.GetHeader("CF-IPCountry")
	if city != "" || country != "" {
		return models.RunLocation{City: city, Country: country}
	}
	return svc.RunLocationFor(c.Request.Context(), c.ClientIP())
}

// respondError maps an AnalysisError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error) {
	analysisErr, ok := err.(*models.AnalysisError)
	if !ok {
		analysisErr = models.NewAnalysisError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(analysisErr), models.AnalyzeResponse{
		Error: analysisErr.ToDetail(),
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.AnalysisError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation, models.ErrCodeBrowserCrash:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
