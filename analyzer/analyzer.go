// Package analyzer orchestrates one analysis: capture → enrich → partition →
// three concurrent info aggregators → report assembly.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ecostack/footprint/capture"
	"github.com/ecostack/footprint/metrics"
	"github.com/ecostack/footprint/models"
	"github.com/ecostack/footprint/pipeline"
	"github.com/ecostack/footprint/report"
)

// PageCapturer loads a page and collects its network requests.
type PageCapturer interface {
	DoCapture(ctx context.Context, req *models.AnalyzeRequest) (*capture.Result, error)
}

// GeoLookup resolves an IP to a geolocation record.
type GeoLookup interface {
	Lookup(ctx context.Context, ip string) (*models.IPInfo, error)
}

// GreenChecker resolves an IP to a green-hosting record.
type GreenChecker interface {
	Check(ctx context.Context, ip string) (*models.GreenCheck, error)
}

// EntityIdentifier resolves a request URL to the entity behind it.
type EntityIdentifier interface {
	Identify(ctx context.Context, rawURL string) (*models.Entity, error)
}

// Analyzer ties the capture adapter, the enrichment pipeline, and the three
// info aggregators together. All collaborator state is read-only after New,
// so one Analyzer serves concurrent requests.
type Analyzer struct {
	capturer      PageCapturer
	resolver      pipeline.Resolver
	geo           GeoLookup
	green         GreenChecker
	entity        EntityIdentifier
	lookupTimeout time.Duration
}

// New creates an Analyzer.
func New(capturer PageCapturer, resolver pipeline.Resolver, geo GeoLookup, green GreenChecker, entity EntityIdentifier, lookupTimeout time.Duration) *Analyzer {
	return &Analyzer{
		capturer:      capturer,
		resolver:      resolver,
		geo:           geo,
		green:         green,
		entity:        entity,
		lookupTimeout: lookupTimeout,
	}
}

// Analyze runs the full pipeline for one URL. The returned response has
// Data, Summary, AnalysisID and Timing populated; RunLocation is the
// transport layer's concern.
//
// A page that loaded but produced zero usable requests yields a degraded
// response (empty data, zeroed summary) rather than an error: the load
// itself succeeded, there is just nothing to report on.
func (a *Analyzer) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	id := uuid.NewString()
	totalStart := time.Now()

	// ── Capture ─────────────────────────────────────────────────────
	captureStart := time.Now()
	res, err := a.capturer.DoCapture(ctx, req)
	captureMs := time.Since(captureStart).Milliseconds()
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.CapturedRequests.Observe(float64(len(res.Requests)))

	// ── Enrich + partition ──────────────────────────────────────────
	lookupStart := time.Now()
	enriched := pipeline.Enrich(ctx, res.Requests, a.trackedResolver())

	part, err := pipeline.Split(enriched)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoRequests) {
			slog.Warn("page produced no usable requests",
				"analysisId", id,
				"url", req.URL,
			)
			metrics.AnalysesTotal.WithLabelValues("empty").Inc()
			return &models.AnalyzeResponse{
				Data:       make([]models.ReportRow, 0),
				AnalysisID: id,
				Timing: models.TimingInfo{
					TotalMs:   time.Since(totalStart).Milliseconds(),
					CaptureMs: captureMs,
				},
			}, nil
		}
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	// ── Three aggregators, concurrently ─────────────────────────────
	var (
		geoByIP   map[string]*models.IPInfo
		greenByIP map[string]*models.GreenCheck
		entByURL  map[string]*models.Entity
		wg        sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		geoByIP = pipeline.FanOut(ctx, part.UniqueIPs, a.lookupGeo)
	}()
	go func() {
		defer wg.Done()
		greenByIP = pipeline.FanOut(ctx, part.UniqueIPs, a.lookupGreen)
	}()
	go func() {
		defer wg.Done()
		entByURL = pipeline.FanOut(ctx, part.ThirdPartyURLs(), a.lookupEntity)
	}()
	wg.Wait()
	lookupMs := time.Since(lookupStart).Milliseconds()

	// ── Assemble ────────────────────────────────────────────────────
	rows, summary := report.Assemble(enriched, part, geoByIP, greenByIP, entByURL)

	slog.Info("analysis complete",
		"analysisId", id,
		"url", req.URL,
		"totalRequests", summary.TotalRequests,
		"uniqueHosts", summary.UniqueHosts,
		"thirdPartyHosts", summary.ThirdPartyHosts,
		"verifiedThirdParties", summary.VerifiedThirdParties,
	)
	metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	metrics.AnalysisDuration.Observe(time.Since(totalStart).Seconds())

	return &models.AnalyzeResponse{
		Data:       rows,
		Summary:    summary,
		AnalysisID: id,
		Timing: models.TimingInfo{
			TotalMs:   time.Since(totalStart).Milliseconds(),
			CaptureMs: captureMs,
			LookupMs:  lookupMs,
		},
	}, nil
}

// RunLocationFor resolves the caller's IP to a coarse location for the
// runLocation response field. Best-effort: failures yield an empty value.
func (a *Analyzer) RunLocationFor(ctx context.Context, clientIP string) models.RunLocation {
	if clientIP == "" {
		return models.RunLocation{}
	}
	ctx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()

	info, err := a.geo.Lookup(ctx, clientIP)
	if err != nil {
		return models.RunLocation{}
	}
	return models.RunLocation{City: info.City, Country: info.Country}
}

// trackedResolver wraps the DNS resolver so failed resolutions are counted.
func (a *Analyzer) trackedResolver() pipeline.Resolver {
	return resolverFunc(func(ctx context.Context, hostname string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
		defer cancel()

		ip, err := a.resolver.Resolve(ctx, hostname)
		if err != nil {
			metrics.LookupFailures.WithLabelValues("dns").Inc()
		}
		return ip, err
	})
}

type resolverFunc func(ctx context.Context, hostname string) (string, error)

func (f resolverFunc) Resolve(ctx context.Context, hostname string) (string, error) {
	return f(ctx, hostname)
}

func (a *Analyzer) lookupGeo(ctx context.Context, ip string) (*models.IPInfo, bool) {
	ctx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()

	info, err := a.geo.Lookup(ctx, ip)
	if err != nil {
		metrics.LookupFailures.WithLabelValues("geo").Inc()
		slog.Debug("geo lookup failed", "ip", ip, "error", err)
		return nil, false
	}
	return info, true
}

func (a *Analyzer) lookupGreen(ctx context.Context, ip string) (*models.GreenCheck, bool) {
	ctx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()

	rec, err := a.green.Check(ctx, ip)
	if err != nil {
		metrics.LookupFailures.WithLabelValues("green").Inc()
		slog.Debug("green check failed", "ip", ip, "error", err)
		return nil, false
	}
	return rec, true
}

func (a *Analyzer) lookupEntity(ctx context.Context, rawURL string) (*models.Entity, bool) {
	ctx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()

	ent, err := a.entity.Identify(ctx, rawURL)
	if err != nil {
		metrics.LookupFailures.WithLabelValues("entity").Inc()
		slog.Debug("entity lookup failed", "url", rawURL, "error", err)
		return nil, false
	}
	return ent, true
}
