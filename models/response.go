package models

// AnalyzeResponse is the response for GET /?url=.
type AnalyzeResponse struct {
	// Data holds one ReportRow per enriched request, in capture order.
	Data []ReportRow `json:"data"`

	// Summary contains the derived counts for this run.
	Summary Summary `json:"summary"`

	// RunLocation is the caller-visible location the analysis ran from.
	RunLocation RunLocation `json:"runLocation"`

	// AnalysisID is the unique id assigned to this run (also logged and
	// echoed in webhook events).
	AnalysisID string `json:"analysisId,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching disabled).
	CacheStatus string `json:"cache_status,omitempty"`

	// Error is populated only on failure responses.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// CaptureMs is the time spent loading the page and collecting requests.
	CaptureMs int64 `json:"capture_ms"`

	// LookupMs is the time spent on DNS resolution and the three
	// info-aggregator lookups.
	LookupMs int64 `json:"lookup_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string    `json:"status"` // "healthy" or "degraded"
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool_stats"`
	Version   string    `json:"version"`
}

// PoolStats reports the state of the browser page pool.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}
