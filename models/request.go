package models

// AnalyzeRequest is the parsed input for GET /?url=.
type AnalyzeRequest struct {
	// URL is the canonicalized target page to analyze. Required.
	URL string `json:"url"`

	// Timeout is the maximum duration in seconds for the entire
	// analysis (page load + capture + lookups).
	// Default: 30. Max: 120.
	Timeout int `json:"timeout,omitempty"`

	// Stealth enables anti-bot-detection evasions during the page load
	// (e.g. navigator.webdriver masking). Default: false.
	Stealth bool `json:"stealth,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *AnalyzeRequest) Defaults() {
	if r.Timeout == 0 {
		r.Timeout = 30
	}
}
