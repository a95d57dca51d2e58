package capture

import "github.com/ecostack/footprint/models"

// Result is the output of one page-load capture.
type Result struct {
	// Requests holds every network response observed during the load, in
	// the order the browser reported them. The first entry is normally the
	// main document.
	Requests []models.CapturedRequest

	// Title is the rendered document title (best-effort).
	Title string

	// FinalURL is the URL after following all redirects.
	FinalURL string
}
