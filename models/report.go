package models

// CapturedRequest is one network response observed while the page loaded.
// RemoteIPAddress is the socket-level peer IP as reported by the browser;
// it is used only as a liveness filter (responses without an observed IP are
// dropped) and is never copied into the report — see EnrichedRequest.
type CapturedRequest struct {
	URL             string `json:"url"`
	RemoteIPAddress string `json:"remoteIpAddress,omitempty"`
}

// EnrichedRequest is a CapturedRequest whose hostname has been re-resolved
// through the DNS-over-HTTPS resolver. IPAddress is the fresh resolution for
// Hostname and is empty when resolution failed.
type EnrichedRequest struct {
	URL       string `json:"url"`
	Hostname  string `json:"hostname"`
	IPAddress string `json:"ipAddress,omitempty"`
}

// IPInfo is a geolocation record keyed by IP (ipinfo-style fields).
type IPInfo struct {
	IP       string `json:"ip"`
	Hostname string `json:"hostname,omitempty"`
	City     string `json:"city,omitempty"`
	Region   string `json:"region,omitempty"`
	Country  string `json:"country,omitempty"`
	Loc      string `json:"loc,omitempty"`
	Org      string `json:"org,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// GreenCheck is a green-hosting registry record for a single IP or host.
// URL echoes the checked key as returned by the registry.
type GreenCheck struct {
	URL      string `json:"url"`
	Green    bool   `json:"green"`
	HostedBy string `json:"hosted_by"`
}

// Entity identifies the commercial organisation behind a third-party host.
type Entity struct {
	URL      string `json:"url"`
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ReportRow is the final per-request output unit: the enriched request plus
// the first-match record from each aggregator (nil / empty when no match).
type ReportRow struct {
	URL               string  `json:"url"`
	Hostname          string  `json:"hostname"`
	RegistrableDomain string  `json:"registrableDomain,omitempty"`
	IPAddress         string  `json:"ipAddress,omitempty"`
	IPInfo            *IPInfo `json:"ipInfo,omitempty"`
	// GreenCheck is the hosted_by projection of the matching green record.
	GreenCheck string  `json:"greencheck,omitempty"`
	ThirdParty *Entity `json:"thirdParty,omitempty"`
}

// Summary holds the derived counts, recomputed fresh each run.
type Summary struct {
	TotalRequests        int `json:"totalRequests"`
	UniqueHosts          int `json:"uniqueHosts"`
	ThirdPartyHosts      int `json:"thirdPartyHosts"`
	VerifiedThirdParties int `json:"verifiedThirdParties"`
}

// RunLocation is where this analysis ran from, as seen by the caller.
type RunLocation struct {
	City    string `json:"city"`
	Country string `json:"country"`
}
