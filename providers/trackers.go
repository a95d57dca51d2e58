package providers

import (
	"strings"

	"github.com/ecostack/footprint/models"
)

// trackerEntity is a built-in entry of well-known third-party domains and
// the organisations behind them. Consulted when the remote entity API is
// unconfigured or has no match.
type trackerEntity struct {
	Name     string
	Category string
	Website  string
}

var trackerDomains = map[string]trackerEntity{
	"doubleclick.net":        {Name: "Google", Category: "Advertising", Website: "https://about.google"},
	"googlesyndication.com":  {Name: "Google", Category: "Advertising", Website: "https://about.google"},
	"googleadservices.com":   {Name: "Google", Category: "Advertising", Website: "https://about.google"},
	"google-analytics.com":   {Name: "Google", Category: "Analytics", Website: "https://about.google"},
	"googletagmanager.com":   {Name: "Google", Category: "Tag Management", Website: "https://about.google"},
	"googletagservices.com":  {Name: "Google", Category: "Advertising", Website: "https://about.google"},
	"gstatic.com":            {Name: "Google", Category: "CDN", Website: "https://about.google"},
	"googleapis.com":         {Name: "Google", Category: "CDN", Website: "https://about.google"},
	"facebook.net":           {Name: "Meta", Category: "Social", Website: "https://about.meta.com"},
	"facebook.com":           {Name: "Meta", Category: "Social", Website: "https://about.meta.com"},
	"fbcdn.net":              {Name: "Meta", Category: "CDN", Website: "https://about.meta.com"},
	"adnxs.com":              {Name: "Xandr", Category: "Advertising", Website: "https://www.xandr.com"},
	"adsrvr.org":             {Name: "The Trade Desk", Category: "Advertising", Website: "https://www.thetradedesk.com"},
	"amazon-adsystem.com":    {Name: "Amazon", Category: "Advertising", Website: "https://advertising.amazon.com"},
	"criteo.com":             {Name: "Criteo", Category: "Advertising", Website: "https://www.criteo.com"},
	"criteo.net":             {Name: "Criteo", Category: "Advertising", Website: "https://www.criteo.com"},
	"outbrain.com":           {Name: "Outbrain", Category: "Advertising", Website: "https://www.outbrain.com"},
	"taboola.com":            {Name: "Taboola", Category: "Advertising", Website: "https://www.taboola.com"},
	"moatads.com":            {Name: "Oracle Moat", Category: "Ad Verification", Website: "https://www.oracle.com"},
	"pubmatic.com":           {Name: "PubMatic", Category: "Advertising", Website: "https://pubmatic.com"},
	"rubiconproject.com":     {Name: "Magnite", Category: "Advertising", Website: "https://www.magnite.com"},
	"scorecardresearch.com":  {Name: "Comscore", Category: "Analytics", Website: "https://www.comscore.com"},
	"quantserve.com":         {Name: "Quantcast", Category: "Analytics", Website: "https://www.quantcast.com"},
	"hotjar.com":             {Name: "Hotjar", Category: "Analytics", Website: "https://www.hotjar.com"},
	"mixpanel.com":           {Name: "Mixpanel", Category: "Analytics", Website: "https://mixpanel.com"},
	"segment.io":             {Name: "Twilio Segment", Category: "Analytics", Website: "https://segment.com"},
	"segment.com":            {Name: "Twilio Segment", Category: "Analytics", Website: "https://segment.com"},
	"ads-twitter.com":        {Name: "X Corp", Category: "Advertising", Website: "https://x.com"},
	"chartbeat.com":          {Name: "Chartbeat", Category: "Analytics", Website: "https://chartbeat.com"},
	"optimizely.com":         {Name: "Optimizely", Category: "A/B Testing", Website: "https://www.optimizely.com"},
	"media.net":              {Name: "Media.net", Category: "Advertising", Website: "https://www.media.net"},
	"openx.net":              {Name: "OpenX", Category: "Advertising", Website: "https://www.openx.com"},
	"casalemedia.com":        {Name: "Index Exchange", Category: "Advertising", Website: "https://www.indexexchange.com"},
	"demdex.net":             {Name: "Adobe", Category: "Audience Management", Website: "https://www.adobe.com"},
	"krxd.net":               {Name: "Salesforce", Category: "Audience Management", Website: "https://www.salesforce.com"},
	"bluekai.com":            {Name: "Oracle", Category: "Audience Management", Website: "https://www.oracle.com"},
	"mathtag.com":            {Name: "MediaMath", Category: "Advertising", Website: "https://www.mediamath.com"},
	"sharethis.com":          {Name: "ShareThis", Category: "Social", Website: "https://sharethis.com"},
	"addthis.com":            {Name: "Oracle AddThis", Category: "Social", Website: "https://www.oracle.com"},
	"cloudflare.com":         {Name: "Cloudflare", Category: "CDN", Website: "https://www.cloudflare.com"},
	"cloudfront.net":         {Name: "Amazon", Category: "CDN", Website: "https://aws.amazon.com"},
	"akamaihd.net":           {Name: "Akamai", Category: "CDN", Website: "https://www.akamai.com"},
	"fastly.net":             {Name: "Fastly", Category: "CDN", Website: "https://www.fastly.com"},
	"jsdelivr.net":           {Name: "jsDelivr", Category: "CDN", Website: "https://www.jsdelivr.com"},
	"newrelic.com":           {Name: "New Relic", Category: "Monitoring", Website: "https://newrelic.com"},
	"nr-data.net":            {Name: "New Relic", Category: "Monitoring", Website: "https://newrelic.com"},
	"sentry.io":              {Name: "Sentry", Category: "Monitoring", Website: "https://sentry.io"},
	"stripe.com":             {Name: "Stripe", Category: "Payments", Website: "https://stripe.com"},
	"stripe.network":         {Name: "Stripe", Category: "Payments", Website: "https://stripe.com"},
}

// lookupTracker finds the entity for a hostname, walking up parent domains
// ("pagead2.googlesyndication.com" → "googlesyndication.com").
func lookupTracker(host string) (trackerEntity, bool) {
	host = strings.ToLower(host)
	if e, ok := trackerDomains[host]; ok {
		return e, true
	}
	for {
		idx := strings.IndexByte(host, '.')
		if idx < 0 {
			break
		}
		host = host[idx+1:]
		if e, ok := trackerDomains[host]; ok {
			return e, true
		}
	}
	return trackerEntity{}, false
}

// toEntity converts a table entry to the report representation.
func (t trackerEntity) toEntity(rawURL string) *models.Entity {
	return &models.Entity{
		URL:      rawURL,
		Name:     t.Name,
		Category: t.Category,
		Website:  t.Website,
	}
}
