package urlutil

import "testing"

func TestCanonicalize_ValidURLs(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://example.com", "https://example.com/"},
		{"HTTPS://EXAMPLE.com/Path", "https://example.com/Path"},
		{"http://example.com/a?b=c#frag", "http://example.com/a?b=c"},
		{"  https://example.com/  ", "https://example.com/"},
	}
	for _, tc := range cases {
		got, err := Canonicalize(tc.in)
		if err != nil {
			t.Errorf("Canonicalize(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalize_RejectsNonHTTP(t *testing.T) {
	cases := []string{
		"ftp://example.com",
		"javascript:alert(1)",
		"file:///etc/passwd",
		"example.com", // no scheme
		"",
		"https://", // no host
	}
	for _, in := range cases {
		if _, err := Canonicalize(in); err == nil {
			t.Errorf("Canonicalize(%q) should have been rejected", in)
		}
	}
}

func TestHostname(t *testing.T) {
	if got := Hostname("https://sub.example.com:8443/path"); got != "sub.example.com" {
		t.Errorf("Hostname = %q, want sub.example.com", got)
	}
	if got := Hostname("://bad"); got != "" {
		t.Errorf("Hostname on invalid input = %q, want empty", got)
	}
}

func TestRegistrableDomain(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cdn.static.example.co.uk", "example.co.uk"},
		{"www.example.com", "example.com"},
		{"example.com", "example.com"},
		{"1.1.1.1", ""}, // IPs have no registrable domain
	}
	for _, tc := range cases {
		if got := RegistrableDomain(tc.in); got != tc.want {
			t.Errorf("RegistrableDomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
