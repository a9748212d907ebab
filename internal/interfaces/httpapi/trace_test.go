package httpapi

import "testing"

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	allowed := map[string]bool{
		"httpapi.Handler.ListLeagues":      true,
		"httpapi.Handler.RunImport":        true,
		"httpapi.RequestLogging":           false,
		"httpapi.writeJSON":                false,
		"httpapi.RequireInternalJobToken":  false,
	}

	for name, want := range allowed {
		if got := shouldCreateHTTPAPISpan(name); got != want {
			t.Errorf("shouldCreateHTTPAPISpan(%q)=%v want=%v", name, got, want)
		}
	}
}
