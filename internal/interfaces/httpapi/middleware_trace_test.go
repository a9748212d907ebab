package httpapi

import "testing"

func TestShouldTraceRequest(t *testing.T) {
	cases := map[string]bool{
		"/healthz":            false,
		"/health":             false,
		"/livez":              false,
		"/readyz":             false,
		" /healthz ":          false,
		"/v1/leagues":         true,
		"/v1/internal/import": true,
		"/":                   true,
	}

	for path, want := range cases {
		if got := shouldTraceRequest(path); got != want {
			t.Errorf("shouldTraceRequest(%q)=%v want=%v", path, got, want)
		}
	}
}
