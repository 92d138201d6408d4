package httpapi

import "testing"

func TestShouldTraceRequest_SystemPaths(t *testing.T) {
	paths := []string{"/healthz", "/health", "/livez", "/readyz", "/metrics", " /healthz "}
	for _, path := range paths {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
}

func TestShouldTraceRequest_ToolPaths(t *testing.T) {
	paths := []string{"/api/extract", "/api/stats", "/api/answer", "/", "/docs"}
	for _, path := range paths {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestRouteLabel_CollapsesUnknownPaths(t *testing.T) {
	if got := routeLabel("/api/answer"); got != "/api/answer" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := routeLabel("/wp-login.php"); got != "other" {
		t.Fatalf("unexpected label: %q", got)
	}
}
