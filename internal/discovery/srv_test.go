package discovery

import "testing"

func TestDiscoverDCEmptyDomain(t *testing.T) {
	if _, err := DiscoverDC(""); err == nil {
		t.Error("expected error for empty domain")
	}
}

func TestDiscoverDCWithRetryEmptyDomain(t *testing.T) {
	// Must fail fast without sleeping through retries on a non-lookup error.
	if _, err := DiscoverDCWithRetry("", 1); err == nil {
		t.Error("expected error for empty domain")
	}
}
