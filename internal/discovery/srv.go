// Package discovery locates Active Directory infrastructure. A domain
// controller is found through the _ldap._tcp SRV records every AD domain
// publishes, so profile-cleanup works without a hardcoded server.
package discovery

import (
	"fmt"
	"log"
	"net"
	"strings"
	"time"
)

const (
	// SRVService is the service label in the DC SRV record.
	SRVService = "ldap"
	// SRVProto is the protocol label in the DC SRV record.
	SRVProto = "tcp"
	// MaxRetries is the default number of SRV lookup retries.
	MaxRetries = 3
	// RetryDelay is the base delay between retries.
	RetryDelay = 2 * time.Second
)

// DiscoverDC looks up a domain controller via DNS SRV records.
// Returns "host:port" or an error if none is published.
func DiscoverDC(domain string) (string, error) {
	if domain == "" {
		return "", fmt.Errorf("no AD domain to discover a DC for")
	}

	_, addrs, err := net.LookupSRV(SRVService, SRVProto, domain)
	if err != nil {
		return "", fmt.Errorf("SRV lookup for _ldap._tcp.%s failed: %w", domain, err)
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("no SRV records found for _ldap._tcp.%s", domain)
	}

	// LookupSRV sorts by priority, so the first entry is the best DC.
	best := addrs[0]
	target := strings.TrimSuffix(best.Target, ".")

	return fmt.Sprintf("%s:%d", target, best.Port), nil
}

// DiscoverDCWithRetry retries SRV discovery with linear backoff.
func DiscoverDCWithRetry(domain string, maxRetries int) (string, error) {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		addr, err := DiscoverDC(domain)
		if err == nil {
			return addr, nil
		}
		lastErr = err
		if i < maxRetries-1 {
			delay := RetryDelay * time.Duration(i+1)
			log.Printf("[discovery] SRV lookup attempt %d/%d failed: %v, retrying in %v", i+1, maxRetries, err, delay)
			time.Sleep(delay)
		}
	}
	return "", fmt.Errorf("DC discovery failed after %d attempts: %w", maxRetries, lastErr)
}
