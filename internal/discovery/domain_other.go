//go:build !windows

package discovery

import (
	"os"
	"strings"
)

// DiscoverDomain honors USERDNSDOMAIN if set; there is no AD membership
// to inspect on non-Windows.
func DiscoverDomain() string {
	return strings.ToLower(os.Getenv("USERDNSDOMAIN"))
}
