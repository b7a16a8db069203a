//go:build windows

package discovery

import (
	"os"
	"os/exec"
	"strings"
)

// DiscoverDomain detects the AD domain this machine is joined to.
// Tries USERDNSDOMAIN first, then WMI.
func DiscoverDomain() string {
	// USERDNSDOMAIN is set at user login on domain-joined machines
	if d := os.Getenv("USERDNSDOMAIN"); d != "" {
		return strings.ToLower(d)
	}

	// Not set for SYSTEM or in some Citrix sessions; ask WMI instead
	out, err := exec.Command("powershell.exe", "-NoProfile", "-NonInteractive", "-Command",
		"(Get-WmiObject Win32_ComputerSystem).Domain").CombinedOutput()
	if err == nil {
		domain := strings.TrimSpace(string(out))
		if domain != "" && !strings.EqualFold(domain, "WORKGROUP") {
			return strings.ToLower(domain)
		}
	}

	return ""
}
