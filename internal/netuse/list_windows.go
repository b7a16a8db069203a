//go:build windows

package netuse

import (
	"context"
	"strings"

	"golang.org/x/sys/windows/registry"

	"github.com/osiriscare/winadmin/internal/wmi"
)

// ListMappings enumerates the session's current drive mappings via WMI and
// marks which of them are persisted in the user profile (HKCU\Network).
func ListMappings(ctx context.Context) ([]Mapping, error) {
	results, err := wmi.Query(ctx, "root\\CIMV2",
		"SELECT Name, ProviderName FROM Win32_MappedLogicalDisk")
	if err != nil {
		return nil, err
	}

	persistent := persistentDrives()

	mappings := make([]Mapping, 0, len(results))
	for _, r := range results {
		name, ok := wmi.GetPropertyString(r, "Name")
		if !ok {
			continue
		}
		provider, _ := wmi.GetPropertyString(r, "ProviderName")

		drive := strings.TrimSuffix(name, ":")
		mappings = append(mappings, Mapping{
			Drive:      drive,
			RemotePath: provider,
			Persistent: persistent[strings.ToUpper(drive)],
		})
	}

	return mappings, nil
}

// persistentDrives reads the drive letters under HKCU\Network, where
// Windows records mappings created with CONNECT_UPDATE_PROFILE.
func persistentDrives() map[string]bool {
	drives := make(map[string]bool)

	k, err := registry.OpenKey(registry.CURRENT_USER, "Network", registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return drives
	}
	defer k.Close()

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return drives
	}
	for _, n := range names {
		drives[strings.ToUpper(n)] = true
	}
	return drives
}
