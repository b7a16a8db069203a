//go:build !windows

package netuse

import (
	"context"
	"fmt"
)

// ListMappings is only available on Windows.
func ListMappings(ctx context.Context) ([]Mapping, error) {
	return nil, fmt.Errorf("drive enumeration only supported on Windows")
}
