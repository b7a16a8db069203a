// Package wmi runs Windows Management Instrumentation queries for the
// admin tools, mainly to enumerate the drive mappings a session already
// has. Uses go-ole on Windows; on other platforms every query errors.
package wmi

import (
	"context"
	"fmt"
	"runtime"
)

// QueryResult is one WMI object as a property-name to value map.
type QueryResult map[string]interface{}

// Query executes a WQL query against a namespace, e.g.
// Query(ctx, "root\\CIMV2", "SELECT Name, ProviderName FROM Win32_MappedLogicalDisk").
func Query(ctx context.Context, namespace, query string) ([]QueryResult, error) {
	if runtime.GOOS != "windows" {
		return nil, fmt.Errorf("WMI queries only supported on Windows")
	}
	return queryWindows(ctx, namespace, query)
}

// QuerySingle runs Query and returns the first object.
func QuerySingle(ctx context.Context, namespace, query string) (QueryResult, error) {
	results, err := Query(ctx, namespace, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results for query")
	}
	return results[0], nil
}

// GetPropertyString extracts a string property from a QueryResult.
func GetPropertyString(result QueryResult, name string) (string, bool) {
	val, ok := result[name]
	if !ok {
		return "", false
	}
	sval, ok := val.(string)
	return sval, ok
}

// GetPropertyBool extracts a boolean property from a QueryResult.
func GetPropertyBool(result QueryResult, name string) (bool, bool) {
	val, ok := result[name]
	if !ok {
		return false, false
	}
	bval, ok := val.(bool)
	return bval, ok
}

// GetPropertyInt extracts an integer property from a QueryResult.
func GetPropertyInt(result QueryResult, name string) (int, bool) {
	val, ok := result[name]
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint32:
		return int(v), true
	default:
		return 0, false
	}
}
