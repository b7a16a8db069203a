package logging

import (
	"fmt"
	"os/exec"
	"runtime"
)

// DefaultViewer is the log viewer started when none is configured.
const DefaultViewer = "notepad.exe"

// LaunchViewer opens a log file in the given viewer without waiting for it
// to exit. Helpdesk uses this to hand the current log to the operator.
func LaunchViewer(viewer, path string) error {
	if path == "" {
		return fmt.Errorf("no log file to view")
	}
	if viewer == "" {
		if runtime.GOOS != "windows" {
			return fmt.Errorf("no log viewer configured")
		}
		viewer = DefaultViewer
	}

	cmd := exec.Command(viewer, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start log viewer %s: %w", viewer, err)
	}
	return nil
}

// View opens this session's log file in the given viewer.
func (s *Session) View(viewer string) error {
	return LaunchViewer(viewer, s.path)
}
