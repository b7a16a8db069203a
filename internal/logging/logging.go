// Package logging provides per-run log sessions for the admin tools.
//
// Each tool opens one Session at startup and passes it down explicitly;
// there is no package-level logger state. A Session writes to both stderr
// and a timestamped file under the configured log directory, so operators
// see output live and helpdesk can pull the file afterwards.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Session is an open log destination for a single tool run.
type Session struct {
	tool   string
	path   string
	file   *os.File
	logger *log.Logger
	start  time.Time
}

// Open creates the log directory if needed and starts a new session file
// named <tool>-YYYYMMDD-HHMMSS.log.
func Open(dir, tool string) (*Session, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.log", tool, time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	s := &Session{
		tool:   tool,
		path:   path,
		file:   f,
		logger: log.New(io.MultiWriter(os.Stderr, f), "", log.LstdFlags),
		start:  time.Now(),
	}
	s.logger.Printf("[%s] Session started, logging to %s", tool, path)
	return s, nil
}

// Discard returns a session that drops everything. Used by tests and by
// callers that have not opened a real session yet.
func Discard() *Session {
	return &Session{
		tool:   "discard",
		logger: log.New(io.Discard, "", 0),
		start:  time.Now(),
	}
}

// Printf writes one log line tagged with a component prefix.
func (s *Session) Printf(component, format string, args ...interface{}) {
	s.logger.Printf("[%s] "+format, append([]interface{}{component}, args...)...)
}

// Path returns the session log file path. Empty for discard sessions.
func (s *Session) Path() string {
	return s.path
}

// Close writes the session footer and closes the file.
func (s *Session) Close() error {
	s.logger.Printf("[%s] Session finished after %v", s.tool, time.Since(s.start).Round(time.Millisecond))
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
