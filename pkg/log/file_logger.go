package log

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// FileExtension is the extension of session log files.
const FileExtension = ".pslog"

// SessionPath returns the log file path for a session started at t in dir,
// e.g. dir/20261019-142501-<session>.pslog.
func SessionPath(dir, sessionID string, t time.Time) string {
	return filepath.Join(dir, t.UTC().Format("20060102-150405")+"-"+sessionID+FileExtension)
}

// FileLogger appends session events to a file. Safe for concurrent use.
//
// A failed write never stops a scan: the event is dropped and the first
// error is kept for Err.
type FileLogger struct {
	mu sync.Mutex

	f   *os.File
	enc *cbor.Encoder

	written int
	err     error
	closed  bool
}

// NewFileLogger opens path for appending, creating it if needed.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{f: f, enc: newEventEncoder(f)}, nil
}

// Log implements Logger. Events logged after Close are ignored.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err := l.enc.Encode(event); err != nil {
		if l.err == nil {
			l.err = err
		}
		return
	}
	l.written++
}

// Written returns how many events reached the file.
func (l *FileLogger) Written() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written
}

// Err returns the first write error, if any.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Path returns the file path.
func (l *FileLogger) Path() string {
	return l.f.Name()
}

// Close syncs and closes the file. Further calls return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	syncErr := l.f.Sync()
	if err := l.f.Close(); err != nil {
		return err
	}
	return syncErr
}

var _ Logger = (*FileLogger)(nil)
