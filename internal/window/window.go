// Package window is the shell around the rendered document: modal dialogs
// and closing the window.
package window

import (
	"log/slog"
	"sync"
)

// Window is what view-models use for alert, confirm and close.
type Window interface {
	Alert(msg string)
	Confirm(msg string) bool
	Close()
	// Closed is closed once Close has been called.
	Closed() <-chan struct{}
}

type closer struct {
	once   sync.Once
	closed chan struct{}
}

func newCloser() closer {
	return closer{closed: make(chan struct{})}
}

func (c *closer) Close() {
	c.once.Do(func() { close(c.closed) })
}

func (c *closer) Closed() <-chan struct{} {
	return c.closed
}

// Log is a headless window: dialogs go to the log and every confirm gets the
// same configured answer.
type Log struct {
	closer
	logger  *slog.Logger
	confirm bool
}

var _ Window = (*Log)(nil)

// NewLog creates a headless window answering every confirm with confirm.
func NewLog(logger *slog.Logger, confirm bool) *Log {
	return &Log{closer: newCloser(), logger: logger, confirm: confirm}
}

// Alert implements Window.
func (w *Log) Alert(msg string) {
	w.logger.Warn("Alert", "message", msg)
}

// Confirm implements Window.
func (w *Log) Confirm(msg string) bool {
	w.logger.Info("Confirm", "message", msg, "answer", w.confirm)
	return w.confirm
}

// Close implements Window.
func (w *Log) Close() {
	w.logger.Info("Window closed")
	w.closer.Close()
}

// Recorder is a Window for tests. It remembers every dialog.
type Recorder struct {
	closer

	mu            sync.Mutex
	alerts        []string
	confirms      []string
	ConfirmAnswer bool
}

var _ Window = (*Recorder)(nil)

// NewRecorder creates a recorder answering confirms with false.
func NewRecorder() *Recorder {
	return &Recorder{closer: newCloser()}
}

// Alert implements Window.
func (r *Recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, msg)
}

// Confirm implements Window.
func (r *Recorder) Confirm(msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirms = append(r.confirms, msg)
	return r.ConfirmAnswer
}

// Alerts returns the alerts shown so far.
func (r *Recorder) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.alerts...)
}

// Confirms returns the confirm prompts shown so far.
func (r *Recorder) Confirms() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.confirms...)
}

// IsClosed reports whether Close was called.
func (r *Recorder) IsClosed() bool {
	select {
	case <-r.Closed():
		return true
	default:
		return false
	}
}
