// Package status holds the popup's transient status line and its
// diagnostic log.
package status

import (
	"strings"
	"sync"
	"time"

	"github.com/chxlky/trello-bookmark/internal/models"
	"go.uber.org/zap"
)

const DefaultClearAfter = 5 * time.Second

// Reporter is safe for concurrent use. A message is cleared ClearAfter
// after it was shown unless a newer message replaced it first.
type Reporter struct {
	ClearAfter time.Duration
	Debug      bool

	mu         sync.Mutex
	current    *models.StatusMessage
	generation uint64
	timer      *time.Timer
	lines      []string
}

func NewReporter(clearAfter time.Duration, debug bool) *Reporter {
	if clearAfter <= 0 {
		clearAfter = DefaultClearAfter
	}
	return &Reporter{ClearAfter: clearAfter, Debug: debug}
}

func (r *Reporter) Show(text string, isError bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	gen := r.generation
	r.current = &models.StatusMessage{
		Text:           text,
		IsError:        isError,
		ExpiresAfterMs: r.ClearAfter.Milliseconds(),
	}

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.ClearAfter, func() { r.clear(gen) })

	if isError {
		zap.L().Warn("Status", zap.String("message", text))
	} else {
		zap.L().Info("Status", zap.String("message", text))
	}
}

func (r *Reporter) clear(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation == gen {
		r.current = nil
	}
}

// Current returns the visible message, or nil once it has been cleared.
func (r *Reporter) Current() *models.StatusMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	msg := *r.current
	return &msg
}

// Append adds a line to the diagnostic log. The line always goes to the
// debug logger; it is kept for the popup only when Debug is on.
func (r *Reporter) Append(line string) {
	zap.L().Debug(line)
	if !r.Debug {
		return
	}
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
}

func (r *Reporter) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Log renders the diagnostic log the way the popup displays it, one line
// per entry.
func (r *Reporter) Log() string {
	lines := r.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func (r *Reporter) ClearLog() {
	r.mu.Lock()
	r.lines = nil
	r.mu.Unlock()
}
