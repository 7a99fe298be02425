package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// LogPresenter writes alerts to a structured logger.
type LogPresenter struct {
	Logger *slog.Logger
}

// Alert implements Presenter.
func (p LogPresenter) Alert(level Level, message string, opts Options) {
	logLevel := slog.LevelInfo
	if level == LevelWarning {
		logLevel = slog.LevelWarn
	}
	p.Logger.Log(context.Background(), logLevel, message,
		"alert_level", level,
		"icon", opts.Icon,
		"style", opts.StyleClass)
}

// TerminalPresenter prints one styled line per alert.
type TerminalPresenter struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[string]lipgloss.Style
	plain  lipgloss.Style
}

// NewTerminalPresenter creates a presenter that writes to w. Colors are
// used only when w is a terminal that supports them.
func NewTerminalPresenter(w io.Writer) *TerminalPresenter {
	r := lipgloss.NewRenderer(w)
	base := r.NewStyle().PaddingLeft(1)

	return &TerminalPresenter{
		w:     w,
		plain: base,
		styles: map[string]lipgloss.Style{
			ClassHighPriority:   base.Foreground(lipgloss.Color("9")).Bold(true),
			ClassMediumPriority: base.Foreground(lipgloss.Color("11")),
			ClassLowPriority:    base.Foreground(lipgloss.Color("10")),
			ClassCompletedHigh:  base.Foreground(lipgloss.Color("13")).Bold(true),
			ClassCompleted:      base.Foreground(lipgloss.Color("10")),
			ClassDueUrgent:      base.Foreground(lipgloss.Color("9")).Bold(true).Underline(true),
			ClassDueSoon:        base.Foreground(lipgloss.Color("12")),
			ClassDueToday:       base.Foreground(lipgloss.Color("11")).Bold(true),
		},
	}
}

// Alert implements Presenter.
func (p *TerminalPresenter) Alert(level Level, message string, opts Options) {
	style, ok := p.styles[opts.StyleClass]
	if !ok {
		style = p.plain
	}

	line := message
	if opts.Icon != "" {
		line = opts.Icon + " " + message
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, style.Render(line))
}

// Feed keeps the most recent alerts in memory for later retrieval.
type Feed struct {
	mu    sync.Mutex
	size  int
	items []Alert
	now   func() time.Time
}

// NewFeed creates a feed holding at most size alerts.
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 50
	}
	return &Feed{size: size, now: time.Now}
}

// Alert implements Presenter.
func (f *Feed) Alert(level Level, message string, opts Options) {
	f.Record(Alert{Level: level, Message: message, Options: opts})
}

// Record implements Recorder.
func (f *Feed) Record(a Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if a.At.IsZero() {
		a.At = f.now()
	}
	f.items = append(f.items, a)
	if over := len(f.items) - f.size; over > 0 {
		f.items = append(f.items[:0], f.items[over:]...)
	}
}

// Recent returns the buffered alerts, oldest first.
func (f *Feed) Recent() []Alert {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Alert, len(f.items))
	copy(out, f.items)
	return out
}

// Multi fans every alert out to each presenter in order.
type Multi []Presenter

// Alert implements Presenter.
func (m Multi) Alert(level Level, message string, opts Options) {
	for _, p := range m {
		p.Alert(level, message, opts)
	}
}

// Record implements Recorder, passing the full alert to presenters that
// keep it.
func (m Multi) Record(a Alert) {
	for _, p := range m {
		deliver(p, a)
	}
}
