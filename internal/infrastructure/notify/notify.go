// Package notify implements ports.Notifier for the terminal and for the
// local web UI.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/metrics"
)

var (
	toastBase   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	levelStyles = map[ports.Level]lipgloss.Style{
		ports.LevelInfo:    toastBase.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("33")),
		ports.LevelSuccess: toastBase.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")),
		ports.LevelError:   toastBase.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")),
	}
)

// Console writes one styled line per notification.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Notify(level ports.Level, msg string) {
	metrics.NotificationsTotal.WithLabelValues(string(level)).Inc()

	style, ok := levelStyles[level]
	if !ok {
		style = levelStyles[ports.LevelInfo]
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, style.Render(msg))
}

// Message is a buffered notification.
type Message struct {
	Level ports.Level
	Text  string
}

// Flash buffers notifications until the next page render drains them.
type Flash struct {
	mu   sync.Mutex
	msgs []Message
}

func NewFlash() *Flash { return &Flash{} }

func (f *Flash) Notify(level ports.Level, msg string) {
	metrics.NotificationsTotal.WithLabelValues(string(level)).Inc()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, Message{Level: level, Text: msg})
}

// Drain returns and clears the buffered notifications.
func (f *Flash) Drain() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.msgs
	f.msgs = nil
	return out
}

// Fanout sends each notification to every sink.
type Fanout []ports.Notifier

func (fo Fanout) Notify(level ports.Level, msg string) {
	for _, n := range fo {
		n.Notify(level, msg)
	}
}
