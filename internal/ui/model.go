// Package ui renders short-lived notification lines beneath the main view.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/replaysync/replaysync/color"
	"github.com/replaysync/replaysync/style"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// Model holds the notification currently on screen.
type Model struct {
	notification string
	generation   int
}

// NotificationMsg replaces the visible notification.
type NotificationMsg string

// ClearNotificationMsg clears the notification it was scheduled for.
type ClearNotificationMsg struct {
	generation int
}

// Notify returns a tea.Cmd that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(text)
	}
}

// NotifySyncFailure reports a failed sync tick.
func NotifySyncFailure(err error) tea.Cmd {
	return Notify("sync tick failed: " + err.Error())
}

func clearAfter(generation int) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{generation: generation}
	})
}

// Update processes notification messages. Other messages are ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.generation++
		return clearAfter(m.generation)
	case ClearNotificationMsg:
		// a newer notification owns its own timer
		if msg.generation == m.generation {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the visible notification, empty if none.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	notifier := style.Fg(color.Gray)(m.notification)
	lines[len(lines)-1] = lines[len(lines)-1] + "  " + notifier
	return strings.Join(lines, "\n")
}
