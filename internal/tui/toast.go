package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastDuration is how long a notification stays on the status line.
const toastDuration = 5 * time.Second

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastError
)

// toast is a transient status-line notification. The zero value is inactive.
type toast struct {
	message string
	level   toastLevel
	expires time.Time
}

type toastExpiredMsg struct{}

func newToast(msg string, level toastLevel) toast {
	return toast{message: msg, level: level, expires: time.Now().Add(toastDuration)}
}

func (t toast) isActive() bool {
	if t.message == "" {
		return false
	}
	return time.Now().Before(t.expires)
}

func (t toast) render() string {
	if !t.isActive() {
		return ""
	}
	switch t.level {
	case toastSuccess:
		return toastSuccessStyle.Render(t.message)
	case toastError:
		return toastErrorStyle.Render(t.message)
	default:
		return t.message
	}
}

func scheduleToastClear() tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}
