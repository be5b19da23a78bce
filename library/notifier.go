package library

import "time"

// Notifier reports the outcome of a store operation to the user.
type Notifier interface {
	ShowMessage(text string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(text string)

func (f NotifierFunc) ShowMessage(text string) { f(text) }

// DefaultMessageDuration is how long a message stays visible.
const DefaultMessageDuration = 3 * time.Second

// MessageBox keeps at most one message on screen. A new message replaces the
// previous one and restarts the display timer. The terminal shell renders it
// before each prompt.
type MessageBox struct {
	duration time.Duration
	now      func() time.Time

	text   string
	shown  time.Time
	active bool
}

// NewMessageBox creates a MessageBox whose messages hide after duration.
func NewMessageBox(duration time.Duration) *MessageBox {
	if duration <= 0 {
		duration = DefaultMessageDuration
	}
	return &MessageBox{duration: duration, now: time.Now}
}

// ShowMessage replaces the visible message.
func (m *MessageBox) ShowMessage(text string) {
	m.text = text
	m.shown = m.now()
	m.active = true
}

// Current returns the visible message, if its display time has not run out.
func (m *MessageBox) Current() (string, bool) {
	if !m.active {
		return "", false
	}
	if m.now().Sub(m.shown) >= m.duration {
		m.active = false
		return "", false
	}
	return m.text, true
}

// Dismiss hides the current message early.
func (m *MessageBox) Dismiss() { m.active = false }
