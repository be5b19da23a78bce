package library

import (
	"testing"
	"time"
)

func TestMessageBoxNewestReplacesOldest(t *testing.T) {
	box := NewMessageBox(time.Second)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	box.now = func() time.Time { return now }

	box.ShowMessage("first")
	box.ShowMessage("second")

	msg, ok := box.Current()
	if !ok || msg != "second" {
		t.Fatalf("want second, got %q ok=%v", msg, ok)
	}

	now = now.Add(time.Second)
	if _, ok := box.Current(); ok {
		t.Fatalf("message should expire after its duration")
	}

	box.ShowMessage("third")
	if msg, ok := box.Current(); !ok || msg != "third" {
		t.Fatalf("a new message should restart the timer, got %q ok=%v", msg, ok)
	}
}

func TestMessageBoxDismiss(t *testing.T) {
	box := NewMessageBox(0)
	if box.duration != DefaultMessageDuration {
		t.Fatalf("zero duration should fall back to default")
	}
	box.ShowMessage("hello")
	box.Dismiss()
	if _, ok := box.Current(); ok {
		t.Fatalf("dismissed message should be hidden")
	}
}

func TestNotifierFunc(t *testing.T) {
	var got string
	var n Notifier = NotifierFunc(func(s string) { got = s })
	n.ShowMessage("ping")
	if got != "ping" {
		t.Fatalf("want ping, got %q", got)
	}
}
