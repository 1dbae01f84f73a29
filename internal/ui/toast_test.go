package ui

import (
	"testing"
	"time"
)

func TestToastExpires(t *testing.T) {
	var toast Toast
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if _, _, ok := toast.Current(now); ok {
		t.Fatal("a new toast must be hidden")
	}

	toast.Show("Cannot open IMG_0001.jpg", ToastError, now)
	msg, kind, ok := toast.Current(now.Add(time.Second))
	if !ok || msg != "Cannot open IMG_0001.jpg" || kind != ToastError {
		t.Errorf("Current() = (%q, %v, %v)", msg, kind, ok)
	}
	if _, _, ok := toast.Current(now.Add(toastDuration)); ok {
		t.Error("toast must be hidden once it expired")
	}

	// A newer message replaces the old one and restarts the clock
	later := now.Add(2 * time.Second)
	toast.Show("Config has errors", ToastWarning, later)
	if msg, _, ok := toast.Current(now.Add(4 * time.Second)); !ok || msg != "Config has errors" {
		t.Errorf("Current() = (%q, %v)", msg, ok)
	}
}

func TestToastColors(t *testing.T) {
	for _, kind := range []ToastKind{ToastInfo, ToastWarning, ToastError} {
		bg, fg := toastColors(kind)
		if bg == fg {
			t.Errorf("kind %d: text would be invisible", kind)
		}
	}
}
