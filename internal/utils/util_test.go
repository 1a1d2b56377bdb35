package utils

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestGraphemeOffsets(t *testing.T) {
	// "e" + combining acute, then ZWSP, then "x".
	s := "e\u0301\u200bx"
	tests := []struct {
		name string
		fn   func(string, int) int
		off  int
		want int
	}{
		{"snap inside cluster", SnapToGrapheme, 1, 0},
		{"snap on boundary", SnapToGrapheme, 3, 3},
		{"snap negative", SnapToGrapheme, -4, 0},
		{"snap past end", SnapToGrapheme, 99, len(s)},
		{"next from start", NextGrapheme, 0, 3},
		{"next over zwsp", NextGrapheme, 3, 6},
		{"next at end", NextGrapheme, len(s), len(s)},
		{"prev from end", PrevGrapheme, len(s), 6},
		{"prev over cluster", PrevGrapheme, 3, 0},
		{"prev at start", PrevGrapheme, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(s, tt.off); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDebouncerCoalescesCalls(t *testing.T) {
	var d Debouncer
	var calls int32
	done := make(chan struct{}, 1)
	for i := 0; i < 5; i++ {
		d.Debounce(20*time.Millisecond, func() {
			atomic.AddInt32(&calls, 1)
			done <- struct{}{}
		})
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced function never ran")
	}
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
	if d.Pending() {
		t.Error("Pending() = true after the call fired")
	}
	if d.LastCalled().IsZero() {
		t.Error("LastCalled() is zero after the call fired")
	}
}

func TestDebouncerCancel(t *testing.T) {
	var d Debouncer
	var calls int32
	d.Debounce(30*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
	d.Cancel()
	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
}
