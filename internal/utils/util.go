package utils

import (
	"sync"
	"time"

	"github.com/rivo/uniseg"
)

// graphemeBounds returns the byte offsets at which grapheme clusters of s start,
// followed by len(s).
func graphemeBounds(s string) []int {
	bounds := make([]int, 0, len(s)+1)
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		from, _ := gr.Positions()
		bounds = append(bounds, from)
	}
	return append(bounds, len(s))
}

// SnapToGrapheme clamps off into [0, len(s)] and moves it back to the start of the
// grapheme cluster containing it, so splitting s at the result never tears a cluster.
func SnapToGrapheme(s string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(s) {
		return len(s)
	}
	snapped := 0
	for _, b := range graphemeBounds(s) {
		if b > off {
			break
		}
		snapped = b
	}
	return snapped
}

// NextGrapheme returns the byte offset of the cluster boundary after off, or len(s).
func NextGrapheme(s string, off int) int {
	for _, b := range graphemeBounds(s) {
		if b > off {
			return b
		}
	}
	return len(s)
}

// PrevGrapheme returns the byte offset of the cluster boundary before off, or 0.
func PrevGrapheme(s string, off int) int {
	prev := 0
	for _, b := range graphemeBounds(s) {
		if b >= off {
			break
		}
		prev = b
	}
	return prev
}

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// Debouncer provides a way to debounce function calls
type Debouncer struct {
	mutex      sync.Mutex
	timer      *time.Timer
	lastCalled time.Time
}

// Debounce calls the provided function after the specified duration,
// canceling any previous pending calls
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		d.lastCalled = time.Now()
		d.timer = nil
		d.mutex.Unlock()
		fn()
	})
}

// Cancel drops a pending call, if any.
func (d *Debouncer) Cancel() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.timer != nil
}

// LastCalled returns when the debounced function last fired.
func (d *Debouncer) LastCalled() time.Time {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.lastCalled
}
