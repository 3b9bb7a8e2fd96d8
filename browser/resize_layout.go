package browser

import (
	"time"

	"fyne.io/fyne/v2"
)

// resizeDebounce is the shortest gap between two onResize calls.
const resizeDebounce = 60 * time.Millisecond

// resizeLayout wraps another layout and calls onResize after real size
// changes, coalescing bursts while the window is dragged.
type resizeLayout struct {
	internal fyne.Layout
	onResize func()

	lastSize  fyne.Size
	lastFired time.Time
	timer     *time.Timer
}

func (r *resizeLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	r.internal.Layout(objects, size)
	if r.onResize == nil {
		return
	}

	// Layouts also run for reasons other than a size change.
	if abs32(size.Width-r.lastSize.Width) < 0.5 && abs32(size.Height-r.lastSize.Height) < 0.5 {
		return
	}
	r.lastSize = size
	r.scheduleResize()
}

func (r *resizeLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return r.internal.MinSize(objects)
}

func (r *resizeLayout) scheduleResize() {
	// Never touch widgets from inside Layout; hop through fyne.Do.
	now := time.Now()
	elapsed := now.Sub(r.lastFired)
	if elapsed >= resizeDebounce {
		r.lastFired = now
		fyne.Do(r.onResize)
		return
	}

	delay := resizeDebounce - elapsed
	if r.timer == nil {
		r.timer = time.AfterFunc(delay, func() {
			fyne.Do(func() {
				r.timer = nil
				r.lastFired = time.Now()
				if r.onResize != nil {
					r.onResize()
				}
			})
		})
		return
	}
	r.timer.Reset(delay)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
