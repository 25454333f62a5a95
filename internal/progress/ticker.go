// Package progress holds the small progress helpers shared by the launch
// flow and the landing view.
package progress

import (
	"strings"
	"sync"
	"time"
)

// DotInterval is the animation step of the extraction and news loading tickers
const DotInterval = 750 * time.Millisecond

// maxDots is the number of dots before the animation wraps
const maxDots = 3

// DotTicker repeatedly emits a label followed by zero to three dots
type DotTicker struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartDotTicker emits label immediately and then every interval with one
// more dot, wrapping after three. emit is called from the ticker goroutine.
func StartDotTicker(label string, interval time.Duration, emit func(string)) *DotTicker {
	t := &DotTicker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	emit(label)

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		dots := 0
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				if dots >= maxDots {
					dots = 0
				} else {
					dots++
				}
				emit(label + strings.Repeat(".", dots))
			}
		}
	}()

	return t
}

// Stop halts the ticker and waits for the goroutine to exit. Safe to call
// more than once and on a nil ticker.
func (t *DotTicker) Stop() {
	if t == nil {
		return
	}
	t.stopOnce.Do(func() {
		close(t.stop)
	})
	<-t.done
}
