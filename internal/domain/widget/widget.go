// Package widget holds the arithmetic behind the page's small interactive
// pieces: the gallery lightbox, the before/after slider and impact counters.
package widget

import (
	"fmt"
	"math"
	"time"
)

// LightboxOpen clamps i into [0, n-1].
// PRE: none
// POST: ok is false when the gallery is empty
func LightboxOpen(i, n int) (idx int, ok bool) {
	if n <= 0 {
		return 0, false
	}
	return max(0, min(i, n-1)), true
}

// LightboxStep moves dir places from i, wrapping around both ends.
// PRE: none
// POST: ok is false when the gallery is empty
func LightboxStep(i, dir, n int) (idx int, ok bool) {
	if n <= 0 {
		return 0, false
	}
	return ((i+dir)%n + n) % n, true
}

// SliderInitial is the starting position of the before/after slider.
const SliderInitial = 50

// SliderClip returns the CSS clip-path that reveals v percent of the after image.
// PRE: none
// POST: v is clamped into [0, 100]
func SliderClip(v int) string {
	v = max(0, min(v, 100))
	return fmt.Sprintf("inset(0 %d%% 0 0)", 100-v)
}

// CounterDuration is how long an impact counter animates.
const CounterDuration = 1200 * time.Millisecond

// CounterValue returns the displayed value elapsed into the animation,
// using an ease-out cubic curve from 0 to target.
// PRE: none
// POST: returns target once elapsed >= CounterDuration
func CounterValue(target int, elapsed time.Duration) int {
	progress := math.Min(float64(elapsed)/float64(CounterDuration), 1)
	if progress < 0 {
		progress = 0
	}
	eased := 1 - math.Pow(1-progress, 3)
	return int(math.Round(float64(target) * eased))
}
