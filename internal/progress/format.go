package progress

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Sentinels for the OS level (taskbar) progress indicator
const (
	// OSProgressNone removes the indicator
	OSProgressNone = -1.0
	// OSProgressIndeterminate shows a busy indicator
	OSProgressIndeterminate = 2.0
)

// Fraction returns value/total clamped to [0, 1]. A non-positive total yields 0.
func Fraction(value, total int64) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(value) / float64(total)
	return math.Max(0, math.Min(1, f))
}

// Percent returns value/total as a whole percentage
func Percent(value, total int64) int {
	return int(Fraction(value, total) * 100)
}

// Label formats a progress label such as "42%"
func Label(percent int) string {
	return strconv.Itoa(percent) + "%"
}

// AssetPercent maps asset validation progress onto the 40 to 60 percent band of the
// launch progress bar
func AssetPercent(value, total int64) int {
	return 40 + int(Fraction(value, total)*20)
}

// Bytes formats a download amount such as "12 MB / 80 MB"
func Bytes(value, total int64) string {
	if total <= 0 {
		return humanize.Bytes(uint64(max(value, 0)))
	}
	return fmt.Sprintf("%s / %s", humanize.Bytes(uint64(max(value, 0))), humanize.Bytes(uint64(total)))
}
