package lyra

import (
	"fmt"
	"time"
)

// formatElapsed renders a monotonic-clock duration the way a human expects
// to read a query time: microseconds below a millisecond, otherwise
// milliseconds with two decimal places.
func formatElapsed(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dμs", d.Microseconds())
	}
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
}
