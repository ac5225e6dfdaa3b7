// File: internal/sysfd/duration.go
// Author: momentics <momentics@gmail.com>
//
// Duration decomposition shared by the timer arming paths.

package sysfd

import "time"

// SplitDuration decomposes a non-negative duration into whole seconds and
// the nanosecond remainder. The parts reassemble exactly:
// sec*1e9 + nsec == int64(d).
func SplitDuration(d time.Duration) (sec int64, nsec int64) {
	sec = int64(d / time.Second)
	nsec = int64(d) - sec*int64(time.Second)
	return sec, nsec
}
