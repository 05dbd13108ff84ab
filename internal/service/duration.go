package service

import (
	"fmt"
	"time"
)

const microsPerDay = int64(24 * time.Hour / time.Microsecond)

// FormatDuration renders d as "[D day[s], ]H:MM:SS[.ffffff]", e.g.
// "0:16:39", "1 day, 2:03:04.500000", "-1 day, 23:59:59".
// d is rounded to the microsecond. Negative durations borrow a whole day so
// the clock part is always non-negative.
func FormatDuration(d time.Duration) string {
	us := int64(d.Round(time.Microsecond) / time.Microsecond)

	days := us / microsPerDay
	rem := us % microsPerDay
	if rem < 0 {
		days--
		rem += microsPerDay
	}

	secs := rem / 1e6
	frac := rem % 1e6
	clock := fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
	if frac != 0 {
		clock += fmt.Sprintf(".%06d", frac)
	}

	if days == 0 {
		return clock
	}
	unit := "days"
	if days == 1 || days == -1 {
		unit = "day"
	}
	return fmt.Sprintf("%d %s, %s", days, unit, clock)
}
