package report

import "fmt"

// FormatTimeShort renders seconds as M:SS, used for short sessions and the
// compact timer display.
func FormatTimeShort(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatTimeLong renders seconds as H:MM:SS.
func FormatTimeLong(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FormatTimeLongNoSeconds renders seconds as H:MM, used in report tables
// where second precision is noise.
func FormatTimeLongNoSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/3600, (seconds%3600)/60)
}
