// Package idle samples how long the user's input devices have been quiet.
// macOS is read from `ioreg -c IOHIDSystem` (HIDIdleTime, nanoseconds since
// the last input), Linux from `xprintidle` (milliseconds). Other platforms
// report unsupported and the timer runs without idle detection.
package idle

import (
	"errors"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

var ErrUnsupported = errors.New("idle detection is not supported on this platform")

var hidIdleRe = regexp.MustCompile(`HIDIdleTime"\s*=\s*([0-9]+)`)

// Supported reports whether this platform can sample input idleness.
func Supported() bool {
	switch runtime.GOOS {
	case "darwin":
		return true
	case "linux":
		_, err := exec.LookPath("xprintidle")
		return err == nil
	default:
		return false
	}
}

// InputIdle returns the time since the last user input.
func InputIdle() (time.Duration, error) {
	switch runtime.GOOS {
	case "darwin":
		return inputIdleDarwin()
	case "linux":
		return inputIdleLinux()
	default:
		return 0, ErrUnsupported
	}
}

func inputIdleDarwin() (time.Duration, error) {
	out, err := exec.Command("/usr/sbin/ioreg", "-c", "IOHIDSystem").Output()
	if err != nil {
		return 0, err
	}
	match := hidIdleRe.FindSubmatch(out)
	if match == nil {
		return 0, errors.New("HIDIdleTime not found in ioreg output")
	}
	ns, err := strconv.ParseInt(string(match[1]), 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(ns), nil
}

func inputIdleLinux() (time.Duration, error) {
	out, err := exec.Command("xprintidle").Output()
	if err != nil {
		return 0, err
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}
