package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidWindow is returned for a period outside the supported set.
var ErrInvalidWindow = errors.New("invalid window")

// Window is the requested history span.
type Window string

const (
	WindowWeek        Window = "1week"
	WindowMonth       Window = "1month"
	WindowThreeMonths Window = "3months"
	WindowYear        Window = "1year"
)

// Windows lists the supported windows, shortest first.
var Windows = []Window{WindowWeek, WindowMonth, WindowThreeMonths, WindowYear}

var windowDays = map[Window]int{
	WindowWeek:        7,
	WindowMonth:       30,
	WindowThreeMonths: 90,
	WindowYear:        365,
}

var windowLabels = map[Window]string{
	WindowWeek:        "1 week",
	WindowMonth:       "1 month",
	WindowThreeMonths: "3 months",
	WindowYear:        "1 year",
}

// ParseWindow resolves a period token such as "3months".
func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := windowDays[w]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidWindow, s)
	}
	return w, nil
}

// Days returns the day count of the window.
func (w Window) Days() (int, error) {
	d, ok := windowDays[w]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, string(w))
	}
	return d, nil
}

// Label is a human-readable name, e.g. "3 months".
func (w Window) Label() string {
	if l, ok := windowLabels[w]; ok {
		return l
	}
	return string(w)
}

func (w Window) String() string { return string(w) }
