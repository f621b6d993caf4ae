package report

import (
	"fmt"
	"time"

	"github.com/mgutz/ansi"
)

// Colorizer is a colorizer for the run summary output.
type Colorizer struct {
	headingTitleColorizer func(string) string
	headingCountColorizer func(string) string
	successColorizer      func(string) string
	failureColorizer      func(string) string
	exitColorizer         func(string) string
	excludeColorizer      func(string) string
	fastColorizer         func(string) string
	secondColorizer       func(string) string
	minuteColorizer       func(string) string
	defaultColorizer      func(string) string
}

// NewColorizer creates a new Colorizer.
func NewColorizer(shouldColor bool) *Colorizer {
	if !shouldColor {
		plain := func(s string) string { return s }

		return &Colorizer{
			headingTitleColorizer: plain,
			headingCountColorizer: plain,
			successColorizer:      plain,
			failureColorizer:      plain,
			exitColorizer:         plain,
			excludeColorizer:      plain,
			fastColorizer:         plain,
			secondColorizer:       plain,
			minuteColorizer:       plain,
			defaultColorizer:      plain,
		}
	}

	return &Colorizer{
		headingTitleColorizer: ansi.ColorFunc("yellow+bh"),
		headingCountColorizer: ansi.ColorFunc("white+bh"),
		successColorizer:      ansi.ColorFunc("green+bh"),
		failureColorizer:      ansi.ColorFunc("red+bh"),
		exitColorizer:         ansi.ColorFunc("yellow+bh"),
		excludeColorizer:      ansi.ColorFunc("blue+bh"),
		fastColorizer:         ansi.ColorFunc("cyan+bh"),
		secondColorizer:       ansi.ColorFunc("green+bh"),
		minuteColorizer:       ansi.ColorFunc("yellow+bh"),
		defaultColorizer:      ansi.ColorFunc("white+bh"),
	}
}

// colorDuration returns the duration as a string, colored based on the duration.
func (c *Colorizer) colorDuration(duration time.Duration) string {
	if duration < 0 {
		return c.defaultColorizer("N/A")
	}

	if duration < time.Microsecond {
		return c.fastColorizer(fmt.Sprintf("%dns", duration.Nanoseconds()))
	}

	if duration < time.Millisecond {
		return c.fastColorizer(fmt.Sprintf("%dµs", duration.Microseconds()))
	}

	if duration < time.Second {
		return c.fastColorizer(fmt.Sprintf("%dms", duration.Milliseconds()))
	}

	if duration < time.Minute {
		return c.secondColorizer(fmt.Sprintf("%ds", int(duration.Seconds())))
	}

	return c.minuteColorizer(fmt.Sprintf("%dm", int(duration.Minutes())))
}
