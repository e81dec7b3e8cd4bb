package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Library    *color.Color
	Param      *color.Color
	Latency    *color.Color
	Throughput *color.Color
	Success    *color.Color
	Error      *color.Color
	Highlight  *color.Color
	Dim        *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Library:    color.New(color.FgBlue, color.Bold),
		Param:      color.New(color.FgCyan),
		Latency:    color.New(color.FgYellow),
		Throughput: color.New(color.FgGreen),
		Success:    color.New(color.FgGreen, color.Bold),
		Error:      color.New(color.FgRed, color.Bold),
		Highlight:  color.New(color.FgMagenta, color.Bold),
		Dim:        color.New(color.Faint),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	// Disable all colors
	scheme.Library.DisableColor()
	scheme.Param.DisableColor()
	scheme.Latency.DisableColor()
	scheme.Throughput.DisableColor()
	scheme.Success.DisableColor()
	scheme.Error.DisableColor()
	scheme.Highlight.DisableColor()
	scheme.Dim.DisableColor()

	return scheme
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}
