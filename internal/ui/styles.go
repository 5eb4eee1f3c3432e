// Package ui holds terminal presentation helpers for the CLI.
package ui

import (
	"fmt"
	"strings"
)

// ANSI256 color codes.
const (
	colorGreen  = 77  // done
	colorYellow = 221 // in progress
	colorMuted  = 245 // medium gray
	colorAccent = 74  // blue
)

var noColor bool

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

func paint(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	return paint(colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return paint(colorMuted, s)
}

// RenderStatus colors a task or step status string: green for done, yellow
// for in-progress, gray otherwise.
func RenderStatus(status string) string {
	switch status {
	case "Done":
		return paint(colorGreen, status)
	case "InProgress":
		return paint(colorYellow, status)
	default:
		return paint(colorMuted, status)
	}
}

// ProgressBar renders a fixed-width bar like "[######----] 60%".
func ProgressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width <= 0 {
		width = 10
	}
	filled := pct * width / 100
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	label := fmt.Sprintf("[%s] %d%%", bar, pct)
	if pct == 100 {
		return paint(colorGreen, label)
	}
	return label
}
