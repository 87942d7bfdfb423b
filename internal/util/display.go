package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal colors
const (
	ColorReset = "\033[0m"
	ColorGreen = "\033[32m"
	ColorRed   = "\033[31m"
	ColorBold  = "\033[1m"
)

// GetDisplayWidth calculates the actual display width of a string, accounting for emojis
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces up to width display columns.
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}

// TruncateToWidth shortens text to at most width display columns, marking the cut with "…".
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// SingleLine collapses line breaks and tabs so a value fits one table row.
func SingleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// FormatStatus colors a success flag when color is enabled.
func FormatStatus(success, color bool) string {
	label := "FAILED"
	code := ColorRed
	if success {
		label = "OK"
		code = ColorGreen
	}
	if !color {
		return label
	}
	return fmt.Sprintf("%s%s%s%s", ColorBold, code, label, ColorReset)
}
