package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	symCheck = "✔"
	symCross = "✖"
)

// Stdout and Stderr receive OK and Fail messages.
var (
	Stdout io.Writer = color.Output
	Stderr io.Writer = color.Error
)

// SetColorMode applies "always", "never" or "auto" (terminal detection).
func SetColorMode(mode string) {
	switch strings.ToLower(mode) {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// C paints s with c unless color output is disabled.
func C(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func OK(msg string)   { fmt.Fprintln(Stdout, C(current.Success, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(Stderr, C(current.Error, symCross+" "+msg)) }
