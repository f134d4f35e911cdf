package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
)

type Color func() PrintFunc
type PrintFunc func(io.Writer, string, ...interface{})

func Default() PrintFunc {
	return color.New(envColor("SMALLSH_COLOR_RESET", color.Reset)).FprintfFunc()
}
func Yellow() PrintFunc {
	return color.New(envColor("SMALLSH_COLOR_YELLOW", color.FgYellow)).FprintfFunc()
}
func Magenta() PrintFunc {
	return color.New(envColor("SMALLSH_COLOR_MAGENTA", color.FgMagenta)).FprintfFunc()
}
func Red() PrintFunc {
	return color.New(envColor("SMALLSH_COLOR_RED", color.FgRed)).FprintfFunc()
}

func envColor(env string, defaultColor color.Attribute) color.Attribute {
	override, err := strconv.Atoi(os.Getenv(env))
	if err == nil {
		return color.Attribute(override)
	}
	return defaultColor
}

// Logger prints shell messages to STDOUT and diagnostics to STDERR,
// with optional color.
type Logger struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Verbose bool
	Color   bool
}

// New returns a Logger writing to the process streams.
func New(verbose, useColor bool) *Logger {
	return &Logger{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Verbose: verbose,
		Color:   useColor,
	}
}

// Outf prints a line to STDOUT.
func (l *Logger) Outf(color Color, s string, args ...interface{}) {
	l.FOutf(l.Stdout, color, s+"\n", args...)
}

// FOutf prints to the given writer. Without color the text is written
// as-is, since callers rely on the exact wording.
func (l *Logger) FOutf(w io.Writer, color Color, s string, args ...interface{}) {
	if len(args) == 0 {
		s, args = "%s", []interface{}{s}
	}
	if !l.Color {
		fmt.Fprintf(w, s, args...)
		return
	}
	print := color()
	print(w, s, args...)
}

// Errf prints a line to STDERR.
func (l *Logger) Errf(color Color, s string, args ...interface{}) {
	l.FOutf(l.Stderr, color, s+"\n", args...)
}

// VerboseErrf prints a line to STDERR if verbose mode is enabled.
func (l *Logger) VerboseErrf(color Color, s string, args ...interface{}) {
	if l.Verbose {
		l.Errf(color, s, args...)
	}
}
