package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	dim      = color.New(color.FgHiBlack).SprintFunc()
)

// Success prints a green check followed by the formatted message.
func Success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", okMark("✓"), fmt.Sprintf(format, args...))
}

// Failure prints a red cross followed by the formatted message.
func Failure(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", failMark("✗"), fmt.Sprintf(format, args...))
}

// Detail prints an indented, dimmed line under a status line.
func Detail(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "  %s\n", dim(fmt.Sprintf(format, args...)))
}
