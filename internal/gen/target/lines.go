package target

import (
	"fmt"
	"strings"
)

// lineWriter accumulates indented source lines for the brace languages
type lineWriter struct {
	unit  string
	depth int
	lines []string
}

func newLineWriter(unit string) *lineWriter {
	return &lineWriter{unit: unit}
}

func (w *lineWriter) line(format string, args ...any) {
	w.lines = append(w.lines, strings.Repeat(w.unit, w.depth)+fmt.Sprintf(format, args...))
}

func (w *lineWriter) open(format string, args ...any) {
	w.line(format, args...)
	w.depth++
}

func (w *lineWriter) close(format string, args ...any) {
	w.depth--
	w.line(format, args...)
}
