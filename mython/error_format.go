package mython

import (
	"fmt"
	"strconv"
	"strings"
)

// formatCodeFrame renders the offending source line with a caret under the
// failing column, for inclusion in runtime error reports.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := lines[pos.Line-1]

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if width := len([]rune(lineText)); column > width+1 {
		column = width + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
