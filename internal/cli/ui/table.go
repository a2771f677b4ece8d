package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Table renders aligned columnar output, used for model member summaries.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// NewTable creates a table with the given column headers.
func NewTable(w io.Writer, noColor bool, headers ...string) *Table {
	return &Table{writer: w, headers: headers, noColor: noColor}
}

// AddRow appends one row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table.
func (t *Table) Render() {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	bold := color.New(color.Bold)
	if t.noColor {
		bold.DisableColor()
	}

	for i, h := range t.headers {
		bold.Fprint(t.writer, padRight(h, widths[i]))
		if i < len(t.headers)-1 {
			fmt.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for i, w := range widths {
		fmt.Fprint(t.writer, strings.Repeat("-", w))
		if i < len(widths)-1 {
			fmt.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for _, row := range t.rows {
		for i := range t.headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			fmt.Fprint(t.writer, padRight(cell, widths[i]))
			if i < len(t.headers)-1 {
				fmt.Fprint(t.writer, "  ")
			}
		}
		fmt.Fprintln(t.writer)
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
