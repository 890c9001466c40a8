// Package render draws grid views as terminal tables.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"admingrid/internal/domain/grid"
)

const (
	minCellWidth = 4
	maxCellWidth = 40
	cellGap      = 2
	fallbackTerm = 120
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	summaryColor = color.New(color.FgYellow)
)

// Table writes rows as an aligned table with the given column order.
func Table(w io.Writer, columns []string, rows []grid.Row) {
	if len(columns) == 0 {
		fmt.Fprintln(w, "no columns")
		return
	}

	widths := columnWidths(columns, rows)
	writeHeader(w, columns, widths)
	for _, r := range rows {
		writeRow(w, columns, widths, r, "")
	}
	fmt.Fprintf(w, "\ntotal rows: %d\n", len(rows))
}

// GroupTable writes the grouped view: one summary line per group followed
// by its indented member rows.
func GroupTable(w io.Writer, columns []string, groups []grid.Group) {
	if len(columns) == 0 {
		fmt.Fprintln(w, "no columns")
		return
	}

	var all []grid.Row
	for _, g := range groups {
		all = append(all, g.Rows...)
		all = append(all, g.Summary)
	}
	widths := columnWidths(columns, all)

	writeHeader(w, columns, widths)
	total := 0
	for _, g := range groups {
		total += len(g.Rows)
		summaryColor.Fprintf(w, "%s (%d)\n", g.Key, len(g.Rows))
		writeRow(w, columns, widths, g.Summary, "* ")
		for _, r := range g.Rows {
			writeRow(w, columns, widths, r, "  ")
		}
	}
	fmt.Fprintf(w, "\ntotal groups: %d, rows: %d\n", len(groups), total)
}

func writeHeader(w io.Writer, columns []string, widths []int) {
	cells := make([]string, len(columns))
	for i, c := range columns {
		cells[i] = headerColor.Sprint(pad(truncate(c, widths[i]), widths[i]))
	}
	fmt.Fprintln(w, strings.Join(cells, strings.Repeat(" ", cellGap)))
}

func writeRow(w io.Writer, columns []string, widths []int, r grid.Row, prefix string) {
	cells := make([]string, len(columns))
	for i, c := range columns {
		v, _ := r.Get(c)
		cells[i] = pad(truncate(v.Display(), widths[i]), widths[i])
	}
	fmt.Fprintln(w, prefix+strings.Join(cells, strings.Repeat(" ", cellGap)))
}

// columnWidths sizes each column to its widest cell, capped per cell and
// shrunk further when the terminal is narrower than the natural layout.
func columnWidths(columns []string, rows []grid.Row) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len([]rune(c))
		for _, r := range rows {
			v, _ := r.Get(c)
			if n := len([]rune(v.Display())); n > widths[i] {
				widths[i] = n
			}
		}
		if widths[i] > maxCellWidth {
			widths[i] = maxCellWidth
		}
		if widths[i] < minCellWidth {
			widths[i] = minCellWidth
		}
	}

	avail := termWidth() - cellGap*(len(columns)-1)
	for total := sum(widths); total > avail; total = sum(widths) {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minCellWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func termWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return fallbackTerm
}

func sum(ns []int) int {
	total := 0
	for _, n := range ns {
		total += n
	}
	return total
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	if length <= 3 {
		return string(runes[:length])
	}
	return string(runes[:length-3]) + "..."
}
