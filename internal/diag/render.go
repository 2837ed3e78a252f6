package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/width"
)

// Options controls how Render lays out a source excerpt.
type Options struct {
	Color    bool // style output with ANSI colors
	TabWidth int  // tab stop width, 4 when zero
	MaxWidth int  // maximum excerpt width in cells, unlimited when zero
}

var (
	severityStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	gutterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	markerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

func (o Options) paint(style lipgloss.Style, s string) string {
	if !o.Color || s == "" {
		return s
	}
	return style.Render(s)
}

// Render writes d followed by the offending source line with a caret under
// d.Column and an underline running to the end of the line:
//
//	error[E1001]: unexpected character '%'
//	 --> main.gb:1:5
//	  |
//	1 | 1 + % 2
//	  |     ^~~
//
// Only the diagnostic's coordinates and the original source are consulted.
func Render(w io.Writer, source string, d Diagnostic, opts Options) error {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}

	var b strings.Builder
	header := fmt.Sprintf("%s[%s]", d.Severity, d.Code)
	fmt.Fprintf(&b, "%s: %s\n", opts.paint(severityStyle, header), d.Message)

	loc := fmt.Sprintf("%d:%d", d.Line, d.Column+1)
	if d.File != "" {
		loc = d.File + ":" + loc
	}
	gutter := strings.Repeat(" ", len(strconv.Itoa(d.Line)))
	fmt.Fprintf(&b, "%s%s %s\n", gutter, opts.paint(gutterStyle, "-->"), loc)

	if line, ok := sourceLine(source, d.Line); ok {
		text, marker := excerpt([]rune(line), d.Column, d.LineLength, opts)
		bar := opts.paint(gutterStyle, "|")
		fmt.Fprintf(&b, "%s %s\n", gutter, bar)
		fmt.Fprintf(&b, "%s %s %s\n", opts.paint(gutterStyle, strconv.Itoa(d.Line)), bar, text)
		fmt.Fprintf(&b, "%s %s %s\n", gutter, bar, opts.paint(markerStyle, marker))
	}
	if d.Hint != "" {
		fmt.Fprintf(&b, "%s %s %s\n", gutter, opts.paint(hintStyle, "= hint:"), d.Hint)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// sourceLine returns the 1-based line n of source without its terminator.
func sourceLine(source string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	for i := 1; i < n; i++ {
		nl := strings.IndexByte(source, '\n')
		if nl < 0 {
			return "", false
		}
		source = source[nl+1:]
	}
	if nl := strings.IndexByte(source, '\n'); nl >= 0 {
		source = source[:nl]
	}
	return strings.TrimSuffix(source, "\r"), true
}

// excerpt lays out line for display and builds the matching marker line.
func excerpt(line []rune, column, lineLength int, opts Options) (string, string) {
	n := len(line)
	column = clamp(column, 0, n)
	end := clamp(lineLength, column, n)

	// cols[i] is the display cell where rune i starts; cols[n] is the total width.
	cols := make([]int, n+1)
	for i, r := range line {
		if r == '\t' {
			cols[i+1] = cols[i] + opts.TabWidth - cols[i]%opts.TabWidth
		} else {
			cols[i+1] = cols[i] + cellWidth(r)
		}
	}

	from, to := 0, n
	if opts.MaxWidth > 0 && cols[n] > opts.MaxWidth {
		for cols[column]-cols[from] > opts.MaxWidth/2 {
			from++
		}
		to = from
		for to < n && cols[to+1]-cols[from] <= opts.MaxWidth {
			to++
		}
	}

	var text strings.Builder
	pad := 0
	if from > 0 {
		text.WriteString("…")
		pad = 1
	}
	for i := from; i < to; i++ {
		if line[i] == '\t' {
			text.WriteString(strings.Repeat(" ", cols[i+1]-cols[i]))
			continue
		}
		text.WriteRune(line[i])
	}
	if to < n {
		text.WriteString("…")
	}

	marker := strings.Repeat(" ", pad+cols[column]-cols[from]) + "^"
	if end > to {
		end = to
	}
	if tail := cols[end] - cols[column] - 1; tail > 0 {
		marker += strings.Repeat("~", tail)
	}
	return strings.TrimRight(text.String(), " "), marker
}

func cellWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
