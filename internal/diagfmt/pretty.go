// Package diagfmt renders diagnostic bags for people and for tools.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"implgen/internal/diag"
	"implgen/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	pathColor = color.New(color.Bold)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <sev>[<CODE>]: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeader(w, d.Severity, d.Code.String(), d.Message, d.Primary, fs, opts)
		writeContext(w, d.Primary, fs)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeHeader(w, diag.SevInfo, "note", n.Msg, n.Span, fs, opts)
				writeContext(w, n.Span, fs)
			}
		}
	}
}

func writeHeader(w io.Writer, sev diag.Severity, code, msg string, span source.Span, fs *source.FileSet, opts PrettyOpts) {
	start, _ := fs.Resolve(span)
	loc := fmt.Sprintf("%s:%d:%d", formatPath(fs, span.File, opts.PathMode), start.Line, start.Col)
	label := fmt.Sprintf("%s[%s]", sev, code)
	if opts.Color {
		loc = pathColor.Sprint(loc)
		label = sevColor(sev).Sprint(label)
	}
	fmt.Fprintf(w, "%s: %s: %s\n", loc, label, msg)
}

// writeContext prints the source line with a caret run under the span.
func writeContext(w io.Writer, span source.Span, fs *source.FileSet) {
	if span.Empty() && span.Start == 0 {
		return
	}
	start, end := fs.Resolve(span)
	line := fs.Get(span.File).GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	// выравнивание по экранной ширине, не по байтам
	prefix := substrByCol(line, start.Col)
	pad := runewidth.StringWidth(strings.ReplaceAll(prefix, "\t", "    "))
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = runewidth.StringWidth(substrCols(line, start.Col, end.Col))
	}
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), marker)
}

// substrByCol returns the line's bytes before the 1-based column.
func substrByCol(line string, col uint32) string {
	if int(col) <= 1 {
		return ""
	}
	if int(col)-1 >= len(line) {
		return line
	}
	return line[:col-1]
}

func substrCols(line string, from, to uint32) string {
	if int(from) < 1 {
		from = 1
	}
	if int(to)-1 > len(line) {
		to = uint32(len(line)) + 1
	}
	if to <= from {
		return ""
	}
	return line[from-1 : to-1]
}

func sevColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeRelative:
		return fs.RelPath(id)
	default:
		if fs.BaseDir() != "" {
			return fs.RelPath(id)
		}
		return f.Path
	}
}

// Summary prints the error/warning totals line the CLI ends with.
func Summary(w io.Writer, bag *diag.Bag, useColor bool) {
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if errs == 0 && warns == 0 {
		return
	}
	line := fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)
	if useColor && errs > 0 {
		line = errColor.Sprint(line)
	} else if useColor {
		line = warnColor.Sprint(line)
	}
	fmt.Fprintln(w, line)
}
