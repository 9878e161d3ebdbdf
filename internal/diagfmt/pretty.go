package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"fern/internal/diag"
	"fern/internal/source"
)

// Pretty renders bag.Items() in source order (call bag.Sort() first).
// Each diagnostic prints as
//
//	<path>:<line>:<col>: <severity>[<code>]: <message>
//
// followed by the source line and a caret underline covering the span.
// Notes print the same way, indented, when ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiag(w, fs, d, opts)
	}
}

func writeDiag(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	head := fmt.Sprintf("%s[%d]", strings.ToLower(d.Severity.String()), d.Code)
	if opts.Color {
		head = severityColor(d.Severity).Sprint(head)
	}
	fmt.Fprintf(w, "%s: %s: %s\n", position(fs, d.Primary, opts), head, d.Message)
	writeCaretLine(w, fs, d.Primary, opts)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  %s: note: %s\n", position(fs, n.Span, opts), n.Msg)
		writeCaretLine(w, fs, n.Span, opts)
	}
}

func position(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	file, ok := fs.Lookup(sp.File)
	if !ok {
		return "<unknown>"
	}
	path := file.Path
	if opts.PathMode == PathModeBasename {
		path = filepath.Base(path)
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

func writeCaretLine(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	file, ok := fs.Lookup(sp.File)
	if !ok || (sp.Empty() && sp.Start == 0) {
		return
	}
	start, end := fs.Resolve(sp)
	line := file.Line(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	// The underline stops at the end of the line for multi-line spans.
	caretLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		caretLen = int(end.Col - start.Col)
	}
	if remaining := len(line) - int(start.Col-1); caretLen > remaining && remaining > 0 {
		caretLen = remaining
	}
	underline := "^" + strings.Repeat("~", caretLen-1)
	if opts.Color {
		underline = color.New(color.FgRed, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", int(start.Col-1)), underline)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
