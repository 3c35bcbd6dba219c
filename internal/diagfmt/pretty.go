package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"tycho/internal/diag"
	"tycho/internal/source"
)

// Pretty renders diagnostics for humans. Expects bag.Sort() to have run.
// Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline when ShowPreview is set,
// then the notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p prettyPrinter) diagnostic(d diag.Diagnostic) {
	fmt.Fprintf(p.w, "%s: %s %s: %s\n",
		p.location(d.Primary), p.severity(d.Severity), d.Code.String(), d.Message)
	if p.opts.ShowPreview {
		p.preview(d.Primary)
	}
	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(p.w, "%s: note: %s\n", p.location(n.Span), n.Msg)
		if p.opts.ShowPreview {
			p.preview(n.Span)
		}
	}
}

func (p prettyPrinter) location(sp source.Span) string {
	f := p.fs.Get(sp.File)
	path := f.Path
	if p.opts.PathMode == PathModeBasename {
		path = filepath.Base(path)
	}
	start, _ := p.fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

func (p prettyPrinter) severity(sev diag.Severity) string {
	if !p.opts.Color {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(sev.String())
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(sev.String())
	default:
		return color.New(color.FgCyan).Sprint(sev.String())
	}
}

// preview prints the first line the span touches and underlines the spanned
// columns. Widths are measured in display cells so wide runes line up.
func (p prettyPrinter) preview(sp source.Span) {
	f := p.fs.Get(sp.File)
	start, end := p.fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && sp.Len() == 0 {
		return
	}
	display := norm.NFC.String(strings.ReplaceAll(line, "\t", " "))
	fmt.Fprintf(p.w, "  %s\n", display)

	prefix := prefixOf(line, start.Col)
	pad := runewidth.StringWidth(norm.NFC.String(strings.ReplaceAll(prefix, "\t", " ")))

	spanned := spannedOf(line, start, end)
	width := runewidth.StringWidth(norm.NFC.String(spanned))
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if p.opts.Color {
		marker = color.New(color.FgGreen, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(p.w, "  %s%s\n", strings.Repeat(" ", pad), marker)
}

// prefixOf returns the line text before the 1-based column.
func prefixOf(line string, col uint32) string {
	if col <= 1 {
		return ""
	}
	n := int(col) - 1
	if n > len(line) {
		n = len(line)
	}
	return line[:n]
}

// spannedOf returns the underlined slice of the line. A span crossing line
// boundaries underlines to the end of the first line.
func spannedOf(line string, start, end source.LineCol) string {
	from := int(start.Col) - 1
	if from < 0 {
		from = 0
	}
	if from > len(line) {
		from = len(line)
	}
	to := len(line)
	if end.Line == start.Line {
		to = int(end.Col) - 1
		if to < from {
			to = from
		}
		if to > len(line) {
			to = len(line)
		}
	}
	return line[from:to]
}
