package driver

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"tycho/internal/diag"
	"tycho/internal/source"
)

// Verb is one batch query operation.
type Verb uint8

const (
	// VerbParse checks that a type expression is well-formed.
	VerbParse Verb = iota
	// VerbCast expects the left union to cast to the right one.
	VerbCast
	// VerbNoCast expects the cast to be rejected.
	VerbNoCast
	// VerbOverlap expects the two unions to share at least one value.
	VerbOverlap
)

func (v Verb) String() string {
	switch v {
	case VerbParse:
		return "parse"
	case VerbCast:
		return "cast"
	case VerbNoCast:
		return "nocast"
	case VerbOverlap:
		return "overlap"
	default:
		return fmt.Sprintf("Verb(%d)", v)
	}
}

// Query is one line of a .tyq file: a verb plus one or two type-expression
// regions pointing back into the file.
type Query struct {
	Verb  Verb
	Span  source.Span // the whole line
	Left  source.Span
	Right source.Span // second operand of cast/nocast/overlap
}

// ParseQueries splits a query file into its queries. Lines are independent:
// a malformed line is reported and skipped, the rest still run. '#' starts a
// whole-line comment.
func ParseQueries(f *source.File, reporter diag.Reporter) []Query {
	var queries []Query
	content := f.Content
	lineStart := 0
	for lineStart <= len(content) {
		lineEnd := lineStart
		for lineEnd < len(content) && content[lineEnd] != '\n' {
			lineEnd++
		}
		if q, ok := parseQueryLine(f, lineStart, lineEnd, reporter); ok {
			queries = append(queries, q)
		}
		if lineEnd >= len(content) {
			break
		}
		lineStart = lineEnd + 1
	}
	return queries
}

func parseQueryLine(f *source.File, start, end int, reporter diag.Reporter) (Query, bool) {
	text := string(f.Content[start:end])
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Query{}, false
	}

	lead := len(text) - len(strings.TrimLeft(text, " \t"))
	verbText, _, _ := strings.Cut(trimmed, " ")
	verbSpan := spanOf(f, start+lead, start+lead+len(verbText))
	lineSpan := spanOf(f, start+lead, end)
	rest := spanOf(f, start+lead+len(verbText), end)
	rest = trimRegion(f, rest)

	q := Query{Span: lineSpan}
	switch verbText {
	case "parse":
		q.Verb = VerbParse
	case "cast":
		q.Verb = VerbCast
	case "nocast":
		q.Verb = VerbNoCast
	case "overlap":
		q.Verb = VerbOverlap
	default:
		diag.ReportError(reporter, diag.BatchUnknownVerb, verbSpan,
			fmt.Sprintf("unknown query verb %q", verbText)).
			WithNote(lineSpan, "expected parse, cast, nocast or overlap").Emit()
		return Query{}, false
	}

	if q.Verb == VerbParse {
		if rest.Empty() {
			diag.ReportError(reporter, diag.BatchBadQuery, lineSpan, "parse needs a type expression").Emit()
			return Query{}, false
		}
		q.Left = rest
		return q, true
	}

	sep := "=>"
	missing := diag.BatchMissingArrow
	if q.Verb == VerbOverlap {
		sep = "~"
		missing = diag.BatchBadQuery
	}
	idx := strings.Index(regionText(f, rest), sep)
	if idx < 0 {
		diag.ReportError(reporter, missing, lineSpan,
			fmt.Sprintf("%s needs two operands separated by %q", q.Verb, sep)).Emit()
		return Query{}, false
	}
	a := int(rest.Start)
	q.Left = trimRegion(f, spanOf(f, a, a+idx))
	q.Right = trimRegion(f, spanOf(f, a+idx+len(sep), int(rest.End)))
	if q.Left.Empty() || q.Right.Empty() {
		diag.ReportError(reporter, diag.BatchBadQuery, lineSpan,
			fmt.Sprintf("%s needs a type expression on both sides", q.Verb)).Emit()
		return Query{}, false
	}
	return q, true
}

func regionText(f *source.File, sp source.Span) string {
	return string(f.Content[sp.Start:sp.End])
}

func trimRegion(f *source.File, sp source.Span) source.Span {
	start, end := sp.Start, sp.End
	for start < end && isQuerySpace(f.Content[start]) {
		start++
	}
	for end > start && isQuerySpace(f.Content[end-1]) {
		end--
	}
	return source.Span{File: sp.File, Start: start, End: end}
}

func isQuerySpace(b byte) bool { return b == ' ' || b == '\t' }

func spanOf(f *source.File, start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return source.Span{File: f.ID, Start: s, End: e}
}
