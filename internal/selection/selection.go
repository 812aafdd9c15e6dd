// Package selection splits a text into lines and writes lines back into a region of it.
package selection

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidRegion = errors.New("invalid region")
	ErrOutOfRange    = errors.New("region out of range")
)

// Region is a 1-based inclusive line range. A zero bound is open: the zero Region is the whole text.
type Region struct {
	Start int
	End   int
}

// ParseRegion parses "N", "N:M", "N:" or ":M". An empty string is the whole text.
func ParseRegion(s string) (Region, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Region{}, nil
	}

	startText, endText, found := strings.Cut(s, ":")
	if !found {
		endText = startText
	}

	start, err := parseBound(startText)
	if err != nil {
		return Region{}, errors.Wrapf(err, "region %q", s)
	}

	end, err := parseBound(endText)
	if err != nil {
		return Region{}, errors.Wrapf(err, "region %q", s)
	}

	r := Region{Start: start, End: end}
	if r.Start > 0 && r.End > 0 && r.Start > r.End {
		return Region{}, errors.Wrapf(ErrInvalidRegion, "region %q ends before it starts", s)
	}

	return r, nil
}

func parseBound(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.Wrapf(ErrInvalidRegion, "line %q", s)
	}

	return n, nil
}

func (r Region) String() string {
	if r == (Region{}) {
		return ""
	}

	bound := func(n int) string {
		if n == 0 {
			return ""
		}

		return strconv.Itoa(n)
	}

	return bound(r.Start) + ":" + bound(r.End)
}

// bounds returns the half open slice indexes of r within n lines.
func (r Region) bounds(n int) (int, int, error) {
	if r == (Region{}) {
		return 0, n, nil
	}

	start, end := 1, n
	if r.Start > 0 {
		start = r.Start
	}

	if r.End > 0 {
		end = r.End
	}

	if end > n || start > end {
		return 0, 0, errors.Wrapf(ErrOutOfRange, "lines %s of %d", r, n)
	}

	return start - 1, end, nil
}

// Document is a text split into lines.
type Document struct {
	lines           []string
	lineBreak       string
	trailingNewline bool
}

// Split splits text on line breaks. The line break style of the first line is kept for the whole text.
func Split(text string) *Document {
	doc := &Document{lineBreak: "\n"}

	if idx := strings.IndexByte(text, '\n'); idx > 0 && text[idx-1] == '\r' {
		doc.lineBreak = "\r\n"
	}

	if text == "" {
		doc.lines = []string{}

		return doc
	}

	if strings.HasSuffix(text, doc.lineBreak) {
		doc.trailingNewline = true
		text = strings.TrimSuffix(text, doc.lineBreak)
	}

	doc.lines = strings.Split(text, doc.lineBreak)

	return doc
}

// Lines returns a copy of the lines.
func (d *Document) Lines() []string {
	return append([]string{}, d.lines...)
}

// Select returns the lines of region r.
func (d *Document) Select(r Region) ([]string, error) {
	start, end, err := r.bounds(len(d.lines))
	if err != nil {
		return nil, err
	}

	return append([]string{}, d.lines[start:end]...), nil
}

// Replace returns the text with region r replaced by lines.
func (d *Document) Replace(r Region, lines []string) (string, error) {
	start, end, err := r.bounds(len(d.lines))
	if err != nil {
		return "", err
	}

	out := make([]string, 0, len(d.lines)-(end-start)+len(lines))
	out = append(out, d.lines[:start]...)
	out = append(out, lines...)
	out = append(out, d.lines[end:]...)

	text := strings.Join(out, d.lineBreak)
	if d.trailingNewline && len(out) > 0 {
		text += d.lineBreak
	}

	return text, nil
}
