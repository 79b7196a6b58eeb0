// Package dateutil parses post dates and formats them for display.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid display format.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when no display format is configured.
const DefaultDateFormat = "YYYY-MM-DD"

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"full":     "dddd, MMMM D, YYYY",
}

// fieldLayouts maps a run of one token letter to the Go layout of that
// single field. Runs of Y, M and D with other lengths are errors; d runs
// that are not listed stay literal so words like "Posted" survive.
var fieldLayouts = map[byte]map[int]string{
	'Y': {2: "06", 4: "2006"},
	'M': {1: "1", 2: "01", 3: "Jan", 4: "January"},
	'D': {1: "2", 2: "02"},
	'd': {3: "Mon", 4: "Monday"},
}

// Layout is a compiled display format: literal text and date fields.
type Layout struct {
	parts []layoutPart
}

type layoutPart struct {
	text  string // literal text, or the Go layout of one field
	field bool
}

// Format renders t. Literal text is copied as is, so bracketed words such
// as "[Jan]" are never read as layout fields.
func (l Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, p := range l.parts {
		if p.field {
			b.WriteString(t.Format(p.text))
		} else {
			b.WriteString(p.text)
		}
	}
	return b.String()
}

// ParseDateFormat compiles a token format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, dddd, ddd.
// Brackets escape literal text: "[Date]" is printed as "Date". Other
// characters are literal.
func ParseDateFormat(format string) (Layout, error) {
	if format == "" {
		return Layout{}, fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return Layout{}, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var parts []layoutPart
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, layoutPart{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); {
		c := format[i]

		if c == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end < 0 {
				return Layout{}, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			lit.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		lengths, ok := fieldLayouts[c]
		if !ok {
			lit.WriteByte(c)
			i++
			continue
		}

		run := 1
		for i+run < len(format) && format[i+run] == c {
			run++
		}
		goLayout, ok := lengths[run]
		switch {
		case ok:
			flush()
			parts = append(parts, layoutPart{text: goLayout, field: true})
		case c == 'd':
			lit.WriteString(format[i : i+run])
		default:
			return Layout{}, fmt.Errorf("%w: %q at position %d is not a token", ErrInvalidDateFormat, format[i:i+run], i)
		}
		i += run
	}
	flush()

	return Layout{parts: parts}, nil
}

// ErrInvalidDate indicates a front matter date matched none of the accepted layouts.
var ErrInvalidDate = errors.New("invalid date")

// publishedLayouts are the accepted front matter date layouts, tried in order.
var publishedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParsePublished parses a post's published value. Values without a zone are
// taken as UTC.
func ParsePublished(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// ResolveFormat compiles a preset name or token format. Empty means
// DefaultDateFormat.
func ResolveFormat(format string) (Layout, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	return ParseDateFormat(format)
}

// FormatPublished renders a published value for display. A value that cannot
// be parsed, or a bad format, yields the raw value.
func FormatPublished(value, format string) string {
	t, err := ParsePublished(value)
	if err != nil {
		return value
	}
	layout, err := ResolveFormat(format)
	if err != nil {
		return value
	}
	return layout.Format(t)
}
