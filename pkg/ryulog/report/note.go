package report

import (
	"fmt"
	"sort"
	"strings"
)

// Severity ranks a Note. Lower values are more severe.
type Severity int

// Severity levels, most severe first.
const (
	Critical Severity = iota
	Blocking
	Warning
	Info
	Success
)

// variationSelector is the emoji presentation selector some glyphs carry.
const variationSelector = "\uFE0F"

var severityNames = [...]string{
	Critical: "critical",
	Blocking: "blocking",
	Warning:  "warning",
	Info:     "info",
	Success:  "success",
}

var severityGlyphs = [...]string{
	Critical: "❌",
	Blocking: "🔴",
	Warning:  "⚠️",
	Info:     "ℹ️",
	Success:  "✅",
}

// Severities returns all severity levels in rank order.
func Severities() []Severity {
	return []Severity{Critical, Blocking, Warning, Info, Success}
}

// Valid reports whether s is one of the defined levels.
func (s Severity) Valid() bool {
	return s >= Critical && s <= Success
}

// String returns the lowercase name of the level.
func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// Glyph returns the symbol used when the level is rendered for humans.
func (s Severity) Glyph() string {
	if !s.Valid() {
		return ""
	}
	return severityGlyphs[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(severityNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSeverity converts a level name ("critical", "warning", ...) into a Severity.
// Matching is case-insensitive.
func ParseSeverity(name string) (Severity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range severityNames {
		if n == name {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

// severityFromGlyph matches a rendered glyph, with or without the
// variation selector and surrounding markdown emphasis.
func severityFromGlyph(token string) (Severity, bool) {
	token = strings.Trim(token, "*_")
	token = strings.ReplaceAll(token, variationSelector, "")
	for i, g := range severityGlyphs {
		if token == strings.ReplaceAll(g, variationSelector, "") {
			return Severity(i), true
		}
	}
	return 0, false
}

// Note is a single diagnostic finding.
type Note struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// NewNote creates a Note with the given severity and literal text.
func NewNote(sev Severity, text string) Note {
	return Note{Severity: sev, Text: text}
}

// NewNotef creates a Note whose text is formatted with fmt.Sprintf.
func NewNotef(sev Severity, format string, args ...any) Note {
	return Note{Severity: sev, Text: fmt.Sprintf(format, args...)}
}

// String renders the note with its glyph as the first word.
func (n Note) String() string {
	return n.Severity.Glyph() + " " + n.Text
}

// ParseNote recovers a Note from its rendered form. The first
// whitespace-delimited token must be a recognized glyph; otherwise
// ErrNoSeverityGlyph is returned.
func ParseNote(s string) (Note, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Note{}, ErrNoSeverityGlyph
	}
	sev, ok := severityFromGlyph(fields[0])
	if !ok {
		return Note{}, fmt.Errorf("%w: %q", ErrNoSeverityGlyph, fields[0])
	}
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), fields[0]))
	body = strings.TrimSuffix(body, "**")
	return Note{Severity: sev, Text: strings.TrimSpace(body)}, nil
}

// SortNotes orders notes in place: most severe first, then alphabetically
// by text within a severity. The sort is stable, so sorting an already
// sorted slice leaves it unchanged.
func SortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Severity != notes[j].Severity {
			return notes[i].Severity < notes[j].Severity
		}
		return notes[i].Text < notes[j].Text
	})
}

// CountBySeverity tallies notes per level.
func CountBySeverity(notes []Note) map[Severity]int {
	counts := make(map[Severity]int, len(severityNames))
	for _, n := range notes {
		counts[n.Severity]++
	}
	return counts
}
