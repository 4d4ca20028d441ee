package signature

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
)

// Set is a compiled, ordered collection of signatures.
//
// Set is immutable after construction and safe for concurrent use by
// multiple goroutines.
type Set struct {
	entries []*compiled
}

type compiled struct {
	id       string
	severity report.Severity
	note     string
	terms    []string
	regex    *regexp.Regexp
}

// Match is a signature that was found in the searched text.
type Match struct {
	ID       string
	Severity report.Severity
	Note     string
}

// NewSet compiles signatures in order. It returns a *SignatureError for
// an unknown severity or a regex that does not compile.
func NewSet(sigs []Signature) (*Set, error) {
	entries := make([]*compiled, 0, len(sigs))
	for i, s := range sigs {
		sev, err := report.ParseSeverity(s.Severity)
		if err != nil {
			return nil, &SignatureError{Index: i, ID: s.ID, Field: "severity", Message: err.Error(), Cause: err}
		}
		c := &compiled{
			id:       s.ID,
			severity: sev,
			note:     s.Note,
			terms:    append([]string(nil), s.Terms...),
		}
		if s.Regex != "" {
			re, err := regexp.Compile(s.Regex)
			if err != nil {
				return nil, &SignatureError{
					Index:   i,
					ID:      s.ID,
					Field:   "regex",
					Message: fmt.Sprintf("invalid regular expression: %v", err),
					Cause:   err,
				}
			}
			c.regex = re
		}
		entries = append(entries, c)
	}
	return &Set{entries: entries}, nil
}

// NewSetFromFile loads a signature file and compiles it in one step.
//
// Example:
//
//	set, err := signature.NewSetFromFile("signatures.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewSetFromFile(path string) (*Set, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewSet(f.Signatures)
}

// Join concatenates sets in order. When two sets define the same ID the
// first definition is kept. Nil sets are skipped.
func Join(sets ...*Set) *Set {
	seen := make(map[string]struct{})
	var entries []*compiled
	for _, s := range sets {
		if s == nil {
			continue
		}
		for _, c := range s.entries {
			if _, dup := seen[c.id]; dup {
				continue
			}
			seen[c.id] = struct{}{}
			entries = append(entries, c)
		}
	}
	return &Set{entries: entries}
}

// Len returns the number of signatures in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// IDs returns the signature IDs in set order.
func (s *Set) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, len(s.entries))
	for i, c := range s.entries {
		ids[i] = c.id
	}
	return ids
}

// Match searches texts and returns each signature found at least once,
// in set order. Term matching is case-sensitive.
func (s *Set) Match(texts []string) []Match {
	if s == nil {
		return nil
	}
	var matches []Match
	for _, c := range s.entries {
		if c.matchesAny(texts) {
			matches = append(matches, Match{ID: c.id, Severity: c.severity, Note: c.note})
		}
	}
	return matches
}

func (c *compiled) matchesAny(texts []string) bool {
	for _, term := range c.terms {
		for _, text := range texts {
			if strings.Contains(text, term) {
				return true
			}
		}
	}
	if c.regex != nil {
		for _, text := range texts {
			if c.regex.MatchString(text) {
				return true
			}
		}
	}
	return false
}
