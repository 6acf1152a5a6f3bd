// Package diff computes line-oriented diffs between two text snapshots,
// suitable for rendering added/removed/unchanged spans.
package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Op identifies what happened to a span of lines between old and new.
type Op string

const (
	OpEqual  Op = "equal"
	OpInsert Op = "insert"
	OpDelete Op = "delete"
)

// Span is a run of consecutive lines sharing one operation. Lines are taken
// from the old text for deletions and from the new text otherwise.
type Span struct {
	Op    Op       `json:"op"`
	Lines []string `json:"lines"`
}

// Result holds the computed spans plus summary counts.
type Result struct {
	Spans     []Span `json:"spans"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Lines computes a line diff from old to new. Identical inputs yield a
// single equal span (or no spans for empty input) with zero additions and
// deletions. Neither input is mutated.
func Lines(oldText, newText string) *Result {
	a := splitLines(oldText)
	b := splitLines(newText)

	matcher := difflib.NewMatcher(a, b)
	result := &Result{Spans: []Span{}}

	for _, opcode := range matcher.GetOpCodes() {
		switch opcode.Tag {
		case 'e':
			result.Spans = append(result.Spans, Span{Op: OpEqual, Lines: b[opcode.J1:opcode.J2]})
		case 'd':
			result.appendDelete(a[opcode.I1:opcode.I2])
		case 'i':
			result.appendInsert(b[opcode.J1:opcode.J2])
		case 'r':
			// A replace is a deletion of the old run followed by an
			// insertion of the new run.
			result.appendDelete(a[opcode.I1:opcode.I2])
			result.appendInsert(b[opcode.J1:opcode.J2])
		}
	}

	return result
}

func (r *Result) appendDelete(lines []string) {
	if len(lines) == 0 {
		return
	}
	r.Spans = append(r.Spans, Span{Op: OpDelete, Lines: lines})
	r.Deletions += len(lines)
}

func (r *Result) appendInsert(lines []string) {
	if len(lines) == 0 {
		return
	}
	r.Spans = append(r.Spans, Span{Op: OpInsert, Lines: lines})
	r.Additions += len(lines)
}

// splitLines splits text into lines without trailing newlines. Empty text
// yields no lines rather than a single empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// TagSets computes the set difference of two tag slices in both directions:
// tags present only in old, and tags present only in new. Input order is
// preserved; inputs are not mutated.
func TagSets(oldTags, newTags []string) (onlyOld, onlyNew []string) {
	oldSet := make(map[string]struct{}, len(oldTags))
	for _, t := range oldTags {
		oldSet[t] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(newTags))
	for _, t := range newTags {
		newSet[t] = struct{}{}
	}

	onlyOld = []string{}
	onlyNew = []string{}
	for _, t := range oldTags {
		if _, ok := newSet[t]; !ok {
			onlyOld = append(onlyOld, t)
		}
	}
	for _, t := range newTags {
		if _, ok := oldSet[t]; !ok {
			onlyNew = append(onlyNew, t)
		}
	}
	return onlyOld, onlyNew
}
