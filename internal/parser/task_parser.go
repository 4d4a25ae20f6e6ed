package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrEmptyName        = errors.New("task name cannot be empty")
	ErrLeadingMarker    = errors.New("task name cannot start with a marker character")
	ErrDuplicateProject = errors.New("only one @project is allowed")
	ErrDuplicateRate    = errors.New("only one rate is allowed")
	ErrInvalidRate      = errors.New("rate must be a non-negative number")
)

// Task represents a task description parsed from natural syntax
type Task struct {
	Name    string
	Tags    []string
	Project string
	Rate    float64 // currency units per hour, 0 = unpaid
}

// Parse extracts metadata from a task description using natural syntax.
// Syntax: "Task name #tag1 #tag2 @project $50"
//
// Everything before the first '#', '@' or currency marker is the name.
// Tags are lowercased and de-duplicated keeping first-occurrence order.
// At most one @project and one rate segment are allowed.
func Parse(input string, currency rune) (Task, error) {
	if currency == 0 {
		currency = '$'
	}
	isMarker := func(r rune) bool {
		return r == '#' || r == '@' || r == currency
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Task{}, ErrEmptyName
	}
	runes := []rune(trimmed)
	if isMarker(runes[0]) {
		return Task{}, fmt.Errorf("%w ('%c')", ErrLeadingMarker, runes[0])
	}

	// Name is everything up to the first marker
	nameEnd := len(runes)
	for i, r := range runes {
		if isMarker(r) {
			nameEnd = i
			break
		}
	}
	result := Task{Name: strings.TrimSpace(string(runes[:nameEnd]))}
	if result.Name == "" {
		return Task{}, ErrEmptyName
	}

	seenTags := make(map[string]bool)
	haveProject := false
	haveRate := false

	// Walk the remaining marker-delimited segments
	for i := nameEnd; i < len(runes); {
		marker := runes[i]
		j := i + 1
		for j < len(runes) && !isMarker(runes[j]) {
			j++
		}
		segment := strings.TrimSpace(string(runes[i+1 : j]))

		switch marker {
		case '#':
			tag := strings.ToLower(segment)
			if tag != "" && !seenTags[tag] {
				seenTags[tag] = true
				result.Tags = append(result.Tags, tag)
			}
		case '@':
			if haveProject {
				return Task{}, ErrDuplicateProject
			}
			haveProject = true
			result.Project = segment
		default: // currency marker
			if haveRate {
				return Task{}, ErrDuplicateRate
			}
			haveRate = true
			rate, err := strconv.ParseFloat(segment, 64)
			if err != nil || rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
				return Task{}, fmt.Errorf("%w: %q", ErrInvalidRate, segment)
			}
			result.Rate = rate
		}
		i = j
	}

	return result, nil
}

// Serialize renders a parsed task back into the natural syntax, inverse of
// Parse for already-normalized input.
func Serialize(t Task, currency rune) string {
	if currency == 0 {
		currency = '$'
	}
	var b strings.Builder
	b.WriteString(t.Name)
	for _, tag := range t.Tags {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	if t.Project != "" {
		b.WriteString(" @")
		b.WriteString(t.Project)
	}
	if t.Rate > 0 {
		fmt.Fprintf(&b, " %c%s", currency, strconv.FormatFloat(t.Rate, 'f', -1, 64))
	}
	return b.String()
}

// TagString joins bare tag names into the normalized "#a #b" form used for
// storage and grouping.
func TagString(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, tag := range tags {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('#')
		b.WriteString(tag)
	}
	return b.String()
}
