// internal/dataset/target.go
package dataset

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// targetSynonyms are column names that usually hold labels.
var targetSynonyms = []string{"label", "target", "class", "species", "y"}

func normalize(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// GuessTarget picks the label column. An exact match of requested wins, then
// a normalized match, then a synonym, then the last categorical column, then
// the last low-cardinality column, then the last column. The note says which
// rule fired.
func GuessTarget(p *Preview, requested string) (string, string) {
	if p == nil || len(p.Headers) == 0 {
		return "", "No columns to choose a target from."
	}
	requested = strings.TrimSpace(requested)

	normalized := make(map[string]string, len(p.Headers))
	for _, h := range p.Headers {
		if _, seen := normalized[normalize(h)]; !seen {
			normalized[normalize(h)] = h
		}
	}

	if requested != "" {
		for _, h := range p.Headers {
			if h == requested {
				return h, fmt.Sprintf("Using target '%s'.", h)
			}
		}
		if h, ok := normalized[normalize(requested)]; ok {
			return h, fmt.Sprintf("Target '%s' not found; using '%s' (normalized match).", requested, h)
		}
	}
	for _, syn := range targetSynonyms {
		if h, ok := normalized[syn]; ok {
			return h, fmt.Sprintf("Target not provided/found; using '%s' (synonym).", h)
		}
	}

	cols := p.Columns
	for j := len(cols) - 1; j >= 0; j-- {
		if cols[j].Kind == Categorical {
			return cols[j].Name, fmt.Sprintf("Target not provided/found; using last non-numeric column '%s'.", cols[j].Name)
		}
	}
	threshold := p.NRows / 5
	if threshold < 50 {
		threshold = 50
	}
	for j := len(cols) - 1; j >= 0; j-- {
		if cols[j].Unique <= threshold {
			return cols[j].Name, fmt.Sprintf("Target not provided/found; using low-cardinality column '%s'.", cols[j].Name)
		}
	}

	last := p.Headers[len(p.Headers)-1]
	return last, fmt.Sprintf("Target not provided/found; using last column '%s'.", last)
}
