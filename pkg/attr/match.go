package attr

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// fuzzyMaxDistance bounds how far a fuzzy name match may drift before Match
// reports no result.
const fuzzyMaxDistance = 3

// Candidates returns the catalogue attributes whose names contain query,
// case-insensitively. An exact name match short-circuits to that single
// attribute. Interactive callers offer a choice when more than one candidate
// comes back.
func Candidates(attrs []Attribute, query string) []Attribute {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	for _, a := range attrs {
		if strings.ToLower(a.Name) == query {
			return []Attribute{a}
		}
	}

	var sub []Attribute
	for _, a := range attrs {
		if strings.Contains(strings.ToLower(a.Name), query) {
			sub = append(sub, a)
		}
	}
	return sub
}

// Match resolves a name query against the catalogue: exact name first, then
// unique substring, then the nearest name by edit distance within a small
// threshold. Comparison is case-insensitive. Ambiguous substring queries
// resolve to the shortest containing name; callers that can prompt should
// check Candidates first.
func Match(attrs []Attribute, query string) (Attribute, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return Attribute{}, false
	}

	sub := Candidates(attrs, query)
	if len(sub) == 1 {
		return sub[0], true
	}
	if len(sub) > 1 {
		best := sub[0]
		for _, a := range sub[1:] {
			if len(a.Name) < len(best.Name) {
				best = a
			}
		}
		return best, true
	}

	var best Attribute
	bestDist := fuzzyMaxDistance + 1
	for _, a := range attrs {
		if d := levenshtein.ComputeDistance(query, strings.ToLower(a.Name)); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best, bestDist <= fuzzyMaxDistance
}
