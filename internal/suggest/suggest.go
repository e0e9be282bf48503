// Package suggest ranks near-miss candidates for failed lookups. The
// playground path prompt and the export command use it to answer a
// path that did not resolve with the registered paths closest to it.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxDistanceRatio drops candidates whose edit distance exceeds this
// fraction of the longer string. Typos land well under it; unrelated
// paths land well over it.
const maxDistanceRatio = 0.5

type scored struct {
	candidate string
	distance  int
}

// Closest returns up to max candidates ordered by edit distance from
// input, nearest first. Distance is measured case-insensitively and
// ties break lexicographically so results are stable. Candidates too
// far from the input are dropped entirely; the result may be empty.
func Closest(input string, candidates []string, max int) []string {
	if max <= 0 || len(candidates) == 0 {
		return nil
	}

	lowered := strings.ToLower(input)
	matches := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		dist := levenshtein.ComputeDistance(lowered, strings.ToLower(candidate))
		longest := len(input)
		if len(candidate) > longest {
			longest = len(candidate)
		}
		if longest == 0 {
			continue
		}
		if float64(dist)/float64(longest) > maxDistanceRatio {
			continue
		}
		matches = append(matches, scored{candidate: candidate, distance: dist})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].candidate < matches[j].candidate
	})

	if len(matches) > max {
		matches = matches[:max]
	}

	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = m.candidate
	}

	return result
}
