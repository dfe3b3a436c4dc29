package normalize

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// SimilarPayees returns up to max payees that are close to payee by edit
// distance, closest first. Comparison is case-insensitive and a candidate
// qualifies when the distance is at most a third of the longer string.
//
// This powers rename suggestions only. The categorization flow matches on
// exact extracted patterns, not on edit distance.
func SimilarPayees(payee string, payees []string, max int) []string {
	type candidate struct {
		payee    string
		distance int
	}

	folded := fold.String(payee)
	seen := map[string]bool{folded: true}

	var candidates []candidate
	for _, p := range payees {
		f := fold.String(p)
		if seen[f] {
			continue
		}
		seen[f] = true

		distance := levenshtein.ComputeDistance(folded, f)

		longest := len([]rune(folded))
		if l := len([]rune(f)); l > longest {
			longest = l
		}

		if longest == 0 || distance*3 > longest {
			continue
		}

		candidates = append(candidates, candidate{payee: p, distance: distance})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if max > 0 && len(candidates) > max {
		candidates = candidates[:max]
	}

	result := make([]string, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.payee)
	}

	return result
}
