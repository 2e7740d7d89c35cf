package suggest

import "strings"

// matchScore rates how well candidate completes partial. Both inputs
// are compared lower-cased. Exact match scores 1.0, a prefix match
// decays with the length difference, a substring match decays with the
// match position, anything else scores 0.
func matchScore(partial, candidate string) float64 {
	partial = strings.ToLower(partial)
	candidate = strings.ToLower(candidate)

	if partial == candidate {
		return 1.0
	}
	if strings.HasPrefix(candidate, partial) {
		return 0.9 - float64(len(candidate)-len(partial))/float64(len(candidate))*0.3
	}
	if pos := strings.Index(candidate, partial); pos >= 0 {
		return 0.6 - float64(pos)/float64(len(candidate))*0.2
	}
	return 0
}

// similarityRatio is a normalized sequence similarity in [0,1],
// computed as 2*LCS(a,b)/(len(a)+len(b)).
func similarityRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	lcs := longestCommonSubsequence(a, b)
	return 2.0 * float64(lcs) / float64(len(a)+len(b))
}

// longestCommonSubsequence computes the LCS length with a rolling
// single-row table.
func longestCommonSubsequence(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func clampScore(s float64) float64 {
	if s > 1.0 {
		return 1.0
	}
	if s < 0 {
		return 0
	}
	return s
}
