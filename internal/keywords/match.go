package keywords

import "strings"

// MatchResult compares job keywords against resume keywords.
type MatchResult struct {
	Exact   []string
	Partial []string
	// Matched is Exact followed by Partial.
	Matched []string
	Missing []string
	// Rate is len(Matched) / number of distinct job keywords, 0 when there are none.
	Rate float64
}

// Match finds job keywords present in the resume keywords, either exactly or
// as a substring in either direction. Output lists follow job keyword order.
func Match(resumeKW, jobKW []string) MatchResult {
	resumeSet := make(map[string]bool, len(resumeKW))
	resumeOrder := make([]string, 0, len(resumeKW))
	for _, kw := range resumeKW {
		if !resumeSet[kw] {
			resumeSet[kw] = true
			resumeOrder = append(resumeOrder, kw)
		}
	}
	job := dedupe(jobKW)

	var res MatchResult
	for _, kw := range job {
		if resumeSet[kw] {
			res.Exact = append(res.Exact, kw)
		}
	}
	for _, kw := range job {
		if resumeSet[kw] {
			continue
		}
		if containsEither(kw, resumeOrder) {
			res.Partial = append(res.Partial, kw)
		} else {
			res.Missing = append(res.Missing, kw)
		}
	}

	res.Matched = make([]string, 0, len(res.Exact)+len(res.Partial))
	res.Matched = append(res.Matched, res.Exact...)
	res.Matched = append(res.Matched, res.Partial...)
	if len(job) > 0 {
		res.Rate = float64(len(res.Matched)) / float64(len(job))
	}
	return res
}

func containsEither(kw string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(c, kw) || strings.Contains(kw, c) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}
