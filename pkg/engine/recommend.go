package engine

import "fmt"

// Recommendations derives short advisory strings from a summary. Pure
// function of the counts, so the text can be recomputed from a stored report
// at any time.
func Recommendations(s Summary) []string {
	var recs []string

	if c := s.BySeverity[SevCritical]; c > 0 {
		recs = append(recs, fmt.Sprintf("%d CRITICAL issues require immediate attention", c))
	}
	if c := s.BySeverity[SevHigh]; c > 0 {
		recs = append(recs, fmt.Sprintf("%d HIGH severity issues should be fixed soon", c))
	}
	if c := s.BySeverity[SevMedium]; c > 0 {
		recs = append(recs, fmt.Sprintf("%d MEDIUM severity issues - plan to address", c))
	}

	if len(recs) == 0 {
		if s.Total > 0 {
			recs = append(recs, fmt.Sprintf("%d LOW severity issues can be handled during routine maintenance", s.Total))
		} else {
			recs = append(recs, "No security issues found")
		}
	}
	return recs
}
