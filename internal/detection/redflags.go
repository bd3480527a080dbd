package detection

import (
	"strings"

	"github.com/scambait/honeypot/internal/patterns"
)

// RedFlagMatch reports one triggered category together with the
// literal trigger substrings that fired it.
type RedFlagMatch struct {
	Category patterns.RedFlagCategory `json:"category"`
	Label    string                   `json:"label"`
	Matched  []string                 `json:"matchedTriggers"`
}

// IdentifyRedFlags scans text for every matching red-flag category.
// A single message may trigger any subset of the nine categories,
// including none or all; no category excludes another.
func IdentifyRedFlags(text string) []patterns.RedFlagCategory {
	lower := strings.ToLower(text)
	var flags []patterns.RedFlagCategory
	for _, rule := range patterns.RedFlagRules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(lower, trigger) {
				flags = append(flags, rule.Category)
				break
			}
		}
	}
	return flags
}

// IdentifyRedFlagsDetailed is IdentifyRedFlags plus the matched
// trigger substrings per category. It reports exactly the same set of
// categories as the simple form.
func IdentifyRedFlagsDetailed(text string) []RedFlagMatch {
	lower := strings.ToLower(text)
	var results []RedFlagMatch
	for _, rule := range patterns.RedFlagRules {
		var matched []string
		for _, trigger := range rule.Triggers {
			if strings.Contains(lower, trigger) {
				matched = append(matched, trigger)
			}
		}
		if len(matched) > 0 {
			results = append(results, RedFlagMatch{
				Category: rule.Category,
				Label:    rule.Label,
				Matched:  matched,
			})
		}
	}
	return results
}
