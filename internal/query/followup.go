package query

import (
	"regexp"
	"strings"
)

// Surface patterns that mark an utterance as depending on the previous
// turn's topic. Any single match classifies the utterance as a follow-up;
// this is a deliberate heuristic, so false positives are tolerated.
var followUpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^he `),
	regexp.MustCompile(`^she `),
	regexp.MustCompile(`^they `),
	regexp.MustCompile(`^it `),
	regexp.MustCompile(`^where `),
	regexp.MustCompile(`^when `),
	regexp.MustCompile(`^how `),
	regexp.MustCompile(`^why `),
	regexp.MustCompile(`^which `),
	regexp.MustCompile(`what('s| is| was)? (his|her|their|its) `),
	regexp.MustCompile(`^tell me more`),
	regexp.MustCompile(`^more about`),
	regexp.MustCompile(`^what about`),
	regexp.MustCompile(`background`),
	regexp.MustCompile(`biography`),
	regexp.MustCompile(`longest`),
	regexp.MustCompile(`shortest`),
	regexp.MustCompile(`biggest`),
	regexp.MustCompile(`smallest`),
	regexp.MustCompile(`highest`),
	regexp.MustCompile(`lowest`),
	regexp.MustCompile(`tallest`),
	regexp.MustCompile(`among them`),
	regexp.MustCompile(`of them`),
}

// IsFollowUp reports whether the utterance leans on the prior turn's topic
// instead of naming one itself.
func IsFollowUp(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, p := range followUpPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}
