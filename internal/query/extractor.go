package query

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Role and relationship templates, evaluated in priority order against
// the lowered utterance. The capture runs to the first question mark or
// end of input.
var rolePatterns = []struct {
	role RoleHint
	re   *regexp.Regexp
}{
	{RoleCEO, regexp.MustCompile(`ceo of\s+(.+?)(?:\?|$)`)},
	{RolePrimeMinister, regexp.MustCompile(`prime minister of\s+(.+?)(?:\?|$)`)},
	{RolePresident, regexp.MustCompile(`president of\s+(.+?)(?:\?|$)`)},
	{RoleCapital, regexp.MustCompile(`capital of\s+(.+?)(?:\?|$)`)},
	{RoleFounder, regexp.MustCompile(`founder of\s+(.+?)(?:\?|$)`)},
	{RoleNone, regexp.MustCompile(`who is\s+(.+?)(?:\?|$)`)},
	{RoleNone, regexp.MustCompile(`what is\s+(.+?)(?:\?|$)`)},
	{RoleNone, regexp.MustCompile(`tell me about\s+(.+?)(?:\?|$)`)},
}

var (
	articlePattern    = regexp.MustCompile(`\b(the|a|an)\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	boldTitlePattern  = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Words that mark a candidate title as structural noise rather than a
// real topic.
var titleNoiseWords = []string{"page", "summary", "wikipedia", "list of"}

// ExtractEntity pulls the named entity out of an utterance using the role
// template table. The second return is the matched role hint; ok is false
// when no template matched and callers must fall back to normalized-text
// search.
func ExtractEntity(text string) (ExtractedEntity, RoleHint, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, p := range rolePatterns {
		m := p.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		surface := cleanEntity(m[1])
		if surface == "" {
			continue
		}
		return ExtractedEntity{Surface: surface, Source: SourceQueryPattern}, p.role, true
	}
	return ExtractedEntity{}, RoleNone, false
}

func cleanEntity(captured string) string {
	out := articlePattern.ReplaceAllString(captured, "")
	out = whitespacePattern.ReplaceAllString(out, " ")
	out = strings.TrimRight(strings.TrimSpace(out), "?")
	return strings.TrimSpace(out)
}

// ExtractTopicFromResponse mines the main topic out of a rendered bot
// response: the bolded leading title when present, otherwise an adjacent
// pair of capitalized words. Returns false when nothing usable is found;
// callers must then keep the previous topic rather than erase it.
func ExtractTopicFromResponse(response string) (ExtractedEntity, bool) {
	if m := boldTitlePattern.FindStringSubmatch(response); m != nil {
		title := strings.TrimSpace(m[1])
		if title != "" && !containsNoiseWord(title) {
			return ExtractedEntity{Surface: title, Source: SourcePriorResponse}, true
		}
	}

	words := strings.Fields(response)
	for i := 0; i+1 < len(words); i++ {
		if len(words[i]) <= 2 || !startsUpper(words[i]) || !startsUpper(words[i+1]) {
			continue
		}
		pair := words[i] + " " + words[i+1]
		if len(pair) > 5 && !containsNoiseWord(pair) {
			return ExtractedEntity{Surface: pair, Source: SourcePriorResponse}, true
		}
	}
	return ExtractedEntity{}, false
}

func containsNoiseWord(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range titleNoiseWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsUpper(r)
}
