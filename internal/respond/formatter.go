package respond

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/antoniostano/knowbot/internal/query"
	"github.com/antoniostano/knowbot/internal/wiki"
)

const (
	maxEducationSentences = 4

	disambiguationNote = "Multiple matches found. Showing the most relevant result."
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Format renders an accepted page as the user-facing answer with a
// source link.
func Format(page wiki.Page) string {
	return fmt.Sprintf("**%s**\n\n%s\n\n[Read more](%s)", page.Title, page.Summary, page.URL)
}

// FormatDisambiguated is Format plus a note that the page was picked from
// a disambiguation option list.
func FormatDisambiguated(page wiki.Page) string {
	return Format(page) + "\n\n" + disambiguationNote
}

// FormatNotFound renders the fixed apology for an exhausted resolution,
// echoing the original user text.
func FormatNotFound(original string) string {
	return fmt.Sprintf("Could not find information about '%s'.\n\nTry rephrasing your question or checking the spelling.", original)
}

// FormatEducation filters a full article down to its education-related
// sentences, keeping at most four and flagging truncation. The sentence
// filter uses the same education terms as follow-up routing so the two
// stay in agreement.
func FormatEducation(topic, fullText, url string) (string, bool) {
	var matched []string
	for _, raw := range sentenceBoundary.Split(fullText, -1) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		if query.ContainsEducationTerm(sentence) {
			matched = append(matched, sentence)
		}
	}
	if len(matched) == 0 {
		return "", false
	}

	body := strings.Join(truncate(matched, maxEducationSentences), ". ")
	if len(matched) > maxEducationSentences {
		body += "..."
	}
	return fmt.Sprintf("**%s - Education**\n\n%s\n\n[Read more](%s)", topic, body, url), true
}

func truncate(sentences []string, n int) []string {
	if len(sentences) <= n {
		return sentences
	}
	return sentences[:n]
}
