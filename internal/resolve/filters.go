package resolve

import (
	"strings"

	"github.com/antoniostano/knowbot/internal/wiki"
)

// Tokens whose presence in a summary or title suggests the page is about
// a person holding an executive role rather than the company itself.
var executiveIndicators = []string{
	"chief executive officer",
	"ceo",
	"executive",
	"born",
	"appointed",
}

// DefaultSeedNames is an optional weak signal for bootstrapping the
// executive filter: well-known title bearers whose names alone mark a
// page as a person page. Overridable through configuration and safe to
// disable entirely.
var DefaultSeedNames = []string{
	"sundar pichai",
	"tim cook",
	"satya nadella",
	"mark zuckerberg",
}

// acceptExecutive decides whether a candidate page plausibly describes the
// executive the query asked for. The page is rejected when it is merely
// the company's own page, unless the title itself names the role.
func acceptExecutive(page wiki.Page, company string, seedNames []string) bool {
	summary := strings.ToLower(page.Summary)
	title := strings.ToLower(page.Title)

	indicated := false
	for _, tok := range executiveIndicators {
		if strings.Contains(summary, tok) || strings.Contains(title, tok) {
			indicated = true
			break
		}
	}
	if !indicated {
		for _, name := range seedNames {
			if name == "" {
				continue
			}
			if strings.Contains(summary, name) || strings.Contains(title, name) {
				indicated = true
				break
			}
		}
	}
	if !indicated {
		return false
	}

	company = strings.ToLower(strings.TrimSpace(company))
	if company != "" && strings.Contains(title, company) && !strings.Contains(title, "ceo") {
		return false
	}
	return true
}
