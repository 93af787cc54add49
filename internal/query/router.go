package query

import "strings"

// EducationTerms drives both the education-aspect branch of the router and
// the sentence filter in the education formatter. Keeping one list makes
// the two agree on what counts as education-related.
var EducationTerms = []string{
	"education", "study", "studied", "university", "college", "school",
	"graduated", "degree", "bachelor", "master", "phd", "attended",
	"alumni", "mba",
}

var (
	politicsTerms   = []string{"party", "political", "belongs"}
	birthplaceTerms = []string{"born", "birthplace", "from"}
	careerTerms     = []string{"profession", "work", "career"}
	generalWhTerms  = []string{"where", "when", "how", "what"}
)

// ContainsEducationTerm reports whether text mentions any education term.
func ContainsEducationTerm(text string) bool {
	return containsAny(strings.ToLower(text), EducationTerms)
}

// Classify builds the Intent for one utterance. Follow-up classification
// and entity extraction run on the raw text; normalization feeds the
// fallback search string.
func Classify(raw string) Intent {
	intent := Intent{
		RawText:    strings.TrimSpace(raw),
		Normalized: Normalize(raw),
		IsFollowUp: IsFollowUp(raw),
	}
	if entity, role, ok := ExtractEntity(raw); ok {
		intent.Entity = &entity
		intent.Role = role
	}
	return intent
}

// BuildPlan turns an Intent plus the remembered topic into the ordered
// provider queries for the resolver. Strategy order encodes priority; the
// resolver stops at the first accepted candidate.
func BuildPlan(intent Intent, lastTopic string) Plan {
	lastTopic = strings.TrimSpace(lastTopic)

	if intent.IsFollowUp && lastTopic != "" {
		return followUpPlan(intent, lastTopic)
	}

	plan := Plan{Role: intent.Role}
	if intent.Entity != nil {
		plan.Entity = intent.Entity.Surface
		plan.Topic = intent.Entity.Surface
		switch intent.Role {
		case RoleCEO:
			plan.Queries = append(plan.Queries, "CEO of "+plan.Entity)
		case RolePresident:
			plan.Queries = append(plan.Queries, "President of "+plan.Entity)
		case RolePrimeMinister:
			plan.Queries = append(plan.Queries, "Prime Minister of "+plan.Entity)
		case RoleCapital:
			plan.Queries = append(plan.Queries, plan.Entity+" (capital)")
		case RoleFounder:
			plan.Queries = append(plan.Queries, "Founder of "+plan.Entity)
		default:
			plan.Queries = append(plan.Queries, plan.Entity)
		}
		if intent.Normalized != "" && !containsQuery(plan.Queries, intent.Normalized) {
			plan.Queries = append(plan.Queries, intent.Normalized)
		}
	} else if intent.Normalized != "" {
		plan.Topic = intent.Normalized
		plan.Queries = append(plan.Queries, intent.Normalized)
	}

	plan.Queries = append(plan.Queries, keyTermQueries(intent.RawText, plan.Queries)...)
	return plan
}

func followUpPlan(intent Intent, topic string) Plan {
	lower := strings.ToLower(intent.RawText)
	plan := Plan{Topic: topic}

	switch {
	case containsAny(lower, EducationTerms):
		plan.Aspect = AspectEducation
		plan.Queries = []string{topic + " education", topic}
	case containsAny(lower, politicsTerms):
		plan.Aspect = AspectPolitics
		plan.Queries = []string{topic + " political party", topic}
	case containsAny(lower, birthplaceTerms):
		plan.Aspect = AspectBirthplace
		plan.Queries = []string{topic + " birthplace", topic}
	case containsAny(lower, careerTerms):
		plan.Aspect = AspectCareer
		plan.Queries = []string{topic + " profession", topic}
	case containsAny(lower, generalWhTerms):
		plan.Aspect = AspectGeneral
		plan.Queries = []string{topic + " " + intent.RawText, topic}
	default:
		plan.Queries = []string{topic}
	}
	return plan
}

// keyTermQueries appends last-resort sliding three-word windows over the
// raw utterance, tried only after every primary strategy has failed.
func keyTermQueries(raw string, existing []string) []string {
	words := strings.Fields(raw)
	if len(words) < 2 {
		return nil
	}
	var out []string
	for i := 0; i < 3 && i < len(words); i++ {
		end := i + 3
		if end > len(words) {
			end = len(words)
		}
		window := strings.Join(words[i:end], " ")
		if window == "" || containsQuery(existing, window) || containsQuery(out, window) {
			continue
		}
		out = append(out, window)
	}
	return out
}

func containsAny(lower string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func containsQuery(queries []string, q string) bool {
	for _, existing := range queries {
		if strings.EqualFold(existing, q) {
			return true
		}
	}
	return false
}
