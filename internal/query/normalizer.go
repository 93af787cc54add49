package query

import "strings"

// Interrogative and imperative lead-ins stripped before searching. Order
// matters: more specific entries come before their prefixes so that
// "tell me more about" wins over "tell me about". First match wins.
var leadInPrefixes = []string{
	"give me information about",
	"i want to know about",
	"tell me more about",
	"information about",
	"details about",
	"tell me about",
	"who is", "who was", "who are", "who does",
	"what is", "what was", "what are", "what does",
	"where is", "where was", "where are", "where does",
	"when is", "when was", "when are", "when does",
	"why is", "why was", "why are", "why does",
	"how is", "how was", "how are", "how does",
	"describe",
	"explain",
}

// Normalize strips a single recognized lead-in from raw and trims the
// remainder, preserving the original casing of what is left. An empty
// result means the utterance carried no topic at all.
func Normalize(raw string) string {
	out := strings.TrimSpace(raw)
	lower := strings.ToLower(out)
	for _, prefix := range leadInPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(out[len(prefix):])
		}
	}
	return out
}
