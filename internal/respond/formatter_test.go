package respond

import (
	"strings"
	"testing"

	"github.com/antoniostano/knowbot/internal/wiki"
)

func TestFormat(t *testing.T) {
	page := wiki.Page{
		Title:   "Marie Curie",
		Summary: "Polish physicist and chemist.",
		URL:     "https://en.wikipedia.org/wiki/Marie_Curie",
	}
	got := Format(page)
	if !strings.HasPrefix(got, "**Marie Curie**\n\n") {
		t.Fatalf("Format() = %q, want bold title first", got)
	}
	if !strings.HasSuffix(got, "[Read more](https://en.wikipedia.org/wiki/Marie_Curie)") {
		t.Fatalf("Format() = %q, want trailing source link", got)
	}
}

func TestFormatDisambiguatedAppendsNote(t *testing.T) {
	got := FormatDisambiguated(wiki.Page{Title: "Mercury (planet)", Summary: "s", URL: "u"})
	if !strings.Contains(got, "Multiple matches found") {
		t.Fatalf("FormatDisambiguated() = %q", got)
	}
}

func TestFormatNotFoundEchoesOriginal(t *testing.T) {
	got := FormatNotFound("asdkjfhaskjdfh")
	if !strings.Contains(got, "'asdkjfhaskjdfh'") {
		t.Fatalf("FormatNotFound() = %q, want original text echoed", got)
	}
	if !strings.Contains(got, "rephrasing") {
		t.Fatalf("FormatNotFound() = %q, want rephrase hint", got)
	}
}

func TestFormatEducationFiltersAndTruncates(t *testing.T) {
	fullText := "He was born in 1970. He attended Stanford University. " +
		"He graduated with a degree in metallurgy. He enjoys sailing. " +
		"He later earned an MBA. He studied physics briefly. " +
		"His college roommate became a senator."
	got, ok := FormatEducation("Example Person", fullText, "https://example.org")
	if !ok {
		t.Fatalf("expected education content")
	}
	if !strings.HasPrefix(got, "**Example Person - Education**") {
		t.Fatalf("got %q", got)
	}
	if strings.Contains(got, "sailing") {
		t.Fatalf("non-education sentence leaked into %q", got)
	}
	// Five sentences match; only four are kept, with an ellipsis.
	if !strings.Contains(got, "...") {
		t.Fatalf("want truncation ellipsis in %q", got)
	}
	if strings.Contains(got, "roommate") {
		t.Fatalf("fifth matching sentence should be truncated: %q", got)
	}
}

func TestFormatEducationNoMatches(t *testing.T) {
	if _, ok := FormatEducation("X", "Nothing relevant here. At all.", "u"); ok {
		t.Fatalf("expected no education content")
	}
}
