package wiki

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Page is one encyclopedia article: canonical title, extract text and
// the canonical URL for attribution.
type Page struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// Provider is the capability boundary to the encyclopedia backend.
// Ambiguity and missing pages are expected outcomes and surface as typed
// errors (AmbiguousTitleError, ErrNotFound), not as transport failures.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
	Fetch(ctx context.Context, title string, fuzzy bool) (Page, error)
	Summary(ctx context.Context, title string, sentences int) (Page, error)
}

// ErrNotFound reports that no page matches the requested title.
var ErrNotFound = errors.New("wiki: page not found")

// AmbiguousTitleError reports that a title matches multiple distinct pages.
// Options holds alternative titles in the backend's ranking order.
type AmbiguousTitleError struct {
	Title   string
	Options []string
}

func (e *AmbiguousTitleError) Error() string {
	return fmt.Sprintf("wiki: %q is ambiguous (%s)", e.Title, strings.Join(e.Options, ", "))
}

// IsAmbiguous reports whether err carries a disambiguation signal and, if
// so, returns the offered alternatives.
func IsAmbiguous(err error) (*AmbiguousTitleError, bool) {
	var amb *AmbiguousTitleError
	if errors.As(err, &amb) {
		return amb, true
	}
	return nil, false
}
