package resolve

import (
	"context"
	"fmt"

	"github.com/antoniostano/knowbot/internal/query"
	"github.com/antoniostano/knowbot/internal/wiki"
)

const (
	defaultSearchLimit     = 10
	defaultSummarySentence = 5
	maxDisambigProbes      = 5
)

// NoMatchError reports that every strategy was exhausted without an
// accepted candidate. Query carries the original, un-normalized user text
// for message formatting.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("resolve: no match for %q", e.Query)
}

// Resolution is an accepted candidate page plus how it was found.
type Resolution struct {
	Page               wiki.Page
	Query              string
	FromDisambiguation bool
	Attempts           int
}

// Resolver walks candidate queries through the strategy ladder: direct
// fetch, disambiguation probe, ranked-search probe. The first accepted
// candidate wins; strategy order encodes priority.
type Resolver struct {
	provider         wiki.Provider
	searchLimit      int
	summarySentences int
	seedNames        []string
}

// Options tunes the resolver. Zero values fall back to defaults;
// SeedNames may be nil to disable the executive-filter weak signal.
type Options struct {
	SearchLimit      int
	SummarySentences int
	SeedNames        []string
}

func New(provider wiki.Provider, opts Options) *Resolver {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = defaultSearchLimit
	}
	if opts.SummarySentences <= 0 {
		opts.SummarySentences = defaultSummarySentence
	}
	return &Resolver{
		provider:         provider,
		searchLimit:      opts.SearchLimit,
		summarySentences: opts.SummarySentences,
		seedNames:        opts.SeedNames,
	}
}

// Resolve tries each planned query in order and returns the first accepted
// candidate. Transport failures count as a failed attempt for that query
// and the ladder moves on rather than aborting.
func (r *Resolver) Resolve(ctx context.Context, plan query.Plan, original string) (Resolution, error) {
	res := Resolution{}
	for _, q := range plan.Queries {
		res.Attempts++

		page, err := r.provider.Summary(ctx, q, r.summarySentences)
		switch {
		case err == nil:
			if r.accept(page, plan) {
				res.Page = page
				res.Query = q
				return res, nil
			}
		default:
			if amb, ok := wiki.IsAmbiguous(err); ok {
				if page, ok := r.probeAlternatives(ctx, amb.Options); ok {
					res.Page = page
					res.Query = q
					res.FromDisambiguation = true
					return res, nil
				}
				continue
			}
			// Not-found and transport errors both fall through to the
			// ranked-search probe for this query.
		}

		if page, ok := r.probeSearch(ctx, q, plan); ok {
			res.Page = page
			res.Query = q
			return res, nil
		}
	}
	return res, &NoMatchError{Query: original}
}

// probeAlternatives fetches each disambiguation option in order, bounded,
// accepting the first page that fetches cleanly.
func (r *Resolver) probeAlternatives(ctx context.Context, options []string) (wiki.Page, bool) {
	probes := options
	if len(probes) > maxDisambigProbes {
		probes = probes[:maxDisambigProbes]
	}
	for _, option := range probes {
		page, err := r.provider.Summary(ctx, option, r.summarySentences)
		if err != nil {
			continue
		}
		return page, true
	}
	return wiki.Page{}, false
}

// probeSearch falls back to a ranked search and walks the candidates in
// order, accepting the first that passes the relevant filter.
func (r *Resolver) probeSearch(ctx context.Context, q string, plan query.Plan) (wiki.Page, bool) {
	titles, err := r.provider.Search(ctx, q, r.searchLimit)
	if err != nil {
		return wiki.Page{}, false
	}
	for _, title := range titles {
		page, err := r.provider.Summary(ctx, title, r.summarySentences)
		if err != nil {
			continue
		}
		if r.accept(page, plan) {
			return page, true
		}
	}
	return wiki.Page{}, false
}

func (r *Resolver) accept(page wiki.Page, plan query.Plan) bool {
	if plan.Role == query.RoleCEO {
		return acceptExecutive(page, plan.Entity, r.seedNames)
	}
	return page.Title != ""
}
