package wiki

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(ClientConfig{APIURL: srv.URL})
	return c, srv
}

func TestSearchReturnsRankedTitles(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("list"); got != "search" {
			t.Fatalf("list = %q, want search", got)
		}
		w.Write([]byte(`{"query":{"search":[{"title":"Marie Curie"},{"title":"Pierre Curie"}]}}`))
	})
	defer srv.Close()

	titles, err := c.Search(context.Background(), "curie", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(titles) != 2 || titles[0] != "Marie Curie" {
		t.Fatalf("titles = %v", titles)
	}
}

func TestFetchMissingPage(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":{"pages":{"-1":{"title":"Nope","missing":""}}}}`))
	})
	defer srv.Close()

	_, err := c.Fetch(context.Background(), "Nope", false)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Fetch() error = %v, want ErrNotFound", err)
	}
}

func TestFetchDisambiguationSurfacesOptions(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("list") == "search" {
			w.Write([]byte(`{"query":{"search":[{"title":"Mercury (planet)"},{"title":"Mercury (element)"}]}}`))
			return
		}
		w.Write([]byte(`{"query":{"pages":{"1":{"title":"Mercury","extract":"Mercury may refer to:","fullurl":"https://en.wikipedia.org/wiki/Mercury","pageprops":{"disambiguation":""}}}}}`))
	})
	defer srv.Close()

	_, err := c.Fetch(context.Background(), "Mercury", false)
	amb, ok := IsAmbiguous(err)
	if !ok {
		t.Fatalf("Fetch() error = %v, want AmbiguousTitleError", err)
	}
	if len(amb.Options) != 2 || amb.Options[0] != "Mercury (planet)" {
		t.Fatalf("Options = %v", amb.Options)
	}
}

func TestFetchFuzzyFallsBackToTopHit(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("list") == "search":
			w.Write([]byte(`{"query":{"search":[{"title":"Marie Curie"}]}}`))
		case q.Get("titles") == "marie curry":
			w.Write([]byte(`{"query":{"pages":{"-1":{"missing":""}}}}`))
		default:
			w.Write([]byte(`{"query":{"pages":{"7":{"title":"Marie Curie","extract":"Polish physicist.","fullurl":"https://en.wikipedia.org/wiki/Marie_Curie"}}}}`))
		}
	})
	defer srv.Close()

	page, err := c.Fetch(context.Background(), "marie curry", true)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if page.Title != "Marie Curie" {
		t.Fatalf("Title = %q", page.Title)
	}
}

func TestCallRetriesRetryableStatusOnce(t *testing.T) {
	calls := 0
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"query":{"search":[{"title":"Go (programming language)"}]}}`))
	})
	defer srv.Close()

	titles, err := c.Search(context.Background(), "golang", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if len(titles) != 1 {
		t.Fatalf("titles = %v", titles)
	}
}

func TestCallDoesNotRetryClientError(t *testing.T) {
	calls := 0
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	})
	defer srv.Close()

	if _, err := c.Search(context.Background(), "golang", 5); err == nil {
		t.Fatalf("Search() expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
