package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/antoniostano/knowbot/internal/reliability"
)

const (
	defaultAPIURL    = "https://en.wikipedia.org/w/api.php"
	defaultUserAgent = "knowbot/1.0 (https://github.com/antoniostano/knowbot)"

	disambiguationOptionLimit = 5
	retryBackoffBase          = 200 * time.Millisecond
	retryBackoffCap           = 2 * time.Second
)

// Client talks to a MediaWiki Action API endpoint.
type Client struct {
	apiURL    string
	userAgent string
	client    *http.Client
}

// ClientConfig carries the tunable pieces of the MediaWiki client.
type ClientConfig struct {
	APIURL    string
	UserAgent string
	Timeout   time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	apiURL := strings.TrimSpace(cfg.APIURL)
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiURL:    apiURL,
		userAgent: ua,
		client:    &http.Client{Timeout: timeout},
	}
}

// Search returns up to limit page titles ranked by the backend.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))
	params.Set("format", "json")
	params.Set("utf8", "1")

	var root struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := c.call(ctx, params, &root); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	titles := make([]string, 0, len(root.Query.Search))
	for _, hit := range root.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

// Fetch retrieves the full plain-text extract for title. When fuzzy is set
// and the exact title is missing, the top search hit is fetched instead.
func (c *Client) Fetch(ctx context.Context, title string, fuzzy bool) (Page, error) {
	return c.fetchExtract(ctx, title, 0, fuzzy)
}

// Summary retrieves the leading sentences of the page for title.
func (c *Client) Summary(ctx context.Context, title string, sentences int) (Page, error) {
	if sentences <= 0 {
		sentences = 5
	}
	return c.fetchExtract(ctx, title, sentences, false)
}

func (c *Client) fetchExtract(ctx context.Context, title string, sentences int, fuzzy bool) (Page, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts|info|pageprops")
	params.Set("inprop", "url")
	params.Set("ppprop", "disambiguation")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", title)
	params.Set("format", "json")
	if sentences > 0 {
		params.Set("exsentences", strconv.Itoa(sentences))
	}

	var root struct {
		Query struct {
			Pages map[string]struct {
				Title     string                     `json:"title"`
				Extract   string                     `json:"extract"`
				FullURL   string                     `json:"fullurl"`
				Missing   *string                    `json:"missing"`
				PageProps map[string]json.RawMessage `json:"pageprops"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.call(ctx, params, &root); err != nil {
		return Page{}, fmt.Errorf("fetch %q: %w", title, err)
	}

	for id, page := range root.Query.Pages {
		if id == "-1" || page.Missing != nil {
			if fuzzy {
				return c.fetchSuggestion(ctx, title, sentences)
			}
			return Page{}, fmt.Errorf("fetch %q: %w", title, ErrNotFound)
		}
		if _, disambig := page.PageProps["disambiguation"]; disambig {
			options, err := c.Search(ctx, page.Title, disambiguationOptionLimit)
			if err != nil {
				options = nil
			}
			return Page{}, &AmbiguousTitleError{Title: page.Title, Options: withoutTitle(options, page.Title)}
		}
		return Page{
			Title:   page.Title,
			Summary: strings.TrimSpace(page.Extract),
			URL:     page.FullURL,
		}, nil
	}
	return Page{}, fmt.Errorf("fetch %q: %w", title, ErrNotFound)
}

// fetchSuggestion resolves a fuzzy miss through the top-ranked search hit.
func (c *Client) fetchSuggestion(ctx context.Context, title string, sentences int) (Page, error) {
	hits, err := c.Search(ctx, title, 1)
	if err != nil {
		return Page{}, err
	}
	if len(hits) == 0 {
		return Page{}, fmt.Errorf("fetch %q: %w", title, ErrNotFound)
	}
	return c.fetchExtract(ctx, hits[0], sentences, false)
}

func (c *Client) call(ctx context.Context, params url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(reliability.ExponentialBackoff(attempt, retryBackoffBase, retryBackoffCap)):
			}
		}
		retryable, err := c.doOnce(ctx, params, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, params url.Values, out any) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return true, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return reliability.IsRetryableHTTPStatus(res.StatusCode),
			fmt.Errorf("wiki api status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}

func withoutTitle(options []string, title string) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if strings.EqualFold(o, title) {
			continue
		}
		out = append(out, o)
	}
	return out
}
