package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/antoniostano/knowbot/internal/memory"
	"github.com/antoniostano/knowbot/internal/resolve"
	"github.com/antoniostano/knowbot/internal/wiki"
)

type fakeProvider struct {
	pages    map[string]wiki.Page
	searches map[string][]string
	calls    int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		pages:    make(map[string]wiki.Page),
		searches: make(map[string][]string),
	}
}

func (f *fakeProvider) Search(_ context.Context, q string, _ int) ([]string, error) {
	f.calls++
	return f.searches[q], nil
}

func (f *fakeProvider) Fetch(ctx context.Context, title string, _ bool) (wiki.Page, error) {
	return f.Summary(ctx, title, 0)
}

func (f *fakeProvider) Summary(_ context.Context, title string, _ int) (wiki.Page, error) {
	f.calls++
	// Title matching is case-insensitive, like the real backend's
	// first-letter normalization and redirects.
	for key, page := range f.pages {
		if strings.EqualFold(key, title) {
			return page, nil
		}
	}
	return wiki.Page{}, fmt.Errorf("fetch %q: %w", title, wiki.ErrNotFound)
}

func newTestSession(f *fakeProvider) *Session {
	return NewSession(Config{
		SessionID: "s1",
		Resolver:  resolve.New(f, resolve.Options{SeedNames: resolve.DefaultSeedNames}),
		Provider:  f,
		Archive:   memory.NewInMemoryArchive(),
	})
}

func TestProcessQueryCEOScenario(t *testing.T) {
	f := newFakeProvider()
	f.searches["CEO of openai"] = []string{"OpenAI", "Sam Altman"}
	f.pages["OpenAI"] = wiki.Page{Title: "OpenAI", Summary: "OpenAI is a research organization.", URL: "u1"}
	f.pages["Sam Altman"] = wiki.Page{
		Title:   "Sam Altman",
		Summary: "Sam Altman (born 1985) is the chief executive officer of OpenAI.",
		URL:     "https://en.wikipedia.org/wiki/Sam_Altman",
	}

	s := newTestSession(f)
	got := s.ProcessQuery(context.Background(), "Who is the CEO of OpenAI?")
	if !strings.HasPrefix(got, "**Sam Altman**") {
		t.Fatalf("response = %q, want person page first", got)
	}
	if !strings.HasSuffix(got, "[Read more](https://en.wikipedia.org/wiki/Sam_Altman)") {
		t.Fatalf("response = %q, want trailing source link", got)
	}
	if topic, ok := s.LastTopic(); !ok || topic != "Sam Altman" {
		t.Fatalf("LastTopic() = %q, %v", topic, ok)
	}
}

func TestProcessQueryFollowUpBirthplace(t *testing.T) {
	f := newFakeProvider()
	f.searches["CEO of openai"] = []string{"Sam Altman"}
	f.pages["Sam Altman"] = wiki.Page{
		Title:   "Sam Altman",
		Summary: "Sam Altman (born 1985) is the chief executive officer of OpenAI.",
		URL:     "u",
	}
	f.pages["Sam Altman birthplace"] = wiki.Page{
		Title:   "Sam Altman",
		Summary: "Sam Altman was born in Chicago, Illinois.",
		URL:     "u",
	}

	s := newTestSession(f)
	s.ProcessQuery(context.Background(), "Who is the CEO of OpenAI?")

	got := s.ProcessQuery(context.Background(), "where was he born?")
	if !strings.Contains(got, "born in Chicago") {
		t.Fatalf("response = %q, want birthplace summary", got)
	}
	if topic, ok := s.LastTopic(); !ok || topic != "Sam Altman" {
		t.Fatalf("LastTopic() = %q, %v, want topic preserved", topic, ok)
	}
}

func TestProcessQueryGreetingRecorded(t *testing.T) {
	f := newFakeProvider()
	s := newTestSession(f)

	got := s.ProcessQuery(context.Background(), "hello")
	if !strings.Contains(got, "knowledge bot") {
		t.Fatalf("response = %q, want greeting", got)
	}
	if f.calls != 0 {
		t.Fatalf("provider calls = %d, want 0 for a greeting", f.calls)
	}
	history := s.History()
	if len(history) != 1 || history[0].UserText != "hello" {
		t.Fatalf("greeting exchange must still be recorded: %+v", history)
	}
}

func TestProcessQueryEmptyInput(t *testing.T) {
	f := newFakeProvider()
	s := newTestSession(f)

	got := s.ProcessQuery(context.Background(), "   ")
	if got != "Please ask a question." {
		t.Fatalf("response = %q", got)
	}
	if f.calls != 0 {
		t.Fatalf("provider calls = %d, want 0", f.calls)
	}
}

func TestProcessQueryUnresolvable(t *testing.T) {
	f := newFakeProvider()
	s := newTestSession(f)

	got := s.ProcessQuery(context.Background(), "asdkjfhaskjdfh")
	if !strings.Contains(got, "'asdkjfhaskjdfh'") {
		t.Fatalf("response = %q, want not-found template with original text", got)
	}
}

func TestProcessQueryEducationFollowUp(t *testing.T) {
	f := newFakeProvider()
	f.pages["Satya Nadella"] = wiki.Page{
		Title:   "Satya Nadella",
		Summary: "Satya Nadella is a business executive. He attended Manipal Institute of Technology. He earned a master's degree from the University of Wisconsin. He enjoys cricket.",
		URL:     "https://en.wikipedia.org/wiki/Satya_Nadella",
	}

	s := newTestSession(f)
	s.ProcessQuery(context.Background(), "Who is Satya Nadella?")
	if topic, ok := s.LastTopic(); !ok || topic != "Satya Nadella" {
		t.Fatalf("LastTopic() = %q, %v", topic, ok)
	}

	got := s.ProcessQuery(context.Background(), "where did he study?")
	if !strings.Contains(got, "- Education**") {
		t.Fatalf("response = %q, want education formatter output", got)
	}
	if strings.Contains(got, "cricket") {
		t.Fatalf("non-education sentence leaked: %q", got)
	}
}

func TestClearMemoryAtomically(t *testing.T) {
	f := newFakeProvider()
	f.pages["Satya Nadella"] = wiki.Page{Title: "Satya Nadella", Summary: "Executive.", URL: "u"}

	s := newTestSession(f)
	s.ProcessQuery(context.Background(), "Who is Satya Nadella?")

	s.ClearMemory()
	if len(s.History()) != 0 {
		t.Fatalf("history should be empty after clear")
	}
	if _, ok := s.LastTopic(); ok {
		t.Fatalf("last topic should be cleared")
	}
}

func TestExportArchivedExchanges(t *testing.T) {
	f := newFakeProvider()
	f.pages["Satya Nadella"] = wiki.Page{Title: "Satya Nadella", Summary: "Executive.", URL: "u"}

	s := newTestSession(f)
	s.ProcessQuery(context.Background(), "hello")
	s.ProcessQuery(context.Background(), "Who is Satya Nadella?")

	all, err := s.Export(context.Background(), 10)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(exchanges) = %d, want 2", len(all))
	}
	if all[0].UserText != "hello" || all[1].UserText != "Who is Satya Nadella?" {
		t.Fatalf("exchanges out of order: %+v", all)
	}

	last, err := s.Export(context.Background(), 1)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(last) != 1 || last[0].UserText != "Who is Satya Nadella?" {
		t.Fatalf("limited export = %+v, want newest exchange", last)
	}
}

func TestProcessQueryThanks(t *testing.T) {
	s := newTestSession(newFakeProvider())
	got := s.ProcessQuery(context.Background(), "thank you!")
	if !strings.Contains(got, "welcome") {
		t.Fatalf("response = %q", got)
	}
}
