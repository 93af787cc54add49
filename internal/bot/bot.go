package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/antoniostano/knowbot/internal/memory"
	"github.com/antoniostano/knowbot/internal/observability"
	"github.com/antoniostano/knowbot/internal/query"
	"github.com/antoniostano/knowbot/internal/resolve"
	"github.com/antoniostano/knowbot/internal/respond"
	"github.com/antoniostano/knowbot/internal/wiki"
)

const (
	emptyReply   = "Please ask a question."
	noTopicReply = "Please provide a specific topic to search for."
	thanksReply  = "You're welcome! Feel free to ask more questions anytime."
	errorReply   = "Sorry, something went wrong while looking that up. Please try again."

	greetingReply = `Hello! I'm a conversational knowledge bot.

I can answer factual questions about people, places, concepts, history, science and more, and I remember our conversation for follow-ups.

Try asking:
- "Who is the CEO of Google?"
- "What is quantum computing?"
- "What is the capital of Australia?"

What would you like to know?`

	helpReply = `**HELP**

Ask any factual question and I'll answer it with a sourced summary:
- Who is the CEO of OpenAI?
- What is artificial intelligence?
- Where is the Amazon River located?

Follow-ups like "where was he born?" resolve against the last topic we discussed.

Tips: be specific with names and check the spelling of proper nouns.`
)

// Session is one conversational session: a bounded memory window plus the
// resolution pipeline. It serializes callers, so one utterance is fully
// resolved before the next is accepted.
type Session struct {
	mu       sync.Mutex
	id       string
	window   *memory.Window
	resolver *resolve.Resolver
	provider wiki.Provider
	archive  memory.Archive
	metrics  *observability.Metrics
}

// Config assembles a Session. Resolver and Provider are required; Archive
// and Metrics may be nil.
type Config struct {
	SessionID     string
	HistoryWindow int
	Resolver      *resolve.Resolver
	Provider      wiki.Provider
	Archive       memory.Archive
	Metrics       *observability.Metrics
}

func NewSession(cfg Config) *Session {
	id := strings.TrimSpace(cfg.SessionID)
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		id:       id,
		window:   memory.NewWindow(cfg.HistoryWindow),
		resolver: cfg.Resolver,
		provider: cfg.Provider,
		archive:  cfg.Archive,
		metrics:  cfg.Metrics,
	}
}

func (s *Session) ID() string { return s.id }

// ProcessQuery resolves one utterance into a final response string. It
// never returns an error and never panics past this boundary: the worst
// outcome is an apologetic message.
func (s *Session) ProcessQuery(ctx context.Context, userText string) (response string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turnStarted := time.Now()
	defer func() {
		if r := recover(); r != nil {
			response = errorReply
			s.count("error")
		}
		s.metrics.ObserveStage(observability.StageTurnTotal, time.Since(turnStarted))
	}()

	text := strings.TrimSpace(userText)
	if text == "" {
		s.count("empty")
		return emptyReply
	}

	lower := strings.ToLower(text)
	switch {
	case lower == "hi" || lower == "hello" || lower == "hey":
		return s.finish(ctx, text, greetingReply, "", "greeting")
	case lower == "help" || lower == "?":
		return s.finish(ctx, text, helpReply, "", "help")
	case strings.Contains(lower, "thank"):
		return s.finish(ctx, text, thanksReply, "", "thanks")
	}

	intent := query.Classify(text)
	if intent.Normalized == "" {
		return s.finish(ctx, text, noTopicReply, "", "no_topic")
	}

	lastTopic, _ := s.window.LastTopic()
	plan := query.BuildPlan(intent, lastTopic)

	started := time.Now()
	res, err := s.resolver.Resolve(ctx, plan, text)
	if s.metrics != nil {
		s.metrics.ResolverAttempts.Observe(float64(res.Attempts))
		s.metrics.ObserveResolveLatency(time.Since(started))
	}
	if err != nil {
		return s.finish(ctx, text, respond.FormatNotFound(text), "", "not_found")
	}

	renderStarted := time.Now()
	response = s.render(ctx, plan, res)
	s.metrics.ObserveStage(observability.StageRender, time.Since(renderStarted))
	if res.FromDisambiguation {
		s.metrics.ObserveIndicator("disambiguation")
	}
	return s.finish(ctx, text, response, s.nextTopic(intent, response), "answered")
}

// render picks the formatter for an accepted resolution. Education
// follow-ups that landed back on the topic's own page are re-rendered
// from the full article.
func (s *Session) render(ctx context.Context, plan query.Plan, res resolve.Resolution) string {
	if plan.Aspect == query.AspectEducation && !strings.Contains(strings.ToLower(res.Page.Title), "education") {
		if full, err := s.provider.Fetch(ctx, res.Page.Title, false); err == nil {
			if msg, ok := respond.FormatEducation(plan.Topic, full.Summary, full.URL); ok {
				return msg
			}
		}
	}
	if res.FromDisambiguation {
		return respond.FormatDisambiguated(res.Page)
	}
	return respond.Format(res.Page)
}

// nextTopic mines the topic for the next turn from the rendered response,
// falling back to the extracted entity on a fresh query. Empty means the
// previous topic is preserved.
func (s *Session) nextTopic(intent query.Intent, response string) string {
	if topic, ok := query.ExtractTopicFromResponse(response); ok {
		return topic.Surface
	}
	if intent.Entity != nil && !intent.IsFollowUp {
		return intent.Entity.Surface
	}
	return ""
}

// finish records the completed turn, archives it best-effort, updates the
// topic slot and counts the outcome.
func (s *Session) finish(ctx context.Context, userText, botText, newTopic, outcome string) string {
	now := time.Now().UTC()
	turn := memory.Turn{
		ID:        uuid.NewString(),
		UserText:  userText,
		BotText:   botText,
		CreatedAt: now,
	}
	s.window.Record(turn)
	if newTopic != "" {
		s.window.SetLastTopic(newTopic)
	}
	if s.archive != nil {
		// Transcript archiving must never fail the response.
		_ = s.archive.SaveExchange(ctx, memory.ExchangeRecord{
			ID:        turn.ID,
			SessionID: s.id,
			UserText:  userText,
			BotText:   botText,
			CreatedAt: now,
		})
	}
	s.count(outcome)
	return botText
}

func (s *Session) count(outcome string) {
	if s.metrics != nil {
		s.metrics.Queries.WithLabelValues(outcome).Inc()
	}
}

// ClearMemory empties the window and forgets the last topic together.
func (s *Session) ClearMemory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window.Clear()
}

// History returns a read-only snapshot of the retained turns.
func (s *Session) History() []memory.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Snapshot()
}

// Transcript renders the retained history in "User/Bot" form.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Prompt()
}

// Export returns the archived exchanges for this session in chronological
// order, newest-limit bounded. It reads the archive directly and does not
// take the session mutex, so a slow archive cannot stall the chat loop.
func (s *Session) Export(ctx context.Context, limit int) ([]memory.ExchangeRecord, error) {
	if s.archive == nil {
		return nil, nil
	}
	return s.archive.RecentExchanges(ctx, s.id, limit)
}

// LastTopic exposes the remembered topic for diagnostics.
func (s *Session) LastTopic() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.LastTopic()
}
