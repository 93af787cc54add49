package memory

import "strings"

// DefaultCapacity bounds the conversation window when no explicit size is
// configured.
const DefaultCapacity = 10

// Window is the short-term conversational memory: a bounded FIFO log of
// turns plus the most recently discussed topic. It is owned by a single
// resolution cycle at a time; the owning session serializes access.
type Window struct {
	capacity  int
	turns     []Turn
	lastTopic string
}

func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Window{capacity: capacity}
}

// Record appends a turn, evicting the oldest once capacity is exceeded.
func (w *Window) Record(t Turn) {
	w.turns = append(w.turns, t)
	if len(w.turns) > w.capacity {
		w.turns = w.turns[len(w.turns)-w.capacity:]
	}
}

// Snapshot returns the retained turns oldest-first. The returned slice is
// a copy; callers may hold it across later mutations.
func (w *Window) Snapshot() []Turn {
	out := make([]Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

// Prompt renders the retained history in "User: ...\nBot: ..." form,
// oldest turn first.
func (w *Window) Prompt() string {
	if len(w.turns) == 0 {
		return ""
	}
	var b strings.Builder
	for i, t := range w.turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("User: ")
		b.WriteString(t.UserText)
		b.WriteString("\nBot: ")
		b.WriteString(t.BotText)
	}
	return b.String()
}

// LastTopic returns the most recently resolved topic, if any.
func (w *Window) LastTopic() (string, bool) {
	if w.lastTopic == "" {
		return "", false
	}
	return w.lastTopic, true
}

func (w *Window) SetLastTopic(topic string) {
	w.lastTopic = strings.TrimSpace(topic)
}

// Len reports the number of retained turns.
func (w *Window) Len() int { return len(w.turns) }

// Clear empties the turn log and forgets the last topic together.
func (w *Window) Clear() {
	w.turns = nil
	w.lastTopic = ""
}
