package memory

import (
	"fmt"
	"strings"
	"testing"
)

func TestWindowEvictsOldestAtCapacity(t *testing.T) {
	for _, capacity := range []int{1, 3, 10} {
		w := NewWindow(capacity)
		for i := 0; i <= capacity; i++ {
			w.Record(Turn{UserText: fmt.Sprintf("q%d", i), BotText: "a"})
		}
		if w.Len() != capacity {
			t.Fatalf("capacity %d: Len() = %d, want %d", capacity, w.Len(), capacity)
		}
		turns := w.Snapshot()
		if turns[0].UserText != "q1" {
			t.Fatalf("capacity %d: oldest turn = %q, want q1", capacity, turns[0].UserText)
		}
		if turns[len(turns)-1].UserText != fmt.Sprintf("q%d", capacity) {
			t.Fatalf("capacity %d: newest turn = %q", capacity, turns[len(turns)-1].UserText)
		}
	}
}

func TestWindowPromptFormat(t *testing.T) {
	w := NewWindow(10)
	w.Record(Turn{UserText: "Who is Marie Curie?", BotText: "**Marie Curie** was a physicist."})
	w.Record(Turn{UserText: "where was she born?", BotText: "Warsaw."})

	got := w.Prompt()
	want := "User: Who is Marie Curie?\nBot: **Marie Curie** was a physicist.\nUser: where was she born?\nBot: Warsaw."
	if got != want {
		t.Fatalf("Prompt() = %q, want %q", got, want)
	}
}

func TestWindowClearEmptiesTurnsAndTopic(t *testing.T) {
	w := NewWindow(10)
	w.Record(Turn{UserText: "q", BotText: "a"})
	w.SetLastTopic("Marie Curie")

	w.Clear()
	if w.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", w.Len())
	}
	if topic, ok := w.LastTopic(); ok {
		t.Fatalf("LastTopic() = %q after Clear, want none", topic)
	}
	if w.Prompt() != "" {
		t.Fatalf("Prompt() = %q after Clear, want empty", w.Prompt())
	}
}

func TestWindowLastTopicTrimsWhitespace(t *testing.T) {
	w := NewWindow(10)
	w.SetLastTopic("  Sundar Pichai ")
	topic, ok := w.LastTopic()
	if !ok || topic != "Sundar Pichai" {
		t.Fatalf("LastTopic() = %q, %v", topic, ok)
	}

	w.SetLastTopic(strings.Repeat(" ", 3))
	if _, ok := w.LastTopic(); ok {
		t.Fatalf("whitespace-only topic should clear the slot")
	}
}

func TestWindowSnapshotIsACopy(t *testing.T) {
	w := NewWindow(10)
	w.Record(Turn{UserText: "q1", BotText: "a1"})
	snap := w.Snapshot()
	snap[0].UserText = "mutated"

	if w.Snapshot()[0].UserText != "q1" {
		t.Fatalf("Snapshot must not alias internal storage")
	}
}
