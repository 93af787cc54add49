package memory

import (
	"context"
	"testing"
)

func TestInMemoryArchiveSaveAndRecent(t *testing.T) {
	a := NewInMemoryArchive()
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		if err := a.SaveExchange(ctx, ExchangeRecord{SessionID: "s1", UserText: text, BotText: "ok"}); err != nil {
			t.Fatalf("SaveExchange() error = %v", err)
		}
	}

	got, err := a.RecentExchanges(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("RecentExchanges() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].UserText != "two" || got[1].UserText != "three" {
		t.Fatalf("unexpected order: %q, %q", got[0].UserText, got[1].UserText)
	}
	if got[0].ID == "" || got[0].CreatedAt.IsZero() {
		t.Fatalf("record should get an ID and timestamp on save")
	}
}

func TestInMemoryArchiveUnknownSession(t *testing.T) {
	a := NewInMemoryArchive()
	got, err := a.RecentExchanges(context.Background(), "missing", 5)
	if err != nil {
		t.Fatalf("RecentExchanges() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}
