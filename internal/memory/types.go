package memory

import (
	"context"
	"time"
)

// Turn is one completed user/bot exchange. Turns are append-only: once
// recorded they are never mutated.
type Turn struct {
	ID        string    `json:"id"`
	UserText  string    `json:"user_text"`
	BotText   string    `json:"bot_text"`
	CreatedAt time.Time `json:"created_at"`
}

// ExchangeRecord is a turn as persisted in the transcript archive, keyed
// by the owning session.
type ExchangeRecord struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	UserText  string    `json:"user_text"`
	BotText   string    `json:"bot_text"`
	CreatedAt time.Time `json:"created_at"`
}

// Archive persists the conversation transcript append-only for export.
// It is a write-behind log, not session state: the in-process Window is
// authoritative for follow-up resolution.
type Archive interface {
	SaveExchange(ctx context.Context, record ExchangeRecord) error
	RecentExchanges(ctx context.Context, sessionID string, limit int) ([]ExchangeRecord, error)
	Close() error
}
