package model

import "time"

// JournalEventType - тип записи в журнале игры
type JournalEventType string

const (
	JournalConnect         JournalEventType = "connect"
	JournalDisconnect      JournalEventType = "disconnect"
	JournalSpin            JournalEventType = "spin"
	JournalWinningsClaimed JournalEventType = "winnings_claimed"
	JournalTokensClaimed   JournalEventType = "tokens_claimed"
	JournalPointsConverted JournalEventType = "points_converted"
)

// JournalEvent - запись аудита игровой сессии
type JournalEvent struct {
	SessionID string
	Address   string
	ChainID   uint64
	Type      JournalEventType
	Points    int64
	Details   string
	TxHash    string
	CreatedAt time.Time
}
