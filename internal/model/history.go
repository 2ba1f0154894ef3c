package model

import "time"

// HistoryType — вид операции в журнале сессии.
type HistoryType string

const (
	HistoryCreate  HistoryType = "create"
	HistoryDecrypt HistoryType = "decrypt"
)

// HistoryEntry — запись локального журнала операций (только в памяти, на время сессии).
type HistoryEntry struct {
	ID        string      `json:"id"`
	Type      HistoryType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Name      string      `json:"name,omitempty"` // только для create
	Score     uint32      `json:"score"`
}
