// Package state хранит состояние дашборда: единый объект состояния и чистый reducer.
package state

import "CreditScoreZ/internal/model"

// HistoryDisplayLimit — сколько последних операций показывать.
const HistoryDisplayLimit = 5

// State — снимок состояния приложения.
type State struct {
	WalletConnected bool
	Account         string
	ContractAddress string

	FHEInitialized  bool
	FHEInitializing bool

	// Loading — первая загрузка ещё не завершилась.
	Loading    bool
	LoadedOnce bool
	Refreshing bool
	// LoadEpoch растёт с каждым запуском загрузки; AppliedEpoch — эпоха последнего применённого ответа.
	LoadEpoch    uint64
	AppliedEpoch uint64

	Records []model.Record
	Search  string

	ShowCreate bool

	SelectedID     string
	LocalDecrypted *uint32

	History []model.HistoryEntry
}

// Ready — открыт ли Session Gate.
func (s State) Ready() bool {
	return s.WalletConnected && s.FHEInitialized
}

// Selected возвращает выбранную запись из текущего списка.
func (s State) Selected() (model.Record, bool) {
	if s.SelectedID == "" {
		return model.Record{}, false
	}
	return s.Record(s.SelectedID)
}

// Record ищет запись по id.
func (s State) Record(id string) (model.Record, bool) {
	for _, r := range s.Records {
		if r.ID == id {
			return r, true
		}
	}
	return model.Record{}, false
}

// RecentHistory возвращает не более HistoryDisplayLimit последних записей журнала.
func (s State) RecentHistory() []model.HistoryEntry {
	if len(s.History) <= HistoryDisplayLimit {
		return s.History
	}
	return s.History[len(s.History)-HistoryDisplayLimit:]
}

// clone копирует срезы и указатели, чтобы снимок не делил память со Store.
func (s State) clone() State {
	out := s
	if s.Records != nil {
		out.Records = make([]model.Record, len(s.Records))
		copy(out.Records, s.Records)
	}
	if s.History != nil {
		out.History = make([]model.HistoryEntry, len(s.History))
		copy(out.History, s.History)
	}
	if s.LocalDecrypted != nil {
		v := *s.LocalDecrypted
		out.LocalDecrypted = &v
	}
	return out
}
