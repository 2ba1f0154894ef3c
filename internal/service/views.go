package service

import (
	"fmt"

	"CreditScoreZ/internal/analysis"
	"CreditScoreZ/internal/model"
	"CreditScoreZ/internal/state"
)

// SessionView — состояние шлюза для экрана подключения.
type SessionView struct {
	Connected       bool   `json:"connected"`
	Account         string `json:"account,omitempty"`
	ContractAddress string `json:"contract_address,omitempty"`
	FHEInitialized  bool   `json:"fhe_initialized"`
	FHEInitializing bool   `json:"fhe_initializing"`
	Ready           bool   `json:"ready"`
	Gate            string `json:"gate"`
}

// FlowStep — шаг схемы FHE-процесса.
type FlowStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Flow — схема, которую показывает дашборд.
var Flow = []FlowStep{
	{Title: "Data Encryption", Description: "Credit data encrypted with Zama FHE"},
	{Title: "Homomorphic Computation", Description: "Encrypted calculations without decryption"},
	{Title: "Selective Disclosure", Description: "Share scores without revealing raw data"},
	{Title: "Verifiable Proof", Description: "On-chain verification with zero-knowledge"},
}

// DashboardView — карточки сводки, последние действия и баннер.
type DashboardView struct {
	Stats         analysis.Stats       `json:"stats"`
	RecentHistory []model.HistoryEntry `json:"recent_history"`
	Status        model.TxStatus       `json:"status"`
	Loading       bool                 `json:"loading"`
	Refreshing    bool                 `json:"refreshing"`
	ShowCreate    bool                 `json:"show_create"`
	Flow          []FlowStep           `json:"flow"`
}

// ProfilesView — список записей после фильтра поиска.
type ProfilesView struct {
	Search     string         `json:"search"`
	Refreshing bool           `json:"refreshing"`
	Records    []model.Record `json:"records"`
}

// DetailView — детальный просмотр выбранной записи.
type DetailView struct {
	Record         model.Record       `json:"record"`
	ShortCreator   string             `json:"short_creator"`
	DisplayValue   string             `json:"display_value"`
	LocalDecrypted *uint32            `json:"local_decrypted,omitempty"`
	Analysis       *analysis.Analysis `json:"analysis,omitempty"`
}

// Session доступна всегда, в том числе при закрытом шлюзе.
func (d *Dashboard) Session() SessionView {
	s := d.store.Snapshot()
	return SessionView{
		Connected:       s.WalletConnected,
		Account:         s.Account,
		ContractAddress: s.ContractAddress,
		FHEInitialized:  s.FHEInitialized,
		FHEInitializing: s.FHEInitializing,
		Ready:           s.Ready(),
		Gate:            gateText(s),
	}
}

func gateText(s state.State) string {
	switch {
	case !s.WalletConnected:
		return "Connect Your Wallet to Continue"
	case s.FHEInitializing:
		return "Initializing FHEVM"
	case !s.FHEInitialized:
		return "FHEVM not initialized"
	case s.Loading:
		return "Loading encrypted credit system..."
	default:
		return "ready"
	}
}

func (d *Dashboard) Dashboard() (DashboardView, error) {
	s, err := d.gate()
	if err != nil {
		return DashboardView{}, err
	}
	history := s.RecentHistory()
	if history == nil {
		history = []model.HistoryEntry{}
	}
	return DashboardView{
		Stats:         analysis.Summarize(s.Records),
		RecentHistory: history,
		Status:        d.status.Current(),
		Loading:       s.Loading,
		Refreshing:    s.Refreshing,
		ShowCreate:    s.ShowCreate,
		Flow:          Flow,
	}, nil
}

// SetSearch запоминает строку поиска.
func (d *Dashboard) SetSearch(term string) error {
	if _, err := d.gate(); err != nil {
		return err
	}
	d.store.Dispatch(state.SearchChanged{Term: term})
	return nil
}

// Profiles возвращает записи, отфильтрованные по сохранённой строке поиска.
func (d *Dashboard) Profiles() (ProfilesView, error) {
	s, err := d.gate()
	if err != nil {
		return ProfilesView{}, err
	}
	return ProfilesView{
		Search:     s.Search,
		Refreshing: s.Refreshing,
		Records:    analysis.Filter(s.Records, s.Search),
	}, nil
}

// History — последние state.HistoryDisplayLimit действий сессии.
func (d *Dashboard) History() ([]model.HistoryEntry, error) {
	s, err := d.gate()
	if err != nil {
		return nil, err
	}
	history := s.RecentHistory()
	if history == nil {
		return []model.HistoryEntry{}, nil
	}
	return history, nil
}

// Select открывает детальный просмотр записи.
func (d *Dashboard) Select(id string) (DetailView, error) {
	s, err := d.gate()
	if err != nil {
		return DetailView{}, err
	}
	if _, ok := s.Record(id); !ok {
		return DetailView{}, fmt.Errorf("%w: %s", ErrUnknownRecord, id)
	}
	_, next := d.store.Dispatch(state.RecordSelected{ID: id})
	return detail(next)
}

// Detail возвращает вид выбранной записи.
func (d *Dashboard) Detail() (DetailView, error) {
	s, err := d.gate()
	if err != nil {
		return DetailView{}, err
	}
	return detail(s)
}

// CloseDetail закрывает просмотр и сбрасывает локальное значение.
func (d *Dashboard) CloseDetail() {
	d.store.Dispatch(state.DetailClosed{})
}

func detail(s state.State) (DetailView, error) {
	if s.SelectedID == "" {
		return DetailView{}, ErrNoSelection
	}
	r, ok := s.Selected()
	if !ok {
		return DetailView{}, fmt.Errorf("%w: %s", ErrUnknownRecord, s.SelectedID)
	}
	v := DetailView{
		Record:         r,
		ShortCreator:   r.ShortCreator(),
		DisplayValue:   displayValue(r, s.LocalDecrypted),
		LocalDecrypted: s.LocalDecrypted,
	}
	if r.IsVerified || s.LocalDecrypted != nil {
		a := analysis.AnalyzeRecord(r, s.LocalDecrypted)
		v.Analysis = &a
	}
	return v, nil
}

func displayValue(r model.Record, local *uint32) string {
	switch {
	case r.IsVerified && r.DecryptedValue != 0:
		return fmt.Sprintf("%d (On-chain Verified)", r.DecryptedValue)
	case local != nil:
		return fmt.Sprintf("%d (Locally Decrypted)", *local)
	default:
		return "FHE Encrypted Integer"
	}
}
