// Package service — оркестрация дашборда: шлюз сессии, загрузка записей,
// создание зашифрованного профиля и проверка расшифровки.
package service

import (
	"errors"
	"time"

	"CreditScoreZ/internal/fhe"
	"CreditScoreZ/internal/ledger"
	"CreditScoreZ/internal/model"
	"CreditScoreZ/internal/state"
	"CreditScoreZ/internal/status"

	"go.uber.org/zap"
)

// DefaultLoadConcurrency — сколько записей загружается параллельно.
const DefaultLoadConcurrency = 4

var (
	// ErrNotConnected — кошелёк не подключён.
	ErrNotConnected = errors.New("wallet is not connected")
	// ErrFHENotReady — FHE-сервис ещё не инициализирован.
	ErrFHENotReady = errors.New("FHEVM is not initialized")
	// ErrInvalidForm — не заполнены поля формы создания.
	ErrInvalidForm = errors.New("invalid credit profile form")
	// ErrNoSelection — не выбрана запись для детального просмотра.
	ErrNoSelection = errors.New("no credit profile selected")
	// ErrUnknownRecord — записи с таким id нет в загруженном списке.
	ErrUnknownRecord = errors.New("unknown credit profile")
	// ErrNoAccount — у леджера нет подписанта, подключаться нечем.
	ErrNoAccount = errors.New("ledger has no signer account")
)

// Deps — зависимости дашборда.
type Deps struct {
	Reader ledger.Reader
	Writer ledger.Writer
	FHE    fhe.Service
	Store  *state.Store
	Status *status.Reporter
	Logger *zap.SugaredLogger
	// Now — источник времени; по умолчанию time.Now.
	Now func() time.Time
	// LoadConcurrency — ограничение параллельных getBusinessData.
	LoadConcurrency int
}

// Dashboard — одна сессия кошелька со всем состоянием приложения.
type Dashboard struct {
	reader    ledger.Reader
	writer    ledger.Writer
	fhe       fhe.Service
	store     *state.Store
	status    *status.Reporter
	logger    *zap.SugaredLogger
	now       func() time.Time
	loadLimit int
}

func NewDashboard(d Deps) *Dashboard {
	if d.Logger == nil {
		d.Logger = zap.NewNop().Sugar()
	}
	if d.Store == nil {
		d.Store = state.NewStore()
	}
	if d.Status == nil {
		d.Status = status.NewReporter(d.Logger)
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.LoadConcurrency <= 0 {
		d.LoadConcurrency = DefaultLoadConcurrency
	}
	return &Dashboard{
		reader:    d.Reader,
		writer:    d.Writer,
		fhe:       d.FHE,
		store:     d.Store,
		status:    d.Status,
		logger:    d.Logger,
		now:       d.Now,
		loadLimit: d.LoadConcurrency,
	}
}

// State возвращает снимок состояния.
func (d *Dashboard) State() state.State {
	return d.store.Snapshot()
}

// TxStatus возвращает текущий баннер транзакции.
func (d *Dashboard) TxStatus() model.TxStatus {
	return d.status.Current()
}

// gate проверяет шлюз сессии без баннера; для представлений только на чтение.
func (d *Dashboard) gate() (state.State, error) {
	s := d.store.Snapshot()
	if !s.WalletConnected {
		return s, ErrNotConnected
	}
	if !s.FHEInitialized {
		return s, ErrFHENotReady
	}
	return s, nil
}

// ready — gate для действий пользователя: "не подключён" показывается баннером.
func (d *Dashboard) ready() (state.State, error) {
	s, err := d.gate()
	if errors.Is(err, ErrNotConnected) {
		d.status.Error("Please connect wallet first")
	}
	return s, err
}

// contract — адрес контракта для FHE-вызовов.
func (d *Dashboard) contract(s state.State) string {
	if s.ContractAddress != "" {
		return s.ContractAddress
	}
	return d.reader.Address()
}
