package state

import "CreditScoreZ/internal/model"

// Action — событие, которое reducer применяет к State.
type Action interface{ isAction() }

type (
	// WalletConnected — кошелёк подключён.
	WalletConnected struct{ Account string }
	// WalletDisconnected — кошелёк отключён, сессия очищается.
	WalletDisconnected struct{}

	// FHEInitRequested переводит FHE в состояние инициализации, только если она ещё не идёт и не завершена.
	FHEInitRequested struct{}
	// FHEInitFinished — результат инициализации.
	FHEInitFinished struct{ OK bool }

	// ContractResolved — адрес контракта известен.
	ContractResolved struct{ Address string }

	// LoadStarted начинает новую загрузку и увеличивает LoadEpoch.
	LoadStarted struct{}
	// RecordsLoaded — ответ загрузки с эпохой, в которой она была запущена.
	RecordsLoaded struct {
		Epoch   uint64
		Records []model.Record
	}
	// LoadFailed — ошибка верхнего уровня при загрузке.
	LoadFailed struct{ Epoch uint64 }

	SearchChanged struct{ Term string }

	CreateOpened struct{}
	CreateClosed struct{}

	// RecordSelected открывает карточку записи.
	RecordSelected struct{ ID string }
	// DetailClosed закрывает карточку записи.
	DetailClosed struct{}

	// LocalDecrypted кладёт значение в локальный кэш для выбранной записи.
	LocalDecrypted struct {
		ID    string
		Value uint32
	}
	LocalDecryptCleared struct{}

	HistoryAppended struct{ Entry model.HistoryEntry }
)

func (WalletConnected) isAction()     {}
func (WalletDisconnected) isAction()  {}
func (FHEInitRequested) isAction()    {}
func (FHEInitFinished) isAction()     {}
func (ContractResolved) isAction()    {}
func (LoadStarted) isAction()         {}
func (RecordsLoaded) isAction()       {}
func (LoadFailed) isAction()          {}
func (SearchChanged) isAction()       {}
func (CreateOpened) isAction()        {}
func (CreateClosed) isAction()        {}
func (RecordSelected) isAction()      {}
func (DetailClosed) isAction()        {}
func (LocalDecrypted) isAction()      {}
func (LocalDecryptCleared) isAction() {}
func (HistoryAppended) isAction()     {}
