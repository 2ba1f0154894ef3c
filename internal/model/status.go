package model

// Phase — фаза статуса транзакции.
type Phase string

const (
	PhasePending Phase = "pending"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// TxStatus — глобальный статус последней асинхронной операции.
type TxStatus struct {
	Visible bool   `json:"visible"`
	Phase   Phase  `json:"phase"`
	Message string `json:"message"`
}

// HiddenStatus — состояние по умолчанию: баннер скрыт.
var HiddenStatus = TxStatus{Visible: false, Phase: PhasePending, Message: ""}
