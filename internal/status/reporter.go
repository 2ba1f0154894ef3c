// Package status реализует баннер статуса транзакций: одно текущее значение
// и автоматическое скрытие через фиксированную задержку.
package status

import (
	"sync"
	"time"

	"CreditScoreZ/internal/model"

	"go.uber.org/zap"
)

const (
	// SuccessDelay — через сколько скрывается баннер успеха.
	SuccessDelay = 2 * time.Second
	// ErrorDelay — через сколько скрывается баннер ошибки.
	ErrorDelay = 3 * time.Second
)

// Reporter хранит текущий статус. Каждый новый статус сразу заменяет предыдущий;
// таймер скрытия привязан к токену, и устаревший таймер ничего не сбрасывает.
type Reporter struct {
	mu      sync.Mutex
	current model.TxStatus
	token   uint64
	timer   *time.Timer

	successDelay time.Duration
	errorDelay   time.Duration
	logger       *zap.SugaredLogger
}

// Option настраивает Reporter.
type Option func(*Reporter)

// WithDelays переопределяет задержки скрытия (используется в тестах).
func WithDelays(success, failure time.Duration) Option {
	return func(r *Reporter) {
		r.successDelay = success
		r.errorDelay = failure
	}
}

// NewReporter создаёт Reporter в скрытом состоянии.
func NewReporter(logger *zap.SugaredLogger, opts ...Option) *Reporter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	r := &Reporter{
		current:      model.HiddenStatus,
		successDelay: SuccessDelay,
		errorDelay:   ErrorDelay,
		logger:       logger,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Pending показывает статус ожидания. Сам по себе не скрывается.
func (r *Reporter) Pending(msg string) {
	r.push(model.PhasePending, msg, 0)
}

// Success показывает успех и скрывает его через successDelay.
func (r *Reporter) Success(msg string) {
	r.push(model.PhaseSuccess, msg, r.successDelay)
}

// Error показывает ошибку и скрывает её через errorDelay.
func (r *Reporter) Error(msg string) {
	r.logger.Warnw("Status error", "message", msg)
	r.push(model.PhaseError, msg, r.errorDelay)
}

// Current возвращает текущий статус.
func (r *Reporter) Current() model.TxStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Stop отменяет ожидающий таймер и скрывает баннер.
func (r *Reporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.current = model.HiddenStatus
}

func (r *Reporter) push(phase model.Phase, msg string, hideAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.token++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.current = model.TxStatus{Visible: true, Phase: phase, Message: msg}
	if hideAfter <= 0 {
		return
	}
	tok := r.token
	r.timer = time.AfterFunc(hideAfter, func() { r.hide(tok) })
}

// hide скрывает баннер, только если с момента постановки таймера статус не менялся.
func (r *Reporter) hide(tok uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.token != tok {
		return
	}
	r.current = model.HiddenStatus
	r.timer = nil
}
