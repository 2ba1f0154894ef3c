package handlers

import (
	"CreditScoreZ/internal/config"
	"CreditScoreZ/internal/middleware"
	"CreditScoreZ/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// WalletHandler — подключение кошелька и состояние шлюза.
type WalletHandler struct {
	Dashboard *service.Dashboard
	Logger    *zap.SugaredLogger
	Config    *config.Config
}

func NewWalletHandler(d *service.Dashboard, logger *zap.SugaredLogger, cfg *config.Config) *WalletHandler {
	return &WalletHandler{Dashboard: d, Logger: logger, Config: cfg}
}

// Connect подключает кошелёк подписанта и выдаёт cookie сессии.
// При ошибке инициализации FHE cookie всё равно выдаётся: кошелёк подключён, шлюз закрыт.
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	err := h.Dashboard.Connect(r.Context())
	sess := h.Dashboard.Session()
	if sess.Connected {
		if cerr := middleware.SetLoginCookie(w, sess.Account, h.Config.AuthSecret); cerr != nil {
			h.Logger.Errorw("Connect: failed to set cookie", "error", cerr)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	if err != nil {
		h.Logger.Warnw("Connect failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	h.Dashboard.Disconnect()
	middleware.ClearLoginCookie(w)
	writeJSON(w, http.StatusOK, h.Dashboard.Session())
}

func (h *WalletHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Dashboard.Session())
}
