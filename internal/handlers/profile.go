package handlers

import (
	"CreditScoreZ/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileHandler — дашборд, список и детальный просмотр кредитных профилей.
type ProfileHandler struct {
	Dashboard *service.Dashboard
	Logger    *zap.SugaredLogger
}

func NewProfileHandler(d *service.Dashboard, logger *zap.SugaredLogger) *ProfileHandler {
	return &ProfileHandler{Dashboard: d, Logger: logger}
}

// VerifyResponse — результат переключения расшифровки и обновлённый детальный вид.
type VerifyResponse struct {
	Result *service.VerifyResult `json:"result"`
	Detail service.DetailView    `json:"detail"`
}

func (h *ProfileHandler) Overview(w http.ResponseWriter, r *http.Request) {
	v, err := h.Dashboard.Dashboard()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *ProfileHandler) History(w http.ResponseWriter, r *http.Request) {
	v, err := h.Dashboard.History()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *ProfileHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Dashboard.TxStatus())
}

// List отдаёт список; параметр search, если передан, сохраняется как строка поиска.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query(); q.Has("search") {
		if err := h.Dashboard.SetSearch(q.Get("search")); err != nil {
			writeError(w, err)
			return
		}
	}
	v, err := h.Dashboard.Profiles()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *ProfileHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Dashboard.Refresh(r.Context()); err != nil {
		h.Logger.Warnw("Refresh failed", "error", err)
		writeError(w, err)
		return
	}
	h.List(w, r)
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form service.CreateForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	res, err := h.Dashboard.Create(r.Context(), form)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *ProfileHandler) Detail(w http.ResponseWriter, r *http.Request) {
	v, err := h.Dashboard.Select(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Verify выбирает запись и переключает её расшифровку.
func (h *ProfileHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Dashboard.Select(id); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.Dashboard.ToggleDecrypt(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	detail, err := h.Dashboard.Detail()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyResponse{Result: res, Detail: detail})
}

func (h *ProfileHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.Dashboard.CloseDetail()
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) OpenCreate(w http.ResponseWriter, r *http.Request) {
	if err := h.Dashboard.OpenCreate(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) CloseCreate(w http.ResponseWriter, r *http.Request) {
	h.Dashboard.CloseCreate()
	w.WriteHeader(http.StatusNoContent)
}
