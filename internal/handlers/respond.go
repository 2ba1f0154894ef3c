package handlers

import (
	"CreditScoreZ/internal/ledger"
	"CreditScoreZ/internal/middleware"
	"CreditScoreZ/internal/service"
	"encoding/json"
	"errors"
	"net/http"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// statusCode сопоставляет ошибку сервиса HTTP-коду.
func statusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrNotConnected),
		errors.Is(err, service.ErrFHENotReady),
		errors.Is(err, service.ErrNoAccount):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidForm),
		errors.Is(err, service.ErrNoSelection):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnknownRecord), ledger.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusCode(err))
}

// requireAccount пропускает только запросы с cookie сессии кошелька.
func requireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetAccountFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
