package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName — cookie сессии кошелька.
const CookieName = "auth_token"

// TokenTTL — время жизни токена сессии.
const TokenTTL = 24 * time.Hour

type ctxKey struct{}

// Claims — JWT-полезная нагрузка: адрес подключённого кошелька.
type Claims struct {
	jwt.RegisteredClaims
	Account string `json:"account"`
}

// SetLoginCookie выписывает JWT для account и кладёт его в cookie.
func SetLoginCookie(w http.ResponseWriter, account, secret string) error {
	if account == "" {
		return errors.New("empty account")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			Subject:   account,
		},
		Account: account,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearLoginCookie удаляет cookie сессии.
func ClearLoginCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// WithAuth кладёт в контекст адрес кошелька из валидного токена.
// Запросы без токена пропускаются анонимно; решение о доступе принимает хендлер.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(CookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			account, ok := parseToken(c.Value, secret)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKey{}, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseToken(raw, secret string) (string, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Account == "" {
		return "", false
	}
	return claims.Account, true
}

// GetAccountFromContext возвращает адрес кошелька, если запрос авторизован.
func GetAccountFromContext(ctx context.Context) (string, bool) {
	account, ok := ctx.Value(ctxKey{}).(string)
	return account, ok && account != ""
}
