package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingToken = errors.New("missing bearer token")

// RequireBearer は HS256 で署名された Bearer トークンを検証するミドルウェアを返します。
// secret が空なら認証を行いません。
func RequireBearer(secret string) func(http.Handler) http.Handler {
	if secret == "" {
		return func(next http.Handler) http.Handler { return next }
	}
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				httpError(w, http.StatusUnauthorized, ErrMissingToken)
				return
			}
			_, err := parser.Parse(raw, func(*jwt.Token) (any, error) { return key, nil })
			if err != nil {
				slog.WarnContext(r.Context(), "rejected token", "remote", r.RemoteAddr, "err", err)
				httpError(w, http.StatusUnauthorized, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
