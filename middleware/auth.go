package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sportsfest/sportsday-live/services"
)

type contextKey string

const actorContextKey contextKey = "actor"

// Authenticate разбирает Bearer-токен, если он есть, и кладёт Actor в
// контекст запроса. Запрос без токена проходит дальше с пустым Actor —
// чтение открыто всем, способность к мутациям проверяется отдельно.
func Authenticate(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header {
				http.Error(w, "Invalid Authorization header", http.StatusUnauthorized)
				return
			}
			actor, err := auth.ActorFromToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), actorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireEditor пропускает только субъектов со способностью CanEdit.
func RequireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromContext(r.Context())
		if !actor.CanEdit {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActorFromContext возвращает Actor запроса; для анонимного запроса —
// пустой Actor без способностей.
func ActorFromContext(ctx context.Context) services.Actor {
	actor, _ := ctx.Value(actorContextKey).(services.Actor)
	return actor
}
