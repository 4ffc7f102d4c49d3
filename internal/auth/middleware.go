package auth

import (
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"aesecb/internal/models"
)

// SessionLookup returns the session row for a token id.
type SessionLookup func(jti string) (models.Session, error)

// GormSessions looks sessions up in the sessions table.
func GormSessions(db *gorm.DB) SessionLookup {
	return func(jti string) (models.Session, error) {
		var sess models.Session
		err := db.First(&sess, "jti = ?", jti).Error
		return sess, err
	}
}

func JWTAuth(secret []byte, sessions SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			claims, err := Verify(secret, strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			if claims.JWTID == "" {
				http.Error(w, "session not found", http.StatusUnauthorized)
				return
			}
			sess, err := sessions(claims.JWTID)
			if err != nil {
				http.Error(w, "session not found", http.StatusUnauthorized)
				return
			}
			if sess.RevokedAt != nil || time.Now().After(sess.ExpiresAt) {
				http.Error(w, "session expired/revoked", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !FromContext(r.Context()).HasRole(role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
