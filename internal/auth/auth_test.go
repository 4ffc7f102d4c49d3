package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aesecb/internal/models"
)

var secret = []byte("test-secret")

func TestSignVerify(t *testing.T) {
	tok, jti, exp, err := Sign(secret, time.Hour, "user-1", []string{"User", "Administrator"})
	if err != nil {
		t.Fatal(err)
	}
	if jti == "" || time.Until(exp) <= 0 {
		t.Fatalf("jti %q exp %v", jti, exp)
	}
	c, err := Verify(secret, tok)
	if err != nil {
		t.Fatal(err)
	}
	if c.Subject != "user-1" || c.JWTID != jti || !c.HasRole("Administrator") || c.HasRole("Root") {
		t.Fatalf("unexpected claims %+v", c)
	}
}

func TestVerifyRejects(t *testing.T) {
	tok, _, _, err := Sign(secret, time.Hour, "u", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Verify([]byte("other"), tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: %v", err)
	}
	expired, _, _, _ := Sign(secret, -time.Minute, "u", nil)
	if _, err := Verify(secret, expired); err == nil {
		t.Fatal("expired token accepted")
	}
	if _, _, _, err := Sign(nil, time.Hour, "u", nil); err == nil {
		t.Fatal("empty secret accepted")
	}
}

func TestPassword(t *testing.T) {
	h, err := HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if CheckPassword(h, "correct horse") != nil || CheckPassword(h, "wrong") == nil {
		t.Fatal("bcrypt round trip failed")
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	tok, jti, exp, err := Sign(secret, time.Hour, "user-1", []string{"User"})
	if err != nil {
		t.Fatal(err)
	}
	revoked := time.Now()
	sessions := map[string]models.Session{jti: {JTI: jti, UserID: "user-1", ExpiresAt: exp}}
	lookup := func(id string) (models.Session, error) {
		s, ok := sessions[id]
		if !ok {
			return s, errors.New("not found")
		}
		return s, nil
	}

	var seen Claims
	h := JWTAuth(secret, lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	do := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do(""); code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", code)
	}
	if code := do("Bearer " + tok); code != http.StatusOK || seen.Subject != "user-1" {
		t.Fatalf("valid token: %d %+v", code, seen)
	}
	s := sessions[jti]
	s.RevokedAt = &revoked
	sessions[jti] = s
	if code := do("Bearer " + tok); code != http.StatusUnauthorized {
		t.Fatalf("revoked session: %d", code)
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole("Administrator")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithClaims(req.Context(), Claims{Roles: []string{"User"}})))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("code %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithClaims(req.Context(), Claims{Roles: []string{"Administrator"}})))
	if rec.Code != http.StatusOK {
		t.Fatalf("code %d", rec.Code)
	}
}
