package main

import (
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookieName = "admin_session"
	csrfCookieName    = "csrf"
	csrfFieldName     = "csrf_token"
	sessionDuration   = 7 * 24 * time.Hour
)

// errNoSessionSecret names the missing variable, never its value.
var errNoSessionSecret = errors.New("missing env: SESSION_SECRET")

var secureCookies bool

func initAuth() {
	secureCookies = os.Getenv("SECURE_COOKIES") == "true"
}

// signingSecret reads the secret at call time so it can be rotated without
// restarting the process.
func signingSecret() ([]byte, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, errNoSessionSecret
	}
	return []byte(secret), nil
}

type sessionClaims struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

// tokenSigner issues and verifies signed admin session tokens. Sessions are
// stateless: there is no server-side record, a token is valid until its
// expiry or until the client discards it. The clock is a field so expiry
// behavior can be tested without sleeping.
type tokenSigner struct {
	now func() time.Time
}

func newTokenSigner() *tokenSigner {
	return &tokenSigner{now: time.Now}
}

func (s *tokenSigner) createSession(id, login string) (string, error) {
	secret, err := signingSecret()
	if err != nil {
		return "", err
	}

	now := s.now()
	claims := sessionClaims{
		Login: login,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionDuration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return token, nil
}

// verifySession returns nil for anything that is not a currently valid
// session: bad signature, missing claims, expired, malformed. Callers never
// learn which check failed.
func (s *tokenSigner) verifySession(token string) *AdminSession {
	secret, err := signingSecret()
	if err != nil {
		return nil
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	var claims sessionClaims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	if claims.Subject == "" || claims.Login == "" || claims.ExpiresAt == nil {
		return nil
	}

	return &AdminSession{
		SubjectID: claims.Subject,
		Login:     claims.Login,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}
}

// extractSessionCookie pulls the session token out of a raw Cookie header.
// Returns "" if the header is empty or the cookie is absent.
func extractSessionCookie(header string) string {
	if header == "" {
		return ""
	}
	for _, part := range strings.Split(header, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || name != sessionCookieName || value == "" {
			continue
		}
		decoded, err := url.QueryUnescape(value)
		if err != nil {
			return ""
		}
		return decoded
	}
	return ""
}

// sessionCookieHeader formats the Set-Cookie value for a session token.
// Secure is appended only when the deployment sets SECURE_COOKIES=true.
func sessionCookieHeader(token string, maxAge int) string {
	header := fmt.Sprintf("%s=%s; Path=/; HttpOnly; SameSite=Lax; Max-Age=%d",
		sessionCookieName, url.QueryEscape(token), maxAge)
	if secureCookies {
		header += "; Secure"
	}
	return header
}

func getAdminUser(db *sql.DB, login string) (*AdminUser, error) {
	row := db.QueryRow(`
		SELECT id, login, password_hash
		FROM admin_users
		WHERE login = ?`, login)

	var user AdminUser
	err := row.Scan(&user.ID, &user.Login, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning admin user: %w", err)
	}
	return &user, nil
}

func mustHashPassword(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CSRF protection using double-submit cookie pattern

func generateCSRFToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func setCSRFCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionDuration.Seconds()),
	})
}

func getCSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func validateCSRF(r *http.Request) bool {
	cookieToken := getCSRFToken(r)
	formToken := r.FormValue(csrfFieldName)
	if cookieToken == "" || formToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) == 1
}

func parseFormWithCSRF(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return false
	}
	if !validateCSRF(r) {
		http.Error(w, "Invalid CSRF token", http.StatusForbidden)
		return false
	}
	return true
}

// ensureCSRFToken returns the existing token or creates a new one
func ensureCSRFToken(w http.ResponseWriter, r *http.Request) string {
	if token := getCSRFToken(r); token != "" {
		return token
	}
	token, err := generateCSRFToken()
	if err != nil {
		return ""
	}
	setCSRFCookie(w, token)
	return token
}

// sessionFromRequest verifies the session cookie on a request. An invalid
// token and a missing one look the same to callers.
func (s *Site) sessionFromRequest(r *http.Request) *AdminSession {
	token := extractSessionCookie(r.Header.Get("Cookie"))
	if token == "" {
		return nil
	}
	return s.signer.verifySession(token)
}

// requireAdmin protects routes that need an authenticated admin
func (s *Site) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.sessionFromRequest(r) == nil {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
