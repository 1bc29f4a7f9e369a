package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	authmw "github.com/yomogi-health/yomogi/internal/auth/middleware"
)

type tokenOut struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
}

// SignupHandler registers a local account and logs it in. Passwords are
// bcrypt-hashed; intended for self-hosted deployments without an IdP.
func SignupHandler(a *authmw.AuthService, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Name     string `json:"name"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			http.Error(w, "valid email required", http.StatusBadRequest)
			return
		}
		if len(req.Password) < 6 {
			http.Error(w, "password must be at least 6 characters", http.StatusBadRequest)
			return
		}

		var exists int
		err := db.QueryRow(`SELECT 1 FROM users WHERE email=$1`, req.Email).Scan(&exists)
		if err == nil {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "lookup user", http.StatusInternalServerError)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			http.Error(w, "hash password", http.StatusInternalServerError)
			return
		}
		if _, err := db.Exec(`INSERT INTO users (id, email, name, password_hash, created_at)
			VALUES ($1,$2,$3,$4,$5)`,
			req.Email, req.Email, req.Name, string(hash), time.Now().Unix()); err != nil {
			http.Error(w, "create user", http.StatusInternalServerError)
			return
		}

		tok, err := a.IssueJWT(req.Email, req.Name)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(tokenOut{AccessToken: tok, Email: req.Email, Name: req.Name})
	}
}

// LoginHandler checks credentials against the users table.
func LoginHandler(a *authmw.AuthService, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))

		var name, hash string
		err := db.QueryRow(`SELECT name, password_hash FROM users WHERE email=$1`, req.Email).Scan(&name, &hash)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, "lookup user", http.StatusInternalServerError)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		tok, err := a.IssueJWT(req.Email, name)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(tokenOut{AccessToken: tok, Email: req.Email, Name: name})
	}
}
