package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	authmw "github.com/yomogi-health/yomogi/internal/auth/middleware"
	"github.com/yomogi-health/yomogi/internal/config"
)

// GuestLoginHandler lets a browser run the questionnaire without an account.
// The guest identity is pinned to a cookie so repeat visits keep their
// history.
func GuestLoginHandler(a *authmw.AuthService, db *sql.DB, cfg config.Config) http.HandlerFunc {
	type out struct {
		AccessToken string `json:"access_token"`
		Name        string `json:"name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !cfg.EnableGuestAuth {
			http.Error(w, "guest auth disabled", http.StatusForbidden)
			return
		}

		// reuse an existing guest from the cookie
		if c, err := r.Cookie("yomogi_guest_id"); err == nil && strings.HasPrefix(c.Value, "guest|") {
			var name string
			if err := db.QueryRow(`SELECT name FROM users WHERE id=$1`, c.Value).Scan(&name); err == nil {
				tok, _ := a.IssueJWT(c.Value, name)
				setGuestCookie(w, c.Value)
				_ = json.NewEncoder(w).Encode(out{AccessToken: tok, Name: name})
				return
			}
		}

		sfx := strconv.FormatInt(time.Now().UnixNano(), 36)
		userID := "guest|" + sfx
		name := "guest-" + sfx[len(sfx)-6:]

		_, _ = db.Exec(`INSERT INTO users (id, email, name, password_hash, created_at)
			VALUES ($1,'',$2,'',$3)`, userID, name, time.Now().Unix())

		tok, err := a.IssueJWT(userID, name)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		setGuestCookie(w, userID)
		_ = json.NewEncoder(w).Encode(out{AccessToken: tok, Name: name})
	}
}

func setGuestCookie(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "yomogi_guest_id",
		Value:    userID,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}
