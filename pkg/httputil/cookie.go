package httputil

import (
	"errors"
	"net/http"
	"strings"
)

const GameCookieName = "game_token"

// SetGameCookie stores the game token; secure should be true behind HTTPS.
func SetGameCookie(w http.ResponseWriter, token string, maxAge int, secure bool) {
	cookie := &http.Cookie{
		Name:     GameCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
	}

	// SameSite=None requires Secure=true, so use Lax for development
	if secure {
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

func ClearGameCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     GameCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GetTokenFromRequest prefers the Authorization header and falls back to the cookie.
func GetTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Support "Bearer <token>" format
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return token, nil
		}
		return authHeader, nil
	}

	cookie, err := r.Cookie(GameCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", errors.New("no game token found in header or cookie")
}
