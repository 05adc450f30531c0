package server

import (
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// HostLoginRequest is the request body for POST /api/host/login.
type HostLoginRequest struct {
	Password string `json:"password"`
}

// HostMeResponse is the response for GET /api/host/me.
type HostMeResponse struct {
	Authenticated bool `json:"authenticated"`
}

func handleHostLogin(passwordHash []byte, hosts HostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HostLoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Password == "" {
			writeError(w, http.StatusBadRequest, "password is required")
			return
		}

		if err := bcrypt.CompareHashAndPassword(passwordHash, []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		sessionID, err := hosts.CreateHostSession(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     hostCookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(7 * 24 * time.Hour / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, HostMeResponse{Authenticated: true})
	}
}

func handleHostLogout(hosts HostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(hostCookieName); err == nil && cookie.Value != "" {
			if err := hosts.DeleteHostSession(r.Context(), cookie.Value); err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     hostCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, HostMeResponse{Authenticated: false})
	}
}

func handleHostMe(hosts HostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := hostFromRequest(r, hosts); err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeJSON(w, http.StatusOK, HostMeResponse{Authenticated: true})
	}
}
