package server

import (
	"errors"
	"net/http"
)

var errNoHostSession = errors.New("no valid host session")

const hostCookieName = "host_session"

// hostFromRequest reads the host_session cookie and checks the session store.
func hostFromRequest(r *http.Request, hosts HostStore) error {
	cookie, err := r.Cookie(hostCookieName)
	if err != nil || cookie.Value == "" {
		return errNoHostSession
	}

	ok, err := hosts.HostSessionExists(r.Context(), cookie.Value)
	if err != nil {
		return err
	}
	if !ok {
		return errNoHostSession
	}
	return nil
}

func hostAuthMiddleware(hosts HostStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := hostFromRequest(r, hosts); err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
