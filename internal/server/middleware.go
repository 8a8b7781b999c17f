package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
)

// basicAuthMiddleware returns a middleware enforcing HTTP Basic Auth.
// Credentials are compared as SHA-256 digests in constant time so neither
// length nor content leaks through timing.
func basicAuthMiddleware(username, password string) func(http.Handler) http.Handler {
	wantUser := sha256.Sum256([]byte(username))
	wantPass := sha256.Sum256([]byte(password))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if ok {
				gotUser := sha256.Sum256([]byte(user))
				gotPass := sha256.Sum256([]byte(pass))
				userMatch := subtle.ConstantTimeCompare(wantUser[:], gotUser[:]) == 1
				passMatch := subtle.ConstantTimeCompare(wantPass[:], gotPass[:]) == 1
				if userMatch && passMatch {
					next.ServeHTTP(w, r)
					return
				}
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="schoolcal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}
