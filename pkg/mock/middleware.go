package mock

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// authGate builds middleware comparing the named header's value against the
// raw token or its "Bearer "-prefixed form, case-sensitively. On mismatch the
// request short-circuits with 401 and a fixed JSON body.
func authGate(token, header string) func(http.Handler) http.Handler {
	bearer := "Bearer " + token
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(header)
			if got != token && got != bearer {
				log.Debug().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("header", header).
					Msg("request rejected by auth gate")
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
