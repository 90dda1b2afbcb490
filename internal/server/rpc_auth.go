package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/colsched/colsched/pkg/logger"
)

// requireToken rejects requests whose bearer token does not match secret
// with a JSON-RPC error body and status 401. An empty secret rejects
// every request.
func requireToken(secret string, l logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !validToken(secret, r.Header.Get("Authorization")) {
			l.Warning("rejected unauthorized %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0",
				"error": map[string]any{
					"code":    codeInvalidRequest,
					"message": "Unauthorized",
				},
				"id": nil,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func validToken(secret, authHeader string) bool {
	if secret == "" {
		return false
	}
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}
