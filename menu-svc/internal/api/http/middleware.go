package httpapi

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Auth.Authorized(r.Context(), r.Header.Get(SessionHeader)) {
			http.Error(w, "unauthorized: admin session required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.Log.WithFields(logrus.Fields{
					"panic":  rec,
					"method": r.Method,
					"path":   r.URL.Path,
					"stack":  string(debug.Stack()),
				}).Error("recovered from panic")
				http.Error(w, "Something went wrong, please reload the page", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
