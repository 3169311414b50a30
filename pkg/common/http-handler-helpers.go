package common

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/matst80/slask-menu/pkg/common/jsoncompat"
	"github.com/matst80/slask-menu/pkg/types"
)

type JsonHandlerFunc func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error

func JsonHandler(trk types.Tracking, fn JsonHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)

		err := fn(w, r, sessionId, jsoncompat.NewEncoder(w))
		if err != nil {
			log.Error("error handling request", "path", r.URL.Path, "err", err)
		}
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
