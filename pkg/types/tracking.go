package types

import (
	"net/http"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackFilter(sessionId string, request *FilterRequest, resultLen int, r *http.Request)
	Close() error
}
