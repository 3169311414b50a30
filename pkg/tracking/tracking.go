package tracking

import (
	"net/http"

	"github.com/matst80/slask-menu/pkg/types"
)

const (
	EventSession uint16 = 0
	EventFilter  uint16 = 1
)

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Vendor    string `json:"vendor,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type FilterEvent struct {
	*BaseEvent
	Request         *types.FilterRequest `json:"request"`
	ActiveFilters   int                  `json:"active_filters"`
	NumberOfResults int                  `json:"noi"`
	Referer         string               `json:"referer,omitempty"`
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func NewSessionEvent(vendor, sessionId string, r *http.Request) Session {
	return Session{
		BaseEvent:    &BaseEvent{Event: EventSession, SessionId: sessionId, Vendor: vendor, Context: "menu"},
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	}
}

func NewFilterEvent(vendor, sessionId string, request *types.FilterRequest, resultLen int, r *http.Request) FilterEvent {
	return FilterEvent{
		BaseEvent:       &BaseEvent{Event: EventFilter, SessionId: sessionId, Vendor: vendor, Context: "menu"},
		Request:         request,
		ActiveFilters:   request.ActiveFilterCount(),
		NumberOfResults: resultLen,
		Referer:         r.Header.Get("Referer"),
	}
}
