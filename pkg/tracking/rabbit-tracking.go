package tracking

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/matst80/slask-menu/pkg/messaging"
	"github.com/matst80/slask-menu/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

const trackingTopic messaging.ChangeTopic = "tracking"

// RabbitTracking publishes session and filter events. A nil *RabbitTracking
// is valid and drops every event.
type RabbitTracking struct {
	vendor     string
	connection *amqp.Connection
	send       messaging.Sender
}

func NewRabbitTracking(url, vendor string) (*RabbitTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	if err = messaging.DefineTopics(conn, "global", trackingTopic); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &RabbitTracking{
		vendor:     vendor,
		connection: conn,
		send:       messaging.NewSender(conn, "global"),
	}, nil
}

func NewTrackingWithSender(vendor string, send messaging.Sender) *RabbitTracking {
	return &RabbitTracking{vendor: vendor, send: send}
}

func (rt *RabbitTracking) Close() error {
	if rt == nil || rt.connection == nil {
		return nil
	}
	return rt.connection.Close()
}

func (rt *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	if rt == nil {
		return
	}
	if err := rt.send(trackingTopic, NewSessionEvent(rt.vendor, sessionId, r)); err != nil {
		log.Error("error sending session event", "err", err)
	}
}

func (rt *RabbitTracking) TrackFilter(sessionId string, request *types.FilterRequest, resultLen int, r *http.Request) {
	if rt == nil {
		return
	}
	if err := rt.send(trackingTopic, NewFilterEvent(rt.vendor, sessionId, request, resultLen, r)); err != nil {
		log.Error("error sending filter event", "err", err)
	}
}
