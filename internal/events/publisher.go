package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"buildmart/internal/infrastructure/kafkax"
)

// Publisher wraps the Kafka producer with the envelope format. A nil
// Publisher is valid and drops everything, so event-less deployments and
// tests need no broker.
type Publisher struct {
	producer *kafkax.Producer
	service  string
}

func NewPublisher(producer *kafkax.Producer, service string) *Publisher {
	return &Publisher{producer: producer, service: service}
}

func (p *Publisher) PublishOrder(eventType, traceID string, orderID uint, payload any) {
	p.publish(eventType, traceID, fmt.Sprintf("order:%d", orderID), OrderKey(orderID), payload)
}

func (p *Publisher) PublishBooking(eventType, traceID string, bookingID uint, payload any) {
	p.publish(eventType, traceID, fmt.Sprintf("booking:%d", bookingID), BookingKey(bookingID), payload)
}

func (p *Publisher) publish(eventType, traceID, correlationID string, key []byte, payload any) {
	if p == nil || p.producer == nil {
		return
	}

	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      p.service,
		TraceID:       traceID,
		CorrelationID: correlationID,
		Payload:       kafkax.MustMarshal(payload),
	}

	p.producer.Publish(key, kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
