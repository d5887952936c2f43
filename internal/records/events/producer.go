// Package events publishes record lifecycle events to Kafka. The desktop
// deployment normally runs without a broker (the Nop producer); when brokers
// are configured, every committed create/update/delete is mirrored onto a
// topic for downstream sync tooling.
package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	CompanyCreated  EventType = "company_created"
	CompanyUpdated  EventType = "company_updated"
	CompanyDeleted  EventType = "company_deleted"
	CategoryCreated EventType = "category_created"
	CategoryUpdated EventType = "category_updated"
	CategoryDeleted EventType = "category_deleted"
	CustomerCreated EventType = "customer_created"
	CustomerUpdated EventType = "customer_updated"
	CustomerDeleted EventType = "customer_deleted"
)

// Event is the wire envelope. Record carries the committed domain record
// (nil for deletions, where only RecordID is meaningful).
type Event struct {
	ID       uuid.UUID   `json:"id"`
	Type     EventType   `json:"type"`
	RecordID int64       `json:"record_id"`
	Record   interface{} `json:"record,omitempty"`
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer queues events on a buffered channel and writes them to Kafka from
// a background loop. When the queue is full the event is dropped with a
// warning; record events are advisory, never part of the write path.
type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
}

// NewProducer constructs a Producer writing to the given brokers and topic.
func NewProducer(brokers []string, logger *zap.Logger, topic string) *Producer {
	p := &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
			Topic:    topic,
		},
		events:    make(chan Event, 1000),
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
	}

	go p.eventLoop()
	return p
}

// Produce enqueues an event for the given record.
func (p *Producer) Produce(eventType EventType, recordID int64, record interface{}) {
	event := Event{
		ID:       uuid.New(),
		Type:     eventType,
		RecordID: recordID,
		Record:   record,
	}
	select {
	case p.events <- event:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.Int64("record_id", recordID),
		)
	}
}

func (p *Producer) eventLoop() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.Int64("record_id", event.RecordID),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.RecordID, 10)),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.Int64("record_id", event.RecordID),
		)
	}
}

func (p *Producer) Close() {
	close(p.closeChan)
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}

// Nop is the producer used when no brokers are configured.
type Nop struct{}

func (Nop) Produce(EventType, int64, interface{}) {}

func (Nop) Close() {}
