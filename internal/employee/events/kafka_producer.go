package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gartstein/employees/internal/employee/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

// defaultDrainTimeout bounds how long Close keeps sending queued events.
const defaultDrainTimeout = 5 * time.Second

type EventType string

const (
	EmployeeCreated EventType = "employee_created"
)

type Event struct {
	ID         uuid.UUID        `json:"id"`
	Type       EventType        `json:"type"`
	Employee   *models.Employee `json:"employee"`
	OccurredAt time.Time        `json:"occurredAt"`
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer       KafkaWriter
	events       chan Event
	logger       *zap.Logger
	closeChan    chan struct{}
	drainTimeout time.Duration
	wg           sync.WaitGroup
}

func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	// Create topic if it doesn't exist
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}

	p := newProducer(&kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.Hash{},
		Topic:    topic,
	}, logger)
	p.start()
	return p, nil
}

func newProducer(writer KafkaWriter, logger *zap.Logger) *Producer {
	return &Producer{
		writer:       writer,
		events:       make(chan Event, 1000),
		logger:       logger.Named("kafka_producer"),
		closeChan:    make(chan struct{}),
		drainTimeout: defaultDrainTimeout,
	}
}

func (p *Producer) start() {
	p.wg.Add(1)
	go p.eventLoop()
}

func (p *Producer) Produce(eventType EventType, employee *models.Employee) {
	event := Event{
		ID:         uuid.New(),
		Type:       eventType,
		Employee:   employee,
		OccurredAt: time.Now().UTC(),
	}
	select {
	case p.events <- event:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.String("employee_id", employee.ID.Hex()),
		)
	}
}

func (p *Producer) eventLoop() {
	defer p.wg.Done()
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			p.drain()
			return
		}
	}
}

// drain sends whatever is still queued. Events left after drainTimeout are dropped.
func (p *Producer) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), p.drainTimeout)
	defer cancel()
	for {
		select {
		case event := <-p.events:
			if ctx.Err() != nil {
				p.logger.Warn("Drain deadline exceeded, dropping queued events",
					zap.Int("dropped", len(p.events)+1),
				)
				return
			}
			p.sendEvent(ctx, event)
		default:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("employee_id", event.Employee.ID.Hex()),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Employee.ID.Hex()),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("employee_id", event.Employee.ID.Hex()),
		)
	}
}

// Close stops accepting work, flushes the queue and closes the writer.
// Produce must not be called after Close.
func (p *Producer) Close() {
	close(p.closeChan)
	p.wg.Wait()
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}

// NopProducer discards events. It is used when no brokers are configured.
type NopProducer struct{}

func (NopProducer) Produce(EventType, *models.Employee) {}

func (NopProducer) Close() {}

// Publisher is a Producer or a NopProducer.
type Publisher interface {
	Produce(eventType EventType, employee *models.Employee)
	Close()
}

// NewPublisher returns a Kafka producer for brokers, or a NopProducer when
// no brokers are configured or the first broker cannot be reached.
func NewPublisher(brokers []string, logger *zap.Logger, topic string) Publisher {
	if len(brokers) == 0 {
		logger.Info("No Kafka brokers configured, events disabled")
		return NopProducer{}
	}
	p, err := NewProducer(brokers, logger, topic)
	if err != nil {
		logger.Warn("Failed to initialize Kafka producer, events disabled", zap.Error(err))
		return NopProducer{}
	}
	return p
}
