// Package tradefeed publishes fill notifications to a Kafka topic as
// a best-effort side channel. It is the teacher's jobs/broadcaster
// reworked around a channel instead of WAL-backed replay: there is no
// book-state persistence in this server (see SPEC_FULL.md §1 Non-goals),
// so there is nothing to replay from on publish failure — a dropped
// publish is just dropped, logged, and the server carries on.
package tradefeed

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"matchsrv/domain/orderbook"
)

// Event is the JSON payload published for each filled order.
type Event struct {
	Ticker   string `json:"ticker"`
	Trader   string `json:"trader"`
	TraderID int32  `json:"trader_id"`
	Side     string `json:"side"`
	Quantity int32  `json:"quantity"`
}

// Publisher wraps a sarama.SyncProducer behind a bounded channel so a
// slow or unreachable broker never stalls a processor worker. Sends
// that find the channel full are dropped and logged — see
// SPEC_FULL.md §5.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger

	events chan Event
	done   chan struct{}
}

const eventBufferSize = 1024

// New connects to brokers and returns a Publisher that is not yet
// running; call Start to begin draining events.
func New(brokers []string, topic string, log *zap.Logger) (*Publisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("tradefeed: connect to brokers: %w", err)
	}

	return &Publisher{
		producer: producer,
		topic:    topic,
		log:      log,
		events:   make(chan Event, eventBufferSize),
		done:     make(chan struct{}),
	}, nil
}

// Start runs the publish loop on its own goroutine until Close is
// called.
func (p *Publisher) Start() {
	go func() {
		defer close(p.done)
		for ev := range p.events {
			p.publish(ev)
		}
	}()
}

// Publish enqueues a fill event, converting o into the wire Side
// string for readability in the published JSON. Publish never blocks:
// if the internal buffer is full the event is dropped and logged.
func (p *Publisher) Publish(o *orderbook.Order) {
	ev := Event{
		Ticker:   o.Ticker,
		Trader:   o.Trader,
		TraderID: o.TraderID,
		Side:     o.Side.String(),
		Quantity: o.Quantity,
	}
	select {
	case p.events <- ev:
	default:
		p.log.Warn("tradefeed: event dropped, buffer full",
			zap.String("ticker", ev.Ticker), zap.Int32("trader_id", ev.TraderID))
	}
}

func (p *Publisher) publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("tradefeed: marshal event", zap.Error(err))
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(payload),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		p.log.Warn("tradefeed: publish failed, dropping", zap.Error(err))
	}
}

// Close stops accepting new events, drains what's already queued, and
// closes the underlying producer.
func (p *Publisher) Close() error {
	close(p.events)
	<-p.done
	return p.producer.Close()
}
