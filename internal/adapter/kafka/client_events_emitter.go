package kafka

import (
	"context"
	"crypto/tls"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
)

var _ port.ClientEventsProducer = (*ClientEventsEmitter)(nil)

// A ClientEventsEmitterConfig used for setup [ClientEventsEmitter].
//
// SeedBrokers, Topic and Encoder are required.
type ClientEventsEmitterConfig struct {
	SeedBrokers []string
	Topic       string
	ClientID    string
	Encoder     Serde
	TLSConfig   *tls.Config
}

// ClientEventsEmitter publishes client events keyed by session id.
// Delivery is asynchronous. Close waits for pending events.
type ClientEventsEmitter struct {
	ge *goka.Emitter
}

func NewClientEventsEmitter(
	config ClientEventsEmitterConfig, opts ...goka.EmitterOption,
) (*ClientEventsEmitter, error) {
	const op = "NewClientEventsEmitter"

	cfg := saramaConfig(config.ClientID, config.TLSConfig)
	opts = append([]goka.EmitterOption{
		goka.WithEmitterProducerBuilder(goka.ProducerBuilderWithConfig(cfg)),
		goka.WithEmitterTopicManagerBuilder(
			goka.TopicManagerBuilderWithConfig(cfg, goka.NewTopicManagerConfig()),
		),
	}, opts...)

	ge, err := goka.NewEmitter(
		config.SeedBrokers,
		goka.Stream(config.Topic),
		newClientEventCodec(config.Encoder),
		opts...,
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &ClientEventsEmitter{ge}, nil
}

func (e *ClientEventsEmitter) ProduceEvent(
	ctx context.Context, ev domain.ClientEvent,
) error {
	const op = "ClientEventsEmitter.ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	promise, err := e.ge.Emit(ev.SessionID, clientEventToSchemaV1(ev))
	if err != nil {
		return opErr(err, op)
	}
	promise.Then(func(err error) {
		if err != nil {
			slog.Error("failed to deliver client event",
				"op", op, "type", ev.Type, "err", err)
		}
	})
	return nil
}

func (e *ClientEventsEmitter) Close() {
	const op = "ClientEventsEmitter.Close"
	log := slog.With("op", op)

	log.Info("closing emitter...")
	if err := e.ge.Finish(); err != nil {
		log.Error("failed to finish gracefully", "err", err)
		return
	}
	log.Info("emitter is closed")
}
