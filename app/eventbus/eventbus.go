package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamName is the JetStream stream that carries every round event.
const StreamName = "rounds"

// Metadata keys set on every published message.
const (
	MetadataSubject   = "subject"
	MetadataEventTime = "event_time"
)

// EventBus publishes domain events and lets in-process consumers follow them.
type EventBus interface {
	// Publish marshals payload as JSON and publishes it on topic.
	Publish(ctx context.Context, topic string, payload any) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

type eventBus struct {
	publisher      message.Publisher
	subscriber     message.Subscriber
	js             jetstream.JetStream
	natsConn       *nc.Conn
	logger         *slog.Logger
	createdStreams map[string]bool
	streamMutex    sync.Mutex
}

// New returns a NATS JetStream backed bus when natsURL is set and an
// in-memory gochannel bus otherwise.
func New(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	if natsURL == "" {
		return NewInMemory(logger), nil
	}
	return NewNATS(ctx, natsURL, logger)
}

// NewInMemory creates a bus that only delivers within this process.
func NewInMemory(logger *slog.Logger) EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &eventBus{
		publisher:      pubSub,
		subscriber:     pubSub,
		logger:         logger,
		createdStreams: make(map[string]bool),
	}
}

// NewNATS creates a bus with a connection to NATS JetStream.
func NewNATS(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	if logger == nil {
		logger = slog.Default()
	}

	natsConn, err := nc.Connect(natsURL,
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30*time.Second),
		nc.ReconnectWait(time.Second),
	)
	if err != nil {
		logger.Error("Failed to connect to NATS", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(time.Second),
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         natsURL,
			NatsOptions: options,
			Marshaler:   marshaler,
			JetStream: nats.JetStreamConfig{
				AutoProvision: false,
			},
			SubjectCalculator: nats.DefaultSubjectCalculator,
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:            natsURL,
			NatsOptions:    options,
			Unmarshaler:    marshaler,
			CloseTimeout:   30 * time.Second,
			AckWaitTimeout: 30 * time.Second,
			JetStream: nats.JetStreamConfig{
				AutoProvision: false,
				DurablePrefix: "guss",
			},
			SubjectCalculator: nats.DefaultSubjectCalculator,
		},
		watermillLogger,
	)
	if err != nil {
		_ = publisher.Close()
		natsConn.Close()
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	eb := &eventBus{
		publisher:      publisher,
		subscriber:     subscriber,
		js:             js,
		natsConn:       natsConn,
		logger:         logger,
		createdStreams: make(map[string]bool),
	}

	if err := eb.createStream(ctx, StreamName, "round.>"); err != nil {
		_ = eb.Close()
		return nil, err
	}

	return eb, nil
}

func (eb *eventBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(MetadataSubject, topic)
	msg.Metadata.Set(MetadataEventTime, time.Now().UTC().Format(time.RFC3339Nano))
	msg.SetContext(ctx)

	if err := eb.publisher.Publish(topic, msg); err != nil {
		eb.logger.ErrorContext(ctx, "Failed to publish message",
			slog.String("subject", topic),
			slog.Any("error", err),
		)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	eb.logger.DebugContext(ctx, "Message published",
		slog.String("subject", topic),
		slog.String("message_id", msg.UUID),
	)
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := eb.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to subject %s: %w", topic, err)
	}
	eb.logger.Info("Subscription started", slog.String("subject", topic))
	return messages, nil
}

// createStream makes sure the stream exists, once per process.
func (eb *eventBus) createStream(ctx context.Context, streamName, subject string) error {
	eb.streamMutex.Lock()
	defer eb.streamMutex.Unlock()

	if eb.createdStreams[streamName] {
		return nil
	}

	_, err := eb.js.Stream(ctx, streamName)
	switch {
	case errors.Is(err, jetstream.ErrStreamNotFound):
		if _, err := eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
		}); err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
		eb.logger.Info("Stream created", slog.String("stream_name", streamName), slog.String("subject", subject))
	case err != nil:
		return fmt.Errorf("failed to check if stream exists: %w", err)
	}

	eb.createdStreams[streamName] = true
	return nil
}

func (eb *eventBus) Close() error {
	var errs []error
	if err := eb.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
	}
	// gochannel uses a single value for both sides
	if any(eb.subscriber) != any(eb.publisher) {
		if err := eb.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close subscriber: %w", err))
		}
	}
	if eb.natsConn != nil {
		eb.natsConn.Close()
	}
	return errors.Join(errs...)
}
