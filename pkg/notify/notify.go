package notify

import (
	"context"
	"sync"
	"time"

	"ducktodo/pkg/client"
	"ducktodo/pkg/kafka"
	"ducktodo/pkg/logger"
)

// Func adapts a function to client.Notifier.
type Func func(message string)

func (f Func) Error(message string) {
	f(message)
}

// LogNotifier writes messages to the structured log.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) Error(message string) {
	n.logger.Error(message)
}

// Multi fans a message out to every notifier in order.
type Multi []client.Notifier

func (m Multi) Error(message string) {
	for _, n := range m {
		if n != nil {
			n.Error(message)
		}
	}
}

const (
	EventTypeError     = "notification.error"
	DefaultSendTimeout = 3 * time.Second
)

// Publisher is the part of kafka.Producer the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type Event struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// KafkaNotifier publishes each message as an Event. Error returns at once;
// the publish runs in the background with its own timeout.
type KafkaNotifier struct {
	publisher Publisher
	source    string
	timeout   time.Duration
	logger    *logger.Logger
	wg        sync.WaitGroup
}

func NewKafkaNotifier(p Publisher, source string, log *logger.Logger) *KafkaNotifier {
	if log == nil {
		log = logger.Discard()
	}
	return &KafkaNotifier{
		publisher: p,
		source:    source,
		timeout:   DefaultSendTimeout,
		logger:    log,
	}
}

func (n *KafkaNotifier) Error(message string) {
	msg, err := kafka.NewMessage().
		WithKey("error").
		WithValue(Event{Level: "error", Message: message, Source: n.source, Timestamp: time.Now().UTC()}).
		WithEventType(EventTypeError).
		WithSource(n.source).
		Build()
	if err != nil {
		n.logger.Debug("Failed to build notification", "error", err)
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.publisher.Publish(ctx, msg); err != nil {
			n.logger.Debug("Failed to publish notification", "error", err)
		}
	}()
}

// Wait blocks until every pending publish has finished.
func (n *KafkaNotifier) Wait() {
	n.wg.Wait()
}
