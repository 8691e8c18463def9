package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/devtec-sai/queue-coordinator/internal/config"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/in"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/out"
)

type ChangeEventType string

const (
	ChangeEventCreated ChangeEventType = "created"
	ChangeEventUpdated ChangeEventType = "updated"
)

// ChangeEventRoutingKey is the parsed form of keys like
// "sai.queue-coordinator.appointment.updated".
type ChangeEventRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType string
	EventType    ChangeEventType
}

// AppointmentListener consumes registry change events and triggers a
// snapshot refresh for each fresh one. Redeliveries are deduplicated by
// message id; the refresh itself is a full replacement, so collapsing a
// burst of events into one refresh is safe.
type AppointmentListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.QueueCoordinatorUseCase
	dedup   out.DedupPort
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewAppointmentListener(
	useCase in.QueueCoordinatorUseCase,
	dedup out.DedupPort,
	cfg *config.Config,
	logger out.LoggerPort,
) (*AppointmentListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &AppointmentListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		dedup:   dedup,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *AppointmentListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := l.processMessage(ctx, msg); err != nil {
					l.logger.Error("rabbitmq.message.failed", out.LogFields{
						"messageId":  msg.MessageId,
						"routingKey": msg.RoutingKey,
						"error":      err.Error(),
					})
					msg.Nack(false, true) // requeue
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("rabbitmq.queue.started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

func (l *AppointmentListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *AppointmentListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	key, err := parseChangeEventRoutingKey(msg.RoutingKey)
	if err != nil {
		// Unparseable keys are acked away, not requeued forever.
		l.logger.Warn("rabbitmq.message.skipped", out.LogFields{
			"routingKey": msg.RoutingKey,
		})
		return nil
	}

	if key.ResourceType != "appointment" {
		return nil
	}

	if msg.MessageId != "" && l.dedup != nil && l.dedup.MarkSeen(ctx, msg.MessageId) {
		return nil
	}

	l.logger.Debug("rabbitmq.appointment.changed", out.LogFields{
		"messageId": msg.MessageId,
		"eventType": key.EventType,
	})

	return l.useCase.Refresh(ctx)
}

// Example routing keys:
// sai.queue-coordinator.appointment.created
// sai.queue-coordinator.appointment.updated
func parseChangeEventRoutingKey(routingKey string) (ChangeEventRoutingKey, error) {
	parts := strings.Split(routingKey, ".")
	if len(parts) < 4 {
		return ChangeEventRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return ChangeEventRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: parts[2],
		EventType:    ChangeEventType(parts[3]),
	}, nil
}
