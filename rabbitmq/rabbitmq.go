package rabbitmq

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"order-api/config"
	"order-api/models"
)

type RabbitMQ struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Cfg     *config.Config

	mu sync.Mutex
}

func NewRabbitMQ(cfg *config.Config) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, errors.Wrap(err, "dial rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "open channel")
	}

	return &RabbitMQ{
		Conn:    conn,
		Channel: ch,
		Cfg:     cfg,
	}, nil
}

// SetupQueues declares the order exchange, the priority order queue and the
// dead-letter queue rejected messages are routed to.
func (r *RabbitMQ) SetupQueues() error {
	deadLetterExchange := r.Cfg.DeadLetterQueue + "_exchange"

	if err := r.Channel.ExchangeDeclare(
		deadLetterExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return errors.Wrap(err, "declare dead-letter exchange")
	}

	if _, err := r.Channel.QueueDeclare(
		r.Cfg.DeadLetterQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-queue-type": "classic",
		},
	); err != nil {
		return errors.Wrap(err, "declare dead-letter queue")
	}

	if err := r.Channel.QueueBind(
		r.Cfg.DeadLetterQueue,
		r.Cfg.DeadLetterQueue,
		deadLetterExchange,
		false,
		nil,
	); err != nil {
		return errors.Wrap(err, "bind dead-letter queue")
	}

	if err := r.Channel.ExchangeDeclare(
		r.Cfg.OrderExchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return errors.Wrap(err, "declare order exchange")
	}

	if _, err := r.Channel.QueueDeclare(
		r.Cfg.OrderQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-max-priority":            r.Cfg.MaxPriority,
			"x-dead-letter-exchange":    deadLetterExchange,
			"x-dead-letter-routing-key": r.Cfg.DeadLetterQueue,
		},
	); err != nil {
		return errors.Wrap(err, "declare order queue")
	}

	if err := r.Channel.QueueBind(
		r.Cfg.OrderQueue,
		"",
		r.Cfg.OrderExchange,
		false,
		nil,
	); err != nil {
		return errors.Wrap(err, "bind order queue")
	}

	return nil
}

// PublishOrderEvent sends event to the order exchange as persistent JSON.
func (r *RabbitMQ) PublishOrderEvent(event models.OrderEvent, priority uint8) error {
	msg, err := newPublishing(event, priority, r.Cfg.MaxPriority)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.Channel.Publish(
		r.Cfg.OrderExchange,
		"",
		false, // mandatory
		false, // immediate
		msg,
	)
}

func newPublishing(event models.OrderEvent, priority uint8, maxPriority int) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, errors.Wrap(err, "encode order event")
	}

	if maxPriority > 0 && int(priority) > maxPriority {
		priority = uint8(maxPriority)
	}

	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Type:         event.Type,
		Body:         body,
		Priority:     priority,
	}, nil
}

func (r *RabbitMQ) Close() {
	if r.Channel != nil {
		_ = r.Channel.Close()
	}
	if r.Conn != nil {
		_ = r.Conn.Close()
	}
}
