// Package rabbitmq publishes domain change events to a RabbitMQ queue.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"weighttrack/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	reconnectDelay = 5 * time.Second
	publishTimeout = 5 * time.Second
	mailboxSize    = 256
)

var (
	// ErrMailboxFull is returned when events arrive faster than the broker
	// accepts them; the event is dropped.
	ErrMailboxFull = errors.New("event mailbox full")
	// ErrClosed is returned by Publish after Close.
	ErrClosed = errors.New("publisher closed")
)

// session is one live connection and channel to the broker.
type session interface {
	Publish(ctx context.Context, body []byte) error
	Close() error
}

type dialFunc func(addr, queue string) (session, error)

// Publisher is an actor owning the broker connection. Publish hands events to
// its mailbox and returns immediately; a single goroutine delivers them in
// order, reconnecting when the connection drops. While the broker is
// unreachable the head event is held and retried every retryDelay; events
// still undelivered when Close is called are dropped.
type Publisher struct {
	addr       string
	queue      string
	dial       dialFunc
	retryDelay time.Duration
	done       chan struct{}

	mu      sync.Mutex
	closed  bool
	mailbox chan []byte
	wg      sync.WaitGroup

	// owned by run
	sess     session
	nextDial time.Time

	logger *log.Logger
}

var _ domain.EventPublisher = (*Publisher)(nil)

// NewPublisher starts a publisher for queue on the broker at addr. The
// connection is opened lazily on the first event.
func NewPublisher(addr, queue string) *Publisher {
	return newPublisher(addr, queue, dialAMQP, mailboxSize, reconnectDelay)
}

func newPublisher(addr, queue string, dial dialFunc, size int, retryDelay time.Duration) *Publisher {
	p := &Publisher{
		addr:       addr,
		queue:      queue,
		dial:       dial,
		retryDelay: retryDelay,
		done:       make(chan struct{}),
		mailbox:    make(chan []byte, size),
		logger:     log.New(os.Stdout, "[events] ", log.LstdFlags),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Publish queues e for delivery. It never waits for the broker.
func (p *Publisher) Publish(_ context.Context, e domain.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.mailbox <- body:
		return nil
	default:
		return ErrMailboxFull
	}
}

// Close delivers what is already queued, then closes the connection. Events
// waiting on an unreachable broker are dropped.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.done)
		close(p.mailbox)
	}
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for body := range p.mailbox {
		for !p.deliver(body) {
			if !p.waitRetry() {
				p.logger.Printf("shutting down, dropping event: %s", body)
				break
			}
		}
	}
	if p.sess != nil {
		if err := p.sess.Close(); err != nil {
			p.logger.Printf("close: %v", err)
		}
		p.sess = nil
	}
	p.logger.Println("publisher stopped")
}

// deliver publishes body, reconnecting once if the current session fails. It
// reports false when no connection could be made and body should be retried.
func (p *Publisher) deliver(body []byte) bool {
	for attempt := 0; attempt < 2; attempt++ {
		if p.sess == nil && !p.connect() {
			return false
		}

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := p.sess.Publish(ctx, body)
		cancel()
		if err == nil {
			return true
		}

		p.logger.Printf("publish failed: %v", err)
		_ = p.sess.Close()
		p.sess = nil
	}
	p.logger.Printf("giving up on event: %s", body)
	return true
}

// waitRetry sleeps until the next dial is allowed. It returns false once the
// publisher is closing.
func (p *Publisher) waitRetry() bool {
	select {
	case <-p.done:
		return false
	default:
	}
	t := time.NewTimer(time.Until(p.nextDial))
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-p.done:
		return false
	}
}

// connect dials the broker unless a recent attempt failed.
func (p *Publisher) connect() bool {
	if time.Now().Before(p.nextDial) {
		return false
	}
	sess, err := p.dial(p.addr, p.queue)
	if err != nil {
		p.logger.Printf("connect failed: %v, retrying in %s", err, p.retryDelay)
		p.nextDial = time.Now().Add(p.retryDelay)
		return false
	}
	p.logger.Println("connected to broker")
	p.sess = sess
	return true
}

type amqpSession struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func dialAMQP(addr, queue string) (session, error) {
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &amqpSession{conn: conn, channel: ch, queue: queue}, nil
}

func (s *amqpSession) Publish(ctx context.Context, body []byte) error {
	if s.conn.IsClosed() {
		return amqp.ErrClosed
	}
	return s.channel.PublishWithContext(ctx,
		"",      // default exchange
		s.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

func (s *amqpSession) Close() error {
	_ = s.channel.Close()
	return s.conn.Close()
}
