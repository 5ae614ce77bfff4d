package model

import (
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

const clientQueueSize = 64

// Client owns every write to one connection. A single goroutine performs the
// writes in the order they were queued; websocket connections allow only one
// writer at a time.
type Client struct {
	conn    Conn
	queue   chan func(Conn) error
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func NewClient(conn Conn) *Client {
	c := &Client{
		conn:    conn,
		queue:   make(chan func(Conn) error, clientQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

func (c *Client) writeLoop() {
	defer close(c.stopped)
	for {
		select {
		case write := <-c.queue:
			if err := write(c.conn); err != nil {
				log.Debugf("websocket write failed: %v", err)
				c.stop()
				return
			}
		case <-c.done:
			c.flush()
			return
		}
	}
}

// flush writes whatever was queued before the client was stopped.
func (c *Client) flush() {
	for {
		select {
		case write := <-c.queue:
			if err := write(c.conn); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Client) stop() {
	c.once.Do(func() { close(c.done) })
}

// enqueue never blocks. It reports false once the client has stopped or when
// the reader is so far behind that the queue is full.
func (c *Client) enqueue(write func(Conn) error) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.queue <- write:
		return true
	default:
		log.Warnf("websocket queue full, dropping client")
		c.stop()
		return false
	}
}

func (c *Client) Send(v interface{}) bool {
	return c.enqueue(func(conn Conn) error {
		return conn.WriteJSON(v)
	})
}

// SendClose queues a normal-closure frame carrying reason.
func (c *Client) SendClose(reason string) bool {
	return c.enqueue(func(conn Conn) error {
		return conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
		)
	})
}

// Close stops accepting messages and waits until the queued ones are written.
// The connection itself is left to its owner.
func (c *Client) Close() {
	c.stop()
	<-c.stopped
}
