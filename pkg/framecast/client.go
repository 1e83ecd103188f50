// ABOUTME: WebSocket subscriber client for framecast streams
// ABOUTME: Handshake, stream announcements, and frame chunk delivery
package framecast

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/Framecast/framecast-go/pkg/protocol"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Frame is one MP3 frame received from a framecast server.
type Frame struct {
	TimestampUS int64 // position on the stream timeline, microseconds
	Data        []byte
}

// ClientConfig configures a subscriber.
type ClientConfig struct {
	// ServerAddr is the server address (host:port).
	ServerAddr string

	// Name is the subscriber's display name.
	Name string

	// OnStreamStart is called when the server announces its stream.
	OnStreamStart func(protocol.StreamStart)

	// OnFrame is called once per received frame. The frame's Data is the
	// subscriber's to keep.
	OnFrame func(Frame)

	// OnStreamEnd is called when the server reports the pump exhausted.
	OnStreamEnd func(reason string)

	// OnError is called for read failures after a successful connect.
	OnError func(error)
}

// Client subscribes to a framecast server and surfaces stream events
// through callbacks.
type Client struct {
	config   ClientConfig
	clientID string

	conn      *websocket.Conn
	connected bool
	mu        sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient creates a subscriber client.
func NewClient(config ClientConfig) *Client {
	if config.Name == "" {
		config.Name = "framecast-subscriber"
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		config:   config,
		clientID: uuid.New().String(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Connect dials the server, performs the handshake, and starts the read
// loop.
func (c *Client) Connect() error {
	u := url.URL{Scheme: "ws", Host: c.config.ServerAddr, Path: "/framecast"}
	log.Printf("Connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("framecast: dial failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	if err := c.handshake(); err != nil {
		c.Close()
		return fmt.Errorf("framecast: handshake failed: %w", err)
	}

	go c.readMessages()

	return nil
}

func (c *Client) handshake() error {
	hello := protocol.Message{
		Type: "client/hello",
		Payload: protocol.ClientHello{
			ClientID: c.clientID,
			Name:     c.config.Name,
			Version:  protocol.ProtocolVersion,
		},
	}
	if err := c.conn.WriteJSON(hello); err != nil {
		return fmt.Errorf("send client/hello: %w", err)
	}

	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read server/hello: %w", err)
	}
	c.conn.SetReadDeadline(time.Time{})

	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("parse server/hello: %w", err)
	}
	if msg.Type != "server/hello" {
		return fmt.Errorf("expected server/hello, got %s", msg.Type)
	}

	log.Printf("Handshake complete")
	return nil
}

// readMessages reads and routes incoming messages until the connection
// drops or Close is called.
func (c *Client) readMessages() {
	defer c.Close()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() == nil && c.config.OnError != nil {
				c.config.OnError(err)
			}
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			ts, frame, err := protocol.DecodeFrameChunk(data)
			if err != nil {
				log.Printf("Bad frame chunk: %v", err)
				continue
			}
			if c.config.OnFrame != nil {
				c.config.OnFrame(Frame{TimestampUS: ts, Data: frame})
			}

		case websocket.TextMessage:
			c.handleControl(data)
		}
	}
}

func (c *Client) handleControl(data []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Bad control message: %v", err)
		return
	}

	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		return
	}

	switch msg.Type {
	case "stream/start":
		var start protocol.StreamStart
		if err := json.Unmarshal(payload, &start); err != nil {
			log.Printf("Bad stream/start: %v", err)
			return
		}
		if c.config.OnStreamStart != nil {
			c.config.OnStreamStart(start)
		}

	case "stream/end":
		var end protocol.StreamEnd
		if err := json.Unmarshal(payload, &end); err != nil {
			return
		}
		if c.config.OnStreamEnd != nil {
			c.config.OnStreamEnd(end.Reason)
		}
	}
}

// Close disconnects from the server. Safe to call more than once.
func (c *Client) Close() error {
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	c.connected = false

	goodbye := protocol.Message{
		Type:    "client/goodbye",
		Payload: protocol.ClientGoodbye{Reason: "shutdown"},
	}
	c.conn.SetWriteDeadline(time.Now().Add(time.Second))
	_ = c.conn.WriteJSON(goodbye)

	return c.conn.Close()
}
