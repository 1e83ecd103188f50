// ABOUTME: WebSocket server that broadcasts demuxed MP3 frames
// ABOUTME: Paces the frame pump at real time and fans chunks out to subscribers
package framecast

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Framecast/framecast-go/internal/discovery"
	"github.com/Framecast/framecast-go/pkg/demux"
	"github.com/Framecast/framecast-go/pkg/pipeline"
	"github.com/Framecast/framecast-go/pkg/protocol"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// DefaultPort is the framecast server's default listen port.
const DefaultPort = 9544

// ServerConfig configures a framecast server.
type ServerConfig struct {
	// Port to listen on (default: DefaultPort).
	Port int

	// Name of the server for identification and mDNS.
	Name string

	// Source is the MP3 stream to demux and broadcast (required). The
	// server takes ownership and closes it on shutdown.
	Source demux.Source

	// EnableMDNS enables mDNS service advertisement.
	EnableMDNS bool

	// Debug enables per-chunk logging.
	Debug bool
}

// Server demuxes one MP3 stream and broadcasts its frames to WebSocket
// subscribers, paced at the stream's real-time frame rate. The demuxer's
// single-buffer contract is honored by copying each frame out of the pump
// before it is handed to subscriber send queues.
type Server struct {
	config   ServerConfig
	serverID string

	upgrader   websocket.Upgrader
	httpServer *http.Server
	mux        *http.ServeMux

	dmx         *demux.Demuxer
	streamStart protocol.StreamStart

	subscribers map[string]*subscriber
	subMu       sync.RWMutex

	clockStart time.Time

	stopChan   chan struct{}
	stopOnce   sync.Once
	shutdownMu sync.RWMutex
	isShutdown bool
	streamDone bool // pump exhausted; late subscribers get stream/end
	wg         sync.WaitGroup
}

// subscriber is one connected client (internal).
type subscriber struct {
	ID   string
	Name string
	Conn *websocket.Conn

	sendChan chan interface{}
}

// NewServer creates a framecast server. The source is not opened until
// Start.
func NewServer(config ServerConfig) (*Server, error) {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.Name == "" {
		config.Name = "Framecast Server"
	}
	if config.Source == nil {
		return nil, fmt.Errorf("framecast: source is required")
	}

	return &Server{
		config:   config,
		serverID: uuid.New().String(),
		mux:      http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Local network tool; accept all origins.
				return true
			},
		},
		subscribers: make(map[string]*subscriber),
		clockStart:  time.Now(),
		stopChan:    make(chan struct{}),
	}, nil
}

// Start opens the stream, starts broadcasting, and serves until Stop is
// called or the HTTP listener fails.
func (s *Server) Start() error {
	dmx, err := demux.Open(s.config.Source)
	if err != nil {
		return fmt.Errorf("framecast: %w", err)
	}
	s.dmx = dmx

	f := dmx.Format()
	s.streamStart = protocol.StreamStart{
		Codec:            "mp3",
		Channels:         f.Channels,
		SampleRate:       f.SampleRate,
		ByteRate:         f.ByteRate,
		BlockSize:        f.BlockSize,
		DurationTicks:    pipeline.Ticks(dmx.Duration()),
		CanSeek:          dmx.Seekable(),
		CodecPrivateData: pipeline.CodecPrivateData(f),
	}

	log.Printf("Server starting: %s (ID: %s)", s.config.Name, s.serverID)
	log.Printf("Stream: %dHz/%dch, %d B/s, %d byte frames, ~%v",
		f.SampleRate, f.Channels, f.ByteRate, f.BlockSize, dmx.Duration())

	var mdnsManager *discovery.Manager
	if s.config.EnableMDNS {
		mdnsManager = discovery.NewManager(discovery.Config{
			ServiceName: s.config.Name,
			Port:        s.config.Port,
		})
		if err := mdnsManager.Advertise(); err != nil {
			log.Printf("mDNS advertisement failed: %v", err)
		}
	}

	s.mux.HandleFunc("/framecast", s.handleWebSocket)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.pumpFrames()
	}()

	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("WebSocket server listening on %s", addr)

	s.httpServer = &http.Server{Addr: addr, Handler: s.mux}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-s.stopChan:
		log.Printf("Server shutting down...")
	case err := <-errChan:
		log.Printf("HTTP server error: %v", err)
		return err
	}

	s.shutdownMu.Lock()
	s.isShutdown = true
	s.shutdownMu.Unlock()

	if mdnsManager != nil {
		mdnsManager.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Teardown must always complete; the demuxer suppresses the
	// interrupted-transform class, anything else is only noted.
	if err := s.dmx.Close(); err != nil {
		log.Printf("Error closing stream: %v", err)
	}

	s.wg.Wait()
	log.Printf("Server stopped cleanly")

	return nil
}

// Stop stops the server.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// StreamInfo returns the stream/start announcement derived at Start.
func (s *Server) StreamInfo() protocol.StreamStart {
	return s.streamStart
}

// pumpFrames pulls frames at the stream's real-time rate and broadcasts
// each one. The pump is the demuxer's only caller, so pulls stay strictly
// sequential.
func (s *Server) pumpFrames() {
	f := s.dmx.Format()

	// One frame of audio lasts blockSize/byteRate seconds.
	interval := time.Duration(float64(time.Second) * float64(f.BlockSize) / float64(f.ByteRate))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Frame pump started (%v per frame)", interval)

	for {
		select {
		case <-ticker.C:
			sample := s.dmx.Pull()
			if sample.EndOfStream() {
				log.Printf("Frame pump exhausted")
				s.endStream("end_of_stream")
				return
			}
			s.broadcast(sample)
		case <-s.stopChan:
			log.Printf("Frame pump stopping")
			return
		}
	}
}

// broadcast copies one pulled frame into a chunk and queues it to every
// subscriber. The copy happens exactly once, before the sample's buffer
// can be overwritten by the next pull.
func (s *Server) broadcast(sample demux.Sample) {
	chunk := protocol.EncodeFrameChunk(sample.Timestamp.Microseconds(), sample.Data)

	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, sub := range s.subscribers {
		select {
		case sub.sendChan <- chunk:
		default:
			if s.config.Debug {
				log.Printf("Subscriber %s send buffer full, dropping frame", sub.Name)
			}
		}
	}
}

// endStream tells every subscriber the stream is over. Sends happen under
// the lock so a concurrent disconnect cannot close a channel mid-send; the
// queue writes are non-blocking.
func (s *Server) endStream(reason string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.streamDone = true
	msg := protocol.Message{Type: "stream/end", Payload: protocol.StreamEnd{Reason: reason}}
	for _, sub := range s.subscribers {
		select {
		case sub.sendChan <- msg:
		default:
		}
	}
}

// handleWebSocket upgrades and manages one subscriber connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	log.Printf("New connection from %s", r.RemoteAddr)
	s.handleConnection(conn)
}

func (s *Server) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	s.shutdownMu.RLock()
	if s.isShutdown {
		s.shutdownMu.RUnlock()
		log.Printf("Rejecting connection during shutdown")
		return
	}
	s.shutdownMu.RUnlock()

	// Wait for client/hello.
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("Error reading hello: %v", err)
		return
	}

	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}
	if msg.Type != "client/hello" {
		log.Printf("Expected client/hello, got %s", msg.Type)
		return
	}

	helloData, err := json.Marshal(msg.Payload)
	if err != nil {
		return
	}
	var hello protocol.ClientHello
	if err := json.Unmarshal(helloData, &hello); err != nil {
		log.Printf("Error unmarshaling client hello: %v", err)
		return
	}
	if hello.ClientID == "" {
		hello.ClientID = uuid.New().String()
	}
	if hello.Name == "" {
		hello.Name = hello.ClientID
	}

	log.Printf("Subscriber hello: %s (ID: %s)", hello.Name, hello.ClientID)

	sub := &subscriber{
		ID:       hello.ClientID,
		Name:     hello.Name,
		Conn:     conn,
		sendChan: make(chan interface{}, 100),
	}

	s.subMu.Lock()
	if _, exists := s.subscribers[sub.ID]; exists {
		s.subMu.Unlock()
		log.Printf("Subscriber ID %s already connected, rejecting duplicate", sub.ID)
		return
	}
	s.subscribers[sub.ID] = sub
	streamDone := s.streamDone
	s.subMu.Unlock()

	defer func() {
		s.removeSubscriber(sub)
		log.Printf("Subscriber disconnected: %s", sub.Name)
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.subscriberWriter(sub)
	}()

	s.sendMessage(sub, "server/hello", protocol.ServerHello{
		ServerID: s.serverID,
		Name:     s.config.Name,
		Version:  protocol.ProtocolVersion,
	})
	s.sendMessage(sub, "stream/start", s.streamStart)
	if streamDone {
		s.sendMessage(sub, "stream/end", protocol.StreamEnd{Reason: "end_of_stream"})
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		s.handleSubscriberMessage(sub, data)
	}
}

// subscriberWriter drains one subscriber's send queue.
func (s *Server) subscriberWriter(sub *subscriber) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	const writeDeadline = 10 * time.Second

	for {
		select {
		case msg, ok := <-sub.sendChan:
			if !ok {
				return
			}

			switch v := msg.(type) {
			case []byte:
				sub.Conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := sub.Conn.WriteMessage(websocket.BinaryMessage, v); err != nil {
					return
				}
			default:
				data, err := json.Marshal(v)
				if err != nil {
					continue
				}
				sub.Conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := sub.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}

		case <-ticker.C:
			if err := sub.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}

		case <-s.stopChan:
			return
		}
	}
}

func (s *Server) handleSubscriberMessage(sub *subscriber, data []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	switch msg.Type {
	case "client/goodbye":
		log.Printf("Subscriber %s said goodbye", sub.Name)
	default:
		if s.config.Debug {
			log.Printf("Unknown message type: %s", msg.Type)
		}
	}
}

func (s *Server) removeSubscriber(sub *subscriber) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if _, ok := s.subscribers[sub.ID]; !ok {
		return
	}
	delete(s.subscribers, sub.ID)
	close(sub.sendChan)
}

// sendMessage queues a JSON message to one subscriber.
func (s *Server) sendMessage(sub *subscriber, msgType string, payload interface{}) {
	msg := protocol.Message{Type: msgType, Payload: payload}
	select {
	case sub.sendChan <- msg:
	default:
		log.Printf("Subscriber %s send buffer full, dropping %s", sub.Name, msgType)
	}
}

// SubscriberCount returns the number of connected subscribers.
func (s *Server) SubscriberCount() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subscribers)
}
