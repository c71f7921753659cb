package websockutil

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alex65536/fenview/internal/util/slogx"
	"github.com/gorilla/websocket"
)

type frame struct {
	kind int
	data []byte
}

func (f frame) name() string {
	switch f.kind {
	case websocket.TextMessage:
		return "text"
	case websocket.BinaryMessage:
		return "binary"
	case websocket.CloseMessage:
		return "close"
	case websocket.PingMessage:
		return "ping"
	default:
		return "unknown"
	}
}

// ReceiverFunc handles an inbound message. A nil ReceiverFunc drops inbound messages.
type ReceiverFunc func(msg []byte) error

// Session is a server-side websocket with a single writer goroutine. It is closed when
// the peer goes away, after Shutdown, or after Close.
type Session struct {
	conn *websocket.Conn
	log  *slog.Logger
	o    *Options
	recv ReceiverFunc

	writeCh chan frame
	closeCh chan struct{}
	wg      sync.WaitGroup

	ctx    context.Context
	cancel func()
	closed atomic.Bool
}

type SessionFactory struct {
	o        Options
	upgrader websocket.Upgrader
}

func NewSessionFactory(o Options) *SessionFactory {
	o.FillDefaults()
	return &SessionFactory{
		o:        o,
		upgrader: o.upgrader(),
	}
}

func (f *SessionFactory) NewSession(
	w http.ResponseWriter,
	req *http.Request,
	log *slog.Logger,
	recv ReceiverFunc,
) (*Session, error) {
	conn, err := f.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Warn("could not upgrade websocket", slogx.Err(err))
		return nil, fmt.Errorf("upgrade: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		conn:    conn,
		log:     log,
		o:       &f.o,
		recv:    recv,
		writeCh: make(chan frame),
		closeCh: make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	s.wg.Add(2)
	go s.readLoop()
	go s.writeLoop()
	return s, nil
}

func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// stop closes the connection without waiting for the loops, so the loops may call it.
func (s *Session) stop() {
	if s.closed.Swap(true) {
		return
	}
	s.cancel()
	if err := s.conn.Close(); err != nil {
		s.log.Info("could not close websocket", slogx.Err(err))
	}
}

// Close closes the connection and waits until both loops exit.
func (s *Session) Close() {
	s.stop()
	s.wg.Wait()
}

func (s *Session) readLoop() {
	defer s.wg.Done()
	defer s.stop()
	s.conn.SetReadLimit(s.o.ReadMsgLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.o.PingTimeout))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.o.PingTimeout))
		return nil
	})
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if s.ctx.Err() == nil &&
				!websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Info("could not read from websocket", slogx.Err(err))
			}
			return
		}
		if s.recv == nil {
			continue
		}
		if err := s.recv(msg); err != nil {
			s.log.Info("could not receive message", slogx.Err(err))
			s.Shutdown()
			return
		}
	}
}

func (s *Session) writeLoop() {
	defer s.wg.Done()
	defer s.stop()
	ticker := time.NewTicker(s.o.PingInterval)
	defer ticker.Stop()
	for {
		var cur frame
		shutdown := false
		select {
		case <-s.closeCh:
			cur = frame{
				kind: websocket.CloseMessage,
				data: websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			}
			shutdown = true
		case cur = <-s.writeCh:
		case <-ticker.C:
			cur = frame{kind: websocket.PingMessage, data: []byte{}}
		case <-s.ctx.Done():
			return
		}
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.o.WriteDeadline))
		if err := s.conn.WriteMessage(cur.kind, cur.data); err != nil {
			s.log.Info("could not send message", slog.String("kind", cur.name()), slogx.Err(err))
			return
		}
		if shutdown {
			return
		}
	}
}

// Shutdown sends a normal close frame to the peer and waits until the session is closed.
func (s *Session) Shutdown() {
	select {
	case s.closeCh <- struct{}{}:
	default:
	}
	<-s.ctx.Done()
}

func (s *Session) WriteMsg(kind int, data []byte) error {
	select {
	case s.writeCh <- frame{kind: kind, data: data}:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

// Notify sends a text message and then shuts the session down.
func (s *Session) Notify(text string) error {
	if err := s.WriteMsg(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	s.Shutdown()
	return nil
}
