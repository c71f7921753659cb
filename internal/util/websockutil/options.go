package websockutil

import (
	"time"

	"github.com/gorilla/websocket"
)

// Options configure notification sockets. The browser only listens on them, so the
// buffers and the inbound message limit are small.
type Options struct {
	BufferSize    int           `toml:"buffer-size"`
	WriteDeadline time.Duration `toml:"write-deadline"`
	PingInterval  time.Duration `toml:"ping-interval"`
	PingTimeout   time.Duration `toml:"ping-timeout"`
	ReadMsgLimit  int64         `toml:"read-msg-limit"`
}

func (o *Options) FillDefaults() {
	if o.BufferSize == 0 {
		o.BufferSize = 1024
	}
	if o.WriteDeadline == 0 {
		o.WriteDeadline = 10 * time.Second
	}
	if o.PingInterval == 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.PingTimeout == 0 {
		o.PingTimeout = 1 * time.Minute
	}
	if o.ReadMsgLimit == 0 {
		o.ReadMsgLimit = 4096
	}
}

func (o *Options) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  o.BufferSize,
		WriteBufferSize: o.BufferSize,
	}
}
