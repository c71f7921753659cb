package webui

import (
	"log/slog"
	"net/http"

	"github.com/alex65536/fenview/internal/util/httputil"
	"github.com/alex65536/fenview/internal/util/slogx"
	"github.com/alex65536/fenview/internal/util/websockutil"
)

const readyMessage = "ready"

type readyWebSocketImpl struct {
	log     *slog.Logger
	cfg     *Config
	factory *websockutil.SessionFactory
}

// readyWebSocket notifies the loading page once the positions are available.
func readyWebSocket(log *slog.Logger, cfg *Config) http.Handler {
	return &readyWebSocketImpl{
		log:     log.With(slog.String("websocket", "ready")),
		cfg:     cfg,
		factory: websockutil.NewSessionFactory(cfg.opts.WebSocket),
	}
}

func (s *readyWebSocketImpl) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	log := s.log.With(slog.String("rid", httputil.ExtractReqID(ctx)))
	log.Info("handle ready websocket", slog.String("addr", req.RemoteAddr))

	session, err := s.factory.NewSession(w, req, log, nil)
	if err != nil {
		return
	}
	defer session.Close()

	select {
	case <-s.cfg.Loader.Done():
		if err := session.Notify(readyMessage); err != nil {
			log.Info("could not notify", slogx.Err(err))
		}
	case <-session.Done():
	}
}
