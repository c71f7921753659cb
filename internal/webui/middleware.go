package webui

import (
	"log/slog"
	"net/http"

	"github.com/alex65536/fenview/internal/util/httputil"
	"golang.org/x/time/rate"
)

type middlewareBuilder struct {
	Log         *slog.Logger
	Prefix      string
	Limiter     *rate.Limiter
	CSRFProtect func(http.Handler) http.Handler
	Compress    func(http.Handler) http.Handler
}

type middleware struct {
	b    *middlewareBuilder
	h    http.Handler
	kind string
}

func (m *middleware) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	req = httputil.WrapRequest(req)
	rid := httputil.ExtractReqID(req.Context())
	m.b.Log.Info("handle request",
		slog.String("rid", rid),
		slog.String("uri", req.RequestURI),
		slog.String("method", req.Method),
		slog.String("addr", req.RemoteAddr),
		slog.String("kind", m.kind),
	)
	switch m.kind {
	case "page":
		if !m.b.Limiter.Allow() {
			log := m.b.Log.With(slog.String("rid", rid))
			log.Warn("rate limit exceeded")
			writeHTTPErr(log, w, httputil.MakeError(http.StatusTooManyRequests, "too many requests"))
			return
		}
		if len(w.Header().Values("Cache-Control")) == 0 {
			w.Header().Set("Cache-Control", "max-age=0, private, must-revalidate")
		}
	case "websocket":
	case "static":
		w.Header().Set("Cache-Control", "max-age=86400, public")
	default:
		panic("must not happen")
	}
	m.h.ServeHTTP(w, req)
}

func (b *middlewareBuilder) wrap(h http.Handler, kind string) http.Handler {
	if kind == "page" {
		h = b.CSRFProtect(h)
	}
	h = &middleware{b: b, h: h, kind: kind}
	if kind != "websocket" {
		h = b.Compress(h)
	}
	return h
}

func (b *middlewareBuilder) WrapPage(h http.Handler) http.Handler {
	return b.wrap(h, "page")
}

func (b *middlewareBuilder) WrapStatic(h http.Handler) http.Handler {
	return b.wrap(h, "static")
}

func (b *middlewareBuilder) WrapWebSocket(h http.Handler) http.Handler {
	return b.wrap(h, "websocket")
}
