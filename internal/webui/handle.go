package webui

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/alex65536/fenview/internal/boardview"
	"github.com/alex65536/fenview/internal/posbrowser"
	"github.com/alex65536/fenview/internal/util/idgen"
	"github.com/alex65536/fenview/internal/util/websockutil"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gorilla/csrf"
	"golang.org/x/time/rate"
)

type Config struct {
	Loader   *posbrowser.Loader
	ServerID string
	CSRFKey  []byte
	prefix   string
	opts     *Options
	palette  boardview.Palette
}

type Options struct {
	WebSocket  websockutil.Options `toml:"websocket"`
	BoardSize  int                 `toml:"board-size"`
	DarkSquare string              `toml:"dark-square"`
	StaticDir  string              `toml:"static-dir"`
	RPSLimit   float64             `toml:"rps-limit"`
	RPSBurst   int                 `toml:"rps-burst"`

	// InsecureCookies drops the Secure flag from the CSRF cookie. Needed when serving over
	// plain HTTP.
	InsecureCookies bool `toml:"insecure-cookies"`
}

func (o *Options) FillDefaults() {
	o.WebSocket.FillDefaults()
	if o.BoardSize == 0 {
		o.BoardSize = 400
	}
	if o.DarkSquare == "" {
		o.DarkSquare = boardview.DefaultDarkSquare
	}
	if o.RPSLimit == 0.0 {
		o.RPSLimit = 20
	}
	if o.RPSBurst == 0 {
		o.RPSBurst = 40
	}
}

func must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}

// NewServerID returns a human-readable server identifier. It appears in the logs and is used to
// bust the static file caches on restart.
func NewServerID() string {
	id := idgen.ID()
	return petname.Generate(2, "-") + "-" + id[len(id)-6:]
}

func Handle(log *slog.Logger, mux *http.ServeMux, prefix string, cfg Config, o Options) error {
	o.FillDefaults()

	if cfg.Loader == nil {
		return fmt.Errorf("no loader")
	}
	if len(cfg.CSRFKey) != 32 {
		return fmt.Errorf("csrf key must be 32 bytes long, got %v", len(cfg.CSRFKey))
	}
	if o.BoardSize < 8 {
		return fmt.Errorf("board size %v is too small", o.BoardSize)
	}
	palette, err := boardview.NewPalette(o.DarkSquare)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	static, err := staticFS(o.StaticDir)
	if err != nil {
		return err
	}
	if cfg.ServerID == "" {
		cfg.ServerID = NewServerID()
	}
	cfg.prefix = prefix
	cfg.opts = &o
	cfg.palette = palette

	b := middlewareBuilder{
		Log:     log,
		Prefix:  prefix,
		Limiter: rate.NewLimiter(rate.Limit(o.RPSLimit), o.RPSBurst),
		CSRFProtect: csrf.Protect(
			cfg.CSRFKey,
			csrf.Secure(!o.InsecureCookies),
			csrf.Path(prefix+"/"),
			csrf.SameSite(csrf.SameSiteStrictMode),
		),
		Compress: gziphandler.GzipHandler,
	}
	templ := newTemplator(&cfg)
	if err := templ.addAll(); err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	staticHandler := http.StripPrefix(prefix, http.FileServerFS(static))
	mux.Handle(prefix+"/css/", b.WrapStatic(staticHandler))
	mux.Handle(prefix+"/js/", b.WrapStatic(staticHandler))
	mux.Handle(prefix+"/{$}", b.WrapPage(must(viewerPage(log, &cfg, templ, true))))
	mux.Handle(prefix+"/pos/{num}", b.WrapPage(must(viewerPage(log, &cfg, templ, false))))
	mux.Handle(prefix+"/jump", b.WrapPage(must(jumpPage(log, &cfg, templ))))
	mux.Handle(prefix+"/ws/ready", b.WrapWebSocket(readyWebSocket(log, &cfg)))
	mux.Handle(prefix+"/", b.WrapPage(must(e404Page(log, &cfg, templ))))
	return nil
}
