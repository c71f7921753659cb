package engine

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/alex65536/go-chess/uci"
	"github.com/alex65536/go-chess/util/maybe"

	"github.com/alex65536/fenview/internal/util/idgen"
	"github.com/alex65536/fenview/internal/util/slogx"
)

type logAdapter struct {
	log   *slog.Logger
	level slog.Level
}

func (l *logAdapter) Printf(s string, args ...any) {
	l.log.Log(context.Background(), l.level, fmt.Sprintf(s, args...))
}

type Pool interface {
	Acquire(ctx context.Context) (*uci.Engine, error)
	Release(e *uci.Engine)
	Name() string
	Close()
}

type PoolOptions struct {
	ExeName       string
	Args          []string
	Options       map[string]uci.OptValue
	CreateTimeout maybe.Maybe[time.Duration]
}

func (o *PoolOptions) FillDefaults() {
	o.CreateTimeout = maybe.Some(o.CreateTimeout.GetOr(5 * time.Second))
}

func (o PoolOptions) Clone() PoolOptions {
	o.Args = slices.Clone(o.Args)
	o.Options = maps.Clone(o.Options)
	return o
}

// NewPool starts one engine right away, so a misconfigured engine is reported early.
func NewPool(ctx context.Context, log *slog.Logger, o PoolOptions) (Pool, error) {
	o = o.Clone()
	o.FillDefaults()

	if !slogx.IsDiscard(log) {
		log = log.With(slog.String("pool_id", idgen.ID()))
	}

	poolCtx, cancel := context.WithCancel(context.Background())
	pool := &pool{
		o:      o,
		ctx:    poolCtx,
		cancel: cancel,
		log:    log,
	}

	e, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create first engine: %w", err)
	}
	info, ok := e.Info()
	if !ok {
		panic("must not happen")
	}
	pool.name = fmt.Sprintf("%v at %v", info.Name, o.ExeName)
	pool.Release(e)

	return pool, nil
}

type pool struct {
	o      PoolOptions
	ctx    context.Context
	cancel func()
	mu     sync.Mutex
	es     []*uci.Engine
	name   string
	log    *slog.Logger
}

func (p *pool) Acquire(ctx context.Context) (*uci.Engine, error) {
	p.mu.Lock()
	if len(p.es) != 0 {
		e := p.es[len(p.es)-1]
		p.es = p.es[:len(p.es)-1]
		p.mu.Unlock()
		return e, nil
	}
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, p.o.CreateTimeout.Get())
	defer cancel()

	logger := uci.NewNullLogger()
	if !slogx.IsDiscard(p.log) {
		logger = &logAdapter{
			log:   p.log.With(slog.String("engine_id", idgen.ID())),
			level: slog.LevelDebug,
		}
	}

	e, err := uci.NewEasyEngine(p.ctx, uci.EasyEngineOptions{
		Name:            p.o.ExeName,
		Args:            p.o.Args,
		WaitInitialized: false,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	if err := e.WaitInitialized(ctx); err != nil {
		e.Close()
		return nil, fmt.Errorf("wait init: %w", err)
	}
	for k, v := range p.o.Options {
		if err := e.SetOption(ctx, k, v); err != nil {
			e.Close()
			return nil, fmt.Errorf("set option %q: %w", k, err)
		}
	}

	return e, nil
}

func (p *pool) Release(e *uci.Engine) {
	if e.Terminated() {
		return
	}
	if e.Terminating() || e.CurSearch() != nil {
		e.Close()
		return
	}
	p.mu.Lock()
	p.es = append(p.es, e)
	p.mu.Unlock()
}

func (p *pool) Name() string {
	return p.name
}

func (p *pool) Close() {
	p.cancel()
	p.mu.Lock()
	es := p.es
	p.es = nil
	p.mu.Unlock()
	for _, e := range es {
		<-e.Done()
	}
}
