package posbrowser

import (
	"context"
	"log/slog"

	"github.com/alex65536/fenview/internal/util/slogx"
)

// Load fetches and parses the dataset once. Failures are logged and give an empty dataset, as the
// viewer does not distinguish between "no data" and "could not get data".
func Load(ctx context.Context, log *slog.Logger, src Source) []Record {
	log = log.With(slog.String("source", src.String()))
	rc, err := src.Open(ctx)
	if err != nil {
		log.Warn("could not fetch positions", slogx.Err(err))
		return nil
	}
	defer rc.Close()
	records, err := Parse(rc)
	if err != nil {
		log.Warn("could not read positions", slogx.Err(err))
		return nil
	}
	log.Info("positions loaded", slog.Int("count", len(records)))
	return records
}

// Loader runs Load in the background, so the viewer can render before the data arrives.
type Loader struct {
	log     *slog.Logger
	src     Source
	done    chan struct{}
	records []Record
}

func NewLoader(log *slog.Logger, src Source) *Loader {
	return &Loader{
		log:  log,
		src:  src,
		done: make(chan struct{}),
	}
}

// Start must be called exactly once.
func (l *Loader) Start(ctx context.Context) {
	go func() {
		defer close(l.done)
		l.records = Load(ctx, l.log, l.src)
	}()
}

func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Records returns the loaded records, or false if loading is not finished yet.
func (l *Loader) Records() ([]Record, bool) {
	select {
	case <-l.done:
		return l.records, true
	default:
		return nil, false
	}
}

func (l *Loader) Wait(ctx context.Context) ([]Record, error) {
	select {
	case <-l.done:
		return l.records, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
