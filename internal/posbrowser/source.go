package posbrowser

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/alex65536/fenview/internal/util/httputil"
)

// Source is the place where the dataset is fetched from.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

var (
	_ Source = (*fileSource)(nil)
	_ Source = (*fsSource)(nil)
	_ Source = (*httpSource)(nil)
)

type fileSource struct {
	path string
}

func (s *fileSource) Open(context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return f, nil
}

func (s *fileSource) String() string { return s.path }

type fsSource struct {
	fsys fs.FS
	name string
}

func (s *fsSource) Open(context.Context) (io.ReadCloser, error) {
	f, err := s.fsys.Open(s.name)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return f, nil
}

func (s *fsSource) String() string { return s.name }

type httpSource struct {
	url    string
	client *http.Client
}

func (s *httpSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	rsp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	if err := httputil.ErrorFromResponse(rsp); err != nil {
		_ = rsp.Body.Close()
		return nil, fmt.Errorf("status: %w", err)
	}
	return rsp.Body, nil
}

func (s *httpSource) String() string { return s.url }

// NewSource picks the source kind from loc: http and https URLs are fetched with client, and
// everything else is treated as a local file path. Nil client means http.DefaultClient.
func NewSource(loc string, client *http.Client) Source {
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		if client == nil {
			client = http.DefaultClient
		}
		return &httpSource{url: loc, client: client}
	}
	return &fileSource{path: loc}
}

func NewFSSource(fsys fs.FS, name string) Source {
	return &fsSource{fsys: fsys, name: name}
}
