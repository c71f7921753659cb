package webui

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex65536/fenview/internal/posbrowser"
	"github.com/alex65536/fenview/internal/util/slogx"
)

const (
	startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	e4FEN    = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"
	endFEN   = "8/8/4k3/8/8/4K3/4P3/8 w - - 0 60"
)

const testData = `{"FEN":"` + startFEN + `","score":"+0.2"}
{"FEN":"` + e4FEN + `","score":"-0.3"}
not a record
{"FEN":"` + endFEN + `","score":"+M5"}
`

var testKey = bytes.Repeat([]byte{42}, 32)

func readyLoader(t *testing.T, data string) *posbrowser.Loader {
	t.Helper()
	fsys := fstest.MapFS{"fen.txt": {Data: []byte(data)}}
	l := posbrowser.NewLoader(slogx.DiscardLogger(), posbrowser.NewFSSource(fsys, "fen.txt"))
	l.Start(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := l.Wait(ctx)
	require.NoError(t, err)
	return l
}

type gateSource struct {
	gate chan struct{}
	data string
}

func (s *gateSource) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-s.gate:
		return io.NopCloser(strings.NewReader(s.data)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *gateSource) String() string { return "gate" }

func newTestServer(t *testing.T, loader *posbrowser.Loader, o Options) *httptest.Server {
	t.Helper()
	o.InsecureCookies = true
	mux := http.NewServeMux()
	require.NoError(t, Handle(slogx.DiscardLogger(), mux, "", Config{
		Loader:   loader,
		ServerID: "test-server",
		CSRFKey:  testKey,
	}, o))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, c *http.Client, url string) (int, string) {
	t.Helper()
	rsp, err := c.Get(url)
	require.NoError(t, err)
	defer rsp.Body.Close()
	body, err := io.ReadAll(rsp.Body)
	require.NoError(t, err)
	return rsp.StatusCode, string(body)
}

func TestViewerFirst(t *testing.T) {
	srv := newTestServer(t, readyLoader(t, testData), Options{})
	code, body := get(t, newClient(t), srv.URL+"/")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "FEN 1 <small>of 3</small>")
	assert.Contains(t, body, "Engine Eval: &#43;0.2")
	assert.Contains(t, body, `id="prev" href="/pos/3"`)
	assert.Contains(t, body, `id="next" href="/pos/2"`)
	assert.Contains(t, body, "orientation-white")
	assert.Contains(t, body, "♜")
	assert.NotContains(t, body, "Loading positions")
}

func TestViewerPosition(t *testing.T) {
	srv := newTestServer(t, readyLoader(t, testData), Options{})
	c := newClient(t)

	code, body := get(t, c, srv.URL+"/pos/2")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "FEN 2 <small>of 3</small>")
	assert.Contains(t, body, "Engine Eval: -0.3")
	assert.Contains(t, body, "orientation-black")
	assert.Contains(t, body, `id="prev" href="/pos/1"`)
	assert.Contains(t, body, `id="next" href="/pos/3"`)

	code, body = get(t, c, srv.URL+"/pos/3")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Engine Eval: &#43;M5")
	assert.Contains(t, body, `id="next" href="/pos/1"`)

	for _, path := range []string{"/pos/0", "/pos/4", "/pos/abc", "/nowhere"} {
		code, _ := get(t, c, srv.URL+path)
		assert.Equal(t, http.StatusNotFound, code, path)
	}
}

func TestViewerEmpty(t *testing.T) {
	srv := newTestServer(t, readyLoader(t, "garbage\n\n"), Options{})
	c := newClient(t)
	code, body := get(t, c, srv.URL+"/")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "FEN 1 <small>of 0</small>")
	assert.Contains(t, body, "Engine Eval: ")
	assert.Contains(t, body, `class="button disabled"`)
	assert.NotContains(t, body, `id="next"`)
	assert.NotContains(t, body, `action="/jump"`)

	code, _ = get(t, c, srv.URL+"/pos/1")
	assert.Equal(t, http.StatusOK, code)
	code, _ = get(t, c, srv.URL+"/pos/2")
	assert.Equal(t, http.StatusNotFound, code)
}

var csrfFieldRe = regexp.MustCompile(`name="gorilla.csrf.Token" value="([^"]+)"`)

func TestJump(t *testing.T) {
	srv := newTestServer(t, readyLoader(t, testData), Options{})
	c := newClient(t)

	code, body := get(t, c, srv.URL+"/pos/2")
	require.Equal(t, http.StatusOK, code)
	m := csrfFieldRe.FindStringSubmatch(body)
	require.NotNil(t, m)
	token := m[1]

	post := func(vals url.Values) (*http.Response, string) {
		rsp, err := c.PostForm(srv.URL+"/jump", vals)
		require.NoError(t, err)
		defer rsp.Body.Close()
		data, err := io.ReadAll(rsp.Body)
		require.NoError(t, err)
		return rsp, string(data)
	}

	rsp, _ := post(url.Values{"gorilla.csrf.Token": {token}, "pos": {"3"}, "from": {"2"}})
	assert.Equal(t, http.StatusSeeOther, rsp.StatusCode)
	assert.Equal(t, "/pos/3", rsp.Header.Get("Location"))

	rsp, body = post(url.Values{"gorilla.csrf.Token": {token}, "pos": {"9"}, "from": {"2"}})
	assert.Equal(t, http.StatusOK, rsp.StatusCode)
	assert.Contains(t, body, "no position 9, there are 3 positions")
	assert.Contains(t, body, "FEN 2 <small>of 3</small>")

	rsp, body = post(url.Values{"gorilla.csrf.Token": {token}, "pos": {"x"}})
	assert.Equal(t, http.StatusOK, rsp.StatusCode)
	assert.Contains(t, body, "position must be a number")
	assert.Contains(t, body, "FEN 1 <small>of 3</small>")

	rsp, _ = post(url.Values{"pos": {"3"}})
	assert.Equal(t, http.StatusForbidden, rsp.StatusCode)
}

func TestLoadingAndReady(t *testing.T) {
	src := &gateSource{gate: make(chan struct{}), data: testData}
	loader := posbrowser.NewLoader(slogx.DiscardLogger(), src)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loader.Start(ctx)
	srv := newTestServer(t, loader, Options{})
	c := newClient(t)

	code, body := get(t, c, srv.URL+"/pos/2")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Loading positions")
	assert.Contains(t, body, `data-ws="/ws/ready"`)
	assert.Contains(t, body, `class="button disabled"`)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/ready", nil)
	require.NoError(t, err)
	defer conn.Close()

	close(src.gate)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	kind, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.Equal(t, "ready", string(msg))

	code, body = get(t, c, srv.URL+"/pos/2")
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, body, "Loading positions")
	assert.Contains(t, body, "FEN 2 <small>of 3</small>")
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, readyLoader(t, testData), Options{RPSLimit: 0.001, RPSBurst: 1})
	c := newClient(t)
	code, _ := get(t, c, srv.URL+"/")
	assert.Equal(t, http.StatusOK, code)
	code, _ = get(t, c, srv.URL+"/")
	assert.Equal(t, http.StatusTooManyRequests, code)

	// Static files are not limited.
	code, _ = get(t, c, srv.URL+"/css/style.css")
	assert.Equal(t, http.StatusOK, code)
}

func TestStatic(t *testing.T) {
	srv := newTestServer(t, readyLoader(t, testData), Options{})
	rsp, err := newClient(t).Get(srv.URL + "/js/ready.js")
	require.NoError(t, err)
	defer rsp.Body.Close()
	assert.Equal(t, http.StatusOK, rsp.StatusCode)
	assert.Equal(t, "max-age=86400, public", rsp.Header.Get("Cache-Control"))
}

func TestHandleBadConfig(t *testing.T) {
	loader := readyLoader(t, testData)
	mux := http.NewServeMux()
	log := slogx.DiscardLogger()
	assert.Error(t, Handle(log, mux, "", Config{Loader: loader, CSRFKey: []byte("short")}, Options{}))
	assert.Error(t, Handle(log, mux, "", Config{CSRFKey: testKey}, Options{}))
	assert.Error(t, Handle(log, mux, "", Config{Loader: loader, CSRFKey: testKey}, Options{DarkSquare: "brown"}))
	assert.Error(t, Handle(log, mux, "", Config{Loader: loader, CSRFKey: testKey}, Options{StaticDir: "/does/not/exist"}))
}
