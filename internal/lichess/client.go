package lichess

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alex65536/fenview/internal/util/backoff"
	"github.com/alex65536/fenview/internal/util/httputil"
	"github.com/alex65536/fenview/internal/util/slogx"
)

const DefaultEndpoint = "https://lichess.org"

// gameSeparator separates games in the export and in the files written by WriteGames.
const gameSeparator = "\n\n\n"

type ClientOptions struct {
	Endpoint string
	Backoff  backoff.Options
}

func (o *ClientOptions) FillDefaults() {
	if o.Endpoint == "" {
		o.Endpoint = DefaultEndpoint
	}
	o.Endpoint = strings.TrimRight(o.Endpoint, "/")
	if o.Backoff.MaxAttempts == 0 {
		o.Backoff.MaxAttempts = 5
	}
}

type Client struct {
	o      ClientOptions
	log    *slog.Logger
	client *http.Client
}

func NewClient(log *slog.Logger, o ClientOptions, httpClient *http.Client) (*Client, error) {
	o.FillDefaults()
	if err := o.Backoff.Validate(); err != nil {
		return nil, fmt.Errorf("backoff: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{o: o, log: log, client: httpClient}, nil
}

func retryable(err error) bool {
	code := httputil.StatusCode(err)
	return code == http.StatusTooManyRequests || code >= 500
}

func (c *Client) doGames(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/x-chess-pgn")
	rsp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, rsp.Body)
		_ = rsp.Body.Close()
	}()
	if err := httputil.ErrorFromResponse(rsp); err != nil {
		return "", fmt.Errorf("status: %w", err)
	}
	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(data), nil
}

// Games downloads the most recent games of the user in PGN format.
func (c *Client) Games(ctx context.Context, user string, maxGames int) ([]string, error) {
	if user == "" {
		return nil, fmt.Errorf("empty user name")
	}
	if maxGames <= 0 {
		return nil, fmt.Errorf("non-positive number of games")
	}
	q := url.Values{}
	q.Set("max", strconv.Itoa(maxGames))
	q.Set("pgnInJson", "false")
	u := c.o.Endpoint + "/api/games/user/" + url.PathEscape(user) + "?" + q.Encode()

	b, err := backoff.New(c.o.Backoff)
	if err != nil {
		return nil, fmt.Errorf("backoff: %w", err)
	}
	log := c.log.With(slog.String("user", user))
	for {
		log.Info("fetching games", slog.Int("max", maxGames))
		data, err := c.doGames(ctx, u)
		if err == nil {
			games := SplitGames(data)
			log.Info("games fetched", slog.Int("count", len(games)))
			return games, nil
		}
		if !retryable(err) {
			return nil, err
		}
		log.Warn("fetch failed, retrying", slogx.Err(err))
		if err := b.Retry(ctx, err); err != nil {
			return nil, err
		}
	}
}

func SplitGames(data string) []string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	var games []string
	for _, g := range strings.Split(strings.TrimSpace(data), gameSeparator) {
		g = strings.TrimSpace(g)
		if g != "" {
			games = append(games, g)
		}
	}
	return games
}

func WriteGames(w io.Writer, games []string) error {
	for _, g := range games {
		if _, err := io.WriteString(w, g+gameSeparator); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return nil
}

func ReadGames(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return SplitGames(string(data)), nil
}
