package remote

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/alexanderramin/rotina/internal/domain"
)

// Subscribe opens a realtime websocket for one collection and invokes fn
// with the full payload on every frame. Frames include echoes of this
// client's own writes; deduplication is the caller's job. The connection
// reconnects on transient failures until stopped.
func (c *httpClient) Subscribe(ctx context.Context, col domain.Collection, fn SubscribeFunc) (StopFunc, error) {
	wsURL, err := c.realtimeURL(col)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	// Dial once up front so a bad endpoint or denied permission surfaces
	// to the caller instead of being swallowed by the retry loop.
	conn, err := c.dial(ctx, wsURL)
	if err != nil {
		cancel()
		return nil, err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.readLoop(ctx, wsURL, conn, fn)
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
	return stop, nil
}

func (c *httpClient) realtimeURL(col domain.Collection) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", ErrUnknown
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/v1/realtime"
	u.RawQuery = url.Values{"collection": {string(col)}}.Encode()
	return u.String(), nil
}

func (c *httpClient) dial(ctx context.Context, wsURL string) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, resp, err := websocket.Dial(dialCtx, wsURL, &websocket.DialOptions{
		HTTPHeader: map[string][]string{
			"Authorization": {"Bearer " + c.token()},
		},
	})
	if err != nil {
		if resp != nil {
			return nil, classifyStatus(resp.StatusCode)
		}
		return nil, ErrUnavailable
	}
	// Realtime frames are whole collections; the default 32KB cap is too
	// small once a few years of transactions accumulate.
	conn.SetReadLimit(16 * 1024 * 1024)
	return conn, nil
}

// readLoop consumes frames from conn, redialing with backoff when the
// connection drops, until ctx is cancelled.
func (c *httpClient) readLoop(ctx context.Context, wsURL string, conn *websocket.Conn, fn SubscribeFunc) {
	backoff := time.Second
	for {
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				break
			}
			backoff = time.Second
			fn(data)
		}
		conn.Close(websocket.StatusNormalClosure, "")

		if ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}

		next, err := c.dial(ctx, wsURL)
		if err != nil {
			// Keep a dead conn so the inner loop fails fast into the next
			// backoff round.
			continue
		}
		conn = next
	}
}
