package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alexanderramin/rotina/internal/domain"
)

// httpClient implements Client over the backend's REST API.
type httpClient struct {
	endpoint string
	http     *http.Client

	mu       sync.RWMutex
	identity Identity
}

// NewHTTPClient creates a Client for the backend at endpoint, e.g.
// "https://sync.example.com". The client holds no session until Login.
func NewHTTPClient(endpoint string) Client {
	return &httpClient{
		endpoint: endpoint,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
			Timeout: 30 * time.Second,
		},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
}

func (c *httpClient) Login(ctx context.Context, email, password string) (Identity, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return Identity{}, fmt.Errorf("remote: marshal login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/auth/v1/token", bytes.NewReader(body))
	if err != nil {
		return Identity{}, fmt.Errorf("remote: create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return Identity{}, ErrInvalidCredentials
	default:
		return Identity{}, classifyStatus(resp.StatusCode)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return Identity{}, fmt.Errorf("%w: decoding login response: %v", ErrUnknown, err)
	}

	id := Identity{UserID: lr.UserID, Email: lr.Email, Token: lr.AccessToken}
	c.mu.Lock()
	c.identity = id
	c.mu.Unlock()
	return id, nil
}

func (c *httpClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity.Token
}

func (c *httpClient) collectionURL(col domain.Collection) string {
	return c.endpoint + "/v1/collections/" + string(col)
}

func (c *httpClient) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, fmt.Errorf("remote: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func (c *httpClient) Save(ctx context.Context, col domain.Collection, data []byte) error {
	if data == nil {
		data = []byte("[]")
	}
	resp, err := c.do(ctx, http.MethodPut, c.collectionURL(col), data)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return classifyStatus(resp.StatusCode)
	}
	return nil
}

func (c *httpClient) Load(ctx context.Context, col domain.Collection) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, c.collectionURL(col), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// The user has never saved this collection.
		return []byte("[]"), nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	return data, nil
}

func (c *httpClient) Delete(ctx context.Context, col domain.Collection, id int64) error {
	url := c.collectionURL(col) + "/" + strconv.FormatInt(id, 10)
	resp, err := c.do(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return classifyStatus(resp.StatusCode)
	}
	return nil
}

// classifyStatus maps a non-success HTTP status to the error taxonomy.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusForbidden:
		return ErrPermissionDenied
	case status == http.StatusUnauthorized:
		return ErrPermissionDenied
	case status >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	default:
		return fmt.Errorf("%w: status %d", ErrUnknown, status)
	}
}

// IsRetryable reports whether err represents a transient condition worth
// retrying once connectivity returns.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
