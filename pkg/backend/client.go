package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/vertextrade/storefront/pkg/logger"
)

const (
	authPath = "auth/v1"
	restPath = "rest/v1"

	// sessions this close to expiry are refreshed before being handed out
	expiryLeeway = 10 * time.Second
)

// Client talks to a Supabase-compatible backend: the auth API for session
// management and the data API for table reads.
type Client struct {
	baseURL        *url.URL
	anonKey        string
	http           *http.Client
	storage        SessionStorage
	storageKey     string
	clock          clockwork.Clock
	log            *slog.Logger
	refreshMargin  time.Duration
	requestTimeout time.Duration

	mu           sync.Mutex
	session      *Session
	loaded       bool
	refreshTimer clockwork.Timer
	closed       bool

	// emitMu serializes commit+notify so listeners observe backend order.
	emitMu    sync.Mutex
	lmu       sync.RWMutex
	listeners []*listener
}

type listener struct {
	id     string
	fn     AuthListener
	active bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithStorage sets where the session is persisted. Defaults to memory.
func WithStorage(s SessionStorage) Option {
	return func(c *Client) {
		if s != nil {
			c.storage = s
		}
	}
}

// WithClock injects the clock that drives expiry checks and auto-refresh.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New validates cfg and returns a ready client. The stored session, if any,
// is restored lazily on the first GetSession call.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, ErrMissingURL
	}
	if strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, ErrMissingAnonKey
	}
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, cfg.URL)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	key := cfg.StorageKey
	if key == "" {
		key = "sb-auth-token"
	}

	c := &Client{
		baseURL:        base,
		anonKey:        cfg.AnonKey,
		http:           &http.Client{Timeout: timeout},
		storage:        NewMemoryStorage(),
		storageKey:     key,
		clock:          clockwork.NewRealClock(),
		log:            logger.Discard(),
		refreshMargin:  cfg.RefreshMargin,
		requestTimeout: timeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("backend"))
	return c, nil
}

// OnAuthStateChange registers fn for every later session change. Listeners
// run synchronously in registration order, one emission at a time. The
// returned function unregisters fn and may be called any number of times.
func (c *Client) OnAuthStateChange(fn AuthListener) func() {
	l := &listener{id: uuid.NewString(), fn: fn, active: true}

	c.lmu.Lock()
	c.listeners = append(c.listeners, l)
	c.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.lmu.Lock()
			defer c.lmu.Unlock()
			l.active = false
			for i, x := range c.listeners {
				if x.id == l.id {
					c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
					break
				}
			}
		})
	}
}

// Healthcheck pings the auth API.
func (c *Client) Healthcheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, authPath+"/health", nil, c.anonKey, nil, nil)
}

// Close stops auto-refresh and drops all listeners. The stored session is
// left in place so it can be restored by the next process.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
		c.refreshTimer = nil
	}
	c.mu.Unlock()

	c.lmu.Lock()
	for _, l := range c.listeners {
		l.active = false
	}
	c.listeners = nil
	c.lmu.Unlock()
	return nil
}

func (c *Client) emit(event AuthEvent, s *Session) {
	c.lmu.RLock()
	snapshot := make([]*listener, len(c.listeners))
	copy(snapshot, c.listeners)
	c.lmu.RUnlock()

	c.log.Debug("auth state change", logger.AuthEvent(string(event)), logger.UserID(s.UserID()))

	for _, l := range snapshot {
		c.lmu.RLock()
		active := l.active
		c.lmu.RUnlock()
		if active {
			l.fn(event, s)
		}
	}
}

// bearer returns the token for authenticated data reads.
func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil && c.session.AccessToken != "" {
		return c.session.AccessToken
	}
	return c.anonKey
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one JSON request. in and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := c.clock.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "backend request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		logger.Duration(c.clock.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}
	return nil
}

type errorPayload struct {
	Msg              string          `json:"msg"`
	ErrorDescription string          `json:"error_description"`
	Message          string          `json:"message"`
	Error            string          `json:"error"`
	ErrorCode        string          `json:"error_code"`
	Code             json.RawMessage `json:"code"`
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var p errorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	for _, m := range []string{p.Msg, p.ErrorDescription, p.Message, p.Error} {
		if m != "" {
			apiErr.Message = m
			break
		}
	}

	apiErr.Code = p.ErrorCode
	if apiErr.Code == "" && len(p.Code) > 0 {
		var s string
		if json.Unmarshal(p.Code, &s) == nil {
			apiErr.Code = s
		} else {
			apiErr.Code = string(p.Code)
		}
	}
	return apiErr
}
