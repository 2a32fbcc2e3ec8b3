package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vertextrade/storefront/pkg/logger"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInWithPassword exchanges email and password for a session, persists
// it and emits SIGNED_IN.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, &APIError{Status: http.StatusBadRequest, Code: "validation_failed", Message: "missing email or password"}
	}

	var s Session
	q := url.Values{"grant_type": {"password"}}
	if err := c.do(ctx, http.MethodPost, authPath+"/token", q, c.anonKey, credentials{email, password}, &s); err != nil {
		return nil, err
	}
	if err := normalize(&s, c.clock.Now().Unix()); err != nil {
		return nil, err
	}

	c.commit(ctx, EventSignedIn, &s)
	return &s, nil
}

// SignUp registers a new account. When the backend confirms accounts
// automatically the returned session is persisted and SIGNED_IN emitted.
func (c *Client) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, &APIError{Status: http.StatusBadRequest, Code: "validation_failed", Message: "missing email or password"}
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, authPath+"/signup", nil, c.anonKey, credentials{email, password}, &raw); err != nil {
		return nil, err
	}

	res := &SignUpResult{}
	var s Session
	if err := json.Unmarshal(raw, &s); err == nil && s.AccessToken != "" {
		if err := normalize(&s, c.clock.Now().Unix()); err != nil {
			return nil, err
		}
		res.Session = &s
		res.User = s.User
		c.commit(ctx, EventSignedIn, &s)
		return res, nil
	}

	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}
	if u.ID != "" {
		res.User = &u
	}
	return res, nil
}

// SignOut revokes the session remotely, then always clears it locally and
// emits SIGNED_OUT. The remote error, if any, is returned afterwards.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	current := c.session
	c.mu.Unlock()

	var remoteErr error
	if current != nil {
		remoteErr = c.do(ctx, http.MethodPost, authPath+"/logout", nil, current.AccessToken, nil, nil)
		if remoteErr != nil {
			c.log.WarnContext(ctx, "remote sign-out failed", logger.Error(remoteErr))
		}
	}

	c.commit(ctx, EventSignedOut, nil)
	return remoteErr
}

// GetSession returns the current session or nil. A session at or near
// expiry is refreshed first; if that fails it is removed and nil returned.
func (c *Client) GetSession(ctx context.Context) (*Session, error) {
	s, err := c.restore(ctx)
	if err != nil || s == nil {
		return nil, err
	}

	if c.clock.Now().Add(expiryLeeway).Before(s.Expiry()) {
		return s, nil
	}

	refreshed, err := c.refresh(ctx, s)
	if err != nil {
		c.log.WarnContext(ctx, "session refresh failed", logger.Error(err), logger.UserID(s.UserID()))
		c.commitIfCurrent(ctx, s, EventSignedOut, nil)
		return nil, nil
	}
	c.commitIfCurrent(ctx, s, EventTokenRefreshed, refreshed)
	return refreshed, nil
}

// restore loads the persisted session once per client.
func (c *Client) restore(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClientClosed
	}
	if c.loaded {
		s := c.session
		c.mu.Unlock()
		return s, nil
	}
	c.mu.Unlock()

	data, err := c.storage.Load(ctx, c.storageKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s *Session
	if len(data) > 0 {
		var stored Session
		if err := json.Unmarshal(data, &stored); err != nil || normalize(&stored, c.clock.Now().Unix()) != nil {
			c.log.WarnContext(ctx, "discarding invalid stored session")
			_ = c.storage.Remove(ctx, c.storageKey)
		} else {
			s = &stored
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		// a commit raced with the load and wins
		return c.session, nil
	}
	c.loaded = true
	c.session = s
	// near-expiry sessions are refreshed by the caller right away
	if s != nil && c.clock.Now().Add(expiryLeeway).Before(s.Expiry()) {
		c.scheduleRefreshLocked(s)
	}
	return s, nil
}

func (c *Client) refresh(ctx context.Context, s *Session) (*Session, error) {
	if s.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	var next Session
	q := url.Values{"grant_type": {"refresh_token"}}
	body := map[string]string{"refresh_token": s.RefreshToken}
	if err := c.do(ctx, http.MethodPost, authPath+"/token", q, c.anonKey, body, &next); err != nil {
		return nil, err
	}
	if err := normalize(&next, c.clock.Now().Unix()); err != nil {
		return nil, err
	}
	if next.User == nil {
		next.User = s.User
	}
	return &next, nil
}

// commit replaces the session, persists it and notifies listeners. A nil
// session clears everything.
func (c *Client) commit(ctx context.Context, event AuthEvent, s *Session) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	c.commitLocked(ctx, event, s)
}

// commitIfCurrent commits only when prev is still the current session, so a
// refresh result never overwrites a newer sign-in or sign-out.
func (c *Client) commitIfCurrent(ctx context.Context, prev *Session, event AuthEvent, s *Session) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	current := c.session
	c.mu.Unlock()
	if current != prev {
		return
	}
	c.commitLocked(ctx, event, s)
}

func (c *Client) commitLocked(ctx context.Context, event AuthEvent, s *Session) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.session = s
	c.loaded = true
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
		c.refreshTimer = nil
	}
	if s != nil {
		c.scheduleRefreshLocked(s)
	}
	c.mu.Unlock()

	c.persist(ctx, s)
	c.emit(event, s)
}

func (c *Client) persist(ctx context.Context, s *Session) {
	ctx = context.WithoutCancel(ctx)
	if s == nil {
		if err := c.storage.Remove(ctx, c.storageKey); err != nil {
			c.log.ErrorContext(ctx, "failed to remove stored session", logger.Error(err))
		}
		return
	}
	data, err := json.Marshal(s)
	if err == nil {
		err = c.storage.Save(ctx, c.storageKey, data)
	}
	if err != nil {
		c.log.ErrorContext(ctx, "failed to persist session", logger.Error(err))
	}
}

// scheduleRefreshLocked arms the auto-refresh timer. Caller holds c.mu.
func (c *Client) scheduleRefreshLocked(s *Session) {
	if s.RefreshToken == "" || s.ExpiresAt == 0 {
		return
	}
	d := max(s.Expiry().Sub(c.clock.Now())-c.refreshMargin, 0)
	c.refreshTimer = c.clock.AfterFunc(d, func() { c.autoRefresh(s) })
}

func (c *Client) autoRefresh(s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), c.requestTimeout)
	defer cancel()

	c.mu.Lock()
	stale := c.closed || c.session != s
	c.mu.Unlock()
	if stale {
		return
	}

	next, err := c.refresh(ctx, s)
	if err != nil {
		c.log.Warn("auto-refresh failed, signing out", logger.Error(err), logger.UserID(s.UserID()))
		c.commitIfCurrent(ctx, s, EventSignedOut, nil)
		return
	}
	c.commitIfCurrent(ctx, s, EventTokenRefreshed, next)
}
