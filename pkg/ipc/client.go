// SPDX-License-Identifier: MPL-2.0

package ipc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hostlog/hostlog/pkg/bridge"
)

const (
	resubscribeDelay = 500 * time.Millisecond
	maxEventLine     = maxEnvelopeSize
)

type (
	// Client is the content-process end of the bridge. It implements
	// bridge.Transport. Sends from one Client are delivered in order.
	Client struct {
		baseURL string
		token   AuthToken
		sender  string
		http    *http.Client
		logger  *log.Logger

		sendMu sync.Mutex

		mu         sync.Mutex
		router     *bridge.Router
		listening  bool
		subscribed chan struct{}
		cancel     context.CancelFunc
		done       chan struct{}
	}

	// ClientOption configures a Client.
	ClientOption func(*Client)
)

// WithClientLogger sets the logger for stream errors.
func WithClientLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// NewClient returns a client for the server at addr (host:port).
func NewClient(addr string, token AuthToken, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    "http://" + addr,
		token:      token,
		sender:     uuid.NewString(),
		http:       &http.Client{},
		logger:     log.New(io.Discard),
		subscribed: make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromEnv builds a client from EnvAddr and EnvToken. It returns nil
// when either is unset. A nil getenv means os.Getenv.
func NewClientFromEnv(getenv func(string) string, opts ...ClientOption) *Client {
	if getenv == nil {
		getenv = os.Getenv
	}
	addr := getenv(EnvAddr)
	token := AuthToken(getenv(EnvToken))
	if addr == "" || token.Validate() != nil {
		return nil
	}
	return NewClient(addr, token, opts...)
}

// IsContentProcess reports whether the environment marks this process as a
// content process with a reachable coordinator.
func IsContentProcess(getenv func(string) string) bool {
	if getenv == nil {
		getenv = os.Getenv
	}
	return getenv(EnvRole) == RoleContent && getenv(EnvAddr) != "" && getenv(EnvToken) != ""
}

// IsAvailable checks the server's health endpoint.
func (c *Client) IsAvailable(ctx context.Context) bool {
	if c == nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathHealth, nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Send posts msg to the coordinator's listeners of channel.
func (c *Client) Send(ctx context.Context, channel string, msg bridge.Message) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	reply, err := c.post(ctx, pathSend, c.envelope(channel, msg))
	if err != nil {
		return err
	}
	if reply.Error != "" {
		return fmt.Errorf("send %q: %s", channel, reply.Error)
	}
	return nil
}

// Invoke calls the coordinator's handler for channel.
func (c *Client) Invoke(ctx context.Context, channel string, msg bridge.Message) (bridge.Message, error) {
	reply, err := c.post(ctx, pathInvoke, c.envelope(channel, msg))
	if err != nil {
		return nil, err
	}
	switch {
	case reply.NoHandler:
		return nil, fmt.Errorf("channel %q: %w", channel, bridge.ErrNoHandler)
	case reply.Error != "":
		return nil, &bridge.RemoteError{Channel: channel, Message: reply.Error}
	}
	return reply.Payload, nil
}

// Listen subscribes to the coordinator's broadcast stream and dispatches
// every message into r. The stream is re-opened after a failure until Close.
func (c *Client) Listen(r *bridge.Router) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.router = r
	if c.listening {
		return
	}
	c.listening = true

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.subscribeLoop(ctx)
}

// Subscribed is closed once the first event stream is open.
func (c *Client) Subscribed() <-chan struct{} { return c.subscribed }

// Close stops the event stream.
func (c *Client) Close() error {
	c.mu.Lock()
	cancel, listening := c.cancel, c.listening
	c.mu.Unlock()

	if !listening {
		return nil
	}
	cancel()
	<-c.done
	return nil
}

func (c *Client) envelope(channel string, msg bridge.Message) Envelope {
	return Envelope{ID: uuid.NewString(), Channel: channel, Sender: c.sender, Payload: msg}
}

func (c *Client) post(ctx context.Context, path string, env Envelope) (*Reply, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server error (%d): %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var reply Reply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &reply, nil
}

func (c *Client) subscribeLoop(ctx context.Context) {
	defer close(c.done)

	var once sync.Once
	for {
		err := c.subscribe(ctx, func() { once.Do(func() { close(c.subscribed) }) })
		if ctx.Err() != nil {
			return
		}
		c.logger.Warn("ipc event stream closed", "err", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(resubscribeDelay):
		}
	}
}

func (c *Client) subscribe(ctx context.Context, onOpen func()) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathEvents, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("subscribe: status %d", resp.StatusCode)
	}
	onOpen()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventLine)
	for scanner.Scan() {
		var env Envelope
		if err := json.Unmarshal(scanner.Bytes(), &env); err != nil {
			c.logger.Warn("skipping malformed event", "err", err)
			continue
		}
		c.mu.Lock()
		r := c.router
		c.mu.Unlock()
		if r != nil {
			r.Dispatch(ctx, env.Channel, env.Payload)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return errors.New("stream ended")
}
