package channel

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/superlumen/internal/ctxlog"
	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Defaults for SocketOptions.
const (
	DefaultConnectTimeout = 15 * time.Second
	DefaultSyncTimeout    = 2 * time.Second
)

// SocketOptions configures Dial.
type SocketOptions struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
	// SyncTimeout bounds SendSync.
	SyncTimeout time.Duration
}

// envelope is what travels over the socket in both directions. Replies echo
// the request id.
type envelope struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type result struct {
	resp Response
	err  error
}

type pending struct {
	onReply ReplyFunc
	wait    chan result
}

// transport is the slice of the socket.io client the channel needs.
type transport struct {
	emit   func(name string, msg any)
	listen func(name string, fn func(args ...any))
	close  func()
}

// SocketIO is a Channel over a socket.io connection to the host.
type SocketIO struct {
	loop        Poster
	tr          transport
	logger      *slog.Logger
	syncTimeout time.Duration

	mu        sync.Mutex
	listening map[string]bool
	pending   map[string]pending
	closed    bool
}

var _ Channel = (*SocketIO)(nil)

// Dial connects to the host and returns once the socket is connected.
func Dial(ctx context.Context, opts SocketOptions, loop Poster) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("transport", "socketio", "url", opts.URL)
	logger.Info("Connecting to host...")

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: host URL '%s' needs a scheme and a host", errs.ErrInvalidArgument, opts.URL)
	}

	so := socket.DefaultOptions()
	if parsedURL.Path != "" {
		so.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		so.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	so.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, so)
	io := manager.Socket(opts.Namespace, so)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to host", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(args ...any) {
		err := fmt.Errorf("%w: connect error", errs.ErrNoChannel)
		if len(args) > 0 {
			if e, ok := args[0].(error); ok {
				err = fmt.Errorf("%w: %v", errs.ErrNoChannel, e)
			}
		}
		connectChan <- err
	})

	io.Connect()

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("%w: no connection after %v", errs.ErrTimeout, timeout)
	}

	tr := transport{
		emit: func(name string, msg any) { io.Emit(name, msg) },
		listen: func(name string, fn func(args ...any)) {
			io.On(types.EventName(name), fn)
		},
		close: func() { io.Disconnect() },
	}
	return newSocketIO(tr, loop, logger, opts.SyncTimeout), nil
}

func newSocketIO(tr transport, loop Poster, logger *slog.Logger, syncTimeout time.Duration) *SocketIO {
	if syncTimeout <= 0 {
		syncTimeout = DefaultSyncTimeout
	}
	return &SocketIO{
		loop:        loop,
		tr:          tr,
		logger:      logger,
		syncTimeout: syncTimeout,
		listening:   make(map[string]bool),
		pending:     make(map[string]pending),
	}
}

// emit registers p under a fresh request id and writes the envelope.
func (s *SocketIO) emit(name string, payload any, p *pending) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload for '%s': %w", name, err)
	}
	id := uuid.NewString()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: channel is closed", errs.ErrNoChannel)
	}
	if p != nil {
		s.pending[id] = *p
		if !s.listening[name] {
			s.listening[name] = true
			s.tr.listen(name, func(args ...any) { s.receive(name, args) })
		}
	}
	s.mu.Unlock()

	s.logger.Debug("Emitting message", "channel", name, "request_id", id)
	s.tr.emit(name, envelope{ID: id, Payload: raw})
	return id, nil
}

// receive matches an incoming envelope to the request waiting for it.
func (s *SocketIO) receive(name string, args []any) {
	if len(args) == 0 {
		s.logger.Warn("Dropping empty reply", "channel", name)
		return
	}
	env, err := decodeEnvelope(args[0])
	if err != nil {
		s.logger.Warn("Dropping malformed reply", "channel", name, "error", err)
		return
	}

	s.mu.Lock()
	p, ok := s.pending[env.ID]
	delete(s.pending, env.ID)
	s.mu.Unlock()
	if !ok {
		s.logger.Debug("Ignoring reply with no pending request", "channel", name, "request_id", env.ID)
		return
	}

	res := result{resp: RawResponse(env.Payload)}
	if env.Error != "" {
		res = result{err: fmt.Errorf("host error on '%s': %s", name, env.Error)}
	}
	s.deliver(p, res)
}

func (s *SocketIO) deliver(p pending, res result) {
	if p.wait != nil {
		p.wait <- res
		return
	}
	if !s.loop.Post(func() { p.onReply(res.resp, res.err) }) {
		s.logger.Warn("UI loop stopped, reply dropped")
	}
}

func decodeEnvelope(arg any) (envelope, error) {
	var raw []byte
	switch v := arg.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return envelope{}, err
		}
		raw = b
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, err
	}
	if env.ID == "" {
		return envelope{}, fmt.Errorf("%w: reply has no request id", errs.ErrInvalidArgument)
	}
	return env, nil
}

// Send implements Channel.
func (s *SocketIO) Send(_ context.Context, name string, payload any) error {
	_, err := s.emit(name, payload, nil)
	return err
}

// Request implements Channel.
func (s *SocketIO) Request(_ context.Context, name string, payload any, onReply ReplyFunc) error {
	if onReply == nil {
		return fmt.Errorf("%w: reply callback is required", errs.ErrInvalidArgument)
	}
	_, err := s.emit(name, payload, &pending{onReply: onReply})
	return err
}

// SendSync implements Channel.
func (s *SocketIO) SendSync(ctx context.Context, name string, payload any) (Response, error) {
	wait := make(chan result, 1)
	id, err := s.emit(name, payload, &pending{wait: wait})
	if err != nil {
		return Response{}, err
	}

	timer := time.NewTimer(s.syncTimeout)
	defer timer.Stop()
	select {
	case res := <-wait:
		return res.resp, res.err
	case <-ctx.Done():
		s.forget(id)
		return Response{}, ctx.Err()
	case <-timer.C:
		s.forget(id)
		return Response{}, fmt.Errorf("%w: no reply on '%s' after %v", errs.ErrTimeout, name, s.syncTimeout)
	}
}

func (s *SocketIO) forget(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// Close disconnects and fails every outstanding request with
// errs.ErrNoChannel.
func (s *SocketIO) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	outstanding := s.pending
	s.pending = make(map[string]pending)
	s.mu.Unlock()

	s.tr.close()
	for _, p := range outstanding {
		s.deliver(p, result{err: fmt.Errorf("%w: channel closed", errs.ErrNoChannel)})
	}
	return nil
}
