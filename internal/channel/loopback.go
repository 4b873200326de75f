package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/specialistvlad/superlumen/internal/ctxlog"
	"github.com/specialistvlad/superlumen/internal/errs"
)

// HandlerFunc answers one message on a loopback channel. The payload arrives
// JSON-encoded, exactly as it would over the wire.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Loopback is an in-process Channel. Send and Request run their handler on
// the UI loop; SendSync runs it inline.
type Loopback struct {
	loop Poster

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	closed   bool
}

var _ Channel = (*Loopback)(nil)

// NewLoopback returns a loopback channel delivering replies through loop.
func NewLoopback(loop Poster) *Loopback {
	return &Loopback{
		loop:     loop,
		handlers: make(map[string]HandlerFunc),
	}
}

// Handle registers h for the named channel. Registering a name twice is a
// programming error and panics.
func (l *Loopback) Handle(name string, h HandlerFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.handlers[name]; exists {
		panic(fmt.Sprintf("channel handler '%s' is already registered", name))
	}
	l.handlers[name] = h
}

func (l *Loopback) lookup(name string) (HandlerFunc, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, fmt.Errorf("%w: channel is closed", errs.ErrNoChannel)
	}
	h, ok := l.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: no handler for channel '%s'", errs.ErrNotFound, name)
	}
	return h, nil
}

func (l *Loopback) invoke(ctx context.Context, h HandlerFunc, name string, payload any) (Response, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("failed to encode payload for '%s': %w", name, err)
	}
	out, err := h(ctx, raw)
	if err != nil {
		return Response{}, err
	}
	return NewResponse(out)
}

// Send implements Channel.
func (l *Loopback) Send(ctx context.Context, name string, payload any) error {
	h, err := l.lookup(name)
	if err != nil {
		return err
	}
	logger := ctxlog.FromContext(ctx).With("channel", name)
	if !l.loop.Post(func() {
		if _, err := l.invoke(ctx, h, name, payload); err != nil {
			logger.Warn("Loopback handler failed", "error", err)
		}
	}) {
		return fmt.Errorf("%w: ui loop stopped", errs.ErrNoChannel)
	}
	return nil
}

// Request implements Channel. Unknown channels are reported to onReply.
func (l *Loopback) Request(ctx context.Context, name string, payload any, onReply ReplyFunc) error {
	if onReply == nil {
		return fmt.Errorf("%w: reply callback is required", errs.ErrInvalidArgument)
	}
	if err := validName(name); err != nil {
		return err
	}
	var task func()
	if h, err := l.lookup(name); err != nil {
		task = func() { onReply(Response{}, err) }
	} else {
		task = func() { onReply(l.invoke(ctx, h, name, payload)) }
	}
	if !l.loop.Post(task) {
		return fmt.Errorf("%w: ui loop stopped", errs.ErrNoChannel)
	}
	return nil
}

// SendSync implements Channel.
func (l *Loopback) SendSync(ctx context.Context, name string, payload any) (Response, error) {
	h, err := l.lookup(name)
	if err != nil {
		return Response{}, err
	}
	return l.invoke(ctx, h, name, payload)
}

// Close implements Channel. Later calls fail with errs.ErrNoChannel.
func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}
