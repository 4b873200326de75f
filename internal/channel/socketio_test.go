package channel

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/specialistvlad/superlumen/internal/uiloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSocket records emitted envelopes and lets tests play the host.
type fakeSocket struct {
	mu        sync.Mutex
	emitted   []emitted
	listeners map[string][]func(args ...any)
	closed    bool
	// autoReply, when set, answers every emitted request inline.
	autoReply func(name string, env envelope) any
}

type emitted struct {
	name string
	env  envelope
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{listeners: make(map[string][]func(args ...any))}
}

func (f *fakeSocket) transport() transport {
	return transport{
		emit: func(name string, msg any) {
			env := msg.(envelope)
			f.mu.Lock()
			f.emitted = append(f.emitted, emitted{name: name, env: env})
			reply := f.autoReply
			f.mu.Unlock()
			if reply != nil {
				f.fire(name, reply(name, env))
			}
		},
		listen: func(name string, fn func(args ...any)) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.listeners[name] = append(f.listeners[name], fn)
		},
		close: func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.closed = true
		},
	}
}

// fire delivers a reply the way the socket.io client does: a decoded JSON map.
func (f *fakeSocket) fire(name string, msg any) {
	b, _ := json.Marshal(msg)
	var decoded map[string]any
	_ = json.Unmarshal(b, &decoded)

	f.mu.Lock()
	ls := append([]func(args ...any){}, f.listeners[name]...)
	f.mu.Unlock()
	for _, l := range ls {
		l(decoded)
	}
}

func (f *fakeSocket) last() emitted {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emitted[len(f.emitted)-1]
}

func newTestSocket(f *fakeSocket, loop Poster) *SocketIO {
	return newSocketIO(f.transport(), loop, slog.Default(), 50*time.Millisecond)
}

func TestSocketIO_RequestDemuxesById(t *testing.T) {
	// Arrange
	f := newFakeSocket()
	loop := uiloop.New()
	ch := newTestSocket(f, loop)

	var replies []string
	record := func(resp Response, err error) {
		require.NoError(t, err)
		var s string
		require.NoError(t, resp.Decode(&s))
		replies = append(replies, s)
	}

	// Act
	require.NoError(t, ch.Request(context.Background(), "Wire", "first", record))
	first := f.last()
	require.NoError(t, ch.Request(context.Background(), "Wire", "second", record))
	second := f.last()

	f.fire("Wire", map[string]any{"id": second.env.ID, "payload": "two"})
	f.fire("Wire", map[string]any{"id": first.env.ID, "payload": "one"})
	f.fire("Wire", map[string]any{"id": first.env.ID, "payload": "duplicate"})
	loop.Drain()

	// Assert
	assert.NotEqual(t, first.env.ID, second.env.ID)
	assert.JSONEq(t, `"first"`, string(first.env.Payload))
	assert.Equal(t, []string{"two", "one"}, replies)
	assert.Len(t, f.listeners["Wire"], 1, "one listener per channel name")
}

func TestSocketIO_HostError(t *testing.T) {
	f := newFakeSocket()
	loop := uiloop.New()
	ch := newTestSocket(f, loop)

	var got error
	require.NoError(t, ch.Request(context.Background(), "Wire", nil, func(_ Response, err error) { got = err }))
	f.fire("Wire", map[string]any{"id": f.last().env.ID, "error": "denied"})
	loop.Drain()

	require.Error(t, got)
	assert.Contains(t, got.Error(), "denied")
}

func TestSocketIO_SendSync(t *testing.T) {
	f := newFakeSocket()
	f.autoReply = func(name string, env envelope) any {
		return map[string]any{"id": env.ID, "payload": map[string]any{"networks": []any{}}}
	}
	ch := newTestSocket(f, uiloop.New())

	resp, err := ch.SendSync(context.Background(), "config.read", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"networks":[]}`, string(resp.Raw()))
}

func TestSocketIO_SendSyncTimeout(t *testing.T) {
	f := newFakeSocket()
	ch := newTestSocket(f, uiloop.New())

	_, err := ch.SendSync(context.Background(), "Wire", nil)
	require.ErrorIs(t, err, errs.ErrTimeout)

	ch.mu.Lock()
	defer ch.mu.Unlock()
	assert.Empty(t, ch.pending)
}

func TestSocketIO_CloseFailsPending(t *testing.T) {
	f := newFakeSocket()
	loop := uiloop.New()
	ch := newTestSocket(f, loop)

	var got error
	require.NoError(t, ch.Request(context.Background(), "Wire", nil, func(_ Response, err error) { got = err }))
	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close())
	loop.Drain()

	require.ErrorIs(t, got, errs.ErrNoChannel)
	assert.True(t, f.closed)
	require.ErrorIs(t, ch.Send(context.Background(), "Wire", nil), errs.ErrNoChannel)
}

func TestSocketIO_SendHasNoListener(t *testing.T) {
	f := newFakeSocket()
	ch := newTestSocket(f, uiloop.New())

	require.NoError(t, ch.Send(context.Background(), "MainWindow.openWallet", map[string]string{"a": "b"}))
	assert.Empty(t, f.listeners)
	assert.Equal(t, "MainWindow.openWallet", f.last().name)
}

func TestDecodeEnvelope(t *testing.T) {
	env, err := decodeEnvelope(`{"id":"x","payload":1}`)
	require.NoError(t, err)
	assert.Equal(t, "x", env.ID)

	_, err = decodeEnvelope(map[string]any{"payload": 1})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = decodeEnvelope([]byte("not json"))
	require.Error(t, err)
}

func TestDial_RejectsBadURL(t *testing.T) {
	_, err := Dial(context.Background(), SocketOptions{URL: "no-scheme"}, uiloop.New())
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}
