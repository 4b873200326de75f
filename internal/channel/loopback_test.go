package channel

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/specialistvlad/superlumen/internal/uiloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(_ context.Context, payload json.RawMessage) (any, error) {
	return payload, nil
}

func TestLoopback_RequestRepliesOnLoop(t *testing.T) {
	// Arrange
	loop := uiloop.New()
	ch := NewLoopback(loop)
	ch.Handle("Echo", echo)

	var got string
	calls := 0

	// Act
	err := ch.Request(context.Background(), "Echo", "hello", func(resp Response, err error) {
		calls++
		require.NoError(t, err)
		require.NoError(t, resp.Decode(&got))
	})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 0, calls, "reply must not be delivered synchronously")
	loop.Drain()
	assert.Equal(t, 1, calls)
	assert.Equal(t, "hello", got)
}

func TestLoopback_UnknownChannel(t *testing.T) {
	loop := uiloop.New()
	ch := NewLoopback(loop)

	var replyErr error
	require.NoError(t, ch.Request(context.Background(), "Missing", nil, func(_ Response, err error) {
		replyErr = err
	}))
	loop.Drain()
	require.ErrorIs(t, replyErr, errs.ErrNotFound)

	_, err := ch.SendSync(context.Background(), "Missing", nil)
	require.ErrorIs(t, err, errs.ErrNotFound)

	err = ch.Send(context.Background(), "Missing", nil)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestLoopback_SendSync(t *testing.T) {
	ch := NewLoopback(uiloop.New())
	ch.Handle("Config", func(context.Context, json.RawMessage) (any, error) {
		return map[string]any{"networks": []string{"main"}}, nil
	})
	ch.Handle("Broken", func(context.Context, json.RawMessage) (any, error) {
		return nil, errors.New("boom")
	})

	resp, err := ch.SendSync(context.Background(), "Config", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"networks":["main"]}`, string(resp.Raw()))

	_, err = ch.SendSync(context.Background(), "Broken", nil)
	require.EqualError(t, err, "boom")
}

func TestLoopback_SendIsDeferred(t *testing.T) {
	loop := uiloop.New()
	ch := NewLoopback(loop)
	var seen []string
	ch.Handle("Log", func(_ context.Context, payload json.RawMessage) (any, error) {
		var s string
		require.NoError(t, json.Unmarshal(payload, &s))
		seen = append(seen, s)
		return nil, nil
	})

	require.NoError(t, ch.Send(context.Background(), "Log", "a"))
	require.NoError(t, ch.Send(context.Background(), "Log", "b"))
	assert.Empty(t, seen)

	loop.Drain()
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestLoopback_Misuse(t *testing.T) {
	loop := uiloop.New()
	ch := NewLoopback(loop)
	ch.Handle("Echo", echo)

	assert.Panics(t, func() { ch.Handle("Echo", echo) })

	err := ch.Request(context.Background(), "Echo", nil, nil)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	err = ch.Request(context.Background(), "", nil, func(Response, error) {})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	require.NoError(t, ch.Close())
	_, err = ch.SendSync(context.Background(), "Echo", nil)
	require.ErrorIs(t, err, errs.ErrNoChannel)

	loop.Stop()
	ch2 := NewLoopback(loop)
	ch2.Handle("Echo", echo)
	err = ch2.Send(context.Background(), "Echo", nil)
	require.ErrorIs(t, err, errs.ErrNoChannel)
}

func TestResponse_Truthy(t *testing.T) {
	testCases := []struct {
		raw  string
		want bool
	}{
		{"", false},
		{"null", false},
		{"false", false},
		{"0", false},
		{`""`, false},
		{"true", true},
		{"1", true},
		{`"x"`, true},
		{"{}", true},
		{"[]", true},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, RawResponse(json.RawMessage(tc.raw)).Truthy())
		})
	}
}

func TestResponse_DecodeEmpty(t *testing.T) {
	var v any
	require.ErrorIs(t, Response{}.Decode(&v), errs.ErrInvalidArgument)
}
