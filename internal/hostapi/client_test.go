package hostapi

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/specialistvlad/superlumen/internal/channel"
	"github.com/specialistvlad/superlumen/internal/config"
	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/specialistvlad/superlumen/internal/uiloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wire answers Wire requests from a path table.
func wire(t *testing.T, table map[string]any) channel.HandlerFunc {
	return func(_ context.Context, payload json.RawMessage) (any, error) {
		var env Envelope
		require.NoError(t, json.Unmarshal(payload, &env))
		return table[env.Path], nil
	}
}

func TestClient_ReadConfig(t *testing.T) {
	// Arrange
	ch := channel.NewLoopback(uiloop.New())
	ch.Handle(WireChannel, wire(t, map[string]any{
		PathConfigRead: Reply{Model: json.RawMessage(`{"networks":[{"label":"Public","url":"https://a","default":true}]}`)},
	}))
	client := NewClient(ch)

	// Act
	snap, err := client.ReadConfig(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, config.Snapshot{Networks: []config.Network{{Label: "Public", URL: "https://a", Default: true}}}, snap)
}

func TestClient_ReadConfigHostErrors(t *testing.T) {
	ch := channel.NewLoopback(uiloop.New())
	ch.Handle(WireChannel, wire(t, map[string]any{
		PathConfigRead: Reply{Errors: []string{"locked"}},
	}))

	_, err := NewClient(ch).ReadConfig(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}

func TestClient_Call(t *testing.T) {
	loop := uiloop.New()
	ch := channel.NewLoopback(loop)
	var gotArgs []any
	ch.Handle(WireChannel, func(_ context.Context, payload json.RawMessage) (any, error) {
		var env Envelope
		require.NoError(t, json.Unmarshal(payload, &env))
		gotArgs = env.Args
		switch env.Path {
		case PathRecoverySave:
			return Reply{Errors: []string{"disk full"}}, nil
		default:
			return nil, nil
		}
	})
	client := NewClient(ch)

	var saveReply, nilReply *Reply
	require.NoError(t, client.Call(context.Background(), PathRecoverySave, []any{RecoveryRecord{Questions: []string{"q"}, Answers: []string{"a"}}}, func(r *Reply, err error) {
		require.NoError(t, err)
		saveReply = r
	}))
	loop.Drain()
	require.NoError(t, client.Call(context.Background(), PathRecoveryRead, nil, func(r *Reply, err error) {
		require.NoError(t, err)
		nilReply = r
	}))
	loop.Drain()

	require.NotNil(t, saveReply)
	assert.True(t, saveReply.Failed())
	assert.Nil(t, nilReply)
	assert.Nil(t, gotArgs)
	assert.False(t, nilReply.Failed())
}

func TestClient_NoChannel(t *testing.T) {
	client := NewClient(nil)
	ctx := context.Background()

	require.ErrorIs(t, client.Call(ctx, PathAccountsGen, nil, func(*Reply, error) {}), errs.ErrNoChannel)
	require.ErrorIs(t, client.Notify(ctx, CmdClipboard, Clipboard{}), errs.ErrNoChannel)
	require.ErrorIs(t, client.Command(ctx, CmdOpenWallet, nil, func(channel.Response, error) {}), errs.ErrNoChannel)
	_, err := client.ReadConfig(ctx)
	require.ErrorIs(t, err, errs.ErrNoChannel)
}

func TestReply(t *testing.T) {
	r, err := NewReply(KeyPair{PublicKey: "G", PrivateKey: "S"})
	require.NoError(t, err)
	assert.True(t, r.HasModel())
	assert.True(t, r.ModelTruthy())
	require.NoError(t, r.Err())

	var kp KeyPair
	require.NoError(t, r.Decode(&kp))
	assert.Equal(t, "G", kp.PublicKey)

	r, err = NewReply(false)
	require.NoError(t, err)
	assert.False(t, r.ModelTruthy())

	r, err = NewReply(nil, "a", "b")
	require.NoError(t, err)
	require.ErrorIs(t, r.Decode(&kp), errs.ErrNotFound)
	assert.EqualError(t, r.Err(), "host reported: a; b")

	var none *Reply
	assert.False(t, none.HasModel())
}

func TestClient_NilClient(t *testing.T) {
	var client *Client

	assert.NotPanics(t, func() { assert.Nil(t, client.Channel()) })
	_, err := client.CallSync(context.Background(), PathConfigRead)
	require.ErrorIs(t, err, errs.ErrNoChannel)
}
