package hostapi

import (
	"context"
	"fmt"

	"github.com/specialistvlad/superlumen/internal/channel"
	"github.com/specialistvlad/superlumen/internal/config"
	"github.com/specialistvlad/superlumen/internal/ctxlog"
	"github.com/specialistvlad/superlumen/internal/errs"
)

// ReplyFunc receives a decoded Wire reply. A nil reply means the host
// answered with nothing, which the host uses for "unavailable".
type ReplyFunc func(reply *Reply, err error)

// Client speaks the host API over a channel.
type Client struct {
	ch channel.Channel
}

var _ config.Provider = (*Client)(nil)

// NewClient wraps ch. A nil channel is allowed; every call then fails with
// errs.ErrNoChannel.
func NewClient(ch channel.Channel) *Client {
	return &Client{ch: ch}
}

// Channel returns the underlying channel.
func (c *Client) Channel() channel.Channel {
	if c == nil {
		return nil
	}
	return c.ch
}

func (c *Client) channel() (channel.Channel, error) {
	if c == nil || c.ch == nil {
		return nil, fmt.Errorf("%w: did the host bridge start?", errs.ErrNoChannel)
	}
	return c.ch, nil
}

// Call sends a Wire request; fn runs on the UI loop with the reply.
func (c *Client) Call(ctx context.Context, path string, args []any, fn ReplyFunc) error {
	ch, err := c.channel()
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Calling host", "path", path)
	return ch.Request(ctx, WireChannel, Envelope{Path: path, Args: args}, func(resp channel.Response, err error) {
		if err != nil {
			fn(nil, err)
			return
		}
		fn(decodeReply(resp))
	})
}

// CallSync is Call blocking the UI loop until the reply arrives.
func (c *Client) CallSync(ctx context.Context, path string, args ...any) (*Reply, error) {
	ch, err := c.channel()
	if err != nil {
		return nil, err
	}
	resp, err := ch.SendSync(ctx, WireChannel, Envelope{Path: path, Args: args})
	if err != nil {
		return nil, err
	}
	return decodeReply(resp)
}

func decodeReply(resp channel.Response) (*Reply, error) {
	if resp.Empty() {
		return nil, nil
	}
	var r Reply
	if err := resp.Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ReadConfig implements config.Provider with a blocking config.read.
func (c *Client) ReadConfig(ctx context.Context) (config.Snapshot, error) {
	reply, err := c.CallSync(ctx, PathConfigRead)
	if err != nil {
		return config.Snapshot{}, err
	}
	if err := reply.Err(); err != nil {
		return config.Snapshot{}, err
	}
	var snap config.Snapshot
	if !reply.HasModel() {
		return snap, nil
	}
	if err := reply.Decode(&snap); err != nil {
		return config.Snapshot{}, err
	}
	return snap, nil
}

// Command sends a window command and delivers the raw answer on the UI loop.
func (c *Client) Command(ctx context.Context, name string, payload any, fn channel.ReplyFunc) error {
	ch, err := c.channel()
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Sending host command", "command", name)
	return ch.Request(ctx, name, payload, fn)
}

// Notify sends a window command without waiting for an answer.
func (c *Client) Notify(ctx context.Context, name string, payload any) error {
	ch, err := c.channel()
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Notifying host", "command", name)
	return ch.Send(ctx, name, payload)
}
