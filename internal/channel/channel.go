// Package channel is the message channel between the renderer and the
// privileged host process. Three delivery modes are offered: fire-and-forget,
// single-shot asynchronous request, and blocking request.
//
// Asynchronous replies are always delivered on the UI loop through a Poster,
// never synchronously from inside Request. There is no cancellation: once a
// request is sent its reply is delivered, and callbacks must check whether
// whatever they were going to touch is still alive.
package channel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/superlumen/internal/errs"
)

// Channel is the host messaging contract consumed by the view engine.
type Channel interface {
	// Send delivers payload on the named channel without waiting.
	Send(ctx context.Context, name string, payload any) error
	// Request sends payload and arranges for onReply to run exactly once on
	// the UI loop with the host's answer.
	Request(ctx context.Context, name string, payload any, onReply ReplyFunc) error
	// SendSync blocks until the host answers. Only meant for requests the
	// host answers immediately, such as reading configuration.
	SendSync(ctx context.Context, name string, payload any) (Response, error)
	Close() error
}

// ReplyFunc receives the answer to a Request.
type ReplyFunc func(resp Response, err error)

// Poster schedules work on the UI loop. *uiloop.Loop satisfies it.
type Poster interface {
	Post(fn func()) bool
}

// Response is a raw JSON reply from the host.
type Response struct {
	raw json.RawMessage
}

// NewResponse encodes v as a Response.
func NewResponse(v any) (Response, error) {
	if raw, ok := v.(json.RawMessage); ok {
		return Response{raw: raw}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return Response{}, fmt.Errorf("failed to encode response: %w", err)
	}
	return Response{raw: raw}, nil
}

// RawResponse wraps already encoded JSON.
func RawResponse(raw json.RawMessage) Response {
	return Response{raw: raw}
}

// Raw returns the undecoded reply.
func (r Response) Raw() json.RawMessage { return r.raw }

// Empty reports whether the host sent nothing or null.
func (r Response) Empty() bool {
	return len(r.raw) == 0 || string(r.raw) == "null"
}

// Decode unmarshals the reply into v.
func (r Response) Decode(v any) error {
	if r.Empty() {
		return fmt.Errorf("%w: empty response", errs.ErrInvalidArgument)
	}
	if err := json.Unmarshal(r.raw, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Truthy reports whether the reply would count as true in a boolean context:
// anything except null, false, 0 and the empty string.
func (r Response) Truthy() bool {
	if r.Empty() {
		return false
	}
	var v any
	if err := json.Unmarshal(r.raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

func (r Response) String() string { return string(r.raw) }

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: channel name is empty", errs.ErrInvalidArgument)
	}
	return nil
}
