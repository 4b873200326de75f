package screens

import (
	"context"
	"embed"
	"io/fs"

	"github.com/specialistvlad/superlumen/internal/channel"
	"github.com/specialistvlad/superlumen/internal/hostapi"
	"github.com/specialistvlad/superlumen/internal/registry"
	"github.com/specialistvlad/superlumen/internal/surface"
	"github.com/specialistvlad/superlumen/internal/viewmodel"
)

// Component names.
const (
	AboutName             = "about"
	RecoveryQuestionsName = "recovery-questions"
	WalletCreateName      = "wallet-create"
)

//go:embed templates
var embedded embed.FS

// Templates returns the built-in component directories.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Module registers every screen.
type Module struct{}

var _ registry.Module = Module{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.Register(AboutName, NewAbout)
	r.Register(RecoveryQuestionsName, NewRecoveryQuestions)
	r.Register(WalletCreateName, NewWalletCreate)
}

// screen adds the helpers every screen uses on top of the tree node.
type screen struct {
	viewmodel.Node
}

func (s *screen) find(sel string) *surface.Element {
	el, err := s.Query(sel)
	if err != nil {
		s.Logger().Error("Invalid selector", "selector", sel, "error", err)
		return nil
	}
	return el
}

func (s *screen) findAll(sel string) []*surface.Element {
	els, err := s.QueryAll(sel)
	if err != nil {
		s.Logger().Error("Invalid selector", "selector", sel, "error", err)
	}
	return els
}

// on registers h on every element matching sel.
func (s *screen) on(sel, typ string, h surface.Handler) {
	for _, el := range s.findAll(sel) {
		el.On(typ, h)
	}
}

func (s *screen) value(sel string) string {
	if el := s.find(sel); el != nil {
		return el.Value()
	}
	return ""
}

func (s *screen) setDisabled(sel string, disabled bool) {
	for _, el := range s.findAll(sel) {
		el.SetDisabled(disabled)
	}
}

func (s *screen) focus(sel string) {
	if el := s.find(sel); el != nil {
		el.Focus()
	}
}

// focusFirstInput focuses the first visible input of the screen.
func (s *screen) focusFirstInput() {
	for _, in := range s.findAll("input") {
		if in.Visible() {
			in.Focus()
			return
		}
	}
}

func (s *screen) alert(msg string) {
	if w := s.Window(); w != nil {
		w.Alert(msg)
		return
	}
	s.Logger().Warn("No window to show alert", "message", msg)
}

// confirm asks the user; without a window the answer is yes.
func (s *screen) confirm(msg string) bool {
	if w := s.Window(); w != nil {
		return w.Confirm(msg)
	}
	s.Logger().Warn("No window to ask for confirmation", "message", msg)
	return true
}

func (s *screen) closeWindow() {
	if w := s.Window(); w != nil {
		w.Close()
	}
}

// call sends a Wire request. fn runs only while the screen is live; a request
// that cannot be sent reaches fn as an error right away.
func (s *screen) call(ctx context.Context, path string, args []any, fn hostapi.ReplyFunc) {
	guarded := func(reply *hostapi.Reply, err error) {
		if !s.Live() {
			s.Logger().Debug("Dropping host reply for a torn down view-model", "path", path)
			return
		}
		fn(reply, err)
	}
	if err := s.Host().Call(ctx, path, args, guarded); err != nil {
		s.Logger().Error("Failed to call host", "path", path, "error", err)
		guarded(nil, err)
	}
}

// command sends a window command, with the same guarantees as call.
func (s *screen) command(ctx context.Context, name string, payload any, fn channel.ReplyFunc) {
	guarded := func(resp channel.Response, err error) {
		if !s.Live() {
			s.Logger().Debug("Dropping host reply for a torn down view-model", "command", name)
			return
		}
		fn(resp, err)
	}
	if err := s.Host().Command(ctx, name, payload, guarded); err != nil {
		s.Logger().Error("Failed to send host command", "command", name, "error", err)
		guarded(channel.Response{}, err)
	}
}

func (s *screen) notify(ctx context.Context, name string, payload any) {
	if err := s.Host().Notify(ctx, name, payload); err != nil {
		s.Logger().Error("Failed to notify host", "command", name, "error", err)
	}
}
