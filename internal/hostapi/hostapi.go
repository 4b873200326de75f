// Package hostapi names the messages exchanged with the host process and
// wraps a channel.Channel with typed helpers for them.
//
// Data requests travel on the generic Wire channel as an Envelope naming a
// path; window-level commands use their own channel names.
package hostapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/specialistvlad/superlumen/internal/errs"
)

// WireChannel carries every data request.
const WireChannel = "Wire"

// Wire paths.
const (
	PathConfigRead     = "config.read"
	PathWalletSave     = "wallet.save"
	PathRecoveryRead   = "recovery.read"
	PathRecoverySave   = "recovery.save"
	PathAccountsGen    = "accounts.gen"
	PathAccountsVerify = "accounts.verify"
	PathAccountsSave   = "accounts.save"
)

// Host window commands.
const (
	CmdOpenWallet            = "MainWindow.openWallet"
	CmdLoadTemplate          = "MainWindow.loadTemplate"
	CmdOpenKeyFile           = "MainWindow.openKeyFile"
	CmdSaveKeyFile           = "MainWindow.saveKeyFile"
	CmdShowRecoveryQuestions = "MainWindow.showRecoveryQuestions"
	CmdClipboard             = "MainWindow.clipboard"
)

// Envelope is the payload of a Wire request.
type Envelope struct {
	Path string `json:"path"`
	Args []any  `json:"args,omitempty"`
}

// Reply is the host's answer to a Wire request. Errors aggregates
// user-visible failures; a reply can carry both a model and errors.
type Reply struct {
	Model  json.RawMessage `json:"model,omitempty"`
	Errors []string        `json:"errors,omitempty"`
}

// Failed reports whether the host listed any errors.
func (r *Reply) Failed() bool {
	return r != nil && len(r.Errors) > 0
}

// Err joins the host errors into one error, or returns nil.
func (r *Reply) Err() error {
	if !r.Failed() {
		return nil
	}
	return fmt.Errorf("host reported: %s", strings.Join(r.Errors, "; "))
}

// HasModel reports whether the reply carries a non-null model.
func (r *Reply) HasModel() bool {
	return r != nil && len(r.Model) > 0 && string(r.Model) != "null"
}

// Decode unmarshals the model into v.
func (r *Reply) Decode(v any) error {
	if !r.HasModel() {
		return fmt.Errorf("%w: reply has no model", errs.ErrNotFound)
	}
	if err := json.Unmarshal(r.Model, v); err != nil {
		return fmt.Errorf("failed to decode reply model: %w", err)
	}
	return nil
}

// ModelTruthy reports whether the model would count as true in a boolean
// context.
func (r *Reply) ModelTruthy() bool {
	if !r.HasModel() {
		return false
	}
	var v any
	if err := json.Unmarshal(r.Model, &v); err != nil {
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

// NewReply builds a reply around model, for hosts written in Go.
func NewReply(model any, errors ...string) (*Reply, error) {
	r := &Reply{Errors: errors}
	if model == nil {
		return r, nil
	}
	raw, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reply model: %w", err)
	}
	r.Model = raw
	return r, nil
}
