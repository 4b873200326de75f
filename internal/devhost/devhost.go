// Package devhost answers the host API in-process, so the view engine can
// run without the desktop shell. Records live in a Store; keys are
// placeholders with the right shape, not real key pairs.
package devhost

import (
	"context"
	"encoding/base32"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/google/uuid"
	"github.com/specialistvlad/superlumen/internal/channel"
	"github.com/specialistvlad/superlumen/internal/config"
	"github.com/specialistvlad/superlumen/internal/ctxlog"
	"github.com/specialistvlad/superlumen/internal/hostapi"
)

// Store persists the records the host manages.
type Store interface {
	SetWallet(ctx context.Context, w hostapi.WalletSettings) error
	GetWallet(ctx context.Context, label string) (hostapi.WalletSettings, error)
	SetRecovery(ctx context.Context, label string, rec hostapi.RecoveryRecord) error
	GetRecovery(ctx context.Context, label string) (hostapi.RecoveryRecord, error)
	AddAccount(ctx context.Context, a hostapi.Account) (string, error)
}

var (
	publicKeyRegex = regexp.MustCompile(`^G[A-Z2-7]{55}$`)
	secretKeyRegex = regexp.MustCompile(`^S[A-Z2-7]{55}$`)
)

// Options configures a Host.
type Options struct {
	Config config.Snapshot
	// KeyFile is offered when the user opens a key-file. Empty means the
	// user cancels the dialog.
	KeyFile string
	// Navigate is called with the component of MainWindow.loadTemplate.
	Navigate func(name string)
	Logger   *slog.Logger
}

// Host is the in-process host.
type Host struct {
	store  Store
	opts   Options
	logger *slog.Logger

	mu        sync.Mutex
	wallet    string
	issued    map[string]string
	clipboard hostapi.Clipboard
	routes    map[string]route
}

type route func(ctx context.Context, args []json.RawMessage) (*hostapi.Reply, error)

// New creates a host backed by store.
func New(store Store, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := &Host{
		store:  store,
		opts:   opts,
		logger: logger.With("component", "devhost"),
		issued: make(map[string]string),
	}
	h.routes = map[string]route{
		hostapi.PathConfigRead:     h.configRead,
		hostapi.PathWalletSave:     h.walletSave,
		hostapi.PathRecoveryRead:   h.recoveryRead,
		hostapi.PathRecoverySave:   h.recoverySave,
		hostapi.PathAccountsGen:    h.accountsGen,
		hostapi.PathAccountsVerify: h.accountsVerify,
		hostapi.PathAccountsSave:   h.accountsSave,
	}
	return h
}

// Attach registers the host on every channel name of the host API.
func (h *Host) Attach(l *channel.Loopback) {
	l.Handle(hostapi.WireChannel, h.serveWire)
	l.Handle(hostapi.CmdOpenWallet, h.openWallet)
	l.Handle(hostapi.CmdLoadTemplate, h.loadTemplate)
	l.Handle(hostapi.CmdOpenKeyFile, h.openKeyFile)
	l.Handle(hostapi.CmdSaveKeyFile, h.saveKeyFile)
	l.Handle(hostapi.CmdShowRecoveryQuestions, h.showRecoveryQuestions)
	l.Handle(hostapi.CmdClipboard, h.copyToClipboard)
}

// Wallet returns the label of the wallet saved last, or "".
func (h *Host) Wallet() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.wallet
}

// Clipboard returns the last clipboard payload.
func (h *Host) Clipboard() hostapi.Clipboard {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clipboard
}

type wireRequest struct {
	Path string            `json:"path"`
	Args []json.RawMessage `json:"args"`
}

func (h *Host) serveWire(ctx context.Context, payload json.RawMessage) (any, error) {
	var req wireRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return hostapi.NewReply(nil, fmt.Sprintf("malformed request: %v", err))
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Host request", "path", req.Path, "args", len(req.Args))
	r, ok := h.routes[req.Path]
	if !ok {
		logger.Warn("Host request for unknown path", "path", req.Path)
		return hostapi.NewReply(nil, fmt.Sprintf("Unknown path '%s'.", req.Path))
	}
	reply, err := r(ctx, req.Args)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		// A typed nil would encode as an empty object.
		return nil, nil
	}
	return reply, nil
}

func arg(args []json.RawMessage, i int, v any) error {
	if i >= len(args) {
		return fmt.Errorf("missing argument %d", i)
	}
	if err := json.Unmarshal(args[i], v); err != nil {
		return fmt.Errorf("invalid argument %d: %w", i, err)
	}
	return nil
}

func (h *Host) configRead(context.Context, []json.RawMessage) (*hostapi.Reply, error) {
	return hostapi.NewReply(h.opts.Config)
}

func (h *Host) walletSave(ctx context.Context, args []json.RawMessage) (*hostapi.Reply, error) {
	var w hostapi.WalletSettings
	if err := arg(args, 0, &w); err != nil {
		return hostapi.NewReply(nil, err.Error())
	}
	if w.Password == "" {
		return hostapi.NewReply(nil, "A password is required.")
	}
	if err := h.store.SetWallet(ctx, w); err != nil {
		return hostapi.NewReply(nil, err.Error())
	}
	h.mu.Lock()
	h.wallet = w.Label
	h.mu.Unlock()
	h.logger.Info("Wallet saved", "label", w.Label, "key_file", w.KeyFilePath != "")
	return hostapi.NewReply(true)
}

// current returns the open wallet; ok is false while no wallet is open.
func (h *Host) current() (string, bool) {
	label := h.Wallet()
	return label, label != ""
}

func (h *Host) recoveryRead(ctx context.Context, _ []json.RawMessage) (*hostapi.Reply, error) {
	label, ok := h.current()
	if !ok {
		return hostapi.NewReply(nil)
	}
	rec, err := h.store.GetRecovery(ctx, label)
	if err != nil {
		return hostapi.NewReply(nil, err.Error())
	}
	if len(rec.Questions) == 0 {
		return hostapi.NewReply(nil)
	}
	return hostapi.NewReply(rec)
}

// recoverySave answers nothing while no wallet is open.
func (h *Host) recoverySave(ctx context.Context, args []json.RawMessage) (*hostapi.Reply, error) {
	label, ok := h.current()
	if !ok {
		return nil, nil
	}
	var rec hostapi.RecoveryRecord
	if err := arg(args, 0, &rec); err != nil {
		return hostapi.NewReply(nil, err.Error())
	}
	if err := h.store.SetRecovery(ctx, label, rec); err != nil {
		return hostapi.NewReply(nil, err.Error())
	}
	h.logger.Info("Recovery record saved", "wallet", label, "questions", len(rec.Questions))
	return hostapi.NewReply(true)
}

func (h *Host) accountsGen(context.Context, []json.RawMessage) (*hostapi.Reply, error) {
	kp, err := newKeyPair()
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.issued[kp.PublicKey] = kp.PrivateKey
	h.mu.Unlock()
	return hostapi.NewReply(kp)
}

// accountsVerify accepts well formed keys. A public key issued by this host
// must come with its own secret.
func (h *Host) accountsVerify(_ context.Context, args []json.RawMessage) (*hostapi.Reply, error) {
	var pub, secret string
	if err := arg(args, 0, &pub); err != nil {
		return hostapi.NewReply(false)
	}
	if err := arg(args, 1, &secret); err != nil {
		return hostapi.NewReply(false)
	}
	valid := publicKeyRegex.MatchString(pub) && secretKeyRegex.MatchString(secret)
	h.mu.Lock()
	if issued, ok := h.issued[pub]; ok {
		valid = valid && issued == secret
	}
	h.mu.Unlock()
	return hostapi.NewReply(valid)
}

func (h *Host) accountsSave(ctx context.Context, args []json.RawMessage) (*hostapi.Reply, error) {
	var a hostapi.Account
	if err := arg(args, 0, &a); err != nil {
		return hostapi.NewReply(nil, err.Error())
	}
	id, err := h.store.AddAccount(ctx, a)
	if err != nil {
		return hostapi.NewReply(nil, err.Error())
	}
	h.logger.Info("Account saved", "id", id, "network", a.Network.Label)
	return hostapi.NewReply(map[string]string{"id": id})
}

// openWallet succeeds when there is a saved wallet to open.
func (h *Host) openWallet(context.Context, json.RawMessage) (any, error) {
	_, ok := h.current()
	return ok, nil
}

func (h *Host) loadTemplate(_ context.Context, payload json.RawMessage) (any, error) {
	var name string
	if err := json.Unmarshal(payload, &name); err != nil {
		return nil, fmt.Errorf("invalid template name: %w", err)
	}
	h.logger.Info("Loading template", "name", name)
	if h.opts.Navigate != nil {
		h.opts.Navigate(name)
	}
	return nil, nil
}

func (h *Host) openKeyFile(context.Context, json.RawMessage) (any, error) {
	if h.opts.KeyFile == "" {
		return hostapi.KeyFileResult{Valid: false}, nil
	}
	return hostapi.KeyFileResult{Valid: true, KeyFileName: h.opts.KeyFile}, nil
}

func (h *Host) saveKeyFile(context.Context, json.RawMessage) (any, error) {
	return hostapi.KeyFileResult{Valid: true, KeyFileName: "superlumen-" + uuid.NewString() + ".key"}, nil
}

func (h *Host) showRecoveryQuestions(ctx context.Context, _ json.RawMessage) (any, error) {
	label, ok := h.current()
	if !ok {
		return hostapi.RecoveryResult{}, nil
	}
	rec, err := h.store.GetRecovery(ctx, label)
	if err != nil {
		return nil, err
	}
	return hostapi.RecoveryResult{QA: len(rec.Questions)}, nil
}

func (h *Host) copyToClipboard(_ context.Context, payload json.RawMessage) (any, error) {
	var clip hostapi.Clipboard
	if err := json.Unmarshal(payload, &clip); err != nil {
		return nil, fmt.Errorf("invalid clipboard payload: %w", err)
	}
	h.mu.Lock()
	h.clipboard = clip
	h.mu.Unlock()
	h.logger.Info(clip.Message, "title", clip.Title, "type", clip.Type)
	return nil, nil
}

var keyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// newKeyPair returns a placeholder key pair shaped like Stellar strkeys.
func newKeyPair() (hostapi.KeyPair, error) {
	pub, err := randomKey('G')
	if err != nil {
		return hostapi.KeyPair{}, err
	}
	secret, err := randomKey('S')
	if err != nil {
		return hostapi.KeyPair{}, err
	}
	return hostapi.KeyPair{PublicKey: pub, PrivateKey: secret}, nil
}

func randomKey(prefix byte) (string, error) {
	var raw []byte
	for len(raw) < 35 {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("failed to generate key material: %w", err)
		}
		raw = append(raw, id[:]...)
	}
	// 35 bytes encode to exactly 56 characters.
	enc := keyEncoding.EncodeToString(raw[:35])
	return string(prefix) + enc[1:], nil
}
