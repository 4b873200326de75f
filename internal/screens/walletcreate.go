package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/superlumen/internal/channel"
	"github.com/specialistvlad/superlumen/internal/config"
	"github.com/specialistvlad/superlumen/internal/hostapi"
	"github.com/specialistvlad/superlumen/internal/security"
	"github.com/specialistvlad/superlumen/internal/surface"
	"github.com/specialistvlad/superlumen/internal/viewmodel"
	"github.com/specialistvlad/superlumen/internal/wizard"
)

// Key-file button captions.
const (
	selectKeyFile = "Select Key-File"
	removeKeyFile = "Remove Key-File"
)

const (
	passwordInput = `.wizard-step-password input[name="text-password"]`
	confirmInput  = `.wizard-step-password input[name="text-password-confirm"]`
	passwordNext  = ".wizard-step-password .button-next"
	keyFileButton = ".wizard-step-password .button-key-file"
	generateKey   = ".wizard-step-password .button-key-file-generate"
	recoveryCheck = `.wizard-step-recovery input[type="checkbox"]`
	recoveryNext  = ".wizard-step-recovery .button-next"
	setupRecovery = ".wizard-step-recovery .button-setup-recovery"
	accountCheck  = `.wizard-step-accounts input[type="checkbox"]`
	accountID     = ".wizard-step-accounts .text-account-id"
	accountSecret = ".wizard-step-accounts .text-account-secret"
	refreshButton = ".wizard-step-accounts .button-refresh-account"
	networkSelect = ".wizard-step-accounts #select-account-network"

	clipboardTitle = "Superlumen: Clipboard"
	keyFileHelp    = "A key-file is a small file containing random data. Key-files drastically increase the strength " +
		"of the encryption used on your wallet, but you must always have access to the key-file when opening your wallet." +
		"\n\nLike passwords, you should keep the key-file secure and hidden away."
)

// WalletCreate walks the user through a new wallet: password and key-file,
// recovery questions, then the first account.
type WalletCreate struct {
	screen

	wizard   *wizard.Wizard
	strength float64
	keyFile  string
	hasQA    bool
}

// NewWalletCreate is the factory of the wallet-create screen.
func NewWalletCreate() viewmodel.ViewModel { return &WalletCreate{} }

// Wizard returns the step sequence, nil before the first render.
func (w *WalletCreate) Wizard() *wizard.Wizard { return w.wizard }

// Render implements viewmodel.ViewModel.
func (w *WalletCreate) Render(ctx context.Context) error {
	w.focusFirstInput()
	w.on("#link-open-wallet", surface.EventClick, func(ev *surface.Event) {
		ev.PreventDefault()
		w.openWallet(ctx)
	})

	for _, typ := range []string{surface.EventChange, surface.EventInput} {
		w.on(passwordInput, typ, func(*surface.Event) { w.onPasswordChange() })
		w.on(confirmInput, typ, func(*surface.Event) { w.onPasswordConfirmChange() })
	}
	w.on(keyFileButton, surface.EventClick, func(ev *surface.Event) { w.onKeyFile(ctx, ev) })
	w.on(generateKey, surface.EventClick, func(*surface.Event) { w.onKeyFileGenerate(ctx) })
	w.on(".wizard-step-password .button-key-file-about", surface.EventClick, func(*surface.Event) {
		w.alert(keyFileHelp)
	})
	w.on(passwordNext, surface.EventClick, func(ev *surface.Event) { w.onPasswordNext(ctx, ev) })

	w.on(recoveryCheck, surface.EventChange, func(*surface.Event) { w.onRecoveryChecked() })
	w.on(setupRecovery, surface.EventClick, func(*surface.Event) { w.onConfigureRecovery(ctx) })

	w.on(accountCheck, surface.EventChange, func(*surface.Event) { w.onNewAccountChecked(ctx) })
	w.on(refreshButton, surface.EventClick, func(*surface.Event) { w.refreshAccount(ctx) })
	w.on(".wizard-step-accounts .button-account-id-copy", surface.EventClick, func(*surface.Event) {
		w.copy(ctx, accountID, "Account ID copied to clipboard.")
	})
	w.on(".wizard-step-accounts .button-account-secret-copy", surface.EventClick, func(*surface.Event) {
		w.copy(ctx, accountSecret, "Secret copied to clipboard.")
	})
	w.on(".wizard-step-accounts .button-complete", surface.EventClick, func(*surface.Event) { w.onComplete(ctx) })

	w.populateNetworks(w.Config().Networks)
	w.refreshAccount(ctx)

	wz, err := wizard.New(w.find(".wizard"))
	if err != nil {
		return fmt.Errorf("failed to create the wallet wizard: %w", err)
	}
	w.wizard = wz.Bind()
	return nil
}

func (w *WalletCreate) populateNetworks(networks []config.Network) {
	sel := w.find(networkSelect)
	if sel == nil {
		return
	}
	for _, nw := range networks {
		opt := w.Document().CreateElement("option")
		opt.SetAttr("value", nw.URL)
		opt.SetText(nw.Label)
		if nw.Default {
			opt.SetAttr("selected", "")
		}
		if err := sel.AppendChild(opt); err != nil {
			w.Logger().Error("Failed to add network option", "network", nw.Label, "error", err)
		}
	}
}

func (w *WalletCreate) openWallet(ctx context.Context) {
	w.command(ctx, hostapi.CmdOpenWallet, nil, func(resp channel.Response, err error) {
		if err != nil || !resp.Truthy() {
			return
		}
		if el := w.Surface(); el != nil {
			el.SetVisible(false)
		}
		w.notify(ctx, hostapi.CmdLoadTemplate, "wallet-open")
	})
}

// onPasswordChange rates the password and paints the strength meter.
func (w *WalletCreate) onPasswordChange() {
	pw := w.value(passwordInput)
	meter := w.find(".wizard-step-password .progress .progress-meter")
	if pw == "" {
		w.strength = 0
		if meter != nil {
			meter.SetAttr("data-strength", "0")
		}
		w.onPasswordConfirmChange()
		return
	}

	rank := security.Strength(pw)
	w.strength = rank.Rank
	class := "primary"
	switch {
	case rank.Rank <= security.StrengthWeak:
		class = "alert"
	case rank.Rank <= security.StrengthMedium:
		class = "warning"
	}
	for _, bar := range w.findAll(".wizard-step-password .progress") {
		bar.RemoveClass("alert", "warning", "primary")
		bar.AddClass(class)
	}
	if meter != nil {
		meter.SetAttr("data-strength", fmt.Sprintf("%.4f", rank.Rank))
		meter.SetAttr("style", fmt.Sprintf("width: %g%%", rank.Rank*100))
	}
	if text := w.find(".wizard-step-password .progress .progress-meter-text"); text != nil {
		text.SetText(rank.Label)
	}
	w.onPasswordConfirmChange()
}

// onPasswordConfirmChange enables the next button once both fields match.
func (w *WalletCreate) onPasswordConfirmChange() {
	pw, cpw := w.value(passwordInput), w.value(confirmInput)
	confirmed := pw == cpw
	w.setDisabled(passwordNext, !(confirmed && pw != ""))

	in := w.find(confirmInput)
	if in == nil || in.Parent() == nil {
		return
	}
	icons, _ := in.Parent().QueryAll(".input-group-label .fa")
	for _, icon := range icons {
		if confirmed {
			icon.RemoveClass("fa-warning")
			icon.AddClass("fa-check")
		} else {
			icon.RemoveClass("fa-check")
			icon.AddClass("fa-warning")
		}
	}
}

func (w *WalletCreate) setKeyFile(name string) {
	w.keyFile = name
	button := w.find(keyFileButton)
	if button == nil {
		return
	}
	if name == "" {
		button.RemoveAttr("data-file-name")
		button.SetText(selectKeyFile)
		button.RemoveClass("fa-trash")
		button.AddClass("fa-key")
		return
	}
	button.SetAttr("data-file-name", name)
	button.SetText(removeKeyFile)
	button.RemoveClass("fa-key")
	button.AddClass("fa-trash")
}

func (w *WalletCreate) onKeyFile(ctx context.Context, ev *surface.Event) {
	ev.PreventDefault()
	ev.StopPropagation()
	button := w.find(keyFileButton)
	if button == nil {
		return
	}
	if strings.TrimSpace(button.Text()) != selectKeyFile {
		w.setKeyFile("")
		w.setDisabled(generateKey, false)
		return
	}
	w.command(ctx, hostapi.CmdOpenKeyFile, nil, func(resp channel.Response, err error) {
		if res, ok := w.keyFileResult(resp, err); ok {
			w.setKeyFile(res.KeyFileName)
			w.setDisabled(generateKey, res.KeyFileName != "")
		}
	})
}

func (w *WalletCreate) onKeyFileGenerate(ctx context.Context) {
	w.command(ctx, hostapi.CmdSaveKeyFile, nil, func(resp channel.Response, err error) {
		if res, ok := w.keyFileResult(resp, err); ok {
			w.setKeyFile(res.KeyFileName)
			w.setDisabled(generateKey, true)
		}
	})
}

func (w *WalletCreate) keyFileResult(resp channel.Response, err error) (hostapi.KeyFileResult, bool) {
	var res hostapi.KeyFileResult
	if err != nil {
		w.Logger().Warn("Key-file command failed", "error", err)
		return res, false
	}
	if resp.Empty() {
		return res, false
	}
	if err := resp.Decode(&res); err != nil {
		w.Logger().Warn("Failed to decode key-file result", "error", err)
		return res, false
	}
	return res, res.Valid
}

// onPasswordNext stores the password. A weak password needs confirmation,
// and declining keeps the wizard on the password step.
func (w *WalletCreate) onPasswordNext(ctx context.Context, ev *surface.Event) {
	if w.strength < security.StrengthWeak {
		if !w.confirm("Your password is weak, are you sure you want to continue?") {
			w.focus(passwordInput)
			ev.PreventDefault()
			return
		}
	}
	settings := hostapi.WalletSettings{
		Label:       "My Wallet",
		Password:    w.value(passwordInput),
		KeyFilePath: w.keyFile,
	}
	w.call(ctx, hostapi.PathWalletSave, []any{settings}, func(reply *hostapi.Reply, err error) {
		var problems []string
		switch {
		case err != nil:
			problems = []string{err.Error()}
		case reply.Failed():
			problems = reply.Errors
		default:
			return
		}
		w.Logger().Error("Failed to save wallet settings", "errors", problems)
		w.alert("Unable to set password and/or key file:\n" + strings.Join(problems, ";\n"))
		if w.wizard != nil {
			w.wizard.Back()
		}
	})
}

func (w *WalletCreate) onRecoveryChecked() {
	enabled := false
	if box := w.find(recoveryCheck); box != nil {
		enabled = box.Checked()
	}
	w.setDisabled(recoveryNext, enabled && !w.hasQA)
	w.setDisabled(setupRecovery, !enabled)
}

func (w *WalletCreate) onConfigureRecovery(ctx context.Context) {
	w.command(ctx, hostapi.CmdShowRecoveryQuestions, nil, func(resp channel.Response, err error) {
		var res hostapi.RecoveryResult
		if err != nil {
			w.Logger().Warn("Recovery questions command failed", "error", err)
		} else if !resp.Empty() {
			if err := resp.Decode(&res); err != nil {
				w.Logger().Warn("Failed to decode recovery result", "error", err)
			}
		}
		w.hasQA = res.QA > 0
		w.setDisabled(recoveryNext, !w.hasQA)
	})
}

func (w *WalletCreate) onNewAccountChecked(ctx context.Context) {
	generate := false
	if box := w.find(accountCheck); box != nil {
		generate = box.Checked()
	}
	for _, sel := range []string{accountID, accountSecret} {
		if in := w.find(sel); in != nil {
			if generate {
				in.SetAttr("readonly", "")
			} else {
				in.RemoveAttr("readonly")
			}
			in.SetValue("")
		}
	}
	if refresh := w.find(refreshButton); refresh != nil {
		refresh.SetVisible(generate)
	}
	if generate {
		w.refreshAccount(ctx)
	}
}

func (w *WalletCreate) refreshAccount(ctx context.Context) {
	w.call(ctx, hostapi.PathAccountsGen, nil, func(reply *hostapi.Reply, err error) {
		if err != nil {
			w.Logger().Warn("Failed to generate an account", "error", err)
			return
		}
		var kp hostapi.KeyPair
		if err := reply.Decode(&kp); err != nil {
			w.Logger().Warn("Host returned no key pair", "error", err)
			return
		}
		if in := w.find(accountID); in != nil {
			in.SetValue(kp.PublicKey)
		}
		if in := w.find(accountSecret); in != nil {
			in.SetValue(kp.PrivateKey)
		}
	})
}

func (w *WalletCreate) copy(ctx context.Context, sel, message string) {
	w.notify(ctx, hostapi.CmdClipboard, hostapi.Clipboard{
		Data:    w.value(sel),
		Type:    "text",
		Title:   clipboardTitle,
		Message: message,
	})
}

// selectedNetwork returns the network chosen in the select box.
func (w *WalletCreate) selectedNetwork() config.Network {
	sel := w.find(networkSelect)
	if sel == nil {
		return config.Network{}
	}
	opts, _ := sel.QueryAll("option")
	if len(opts) == 0 {
		return config.Network{}
	}
	chosen := opts[0]
	for _, o := range opts {
		if _, ok := o.Attr("selected"); ok {
			chosen = o
			break
		}
	}
	url, _ := chosen.Attr("value")
	return config.Network{Label: chosen.Text(), URL: url}
}

func (w *WalletCreate) onComplete(ctx context.Context) {
	id := strings.TrimSpace(w.value(accountID))
	secret := strings.TrimSpace(w.value(accountSecret))
	network := w.selectedNetwork()
	w.call(ctx, hostapi.PathAccountsVerify, []any{id, secret}, func(reply *hostapi.Reply, err error) {
		if err != nil || !reply.ModelTruthy() {
			w.alert("The Account ID or Secret is not valid.")
			w.focus(accountID)
			return
		}
		account := hostapi.Account{
			Label:      "My Account",
			PublicKey:  id,
			PrivateKey: secret,
			Network:    network,
		}
		w.call(ctx, hostapi.PathAccountsSave, []any{account}, func(reply *hostapi.Reply, err error) {
			switch {
			case err != nil:
				w.alert("Unable to save the account:\n" + err.Error())
			case reply.Failed():
				w.alert("Unable to save the account:\n" + strings.Join(reply.Errors, ";\n"))
			default:
				w.alert("Account saved.")
			}
		})
	})
}
