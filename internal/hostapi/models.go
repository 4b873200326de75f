package hostapi

import "github.com/specialistvlad/superlumen/internal/config"

// WalletSettings is the argument of wallet.save.
type WalletSettings struct {
	Label       string `json:"label"`
	Password    string `json:"password"`
	KeyFilePath string `json:"keyFilePath,omitempty"`
}

// RecoveryRecord is read by recovery.read and written by recovery.save.
// Questions and Answers are parallel slices.
type RecoveryRecord struct {
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
}

// KeyPair is the model of accounts.gen.
type KeyPair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// Account is the argument of accounts.save.
type Account struct {
	Label      string         `json:"label"`
	PublicKey  string         `json:"publicKey"`
	PrivateKey string         `json:"privateKey"`
	Network    config.Network `json:"network"`
}

// KeyFileResult answers the open and save key-file commands.
type KeyFileResult struct {
	Valid       bool   `json:"valid"`
	KeyFileName string `json:"keyFileName,omitempty"`
}

// RecoveryResult answers the recovery questions command with the number of
// questions configured.
type RecoveryResult struct {
	QA int `json:"qa"`
}

// Clipboard is the payload of the clipboard command.
type Clipboard struct {
	Data    string `json:"data"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
