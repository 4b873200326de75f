// Package inmemorystore keeps the records of the in-process development host.
//
// # Characteristics
//
//   - **Ephemeral:** Created fresh for each run, never written to disk
//   - **Thread-Safe:** Uses sync.Map; the host answers requests from the UI
//     loop while tests and the healthcheck server read concurrently
//   - **Keyed Independently:** Wallet settings and recovery records are keyed
//     by wallet label, accounts by a generated id
package inmemorystore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/specialistvlad/superlumen/internal/hostapi"
)

// Store is an in-memory record store using one sync.Map per record kind.
type Store struct {
	wallets  sync.Map // Key: wallet label, Value: hostapi.WalletSettings
	recovery sync.Map // Key: wallet label, Value: hostapi.RecoveryRecord
	accounts sync.Map // Key: account id, Value: hostapi.Account
}

// New creates a new, empty store.
func New() *Store {
	return &Store{}
}

// SetWallet stores the settings of the wallet named by w.Label.
func (s *Store) SetWallet(ctx context.Context, w hostapi.WalletSettings) error {
	if w.Label == "" {
		return fmt.Errorf("%w: wallet label is empty", errs.ErrInvalidArgument)
	}
	s.wallets.Store(w.Label, w)
	return nil
}

// GetWallet returns the settings of wallet label. A wallet that was never
// stored is reported with errs.ErrNotFound.
func (s *Store) GetWallet(ctx context.Context, label string) (hostapi.WalletSettings, error) {
	v, ok := s.wallets.Load(label)
	if !ok {
		return hostapi.WalletSettings{}, fmt.Errorf("%w: wallet '%s'", errs.ErrNotFound, label)
	}
	return v.(hostapi.WalletSettings), nil
}

// SetRecovery stores the recovery record of wallet label, replacing any
// previous one.
func (s *Store) SetRecovery(ctx context.Context, label string, rec hostapi.RecoveryRecord) error {
	if _, ok := s.wallets.Load(label); !ok {
		return fmt.Errorf("%w: wallet '%s'", errs.ErrNotFound, label)
	}
	if len(rec.Questions) != len(rec.Answers) {
		return fmt.Errorf("%w: %d questions but %d answers", errs.ErrInvalidArgument, len(rec.Questions), len(rec.Answers))
	}
	s.recovery.Store(label, hostapi.RecoveryRecord{
		Questions: append([]string(nil), rec.Questions...),
		Answers:   append([]string(nil), rec.Answers...),
	})
	return nil
}

// GetRecovery returns the recovery record of wallet label. If none has been
// stored it returns an empty record.
func (s *Store) GetRecovery(ctx context.Context, label string) (hostapi.RecoveryRecord, error) {
	v, ok := s.recovery.Load(label)
	if !ok {
		return hostapi.RecoveryRecord{}, nil
	}
	return v.(hostapi.RecoveryRecord), nil
}

// AddAccount stores a and returns its generated id.
func (s *Store) AddAccount(ctx context.Context, a hostapi.Account) (string, error) {
	if a.PublicKey == "" {
		return "", fmt.Errorf("%w: account has no public key", errs.ErrInvalidArgument)
	}
	id := uuid.NewString()
	s.accounts.Store(id, a)
	return id, nil
}

// GetAccount returns the account stored under id.
func (s *Store) GetAccount(ctx context.Context, id string) (hostapi.Account, error) {
	v, ok := s.accounts.Load(id)
	if !ok {
		return hostapi.Account{}, fmt.Errorf("%w: account '%s'", errs.ErrNotFound, id)
	}
	return v.(hostapi.Account), nil
}

// Accounts returns every stored account ordered by public key.
func (s *Store) Accounts(ctx context.Context) ([]hostapi.Account, error) {
	var out []hostapi.Account
	s.accounts.Range(func(_, v any) bool {
		out = append(out, v.(hostapi.Account))
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].PublicKey < out[j].PublicKey })
	return out, nil
}
