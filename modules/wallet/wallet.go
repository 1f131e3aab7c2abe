package wallet

import (
	"errors"
	"sync"

	"github.com/NebulousLabs/threadgroup"
	lru "github.com/hashicorp/golang-lru"

	"github.com/bwtcert/scwallet/build"
	"github.com/bwtcert/scwallet/crypto"
	"github.com/bwtcert/scwallet/modules"
	"github.com/bwtcert/scwallet/persist"
	"github.com/bwtcert/scwallet/types"
)

// compile-time assertion that Wallet satisfies the public store contract
// defined in modules/wallet.go.
var _ modules.WalletCertStore = (*Wallet)(nil)

// entryCacheSize bounds the second-level LRU cache of CertEntry pointers
// kept alongside the always-resident in-memory index. Every entry stays in
// the index regardless of this bound; lookups never read the database.
const entryCacheSize = 4096

var (
	// ErrWalletShutdown is returned by NewAddress when it is called after
	// Close has been invoked. The sync, load and zap calls report a closed
	// wallet through their StatusCode instead.
	ErrWalletShutdown = errors.New("wallet has shut down")
	// ErrUnknownCertificate names the condition of a certificate hash the
	// wallet has no entry for. No Wallet method returns it;
	// SyncVoidedCertificate treats an unknown hash as a no-op.
	ErrUnknownCertificate = errors.New("wallet has no entry for this certificate")
)

// Wallet is the concrete implementation of modules.WalletCertStore. It
// holds every synced CertEntry in memory, indexed by certificate hash, and
// mirrors them to a bbolt-backed persist.HandleRegistry so state survives a
// restart.
type Wallet struct {
	persistDir string
	log        *persist.Logger
	handles    *persist.HandleRegistry
	dbFilename string

	mu      sync.RWMutex
	entries map[crypto.Hash]*CertEntry
	cache   *lru.Cache

	keys *KeyManager

	tg threadgroup.ThreadGroup
}

// New creates a Wallet rooted at persistDir. The wallet is not loaded from
// disk until LoadWallet is called.
func New(persistDir string, bcInfo types.BlockchainInfo) (*Wallet, error) {
	w := &Wallet{
		persistDir: persistDir,
		entries:    make(map[crypto.Hash]*CertEntry),
		keys:       NewKeyManager(),
	}

	cache, err := lru.New(entryCacheSize)
	if err != nil {
		return nil, err
	}
	w.cache = cache

	md := persist.Metadata{
		Header:  bcInfo.Name + " Wallet",
		Version: persistVersion,
	}
	w.handles = persist.NewHandleRegistry(md)

	if err := w.initPersist(bcInfo); err != nil {
		return nil, err
	}
	return w, nil
}

// Keys returns the wallet's key manager, used both to mint new receiving
// addresses and as the OwnerFunc source for credit aggregation.
func (w *Wallet) Keys() *KeyManager { return w.keys }

// TotalCredit sums GetCredit across every tracked certificate against the
// given chain view, restricted to outputs owned by the wallet's own keys.
func (w *Wallet) TotalCredit(v modules.ChainView) (types.Amount, error) {
	w.mu.RLock()
	entries := make([]*CertEntry, 0, len(w.entries))
	for _, e := range w.entries {
		entries = append(entries, e)
	}
	owner := w.keys.Owns
	w.mu.RUnlock()

	var total types.Amount
	for _, e := range entries {
		credit, err := e.GetCredit(v, modules.CreditFilterSpendable, owner)
		if err != nil {
			return 0, err
		}
		total += credit
		if !total.Valid() {
			return 0, types.ErrAmountOutOfRange
		}
	}
	return total, nil
}

// TotalImmatureCredit sums GetImmatureCredit across every tracked
// certificate against the given chain view, restricted to outputs owned by
// the wallet's own keys.
func (w *Wallet) TotalImmatureCredit(v modules.ChainView) (types.Amount, error) {
	w.mu.RLock()
	entries := make([]*CertEntry, 0, len(w.entries))
	for _, e := range w.entries {
		entries = append(entries, e)
	}
	owner := w.keys.Owns
	w.mu.RUnlock()

	var total types.Amount
	for _, e := range entries {
		immature, err := e.GetImmatureCredit(v, modules.CreditFilterSpendable, owner)
		if err != nil {
			return 0, err
		}
		total += immature
		if !total.Valid() {
			return 0, types.ErrAmountOutOfRange
		}
	}
	return total, nil
}

// Close drains every call currently holding a threadgroup ticket, then
// releases the wallet's database handle and closes its log.
func (w *Wallet) Close() error {
	if err := w.tg.Stop(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	if w.handles != nil {
		if err := w.handles.CloseFile(w.dbFilename); err != nil {
			errs = append(errs, err)
		}
	}
	if w.log != nil {
		if err := w.log.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return build.JoinErrors(errs, "; ")
}
