package wallet

import (
	"io"
	"sync"

	"github.com/bwtcert/scwallet/crypto"
	"github.com/bwtcert/scwallet/pkg/encoding/rivbin"
	"github.com/bwtcert/scwallet/types"
)

// keyRecord is one wallet-owned keypair, persisted alongside its derived
// pubkey hash so loading the keystore never needs to recompute addresses.
type keyRecord struct {
	PubKeyHash types.PubKeyHash
	SecretKey  crypto.SecretKey
	PublicKey  crypto.PublicKey
}

// KeyManager owns the set of keys a Wallet signs and receives
// backward-transfer outputs with. It supplies the OwnerFunc the maturity
// evaluator uses to decide which outputs are spendable.
type KeyManager struct {
	mu   sync.RWMutex
	keys map[types.PubKeyHash]keyRecord
}

// NewKeyManager returns an empty key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{keys: make(map[types.PubKeyHash]keyRecord)}
}

// pubKeyHashOf derives the 20-byte pubkey hash carried by a backward-transfer
// output from a public key.
func pubKeyHashOf(pk crypto.PublicKey) types.PubKeyHash {
	full := crypto.HashObject(pk)
	var pkh types.PubKeyHash
	copy(pkh[:], full[:types.PubKeyHashSize])
	return pkh
}

// GenerateAddress creates a fresh keypair and returns the canonical P2PKH
// unlock hash a counterparty would target to pay this wallet.
func (km *KeyManager) GenerateAddress() (types.UnlockHash, error) {
	sk, pk := crypto.GenerateKeyPair()
	pkh := pubKeyHashOf(pk)

	km.mu.Lock()
	km.keys[pkh] = keyRecord{PubKeyHash: pkh, SecretKey: sk, PublicKey: pk}
	km.mu.Unlock()

	return types.NewP2PKHUnlockHash(pkh), nil
}

// Owns implements OwnerFunc: it reports whether uh is a P2PKH predicate
// targeting one of this manager's keys.
func (km *KeyManager) Owns(uh types.UnlockHash) bool {
	pkh, ok := uh.PubKeyHash()
	if !ok {
		return false
	}
	km.mu.RLock()
	_, found := km.keys[pkh]
	km.mu.RUnlock()
	return found
}

// SecretKeyFor returns the secret key backing a pubkey hash owned by this
// manager, for use by a transaction-signing call site.
func (km *KeyManager) SecretKeyFor(pkh types.PubKeyHash) (crypto.SecretKey, bool) {
	km.mu.RLock()
	defer km.mu.RUnlock()
	rec, ok := km.keys[pkh]
	return rec.SecretKey, ok
}

// Len reports how many keys the manager holds.
func (km *KeyManager) Len() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.keys)
}

// MarshalRivine implements rivbin.RivineMarshaler, persisting every key
// record in a stable, ascending pubkey-hash order so repeated saves produce
// identical bytes.
func (km *KeyManager) MarshalRivine(w io.Writer) error {
	km.mu.RLock()
	defer km.mu.RUnlock()

	records := make([]keyRecord, 0, len(km.keys))
	for _, rec := range km.keys {
		records = append(records, rec)
	}
	sortKeyRecords(records)
	return rivbin.NewEncoder(w).Encode(records)
}

// UnmarshalRivine implements rivbin.RivineUnmarshaler.
func (km *KeyManager) UnmarshalRivine(r io.Reader) error {
	var records []keyRecord
	if err := rivbin.NewDecoder(r).Decode(&records); err != nil {
		return err
	}
	km.mu.Lock()
	defer km.mu.Unlock()
	km.keys = make(map[types.PubKeyHash]keyRecord, len(records))
	for _, rec := range records {
		km.keys[rec.PubKeyHash] = rec
	}
	return nil
}

func sortKeyRecords(records []keyRecord) {
	for i := 1; i < len(records); i++ {
		for j := i; j > 0 && less(records[j].PubKeyHash, records[j-1].PubKeyHash); j-- {
			records[j], records[j-1] = records[j-1], records[j]
		}
	}
}

func less(a, b types.PubKeyHash) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
