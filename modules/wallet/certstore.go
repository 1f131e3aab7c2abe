package wallet

import (
	"bytes"

	bolt "github.com/rivine/bbolt"

	"github.com/bwtcert/scwallet/crypto"
	"github.com/bwtcert/scwallet/modules"
	"github.com/bwtcert/scwallet/pkg/encoding/rivbin"
	"github.com/bwtcert/scwallet/types"
)

// SyncCertificate implements modules.WalletCertStore. It is an
// idempotent insert-or-update keyed by the certificate's hash: a repeat
// call with the same hash refreshes the block anchor, Merkle branch, and
// maturity depth on the existing entry rather than creating a duplicate.
func (w *Wallet) SyncCertificate(cert types.Certificate, block modules.BlockAnchor, bwtMaturityDepth int32) modules.StatusCode {
	if err := w.tg.Add(); err != nil {
		return modules.StatusNoncriticalError
	}
	defer w.tg.Done()

	w.mu.Lock()
	defer w.mu.Unlock()

	hash := cert.Hash()
	entry, exists := w.entries[hash]
	if !exists {
		entry = NewCertEntry(cert, bwtMaturityDepth)
		entry.Kind = EntryKindCertificate
		w.entries[hash] = entry
	} else {
		entry.Certificate = cert
		entry.BwtMaturityDepth = bwtMaturityDepth
	}
	entry.BlockAnchor = block.BlockHash
	entry.IndexInBlock = block.IndexInBlock
	entry.MerkleBranch = make([]MerkleStep, len(block.MerkleBranch))
	for i, sibling := range block.MerkleBranch {
		entry.MerkleBranch[i] = MerkleStep{Hash: sibling, Left: (block.MerklePos>>uint(i))&1 == 1}
	}
	entry.MerkleVerified = len(block.MerkleBranch) > 0
	entry.InvalidateCache()

	if err := w.persistEntry(hash, entry); err != nil {
		w.log.Println("SyncCertificate: persist failed:", err)
		return modules.StatusNoncriticalError
	}
	w.cache.Remove(hash)
	return modules.StatusOK
}

// SyncVoidedCertificate implements modules.WalletCertStore. It is a no-op
// if the entry is absent.
func (w *Wallet) SyncVoidedCertificate(certHash crypto.Hash, bwtStripped bool) modules.StatusCode {
	if err := w.tg.Add(); err != nil {
		return modules.StatusNoncriticalError
	}
	defer w.tg.Done()

	w.mu.Lock()
	defer w.mu.Unlock()

	entry, exists := w.entries[certHash]
	if !exists {
		return modules.StatusOK
	}
	entry.AreBwtCeased = bwtStripped
	entry.InvalidateCache()

	if err := w.persistEntry(certHash, entry); err != nil {
		w.log.Println("SyncVoidedCertificate: persist failed:", err)
		return modules.StatusNoncriticalError
	}
	w.cache.Remove(certHash)
	return modules.StatusOK
}

// LoadWallet implements modules.WalletCertStore, reading every persisted
// entry into the in-memory index.
func (w *Wallet) LoadWallet() modules.StatusCode {
	if err := w.tg.Add(); err != nil {
		return modules.StatusLoadFail
	}
	defer w.tg.Done()

	w.mu.Lock()
	defer w.mu.Unlock()

	handle, err := w.handles.Open(w.dbFilename)
	if err != nil {
		w.log.Println("LoadWallet: open failed:", err)
		return modules.StatusLoadFail
	}
	defer handle.Close()

	entries := make(map[crypto.Hash]*CertEntry)
	keys := NewKeyManager()
	var corrupt bool
	err = handle.DB.View(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketEntries).ForEach(func(k, v []byte) error {
			var e CertEntry
			if err := rivbin.Unmarshal(v, &e); err != nil {
				w.log.Println("LoadWallet: skipping corrupt entry", crypto.NewHash(k), ":", err)
				corrupt = true
				return nil
			}
			entries[crypto.NewHash(k)] = &e
			return nil
		}); err != nil {
			return err
		}
		if raw := tx.Bucket(bucketKeys).Get([]byte("primary")); len(raw) > 0 {
			return rivbin.Unmarshal(raw, keys)
		}
		return nil
	})
	if err != nil {
		w.log.Println("LoadWallet: decode failed:", err)
		return modules.StatusCorrupt
	}

	w.entries = entries
	w.keys = keys
	w.cache.Purge()
	if corrupt {
		return modules.StatusCorrupt
	}
	return modules.StatusOK
}

// ZapWallet implements modules.WalletCertStore, clearing both the in-memory
// index and the on-disk buckets.
func (w *Wallet) ZapWallet() modules.StatusCode {
	if err := w.tg.Add(); err != nil {
		return modules.StatusNoncriticalError
	}
	defer w.tg.Done()

	w.mu.Lock()
	defer w.mu.Unlock()

	handle, err := w.handles.Open(w.dbFilename)
	if err != nil {
		w.log.Println("ZapWallet: open failed:", err)
		return modules.StatusLoadFail
	}
	defer handle.Close()

	err = handle.DB.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketEntries); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		if err := tx.DeleteBucket(bucketKeys); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		if err := tx.DeleteBucket(bucketEpochIndex); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		if _, err := tx.CreateBucket(bucketEntries); err != nil {
			return err
		}
		if _, err := tx.CreateBucket(bucketKeys); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketEpochIndex)
		return err
	})
	if err != nil {
		w.log.Println("ZapWallet: rewrite failed:", err)
		return modules.StatusNoncriticalError
	}

	w.entries = make(map[crypto.Hash]*CertEntry)
	w.keys = NewKeyManager()
	w.cache.Purge()
	return modules.StatusOK
}

// Get returns the entry for certHash, consulting the LRU cache before
// falling back to the always-resident index.
func (w *Wallet) Get(certHash crypto.Hash) (*CertEntry, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if cached, ok := w.cache.Get(certHash); ok {
		return cached.(*CertEntry), true
	}
	entry, ok := w.entries[certHash]
	if ok {
		w.cache.Add(certHash, entry)
	}
	return entry, ok
}

// List returns every tracked entry. The slice itself is a fresh copy, but
// its elements are the wallet's own entry pointers, so later syncs that
// update an entry in place are visible through them.
func (w *Wallet) List() []*CertEntry {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*CertEntry, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e)
	}
	return out
}

// persistEntry writes entry under certHash, and the key manager alongside
// it so that GenerateAddress calls survive a restart. Callers must hold
// w.mu.
func (w *Wallet) persistEntry(certHash crypto.Hash, entry *CertEntry) error {
	handle, err := w.handles.Open(w.dbFilename)
	if err != nil {
		return err
	}
	defer handle.Close()

	entryBytes, err := rivbin.Marshal(*entry)
	if err != nil {
		return err
	}
	keysBytes, err := rivbin.Marshal(w.keys)
	if err != nil {
		return err
	}

	return handle.DB.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketEntries).Put(certHash[:], entryBytes); err != nil {
			return err
		}
		if err := tx.Bucket(bucketKeys).Put([]byte("primary"), keysBytes); err != nil {
			return err
		}
		indexKey := epochIndexKey(entry.Certificate.EpochNumber, certHash)
		return tx.Bucket(bucketEpochIndex).Put(indexKey, nil)
	})
}

// ListByEpoch returns every tracked entry whose certificate carries the
// given epoch number, in certificate-hash order, by walking the
// bucketEpochIndex cursor instead of scanning every entry.
func (w *Wallet) ListByEpoch(epoch int32) []*CertEntry {
	w.mu.RLock()
	defer w.mu.RUnlock()

	handle, err := w.handles.Open(w.dbFilename)
	if err != nil {
		return nil
	}
	defer handle.Close()

	prefix := epochPrefix(epoch)
	var out []*CertEntry
	handle.DB.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketEpochIndex).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			hash := crypto.NewHash(k[4:])
			if entry, ok := w.entries[hash]; ok {
				out = append(out, entry)
			}
		}
		return nil
	})
	return out
}

// NewAddress generates a fresh receiving address and persists the updated
// key set immediately, so the address survives even if the wallet is closed
// before any certificate referencing it is synced.
func (w *Wallet) NewAddress() (types.UnlockHash, error) {
	if err := w.tg.Add(); err != nil {
		return nil, ErrWalletShutdown
	}
	defer w.tg.Done()

	w.mu.Lock()
	defer w.mu.Unlock()

	addr, err := w.keys.GenerateAddress()
	if err != nil {
		return nil, err
	}

	handle, err := w.handles.Open(w.dbFilename)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	keysBytes, err := rivbin.Marshal(w.keys)
	if err != nil {
		return nil, err
	}
	err = handle.DB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketKeys).Put([]byte("primary"), keysBytes)
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}
