package wallet

import (
	"encoding/binary"
	"os"
	"path/filepath"

	bolt "github.com/rivine/bbolt"

	"github.com/bwtcert/scwallet/crypto"
	"github.com/bwtcert/scwallet/persist"
	"github.com/bwtcert/scwallet/types"
)

const (
	logFilename = "wallet.log"
	dbFilename  = "wallet.db"

	// persistVersion is bumped whenever the on-disk layout of bucketEntries
	// changes incompatibly.
	persistVersion = "1.0.0"
)

// bucketEntries holds every CertEntry, keyed by its certificate hash.
// bucketKeys holds the serialized KeyManager. bucketEpochIndex holds no
// values of its own; its keys (epoch number ++ certificate hash) let a
// cursor walk certificates in epoch order without scanning bucketEntries.
var (
	bucketEntries    = []byte("CertEntries")
	bucketKeys       = []byte("Keys")
	bucketEpochIndex = []byte("EpochIndex")
)

// epochIndexKey encodes an epoch number ++ certificate hash into a single
// sortable bucketEpochIndex key: the sign bit is flipped so byte order over
// the epoch prefix matches numeric order, including the negative epoch
// sentinels, and a cursor started with Seek(epochPrefix(n)) visits every
// certificate for epoch n before any later epoch.
func epochIndexKey(epoch int32, certHash crypto.Hash) []byte {
	key := make([]byte, 4+crypto.HashSize)
	binary.BigEndian.PutUint32(key[:4], uint32(epoch)^0x80000000)
	copy(key[4:], certHash[:])
	return key
}

func epochPrefix(epoch int32) []byte {
	prefix := make([]byte, 4)
	binary.BigEndian.PutUint32(prefix, uint32(epoch)^0x80000000)
	return prefix
}

// initPersist makes the persist directory, opens the log, and opens (or
// creates) the wallet's database file, creating its buckets on first run.
func (w *Wallet) initPersist(bcInfo types.BlockchainInfo) error {
	if err := os.MkdirAll(w.persistDir, 0700); err != nil {
		return err
	}

	log, err := persist.NewFileLogger(bcInfo, filepath.Join(w.persistDir, logFilename), false)
	if err != nil {
		return err
	}
	w.log = log

	w.dbFilename = filepath.Join(w.persistDir, dbFilename)
	handle, err := w.handles.Open(w.dbFilename)
	if err != nil {
		w.log.Close()
		return err
	}
	defer handle.Close()

	return handle.DB.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketEntries); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketKeys); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketEpochIndex)
		return err
	})
}
