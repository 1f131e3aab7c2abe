package persist

import (
	"sync"
)

// HandleRegistry hands out reference-counted handles to the same on-disk
// bbolt database file, so that a wallet store and anything else sharing a
// filename (e.g. concurrent LoadWallet/ZapWallet calls) never open the file
// twice. It maps filename to (opened *BoltDatabase, use-count).
type HandleRegistry struct {
	mu      sync.Mutex
	md      Metadata
	entries map[string]*registryEntry
}

type registryEntry struct {
	db       *BoltDatabase
	useCount int
}

// NewHandleRegistry creates a registry that opens databases with the given
// metadata header/version.
func NewHandleRegistry(md Metadata) *HandleRegistry {
	return &HandleRegistry{
		md:      md,
		entries: make(map[string]*registryEntry),
	}
}

// Handle is a reference-counted lease on an opened database. Close must be
// called exactly once per Handle returned by Open.
type Handle struct {
	registry *HandleRegistry
	filename string
	DB       *BoltDatabase
}

// Open returns a Handle to the database at filename, opening it if no other
// handle currently references it.
func (r *HandleRegistry) Open(filename string) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[filename]
	if !ok {
		db, err := OpenDatabase(r.md, filename)
		if err != nil {
			return nil, err
		}
		entry = &registryEntry{db: db}
		r.entries[filename] = entry
	}
	entry.useCount++
	return &Handle{registry: r, filename: filename, DB: entry.db}, nil
}

// Close releases h's reference. The underlying database is closed once its
// use-count reaches zero.
func (h *Handle) Close() error {
	return h.registry.release(h.filename)
}

func (r *HandleRegistry) release(filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[filename]
	if !ok {
		return nil
	}
	entry.useCount--
	if entry.useCount > 0 {
		return nil
	}
	delete(r.entries, filename)
	return entry.db.Close()
}

// CloseFile forcibly drops filename from the registry regardless of its
// use-count, closing the underlying database. Wallet.Close uses it to
// release the wallet's database file on shutdown.
func (r *HandleRegistry) CloseFile(filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[filename]
	if !ok {
		return nil
	}
	delete(r.entries, filename)
	return entry.db.Close()
}
