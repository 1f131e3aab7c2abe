package modules

import (
	"github.com/bwtcert/scwallet/crypto"
	"github.com/bwtcert/scwallet/types"
)

// StatusCode is the uniform return code of every public wallet-store
// operation.
type StatusCode int

const (
	// StatusOK indicates the operation completed as requested.
	StatusOK StatusCode = iota
	// StatusCorrupt indicates unrecoverable on-disk damage.
	StatusCorrupt
	// StatusNeedRewrite indicates a format change requires a rewrite of
	// the persisted record before it can be read again.
	StatusNeedRewrite
	// StatusLoadFail indicates a transient I/O failure.
	StatusLoadFail
	// StatusNoncriticalError indicates a recoverable error that did not
	// abort the overall operation.
	StatusNoncriticalError
	// StatusTooNew indicates a record was written by a newer, incompatible
	// format.
	StatusTooNew
)

// String implements fmt.Stringer for StatusCode.
func (s StatusCode) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusCorrupt:
		return "CORRUPT"
	case StatusNeedRewrite:
		return "NEED_REWRITE"
	case StatusLoadFail:
		return "LOAD_FAIL"
	case StatusNoncriticalError:
		return "NONCRITICAL_ERROR"
	case StatusTooNew:
		return "TOO_NEW"
	default:
		return "UNKNOWN"
	}
}

// OutputStatus classifies the spendability of a single certificate output.
type OutputStatus int

const (
	// StatusMature indicates the output is spendable.
	StatusMature OutputStatus = iota
	// StatusImmature indicates the output exists but has not yet reached
	// its maturity depth.
	StatusImmature
	// StatusNotApplicable indicates the output is conflicted, orphaned,
	// or voided and carries no spendable value.
	StatusNotApplicable
)

// String implements fmt.Stringer for OutputStatus.
func (s OutputStatus) String() string {
	switch s {
	case StatusMature:
		return "MATURE"
	case StatusImmature:
		return "IMMATURE"
	case StatusNotApplicable:
		return "NOT_APPLICABLE"
	default:
		return "UNKNOWN"
	}
}

// CreditFilter selects which owned outputs participate in a credit
// aggregation.
type CreditFilter int

const (
	// CreditFilterSpendable restricts aggregation to outputs whose
	// locking predicate is owned by one of the wallet's own keys.
	CreditFilterSpendable CreditFilter = iota
	// CreditFilterAll includes every output regardless of ownership,
	// used by diagnostic/reporting call sites.
	CreditFilterAll
)

// ChainView is the read-only abstraction over the active mainchain.
// A ChainView is a snapshot valid for the duration of one evaluator call;
// implementations must not block on anything but the underlying chain
// state lookup.
type ChainView interface {
	// TipHeight returns the current height of the mainchain tip.
	TipHeight() types.BlockHeight
	// HeightOfBlock returns the height of the given block, if it is part
	// of the current best chain.
	HeightOfBlock(id crypto.Hash) (types.BlockHeight, bool)
	// ContainsBlock reports whether id is part of the current best chain.
	ContainsBlock(id crypto.Hash) bool
	// MempoolContainsCertificate reports whether a certificate with the
	// given hash is currently present in the mempool.
	MempoolContainsCertificate(id crypto.Hash) bool
}

// MaturityClassifiable is the capability a wallet entry needs to
// participate in depth/status classification, factored out of CertEntry so
// the evaluator's seam does not assume certificates are the only thing a
// host might ever track this way.
type MaturityClassifiable interface {
	Depth(ChainView) int
	OutputStatusAt(pos int, v ChainView) OutputStatus
}

// WalletCertStore is the public contract of the wallet-side certificate
// store.
type WalletCertStore interface {
	// SyncCertificate is an idempotent insert-or-update: if cert's hash is
	// already present, it refreshes the block anchor, Merkle branch, and
	// maturity depth; otherwise it creates a new entry.
	SyncCertificate(cert types.Certificate, block BlockAnchor, bwtMaturityDepth int32) StatusCode
	// SyncVoidedCertificate marks the stored entry for certHash as
	// ceased. It is a no-op if the entry is absent.
	SyncVoidedCertificate(certHash crypto.Hash, bwtStripped bool) StatusCode
	// LoadWallet reads all persisted entries into memory.
	LoadWallet() StatusCode
	// ZapWallet deletes all stored entries, returning disk state to
	// empty.
	ZapWallet() StatusCode
}

// BlockAnchor carries the block-embedding context a sync call needs: the
// containing block's hash, the certificate's Merkle branch and position
// within it, and its index among the block's certificates.
type BlockAnchor struct {
	BlockHash    crypto.Hash
	MerkleBranch []crypto.Hash
	MerklePos    uint64
	IndexInBlock int32
}
