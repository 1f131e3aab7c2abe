package wallet

import (
	"io"

	"github.com/bwtcert/scwallet/crypto"
	"github.com/bwtcert/scwallet/modules"
	"github.com/bwtcert/scwallet/pkg/encoding/rivbin"
	"github.com/bwtcert/scwallet/types"
)

// compile-time assertion that CertEntry satisfies the depth/status
// classification seam. It is the only implementer in this module; the
// generic transaction codepath that would add a second one is out of
// scope here.
var _ modules.MaturityClassifiable = (*CertEntry)(nil)

// MerkleStep is one step of a Merkle inclusion proof: a sibling hash plus
// the position (left/right) it occupies relative to the node being
// proven.
type MerkleStep struct {
	Hash crypto.Hash
	// Left indicates the sibling is to the left of the accumulated hash.
	Left bool
}

// CertEntry is the wallet-side wrapper around an immutable certificate: it
// augments the certificate with the chain context needed to decide output
// maturity and to survive persistence round-trips.
type CertEntry struct {
	Certificate types.Certificate

	// Kind selects which maturity regime applies to this entry's
	// outputs. The certificate sync path always creates EntryKindCertificate
	// entries; see maturity.go.
	Kind EntryKind

	// BlockAnchor is the zero hash when the certificate is unconfirmed or
	// conflicted.
	BlockAnchor crypto.Hash

	MerkleBranch   []MerkleStep
	MerkleVerified bool

	// IndexInBlock is -1 when the certificate is not (yet) embedded in a
	// block.
	IndexInBlock int32

	// BwtMaturityDepth is the number of confirmations required for this
	// certificate's backward-transfer outputs.
	BwtMaturityDepth int32

	// AreBwtCeased is true once backward transfers have been voided by a
	// chain-state rule (the sidechain was proven dead).
	AreBwtCeased bool

	// cache is excluded from the persistence codec: it is always
	// recomputed from scratch after a load.
	cache creditCache
}

// NewCertEntry constructs a fresh, unconfirmed wallet entry wrapping cert.
func NewCertEntry(cert types.Certificate, bwtMaturityDepth int32) *CertEntry {
	return &CertEntry{
		Certificate:      cert,
		IndexInBlock:     types.IndexInBlockNotInBlock,
		BwtMaturityDepth: bwtMaturityDepth,
	}
}

// MarshalRivine implements rivbin.RivineMarshaler: it writes the
// certificate, block anchor, merkle-proof fields, index_in_block,
// bwt_maturity_depth and are_bwt_ceased. Kind and cached credit values are
// never written.
func (e CertEntry) MarshalRivine(w io.Writer) error {
	enc := rivbin.NewEncoder(w)
	if err := enc.Encode(e.Certificate); err != nil {
		return err
	}
	return enc.EncodeAll(
		e.BlockAnchor,
		e.MerkleBranch,
		e.MerkleVerified,
		e.IndexInBlock,
		e.BwtMaturityDepth,
		e.AreBwtCeased,
	)
}

// UnmarshalRivine implements rivbin.RivineUnmarshaler, the inverse of
// MarshalRivine. The credit cache starts empty: cached credit fields are
// never persisted and are always recomputed after a load.
func (e *CertEntry) UnmarshalRivine(r io.Reader) error {
	dec := rivbin.NewDecoder(r)
	if err := dec.Decode(&e.Certificate); err != nil {
		return err
	}
	if err := dec.DecodeAll(
		&e.BlockAnchor,
		&e.MerkleBranch,
		&e.MerkleVerified,
		&e.IndexInBlock,
		&e.BwtMaturityDepth,
		&e.AreBwtCeased,
	); err != nil {
		return err
	}
	e.cache = creditCache{}
	return nil
}

// Depth classifies how deeply e's block anchor sits below the chain tip.
func (e *CertEntry) Depth(v modules.ChainView) int {
	if e.BlockAnchor.IsNil() {
		if v.MempoolContainsCertificate(e.Certificate.Hash()) {
			return 0
		}
		return -1
	}
	if v.ContainsBlock(e.BlockAnchor) {
		height, ok := v.HeightOfBlock(e.BlockAnchor)
		if !ok {
			return -1
		}
		return int(v.TipHeight()) - int(height) + 1
	}
	return -1
}
