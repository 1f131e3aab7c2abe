package types

import "github.com/bwtcert/scwallet/crypto"

// Output is the in-memory representation of a certificate output: a value
// paired with a locking predicate. Both regular change outputs and (after
// deserialization) backward-transfer outputs are represented this way;
// the certificate's first_bwt_pos boundary, not the output's own type,
// distinguishes the two shapes.
type Output struct {
	Value      Amount
	UnlockHash UnlockHash
}

// BackwardTransferOutput is the on-wire shape of a backward-transfer
// output: a value plus a raw 20-byte pubkey hash, without an expanded
// locking predicate.
type BackwardTransferOutput struct {
	Value      Amount
	PubKeyHash PubKeyHash
}

// IsNull reports whether this is the sentinel null backward-transfer
// output (value == -1).
func (bo BackwardTransferOutput) IsNull() bool {
	return bo.Value == NullBackwardTransferValue
}

// Expand materializes a backward-transfer output into its in-memory
// Output form by synthesizing the canonical P2PKH predicate over its
// pubkey hash.
func (bo BackwardTransferOutput) Expand() Output {
	return Output{
		Value:      bo.Value,
		UnlockHash: NewP2PKHUnlockHash(bo.PubKeyHash),
	}
}

// Collapse converts an in-memory Output back into its backward-transfer
// wire shape, extracting the pubkey hash from its P2PKH predicate.
// Collapse panics if o does not carry a canonical P2PKH predicate; callers
// must only invoke it on outputs at or beyond a certificate's
// first_bwt_pos boundary, which is an invariant enforced by the caller.
func (o Output) Collapse() BackwardTransferOutput {
	pkh, ok := o.UnlockHash.PubKeyHash()
	if !ok {
		panic("types: Collapse: output does not carry a canonical P2PKH predicate")
	}
	return BackwardTransferOutput{Value: o.Value, PubKeyHash: pkh}
}

// CertificateInput realizes the (previous outpoint, unlocking script,
// sequence) triple consumed by a certificate.
type CertificateInput struct {
	ParentID     crypto.Hash // previous transaction hash
	OutputIndex  uint32      // previous-outpoint output index
	UnlockScript []byte
	Sequence     uint32
}
