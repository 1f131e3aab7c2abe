package types

// PubKeyHashSize is the length, in bytes, of a pay-to-pubkey-hash digest.
const PubKeyHashSize = 20

// PubKeyHash is the 20-byte wire form carried by a backward-transfer
// output.
type PubKeyHash [PubKeyHashSize]byte

// UnlockHash is an opaque locking predicate. In memory, every output
// (regular or backward-transfer) carries one of these; on the wire, a
// backward-transfer output carries only a PubKeyHash, which is expanded
// into the canonical P2PKH UnlockHash on deserialization.
type UnlockHash []byte

// p2pkhPrefix/p2pkhSuffix bracket a pubkey hash to form the canonical
// pay-to-pubkey-hash predicate. The exact opcode bytes are a locking-script
// convention owned by the script-evaluation engine; this module only needs
// a value that is (a) deterministic given the hash and (b) distinguishable
// from an arbitrary regular predicate so that round-tripping a
// backward-transfer output is lossless.
var (
	p2pkhPrefix = []byte{0x76, 0xa9, 0x14} // OP_DUP OP_HASH160 <20>
	p2pkhSuffix = []byte{0x88, 0xac}       // OP_EQUALVERIFY OP_CHECKSIG
)

// NewP2PKHUnlockHash synthesizes the canonical pay-to-pubkey-hash locking
// predicate for a given pubkey hash.
func NewP2PKHUnlockHash(pkh PubKeyHash) UnlockHash {
	out := make(UnlockHash, 0, len(p2pkhPrefix)+PubKeyHashSize+len(p2pkhSuffix))
	out = append(out, p2pkhPrefix...)
	out = append(out, pkh[:]...)
	out = append(out, p2pkhSuffix...)
	return out
}

// PubKeyHash extracts the embedded pubkey hash if uh is a canonical P2PKH
// predicate, reporting ok=false otherwise.
func (uh UnlockHash) PubKeyHash() (pkh PubKeyHash, ok bool) {
	if len(uh) != len(p2pkhPrefix)+PubKeyHashSize+len(p2pkhSuffix) {
		return pkh, false
	}
	for i, b := range p2pkhPrefix {
		if uh[i] != b {
			return pkh, false
		}
	}
	for i, b := range p2pkhSuffix {
		if uh[len(uh)-len(p2pkhSuffix)+i] != b {
			return pkh, false
		}
	}
	copy(pkh[:], uh[len(p2pkhPrefix):len(p2pkhPrefix)+PubKeyHashSize])
	return pkh, true
}
