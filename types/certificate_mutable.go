package types

import "github.com/bwtcert/scwallet/crypto"

// FirstBwtPosUnset mirrors the original source's CMutableScCertificate
// default ("not yet known") boundary, realized here as -1 rather than the
// C++ UINT32_MAX since the boundary is held in a signed int.
const FirstBwtPosUnset = -1

// MutableCertificate mirrors Certificate but without the immutable-hash
// contract: it exposes an edit-in-place output vector used during
// construction, convertible to/from the immutable Certificate.
type MutableCertificate struct {
	Version           uint32
	SidechainID       crypto.Hash
	EpochNumber       int32
	Quality           int64
	EndEpochBlockHash crypto.Hash
	Proof             []byte
	Inputs            []CertificateInput

	outputs     []Output
	firstBwtPos int
}

// NewMutableCertificate returns an empty builder with the boundary
// unset, matching CMutableScCertificate's default state.
func NewMutableCertificate() *MutableCertificate {
	return &MutableCertificate{
		EpochNumber: EpochNotInitialized,
		Quality:     QualityNull,
		firstBwtPos: FirstBwtPosUnset,
	}
}

// boundary returns the effective change/backward split: if unset, every
// present output is treated as change (nothing has been pushed yet).
func (m *MutableCertificate) boundary() int {
	if m.firstBwtPos == FirstBwtPosUnset {
		return len(m.outputs)
	}
	return m.firstBwtPos
}

// PushChange appends a regular change output, ahead of any existing
// backward-transfer outputs.
func (m *MutableCertificate) PushChange(o Output) error {
	b := m.boundary()
	if err := m.InsertAt(b, o); err != nil {
		return err
	}
	return nil
}

// PushBackward appends a backward-transfer output (already expanded to
// its in-memory Output shape, e.g. via BackwardTransferOutput.Expand). o
// must carry a canonical P2PKH predicate, since a backward-transfer output
// has no other on-wire representation; anything else is rejected here
// rather than deferred to a panic in Output.Collapse.
func (m *MutableCertificate) PushBackward(o Output) error {
	if _, ok := o.UnlockHash.PubKeyHash(); !ok {
		return ErrInvariantViolation
	}
	if m.firstBwtPos == FirstBwtPosUnset {
		m.firstBwtPos = len(m.outputs)
	}
	m.outputs = append(m.outputs, o)
	return nil
}

// InsertAt inserts an output at pos. Inserting at or before the current
// boundary treats o as a change output and advances the boundary by one;
// inserting past it treats o as a backward output, which must carry a
// canonical P2PKH predicate, and leaves the boundary in place.
func (m *MutableCertificate) InsertAt(pos int, o Output) error {
	if pos < 0 || pos > len(m.outputs) {
		return ErrInvariantViolation
	}
	b := m.boundary()
	if pos > b {
		if _, ok := o.UnlockHash.PubKeyHash(); !ok {
			return ErrInvariantViolation
		}
	}
	m.outputs = append(m.outputs, Output{})
	copy(m.outputs[pos+1:], m.outputs[pos:])
	m.outputs[pos] = o
	if pos <= b {
		m.firstBwtPos = b + 1
	} else {
		m.firstBwtPos = b
	}
	return nil
}

// EraseAt removes the output at pos, adjusting the boundary if the
// removed output was a change output.
func (m *MutableCertificate) EraseAt(pos int) error {
	if pos < 0 || pos >= len(m.outputs) {
		return ErrInvariantViolation
	}
	b := m.boundary()
	m.outputs = append(m.outputs[:pos], m.outputs[pos+1:]...)
	if pos < b && m.firstBwtPos != FirstBwtPosUnset {
		m.firstBwtPos--
	}
	return nil
}

// ResizeChange grows or shrinks the change-output region to exactly n
// entries, padding with zero-value outputs or truncating from the end of
// the change region.
func (m *MutableCertificate) ResizeChange(n int) error {
	if n < 0 {
		return ErrInvariantViolation
	}
	b := m.boundary()
	switch {
	case n == b:
		return nil
	case n > b:
		grown := make([]Output, n-b)
		tail := append([]Output(nil), m.outputs[b:]...)
		m.outputs = append(m.outputs[:b], grown...)
		m.outputs = append(m.outputs, tail...)
	default:
		m.outputs = append(m.outputs[:n], m.outputs[b:]...)
	}
	m.firstBwtPos = n
	return nil
}

// ResizeBackward grows or shrinks the backward-transfer region to
// exactly n entries.
func (m *MutableCertificate) ResizeBackward(n int) error {
	if n < 0 {
		return ErrInvariantViolation
	}
	b := m.boundary()
	cur := len(m.outputs) - b
	switch {
	case n == cur:
		return nil
	case n > cur:
		m.outputs = append(m.outputs, make([]Output, n-cur)...)
	default:
		m.outputs = m.outputs[:b+n]
	}
	if m.firstBwtPos == FirstBwtPosUnset {
		m.firstBwtPos = b
	}
	return nil
}

// Certificate freezes the builder into an immutable Certificate, fixing
// first_bwt_pos at the current change/backward split and computing the
// identity hash.
func (m *MutableCertificate) Certificate() (Certificate, error) {
	return NewCertificate(m.Version, m.SidechainID, m.EpochNumber, m.Quality,
		m.EndEpochBlockHash, m.Proof, m.Inputs, m.outputs, m.boundary())
}

// MutableCertificateFrom converts an immutable Certificate back into a
// MutableCertificate for further editing.
func MutableCertificateFrom(c Certificate) *MutableCertificate {
	return &MutableCertificate{
		Version:           c.Version,
		SidechainID:       c.SidechainID,
		EpochNumber:       c.EpochNumber,
		Quality:           c.Quality,
		EndEpochBlockHash: c.EndEpochBlockHash,
		Proof:             append([]byte(nil), c.Proof...),
		Inputs:            append([]CertificateInput(nil), c.Inputs...),
		outputs:           c.Outputs(),
		firstBwtPos:       c.firstBwtPos,
	}
}
