package types

import (
	"bytes"
	"errors"
	"io"

	"github.com/bwtcert/scwallet/crypto"
	"github.com/bwtcert/scwallet/pkg/encoding/rivbin"
)

// CertificateVersion is the fixed sentinel identifying the certificate
// variant of a ledger entry, distinct from a regular transaction.
const CertificateVersion uint32 = 0xfffffffb

// ErrInvariantViolation is returned when a mutation would break one of
// a certificate's structural invariants (e.g. an output crossing the first_bwt_pos
// boundary in the wrong shape).
var ErrInvariantViolation = errors.New("certificate invariant violation")

// ErrDeserialization is returned when a byte stream does not decode into
// a well-formed certificate.
var ErrDeserialization = errors.New("certificate deserialization error")

// Certificate is the immutable canonical certificate record. It must
// only be constructed via NewCertificate, DeserializeCertificate or
// (*MutableCertificate).Certificate;
// its zero value is not a valid certificate.
type Certificate struct {
	Version           uint32
	SidechainID       crypto.Hash
	EpochNumber       int32
	Quality           int64
	EndEpochBlockHash crypto.Hash
	Proof             []byte
	Inputs            []CertificateInput

	// outputs holds the full materialized output vector; outputs at
	// indices < firstBwtPos are regular change, the rest are expanded
	// backward transfers. Both fields are unexported: callers must go
	// through the accessors below so the cached hash can never go stale.
	outputs      []Output
	firstBwtPos  int
	hash         crypto.Hash
}

// NewCertificate freezes a set of fields plus an explicit change/backward
// output split into an immutable Certificate, computing its identity hash.
// It is the construction path used by (*MutableCertificate).Certificate;
// direct callers should generally prefer building through
// MutableCertificate instead.
func NewCertificate(version uint32, sidechainID crypto.Hash, epochNumber int32, quality int64,
	endEpochBlockHash crypto.Hash, proof []byte, inputs []CertificateInput,
	outputs []Output, firstBwtPos int) (Certificate, error) {

	if firstBwtPos < 0 || firstBwtPos > len(outputs) {
		return Certificate{}, ErrInvariantViolation
	}
	c := Certificate{
		Version:           version,
		SidechainID:       sidechainID,
		EpochNumber:       epochNumber,
		Quality:           quality,
		EndEpochBlockHash: endEpochBlockHash,
		Proof:             append([]byte(nil), proof...),
		Inputs:            append([]CertificateInput(nil), inputs...),
		outputs:           append([]Output(nil), outputs...),
		firstBwtPos:       firstBwtPos,
	}
	if err := c.validateAmounts(); err != nil {
		return Certificate{}, err
	}
	c.hash = crypto.HashObject(c)
	return c, nil
}

// FirstBwtPos returns the index boundary separating regular change
// outputs [0, FirstBwtPos) from backward-transfer outputs.
func (c Certificate) FirstBwtPos() int { return c.firstBwtPos }

// Outputs returns a read-only copy of the output vector. Callers must not
// rely on mutating the returned slice having any effect on c.
func (c Certificate) Outputs() []Output {
	out := make([]Output, len(c.outputs))
	copy(out, c.outputs)
	return out
}

// Hash returns the memoized identity hash.
func (c Certificate) Hash() crypto.Hash { return c.hash }

// IsBackwardTransfer reports whether the output at pos is a
// backward-transfer output.
func (c Certificate) IsBackwardTransfer(pos int) bool {
	return pos >= c.firstBwtPos
}

// GetValueOfBackwardTransfers sums the values of all outputs at or beyond
// FirstBwtPos.
func (c Certificate) GetValueOfBackwardTransfers() (Amount, error) {
	return sumOutputRange(c.outputs[c.firstBwtPos:])
}

// GetValueOfChange sums the values of all outputs before FirstBwtPos.
func (c Certificate) GetValueOfChange() (Amount, error) {
	return sumOutputRange(c.outputs[:c.firstBwtPos])
}

// TotalOutputValue sums every output regardless of shape.
func (c Certificate) TotalOutputValue() (Amount, error) {
	return sumOutputRange(c.outputs)
}

// GetFeeAmount computes totalInputValue - GetValueOfChange(): backward
// transfers are not funded by inputs, they mint into the mainchain.
func (c Certificate) GetFeeAmount(totalInputValue Amount) (Amount, error) {
	change, err := c.GetValueOfChange()
	if err != nil {
		return 0, err
	}
	fee := totalInputValue - change
	if !fee.Valid() {
		return 0, ErrAmountOutOfRange
	}
	return fee, nil
}

// IsNull reports whether c is the null certificate.
func (c Certificate) IsNull() bool {
	return c.SidechainID.IsNil() &&
		c.EpochNumber == EpochNull &&
		c.Quality == QualityNull &&
		c.EndEpochBlockHash.IsNil() &&
		len(c.Proof) == 0 &&
		len(c.Inputs) == 0 &&
		len(c.outputs) == 0
}

func sumOutputRange(outs []Output) (Amount, error) {
	values := make([]Amount, len(outs))
	for i, o := range outs {
		if !o.Value.Valid() || o.Value == NullBackwardTransferValue {
			return 0, ErrAmountOutOfRange
		}
		values[i] = o.Value
	}
	return SumAmounts(values...)
}

func (c Certificate) validateAmounts() error {
	for _, o := range c.outputs {
		if !o.Value.Valid() {
			return ErrAmountOutOfRange
		}
	}
	return nil
}

// MarshalRivine implements rivbin.RivineMarshaler, writing fields in wire
// order: version, sidechain_id, epoch_number, quality,
// end_epoch_block_hash, proof, inputs, regular_outputs, backward_outputs.
func (c Certificate) MarshalRivine(w io.Writer) error {
	return c.marshalRivine(w)
}

func (c Certificate) marshalRivine(w io.Writer) error {
	enc := rivbin.NewEncoder(w)
	if err := enc.EncodeAll(
		c.Version,
		c.SidechainID,
		c.EpochNumber,
		c.Quality,
		c.EndEpochBlockHash,
	); err != nil {
		return err
	}
	if err := rivbin.WriteDataSlice(w, c.Proof); err != nil {
		return err
	}
	if err := enc.Encode(c.Inputs); err != nil {
		return err
	}
	regular := c.outputs[:c.firstBwtPos]
	backward := make([]BackwardTransferOutput, len(c.outputs)-c.firstBwtPos)
	for i, o := range c.outputs[c.firstBwtPos:] {
		backward[i] = o.Collapse()
	}
	if err := enc.Encode(regular); err != nil {
		return err
	}
	return enc.Encode(backward)
}

// UnmarshalRivine implements rivbin.RivineUnmarshaler: it reads regular
// outputs, fixes first_bwt_pos at their count, then appends each backward
// output expanded to its canonical P2PKH predicate. The identity hash is
// recomputed from the freshly decoded fields, never trusted from the wire.
func (c *Certificate) UnmarshalRivine(r io.Reader) error {
	dec := rivbin.NewDecoder(r)
	var version uint32
	var sidechainID crypto.Hash
	var epochNumber int32
	var quality int64
	var endEpochBlockHash crypto.Hash
	if err := dec.DecodeAll(&version, &sidechainID, &epochNumber, &quality, &endEpochBlockHash); err != nil {
		return err
	}
	proof, err := rivbin.ReadDataSlice(r, 1<<20)
	if err != nil {
		return err
	}
	var inputs []CertificateInput
	if err := dec.Decode(&inputs); err != nil {
		return err
	}
	var regular []Output
	if err := dec.Decode(&regular); err != nil {
		return err
	}
	var backward []BackwardTransferOutput
	if err := dec.Decode(&backward); err != nil {
		return err
	}

	outputs := make([]Output, 0, len(regular)+len(backward))
	outputs = append(outputs, regular...)
	firstBwtPos := len(regular)
	for _, bo := range backward {
		outputs = append(outputs, bo.Expand())
	}

	built, err := NewCertificate(version, sidechainID, epochNumber, quality, endEpochBlockHash,
		proof, inputs, outputs, firstBwtPos)
	if err != nil {
		return err
	}
	*c = built
	return nil
}

// DeserializeCertificate decodes a certificate from its canonical byte
// encoding.
func DeserializeCertificate(b []byte) (Certificate, error) {
	var c Certificate
	if err := c.UnmarshalRivine(bytes.NewReader(b)); err != nil {
		return Certificate{}, err
	}
	return c, nil
}

// Serialize encodes c to its canonical byte form.
func (c Certificate) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := c.MarshalRivine(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
