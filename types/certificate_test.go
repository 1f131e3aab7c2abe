package types

import (
	"testing"

	"github.com/bwtcert/scwallet/crypto"
)

func buildTestCertificate(t *testing.T) Certificate {
	t.Helper()
	m := NewMutableCertificate()
	m.Version = CertificateVersion
	m.SidechainID = crypto.HashBytes([]byte("sidechain"))
	m.EpochNumber = 0
	m.Quality = 7
	m.EndEpochBlockHash = crypto.HashBytes([]byte("end-epoch-block"))
	m.Proof = []byte("proof-bytes")

	if err := m.PushChange(Output{Value: 10, UnlockHash: UnlockHash{1, 2, 3}}); err != nil {
		t.Fatalf("PushChange: %v", err)
	}
	if err := m.PushChange(Output{Value: 10, UnlockHash: UnlockHash{4, 5, 6}}); err != nil {
		t.Fatalf("PushChange: %v", err)
	}
	for i := 0; i < 4; i++ {
		var pkh PubKeyHash
		pkh[0] = byte(i + 1)
		if err := m.PushBackward(BackwardTransferOutput{Value: 3, PubKeyHash: pkh}.Expand()); err != nil {
			t.Fatalf("PushBackward: %v", err)
		}
	}

	c, err := m.Certificate()
	if err != nil {
		t.Fatalf("Certificate(): %v", err)
	}
	return c
}

func TestCertificateRoundTrip(t *testing.T) {
	c := buildTestCertificate(t)

	if c.FirstBwtPos() != 2 {
		t.Fatalf("FirstBwtPos() = %d, want 2", c.FirstBwtPos())
	}

	b, err := c.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	c2, err := DeserializeCertificate(b)
	if err != nil {
		t.Fatalf("DeserializeCertificate: %v", err)
	}

	if c2.FirstBwtPos() != c.FirstBwtPos() {
		t.Errorf("FirstBwtPos mismatch: %d != %d", c2.FirstBwtPos(), c.FirstBwtPos())
	}
	if c2.Hash() != c.Hash() {
		t.Errorf("Hash mismatch after round-trip")
	}
	outs1, outs2 := c.Outputs(), c2.Outputs()
	if len(outs1) != len(outs2) {
		t.Fatalf("output count mismatch: %d != %d", len(outs1), len(outs2))
	}
	for i := range outs1 {
		if outs1[i].Value != outs2[i].Value {
			t.Errorf("output %d value mismatch: %d != %d", i, outs1[i].Value, outs2[i].Value)
		}
		if string(outs1[i].UnlockHash) != string(outs2[i].UnlockHash) {
			t.Errorf("output %d unlock hash mismatch", i)
		}
	}
}

func TestCertificateHashMatchesSha256d(t *testing.T) {
	c := buildTestCertificate(t)
	b, err := c.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if got := crypto.HashBytes(b); got != c.Hash() {
		t.Errorf("Hash() = %v, want SHA256d(serialize(c)) = %v", c.Hash(), got)
	}
}

func TestCertificateShapePartition(t *testing.T) {
	c := buildTestCertificate(t)
	outs := c.Outputs()
	for i, o := range outs {
		isBwt := c.IsBackwardTransfer(i)
		_, isP2PKH := o.UnlockHash.PubKeyHash()
		if i < c.FirstBwtPos() && isBwt {
			t.Errorf("output %d should be change, reported as backward transfer", i)
		}
		if i >= c.FirstBwtPos() && !isP2PKH {
			t.Errorf("output %d is a backward transfer but is not a canonical P2PKH predicate", i)
		}
	}
}

func TestCertificateValueSums(t *testing.T) {
	c := buildTestCertificate(t)

	change, err := c.GetValueOfChange()
	if err != nil {
		t.Fatalf("GetValueOfChange: %v", err)
	}
	if change != 20 {
		t.Errorf("GetValueOfChange() = %d, want 20", change)
	}

	bwt, err := c.GetValueOfBackwardTransfers()
	if err != nil {
		t.Fatalf("GetValueOfBackwardTransfers: %v", err)
	}
	if bwt != 12 {
		t.Errorf("GetValueOfBackwardTransfers() = %d, want 12", bwt)
	}

	fee, err := c.GetFeeAmount(25)
	if err != nil {
		t.Fatalf("GetFeeAmount: %v", err)
	}
	if fee != 5 {
		t.Errorf("GetFeeAmount(25) = %d, want 5", fee)
	}
}

func TestCertificateIsNull(t *testing.T) {
	m := NewMutableCertificate()
	m.EpochNumber = EpochNull
	c, err := m.Certificate()
	if err != nil {
		t.Fatalf("Certificate(): %v", err)
	}
	if !c.IsNull() {
		t.Errorf("expected empty certificate to be null")
	}

	full := buildTestCertificate(t)
	if full.IsNull() {
		t.Errorf("expected populated certificate to not be null")
	}
}
