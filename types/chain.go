package types

// BlockHeight is a type-safe integer representing a position on the
// mainchain.
type BlockHeight uint64

// Timestamp is a type-safe replacement for a unix timestamp.
type Timestamp uint64

// Sentinel values that are observable by consensus.
const (
	// EpochNull marks a certificate's epoch_number field as null.
	EpochNull int32 = -1
	// EpochNotInitialized marks a certificate's epoch_number field as
	// not-yet-initialized.
	EpochNotInitialized int32 = -2
	// QualityNull marks a certificate's quality field as null.
	QualityNull int64 = -1
	// CoinbaseMaturity is the fixed confirmation depth at which a
	// coinbase output becomes spendable.
	CoinbaseMaturity = 100
	// IndexInBlockNotInBlock marks a wallet entry as not (yet) embedded
	// in any block.
	IndexInBlockNotInBlock int32 = -1
	// NullBackwardTransferValue is the sentinel value carried by a
	// backward-transfer output to mark it as the null form.
	NullBackwardTransferValue Amount = -1
)
