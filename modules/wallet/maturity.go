package wallet

import (
	"github.com/bwtcert/scwallet/modules"
	"github.com/bwtcert/scwallet/types"
)

// creditCache memoizes the last credit computation for an entry, keyed by
// a validity token derived from (tip height, ceased flag, block anchor).
type creditCache struct {
	valid          bool
	token          cacheToken
	credit         types.Amount
	immatureCredit types.Amount
}

type cacheToken struct {
	tipHeight    types.BlockHeight
	areBwtCeased bool
	blockAnchor  [32]byte
}

func (e *CertEntry) tokenFor(v modules.ChainView) cacheToken {
	return cacheToken{
		tipHeight:    v.TipHeight(),
		areBwtCeased: e.AreBwtCeased,
		blockAnchor:  e.BlockAnchor,
	}
}

// OwnerFunc decides whether a locking predicate is owned by a wallet key.
// It is left abstract here so the evaluator does not depend on key storage;
// modules/wallet/keys.go supplies the concrete implementation used by
// Wallet.
type OwnerFunc func(types.UnlockHash) bool

// EntryKind distinguishes the three output-maturity regimes below. A
// Wallet populated through the certificate sync path only ever creates
// EntryKindCertificate entries; the other two kinds exist so the shared
// depth/classification machinery can be exercised the same way a host
// tracking coinbase and regular-transaction outputs alongside certificates
// would use it.
type EntryKind int

const (
	// EntryKindCertificate is the only kind the certificate sync path
	// constructs.
	EntryKindCertificate EntryKind = iota
	// EntryKindCoinbase applies the fixed COINBASE_MATURITY rule to every
	// output.
	EntryKindCoinbase
	// EntryKindRegular is always MATURE once depth >= 0.
	EntryKindRegular
)

func (e *CertEntry) isCoinbase() bool { return e.Kind == EntryKindCoinbase }

func (e *CertEntry) isRegularTransaction() bool { return e.Kind == EntryKindRegular }

// OutputStatusAt classifies the output at position pos of e's certificate
// given chain view v.
func (e *CertEntry) OutputStatusAt(pos int, v modules.ChainView) modules.OutputStatus {
	depth := e.Depth(v)
	if depth < 0 {
		return modules.StatusNotApplicable
	}
	if e.isCoinbase() {
		if depth > types.CoinbaseMaturity {
			return modules.StatusMature
		}
		return modules.StatusImmature
	}
	if e.isRegularTransaction() {
		return modules.StatusMature
	}

	firstBwtPos := e.Certificate.FirstBwtPos()
	if pos < firstBwtPos {
		// change output: behaves like a regular transaction output once
		// confirmed or in mempool.
		if depth >= 0 {
			return modules.StatusMature
		}
		return modules.StatusNotApplicable
	}

	// backward-transfer output.
	if e.AreBwtCeased {
		return modules.StatusNotApplicable
	}
	if depth > int(e.BwtMaturityDepth) {
		return modules.StatusMature
	}
	return modules.StatusImmature
}

// GetCredit sums the value of every owned, MATURE output. The result is
// memoized per chain-view snapshot.
func (e *CertEntry) GetCredit(v modules.ChainView, filter modules.CreditFilter, owned OwnerFunc) (types.Amount, error) {
	credit, _, err := e.getCredits(v, filter, owned)
	return credit, err
}

// GetImmatureCredit sums the value of every owned, IMMATURE output.
func (e *CertEntry) GetImmatureCredit(v modules.ChainView, filter modules.CreditFilter, owned OwnerFunc) (types.Amount, error) {
	_, immature, err := e.getCredits(v, filter, owned)
	return immature, err
}

func (e *CertEntry) getCredits(v modules.ChainView, filter modules.CreditFilter, owned OwnerFunc) (types.Amount, types.Amount, error) {
	token := e.tokenFor(v)
	if e.cache.valid && e.cache.token == token {
		return e.cache.credit, e.cache.immatureCredit, nil
	}

	outputs := e.Certificate.Outputs()
	firstBwtPos := e.Certificate.FirstBwtPos()
	depth := e.Depth(v)

	var credit, immature types.Amount
	for pos, o := range outputs {
		if filter == modules.CreditFilterSpendable && owned != nil && !owned(o.UnlockHash) {
			continue
		}
		status := e.OutputStatusAt(pos, v)
		switch {
		case status == modules.StatusMature:
			credit += o.Value
		case status == modules.StatusImmature && pos >= firstBwtPos && !e.AreBwtCeased && depth > 0:
			// mempool backward outputs (depth == 0) do not count toward
			// immature credit, only toward IMMATURE status.
			immature += o.Value
		}
		if !credit.Valid() || !immature.Valid() {
			return 0, 0, types.ErrAmountOutOfRange
		}
	}

	if e.isCoinbase() {
		switch {
		case depth > 0 && depth <= types.CoinbaseMaturity:
			total, err := e.Certificate.TotalOutputValue()
			if err != nil {
				return 0, 0, err
			}
			credit, immature = 0, total
		case depth > types.CoinbaseMaturity:
			total, err := e.Certificate.TotalOutputValue()
			if err != nil {
				return 0, 0, err
			}
			credit, immature = total, 0
		}
	}

	e.cache = creditCache{valid: true, token: token, credit: credit, immatureCredit: immature}
	return credit, immature, nil
}

// InvalidateCache forces the next GetCredit/GetImmatureCredit call to
// recompute rather than serve a memoized result. Call sites that mutate
// AreBwtCeased or BlockAnchor must invoke this explicitly unless they go
// through Wallet's sync entry points, which already do.
func (e *CertEntry) InvalidateCache() {
	e.cache = creditCache{}
}
