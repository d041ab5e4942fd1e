package core

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// LamportsPerSOL is the number of smallest ledger units in one SOL.
const LamportsPerSOL = 1_000_000_000

// lamportExp is the decimal exponent of one lamport.
const lamportExp = -9

// Transaction is the part of a finalized ledger transaction needed to verify a transfer.
// Balances are indexed the same way as Accounts.
type Transaction struct {
	Signature    string
	Slot         uint64
	BlockTime    int64
	Accounts     []string
	PreBalances  []uint64
	PostBalances []uint64
	Fee          uint64
	Failed       bool
}

// AccountIndex returns the position of address in the account list, or -1.
func (t *Transaction) AccountIndex(address string) int {
	for i, a := range t.Accounts {
		if a == address {
			return i
		}
	}
	return -1
}

// TransferClaim is what a caller asserts a transaction signature represents.
type TransferClaim struct {
	Signature string
	Sender    string
	Receiver  string
	Amount    decimal.Decimal
}

// LamportsToSOL converts an amount of lamports into SOL without rounding.
func LamportsToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), lamportExp)
}
