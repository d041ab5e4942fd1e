package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/internal/metrics"
	"github.com/layer-3/dropregards/ports"
)

// AmountTolerance is the largest difference in SOL between a claimed amount
// and an observed balance change that still counts as a match
var AmountTolerance = decimal.New(1, -4)

// TransactionVerifier confirms that a ledger transaction moved the claimed
// amount from the claimed sender to the claimed receiver
type TransactionVerifier struct {
	ledger ports.Ledger
	logger *zap.Logger
}

// NewTransactionVerifier creates a new transaction verifier
func NewTransactionVerifier(ledger ports.Ledger, logger *zap.Logger) *TransactionVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionVerifier{
		ledger: ledger,
		logger: logger,
	}
}

// Verify returns nil when claim matches the finalized transaction. Any other
// outcome, including an unreachable ledger, wraps core.ErrVerificationFailed.
func (v *TransactionVerifier) Verify(ctx context.Context, claim core.TransferClaim) error {
	tx, err := v.ledger.GetTransaction(ctx, claim.Signature)
	if err != nil {
		result := metrics.ResultInvalid
		if errors.Is(err, core.ErrLedgerUnavailable) {
			result = metrics.ResultError
		}
		metrics.TransactionVerified(result)
		v.logger.Warn("transaction lookup failed",
			zap.String("signature", claim.Signature),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", core.ErrVerificationFailed, err)
	}

	if err := checkTransfer(tx, claim); err != nil {
		metrics.TransactionVerified(metrics.ResultInvalid)
		v.logger.Info("transaction rejected",
			zap.String("signature", claim.Signature),
			zap.String("sender", claim.Sender),
			zap.String("receiver", claim.Receiver),
			zap.String("amount", claim.Amount.String()),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", core.ErrVerificationFailed, err)
	}

	metrics.TransactionVerified(metrics.ResultValid)
	return nil
}

func checkTransfer(tx *core.Transaction, claim core.TransferClaim) error {
	if tx.Failed {
		return errors.New("transaction failed on chain")
	}

	senderIdx := tx.AccountIndex(claim.Sender)
	if senderIdx < 0 {
		return errors.New("sender not in transaction")
	}
	receiverIdx := tx.AccountIndex(claim.Receiver)
	if receiverIdx < 0 {
		return errors.New("receiver not in transaction")
	}

	senderPre, senderPost, err := balances(tx, senderIdx)
	if err != nil {
		return fmt.Errorf("sender: %w", err)
	}
	receiverPre, receiverPost, err := balances(tx, receiverIdx)
	if err != nil {
		return fmt.Errorf("receiver: %w", err)
	}

	senderDelta := senderPre.Sub(senderPost)
	receiverDelta := receiverPost.Sub(receiverPre)
	fee := core.LamportsToSOL(tx.Fee)

	if receiverDelta.Sub(claim.Amount).Abs().GreaterThanOrEqual(AmountTolerance) {
		return fmt.Errorf("receiver got %s, claimed %s", receiverDelta, claim.Amount)
	}
	if senderDelta.Sub(claim.Amount).Sub(fee).Abs().GreaterThanOrEqual(AmountTolerance) {
		return fmt.Errorf("sender paid %s, claimed %s plus fee %s", senderDelta, claim.Amount, fee)
	}

	return nil
}

func balances(tx *core.Transaction, idx int) (pre, post decimal.Decimal, err error) {
	if idx >= len(tx.PreBalances) || idx >= len(tx.PostBalances) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("no balance at index %d", idx)
	}
	return core.LamportsToSOL(tx.PreBalances[idx]), core.LamportsToSOL(tx.PostBalances[idx]), nil
}
