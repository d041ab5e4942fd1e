package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/internal/metrics"
	"github.com/layer-3/dropregards/ports"
)

// Paging limits for regard lists
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

const defaultNFTDesign = "default"

// Verifier confirms a claimed transfer against the ledger
type Verifier interface {
	Verify(ctx context.Context, claim core.TransferClaim) error
}

// SendRegard is the input for sending a regard
type SendRegard struct {
	Recipient            string
	Amount               decimal.Decimal
	Message              string
	IncludeNFT           bool
	NFTDesign            string
	TransactionSignature string
}

// RegardService records verified regards and reports on them
type RegardService struct {
	regards  ports.RegardStore
	profiles ports.ProfileStore
	verifier Verifier
	eventPub ports.EventPublisher
	logger   *zap.Logger
}

// NewRegardService creates a new regard service
func NewRegardService(
	regards ports.RegardStore,
	profiles ports.ProfileStore,
	verifier Verifier,
	eventPub ports.EventPublisher,
	logger *zap.Logger,
) *RegardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegardService{
		regards:  regards,
		profiles: profiles,
		verifier: verifier,
		eventPub: eventPub,
		logger:   logger,
	}
}

// Send verifies the transfer behind in and stores it as a regard from sender
func (s *RegardService) Send(ctx context.Context, sender string, in SendRegard) (*core.Regard, error) {
	if err := validateSend(in); err != nil {
		return nil, err
	}

	recipient, err := s.profiles.FindByUsername(ctx, in.Recipient)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("recipient %q: %w", in.Recipient, core.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up recipient: %w", err)
	}
	if recipient.WalletAddress == sender {
		return nil, fmt.Errorf("%w: cannot send a regard to yourself", core.ErrValidation)
	}

	var senderUsername string
	if profile, err := s.profiles.FindByWallet(ctx, sender); err == nil {
		senderUsername = profile.Username
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up sender: %w", err)
	}

	claim := core.TransferClaim{
		Signature: in.TransactionSignature,
		Sender:    sender,
		Receiver:  recipient.WalletAddress,
		Amount:    in.Amount,
	}
	if err := s.verifier.Verify(ctx, claim); err != nil {
		return nil, err
	}

	regard := &core.Regard{
		ID:                   uuid.New().String(),
		Sender:               core.Party{WalletAddress: sender, Username: senderUsername},
		Recipient:            core.Party{WalletAddress: recipient.WalletAddress, Username: recipient.Username},
		Amount:               in.Amount,
		Message:              in.Message,
		IncludesNFT:          in.IncludeNFT,
		TransactionSignature: in.TransactionSignature,
		Status:               core.RegardCompleted,
	}
	if in.IncludeNFT {
		regard.NFTDesign = in.NFTDesign
		if regard.NFTDesign == "" {
			regard.NFTDesign = defaultNFTDesign
		}
	}

	if err := s.regards.Create(ctx, regard); err != nil {
		return nil, err
	}
	metrics.RegardSent()

	s.logger.Info("regard sent",
		zap.String("id", regard.ID),
		zap.String("sender", sender),
		zap.String("recipient", recipient.WalletAddress),
		zap.String("amount", regard.Amount.String()),
		zap.String("signature", regard.TransactionSignature),
	)

	if err := s.eventPub.PublishRegardSent(ctx, regard); err != nil {
		s.logger.Warn("failed to publish regard sent event", zap.String("id", regard.ID), zap.Error(err))
	}

	return regard, nil
}

func validateSend(in SendRegard) error {
	switch {
	case in.Recipient == "":
		return fmt.Errorf("%w: recipient is required", core.ErrValidation)
	case in.Message == "":
		return fmt.Errorf("%w: message is required", core.ErrValidation)
	case in.TransactionSignature == "":
		return fmt.Errorf("%w: transactionSignature is required", core.ErrValidation)
	case !in.Amount.IsPositive():
		return fmt.Errorf("%w: amount must be greater than 0", core.ErrValidation)
	}
	return nil
}

// List returns the regards received by address, newest first
func (s *RegardService) List(ctx context.Context, address string, limit, offset int) ([]core.Regard, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.regards.ListByRecipient(ctx, address, limit, offset)
}

// Stats aggregates the regards received by address
func (s *RegardService) Stats(ctx context.Context, address string) (*core.RegardStats, error) {
	return s.regards.Stats(ctx, address)
}

// PublicStats aggregates the regards received by the user registered as username
func (s *RegardService) PublicStats(ctx context.Context, username string) (*core.RegardStats, error) {
	profile, err := s.profiles.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.regards.Stats(ctx, profile.WalletAddress)
}
