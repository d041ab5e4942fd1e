package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegardStatus is the lifecycle state of a regard
type RegardStatus string

const (
	RegardPending   RegardStatus = "pending"
	RegardCompleted RegardStatus = "completed"
	RegardFailed    RegardStatus = "failed"
)

// Party identifies one side of a regard
type Party struct {
	WalletAddress string `json:"walletAddress"`
	Username      string `json:"username"`
}

// Regard is a verified value transfer with a message attached
type Regard struct {
	ID                   string          `json:"id"`
	Sender               Party           `json:"sender"`
	Recipient            Party           `json:"recipient"`
	Amount               decimal.Decimal `json:"amount"`
	Message              string          `json:"message"`
	IncludesNFT          bool            `json:"includesNft"`
	NFTDesign            string          `json:"nftDesign,omitempty"`
	TransactionSignature string          `json:"transactionSignature"`
	Status               RegardStatus    `json:"status"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// RegardStats aggregates the completed regards received by one wallet
type RegardStats struct {
	TotalAmount   decimal.Decimal `json:"totalSol"`
	TotalRegards  int64           `json:"totalRegards"`
	TotalNFTs     int64           `json:"totalNfts"`
	UniqueSenders int64           `json:"uniqueSenders"`
}
