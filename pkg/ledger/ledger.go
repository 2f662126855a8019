package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// DefaultAddressLimit is the listing size used when a per-address query passes limit 0.
	DefaultAddressLimit = 50
	// DefaultRecentLimit is the listing size used when RecentTips is called with limit 0.
	DefaultRecentLimit = 20
)

// Tip is a single decoded and correlated TipSent event. It is immutable once stored.
type Tip struct {
	// TipID is the contract-assigned uint256 id in base 10
	TipID string `meddler:"tip_id"`
	// Sender and Recipient are lowercase hex addresses
	Sender    string `meddler:"sender"`
	Recipient string `meddler:"recipient"`
	// Amount is the value received by the recipient, in wei
	Amount *big.Int `meddler:"amount,uint256"`
	// Fee is the protocol fee, in wei
	Fee         *big.Int    `meddler:"fee,uint256"`
	Message     string      `meddler:"message"`
	TxHash      common.Hash `meddler:"tx_hash,hash"`
	BlockNumber uint64      `meddler:"block_number"`
	// Timestamp is the unix time carried in the event payload
	Timestamp uint64 `meddler:"timestamp"`
}

// AddressStats aggregates the tips received by one address.
type AddressStats struct {
	TotalTips uint64
	// TotalReceived is the exact sum of Amount
	TotalReceived *big.Int
	// UniqueSupporters counts distinct senders
	UniqueSupporters uint64
}

// GlobalStats aggregates every tip in the ledger.
type GlobalStats struct {
	TotalTips      uint64
	TotalVolume    *big.Int
	TotalFees      *big.Int
	UniqueCreators uint64
	UniqueTippers  uint64
}

// Store is the durable tip ledger together with the indexing checkpoint.
type Store interface {
	// Insert stores the tip unless a tip with the same id exists.
	// It reports whether a new row was written.
	Insert(ctx context.Context, tip *Tip) (bool, error)

	// InsertTips stores all tips in one transaction, skipping ids already present.
	// It returns the tips that were newly written, in input order.
	InsertTips(ctx context.Context, tips []*Tip) ([]*Tip, error)

	// GetTip returns the tip with the given id or ErrTipNotFound.
	GetTip(ctx context.Context, tipID string) (*Tip, error)

	// QueryByRecipient returns tips received by address, newest first.
	QueryByRecipient(ctx context.Context, address string, limit uint64) ([]*Tip, error)

	// QueryBySender returns tips sent by address, newest first.
	QueryBySender(ctx context.Context, address string, limit uint64) ([]*Tip, error)

	// RecentTips returns the latest tips across all addresses, newest first.
	RecentTips(ctx context.Context, limit uint64) ([]*Tip, error)

	// AggregateForAddress returns statistics of the tips received by address.
	AggregateForAddress(ctx context.Context, address string) (*AddressStats, error)

	// GlobalAggregate returns statistics over the whole ledger.
	GlobalAggregate(ctx context.Context) (*GlobalStats, error)

	// GetCheckpoint returns the last fully processed block, 0 on a fresh ledger.
	GetCheckpoint(ctx context.Context) (uint64, error)

	// SetCheckpoint records that every block up to blockNum is stored.
	// Moving the checkpoint backwards fails with ErrCheckpointRegression.
	SetCheckpoint(ctx context.Context, blockNum uint64) error

	// Close releases the underlying database.
	Close() error
}
