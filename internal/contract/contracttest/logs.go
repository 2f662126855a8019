// Package contracttest builds raw TipJar logs for tests.
package contracttest

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/TipJarIndexer/internal/contract"
)

// TipSent describes a TipSent log to encode.
type TipSent struct {
	TipID       int64
	Sender      common.Address
	Recipient   common.Address
	Amount      *big.Int
	Fee         *big.Int
	Timestamp   int64
	BlockNumber uint64
	LogIndex    uint
	TxHash      common.Hash
}

// TipSentLog encodes a TipSent event the way the contract emits it.
func TipSentLog(address common.Address, tip TipSent) types.Log {
	event := contract.TipJarABI.Events[contract.TipSentEventName]

	data, err := event.Inputs.NonIndexed().Pack(tip.Amount, tip.Fee, big.NewInt(tip.Timestamp))
	if err != nil {
		panic(err)
	}

	return types.Log{
		Address: address,
		Topics: []common.Hash{
			event.ID,
			common.BigToHash(big.NewInt(tip.TipID)),
			common.BytesToHash(tip.Sender.Bytes()),
			common.BytesToHash(tip.Recipient.Bytes()),
		},
		Data:        data,
		BlockNumber: tip.BlockNumber,
		Index:       tip.LogIndex,
		TxHash:      tip.TxHash,
	}
}

// TipMessageLog encodes a TipMessage event.
func TipMessageLog(address common.Address, tipID int64, message string, blockNumber uint64, logIndex uint) types.Log {
	event := contract.TipJarABI.Events[contract.TipMessageEventName]

	data, err := event.Inputs.NonIndexed().Pack(message)
	if err != nil {
		panic(err)
	}

	return types.Log{
		Address:     address,
		Topics:      []common.Hash{event.ID, common.BigToHash(big.NewInt(tipID))},
		Data:        data,
		BlockNumber: blockNumber,
		Index:       logIndex,
	}
}
