// Package chain reads the TipJar contract logs from a node.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	icommon "github.com/goran-ethernal/TipJarIndexer/internal/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/contract"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
	"github.com/goran-ethernal/TipJarIndexer/internal/rpc"
	pkgrpc "github.com/goran-ethernal/TipJarIndexer/pkg/rpc"
)

// LogEntry is one contract log in chain order.
type LogEntry struct {
	// Event is the ABI event name, empty if the topic matched no event
	Event string
	// Fields holds the decoded values keyed by ABI argument name
	Fields map[string]interface{}
	// Err is set when the log could not be decoded, Fields is nil then
	Err error

	TxHash      common.Hash
	BlockNumber uint64
	LogIndex    uint
}

// Reader fetches and decodes logs. Every call goes to the node, nothing is cached.
type Reader struct {
	client pkgrpc.EthClient
	abi    abi.ABI
	log    *logger.Logger
}

// NewReader creates a Reader decoding logs with contractABI.
func NewReader(client pkgrpc.EthClient, contractABI abi.ABI, log *logger.Logger) *Reader {
	return &Reader{
		client: client,
		abi:    contractABI,
		log:    log.WithComponent(icommon.ComponentChainReader),
	}
}

// CurrentHeight returns the latest block number of the node.
func (r *Reader) CurrentHeight(ctx context.Context) (uint64, error) {
	height, err := r.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: block number: %w", ErrChainUnavailable, err)
	}

	return height, nil
}

// FetchLogs returns the logs of address with topic0 == eventSignature in the inclusive
// range [from, to], ordered by block and log index. Logs dropped by a reorg are skipped.
// A log that fails to decode is returned with Err set so the caller decides what to do with it.
func (r *Reader) FetchLogs(ctx context.Context, address common.Address, eventSignature common.Hash,
	from, to uint64) ([]LogEntry, error) {
	if from > to {
		return nil, fmt.Errorf("%w: from %d > to %d", ErrInvalidRange, from, to)
	}

	raw, err := r.getLogs(ctx, address, eventSignature, from, to)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(raw, func(i, j int) bool {
		if raw[i].BlockNumber != raw[j].BlockNumber {
			return raw[i].BlockNumber < raw[j].BlockNumber
		}
		return raw[i].Index < raw[j].Index
	})

	entries := make([]LogEntry, 0, len(raw))
	for _, l := range raw {
		if l.Removed {
			continue
		}

		entry := LogEntry{
			TxHash:      l.TxHash,
			BlockNumber: l.BlockNumber,
			LogIndex:    l.Index,
		}
		entry.Event, entry.Fields, entry.Err = contract.ParseLog(r.abi, l)
		entries = append(entries, entry)
	}

	r.log.Debugf("fetched %d logs for topic %s in [%d, %d]", len(entries), eventSignature.Hex(), from, to)

	return entries, nil
}

// getLogs queries [from, to], narrowing the request whenever the node refuses it
// for returning too many results, until the whole range is covered.
func (r *Reader) getLogs(ctx context.Context, address common.Address, topic common.Hash,
	from, to uint64) ([]types.Log, error) {
	var logs []types.Log

	for {
		end := to

		chunk, err := r.client.GetLogs(ctx, filter(address, topic, from, end))
		for err != nil {
			tooMany, errData := rpc.IsTooManyResultsError(err)
			if !tooMany {
				return nil, fmt.Errorf("%w: get logs [%d, %d]: %w", ErrChainUnavailable, from, end, err)
			}

			narrowed, ok := narrowRange(from, end, errData)
			if !ok {
				return nil, fmt.Errorf("%w: single block %d has too many logs", ErrChainUnavailable, from)
			}

			r.log.Infof("too many logs in [%d, %d], retrying with [%d, %d]", from, end, from, narrowed)
			end = narrowed

			chunk, err = r.client.GetLogs(ctx, filter(address, topic, from, end))
		}

		logs = append(logs, chunk...)

		if end >= to {
			return logs, nil
		}
		from = end + 1
	}
}

// narrowRange picks a smaller end block for [from, to]. The node's suggestion is used
// when it starts at from and shrinks the range, otherwise the range is halved.
func narrowRange(from, to uint64, errData string) (uint64, bool) {
	if suggestedFrom, suggestedTo, ok := rpc.ParseSuggestedBlockRange(errData); ok &&
		suggestedFrom == from && suggestedTo >= from && suggestedTo < to {
		return suggestedTo, true
	}

	if from == to {
		return 0, false
	}

	const splitBy = 2
	return from + (to-from)/splitBy, true
}

func filter(address common.Address, topic common.Hash, from, to uint64) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{address},
		Topics:    [][]common.Hash{{topic}},
	}
}
