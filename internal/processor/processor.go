// Package processor turns the TipJar logs of a block range into ledger records.
package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/chain"
	icommon "github.com/goran-ethernal/TipJarIndexer/internal/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/contract"
	"github.com/goran-ethernal/TipJarIndexer/internal/correlator"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
	"github.com/goran-ethernal/TipJarIndexer/internal/metrics"
	"github.com/goran-ethernal/TipJarIndexer/pkg/ledger"
)

// LogFetcher returns the decoded logs of one event in a block range.
// It is satisfied by *chain.Reader.
type LogFetcher interface {
	FetchLogs(ctx context.Context, address common.Address, eventSignature common.Hash,
		from, to uint64) ([]chain.LogEntry, error)
}

var _ LogFetcher = (*chain.Reader)(nil)

// Processor joins TipSent and TipMessage logs and stores the resulting tips.
type Processor struct {
	address common.Address
	reader  LogFetcher
	store   ledger.Store
	log     *logger.Logger
}

// New creates a Processor for the contract at address.
func New(address common.Address, reader LogFetcher, store ledger.Store, log *logger.Logger) *Processor {
	return &Processor{
		address: address,
		reader:  reader,
		store:   store,
		log:     log.WithComponent(icommon.ComponentProcessor),
	}
}

// ProcessRange indexes the tips emitted in [from, to] and returns how many were new.
// A reader or storage failure aborts the whole range. Logs that do not decode are skipped.
// Running it again over the same range leaves the ledger unchanged.
func (p *Processor) ProcessRange(ctx context.Context, from, to uint64) (int, error) {
	start := time.Now()

	messages, err := p.reader.FetchLogs(ctx, p.address, contract.TipMessageEventSignature, from, to)
	if err != nil {
		return 0, fmt.Errorf("fetch %s logs: %w", contract.TipMessageEventName, err)
	}

	// one correlator per pass: a message is only joined to a tip seen in the same range
	corr := correlator.New()
	for _, entry := range messages {
		message, err := p.decodeMessage(entry)
		if err != nil {
			p.skip(contract.TipMessageEventName, entry, err)
			continue
		}
		corr.Remember(message.TipID.String(), message.Message)
	}

	sent, err := p.reader.FetchLogs(ctx, p.address, contract.TipSentEventSignature, from, to)
	if err != nil {
		return 0, fmt.Errorf("fetch %s logs: %w", contract.TipSentEventName, err)
	}

	tips := make([]*ledger.Tip, 0, len(sent))
	for _, entry := range sent {
		event, err := p.decodeTip(entry)
		if err != nil {
			p.skip(contract.TipSentEventName, entry, err)
			continue
		}

		tipID := event.TipID.String()
		message, _ := corr.Take(tipID)

		tips = append(tips, &ledger.Tip{
			TipID:       tipID,
			Sender:      strings.ToLower(event.Sender.Hex()),
			Recipient:   strings.ToLower(event.Recipient.Hex()),
			Amount:      event.Amount,
			Fee:         event.Fee,
			Message:     message,
			TxHash:      entry.TxHash,
			BlockNumber: entry.BlockNumber,
			Timestamp:   event.Timestamp.Uint64(),
		})
	}

	inserted, err := p.store.InsertTips(ctx, tips)
	if err != nil {
		return 0, fmt.Errorf("store tips of [%d, %d]: %w", from, to, err)
	}

	for _, tip := range inserted {
		p.log.Infow("new tip",
			"tip_id", tip.TipID,
			"amount", contract.FormatEther(tip.Amount)+" ETH",
			"from", icommon.ShortenAddress(tip.Sender),
			"to", icommon.ShortenAddress(tip.Recipient),
			"block", tip.BlockNumber,
		)
	}

	if orphans := corr.Drain(); len(orphans) > 0 {
		metrics.OrphanMessagesAdd(len(orphans))
		p.log.Debugf("dropping %d messages without a tip in [%d, %d]: %v", len(orphans), from, to, orphans)
	}

	metrics.RangeProcessingTimeLog(time.Since(start))

	return len(inserted), nil
}

func (p *Processor) decodeMessage(entry chain.LogEntry) (*contract.TipMessageEvent, error) {
	if entry.Err != nil {
		return nil, entry.Err
	}
	return contract.TipMessageFromFields(entry.Fields)
}

func (p *Processor) decodeTip(entry chain.LogEntry) (*contract.TipSentEvent, error) {
	if entry.Err != nil {
		return nil, entry.Err
	}

	event, err := contract.TipSentFromFields(entry.Fields)
	if err != nil {
		return nil, err
	}

	if !event.Timestamp.IsUint64() {
		return nil, fmt.Errorf("%w: timestamp %s out of range", contract.ErrMalformedEvent, event.Timestamp)
	}

	return event, nil
}

func (p *Processor) skip(event string, entry chain.LogEntry, err error) {
	metrics.MalformedLogInc(event)
	p.log.Warnf("skipping %s log %s:%d in block %d: %v",
		event, entry.TxHash.Hex(), entry.LogIndex, entry.BlockNumber, err)
}
