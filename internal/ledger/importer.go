package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	internalcommon "github.com/goran-ethernal/TipJarIndexer/internal/common"
)

// legacyTip is one entry of the tips.json file written by the earlier file based indexer.
type legacyTip struct {
	TipID       string `json:"tipId"`
	Sender      string `json:"sender"`
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"`
	Fee         string `json:"fee"`
	Message     string `json:"message"`
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	Timestamp   uint64 `json:"timestamp"`
}

type legacyFile struct {
	Tips            []legacyTip `json:"tips"`
	LastBlockNumber uint64      `json:"lastBlockNumber"`
}

// ImportResult summarizes an ImportJSON run.
type ImportResult struct {
	Read       int
	Imported   int
	Invalid    int
	Checkpoint uint64
}

// ImportJSON loads a legacy {"tips":[...],"lastBlockNumber":N} document into the ledger.
// Tips already present are skipped and entries that do not parse are counted as invalid.
// The checkpoint is raised to lastBlockNumber if that is higher than the stored one.
func (s *Store) ImportJSON(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var file legacyFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode legacy tips file: %w", err)
	}

	result := &ImportResult{Read: len(file.Tips)}
	tips := make([]*Tip, 0, len(file.Tips))

	for _, entry := range file.Tips {
		tip, err := entry.toTip()
		if err != nil {
			s.log.Warnf("skipping legacy tip %q: %v", entry.TipID, err)
			result.Invalid++
			continue
		}
		tips = append(tips, tip)
	}

	inserted, err := s.InsertTips(ctx, tips)
	if err != nil {
		return nil, err
	}
	result.Imported = len(inserted)

	current, err := s.GetCheckpoint(ctx)
	if err != nil {
		return nil, err
	}

	result.Checkpoint = current
	if file.LastBlockNumber > current {
		if err := s.SetCheckpoint(ctx, file.LastBlockNumber); err != nil {
			return nil, err
		}
		result.Checkpoint = file.LastBlockNumber
	}

	s.log.Infof("imported %d of %d legacy tips (%d invalid), checkpoint=%d",
		result.Imported, result.Read, result.Invalid, result.Checkpoint)

	return result, nil
}

func (t legacyTip) toTip() (*Tip, error) {
	if _, ok := new(big.Int).SetString(t.TipID, 10); !ok {
		return nil, fmt.Errorf("tip id is not a decimal integer")
	}

	if !common.IsHexAddress(t.Sender) || !common.IsHexAddress(t.Recipient) {
		return nil, fmt.Errorf("invalid sender or recipient address")
	}

	amount, ok := new(big.Int).SetString(t.Amount, 10)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q", t.Amount)
	}

	fee, ok := new(big.Int).SetString(t.Fee, 10)
	if !ok || fee.Sign() < 0 {
		return nil, fmt.Errorf("invalid fee %q", t.Fee)
	}

	return &Tip{
		TipID:       t.TipID,
		Sender:      internalcommon.ToLowerWithTrim(t.Sender),
		Recipient:   internalcommon.ToLowerWithTrim(t.Recipient),
		Amount:      amount,
		Fee:         fee,
		Message:     t.Message,
		TxHash:      common.HexToHash(t.TxHash),
		BlockNumber: t.BlockNumber,
		Timestamp:   t.Timestamp,
	}, nil
}
