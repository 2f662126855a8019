package ledger

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const legacyTips = `{
  "tips": [
    {
      "tipId": "1",
      "sender": "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
      "recipient": "0x1111111111111111111111111111111111111111",
      "amount": "990000000000000",
      "fee": "10000000000000",
      "message": "great cast",
      "txHash": "0x00000000000000000000000000000000000000000000000000000000000000aa",
      "blockNumber": 12000,
      "timestamp": 1700000000
    },
    {
      "tipId": "2",
      "sender": "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
      "recipient": "0x1111111111111111111111111111111111111111",
      "amount": "1.5",
      "fee": "0",
      "message": "",
      "txHash": "0x00000000000000000000000000000000000000000000000000000000000000bb",
      "blockNumber": 12001,
      "timestamp": 1700000001
    }
  ],
  "lastBlockNumber": 12345
}`

func TestStore_ImportJSON(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	result, err := store.ImportJSON(ctx, strings.NewReader(legacyTips))
	require.NoError(t, err)
	require.Equal(t, 2, result.Read)
	require.Equal(t, 1, result.Imported)
	require.Equal(t, 1, result.Invalid)
	require.Equal(t, uint64(12345), result.Checkpoint)

	tip, err := store.GetTip(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", tip.Sender)
	require.Equal(t, "great cast", tip.Message)
	require.Equal(t, "990000000000000", tip.Amount.String())

	// Importing again changes nothing
	result, err = store.ImportJSON(ctx, strings.NewReader(legacyTips))
	require.NoError(t, err)
	require.Zero(t, result.Imported)
	require.Equal(t, uint64(12345), result.Checkpoint)
}

func TestStore_ImportJSONKeepsHigherCheckpoint(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetCheckpoint(ctx, 99999))

	result, err := store.ImportJSON(ctx, strings.NewReader(legacyTips))
	require.NoError(t, err)
	require.Equal(t, uint64(99999), result.Checkpoint)
}

func TestStore_ImportJSONInvalidDocument(t *testing.T) {
	store := openTestStore(t)

	_, err := store.ImportJSON(context.Background(), strings.NewReader("{not json"))
	require.Error(t, err)
}
