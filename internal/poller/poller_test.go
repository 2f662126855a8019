package poller

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/goran-ethernal/TipJarIndexer/internal/chain"
	"github.com/goran-ethernal/TipJarIndexer/internal/common"
	iledger "github.com/goran-ethernal/TipJarIndexer/internal/ledger"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
	"github.com/goran-ethernal/TipJarIndexer/pkg/config"
	"github.com/stretchr/testify/require"
)

// scriptedHeights returns the queued results in order and repeats the last one.
type scriptedHeights struct {
	mu      sync.Mutex
	results []heightResult
}

type heightResult struct {
	height uint64
	err    error
}

func heights(results ...heightResult) *scriptedHeights {
	return &scriptedHeights{results: results}
}

func (s *scriptedHeights) CurrentHeight(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.results[0]
	if len(s.results) > 1 {
		s.results = s.results[1:]
	}
	return r.height, r.err
}

// recordingProcessor records the ranges it was given.
type recordingProcessor struct {
	mu     sync.Mutex
	ranges [][2]uint64
	states []State
	fail   func(from, to uint64) error
	poller *Poller
}

func (r *recordingProcessor) ProcessRange(ctx context.Context, from, to uint64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ranges = append(r.ranges, [2]uint64{from, to})
	if r.poller != nil {
		r.states = append(r.states, r.poller.Status().State)
	}

	if r.fail != nil {
		if err := r.fail(from, to); err != nil {
			return 0, err
		}
	}
	return 1, nil
}

func testIndexerConfig() config.IndexerConfig {
	return config.IndexerConfig{
		PollInterval:   common.NewDuration(10 * time.Millisecond),
		LookbackBlocks: 10000,
		ChunkSize:      100000,
	}
}

func openStore(t *testing.T) *iledger.Store {
	t.Helper()

	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "tips.db")}
	cfg.ApplyDefaults()

	store, err := iledger.Open(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func checkpoint(t *testing.T, store *iledger.Store) uint64 {
	t.Helper()

	cp, err := store.GetCheckpoint(context.Background())
	require.NoError(t, err)
	return cp
}

func TestPoller_FirstRunStartsAtLookback(t *testing.T) {
	store := openStore(t)
	proc := &recordingProcessor{}
	p := New(testIndexerConfig(), heights(heightResult{height: 50000}), proc, store, logger.NewNopLogger())

	p.pass(context.Background())

	require.Equal(t, [][2]uint64{{40001, 50000}}, proc.ranges)
	require.Equal(t, uint64(50000), checkpoint(t, store))

	status := p.Status()
	require.Equal(t, StateSteadyPoll, status.State)
	require.Equal(t, uint64(50000), status.Checkpoint)
	require.Equal(t, uint64(1), status.TipsIndexed)
	require.Empty(t, status.LastError)
}

func TestPoller_ShortChainStartsAtGenesis(t *testing.T) {
	store := openStore(t)
	proc := &recordingProcessor{}
	p := New(testIndexerConfig(), heights(heightResult{height: 500}), proc, store, logger.NewNopLogger())

	p.pass(context.Background())

	require.Equal(t, [][2]uint64{{0, 500}}, proc.ranges)
}

func TestPoller_ResumesFromCheckpoint(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.SetCheckpoint(ctx, 45000))

	proc := &recordingProcessor{}
	p := New(testIndexerConfig(), heights(heightResult{height: 50000}), proc, store, logger.NewNopLogger())

	p.pass(ctx)

	require.Equal(t, [][2]uint64{{45001, 50000}}, proc.ranges)
}

func TestPoller_SplitsIntoChunks(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.SetCheckpoint(ctx, 100))

	cfg := testIndexerConfig()
	cfg.ChunkSize = 100

	proc := &recordingProcessor{}
	p := New(cfg, heights(heightResult{height: 350}), proc, store, logger.NewNopLogger())
	proc.poller = p

	p.pass(ctx)

	require.Equal(t, [][2]uint64{{101, 200}, {201, 300}, {301, 350}}, proc.ranges)
	require.Equal(t, []State{StateCatchingUp, StateCatchingUp, StateSteadyPoll}, proc.states)
	require.Equal(t, uint64(350), checkpoint(t, store))
	require.Equal(t, StateSteadyPoll, p.Status().State)
}

func TestPoller_Confirmations(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.SetCheckpoint(ctx, 50))

	cfg := testIndexerConfig()
	cfg.Confirmations = 10

	proc := &recordingProcessor{}
	p := New(cfg, heights(heightResult{height: 110}), proc, store, logger.NewNopLogger())

	p.pass(ctx)

	require.Equal(t, [][2]uint64{{51, 100}}, proc.ranges)
	require.Equal(t, uint64(110), p.Status().ChainHead)
}

func TestPoller_ProcessorErrorKeepsCheckpoint(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.SetCheckpoint(ctx, 100))

	failing := true
	proc := &recordingProcessor{fail: func(from, to uint64) error {
		if failing {
			return chain.ErrChainUnavailable
		}
		return nil
	}}
	p := New(testIndexerConfig(), heights(heightResult{height: 200}), proc, store, logger.NewNopLogger())

	p.pass(ctx)
	require.Equal(t, uint64(100), checkpoint(t, store))

	status := p.Status()
	require.Equal(t, uint64(1), status.Failures)
	require.Contains(t, status.LastError, chain.ErrChainUnavailable.Error())

	failing = false
	p.pass(ctx)

	require.Equal(t, [][2]uint64{{101, 200}, {101, 200}}, proc.ranges)
	require.Equal(t, uint64(200), checkpoint(t, store))
	require.Empty(t, p.Status().LastError)
}

func TestPoller_CheckpointIsMonotonic(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.SetCheckpoint(ctx, 100))

	cfg := testIndexerConfig()
	cfg.ChunkSize = 30

	proc := &recordingProcessor{fail: func(from, to uint64) error {
		if from == 261 {
			return errors.New("boom")
		}
		return nil
	}}
	p := New(cfg, heights(
		heightResult{height: 200},
		heightResult{err: chain.ErrChainUnavailable},
		heightResult{height: 150},
		heightResult{height: 300},
		heightResult{height: 320},
	), proc, store, logger.NewNopLogger())

	last := checkpoint(t, store)
	for range 5 {
		p.pass(ctx)

		current := checkpoint(t, store)
		require.GreaterOrEqual(t, current, last)
		last = current
	}

	// 261-290 keeps failing, so the checkpoint stops right before it
	require.Equal(t, uint64(260), last)
	require.Equal(t, uint64(3), p.Status().Failures)
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	store := openStore(t)

	cfg := testIndexerConfig()
	cfg.PollInterval = common.NewDuration(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	proc := &recordingProcessor{fail: func(from, to uint64) error {
		cancel()
		return nil
	}}
	p := New(cfg, heights(heightResult{height: 50000}), proc, store, logger.NewNopLogger())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}

	// the range finished before cancellation was observed, so it is persisted
	require.Equal(t, uint64(50000), checkpoint(t, store))
}

func TestPoller_RunRetriesAfterFailure(t *testing.T) {
	store := openStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	proc := &recordingProcessor{}
	p := New(testIndexerConfig(), heights(
		heightResult{err: chain.ErrChainUnavailable},
		heightResult{height: 50000},
	), proc, store, logger.NewNopLogger())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool {
		cp, err := store.GetCheckpoint(context.Background())
		return err == nil && cp == 50000
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	require.GreaterOrEqual(t, p.Status().Failures, uint64(1))
}

func TestStateFor(t *testing.T) {
	p := &Poller{cfg: config.IndexerConfig{ChunkSize: 10}}

	require.Equal(t, StateCatchingUp, p.stateFor(1, 11))
	require.Equal(t, StateSteadyPoll, p.stateFor(1, 10))
	require.Equal(t, StateSteadyPoll, p.stateFor(11, 10))
}
