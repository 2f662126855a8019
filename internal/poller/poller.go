// Package poller drives indexing: it follows the chain head and feeds block ranges to the processor.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/goran-ethernal/TipJarIndexer/internal/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/contract"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
	"github.com/goran-ethernal/TipJarIndexer/internal/metrics"
	"github.com/goran-ethernal/TipJarIndexer/pkg/config"
	"github.com/goran-ethernal/TipJarIndexer/pkg/ledger"
	"go.uber.org/zap"
)

// State is the phase of the polling loop.
type State string

const (
	// StateInitializing means the start block is not known yet
	StateInitializing State = "INITIALIZING"
	// StateCatchingUp means more than one chunk separates the checkpoint from the head
	StateCatchingUp State = "CATCHING_UP"
	// StateSteadyPoll means the checkpoint is within one chunk of the head
	StateSteadyPoll State = "STEADY_POLL"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

const statsTimeout = 5 * time.Second

// HeightSource reports the chain head. It is satisfied by *chain.Reader.
type HeightSource interface {
	CurrentHeight(ctx context.Context) (uint64, error)
}

// RangeProcessor indexes one block range. It is satisfied by *processor.Processor.
type RangeProcessor interface {
	ProcessRange(ctx context.Context, from, to uint64) (int, error)
}

// Status is a snapshot of the poller for reporting.
type Status struct {
	State       State
	Checkpoint  uint64
	ChainHead   uint64
	Passes      uint64
	Failures    uint64
	TipsIndexed uint64
	LastPassAt  time.Time
	LastError   string
}

// Poller runs one sequential indexing loop. Only Status is safe to call from other goroutines.
type Poller struct {
	cfg       config.IndexerConfig
	heights   HeightSource
	processor RangeProcessor
	store     ledger.Store
	log       *logger.Logger

	// freshStart is the first block of a ledger without checkpoint, 0 until known
	freshStart  uint64
	initialized bool

	mu     sync.RWMutex
	status Status
}

// New creates a Poller. It does nothing until Run is called.
func New(cfg config.IndexerConfig, heights HeightSource, processor RangeProcessor,
	store ledger.Store, log *logger.Logger) *Poller {
	return &Poller{
		cfg:       cfg,
		heights:   heights,
		processor: processor,
		store:     store,
		log:       log.WithComponent(common.ComponentPoller),
		status:    Status{State: StateInitializing},
	}
}

// Run polls until ctx is cancelled. Pass failures are logged and retried after the
// poll interval, so Run only returns once ctx is done. Cancellation is observed between
// chunks and during the sleep.
func (p *Poller) Run(ctx context.Context) error {
	p.logStats(ctx, "ledger loaded")
	metrics.ComponentHealthSet(common.ComponentPoller, true)

	for {
		p.pass(ctx)

		select {
		case <-ctx.Done():
			p.log.Info("polling stopped")
			p.logStats(ctx, "final stats")
			metrics.ComponentHealthSet(common.ComponentPoller, false)
			return nil
		case <-time.After(p.cfg.PollInterval.Duration):
		}
	}
}

// Status returns the latest snapshot.
func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.status
}

// pass indexes everything between the checkpoint and the indexable head.
func (p *Poller) pass(ctx context.Context) {
	log := p.log.With("pass", uuid.NewString())
	start := time.Now()

	indexed, err := p.runPass(ctx, log)

	p.mu.Lock()
	p.status.Passes++
	p.status.LastPassAt = time.Now()
	p.status.TipsIndexed += uint64(indexed)
	if err != nil {
		p.status.Failures++
		p.status.LastError = err.Error()
	} else {
		p.status.LastError = ""
	}
	p.mu.Unlock()

	switch {
	case err == nil:
		log.Debugf("pass finished in %s", time.Since(start))
	case errors.Is(err, context.Canceled):
		log.Debugf("pass interrupted: %v", err)
	default:
		metrics.PassFailureInc()
		log.Errorf("pass failed, retrying in %s: %v", p.cfg.PollInterval, err)
	}
}

func (p *Poller) runPass(ctx context.Context, log *zap.SugaredLogger) (int, error) {
	height, err := p.heights.CurrentHeight(ctx)
	if err != nil {
		return 0, err
	}
	metrics.ChainHeadSet(height)

	checkpoint, err := p.store.GetCheckpoint(ctx)
	if err != nil {
		return 0, err
	}

	next := p.nextBlock(checkpoint, height)
	head := p.indexableHead(height)

	p.setProgress(checkpoint, height, p.stateFor(next, head))

	if next > head {
		log.Debugf("no new blocks: next %d, head %d", next, head)
		return 0, nil
	}

	total := 0
	for from := next; from <= head; {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		to := head
		if head-from >= p.cfg.ChunkSize {
			to = from + p.cfg.ChunkSize - 1
		}

		rangeStart := time.Now()

		n, err := p.processor.ProcessRange(ctx, from, to)
		if err != nil {
			return total, fmt.Errorf("process [%d, %d]: %w", from, to, err)
		}

		// the checkpoint only moves once the range is stored, and a stored range
		// is recorded even when shutdown began meanwhile
		if err := p.store.SetCheckpoint(context.WithoutCancel(ctx), to); err != nil {
			return total, fmt.Errorf("advance checkpoint to %d: %w", to, err)
		}

		total += n
		metrics.BlocksProcessedAdd(to - from + 1)
		log.Infof("processed blocks %d-%d: %d new tips in %s", from, to, n, time.Since(rangeStart))

		p.setProgress(to, height, p.stateFor(to+1, head))
		from = to + 1
	}

	return total, nil
}

// nextBlock is the first block to index. A ledger without checkpoint starts
// LookbackBlocks behind the head seen on the first pass.
func (p *Poller) nextBlock(checkpoint, height uint64) uint64 {
	if checkpoint > 0 {
		if !p.initialized {
			p.initialized = true
			p.log.Infof("resuming from block %d", checkpoint+1)
		}
		return checkpoint + 1
	}

	if !p.initialized {
		p.initialized = true
		if height >= p.cfg.LookbackBlocks {
			p.freshStart = height - p.cfg.LookbackBlocks + 1
		}
		p.log.Infof("starting from block %d (head %d, lookback %d)", p.freshStart, height, p.cfg.LookbackBlocks)
	}

	return p.freshStart
}

// indexableHead lags the head by the configured confirmations.
func (p *Poller) indexableHead(height uint64) uint64 {
	if height < p.cfg.Confirmations {
		return 0
	}
	return height - p.cfg.Confirmations
}

func (p *Poller) stateFor(next, head uint64) State {
	if next <= head && head-next+1 > p.cfg.ChunkSize {
		return StateCatchingUp
	}
	return StateSteadyPoll
}

func (p *Poller) setProgress(checkpoint, height uint64, state State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status.State != state {
		p.log.Infof("state %s -> %s", p.status.State, state)
	}

	p.status.State = state
	p.status.Checkpoint = checkpoint
	p.status.ChainHead = height
}

// logStats logs the ledger totals. It runs on a detached context so it also works during shutdown.
func (p *Poller) logStats(ctx context.Context, what string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statsTimeout)
	defer cancel()

	stats, err := p.store.GlobalAggregate(ctx)
	if err != nil {
		p.log.Warnf("can't read ledger stats: %v", err)
		return
	}

	p.log.Infof("%s: %d tips, %s ETH volume, %d creators, %d tippers",
		what, stats.TotalTips, contract.FormatEther(stats.TotalVolume), stats.UniqueCreators, stats.UniqueTippers)
}
