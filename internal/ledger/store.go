package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goran-ethernal/TipJarIndexer/internal/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/db"
	"github.com/goran-ethernal/TipJarIndexer/internal/ledger/migrations"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
	"github.com/goran-ethernal/TipJarIndexer/internal/metrics"
	"github.com/goran-ethernal/TipJarIndexer/pkg/config"
	pkgledger "github.com/goran-ethernal/TipJarIndexer/pkg/ledger"
	"github.com/russross/meddler"
)

const (
	tipsTable      = "tips"
	syncStateTable = "sync_state"
)

var tipColumns = []string{
	"tip_id", "sender", "recipient", "amount", "fee", "message", "tx_hash", "block_number", "timestamp",
}

var errMissingSyncState = errors.New("sync state row is missing")

// Compile-time check to ensure Store implements pkgledger.Store interface.
var _ pkgledger.Store = (*Store)(nil)

// Tip is a type alias for the public Tip type.
type Tip = pkgledger.Tip

// syncState is the single checkpoint row.
type syncState struct {
	ID                   int    `meddler:"id,pk"`
	LastIndexedBlock     uint64 `meddler:"last_indexed_block"`
	LastIndexedTimestamp int64  `meddler:"last_indexed_timestamp"`
}

// Store is the SQLite backed tip ledger.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// Open opens the ledger at cfg.Path, creating it if needed.
// An existing file that cannot be read as a ledger is moved aside and replaced by an empty one.
func Open(cfg config.DatabaseConfig, log *logger.Logger) (*Store, error) {
	log = log.WithComponent(common.ComponentLedger)

	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
			return nil, fmt.Errorf("%w: failed to create data directory: %w", pkgledger.ErrStorageFailure, err)
		}
	}

	sqlDB, openErr := openLedger(cfg, log)
	if openErr == nil {
		return newStore(sqlDB, log), nil
	}

	if !db.IsUnreadable(openErr) && !errors.Is(openErr, errMissingSyncState) {
		return nil, fmt.Errorf("%w: %w", pkgledger.ErrStorageFailure, openErr)
	}

	backup, err := moveAside(cfg.Path, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: could not move unreadable ledger aside: %w", pkgledger.ErrStorageFailure, err)
	}

	metrics.LedgerResetInc()
	log.Warnf("ledger %s is unreadable (%v), moved it to %s and starting from an empty ledger",
		cfg.Path, openErr, backup)

	sqlDB, err = openLedger(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pkgledger.ErrStorageFailure, err)
	}

	return newStore(sqlDB, log), nil
}

// NewStore wraps an already migrated database.
func NewStore(sqlDB *sql.DB, log *logger.Logger) *Store {
	return newStore(sqlDB, log.WithComponent(common.ComponentLedger))
}

func newStore(sqlDB *sql.DB, log *logger.Logger) *Store {
	return &Store{db: sqlDB, log: log}
}

// openLedger opens, verifies and migrates the database file.
func openLedger(cfg config.DatabaseConfig, log *logger.Logger) (*sql.DB, error) {
	sqlDB, err := db.NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	if err := db.QuickCheck(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := migrations.RunMigrations(log, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	var state syncState
	if err := meddler.QueryRow(sqlDB, &state, `SELECT * FROM sync_state WHERE id = 1`); err != nil {
		sqlDB.Close()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errMissingSyncState
		}
		return nil, fmt.Errorf("failed to read sync state: %w", err)
	}

	if size, err := db.DBTotalSize(cfg.Path); err == nil {
		log.Debugf("opened ledger %s (%d bytes), checkpoint=%d", cfg.Path, size, state.LastIndexedBlock)
	}

	return sqlDB, nil
}

// moveAside renames the database file and its WAL companions to <path>.corrupt-<unix>.
func moveAside(path string, now time.Time) (string, error) {
	backup := fmt.Sprintf("%s.corrupt-%d", path, now.Unix())

	if err := os.Rename(path, backup); err != nil {
		return "", err
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		if _, err := os.Stat(path + suffix); err == nil {
			if err := os.Rename(path+suffix, backup+suffix); err != nil {
				return "", err
			}
		}
	}

	return backup, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores a single tip, ignoring it if the tip id is already present.
func (s *Store) Insert(ctx context.Context, tip *Tip) (bool, error) {
	inserted, err := s.InsertTips(ctx, []*Tip{tip})
	return len(inserted) == 1, err
}

// InsertTips stores the tips in a single transaction and returns the ones that were new.
func (s *Store) InsertTips(ctx context.Context, tips []*Tip) (inserted []*Tip, err error) {
	if len(tips) == 0 {
		return nil, nil
	}

	defer s.observe("insert_tips", time.Now(), &err)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", pkgledger.ErrStorageFailure, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	for _, tip := range tips {
		values, err := meddler.Values(tip, true)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode tip %s: %w", pkgledger.ErrStorageFailure, tip.TipID, err)
		}

		query, args, err := sq.Insert(tipsTable).
			Columns(tipColumns...).
			Values(values...).
			Suffix("ON CONFLICT (tip_id) DO NOTHING").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("can't build query: %w", err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to insert tip %s: %w", pkgledger.ErrStorageFailure, tip.TipID, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", pkgledger.ErrStorageFailure, err)
		}

		if affected == 0 {
			s.log.Debugf("tip %s already stored, skipping", tip.TipID)
			continue
		}

		inserted = append(inserted, tip)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit tips: %w", pkgledger.ErrStorageFailure, err)
	}

	metrics.TipsIndexedAdd(len(inserted))
	metrics.TipsDuplicateAdd(len(tips) - len(inserted))

	return inserted, nil
}

// GetTip returns a single tip by id.
func (s *Store) GetTip(ctx context.Context, tipID string) (tip *Tip, err error) {
	defer s.observe("get_tip", time.Now(), &err)

	tips, err := s.selectTips(ctx, sq.Select(tipColumns...).
		From(tipsTable).
		Where(sq.Eq{"tip_id": tipID}))
	if err != nil {
		return nil, err
	}

	if len(tips) == 0 {
		return nil, pkgledger.ErrTipNotFound
	}

	return tips[0], nil
}

// QueryByRecipient returns tips received by address, newest first.
func (s *Store) QueryByRecipient(ctx context.Context, address string, limit uint64) (tips []*Tip, err error) {
	defer s.observe("query_by_recipient", time.Now(), &err)

	return s.selectTips(ctx, newestFirst(sq.Select(tipColumns...).
		From(tipsTable).
		Where(sq.Eq{"recipient": common.ToLowerWithTrim(address)}), limit, pkgledger.DefaultAddressLimit))
}

// QueryBySender returns tips sent by address, newest first.
func (s *Store) QueryBySender(ctx context.Context, address string, limit uint64) (tips []*Tip, err error) {
	defer s.observe("query_by_sender", time.Now(), &err)

	return s.selectTips(ctx, newestFirst(sq.Select(tipColumns...).
		From(tipsTable).
		Where(sq.Eq{"sender": common.ToLowerWithTrim(address)}), limit, pkgledger.DefaultAddressLimit))
}

// RecentTips returns the most recent tips in the ledger.
func (s *Store) RecentTips(ctx context.Context, limit uint64) (tips []*Tip, err error) {
	defer s.observe("recent_tips", time.Now(), &err)

	return s.selectTips(ctx, newestFirst(sq.Select(tipColumns...).From(tipsTable), limit, pkgledger.DefaultRecentLimit))
}

func newestFirst(builder sq.SelectBuilder, limit, fallback uint64) sq.SelectBuilder {
	if limit == 0 {
		limit = fallback
	}

	return builder.OrderBy("timestamp DESC", "block_number DESC").Limit(limit)
}

func (s *Store) selectTips(ctx context.Context, builder sq.SelectBuilder) ([]*Tip, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("can't build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query tips: %w", pkgledger.ErrStorageFailure, err)
	}

	tips := make([]*Tip, 0)
	if err := meddler.ScanAll(rows, &tips); err != nil {
		return nil, fmt.Errorf("%w: failed to scan tips: %w", pkgledger.ErrStorageFailure, err)
	}

	return tips, nil
}

// AggregateForAddress sums the tips received by address.
// Runs as one statement so a concurrent insert is either fully counted or not at all.
func (s *Store) AggregateForAddress(ctx context.Context, address string) (stats *pkgledger.AddressStats, err error) {
	defer s.observe("aggregate_for_address", time.Now(), &err)

	query, args, err := sq.Select("amount", "sender").
		From(tipsTable).
		Where(sq.Eq{"recipient": common.ToLowerWithTrim(address)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("can't build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to aggregate tips: %w", pkgledger.ErrStorageFailure, err)
	}
	defer rows.Close()

	stats = &pkgledger.AddressStats{TotalReceived: new(big.Int)}
	supporters := make(map[string]struct{})

	for rows.Next() {
		var amount, sender string
		if err := rows.Scan(&amount, &sender); err != nil {
			return nil, fmt.Errorf("%w: failed to scan tip: %w", pkgledger.ErrStorageFailure, err)
		}

		if err := addDecimal(stats.TotalReceived, amount); err != nil {
			return nil, err
		}

		supporters[sender] = struct{}{}
		stats.TotalTips++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", pkgledger.ErrStorageFailure, err)
	}

	stats.UniqueSupporters = uint64(len(supporters))

	return stats, nil
}

// GlobalAggregate sums every tip in the ledger.
func (s *Store) GlobalAggregate(ctx context.Context) (stats *pkgledger.GlobalStats, err error) {
	defer s.observe("global_aggregate", time.Now(), &err)

	query, args, err := sq.Select("amount", "fee", "sender", "recipient").From(tipsTable).ToSql()
	if err != nil {
		return nil, fmt.Errorf("can't build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to aggregate tips: %w", pkgledger.ErrStorageFailure, err)
	}
	defer rows.Close()

	stats = &pkgledger.GlobalStats{TotalVolume: new(big.Int), TotalFees: new(big.Int)}
	creators := make(map[string]struct{})
	tippers := make(map[string]struct{})

	for rows.Next() {
		var amount, fee, sender, recipient string
		if err := rows.Scan(&amount, &fee, &sender, &recipient); err != nil {
			return nil, fmt.Errorf("%w: failed to scan tip: %w", pkgledger.ErrStorageFailure, err)
		}

		if err := addDecimal(stats.TotalVolume, amount); err != nil {
			return nil, err
		}
		if err := addDecimal(stats.TotalFees, fee); err != nil {
			return nil, err
		}

		tippers[sender] = struct{}{}
		creators[recipient] = struct{}{}
		stats.TotalTips++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", pkgledger.ErrStorageFailure, err)
	}

	stats.UniqueCreators = uint64(len(creators))
	stats.UniqueTippers = uint64(len(tippers))

	return stats, nil
}

func addDecimal(sum *big.Int, value string) error {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return fmt.Errorf("%w: stored amount %q is not a decimal integer", pkgledger.ErrStorageFailure, value)
	}

	sum.Add(sum, v)
	return nil
}

// GetCheckpoint returns the last fully processed block.
func (s *Store) GetCheckpoint(ctx context.Context) (block uint64, err error) {
	defer s.observe("get_checkpoint", time.Now(), &err)

	var state syncState
	if err := meddler.QueryRow(s.db, &state, `SELECT * FROM sync_state WHERE id = 1`); err != nil {
		return 0, fmt.Errorf("%w: failed to get checkpoint: %w", pkgledger.ErrStorageFailure, err)
	}

	return state.LastIndexedBlock, nil
}

// SetCheckpoint advances the checkpoint to blockNum. Writing the current value again is a no-op.
func (s *Store) SetCheckpoint(ctx context.Context, blockNum uint64) (err error) {
	defer s.observe("set_checkpoint", time.Now(), &err)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", pkgledger.ErrStorageFailure, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	var state syncState
	if err := meddler.QueryRow(tx, &state, `SELECT * FROM sync_state WHERE id = 1`); err != nil {
		return fmt.Errorf("%w: failed to get checkpoint: %w", pkgledger.ErrStorageFailure, err)
	}

	if blockNum < state.LastIndexedBlock {
		return fmt.Errorf("%w: stored %d, requested %d", pkgledger.ErrCheckpointRegression,
			state.LastIndexedBlock, blockNum)
	}

	if blockNum == state.LastIndexedBlock {
		return nil
	}

	state.LastIndexedBlock = blockNum
	state.LastIndexedTimestamp = time.Now().Unix()

	if err := meddler.Update(tx, syncStateTable, &state); err != nil {
		return fmt.Errorf("%w: failed to save checkpoint: %w", pkgledger.ErrStorageFailure, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit checkpoint: %w", pkgledger.ErrStorageFailure, err)
	}

	metrics.LastIndexedBlockSet(blockNum)
	s.log.Debugf("saved checkpoint: block=%d", blockNum)

	return nil
}

// observe records query count, latency and errors for a ledger operation.
func (s *Store) observe(operation string, start time.Time, err *error) {
	metrics.DBQueryInc(operation)
	metrics.DBQueryDuration(operation, time.Since(start))

	if *err != nil {
		metrics.DBErrorsInc(operation)
	}
}
