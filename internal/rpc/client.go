package rpc

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/TipJarIndexer/internal/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
	"github.com/goran-ethernal/TipJarIndexer/pkg/config"
	pkgrpc "github.com/goran-ethernal/TipJarIndexer/pkg/rpc"
)

// ErrIncompatibleChainID is returned when the endpoint serves a different chain than configured.
var ErrIncompatibleChainID = errors.New("rpc url returned incompatible chainID")

const (
	methodBlockNumber = "eth_blockNumber"
	methodChainID     = "eth_chainId"
	methodGetLogs     = "eth_getLogs"
)

// Compile-time check to ensure Client implements pkgrpc.EthClient interface.
var _ pkgrpc.EthClient = (*Client)(nil)

// Client wraps the Ethereum RPC client. Every call is bounded by a per-request timeout
// and transient failures are retried with exponential backoff.
// It implements the pkgrpc.EthClient interface.
type Client struct {
	eth     *ethclient.Client
	timeout time.Duration
	retry   *config.RetryConfig
	log     *logger.Logger
}

// NewClient dials the configured endpoint and verifies that it serves the configured network.
func NewClient(ctx context.Context, cfg config.IndexerConfig, log *logger.Logger) (*Client, error) {
	client, err := Dial(ctx, cfg.RPCURL, cfg.RequestTimeout.Duration, cfg.Retry, log)
	if err != nil {
		return nil, err
	}

	if err := client.VerifyChainID(ctx, cfg.ChainID()); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// Dial creates a new RPC client connected to the given endpoint.
// A nil retry config means every call is attempted once.
func Dial(ctx context.Context, endpoint string, timeout time.Duration,
	retry *config.RetryConfig, log *logger.Logger) (*Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rpcClient, err := rpc.DialContext(dialCtx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("can't dial JSON rpc url: %w", err)
	}

	return &Client{
		eth:     ethclient.NewClient(rpcClient),
		timeout: timeout,
		retry:   retry,
		log:     log.WithComponent(common.ComponentRPC),
	}, nil
}

// VerifyChainID fails with ErrIncompatibleChainID if the node is not on the expected chain.
func (c *Client) VerifyChainID(ctx context.Context, expected uint64) error {
	chainID, err := c.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("can't get chainID: %w", err)
	}

	if !chainID.IsUint64() || chainID.Uint64() != expected {
		return fmt.Errorf("received chainID %s != expected %d: %w", chainID, expected, ErrIncompatibleChainID)
	}

	c.log.Debugf("connected to chain %s", chainID)

	return nil
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.eth.Close()
}

// BlockNumber returns the latest block number.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var n uint64
	err := c.call(ctx, methodBlockNumber, func(ctx context.Context) (err error) {
		n, err = c.eth.BlockNumber(ctx)
		return err
	})
	return n, err
}

// ChainID returns the chain id of the endpoint.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	var id *big.Int
	err := c.call(ctx, methodChainID, func(ctx context.Context) (err error) {
		id, err = c.eth.ChainID(ctx)
		return err
	})
	return id, err
}

// GetLogs retrieves logs matching the given filter query.
func (c *Client) GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var logs []types.Log
	err := c.call(ctx, methodGetLogs, func(ctx context.Context) (err error) {
		logs, err = c.eth.FilterLogs(ctx, query)
		return err
	})
	return logs, err
}

// call runs fn under the retry policy, giving every attempt its own timeout.
func (c *Client) call(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	return retryWithBackoff(ctx, c.retry, method, func() error {
		RPCMethodInc(method)
		start := time.Now()

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		err := fn(callCtx)
		RPCMethodDuration(method, time.Since(start))

		if err != nil {
			RPCMethodError(method, errorType(err))
			c.log.Debugf("%s failed: %v", method, err)
		}

		return err
	})
}

// errorType buckets an error for the rpc error metric.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case isTooManyResults(err):
		return "too_many_results"
	case retryableError(err):
		return "transient"
	default:
		return "other"
	}
}

func isTooManyResults(err error) bool {
	tooMany, _ := IsTooManyResultsError(err)
	return tooMany
}
