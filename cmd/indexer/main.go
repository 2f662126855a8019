package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/chain"
	"github.com/goran-ethernal/TipJarIndexer/internal/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/config"
	"github.com/goran-ethernal/TipJarIndexer/internal/contract"
	ledgerstore "github.com/goran-ethernal/TipJarIndexer/internal/ledger"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
	"github.com/goran-ethernal/TipJarIndexer/internal/metrics"
	"github.com/goran-ethernal/TipJarIndexer/internal/poller"
	"github.com/goran-ethernal/TipJarIndexer/internal/processor"
	"github.com/goran-ethernal/TipJarIndexer/internal/rpc"
	"github.com/goran-ethernal/TipJarIndexer/pkg/api"
	pkgconfig "github.com/goran-ethernal/TipJarIndexer/pkg/config"
	"github.com/goran-ethernal/TipJarIndexer/pkg/ledger"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║         TipJar Indexer v%s             ║
║     TipSent / TipMessage event ledger     ║
╚═══════════════════════════════════════════╝
`

	metricsStopTimeout = 5 * time.Second
)

var (
	configPath string

	statsAddress string

	tipsRecipient string
	tipsSender    string
	tipsLimit     uint64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var cfgErr *pkgconfig.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "configuration error: %v\n", cfgErr)
			os.Exit(2) //nolint:mnd
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "TipJar Indexer - TipJar tipping event indexer",
	Long: `TipJar Indexer polls a TipJar contract for TipSent and TipMessage events,
joins each tip with its message and stores it in a local SQLite ledger.
Configuration is read from an optional file and the environment
(TIPJAR_ADDRESS, USE_TESTNET, BASE_RPC_URL, TIPJAR_DB_PATH, ...).`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runIndexer,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Index tips until interrupted (default)",
	RunE:  runIndexer,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print ledger statistics",
	Long:  `Print global statistics, or the statistics of the tips received by --address.`,
	RunE:  runStats,
}

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "List stored tips, newest first",
	Long:  `List recent tips, or the tips received by --recipient or sent by --sender.`,
	RunE:  runTips,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := &jsonschema.Reflector{FieldNameTag: "json"}
		schema := reflector.Reflect(&pkgconfig.Config{})

		encoded, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import-json <tips.json>",
	Short: "Import a legacy tips.json file into the ledger",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to configuration file (environment only when empty)")

	statsCmd.Flags().StringVar(&statsAddress, "address", "", "creator address to aggregate")

	tipsCmd.Flags().StringVar(&tipsRecipient, "recipient", "", "list tips received by this address")
	tipsCmd.Flags().StringVar(&tipsSender, "sender", "", "list tips sent by this address")
	tipsCmd.Flags().Uint64Var(&tipsLimit, "limit", 0, "maximum number of tips to list")
	tipsCmd.MarkFlagsMutuallyExclusive("recipient", "sender")

	rootCmd.AddCommand(runCmd, statsCmd, tipsCmd, schemaCmd, importCmd)
}

func runIndexer(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Println("\n\nShutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	log := logger.NewComponentLoggerFromConfig(common.ComponentPoller, cfg.Logging)
	log.Infow("starting TipJar indexer",
		"network", cfg.Indexer.Network,
		"contract", cfg.Indexer.ContractAddress,
		"rpc", cfg.Indexer.RPCURL,
		"db", cfg.DB.Path,
	)

	// Initialize metrics server if enabled
	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics,
			logger.NewComponentLoggerFromConfig(common.ComponentMetrics, cfg.Logging))
		if err := metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), metricsStopTimeout)
			defer stopCancel()
			if err := metricsServer.Stop(stopCtx); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
	}

	store, err := ledgerstore.Open(cfg.DB, logger.NewComponentLoggerFromConfig(common.ComponentLedger, cfg.Logging))
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warnf("Failed to close ledger: %v", err)
		}
	}()

	log.Info("Connecting to RPC node...")
	ethClient, err := rpc.NewClient(ctx, cfg.Indexer,
		logger.NewComponentLoggerFromConfig(common.ComponentRPC, cfg.Logging))
	if errors.Is(err, rpc.ErrIncompatibleChainID) {
		return pkgconfig.NewConfigurationError("indexer.rpc_url", err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed to create RPC client: %w", err)
	}
	defer ethClient.Close()

	reader := chain.NewReader(ethClient, contract.TipJarABI,
		logger.NewComponentLoggerFromConfig(common.ComponentChainReader, cfg.Logging))
	proc := processor.New(ethcommon.HexToAddress(cfg.Indexer.ContractAddress), reader, store,
		logger.NewComponentLoggerFromConfig(common.ComponentProcessor, cfg.Logging))
	tipPoller := poller.New(cfg.Indexer, reader, proc, store, log)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.API != nil && cfg.API.Enabled {
		apiServer := api.NewServer(cfg.API, store, tipPoller,
			logger.NewComponentLoggerFromConfig(common.ComponentAPI, cfg.Logging))
		g.Go(func() error {
			return apiServer.Start(gctx)
		})
	}

	g.Go(func() error {
		return tipPoller.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("TipJar indexer stopped")
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, store *ledgerstore.Store) error {
		out := cmd.OutOrStdout()

		if statsAddress != "" {
			address, err := normalizeAddress(statsAddress)
			if err != nil {
				return err
			}

			stats, err := store.AggregateForAddress(ctx, address)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Address:           %s\n", address)
			fmt.Fprintf(out, "Tips received:     %d\n", stats.TotalTips)
			fmt.Fprintf(out, "Total received:    %s ETH\n", contract.FormatEther(stats.TotalReceived))
			fmt.Fprintf(out, "Unique supporters: %d\n", stats.UniqueSupporters)
			return nil
		}

		stats, err := store.GlobalAggregate(ctx)
		if err != nil {
			return err
		}
		checkpoint, err := store.GetCheckpoint(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Total tips:      %d\n", stats.TotalTips)
		fmt.Fprintf(out, "Total volume:    %s ETH\n", contract.FormatEther(stats.TotalVolume))
		fmt.Fprintf(out, "Total fees:      %s ETH\n", contract.FormatEther(stats.TotalFees))
		fmt.Fprintf(out, "Unique creators: %d\n", stats.UniqueCreators)
		fmt.Fprintf(out, "Unique tippers:  %d\n", stats.UniqueTippers)
		fmt.Fprintf(out, "Last block:      %d\n", checkpoint)
		return nil
	})
}

func runTips(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, store *ledgerstore.Store) error {
		var (
			tips []*ledger.Tip
			err  error
		)

		switch {
		case tipsRecipient != "":
			address, addrErr := normalizeAddress(tipsRecipient)
			if addrErr != nil {
				return addrErr
			}
			tips, err = store.QueryByRecipient(ctx, address, tipsLimit)
		case tipsSender != "":
			address, addrErr := normalizeAddress(tipsSender)
			if addrErr != nil {
				return addrErr
			}
			tips, err = store.QueryBySender(ctx, address, tipsLimit)
		default:
			tips, err = store.RecentTips(ctx, tipsLimit)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, tip := range tips {
			message := tip.Message
			if message == "" {
				message = "-"
			}
			fmt.Fprintf(out, "#%s  %s ETH  %s -> %s  block %d  %q\n",
				tip.TipID,
				contract.FormatEther(tip.Amount),
				common.ShortenAddress(tip.Sender),
				common.ShortenAddress(tip.Recipient),
				tip.BlockNumber,
				message,
			)
		}
		fmt.Fprintf(out, "%d tip(s)\n", len(tips))
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, store *ledgerstore.Store) error {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer file.Close()

		result, err := store.ImportJSON(ctx, file)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "read %d, imported %d, invalid %d, checkpoint %d\n",
			result.Read, result.Imported, result.Invalid, result.Checkpoint)
		return nil
	})
}

// withStore loads the configuration, opens the ledger and runs fn against it.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, store *ledgerstore.Store) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := ledgerstore.Open(cfg.DB, logger.NewComponentLoggerFromConfig(common.ComponentLedger, cfg.Logging))
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer store.Close()

	return fn(cmd.Context(), store)
}

func normalizeAddress(address string) (string, error) {
	if !ethcommon.IsHexAddress(address) {
		return "", fmt.Errorf("invalid address %q", address)
	}
	return common.ToLowerWithTrim(ethcommon.HexToAddress(address).Hex()), nil
}
