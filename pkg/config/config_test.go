package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{
		Indexer: IndexerConfig{
			ContractAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	cfg := validConfig()

	require.Equal(t, NetworkBase, cfg.Indexer.Network)
	require.Equal(t, "https://mainnet.base.org", cfg.Indexer.RPCURL)
	require.Equal(t, uint64(8453), cfg.Indexer.ChainID())
	require.Equal(t, uint64(10000), cfg.Indexer.LookbackBlocks)
	require.Equal(t, uint64(5000), cfg.Indexer.ChunkSize)
	require.Equal(t, "5s", cfg.Indexer.PollInterval.String())
	require.Equal(t, "data/tips.db", cfg.DB.Path)
	require.Equal(t, "WAL", cfg.DB.JournalMode)
	require.Equal(t, "info", cfg.Logging.GetDefaultLevel())
	require.Nil(t, cfg.Metrics)
	require.Nil(t, cfg.API)

	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{
			name:      "missing contract address",
			mutate:    func(c *Config) { c.Indexer.ContractAddress = "" },
			wantField: "indexer.contract_address",
		},
		{
			name:      "malformed contract address",
			mutate:    func(c *Config) { c.Indexer.ContractAddress = "0x1234" },
			wantField: "indexer.contract_address",
		},
		{
			name:      "unknown network",
			mutate:    func(c *Config) { c.Indexer.Network = "optimism" },
			wantField: "indexer.network",
		},
		{
			name:      "invalid rpc url",
			mutate:    func(c *Config) { c.Indexer.RPCURL = "not a url" },
			wantField: "indexer.rpc_url",
		},
		{
			name:      "invalid journal mode",
			mutate:    func(c *Config) { c.DB.JournalMode = "FAST" },
			wantField: "db.journal_mode",
		},
		{
			name:      "unknown log component",
			mutate:    func(c *Config) { c.Logging.ComponentLevels["downloader"] = "debug" },
			wantField: "logging.component_levels",
		},
		{
			name:      "invalid log level",
			mutate:    func(c *Config) { c.Logging.DefaultLevel = "loud" },
			wantField: "logging.default_level",
		},
		{
			name: "metrics path without slash",
			mutate: func(c *Config) {
				c.Metrics = &MetricsConfig{Enabled: true, ListenAddress: ":9090", Path: "metrics"}
			},
			wantField: "metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestAPIConfigDefaults(t *testing.T) {
	api := &APIConfig{Enabled: true, CORS: CORSConfig{Enabled: true}}
	api.ApplyDefaults()

	require.Equal(t, ":8080", api.ListenAddress)
	require.Equal(t, []string{"*"}, api.CORS.AllowedOrigins)
	require.NotZero(t, api.ReadTimeout.Duration)
}
