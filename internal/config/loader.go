package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goran-ethernal/TipJarIndexer/internal/common"
	pkgconfig "github.com/goran-ethernal/TipJarIndexer/pkg/config"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envOverlay holds the environment variables understood by the indexer.
// Unset variables leave the file configuration untouched.
type envOverlay struct {
	ContractAddress   string  `envconfig:"TIPJAR_ADDRESS"`
	UseTestnet        *bool   `envconfig:"USE_TESTNET"`
	BaseRPCURL        string  `envconfig:"BASE_RPC_URL"`
	BaseSepoliaRPCURL string  `envconfig:"BASE_SEPOLIA_RPC_URL"`
	PollInterval      string  `envconfig:"TIPJAR_POLL_INTERVAL"`
	LookbackBlocks    *uint64 `envconfig:"TIPJAR_LOOKBACK_BLOCKS"`
	DBPath            string  `envconfig:"TIPJAR_DB_PATH"`
	LogLevel          string  `envconfig:"TIPJAR_LOG_LEVEL"`
}

// Load builds the configuration from an optional file and the environment.
// An empty path means environment only.
func Load(path string) (*pkgconfig.Config, error) {
	if path == "" {
		return processConfig(&pkgconfig.Config{})
	}
	return LoadFromFile(path)
}

// LoadFromFile loads configuration from a file, auto-detecting the format by extension.
// Supported formats: .yaml, .yml, .json, .toml
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		return LoadFromYAML(path)
	case ".json":
		return LoadFromJSON(path)
	case ".toml":
		return LoadFromTOML(path)
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json, .toml)", ext)
	}
}

// LoadFromYAML loads configuration from a YAML file.
func LoadFromYAML(path string) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg pkgconfig.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return processConfig(&cfg)
}

// LoadFromJSON loads configuration from a JSON file.
func LoadFromJSON(path string) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg pkgconfig.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	return processConfig(&cfg)
}

// LoadFromTOML loads configuration from a TOML file.
func LoadFromTOML(path string) (*pkgconfig.Config, error) {
	var cfg pkgconfig.Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	return processConfig(&cfg)
}

// processConfig overlays the environment, applies defaults and validates the configuration.
func processConfig(cfg *pkgconfig.Config) (*pkgconfig.Config, error) {
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *pkgconfig.Config) error {
	var env envOverlay
	if err := envconfig.Process("", &env); err != nil {
		return pkgconfig.NewConfigurationError("environment", err.Error())
	}

	if env.ContractAddress != "" {
		cfg.Indexer.ContractAddress = env.ContractAddress
	}

	if env.UseTestnet != nil {
		if *env.UseTestnet {
			cfg.Indexer.Network = pkgconfig.NetworkBaseSepolia
		} else {
			cfg.Indexer.Network = pkgconfig.NetworkBase
		}
	}

	// The RPC variable of the selected network wins over the file value.
	switch cfg.Indexer.Network {
	case pkgconfig.NetworkBaseSepolia:
		if env.BaseSepoliaRPCURL != "" {
			cfg.Indexer.RPCURL = env.BaseSepoliaRPCURL
		}
	case pkgconfig.NetworkBase, "":
		if env.BaseRPCURL != "" {
			cfg.Indexer.RPCURL = env.BaseRPCURL
		}
	}

	if env.PollInterval != "" {
		interval, err := time.ParseDuration(env.PollInterval)
		if err != nil {
			return pkgconfig.NewConfigurationError("TIPJAR_POLL_INTERVAL", err.Error())
		}
		cfg.Indexer.PollInterval = common.NewDuration(interval)
	}

	if env.LookbackBlocks != nil {
		cfg.Indexer.LookbackBlocks = *env.LookbackBlocks
	}

	if env.DBPath != "" {
		cfg.DB.Path = env.DBPath
	}

	if env.LogLevel != "" {
		if cfg.Logging == nil {
			cfg.Logging = &pkgconfig.LoggingConfig{}
		}
		cfg.Logging.DefaultLevel = env.LogLevel
	}

	return nil
}
