package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goran-ethernal/TipJarIndexer/internal/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
)

const (
	// NetworkBase is Base mainnet.
	NetworkBase = "base"
	// NetworkBaseSepolia is the Base Sepolia test network.
	NetworkBaseSepolia = "base-sepolia"
)

// Network describes a chain the indexer can follow.
type Network struct {
	Name          string
	ChainID       uint64
	DefaultRPCURL string
}

// Networks lists the supported networks by name.
var Networks = map[string]Network{
	NetworkBase: {
		Name:          NetworkBase,
		ChainID:       8453,
		DefaultRPCURL: "https://mainnet.base.org",
	},
	NetworkBaseSepolia: {
		Name:          NetworkBaseSepolia,
		ChainID:       84532,
		DefaultRPCURL: "https://sepolia.base.org",
	},
}

// ConfigurationError is returned for any invalid or missing configuration value.
// It is fatal at startup.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// NewConfigurationError creates a ConfigurationError for the given field.
func NewConfigurationError(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}

// Config represents the complete configuration of the tip indexer.
type Config struct {
	// Indexer contains the chain, contract and polling configuration
	Indexer IndexerConfig `yaml:"indexer" json:"indexer" toml:"indexer"`

	// DB contains the ledger database configuration
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`

	// API contains the read-only query API configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`
}

// IndexerConfig represents the configuration of the polling indexer.
type IndexerConfig struct {
	// ContractAddress is the TipJar contract to index
	ContractAddress string `yaml:"contract_address" json:"contract_address" toml:"contract_address" validate:"required,eth_addr"` //nolint:lll

	// Network selects the chain: "base" or "base-sepolia"
	Network string `yaml:"network" json:"network" toml:"network" validate:"oneof=base base-sepolia"`

	// RPCURL is the JSON-RPC endpoint; defaults to the network's public endpoint
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url" validate:"required,url"`

	// PollInterval is the pause between polling passes
	PollInterval common.Duration `yaml:"poll_interval" json:"poll_interval" toml:"poll_interval"`

	// LookbackBlocks is how far behind the head the first run starts
	LookbackBlocks uint64 `yaml:"lookback_blocks" json:"lookback_blocks" toml:"lookback_blocks"`

	// ChunkSize is the maximum block range per eth_getLogs call
	ChunkSize uint64 `yaml:"chunk_size" json:"chunk_size" toml:"chunk_size" validate:"gt=0"`

	// Confirmations is the number of blocks behind head treated as the indexable tip.
	// Zero indexes up to the latest block.
	Confirmations uint64 `yaml:"confirmations" json:"confirmations" toml:"confirmations"`

	// RequestTimeout bounds every single RPC call
	RequestTimeout common.Duration `yaml:"request_timeout" json:"request_timeout" toml:"request_timeout"`

	// Retry contains RPC retry configuration with exponential backoff
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty"`
}

// ApplyDefaults sets default values for optional indexer configuration fields.
func (i *IndexerConfig) ApplyDefaults() {
	if i.Network == "" {
		i.Network = NetworkBase
	}
	if i.RPCURL == "" {
		if network, ok := Networks[i.Network]; ok {
			i.RPCURL = network.DefaultRPCURL
		}
	}
	if i.PollInterval.Duration == 0 {
		i.PollInterval = common.NewDuration(5 * time.Second) //nolint:mnd
	}
	if i.LookbackBlocks == 0 {
		i.LookbackBlocks = 10000
	}
	if i.ChunkSize == 0 {
		i.ChunkSize = 5000
	}
	if i.RequestTimeout.Duration == 0 {
		i.RequestTimeout = common.NewDuration(30 * time.Second) //nolint:mnd
	}
	if i.Retry == nil {
		i.Retry = &RetryConfig{}
	}
	i.Retry.ApplyDefaults()
}

// ChainID returns the expected chain id of the configured network.
func (i *IndexerConfig) ChainID() uint64 {
	return Networks[i.Network].ChainID
}

// RetryConfig represents RPC retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts uint `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts" validate:"gte=1"`

	// InitialBackoff is the initial backoff duration before first retry
	InitialBackoff common.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff"`

	// MaxBackoff is the maximum backoff duration
	MaxBackoff common.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff"`
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 3
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = common.NewDuration(500 * time.Millisecond) //nolint:mnd
	}
	if r.MaxBackoff.Duration == 0 {
		r.MaxBackoff = common.NewDuration(5 * time.Second) //nolint:mnd
	}
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path" validate:"required"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	// WAL mode is recommended for better concurrency
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode" validate:"oneof=WAL DELETE TRUNCATE PERSIST MEMORY"` //nolint:lll

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous" validate:"oneof=FULL NORMAL OFF"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.Path == "" {
		d.Path = "data/tips.db"
	}
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "FULL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 2000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 4
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 2
	}
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components: poller, processor, chain-reader, ledger, rpc, api, metrics
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return NewConfigurationError("logging.default_level", "must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return NewConfigurationError("logging.component_levels", fmt.Sprintf("unknown component '%s'", component))
		}

		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return NewConfigurationError(
				fmt.Sprintf("logging.component_levels[%s]", component),
				"must be one of: debug, info, warn, error",
			)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if level, ok := l.ComponentLevels[component]; ok {
		return common.ToLowerWithTrim(level)
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	// Format: "host:port" or ":port"
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return NewConfigurationError("metrics.listen_address", "required when metrics are enabled")
		}
		if m.Path == "" {
			return NewConfigurationError("metrics.path", "required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return NewConfigurationError("metrics.path", "must start with '/'")
		}
	}
	return nil
}

// APIConfig configures the read-only HTTP query API.
type APIConfig struct {
	// Enabled controls whether the API server is started
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the API server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS contains cross-origin settings for browser clients
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for optional API configuration fields.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Indexer.ApplyDefaults()
	c.DB.ApplyDefaults()

	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
	c.Logging.ApplyDefaults()

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}

	if c.API != nil {
		c.API.ApplyDefaults()
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks if the configuration is valid.
// Every failure is reported as a *ConfigurationError.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return fieldError(validationErrs[0])
		}
		return NewConfigurationError("config", err.Error())
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return err
		}
	}

	if c.API != nil && c.API.Enabled && c.API.ListenAddress == "" {
		return NewConfigurationError("api.listen_address", "required when the API is enabled")
	}

	return nil
}

// fieldError converts a validator failure into a ConfigurationError naming the yaml field.
func fieldError(fe validator.FieldError) error {
	field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	if name, ok := fieldNames[fe.StructNamespace()]; ok {
		field = name
	}

	switch fe.Tag() {
	case "required":
		return NewConfigurationError(field, "is required")
	case "eth_addr":
		return NewConfigurationError(field, fmt.Sprintf("'%v' is not a valid address", fe.Value()))
	case "url":
		return NewConfigurationError(field, fmt.Sprintf("'%v' is not a valid URL", fe.Value()))
	case "oneof":
		return NewConfigurationError(field, "must be one of: "+strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return NewConfigurationError(field, fmt.Sprintf("failed '%s' check", fe.Tag()))
	}
}

var fieldNames = map[string]string{
	"Config.Indexer.ContractAddress":   "indexer.contract_address",
	"Config.Indexer.Network":           "indexer.network",
	"Config.Indexer.RPCURL":            "indexer.rpc_url",
	"Config.Indexer.ChunkSize":         "indexer.chunk_size",
	"Config.Indexer.Retry.MaxAttempts": "indexer.retry.max_attempts",
	"Config.DB.Path":                   "db.path",
	"Config.DB.JournalMode":            "db.journal_mode",
	"Config.DB.Synchronous":            "db.synchronous",
}
