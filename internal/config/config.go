package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// DatabaseConfig holds database configuration for the durable blob store
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// StoreConfig selects the durable blob store backend
type StoreConfig struct {
	// Backend is either "fs" or "db"
	Backend string `mapstructure:"backend"`
	// DataDir is the directory for the fs backend
	DataDir string `mapstructure:"data_dir"`
}

// NATSConfig holds NATS JetStream configuration for the optional event feed
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// IndexerConfig holds the NFT indexer gateway configuration
type IndexerConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Retries        int           `mapstructure:"retries"`
	BaseDelay      time.Duration `mapstructure:"base_delay"`
	MaxDelay       time.Duration `mapstructure:"max_delay"`
	PageDelay      time.Duration `mapstructure:"page_delay"`
	JitterMin      time.Duration `mapstructure:"jitter_min"`
	JitterMax      time.Duration `mapstructure:"jitter_max"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	PageLimit      int           `mapstructure:"page_limit"`
}

// HoldingsConfig holds the holdings resolver configuration
type HoldingsConfig struct {
	Collection string        `mapstructure:"collection"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
	CacheSize  int           `mapstructure:"cache_size"`
	MaxPages   int           `mapstructure:"max_pages"`
}

// LeaderboardConfig holds the leaderboard aggregation configuration
type LeaderboardConfig struct {
	SnapshotTTL   time.Duration `mapstructure:"snapshot_ttl"`
	YouTTL        time.Duration `mapstructure:"you_ttl"`
	TopN          int           `mapstructure:"top_n"`
	MaxPages      int           `mapstructure:"max_pages"`
	EarlyStopSize int           `mapstructure:"early_stop_size"`
}

// EthereumConfig holds Ethereum-specific configuration
type EthereumConfig struct {
	RPCURL        string `mapstructure:"rpc_url"`
	ScoreContract string `mapstructure:"score_contract"`
	PrivateKey    string `mapstructure:"private_key"`
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// PinataConfig holds Pinata pinning configuration
type PinataConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	JWT        string `mapstructure:"jwt"`
	GatewayURL string `mapstructure:"gateway_url"`
}

// MGIDConfig holds the identity vendor configuration
type MGIDConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// RefresherConfig holds background refresher configuration
type RefresherConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	PoolSize int           `mapstructure:"pool_size"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Server      ServerConfig      `mapstructure:"server"`
	Store       StoreConfig       `mapstructure:"store"`
	Database    DatabaseConfig    `mapstructure:"database"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Indexer     IndexerConfig     `mapstructure:"indexer"`
	Holdings    HoldingsConfig    `mapstructure:"holdings"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	Ethereum    EthereumConfig    `mapstructure:"ethereum"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	Pinata      PinataConfig      `mapstructure:"pinata"`
	MGID        MGIDConfig        `mapstructure:"mgid"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Refresher   RefresherConfig   `mapstructure:"refresher"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("store.backend", "fs")
	v.SetDefault("store.data_dir", "data/")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("nats.stream_name", "FC_EVENTS")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("indexer.base_url", "https://api.blockvision.org/v2/monad")
	v.SetDefault("indexer.retries", 5)
	v.SetDefault("indexer.base_delay", "400ms")
	v.SetDefault("indexer.max_delay", "5s")
	v.SetDefault("indexer.page_delay", "300ms")
	v.SetDefault("indexer.jitter_min", "80ms")
	v.SetDefault("indexer.jitter_max", "220ms")
	v.SetDefault("indexer.request_timeout", "12s")
	v.SetDefault("indexer.page_limit", 100)
	v.SetDefault("holdings.cache_ttl", "45s")
	v.SetDefault("holdings.cache_size", 4096)
	v.SetDefault("holdings.max_pages", 20)
	v.SetDefault("leaderboard.snapshot_ttl", "10s")
	v.SetDefault("leaderboard.you_ttl", "5s")
	v.SetDefault("leaderboard.top_n", 20)
	v.SetDefault("leaderboard.max_pages", 6)
	v.SetDefault("leaderboard.early_stop_size", 200)
	v.SetDefault("ethereum.rpc_url", "https://testnet-rpc.monad.xyz")
	v.SetDefault("ethereum.score_contract", "0xceCBFF203C8B6044F52CE23D914A1bfD997541A4")
	v.SetDefault("mgid.base_url", "https://monad-games-id-site.vercel.app")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("pinata.base_url", "https://api.pinata.cloud")
	v.SetDefault("pinata.gateway_url", "https://gateway.pinata.cloud/ipfs")
	v.SetDefault("refresher.enabled", false)
	v.SetDefault("refresher.interval", "30s")
	v.SetDefault("refresher.pool_size", 8)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Holdings.Collection == "" {
		return nil, errors.New("holdings.collection is required")
	}
	if config.Store.Backend != "fs" && config.Store.Backend != "db" {
		return nil, fmt.Errorf("unknown store backend %q", config.Store.Backend)
	}

	return &config, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FC_BACKEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Store
		"store.backend",
		"store.data_dir",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Indexer
		"indexer.base_url",
		"indexer.api_key",
		"indexer.retries",
		"indexer.base_delay",
		"indexer.max_delay",
		"indexer.page_delay",
		"indexer.jitter_min",
		"indexer.jitter_max",
		"indexer.request_timeout",
		"indexer.page_limit",
		// Holdings
		"holdings.collection",
		"holdings.cache_ttl",
		"holdings.cache_size",
		"holdings.max_pages",
		// Leaderboard
		"leaderboard.snapshot_ttl",
		"leaderboard.you_ttl",
		"leaderboard.top_n",
		"leaderboard.max_pages",
		"leaderboard.early_stop_size",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.score_contract",
		"ethereum.private_key",
		// OpenAI
		"openai.base_url",
		"openai.api_key",
		// Pinata
		"pinata.base_url",
		"pinata.jwt",
		"pinata.gateway_url",
		// MGID
		"mgid.base_url",
		"mgid.api_key",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Refresher
		"refresher.enabled",
		"refresher.interval",
		"refresher.pool_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
