package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "ATOMSENSE"

// newViper builds a pre-configured Viper instance: YAML file type,
// ATOMSENSE_ env prefix, automatic env binding, and a key replacer that maps
// "." → "_" so that nested keys like "postgres.host" resolve to
// "ATOMSENSE_POSTGRES_HOST".  Every key is seeded with its default so that
// environment overrides bind even without a config file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerDefaults(v)
	return v
}

// registerDefaults seeds viper with the same defaults ApplyDefaults fills,
// which makes the keys visible to AutomaticEnv during Unmarshal.
func registerDefaults(v *viper.Viper) {
	defaults := &Config{}
	ApplyDefaults(defaults)

	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.mode", defaults.Server.Mode)
	v.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", defaults.Server.WriteTimeout)
	v.SetDefault("server.max_body_size", defaults.Server.MaxBodySize)
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.output", defaults.Log.Output)
	v.SetDefault("log.enable_caller", defaults.Log.EnableCaller)
	v.SetDefault("log.enable_stacktrace", defaults.Log.EnableStacktrace)

	v.SetDefault("engine.mode", defaults.Engine.Mode)
	v.SetDefault("engine.fingerprint_radius", defaults.Engine.FingerprintRadius)
	v.SetDefault("engine.fingerprint_length", defaults.Engine.FingerprintLength)

	v.SetDefault("postgres.enabled", defaults.Postgres.Enabled)
	v.SetDefault("postgres.host", defaults.Postgres.Host)
	v.SetDefault("postgres.port", defaults.Postgres.Port)
	v.SetDefault("postgres.user", defaults.Postgres.User)
	v.SetDefault("postgres.password", defaults.Postgres.Password)
	v.SetDefault("postgres.db_name", defaults.Postgres.DBName)
	v.SetDefault("postgres.ssl_mode", defaults.Postgres.SSLMode)
	v.SetDefault("postgres.max_conns", defaults.Postgres.MaxConns)
	v.SetDefault("postgres.min_conns", defaults.Postgres.MinConns)
	v.SetDefault("postgres.conn_max_lifetime", defaults.Postgres.ConnMaxLifetime)
	v.SetDefault("postgres.conn_max_idle_time", defaults.Postgres.ConnMaxIdleTime)

	v.SetDefault("redis.enabled", defaults.Redis.Enabled)
	v.SetDefault("redis.addr", defaults.Redis.Addr)
	v.SetDefault("redis.password", defaults.Redis.Password)
	v.SetDefault("redis.db", defaults.Redis.DB)
	v.SetDefault("redis.pool_size", defaults.Redis.PoolSize)
	v.SetDefault("redis.min_idle_conns", defaults.Redis.MinIdleConns)
	v.SetDefault("redis.dial_timeout", defaults.Redis.DialTimeout)
	v.SetDefault("redis.read_timeout", defaults.Redis.ReadTimeout)
	v.SetDefault("redis.write_timeout", defaults.Redis.WriteTimeout)
	v.SetDefault("redis.default_ttl", defaults.Redis.DefaultTTL)
	v.SetDefault("redis.key_prefix", defaults.Redis.KeyPrefix)

	v.SetDefault("neo4j.enabled", defaults.Neo4j.Enabled)
	v.SetDefault("neo4j.uri", defaults.Neo4j.URI)
	v.SetDefault("neo4j.user", defaults.Neo4j.User)
	v.SetDefault("neo4j.password", defaults.Neo4j.Password)
	v.SetDefault("neo4j.max_connection_pool_size", defaults.Neo4j.MaxConnectionPoolSize)
	v.SetDefault("neo4j.connection_timeout", defaults.Neo4j.ConnectionTimeout)
	v.SetDefault("neo4j.database", defaults.Neo4j.Database)

	v.SetDefault("kafka.enabled", defaults.Kafka.Enabled)
	v.SetDefault("kafka.brokers", defaults.Kafka.Brokers)
	v.SetDefault("kafka.topic", defaults.Kafka.Topic)
	v.SetDefault("kafka.batch_size", defaults.Kafka.BatchSize)
	v.SetDefault("kafka.write_timeout", defaults.Kafka.WriteTimeout)
	v.SetDefault("kafka.async", defaults.Kafka.Async)

	v.SetDefault("minio.enabled", defaults.MinIO.Enabled)
	v.SetDefault("minio.endpoint", defaults.MinIO.Endpoint)
	v.SetDefault("minio.access_key", defaults.MinIO.AccessKey)
	v.SetDefault("minio.secret_key", defaults.MinIO.SecretKey)
	v.SetDefault("minio.bucket", defaults.MinIO.Bucket)
	v.SetDefault("minio.use_ssl", defaults.MinIO.UseSSL)

	v.SetDefault("milvus.enabled", defaults.Milvus.Enabled)
	v.SetDefault("milvus.addr", defaults.Milvus.Addr)
	v.SetDefault("milvus.db_name", defaults.Milvus.DBName)
	v.SetDefault("milvus.collection", defaults.Milvus.Collection)
	v.SetDefault("milvus.default_top_k", defaults.Milvus.DefaultTopK)

	v.SetDefault("opensearch.enabled", defaults.OpenSearch.Enabled)
	v.SetDefault("opensearch.addresses", defaults.OpenSearch.Addresses)
	v.SetDefault("opensearch.user", defaults.OpenSearch.User)
	v.SetDefault("opensearch.password", defaults.OpenSearch.Password)
	v.SetDefault("opensearch.insecure_skip_verify", defaults.OpenSearch.InsecureSkipVerify)
	v.SetDefault("opensearch.index", defaults.OpenSearch.Index)

	v.SetDefault("depict.width", defaults.Depict.Width)
	v.SetDefault("depict.height", defaults.Depict.Height)
	v.SetDefault("depict.font_path", defaults.Depict.FontPath)
	v.SetDefault("depict.type_labels", defaults.Depict.TypeLabels)
}

// Load reads configuration from the YAML file at configPath merged with
// ATOMSENSE_* environment overrides.  An empty path loads from the
// environment alone.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	return LoadFromFile(configPath)
}

// LoadFromFile reads the YAML file at configPath, merges any ATOMSENSE_*
// environment variable overrides, applies defaults for unset fields, and
// validates the result.
func LoadFromFile(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from ATOMSENSE_* environment variables
// and defaults, with no config file required.  This is the preferred loading
// strategy for containerised deployments.
//
// Environment variable naming convention:
//
//	ATOMSENSE_<SECTION>_<FIELD>   e.g.  ATOMSENSE_POSTGRES_HOST, ATOMSENSE_ENGINE_MODE
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  It is intended for
// hot-reloading settings that are safe to change at runtime, such as the log
// level; callers are responsible for applying only that subset.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
// A changed file that fails to parse or validate does not invoke onChange.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; callers should have called Load first, so errors here
	// only repeat what Load already reported.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always
// fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
