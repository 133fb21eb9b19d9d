// Package config defines all configuration structures for the AtomSense
// service.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string `mapstructure:"format"` // "json" | "text"
	Output           string `mapstructure:"output"`
	EnableCaller     bool   `mapstructure:"enable_caller"`
	EnableStacktrace bool   `mapstructure:"enable_stacktrace"`
}

// EngineConfig holds the perception engine's tunables.
type EngineConfig struct {
	// Mode selects hydrogen handling: "permissive" folds implicit
	// hydrogens into neighbor counting, "strict-explicit-hydrogens"
	// requires every hydrogen as a graph atom.
	Mode string `mapstructure:"mode"`

	FingerprintRadius int `mapstructure:"fingerprint_radius"`
	FingerprintLength int `mapstructure:"fingerprint_length"`
}

// PostgresConfig holds PostgreSQL connection parameters for the perception
// result store.
type PostgresConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// RedisConfig holds Redis connection parameters for the result cache.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// Neo4jConfig holds Neo4j connection parameters for the typed-graph mirror.
type Neo4jConfig struct {
	Enabled               bool          `mapstructure:"enabled"`
	URI                   string        `mapstructure:"uri"`
	User                  string        `mapstructure:"user"`
	Password              string        `mapstructure:"password"`
	MaxConnectionPoolSize int           `mapstructure:"max_connection_pool_size"`
	ConnectionTimeout     time.Duration `mapstructure:"connection_timeout"`
	Database              string        `mapstructure:"database"`
}

// KafkaConfig holds the event publisher's parameters.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchSize    int           `mapstructure:"batch_size"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Async        bool          `mapstructure:"async"`
}

// MinIOConfig holds object-storage parameters for SDF dataset input.
type MinIOConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// MilvusConfig holds vector-store parameters for the typed-fingerprint index.
type MilvusConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Addr        string `mapstructure:"addr"`
	DBName      string `mapstructure:"db_name"`
	Collection  string `mapstructure:"collection"`
	DefaultTopK int    `mapstructure:"default_top_k"`
}

// OpenSearchConfig holds the type-occurrence document index parameters.
type OpenSearchConfig struct {
	Enabled            bool     `mapstructure:"enabled"`
	Addresses          []string `mapstructure:"addresses"`
	User               string   `mapstructure:"user"`
	Password           string   `mapstructure:"password"`
	InsecureSkipVerify bool     `mapstructure:"insecure_skip_verify"`
	Index              string   `mapstructure:"index"`
}

// DepictConfig holds 2-D depiction parameters.
type DepictConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	FontPath   string `mapstructure:"font_path"`
	TypeLabels bool   `mapstructure:"type_labels"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.  The engine and the surfaces
// read their settings from the relevant sub-struct; every integration below
// Engine is optional and only validated when enabled.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Engine     EngineConfig     `mapstructure:"engine"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Neo4j      Neo4jConfig      `mapstructure:"neo4j"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	MinIO      MinIOConfig      `mapstructure:"minio"`
	Milvus     MilvusConfig     `mapstructure:"milvus"`
	OpenSearch OpenSearchConfig `mapstructure:"opensearch"`
	Depict     DepictConfig     `mapstructure:"depict"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|text", c.Log.Format)
	}

	// Engine
	switch c.Engine.Mode {
	case "permissive", "strict", "strict-explicit-hydrogens", "explicit-hydrogens":
	default:
		return fmt.Errorf("config: engine.mode %q is invalid; expected permissive|strict-explicit-hydrogens", c.Engine.Mode)
	}
	if c.Engine.FingerprintRadius < 0 {
		return fmt.Errorf("config: engine.fingerprint_radius must be ≥ 0, got %d", c.Engine.FingerprintRadius)
	}
	if c.Engine.FingerprintLength < 8 {
		return fmt.Errorf("config: engine.fingerprint_length must be ≥ 8, got %d", c.Engine.FingerprintLength)
	}

	// Postgres
	if c.Postgres.Enabled {
		if c.Postgres.Host == "" {
			return fmt.Errorf("config: postgres.host is required when postgres is enabled")
		}
		if c.Postgres.Port < 1 || c.Postgres.Port > 65535 {
			return fmt.Errorf("config: postgres.port %d is out of range [1, 65535]", c.Postgres.Port)
		}
		if c.Postgres.User == "" {
			return fmt.Errorf("config: postgres.user is required when postgres is enabled")
		}
		if c.Postgres.DBName == "" {
			return fmt.Errorf("config: postgres.db_name is required when postgres is enabled")
		}
		if c.Postgres.MaxConns < 1 {
			return fmt.Errorf("config: postgres.max_conns must be ≥ 1, got %d", c.Postgres.MaxConns)
		}
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required when redis is enabled")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
		}
	}

	// Neo4j
	if c.Neo4j.Enabled {
		if c.Neo4j.URI == "" {
			return fmt.Errorf("config: neo4j.uri is required when neo4j is enabled")
		}
		if c.Neo4j.User == "" {
			return fmt.Errorf("config: neo4j.user is required when neo4j is enabled")
		}
	}

	// Kafka
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("config: kafka.topic is required when kafka is enabled")
		}
	}

	// MinIO
	if c.MinIO.Enabled {
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("config: minio.endpoint is required when minio is enabled")
		}
		if c.MinIO.Bucket == "" {
			return fmt.Errorf("config: minio.bucket is required when minio is enabled")
		}
	}

	// Milvus
	if c.Milvus.Enabled {
		if c.Milvus.Addr == "" {
			return fmt.Errorf("config: milvus.addr is required when milvus is enabled")
		}
		if c.Milvus.Collection == "" {
			return fmt.Errorf("config: milvus.collection is required when milvus is enabled")
		}
	}

	// OpenSearch
	if c.OpenSearch.Enabled {
		if len(c.OpenSearch.Addresses) == 0 {
			return fmt.Errorf("config: opensearch.addresses must contain at least one address")
		}
		if c.OpenSearch.Index == "" {
			return fmt.Errorf("config: opensearch.index is required when opensearch is enabled")
		}
	}

	// Depict
	if c.Depict.Width < 1 || c.Depict.Height < 1 {
		return fmt.Errorf("config: depict.width and depict.height must be positive, got %dx%d",
			c.Depict.Width, c.Depict.Height)
	}

	return nil
}
