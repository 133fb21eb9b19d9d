package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8080
	DefaultServerMode = "debug"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "stdout"

	DefaultEngineMode        = "permissive"
	DefaultFingerprintRadius = 2
	DefaultFingerprintLength = 2048

	DefaultPostgresHost     = "localhost"
	DefaultPostgresPort     = 5432
	DefaultPostgresDBName   = "atomsense"
	DefaultPostgresMaxConns = 25

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisTTL       = 24 * time.Hour
	DefaultRedisKeyPrefix = "atomsense:"

	DefaultNeo4jURI      = "bolt://localhost:7687"
	DefaultNeo4jUser     = "neo4j"
	DefaultNeo4jDatabase = "neo4j"

	DefaultKafkaBroker = "localhost:9092"
	DefaultKafkaTopic  = "perception.completed"

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "atomsense-datasets"

	DefaultMilvusAddr       = "localhost:19530"
	DefaultMilvusCollection = "typed_fingerprints"
	DefaultMilvusTopK       = 10

	DefaultOpenSearchAddress = "http://localhost:9200"
	DefaultOpenSearchIndex   = "atomsense-perceptions"

	DefaultDepictWidth  = 800
	DefaultDepictHeight = 600
)

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.  It must be called
// after unmarshalling raw config data and before Validate() so that
// optional-but-defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = 8 << 20
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = DefaultLogOutput
	}

	// ── Engine ────────────────────────────────────────────────────────────────
	if cfg.Engine.Mode == "" {
		cfg.Engine.Mode = DefaultEngineMode
	}
	if cfg.Engine.FingerprintRadius == 0 {
		cfg.Engine.FingerprintRadius = DefaultFingerprintRadius
	}
	if cfg.Engine.FingerprintLength == 0 {
		cfg.Engine.FingerprintLength = DefaultFingerprintLength
	}

	// ── Postgres ──────────────────────────────────────────────────────────────
	if cfg.Postgres.Host == "" {
		cfg.Postgres.Host = DefaultPostgresHost
	}
	if cfg.Postgres.Port == 0 {
		cfg.Postgres.Port = DefaultPostgresPort
	}
	if cfg.Postgres.DBName == "" {
		cfg.Postgres.DBName = DefaultPostgresDBName
	}
	if cfg.Postgres.MaxConns == 0 {
		cfg.Postgres.MaxConns = DefaultPostgresMaxConns
	}
	if cfg.Postgres.SSLMode == "" {
		cfg.Postgres.SSLMode = "disable"
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultRedisTTL
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// ── Neo4j ─────────────────────────────────────────────────────────────────
	if cfg.Neo4j.URI == "" {
		cfg.Neo4j.URI = DefaultNeo4jURI
	}
	if cfg.Neo4j.User == "" {
		cfg.Neo4j.User = DefaultNeo4jUser
	}
	if cfg.Neo4j.Database == "" {
		cfg.Neo4j.Database = DefaultNeo4jDatabase
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.BatchSize == 0 {
		cfg.Kafka.BatchSize = 100
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = 10 * time.Second
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}

	// ── Milvus ────────────────────────────────────────────────────────────────
	if cfg.Milvus.Addr == "" {
		cfg.Milvus.Addr = DefaultMilvusAddr
	}
	if cfg.Milvus.Collection == "" {
		cfg.Milvus.Collection = DefaultMilvusCollection
	}
	if cfg.Milvus.DefaultTopK == 0 {
		cfg.Milvus.DefaultTopK = DefaultMilvusTopK
	}

	// ── OpenSearch ────────────────────────────────────────────────────────────
	if len(cfg.OpenSearch.Addresses) == 0 {
		cfg.OpenSearch.Addresses = []string{DefaultOpenSearchAddress}
	}
	if cfg.OpenSearch.Index == "" {
		cfg.OpenSearch.Index = DefaultOpenSearchIndex
	}

	// ── Depict ────────────────────────────────────────────────────────────────
	if cfg.Depict.Width == 0 {
		cfg.Depict.Width = DefaultDepictWidth
	}
	if cfg.Depict.Height == 0 {
		cfg.Depict.Height = DefaultDepictHeight
	}
}
