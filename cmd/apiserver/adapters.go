package main

import (
	"context"
	"fmt"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/domain/perception"
	neo4jdriver "github.com/turtacn/AtomSense/internal/infrastructure/database/neo4j"
	neo4jrepo "github.com/turtacn/AtomSense/internal/infrastructure/database/neo4j/repositories"
	pgconn "github.com/turtacn/AtomSense/internal/infrastructure/database/postgres"
	pgrepo "github.com/turtacn/AtomSense/internal/infrastructure/database/postgres/repositories"
	redisdb "github.com/turtacn/AtomSense/internal/infrastructure/database/redis"
	"github.com/turtacn/AtomSense/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AtomSense/internal/infrastructure/search/milvus"
	"github.com/turtacn/AtomSense/internal/infrastructure/search/opensearch"
	httpserver "github.com/turtacn/AtomSense/internal/interfaces/http"
	"github.com/turtacn/AtomSense/internal/interfaces/http/handlers"
)

// version is stamped via ldflags at release time.
var version = "dev"

// dependencies holds every wired backend plus the closers to release them.
type dependencies struct {
	service  *app.Service
	store    app.ResultStore
	metrics  *prometheus.Metrics
	registry prometheus.Collector
	mode     perception.Mode
	log      logging.Logger

	similar     handlers.SimilaritySearcher
	occurrences handlers.OccurrenceSearcher
	fpRadius    int
	fpLength    int

	checkers []handlers.HealthChecker
	closers  []func(context.Context) error
}

// buildDependencies wires every backend the configuration enables.  A
// disabled backend simply leaves its side effect out; the perception core
// itself needs nothing but the embedded dictionary.
func buildDependencies(ctx context.Context, cfg *config.Config, log logging.Logger) (*dependencies, error) {
	mode, err := perception.ParseMode(cfg.Engine.Mode)
	if err != nil {
		return nil, err
	}

	collector, err := prometheus.NewCollector(prometheus.CollectorConfig{
		Namespace:            "atomsense",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, log)
	if err != nil {
		return nil, err
	}

	deps := &dependencies{
		metrics:  prometheus.NewMetrics(collector),
		registry: collector,
		mode:     mode,
		log:      log,
		fpRadius: cfg.Engine.FingerprintRadius,
		fpLength: cfg.Engine.FingerprintLength,
	}

	opts := []app.Option{
		app.WithLogger(log.Named("perception")),
		app.WithMetrics(deps.metrics),
		app.WithFingerprint(cfg.Engine.FingerprintRadius, cfg.Engine.FingerprintLength),
	}

	if cfg.Postgres.Enabled {
		if err := pgconn.Migrate(&cfg.Postgres, log); err != nil {
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		pool, err := pgconn.NewPool(ctx, &cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, func(context.Context) error {
			pool.Close()
			return nil
		})
		deps.addChecker("postgres", pool.Ping)

		deps.store = pgrepo.NewResultRepo(pool, log)
		opts = append(opts, app.WithResultStore(deps.store))
	}

	if cfg.Redis.Enabled {
		client, err := redisdb.NewClient(&cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, func(context.Context) error {
			return client.Close()
		})
		deps.addChecker("redis", client.Ping)

		opts = append(opts, app.WithResultCache(redisdb.NewCache(client, log)))
	}

	if cfg.Neo4j.Enabled {
		drv, err := neo4jdriver.NewDriver(ctx, &cfg.Neo4j, log)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, drv.Close)
		deps.addChecker("neo4j", drv.Ping)

		opts = append(opts, app.WithGraphMirror(neo4jrepo.NewGraphMirror(drv, log)))
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(&cfg.Kafka, log)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, func(context.Context) error {
			return producer.Close()
		})

		opts = append(opts, app.WithEventPublisher(
			kafka.NewEventPublisher(producer, cfg.Kafka.Topic, log)))
	}

	if cfg.OpenSearch.Enabled {
		client, err := opensearch.NewClient(ctx, &cfg.OpenSearch, log)
		if err != nil {
			return nil, err
		}
		deps.addChecker("opensearch", client.Ping)

		indexer, err := opensearch.NewOccurrenceIndexer(ctx, client)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithOccurrenceIndexer(indexer))
		deps.occurrences = opensearch.NewSearcher(client)
	}

	if cfg.Milvus.Enabled {
		client, err := milvus.NewClient(ctx, &cfg.Milvus, log)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, func(context.Context) error {
			return client.Close()
		})

		index, err := milvus.NewVectorIndex(ctx, client, cfg.Milvus.Collection,
			cfg.Engine.FingerprintLength, log)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithVectorIndexer(index))
		deps.similar = milvus.NewSearcher(index, cfg.Milvus.DefaultTopK)
	}

	deps.service = app.NewService(nil, opts...)
	return deps, nil
}

func (d *dependencies) addChecker(name string, fn func(context.Context) error) {
	d.checkers = append(d.checkers, handlers.CheckerFunc{CheckerName: name, Fn: fn})
}

// RouterConfig assembles the handler set for the HTTP surface.
func (d *dependencies) RouterConfig(cfg *config.Config) httpserver.RouterConfig {
	dict, err := d.service.Dictionary()
	if err != nil {
		// The embedded dictionary only fails to load on a corrupt build.
		d.log.Error("dictionary load failed", logging.Err(err))
	}

	var search *handlers.SearchHandler
	if d.similar != nil || d.occurrences != nil {
		search = handlers.NewSearchHandler(d.similar, d.occurrences, nil,
			d.mode, d.fpRadius, d.fpLength)
	}

	return httpserver.RouterConfig{
		PerceptionHandler: handlers.NewPerceptionHandler(d.service, d.store, d.mode),
		TypesHandler:      handlers.NewTypesHandler(dict),
		SearchHandler:     search,
		HealthHandler:     handlers.NewHealthHandler(version, d.checkers...),
		Logger:            d.log.Named("http"),
		Metrics:           d.metrics,
		MetricsHandler:    d.registry.Handler(),
		AllowedOrigins:    nil,
		Mode:              cfg.Server.Mode,
	}
}

// Close releases every backend in reverse acquisition order.
func (d *dependencies) Close(ctx context.Context) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](ctx); err != nil {
			d.log.Warn("close failed", logging.Err(err))
		}
	}
}
