// Command worker annotates SDF datasets in object storage.  It scans the
// configured bucket on an interval, classifies every molecule of every new
// dataset, and writes the type-annotated SD file back under the annotated/
// prefix.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	app "github.com/turtacn/AtomSense/internal/application/perception"
	"github.com/turtacn/AtomSense/internal/config"
	"github.com/turtacn/AtomSense/internal/domain/perception"
	"github.com/turtacn/AtomSense/internal/infrastructure/chemio"
	"github.com/turtacn/AtomSense/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AtomSense/internal/infrastructure/storage/minio"
)

const annotatedPrefix = "annotated/"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	interval := flag.Duration("interval", time.Minute, "bucket scan interval")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent dataset annotations")
	prefix := flag.String("prefix", "", "only annotate objects under this key prefix")
	healthAddr := flag.String("health-addr", ":8081", "address for health and metrics endpoints")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.MinIO.Enabled {
		fmt.Fprintln(os.Stderr, "the worker needs minio.enabled: true")
		os.Exit(1)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w, err := buildWorker(ctx, cfg, log, *workers)
	if err != nil {
		log.Error("failed to build worker", logging.Err(err))
		os.Exit(1)
	}
	defer w.close()

	healthSrv := startHealthServer(*healthAddr, w.collector, log)
	defer healthSrv.Shutdown(context.Background())

	log.Info("worker started",
		logging.Duration("interval", *interval),
		logging.Int("workers", *workers),
		logging.String("prefix", *prefix),
	)
	w.run(ctx, *interval, *prefix)
	log.Info("worker stopped")
}

func newLogger(cfg *config.Config) (logging.Logger, error) {
	format := cfg.Log.Format
	if format == "text" {
		format = "console"
	}
	return logging.NewLogger(logging.LogConfig{
		Level:  logging.Level(cfg.Log.Level),
		Format: format,
	})
}

// worker drives the scan-annotate loop.
type worker struct {
	datasets  *minio.DatasetStore
	service   *app.Service
	mode      perception.Mode
	log       logging.Logger
	collector prometheus.Collector
	pool      int

	mu   sync.Mutex
	done map[string]struct{}

	closers []func() error
}

func buildWorker(ctx context.Context, cfg *config.Config, log logging.Logger, pool int) (*worker, error) {
	mode, err := perception.ParseMode(cfg.Engine.Mode)
	if err != nil {
		return nil, err
	}

	collector, err := prometheus.NewCollector(prometheus.CollectorConfig{
		Namespace:            "atomsense",
		Subsystem:            "worker",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, log)
	if err != nil {
		return nil, err
	}

	store, err := minio.NewClient(ctx, &cfg.MinIO, log)
	if err != nil {
		return nil, err
	}

	w := &worker{
		datasets:  minio.NewDatasetStore(store),
		mode:      mode,
		log:       log,
		collector: collector,
		pool:      pool,
		done:      make(map[string]struct{}),
	}

	opts := []app.Option{
		app.WithLogger(log.Named("perception")),
		app.WithMetrics(prometheus.NewMetrics(collector)),
		app.WithFingerprint(cfg.Engine.FingerprintRadius, cfg.Engine.FingerprintLength),
	}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(&cfg.Kafka, log)
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, producer.Close)
		opts = append(opts, app.WithEventPublisher(
			kafka.NewEventPublisher(producer, cfg.Kafka.Topic, log)))
	}
	w.service = app.NewService(nil, opts...)
	return w, nil
}

func (w *worker) close() {
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i](); err != nil {
			w.log.Warn("close failed", logging.Err(err))
		}
	}
}

// run scans immediately, then on every tick, until the context ends.
func (w *worker) run(ctx context.Context, interval time.Duration, prefix string) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.scan(ctx, prefix)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scan(ctx, prefix)
		}
	}
}

func (w *worker) scan(ctx context.Context, prefix string) {
	objects, err := w.datasets.List(ctx, prefix)
	if err != nil {
		w.log.Error("dataset listing failed", logging.Err(err))
		return
	}

	keys := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < w.pool; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range keys {
				if err := w.annotate(ctx, key); err != nil {
					w.log.Error("annotation failed",
						logging.String("key", key), logging.Err(err))
				}
			}
		}()
	}

	for _, obj := range objects {
		if strings.HasPrefix(obj.Key, annotatedPrefix) || w.seen(obj.Key) {
			continue
		}
		select {
		case <-ctx.Done():
			close(keys)
			wg.Wait()
			return
		case keys <- obj.Key:
		}
	}
	close(keys)
	wg.Wait()
}

func (w *worker) seen(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.done[key]
	return ok
}

func (w *worker) markDone(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.done[key] = struct{}{}
}

// annotate classifies every record of one dataset and stores the annotated
// SD file.  A record that fails to classify fails the whole dataset so a
// partial annotation is never written.
func (w *worker) annotate(ctx context.Context, key string) error {
	rc, err := w.datasets.Fetch(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	mols, err := chemio.ReadAll(rc)
	if err != nil {
		return err
	}
	if len(mols) == 0 {
		w.markDone(key)
		return nil
	}

	var buf bytes.Buffer
	out := chemio.NewWriter(&buf)
	for _, mol := range mols {
		res, err := w.service.Perceive(ctx, mol, w.mode)
		if err != nil {
			return err
		}
		if err := out.WriteRecord(mol, res.TypeNames()); err != nil {
			return err
		}
	}

	stored, err := w.datasets.StoreAnnotated(ctx, key, buf.Bytes())
	if err != nil {
		return err
	}
	w.markDone(key)
	w.log.Info("dataset annotated",
		logging.String("key", key),
		logging.String("stored", stored),
		logging.Int("molecules", len(mols)),
	)
	return nil
}

func startHealthServer(addr string, collector prometheus.Collector, log logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("health server failed", logging.Err(err))
		}
	}()
	return srv
}
