package perception

import (
	"context"
	"time"

	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/domain/fingerprint"
	"github.com/turtacn/AtomSense/internal/domain/molecule"
	"github.com/turtacn/AtomSense/internal/domain/perception"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AtomSense/pkg/errors"
	"github.com/turtacn/AtomSense/pkg/types/common"
)

const defaultCacheTTL = 24 * time.Hour

// Service runs the engine and fans results out to the configured sinks.
// Every sink is optional; a nil sink is skipped, a failing sink logs a
// warning and the classification still succeeds.  Only dictionary errors
// abort.
type Service struct {
	registry *perception.Registry

	store       ResultStore
	mirror      GraphMirror
	cache       ResultCache
	events      EventPublisher
	occurrences OccurrenceIndexer
	vectors     VectorIndexer

	metrics  *prometheus.Metrics
	log      logging.Logger
	cacheTTL time.Duration

	fpRadius int
	fpLength int
}

// Option configures the service.
type Option func(*Service)

// WithResultStore persists results to the store.
func WithResultStore(s ResultStore) Option { return func(svc *Service) { svc.store = s } }

// WithGraphMirror mirrors typed graphs.
func WithGraphMirror(m GraphMirror) Option { return func(svc *Service) { svc.mirror = m } }

// WithResultCache serves repeated inputs from the cache.
func WithResultCache(c ResultCache) Option { return func(svc *Service) { svc.cache = c } }

// WithEventPublisher announces completed classifications.
func WithEventPublisher(p EventPublisher) Option { return func(svc *Service) { svc.events = p } }

// WithOccurrenceIndexer feeds the type-occurrence index.
func WithOccurrenceIndexer(ix OccurrenceIndexer) Option {
	return func(svc *Service) { svc.occurrences = ix }
}

// WithVectorIndexer stores typed fingerprints.
func WithVectorIndexer(v VectorIndexer) Option { return func(svc *Service) { svc.vectors = v } }

// WithMetrics instruments the service.
func WithMetrics(m *prometheus.Metrics) Option { return func(svc *Service) { svc.metrics = m } }

// WithLogger sets the service logger.
func WithLogger(l logging.Logger) Option { return func(svc *Service) { svc.log = l } }

// WithCacheTTL overrides how long cached results live.
func WithCacheTTL(ttl time.Duration) Option { return func(svc *Service) { svc.cacheTTL = ttl } }

// WithFingerprint sets the typed-fingerprint sphere radius and bit width
// used for the vector index.
func WithFingerprint(radius, length int) Option {
	return func(svc *Service) {
		svc.fpRadius = radius
		svc.fpLength = length
	}
}

// NewService builds the orchestrator around a matcher registry.  A nil
// registry falls back to the process-wide one over the embedded dictionary.
func NewService(registry *perception.Registry, opts ...Option) *Service {
	if registry == nil {
		registry = perception.NewRegistry(nil, nil)
	}
	svc := &Service{
		registry: registry,
		log:      logging.NewNopLogger(),
		cacheTTL: defaultCacheTTL,
		fpRadius: fingerprint.DefaultRadius,
		fpLength: fingerprint.DefaultLength,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Perceive classifies every atom of the molecule in the given mode.  When a
// cache is configured, a molecule already classified under the same content
// hash and mode is served from it and no side effects run again.
func (s *Service) Perceive(ctx context.Context, mol *molecule.Molecule, mode perception.Mode) (*Result, error) {
	if mol == nil {
		return nil, errors.InvalidParam("a molecule is required")
	}
	if mol.AtomCount() == 0 {
		return nil, errors.New(errors.ErrCodeMoleculeInvalid, "molecule has no atoms")
	}

	hash := ContentHash(mol, mode.String())

	if s.cache == nil {
		return s.classifyAndFanOut(ctx, mol, mode, hash)
	}

	var cached Result
	hit, err := s.cache.GetOrSet(ctx, cacheKey(hash, mode), &cached, s.cacheTTL,
		func(ctx context.Context) (interface{}, error) {
			return s.classifyAndFanOut(ctx, mol, mode, hash)
		})
	if err != nil {
		return nil, err
	}
	if hit {
		s.countCache(true)
		s.log.Debug("perception served from cache",
			logging.String("hash", hash),
			logging.String("mode", mode.String()))
	} else {
		s.countCache(false)
	}
	return &cached, nil
}

func cacheKey(hash string, mode perception.Mode) string {
	return hash + ":" + mode.String()
}

func (s *Service) classifyAndFanOut(ctx context.Context, mol *molecule.Molecule, mode perception.Mode, hash string) (*Result, error) {
	res, err := s.classify(mol, mode, hash)
	if err != nil {
		return nil, err
	}
	s.fanOut(ctx, mol, res)
	return res, nil
}

func (s *Service) classify(mol *molecule.Molecule, mode perception.Mode, hash string) (*Result, error) {
	matcher, err := s.registry.Matcher(mode)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	types, err := matcher.ClassifyAll(mol)
	if err != nil {
		if s.metrics != nil {
			s.metrics.PerceptionsTotal.WithLabelValues(mode.String(), "error").Inc()
		}
		return nil, err
	}
	elapsed := time.Since(start)

	atoms := mol.Atoms()
	res := &Result{
		ID:          common.NewID(),
		MoleculeID:  mol.ID,
		Name:        mol.Title,
		Formula:     mol.Formula(),
		Mode:        mode.String(),
		ContentHash: hash,
		Atoms:       make([]Assignment, len(types)),
		CreatedAt:   time.Now().UTC(),
	}
	for i, t := range types {
		matched := t.Name != atomtype.PlaceholderName
		res.Atoms[i] = Assignment{
			Index:   i,
			Symbol:  atoms[i].Symbol(),
			Type:    t.Name,
			Matched: matched,
		}
		if !matched {
			res.UnmatchedCount++
		}
	}

	if s.metrics != nil {
		s.metrics.PerceptionsTotal.WithLabelValues(mode.String(), "ok").Inc()
		s.metrics.PerceptionDuration.WithLabelValues(mode.String()).Observe(elapsed.Seconds())
		for i, a := range res.Atoms {
			s.metrics.AtomsClassifiedTotal.WithLabelValues(atoms[i].Symbol()).Inc()
			if !a.Matched {
				s.metrics.UnmatchedAtomsTotal.WithLabelValues(atoms[i].Symbol()).Inc()
			}
		}
	}

	s.log.Info("molecule classified",
		logging.String("hash", hash),
		logging.String("mode", mode.String()),
		logging.Int("atoms", len(res.Atoms)),
		logging.Int("unmatched", res.UnmatchedCount),
		logging.Duration("took", elapsed))
	return res, nil
}

// fanOut runs every configured sink.  Failures degrade to warnings.
func (s *Service) fanOut(ctx context.Context, mol *molecule.Molecule, res *Result) {
	if s.store != nil {
		s.runSideEffect(ctx, "postgres", func(ctx context.Context) error {
			return s.store.Save(ctx, res)
		})
	}
	if s.mirror != nil {
		s.runSideEffect(ctx, "neo4j", func(ctx context.Context) error {
			return s.mirror.MirrorTypedGraph(ctx, mol, res)
		})
	}
	if s.events != nil {
		s.runSideEffect(ctx, "kafka", func(ctx context.Context) error {
			return s.events.PublishPerceptionCompleted(ctx, res)
		})
	}
	if s.occurrences != nil {
		s.runSideEffect(ctx, "opensearch", func(ctx context.Context) error {
			return s.occurrences.IndexResult(ctx, res)
		})
	}
	if s.vectors != nil {
		s.runSideEffect(ctx, "milvus", func(ctx context.Context) error {
			fp, err := fingerprint.Typed(mol, res.TypeNames(), s.fpRadius, s.fpLength)
			if err != nil {
				return err
			}
			return s.vectors.UpsertFingerprint(ctx, string(res.ID), fp)
		})
	}
}

func (s *Service) runSideEffect(ctx context.Context, sink string, fn func(context.Context) error) {
	start := time.Now()
	err := fn(ctx)
	status := "ok"
	if err != nil {
		status = "error"
		s.log.Warn("result side effect failed",
			logging.String("sink", sink),
			logging.Err(err))
	}
	if s.metrics != nil {
		s.metrics.SideEffectsTotal.WithLabelValues(sink, status).Inc()
		s.metrics.SideEffectDuration.WithLabelValues(sink).Observe(time.Since(start).Seconds())
	}
}

func (s *Service) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.ResultCacheHits.WithLabelValues("redis").Inc()
	} else {
		s.metrics.ResultCacheMisses.WithLabelValues("redis").Inc()
	}
}

// Dictionary exposes the loaded reference table for the types surfaces.
func (s *Service) Dictionary() (*atomtype.Dictionary, error) {
	return s.registry.Dictionary()
}
