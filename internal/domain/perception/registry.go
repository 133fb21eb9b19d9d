package perception

import (
	"sync"

	"github.com/turtacn/AtomSense/internal/domain/atomtype"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// Registry hands out shared matchers, at most one per mode.  Matchers are
// stateless, so sharing them across goroutines is safe and avoids reloading
// the reference table for every caller.
type Registry struct {
	mu       sync.Mutex
	log      logging.Logger
	dict     *atomtype.Dictionary
	matchers map[Mode]*Matcher
}

// NewRegistry builds a registry over the given dictionary.  A nil dictionary
// defers to the embedded reference table, loaded on first use.
func NewRegistry(dict *atomtype.Dictionary, log logging.Logger) *Registry {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Registry{
		log:      log,
		dict:     dict,
		matchers: make(map[Mode]*Matcher),
	}
}

// Matcher returns the shared matcher for the mode, creating it on first
// request.
func (r *Registry) Matcher(mode Mode) (*Matcher, error) {
	if mode != ModePermissive && mode != ModeExplicitHydrogens {
		return nil, errors.InvalidParam("unknown perception mode").
			WithDetail(mode.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.matchers[mode]; ok {
		return m, nil
	}
	if r.dict == nil {
		dict, err := atomtype.Load()
		if err != nil {
			return nil, err
		}
		r.dict = dict
	}
	m := New(r.dict, mode, r.log)
	r.matchers[mode] = m
	return m, nil
}

// Dictionary returns the registry's reference table, loading the embedded
// one when none was supplied.
func (r *Registry) Dictionary() (*atomtype.Dictionary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dict == nil {
		dict, err := atomtype.Load()
		if err != nil {
			return nil, err
		}
		r.dict = dict
	}
	return r.dict, nil
}

var std = NewRegistry(nil, nil)

// Shared returns the process-wide matcher for the mode, backed by the
// embedded reference table.
func Shared(mode Mode) (*Matcher, error) {
	return std.Matcher(mode)
}
