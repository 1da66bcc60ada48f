package wikistore

import (
	"errors"
	"log/slog"

	"github.com/jpalmerr/wikistore/notify"
)

var (
	// ErrNilPolicy is returned when a nil scoring policy is supplied.
	ErrNilPolicy = errors.New("wikistore: policy is required")

	// ErrMissingKey is returned by [Store.Set] for a record with an empty key.
	ErrMissingKey = errors.New("wikistore: record key is required")

	// ErrScanInProgress is returned by [Store.Set] when called from inside
	// [Store.Each], [Store.BestByScore] or [Store.Best] on the same store.
	ErrScanInProgress = errors.New("wikistore: set called during scan")

	// ErrWriteInProgress is returned by [Store.Set] when called from a
	// before-set subscriber of the same store.
	ErrWriteInProgress = errors.New("wikistore: set called during set")

	// ErrReadInProgress is returned by [Store.Set] when called from a read
	// subscriber of the same store.
	ErrReadInProgress = errors.New("wikistore: set called during get")
)

// Keyed is the constraint on stored records: each carries a unique,
// caller-assigned string key.
type Keyed interface {
	Key() string
}

// BeforeSetEvent is published by [Store.Set] before the record is committed.
//
// Found reports whether Existing holds a previously stored record.
type BeforeSetEvent[R Keyed] struct {
	Existing R
	Found    bool
	New      R
}

// ReadEvent is published by [Store.Get] on every read, hit or miss.
type ReadEvent struct {
	ID string
}

// Store is an in-memory keyed record store with before-set and read
// notifications and policy-driven best-of queries.
//
// Records are kept in insertion order; setting an existing key replaces the
// record in place. A Store is not safe for concurrent use.
//
// Calling Set from inside a scan (Each, BestByScore, Best), a before-set
// subscriber or a read subscriber of the same store fails with
// [ErrScanInProgress], [ErrWriteInProgress] or [ErrReadInProgress], so a Get
// always answers from the state it started with. Reads are allowed anywhere.
type Store[R Keyed] struct {
	records map[string]R
	order   []string
	policy  Policy[R]
	logger  *slog.Logger

	beforeSet notify.Channel[BeforeSetEvent[R]]
	read      notify.Channel[ReadEvent]

	scanning int
	reading  int
	writing  bool
}

// New creates an empty [Store] scoring [Store.Best] queries with policy.
//
// Returns [ErrNilPolicy] if policy is nil, or the error of any failing option.
//
// Example:
//
//	s, err := wikistore.New[Creature](wikistore.ScoreFunc[Creature](func(c Creature) float64 {
//	    return float64(c.Attack)
//	}))
func New[R Keyed](policy Policy[R], opts ...Option) (*Store[R], error) {
	if policy == nil {
		return nil, ErrNilPolicy
	}

	cfg := &storeConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store[R]{
		records: make(map[string]R, cfg.capacity),
		order:   make([]string, 0, cfg.capacity),
		policy:  policy,
		logger:  logger,
	}, nil
}

// Set stores record under record.Key(), replacing any previous record.
//
// A [BeforeSetEvent] is published before the mapping changes, so subscribers
// reading the store see the old state. If a subscriber panics the record is
// not stored.
func (s *Store[R]) Set(record R) error {
	key := record.Key()
	if key == "" {
		return ErrMissingKey
	}
	if s.scanning > 0 {
		s.logger.Debug("set rejected", "key", key, "reason", "scan in progress")
		return ErrScanInProgress
	}
	if s.writing {
		s.logger.Debug("set rejected", "key", key, "reason", "set in progress")
		return ErrWriteInProgress
	}
	if s.reading > 0 {
		s.logger.Debug("set rejected", "key", key, "reason", "get in progress")
		return ErrReadInProgress
	}

	existing, found := s.records[key]

	s.writing = true
	func() {
		defer func() { s.writing = false }()
		s.beforeSet.Publish(BeforeSetEvent[R]{Existing: existing, Found: found, New: record})
	}()

	if !found {
		s.order = append(s.order, key)
	}
	s.records[key] = record
	return nil
}

// Get publishes a [ReadEvent] for key, then returns the record stored under
// it. The boolean is false if no such record exists.
func (s *Store[R]) Get(key string) (R, bool) {
	s.reading++
	func() {
		defer func() { s.reading-- }()
		s.read.Publish(ReadEvent{ID: key})
	}()

	record, ok := s.records[key]
	return record, ok
}

// Contains reports whether a record is stored under key.
// Unlike [Store.Get] it publishes nothing.
func (s *Store[R]) Contains(key string) bool {
	_, ok := s.records[key]
	return ok
}

// Len returns the number of stored records.
func (s *Store[R]) Len() int {
	return len(s.records)
}

// Keys returns the stored keys in insertion order.
//
// The returned slice is a copy; modifications do not affect the store.
func (s *Store[R]) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// Each calls visit for every record in insertion order. No events are
// published.
func (s *Store[R]) Each(visit func(R)) {
	s.scanning++
	defer func() { s.scanning-- }()

	for _, key := range s.order {
		visit(s.records[key])
	}
}

// BestByScore returns every record sharing the highest score under score,
// in insertion order. An empty store yields an empty slice.
//
// Records scoring NaN never match.
func (s *Store[R]) BestByScore(score ScoreFunc[R]) []R {
	best := MinScore
	result := []R{}

	s.Each(func(record R) {
		v := score(record)
		switch {
		case v > best:
			best = v
			result = append(result[:0], record)
		case v == best:
			result = append(result, record)
		}
	})

	return result
}

// Best is [Store.BestByScore] using the store's current policy.
func (s *Store[R]) Best() []R {
	return s.BestByScore(s.policy.Evaluate)
}

// SetBestStrategy replaces the policy used by [Store.Best].
//
// Returns [ErrNilPolicy] if policy is nil; the current policy is kept.
func (s *Store[R]) SetBestStrategy(policy Policy[R]) error {
	if policy == nil {
		return ErrNilPolicy
	}
	s.policy = policy
	s.logger.Debug("best strategy replaced", "records", len(s.records))
	return nil
}

// Policy returns the policy currently used by [Store.Best].
func (s *Store[R]) Policy() Policy[R] {
	return s.policy
}

// OnBeforeSet subscribes observer to before-set events.
func (s *Store[R]) OnBeforeSet(observer func(BeforeSetEvent[R])) notify.Unsubscribe {
	return s.beforeSet.Subscribe(observer)
}

// OnRead subscribes observer to read events.
//
// An observer calling Get on the same store recurses; use [Store.Contains].
// Set from an observer returns [ErrReadInProgress].
func (s *Store[R]) OnRead(observer func(ReadEvent)) notify.Unsubscribe {
	return s.read.Subscribe(observer)
}
