package core

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"supplycore/internal/kv"
	"supplycore/pkg/domain"
)

// state holds every entity collection as an ordered slice. Order is
// insertion order; callers may prepend on create for newest-first display.
// The audit log is always newest-first.
type state struct {
	products  []Product
	customers []Customer
	shipments []Shipment
	factories []Factory
	jobs      []Job
	samples   []SampleRequest
	users     []User
	auditLog  []AuditLogEntry
}

func (s state) clone() state {
	return state{
		products:  cloneSlice(s.products, cloneProduct),
		customers: cloneSlice(s.customers, cloneCustomer),
		shipments: cloneSlice(s.shipments, cloneShipment),
		factories: cloneSlice(s.factories, cloneFactory),
		jobs:      cloneSlice(s.jobs, cloneJob),
		samples:   cloneSlice(s.samples, cloneSample),
		users:     cloneSlice(s.users, cloneUser),
		auditLog:  cloneSlice(s.auditLog, func(e AuditLogEntry) AuditLogEntry { return e }),
	}
}

func cloneSlice[T any](in []T, cloneItem func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = cloneItem(v)
	}
	return out
}

func cloneProduct(p Product) Product {
	cp := p
	if p.SKUs != nil {
		cp.SKUs = make([]domain.SKUVariant, len(p.SKUs))
		for i, sku := range p.SKUs {
			c := sku
			if sku.RegionalPrices != nil {
				c.RegionalPrices = make(map[string]float64, len(sku.RegionalPrices))
				for k, v := range sku.RegionalPrices {
					c.RegionalPrices[k] = v
				}
			}
			cp.SKUs[i] = c
		}
	}
	cp.Competitors = append([]domain.Competitor(nil), p.Competitors...)
	return cp
}

func cloneCustomer(c Customer) Customer { return c }
func cloneShipment(s Shipment) Shipment { return s }
func cloneFactory(f Factory) Factory {
	cp := f
	cp.Capabilities = append([]string(nil), f.Capabilities...)
	cp.Certifications = append([]string(nil), f.Certifications...)
	return cp
}
func cloneJob(j Job) Job                    { return j }
func cloneSample(s SampleRequest) SampleRequest { return s }
func cloneUser(u User) User                 { return u }

// Store is the in-memory entity store. All mutations run through Mutate so
// they serialize, evaluate rules, and persist as one step; reads see
// committed state only.
type Store struct {
	mu      sync.RWMutex
	state   state
	engine  *RulesEngine
	medium  kv.Store
	logger  *zap.Logger
	metrics MetricsRecorder
	nowFn   func() time.Time
}

// StoreOption customises store construction.
type StoreOption func(*Store)

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics attaches a metrics recorder. Defaults to a no-op recorder.
func WithMetrics(m MetricsRecorder) StoreOption {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// NewStore constructs a store over the given durable medium and hydrates
// every collection from it, substituting the seed dataset for any key that
// is absent or fails to parse. A nil engine installs the default rules.
func NewStore(ctx context.Context, medium kv.Store, engine *RulesEngine, opts ...StoreOption) *Store {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	s := &Store{
		engine:  engine,
		medium:  medium,
		logger:  zap.NewNop(),
		metrics: NopMetrics{},
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.loadState(ctx)
	return s
}

func (s *Store) loadState(ctx context.Context) state {
	seed := SeedState()
	st := state{}
	st.products = loadCollection(ctx, s, KeyProducts, seed.products)
	st.customers = loadCollection(ctx, s, KeyCustomers, seed.customers)
	st.shipments = loadCollection(ctx, s, KeyShipments, seed.shipments)
	st.factories = loadCollection(ctx, s, KeyFactories, seed.factories)
	st.jobs = loadCollection(ctx, s, KeyJobs, seed.jobs)
	st.samples = loadCollection(ctx, s, KeySamples, seed.samples)
	st.users = loadCollection(ctx, s, KeyUsers, seed.users)
	st.auditLog = loadCollection(ctx, s, KeyAuditLogs, seed.auditLog)

	// Persisted shapes may predate the closed enums; normalize on the way in.
	for i := range st.factories {
		st.factories[i].Status = st.factories[i].Status.Normalize()
	}
	for i := range st.jobs {
		st.jobs[i].Priority = st.jobs[i].Priority.Normalize()
	}
	for i := range st.users {
		st.users[i].Role = st.users[i].Role.Normalize()
	}
	return st
}

// loadCollection hydrates one collection, warning when the stored payload is
// absent or unreadable and the seed fallback is used instead.
func loadCollection[T any](ctx context.Context, s *Store, key string, fallback []T) []T {
	v, ok := kv.LoadErr(ctx, s.medium, key, fallback)
	if !ok {
		s.logger.Warn("collection missing or unreadable, seeded", zap.String("key", key))
	}
	return v
}

// Reload discards in-memory state and hydrates from the medium again. Used
// after a backup import overwrites collection keys.
func (s *Store) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.loadState(ctx)
}

// Now returns the store's current time.
func (s *Store) Now() time.Time { return s.nowFn() }

// Medium exposes the durable medium for collaborators (backup, session).
func (s *Store) Medium() kv.Store { return s.medium }

// Mutation is one atomic in-memory mutation set applied to cloned state.
type Mutation struct {
	store   *Store
	state   state
	changes []Change
	touched map[string]struct{}
	now     time.Time
}

func (m *Mutation) touch(key string) {
	if m.touched == nil {
		m.touched = make(map[string]struct{})
	}
	m.touched[key] = struct{}{}
}

// recordChange appends a change record and marks the collection it lives in
// for persistence.
func (m *Mutation) recordChange(c Change) {
	m.changes = append(m.changes, c)
	if key := keyForEntity(c.Entity); key != "" {
		m.touch(key)
	}
}

// Changes returns the mutation's change records, for rules and callers.
func (m *Mutation) Changes() []Change { return m.changes }

// Now is the single timestamp shared by everything in this mutation.
func (m *Mutation) Now() time.Time { return m.now }

// Mutate executes fn against a clone of the store state. If fn succeeds and
// no blocking rule fires, the clone is committed and every touched
// collection is written to the durable medium best-effort: a write failure
// is logged and counted, never surfaced, leaving in-memory state
// authoritative for the rest of the session.
func (s *Store) Mutate(ctx context.Context, fn func(m *Mutation) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &Mutation{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(m); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := viewOf(&m.state)
		res, err := s.engine.Evaluate(ctx, view, m.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, RuleViolationError{Result: res}
		}
		for _, w := range res.Warnings() {
			s.logger.Warn("rule warning",
				zap.String("rule", w.Rule),
				zap.String("entity", string(w.Entity)),
				zap.String("entity_id", w.EntityID),
				zap.String("message", w.Message),
			)
		}
	}

	s.state = m.state
	for _, ch := range m.changes {
		s.metrics.MutationApplied(ch.Entity, ch.Action)
	}
	s.persistLocked(ctx, m.touched)
	return result, nil
}

// persistLocked writes each touched collection under its key. Best-effort.
func (s *Store) persistLocked(ctx context.Context, touched map[string]struct{}) {
	for key := range touched {
		var err error
		switch key {
		case KeyProducts:
			err = kv.Save(ctx, s.medium, key, s.state.products)
		case KeyCustomers:
			err = kv.Save(ctx, s.medium, key, s.state.customers)
		case KeyShipments:
			err = kv.Save(ctx, s.medium, key, s.state.shipments)
		case KeyFactories:
			err = kv.Save(ctx, s.medium, key, s.state.factories)
		case KeyJobs:
			err = kv.Save(ctx, s.medium, key, s.state.jobs)
		case KeySamples:
			err = kv.Save(ctx, s.medium, key, s.state.samples)
		case KeyUsers:
			err = kv.Save(ctx, s.medium, key, s.state.users)
		case KeyAuditLogs:
			err = kv.Save(ctx, s.medium, key, s.state.auditLog)
		}
		if err != nil {
			s.metrics.PersistFailure(key)
			s.logger.Warn("persist failed, in-memory state remains authoritative",
				zap.String("key", key), zap.Error(err))
		}
	}
}

// View executes fn against a read-only snapshot of committed state.
func (s *Store) View(fn func(v domain.RuleView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.state.clone()
	return fn(viewOf(&snapshot))
}

// ---- generic ordered-collection helpers ----

// upsertOrdered inserts item when its id is absent (appending, or prepending
// when prepend is set) and otherwise replaces the element in place,
// preserving the original position.
func upsertOrdered[T any](list []T, idOf func(T) string, item T, prepend bool) []T {
	id := idOf(item)
	for i := range list {
		if idOf(list[i]) == id {
			list[i] = item
			return list
		}
	}
	if prepend {
		return append([]T{item}, list...)
	}
	return append(list, item)
}

func removeOrdered[T any](list []T, idOf func(T) string, id string) ([]T, T, bool) {
	var zero T
	for i := range list {
		if idOf(list[i]) == id {
			removed := list[i]
			return append(list[:i:i], list[i+1:]...), removed, true
		}
	}
	return list, zero, false
}

func findOrdered[T any](list []T, idOf func(T) string, id string) (T, bool) {
	var zero T
	for i := range list {
		if idOf(list[i]) == id {
			return list[i], true
		}
	}
	return zero, false
}

func productID(p Product) string        { return p.ID }
func customerID(c Customer) string      { return c.ID }
func shipmentID(s Shipment) string      { return s.ID }
func factoryID(f Factory) string        { return f.ID }
func jobID(j Job) string                { return j.ID }
func sampleID(s SampleRequest) string   { return s.ID }
func userID(u User) string              { return u.ID }
