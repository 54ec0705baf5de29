package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/nodaire/dashhub/backend"
	"github.com/nodaire/dashhub/events"
	"github.com/nodaire/dashhub/logger"
)

const StateUpdatedEvent = "state_updated"

// Manager is the single owner of the store. All mutation goes through
// the copy-on-write UpdateSlice, applied under the manager's lock, so a
// Snapshot never observes a partially-updated slice. After every swap a
// state_updated event is published for live-update consumers.
//
// Loads are fire-and-forget: errors land in the slice, never at the
// caller. There is no cancellation of in-flight fetches and no guard
// against a forced reload racing an in-flight fetch for the same slice;
// the slice ends in whichever fetch resolves last.
type Manager struct {
	client         backend.Client
	eventPublisher events.EventPublisher
	ctx            context.Context

	storeMtx sync.Mutex
	store    Store
}

func NewManager(ctx context.Context, client backend.Client, eventPublisher events.EventPublisher) *Manager {
	return &Manager{
		client:         client,
		eventPublisher: eventPublisher,
		ctx:            ctx,
		store:          NewStore(),
	}
}

// Snapshot returns the current store. The returned value is detached
// from future updates and safe to read without coordination.
func (m *Manager) Snapshot() Store {
	m.storeMtx.Lock()
	defer m.storeMtx.Unlock()
	return m.store
}

func (m *Manager) LoadConfig(force bool) {
	m.load(SliceConfig, func(ctx context.Context) (any, error) {
		res, err := m.client.FetchConfig(ctx)
		if err != nil {
			return nil, err
		}
		return res, nil
	}, force)
}

func (m *Manager) LoadStatus(force bool) {
	m.load(SliceStatus, func(ctx context.Context) (any, error) {
		res, err := m.client.FetchStatus(ctx)
		if err != nil {
			return nil, err
		}
		return res, nil
	}, force)
}

func (m *Manager) LoadGraph(force bool) {
	m.load(SliceGraph, func(ctx context.Context) (any, error) {
		res, err := m.client.FetchGraph(ctx)
		if err != nil {
			return nil, err
		}
		return res, nil
	}, force)
}

func (m *Manager) LoadLogs(force bool) {
	m.load(SliceLogs, func(ctx context.Context) (any, error) {
		res, err := m.client.FetchLogs(ctx)
		if err != nil {
			return nil, err
		}
		return res, nil
	}, force)
}

// Load dispatches to the action for the named slice.
func (m *Manager) Load(name SliceName, force bool) error {
	switch name {
	case SliceConfig:
		m.LoadConfig(force)
	case SliceStatus:
		m.LoadStatus(force)
	case SliceGraph:
		m.LoadGraph(force)
	case SliceLogs:
		m.LoadLogs(force)
	default:
		return fmt.Errorf("unknown store slice: %q", name)
	}
	return nil
}

// load applies the coalescing policy: with force unset, cached data or
// an in-flight fetch makes the call a no-op. The check and the
// loading=true transition happen under one lock acquisition so two
// quick unforced calls trigger exactly one fetch.
func (m *Manager) load(name SliceName, fetch func(ctx context.Context) (any, error), force bool) {
	m.storeMtx.Lock()
	slice := m.store.Slice(name)
	if !force && (slice.Data != nil || slice.Loading) {
		m.storeMtx.Unlock()
		logger.Logger.Debug().
			Str("slice", string(name)).
			Bool("loading", slice.Loading).
			Msg("Load coalesced, slice cached or in flight")
		return
	}
	m.applyLocked(name, SetLoading(true))
	m.storeMtx.Unlock()

	go m.fetchAndStore(name, fetch)
}

func (m *Manager) fetchAndStore(name SliceName, fetch func(ctx context.Context) (any, error)) {
	// loading clears exactly once per fetch, success or failure
	defer m.update(name, SetLoading(false))

	// guard against the fetch orchestration itself blowing up; the
	// panic is recorded the same way as an ordinary fetch error
	defer func() {
		if r := recover(); r != nil {
			logger.Logger.Error().
				Interface("panic", r).
				Str("slice", string(name)).
				Msg("Fetch panicked")
			m.update(name, SetErr(fmt.Errorf("fetch panicked: %v", r)))
		}
	}()

	data, err := fetch(m.ctx)
	if err != nil {
		logger.Logger.Error().Err(err).
			Str("slice", string(name)).
			Msg("Failed to fetch slice data")
		// stale data stays in place next to the error
		m.update(name, SetErr(err))
		return
	}

	m.update(name, SetData(data), SetErr(nil))
}

func (m *Manager) update(name SliceName, updates ...SliceUpdate) {
	m.storeMtx.Lock()
	defer m.storeMtx.Unlock()
	m.applyLocked(name, updates...)
}

func (m *Manager) applyLocked(name SliceName, updates ...SliceUpdate) {
	m.store = UpdateSlice(m.store, name, updates...)

	slice := m.store.Slice(name)
	var errMessage string
	if slice.Err != nil {
		errMessage = slice.Err.Error()
	}
	m.eventPublisher.Publish(&events.Event{
		Event: StateUpdatedEvent,
		Properties: map[string]interface{}{
			"slice":    string(name),
			"loading":  slice.Loading,
			"has_data": slice.Data != nil,
			"error":    errMessage,
		},
	})
}
