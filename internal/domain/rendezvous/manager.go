package rendezvous

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/navkit/navd/internal/infrastructure/logging"
	"github.com/navkit/navd/internal/infrastructure/monitoring"
	"github.com/navkit/navd/internal/shared/types"
)

var (
	// ErrSuperseded resolves a waiter whose slot was taken over by a later
	// WaitForResult call before it received a value.
	ErrSuperseded = errors.New("rendezvous: waiter superseded by a newer wait")

	// ErrCanceled resolves a waiter that was explicitly canceled, e.g. when
	// the stack is reset while the wait is pending.
	ErrCanceled = errors.New("rendezvous: waiter canceled")
)

// Navigator is the slice of the stack manager the rendezvous drives
type Navigator interface {
	Push(types.Page)
	Pop() bool
}

// outcome is delivered to a waiter exactly once
type outcome struct {
	value bool
	err   error
}

// slot holds the single pending waiter
type slot struct {
	id   string
	page types.Page
	ch   chan outcome
}

// Manager coordinates wait-for-result navigation over a single completion slot
type Manager struct {
	mu      sync.Mutex
	nav     Navigator
	pending *slot
	logger  *logging.Logger
	metrics *monitoring.Metrics

	resolved   uint64
	superseded uint64
	canceled   uint64
	unmatched  uint64
}

// NewManager creates a rendezvous manager driving the given navigator
func NewManager(nav Navigator) *Manager {
	return &Manager{
		nav:    nav,
		logger: logging.NewNop(),
	}
}

// WithLogger attaches a logger
func (m *Manager) WithLogger(logger *logging.Logger) *Manager {
	m.logger = logger
	return m
}

// WithMetrics attaches a metrics collector
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WaitForResult pushes page and suspends the calling goroutine until a
// ReturnWith call supplies the value, the context is done, or the wait is
// superseded or canceled. Only this goroutine suspends; the stack stays
// fully usable meanwhile.
func (m *Manager) WaitForResult(ctx context.Context, page types.Page) (bool, error) {
	s := &slot{
		id:   uuid.New().String(),
		page: page,
		ch:   make(chan outcome, 1),
	}

	m.mu.Lock()
	if prev := m.pending; prev != nil {
		m.superseded++
		m.logger.Warn("pending waiter superseded",
			zap.String("superseded_page", prev.page.Key()),
			zap.String("new_page", page.Key()),
		)
		if m.metrics != nil {
			m.metrics.RecordRendezvous(monitoring.OutcomeSuperseded)
		}
		prev.ch <- outcome{err: ErrSuperseded}
	}
	m.pending = s
	m.setPendingGauge(true)
	m.nav.Push(page)
	m.mu.Unlock()

	select {
	case o := <-s.ch:
		return o.value, o.err
	case <-ctx.Done():
		m.mu.Lock()
		if m.pending == s {
			m.pending = nil
			m.canceled++
			m.setPendingGauge(false)
			if m.metrics != nil {
				m.metrics.RecordRendezvous(monitoring.OutcomeCanceled)
			}
		}
		m.mu.Unlock()
		return false, ctx.Err()
	}
}

// ReturnWith pops the top page and resolves the pending waiter with value.
// It reports whether a waiter was resolved and whether the pop mutated the
// stack; the pop happens regardless, so an unmatched return still navigates
// back.
func (m *Manager) ReturnWith(value bool) (delivered, didPop bool) {
	m.mu.Lock()
	didPop = m.nav.Pop()
	s := m.pending
	m.pending = nil
	if s == nil {
		m.unmatched++
	} else {
		m.resolved++
	}
	m.setPendingGauge(false)
	m.mu.Unlock()

	if s == nil {
		m.logger.Warn("return with no pending waiter", zap.Bool("did_pop", didPop))
		if m.metrics != nil {
			m.metrics.RecordRendezvous(monitoring.OutcomeUnmatchedReturn)
		}
		return false, didPop
	}

	if m.metrics != nil {
		m.metrics.RecordRendezvous(monitoring.OutcomeResolved)
	}
	s.ch <- outcome{value: value}
	return true, didPop
}

// Cancel resolves the pending waiter with ErrCanceled, if any. Callers reset
// the stack only after the waiter has a defined outcome.
func (m *Manager) Cancel() bool {
	m.mu.Lock()
	s := m.pending
	m.pending = nil
	if s != nil {
		m.canceled++
	}
	m.setPendingGauge(false)
	m.mu.Unlock()

	if s == nil {
		return false
	}

	m.logger.Info("pending waiter canceled", zap.String("page", s.page.Key()))
	if m.metrics != nil {
		m.metrics.RecordRendezvous(monitoring.OutcomeCanceled)
	}
	s.ch <- outcome{err: ErrCanceled}
	return true
}

// Pending reports whether a waiter is currently suspended
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pending != nil
}

// Stats returns rendezvous statistics
func (m *Manager) Stats() types.RendezvousStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := types.RendezvousStats{
		Pending:          m.pending != nil,
		Resolved:         m.resolved,
		Superseded:       m.superseded,
		Canceled:         m.canceled,
		UnmatchedReturns: m.unmatched,
	}
	if m.pending != nil {
		stats.PendingKey = m.pending.page.Key()
	}
	return stats
}

// setPendingGauge updates the pending gauge. Callers hold m.mu.
func (m *Manager) setPendingGauge(pending bool) {
	if m.metrics != nil {
		m.metrics.SetRendezvousPending(pending)
	}
}
