package stack

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/navkit/navd/internal/infrastructure/logging"
	"github.com/navkit/navd/internal/infrastructure/monitoring"
	"github.com/navkit/navd/internal/shared/types"
)

// Observer receives stack snapshots. It is invoked synchronously under the
// manager's lock and must not call back into the Manager.
type Observer func(types.Snapshot)

// Manager owns the page stack and its subscribers
type Manager struct {
	mu      sync.Mutex
	pages   []types.Page
	seq     uint64
	subs    map[string]Observer
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a stack manager holding only the root page
func NewManager(root types.Page) *Manager {
	return &Manager{
		pages:  []types.Page{root},
		subs:   make(map[string]Observer),
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

// Push appends a page to the stack. The previous top stays on the stack but
// is no longer the visible page.
func (m *Manager) Push(page types.Page) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages = append(m.pages, page)
	m.mutated("push")
}

// Pop removes the top page and reports whether it did. Popping the sole
// remaining page is a no-op: the stack never empties and no snapshot is
// emitted.
func (m *Manager) Pop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pages) <= 1 {
		m.logger.Debug("pop ignored on root page", zap.String("top", m.pages[0].Key()))
		return false
	}

	m.pages = m.pages[:len(m.pages)-1]
	m.mutated("pop")
	return true
}

// Replace swaps the top page for the given one. On a single-page stack the
// root is kept and the page is appended instead, matching pop's guard; the
// stack grows to two pages in that case. One snapshot is emitted either way.
func (m *Manager) Replace(page types.Page) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pages) > 1 {
		m.pages = m.pages[:len(m.pages)-1]
	}
	m.pages = append(m.pages, page)
	m.mutated("replace")
}

// ReplaceAll discards the stack and makes page the new root
func (m *Manager) ReplaceAll(page types.Page) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages = []types.Page{page}
	m.mutated("replace_all")
}

// Snapshot returns a copy of the current stack
func (m *Manager) Snapshot() types.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snapshotLocked()
}

// Len returns the current stack depth
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.pages)
}

// CanPop reports whether a Pop would mutate the stack
func (m *Manager) CanPop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.pages) > 1
}

// Subscribe registers an observer and returns its subscription ID. The
// observer is invoked with the current snapshot before Subscribe returns,
// then once per mutation until Unsubscribe.
func (m *Manager) Subscribe(observer Observer) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.subs[id] = observer
	if m.metrics != nil {
		m.metrics.SetSubscribers(len(m.subs))
	}

	m.deliver(observer)
	return id
}

// Unsubscribe removes an observer
func (m *Manager) Unsubscribe(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.subs, id)
	if m.metrics != nil {
		m.metrics.SetSubscribers(len(m.subs))
	}
}

// Stats returns stack statistics
func (m *Manager) Stats() types.StackStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return types.StackStats{
		Depth:       len(m.pages),
		Top:         m.pages[len(m.pages)-1].Key(),
		Seq:         m.seq,
		Subscribers: len(m.subs),
	}
}

// mutated finalizes a mutation: bumps the sequence, records metrics, and
// fans the new snapshot out to every subscriber. Callers hold m.mu.
func (m *Manager) mutated(op string) {
	m.seq++
	m.logger.Debug("stack mutated",
		zap.String("op", op),
		zap.Uint64("seq", m.seq),
		zap.Int("depth", len(m.pages)),
		zap.String("top", m.pages[len(m.pages)-1].Key()),
	)
	if m.metrics != nil {
		m.metrics.RecordMutation(op, len(m.pages))
	}

	for _, observer := range m.subs {
		m.deliver(observer)
	}
}

func (m *Manager) deliver(observer Observer) {
	observer(m.snapshotLocked())
	if m.metrics != nil {
		m.metrics.RecordSnapshot()
	}
}

func (m *Manager) snapshotLocked() types.Snapshot {
	pages := make([]types.Page, len(m.pages))
	copy(pages, m.pages)
	return types.Snapshot{Seq: m.seq, Pages: pages}
}
