package registry

import (
	"fmt"
	"sync"

	"github.com/navkit/navd/internal/shared/types"
)

// RenderFunc produces the view data for a page
type RenderFunc func(types.Page) types.View

// Manager dispatches page kinds to registered renderers
type Manager struct {
	mu        sync.RWMutex
	renderers map[types.Kind]RenderFunc
}

// NewManager creates an empty renderer registry
func NewManager() *Manager {
	return &Manager{
		renderers: make(map[types.Kind]RenderFunc),
	}
}

// Register installs the renderer for a page kind, replacing any previous one
func (m *Manager) Register(kind types.Kind, fn RenderFunc) error {
	if !types.ValidKind(kind) {
		return fmt.Errorf("cannot register renderer for unknown kind %q", kind)
	}
	if fn == nil {
		return fmt.Errorf("renderer for %q is nil", kind)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.renderers[kind] = fn
	return nil
}

// Render produces the view for a single page
func (m *Manager) Render(page types.Page) (types.View, error) {
	m.mu.RLock()
	fn, ok := m.renderers[page.Kind]
	m.mu.RUnlock()

	if !ok {
		return types.View{}, fmt.Errorf("no renderer registered for kind %q", page.Kind)
	}

	view := fn(page)
	view.Kind = page.Kind
	view.Key = page.Key()
	return view, nil
}

// RenderStack renders every page of a snapshot in order. Only the last view
// is interactive.
func (m *Manager) RenderStack(snapshot types.Snapshot) ([]types.View, error) {
	views := make([]types.View, len(snapshot.Pages))
	for i, page := range snapshot.Pages {
		view, err := m.Render(page)
		if err != nil {
			return nil, err
		}
		view.Interactive = i == len(snapshot.Pages)-1
		views[i] = view
	}
	return views, nil
}

// Kinds returns the kinds with a registered renderer
func (m *Manager) Kinds() []types.Kind {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kinds := make([]types.Kind, 0, len(m.renderers))
	for _, k := range types.Kinds() {
		if _, ok := m.renderers[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
