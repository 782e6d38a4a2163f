package registry

import (
	"github.com/navkit/navd/internal/domain/manifest"
	"github.com/navkit/navd/internal/shared/types"
)

// Seeder installs the built-in renderers, with titles overridden by an
// optional manifest.
type Seeder struct {
	registry *Manager
	manifest *manifest.Manifest
}

// NewSeeder creates a seeder for the given registry. The manifest may be nil.
func NewSeeder(registry *Manager, m *manifest.Manifest) *Seeder {
	return &Seeder{registry: registry, manifest: m}
}

// Seed registers a renderer for every known page kind
func (s *Seeder) Seed() error {
	defaults := map[types.Kind]RenderFunc{
		types.KindHome: func(types.Page) types.View {
			return types.View{Title: "Home"}
		},
		types.KindLogin: func(types.Page) types.View {
			return types.View{Title: "Login"}
		},
		types.KindProfile: func(p types.Page) types.View {
			return types.View{
				Title: "Profile " + p.UserID,
				Props: map[string]interface{}{"user_id": p.UserID},
			}
		},
		types.KindDetail: func(p types.Page) types.View {
			return types.View{
				Title: p.ItemName,
				Props: map[string]interface{}{
					"item_id":   p.ItemID,
					"item_name": p.ItemName,
				},
			}
		},
	}

	for kind, fn := range defaults {
		if err := s.registry.Register(kind, s.withManifestTitle(fn)); err != nil {
			return err
		}
	}
	return nil
}

// withManifestTitle wraps a renderer so manifest titles take precedence
func (s *Seeder) withManifestTitle(fn RenderFunc) RenderFunc {
	if s.manifest == nil {
		return fn
	}
	return func(p types.Page) types.View {
		view := fn(p)
		if title, ok := s.manifest.Title(p); ok {
			view.Title = title
		}
		return view
	}
}
