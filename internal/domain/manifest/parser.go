package manifest

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/navkit/navd/internal/shared/types"
)

// PageDef declares how one page kind presents itself
type PageDef struct {
	Kind  types.Kind `yaml:"kind"`
	Title string     `yaml:"title"`
}

// Manifest is the parsed page manifest
type Manifest struct {
	Root  types.Kind `yaml:"root"`
	Pages []PageDef  `yaml:"pages"`
}

// Parse decodes and validates manifest YAML
func Parse(content []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if m.Root == "" {
		m.Root = types.KindHome
	}
	if m.Root != types.KindHome && m.Root != types.KindLogin {
		// Roots must be constructible without payload
		return nil, fmt.Errorf("manifest root %q must be home or login", m.Root)
	}

	seen := make(map[types.Kind]bool)
	for _, def := range m.Pages {
		if !types.ValidKind(def.Kind) {
			return nil, fmt.Errorf("manifest declares unknown page kind %q", def.Kind)
		}
		if seen[def.Kind] {
			return nil, fmt.Errorf("manifest declares page kind %q twice", def.Kind)
		}
		if def.Title == "" {
			return nil, fmt.Errorf("manifest entry for %q has no title", def.Kind)
		}
		seen[def.Kind] = true
	}

	return &m, nil
}

// ParseFile reads and parses a manifest from disk
func ParseFile(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(content)
}

// Title resolves the configured title for a page, substituting payload
// placeholders. It reports false when the manifest has no entry for the
// page's kind.
func (m *Manifest) Title(page types.Page) (string, bool) {
	for _, def := range m.Pages {
		if def.Kind == page.Kind {
			return expand(def.Title, page), true
		}
	}
	return "", false
}

// RootPage returns the configured root as a page value
func (m *Manifest) RootPage() types.Page {
	if m.Root == types.KindLogin {
		return types.Login()
	}
	return types.Home()
}

func expand(template string, page types.Page) string {
	r := strings.NewReplacer(
		"{user_id}", page.UserID,
		"{item_id}", strconv.Itoa(page.ItemID),
		"{item_name}", page.ItemName,
	)
	return r.Replace(template)
}
