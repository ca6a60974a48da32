package scene

import (
	"maps"
	"slices"
	"sync"
)

// IconRegistry resolves Media.Name references to inline vector markup.
// Registries are caller-owned values; there is no process-wide default.
// A nil *IconRegistry resolves nothing.
type IconRegistry struct {
	mu    sync.RWMutex
	icons map[string]string
}

// NewIconRegistry returns a registry seeded with the given icons.
func NewIconRegistry(icons map[string]string) *IconRegistry {
	r := &IconRegistry{icons: make(map[string]string, len(icons))}
	maps.Copy(r.icons, icons)
	return r
}

// BuiltinIcons returns a fresh registry holding the stock icon set.
func BuiltinIcons() *IconRegistry { return NewIconRegistry(builtinIcons) }

// Register adds or replaces an icon.
func (r *IconRegistry) Register(name, markup string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.icons == nil {
		r.icons = make(map[string]string)
	}
	r.icons[name] = markup
}

// Lookup returns the markup registered under name.
func (r *IconRegistry) Lookup(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.icons[name]
	return m, ok
}

// Names returns the registered icon names in sorted order.
func (r *IconRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.icons))
}

// Stock icons are drawn in a 24x24 box.
var builtinIcons = map[string]string{
	"check":    `<svg viewBox="0 0 24 24"><path d="M4 12 L10 18 L20 6" fill="none" stroke="currentColor" stroke-width="2"/></svg>`,
	"cross":    `<svg viewBox="0 0 24 24"><path d="M5 5 L19 19 M19 5 L5 19" fill="none" stroke="currentColor" stroke-width="2"/></svg>`,
	"database": `<svg viewBox="0 0 24 24"><ellipse cx="12" cy="5" rx="8" ry="3" fill="none" stroke="currentColor"/><path d="M4 5 L4 19 Q12 24 20 19 L20 5" fill="none" stroke="currentColor"/></svg>`,
	"server":   `<svg viewBox="0 0 24 24"><rect x="3" y="3" width="18" height="8" rx="1" fill="none" stroke="currentColor"/><rect x="3" y="13" width="18" height="8" rx="1" fill="none" stroke="currentColor"/></svg>`,
	"user":     `<svg viewBox="0 0 24 24"><circle cx="12" cy="8" r="4" fill="none" stroke="currentColor"/><path d="M4 21 Q12 12 20 21" fill="none" stroke="currentColor"/></svg>`,
}
