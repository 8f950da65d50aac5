// Package registry provides the identity registry for a configuration pass.
//
// The registry maps canonical module locations to module identities. It is
// append-only and idempotent: re-declaring a location returns the existing
// identity instead of creating a duplicate. It is an explicit object handed
// to every assembly call rather than process-wide state, so independent
// configuration passes never observe each other.
package registry

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vk/modforge/internal/model"
)

// CanonicalID derives a module identity from its workspace-relative
// location. It is a pure function: two declarations at the same location
// always resolve to the same identity.
func CanonicalID(location string) model.ModuleID {
	clean := path.Clean(filepath.ToSlash(location))
	clean = strings.TrimPrefix(clean, "./")
	if clean == "." || clean == "" {
		return model.ModuleID("root")
	}
	return model.ModuleID(strings.ReplaceAll(clean, "/", "_"))
}

// Registry is the append-only location-to-identity map for one pass.
type Registry struct {
	mu    sync.Mutex
	ids   map[string]model.ModuleID
	byID  map[model.ModuleID]string
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		ids:  make(map[string]model.ModuleID),
		byID: make(map[model.ModuleID]string),
	}
}

// Declare registers a location and returns its identity. The second return
// value reports whether the entry was newly created; re-declaring the same
// location returns the existing identity with created=false. The check and
// insert are atomic within the pass.
//
// The separator flattening in CanonicalID can derive the same identity from
// two distinct locations ("a/b_c" and "a_b/c"). Silently merging them would
// assemble one module for two directories, so that is an error.
func (r *Registry) Declare(location string) (model.ModuleID, bool, error) {
	key := canonicalKey(location)

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.ids[key]; ok {
		return id, false, nil
	}
	id := CanonicalID(location)
	if prior, ok := r.byID[id]; ok {
		return "", false, fmt.Errorf("locations %s and %s alias the same module identity %s", prior, key, id)
	}
	r.ids[key] = id
	r.byID[id] = key
	r.order = append(r.order, key)
	return id, true, nil
}

// Lookup returns the identity for a previously declared location.
func (r *Registry) Lookup(location string) (model.ModuleID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.ids[canonicalKey(location)]
	return id, ok
}

// Locations returns every declared canonical location in declaration order.
func (r *Registry) Locations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func canonicalKey(location string) string {
	clean := path.Clean(filepath.ToSlash(location))
	return strings.TrimPrefix(clean, "./")
}
