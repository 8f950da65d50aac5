package model

// ModuleID is the deterministic identity of a module, derived from its
// canonical workspace location. See registry.CanonicalID.
type ModuleID string

// Module is the unit of compilation and assembly: one compiled library or
// executable together with its sources, generated artifacts, and dependency
// set. A Module is created once per build-unit declaration, mutated
// incrementally while descriptors are classified and dependencies
// discovered, and frozen by Finalize before it is handed to the downstream
// build tool.
type Module struct {
	// ID is the module's deterministic identity.
	ID ModuleID
	// Name is the human-readable name from the declaring manifest.
	Name string
	// Location is the module's workspace-relative directory.
	Location string
	// Kind selects library or executable output.
	Kind Kind
	// Config is the build-configuration tag the module was assembled under.
	Config BuildConfig
	// ExcludeFromInstall marks the module as excluded from default install.
	ExcludeFromInstall bool
	// Defines is the compile-definition set broadcast to all of the
	// module's sources.
	Defines []string

	sources    []string
	artifacts  []GeneratedArtifact
	edges      []DependencyEdge
	edgeSeen   map[string]int
	configDeps []string
	depSeen    map[string]struct{}

	placeholder string
	finalized   bool
}

// NewModule creates a module in its mutable, pre-assembly state.
func NewModule(id ModuleID, name, location string, kind Kind, config BuildConfig) *Module {
	return &Module{
		ID:       id,
		Name:     name,
		Location: location,
		Kind:     kind,
		Config:   config,
		edgeSeen: make(map[string]int),
		depSeen:  make(map[string]struct{}),
	}
}

// AddSource appends a literal source path. Order is preserved.
func (m *Module) AddSource(path string) {
	m.mustBeMutable()
	m.sources = append(m.sources, path)
}

// AddArtifact appends a generated header/source pair. Order is preserved.
func (m *Module) AddArtifact(a GeneratedArtifact) {
	m.mustBeMutable()
	m.artifacts = append(m.artifacts, a)
}

// AddEdge merges a dependency edge into the module's dependency set.
// Duplicate targets are merged keeping the first occurrence's position; the
// return value reports whether the edge was newly inserted. Self-edges are
// ignored, so a descriptor referencing its own module never produces a
// cycle of length one.
func (m *Module) AddEdge(e DependencyEdge) bool {
	m.mustBeMutable()
	if e.Kind == ModuleDependency && e.Target == m.ID {
		return false
	}
	if _, ok := m.edgeSeen[e.key()]; ok {
		return false
	}
	m.edgeSeen[e.key()] = len(m.edges)
	m.edges = append(m.edges, e)
	return true
}

// AddConfigDep records a configuration-time staleness dependency: a file
// whose change must invalidate and re-run build graph construction itself,
// not just recompilation. Duplicates are dropped.
func (m *Module) AddConfigDep(path string) {
	m.mustBeMutable()
	if _, ok := m.depSeen[path]; ok {
		return
	}
	m.depSeen[path] = struct{}{}
	m.configDeps = append(m.configDeps, path)
}

// SetPlaceholder records the placeholder source path used when a library
// module ends up with no compiled sources at all. Build tools reject
// zero-source library targets, so the placeholder stands in until real
// sources exist.
func (m *Module) SetPlaceholder(path string) {
	m.mustBeMutable()
	m.placeholder = path
}

// Finalize freezes the module. Any mutation after Finalize is a programmer
// error and panics.
func (m *Module) Finalize() {
	m.finalized = true
}

// CompiledSources returns the final ordered source list handed to the
// build tool: generated pairs first (header then source, in descriptor
// order), then literal sources. If the module is a library with nothing to
// compile, the list is exactly the placeholder; otherwise the placeholder
// never appears.
func (m *Module) CompiledSources() []string {
	var out []string
	for _, a := range m.artifacts {
		out = append(out, a.Header, a.Source)
	}
	out = append(out, m.sources...)
	if len(out) == 0 && m.Kind == Library && m.placeholder != "" {
		return []string{m.placeholder}
	}
	return out
}

// Artifacts returns the module's generated pairs in descriptor order.
func (m *Module) Artifacts() []GeneratedArtifact {
	return m.artifacts
}

// Edges returns the module's dependency set in insertion order.
func (m *Module) Edges() []DependencyEdge {
	return m.edges
}

// ModuleDeps returns the identities of module-kind edges, in insertion order.
func (m *Module) ModuleDeps() []ModuleID {
	var ids []ModuleID
	for _, e := range m.edges {
		if e.Kind == ModuleDependency {
			ids = append(ids, e.Target)
		}
	}
	return ids
}

// LinkFlags returns the flags of link-flag edges, in insertion order.
func (m *Module) LinkFlags() []string {
	var flags []string
	for _, e := range m.edges {
		if e.Kind == LinkFlagDependency {
			flags = append(flags, e.Flag)
		}
	}
	return flags
}

// ConfigDeps returns the module's configuration-time staleness
// dependencies in insertion order.
func (m *Module) ConfigDeps() []string {
	return m.configDeps
}

// Installable reports whether the module's artifact should be registered
// for installation. Test-only builds are never installed.
func (m *Module) Installable() bool {
	return !m.ExcludeFromInstall && m.Config != ConfigTesting
}

func (m *Module) mustBeMutable() {
	if m.finalized {
		panic("model: mutation of finalized module " + string(m.ID))
	}
}
