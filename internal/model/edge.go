package model

// EdgeKind distinguishes the two kinds of dependency a module can carry.
type EdgeKind int

const (
	// ModuleDependency is an edge to another module: it contributes both a
	// build-order dependency and a link dependency on that module's output.
	ModuleDependency EdgeKind = iota
	// LinkFlagDependency is a non-module link requirement, passed through to
	// the link step verbatim (e.g. "-lm").
	LinkFlagDependency
)

// DependencyEdge is one entry in a module's dependency set. Exactly one of
// Target or Flag is populated, according to Kind.
type DependencyEdge struct {
	Kind   EdgeKind
	Target ModuleID
	Flag   string
}

// ModuleEdge returns a module-kind edge to the given identity.
func ModuleEdge(target ModuleID) DependencyEdge {
	return DependencyEdge{Kind: ModuleDependency, Target: target}
}

// LinkFlagEdge returns a link-flag edge carrying the given flag.
func LinkFlagEdge(flag string) DependencyEdge {
	return DependencyEdge{Kind: LinkFlagDependency, Flag: flag}
}

// key returns the dedup key for the edge. Two edges with the same key are
// the same dependency; merging keeps the first occurrence's position.
func (e DependencyEdge) key() string {
	if e.Kind == ModuleDependency {
		return "module\x00" + string(e.Target)
	}
	return "flag\x00" + e.Flag
}
