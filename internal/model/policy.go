package model

import "fmt"

// OutputPolicy selects where generated artifacts are written.
type OutputPolicy int

const (
	// SourceTree writes generated files next to the descriptor that
	// produced them.
	SourceTree OutputPolicy = iota
	// BuildTree writes generated files into a separate build-output
	// directory, mirroring the module's location.
	BuildTree
)

// String implements fmt.Stringer.
func (p OutputPolicy) String() string {
	if p == SourceTree {
		return "source-tree"
	}
	return "build-tree"
}

// ParseOutputPolicy converts a configuration string into an OutputPolicy.
func ParseOutputPolicy(s string) (OutputPolicy, error) {
	switch s {
	case "source-tree":
		return SourceTree, nil
	case "build-tree":
		return BuildTree, nil
	default:
		return SourceTree, fmt.Errorf("invalid output policy %q: must be 'source-tree' or 'build-tree'", s)
	}
}

// BuildConfig is the active build-configuration tag for a pass.
type BuildConfig int

const (
	// ConfigNormal is the default configuration.
	ConfigNormal BuildConfig = iota
	// ConfigTesting marks test-only builds. Modules assembled under it are
	// never installed, regardless of their exclusion flag.
	ConfigTesting
)

// String implements fmt.Stringer.
func (c BuildConfig) String() string {
	if c == ConfigTesting {
		return "testing"
	}
	return "normal"
}

// ParseBuildConfig converts a configuration string into a BuildConfig.
func ParseBuildConfig(s string) (BuildConfig, error) {
	switch s {
	case "normal":
		return ConfigNormal, nil
	case "testing":
		return ConfigTesting, nil
	default:
		return ConfigNormal, fmt.Errorf("invalid build config %q: must be 'normal' or 'testing'", s)
	}
}

// Kind is the shape of a module's compiled output.
type Kind int

const (
	// Library produces a static library artifact.
	Library Kind = iota
	// Executable produces a linked binary.
	Executable
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == Executable {
		return "executable"
	}
	return "library"
}

// ParseKind converts a manifest string into a Kind. The empty string
// defaults to Library.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "library":
		return Library, nil
	case "executable":
		return Executable, nil
	default:
		return Library, fmt.Errorf("invalid module kind %q: must be 'library' or 'executable'", s)
	}
}
