package workspace

import (
	"path"
	"path/filepath"

	"github.com/vk/modforge/internal/model"
)

// Settings is the workspace-wide configuration surface.
type Settings struct {
	OutputPolicy model.OutputPolicy
	BuildConfig  model.BuildConfig
	// BuildDir is the build-output directory, relative to the workspace root.
	BuildDir string
	// GeneratorBin is the external generator executable.
	GeneratorBin string
	// Defines is the global compile-definition set, broadcast to every
	// module's sources.
	Defines []string
}

// ModuleDecl is one declared build unit, as read from its manifest.
type ModuleDecl struct {
	// Name is the module block's label.
	Name string
	// Dir is the module's workspace-relative directory: the directory of
	// the manifest that declared it.
	Dir string
	// Kind is "library" (default) or "executable".
	Kind string
	// Inputs are descriptor and source paths relative to Dir.
	Inputs []string
	// Deps are hand-authored module dependencies, by name or location.
	Deps []string
	// LinkFlags are hand-authored link-flag dependencies.
	LinkFlags []string
	// ExcludeFromInstall excludes the module from default install.
	ExcludeFromInstall bool
	// Defines are module-local compile definitions, appended to the
	// global set.
	Defines []string
	// Manifest is the declaring manifest file, workspace-relative.
	Manifest string
}

// Model is the loaded, format-agnostic view of one workspace.
type Model struct {
	// Root is the workspace root directory.
	Root string
	// Settings is the merged global configuration.
	Settings Settings
	// Modules lists every declaration in manifest walk order.
	Modules []*ModuleDecl

	byName map[string]*ModuleDecl
	byDir  map[string]*ModuleDecl
}

// NewModel assembles a Model from already-translated declarations and
// indexes it for lookups.
func NewModel(root string, settings Settings, modules []*ModuleDecl) *Model {
	m := &Model{Root: root, Settings: settings, Modules: modules}
	m.index()
	return m
}

// index builds the lookup maps. First occurrence wins on a directory so
// that lookups agree with the identity registry's dedup rule.
func (m *Model) index() {
	m.byName = make(map[string]*ModuleDecl, len(m.Modules))
	m.byDir = make(map[string]*ModuleDecl, len(m.Modules))
	for _, decl := range m.Modules {
		if _, ok := m.byName[decl.Name]; !ok {
			m.byName[decl.Name] = decl
		}
		if _, ok := m.byDir[decl.Dir]; !ok {
			m.byDir[decl.Dir] = decl
		}
	}
}

// LocateModule resolves a dependency identifier to a declared module. An
// identifier may be a module name, a module location, or a descriptor path
// inside a module's directory (the common shape mined from imports).
func (m *Model) LocateModule(identifier string) (*ModuleDecl, bool) {
	if decl, ok := m.byName[identifier]; ok {
		return decl, true
	}

	clean := path.Clean(filepath.ToSlash(identifier))
	if decl, ok := m.byDir[clean]; ok {
		return decl, true
	}

	// A descriptor path resolves to the module owning its directory.
	if dir := path.Dir(clean); dir != "." && dir != clean {
		if decl, ok := m.byDir[dir]; ok {
			return decl, true
		}
	}
	return nil, false
}

// ModuleByDir returns the declaration at the given workspace-relative
// directory, if any.
func (m *Model) ModuleByDir(dir string) (*ModuleDecl, bool) {
	decl, ok := m.byDir[path.Clean(filepath.ToSlash(dir))]
	return decl, ok
}
