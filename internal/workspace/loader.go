package workspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/modforge/internal/ctxlog"
	"github.com/vk/modforge/internal/fsutil"
	"github.com/vk/modforge/internal/model"
)

// Loader loads a workspace model from a root directory. The interface
// exists so the app stays agnostic of the manifest format.
type Loader interface {
	Load(ctx context.Context, root string) (*Model, error)
}

// HCLLoader is the HCL implementation of Loader.
type HCLLoader struct{}

// NewLoader creates a new HCL workspace loader.
func NewLoader() *HCLLoader {
	return &HCLLoader{}
}

// Default settings applied when the workspace block omits them.
const (
	defaultBuildDir  = "build"
	defaultGenerator = "autocoder"
)

// Load walks the root for .hcl manifests, decodes every workspace and
// module block, and merges them into a single Model.
func (l *HCLLoader) Load(ctx context.Context, root string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve workspace root %s: %w", root, err)
	}

	manifests, err := fsutil.FindFilesByExtension(absRoot, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("cannot scan workspace %s: %w", root, err)
	}
	logger.Debug("Discovered manifests.", "root", absRoot, "count", len(manifests))
	if len(manifests) == 0 {
		return nil, fmt.Errorf("workspace %s contains no .hcl manifests", root)
	}

	m := &Model{
		Root: absRoot,
		Settings: Settings{
			OutputPolicy: model.BuildTree,
			BuildConfig:  model.ConfigNormal,
			BuildDir:     defaultBuildDir,
			GeneratorBin: defaultGenerator,
		},
	}

	parser := hclparse.NewParser()
	var workspaceSeen string

	for _, manifest := range manifests {
		file, diags := parser.ParseHCLFile(manifest)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", manifest, diags)
		}

		var decoded fileRoot
		if diags := gohcl.DecodeBody(file.Body, nil, &decoded); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", manifest, diags)
		}

		relManifest, err := filepath.Rel(absRoot, manifest)
		if err != nil {
			return nil, fmt.Errorf("manifest %s outside workspace root: %w", manifest, err)
		}
		relManifest = filepath.ToSlash(relManifest)

		for _, ws := range decoded.Workspaces {
			if workspaceSeen != "" {
				return nil, fmt.Errorf("duplicate workspace block in %s (already declared in %s)", relManifest, workspaceSeen)
			}
			workspaceSeen = relManifest
			if err := l.applyWorkspace(m, ws); err != nil {
				return nil, fmt.Errorf("invalid workspace block in %s: %w", relManifest, err)
			}
		}

		for _, mod := range decoded.Modules {
			decl, err := l.translateModule(mod, relManifest)
			if err != nil {
				return nil, fmt.Errorf("invalid module %q in %s: %w", mod.Name, relManifest, err)
			}
			m.Modules = append(m.Modules, decl)
		}
	}

	m.index()
	logger.Debug("Workspace loaded.", "modules", len(m.Modules), "policy", m.Settings.OutputPolicy.String(), "config", m.Settings.BuildConfig.String())
	return m, nil
}

// applyWorkspace merges a workspace block into the model's settings.
func (l *HCLLoader) applyWorkspace(m *Model, ws *workspaceBlock) error {
	if ws.OutputPolicy != "" {
		policy, err := model.ParseOutputPolicy(ws.OutputPolicy)
		if err != nil {
			return err
		}
		m.Settings.OutputPolicy = policy
	}
	if ws.BuildConfig != "" {
		cfg, err := model.ParseBuildConfig(ws.BuildConfig)
		if err != nil {
			return err
		}
		m.Settings.BuildConfig = cfg
	}
	if ws.BuildDir != "" {
		m.Settings.BuildDir = ws.BuildDir
	}
	if ws.Generator != "" {
		m.Settings.GeneratorBin = ws.Generator
	}

	defines, err := flattenDefines(ws.Defines)
	if err != nil {
		return err
	}
	m.Settings.Defines = defines
	return nil
}

// translateModule converts a raw module block into a ModuleDecl.
func (l *HCLLoader) translateModule(mod *moduleBlock, relManifest string) (*ModuleDecl, error) {
	if _, err := model.ParseKind(mod.Kind); err != nil {
		return nil, err
	}

	defines, err := flattenDefines(mod.Defines)
	if err != nil {
		return nil, err
	}

	dir := filepath.ToSlash(filepath.Dir(relManifest))
	return &ModuleDecl{
		Name:               mod.Name,
		Dir:                dir,
		Kind:               mod.Kind,
		Inputs:             mod.Inputs,
		Deps:               mod.Deps,
		LinkFlags:          mod.LinkFlags,
		ExcludeFromInstall: mod.ExcludeFromInstall,
		Defines:            defines,
		Manifest:           relManifest,
	}, nil
}
