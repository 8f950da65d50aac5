// Package naming derives the deterministic generated-artifact pair for a
// descriptor. Artifact paths are a pure function of (output root, base
// name, type tag): two descriptors with identical base name and type map to
// identical paths, which the assembler rejects as a collision rather than
// resolving silently.
package naming

import (
	"path/filepath"

	"github.com/vk/modforge/internal/model"
)

// Generated file name parts: "<base><Tag>Ac.hpp" / "<base><Tag>Ac.cpp".
const (
	artifactInfix   = "Ac"
	headerExtension = ".hpp"
	sourceExtension = ".cpp"
)

// OutputRoot selects the directory generated artifacts are written to:
// the descriptor's own directory under the source-tree policy, or the
// module's build-output directory under the build-tree policy.
func OutputRoot(policy model.OutputPolicy, descriptorDir, buildDir string) string {
	if policy == model.SourceTree {
		return descriptorDir
	}
	return buildDir
}

// Artifacts computes the header/source pair for a descriptor under the
// given output root.
func Artifacts(d model.Descriptor, outputRoot string) model.GeneratedArtifact {
	stem := d.BaseName + d.Type.Tag() + artifactInfix
	return model.GeneratedArtifact{
		Header:     filepath.Join(outputRoot, stem+headerExtension),
		Source:     filepath.Join(outputRoot, stem+sourceExtension),
		Descriptor: d.Path,
	}
}
