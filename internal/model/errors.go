package model

import "errors"

// Configuration-time failures. All of them are fatal for the module being
// assembled: no partial or degraded module is ever handed to the compile
// and link stage.
var (
	// ErrUnknownDescriptorType indicates that a descriptor's code-generation
	// kind could not be inferred from its file name.
	ErrUnknownDescriptorType = errors.New("unknown descriptor type")

	// ErrUnresolvedDependency indicates that a mined or declared dependency
	// identifier does not map to any module known to the workspace. Failing
	// here is deliberate: a silently dropped dependency only resurfaces much
	// later as a confusing link error.
	ErrUnresolvedDependency = errors.New("unresolved dependency")

	// ErrArtifactNameCollision indicates that two descriptors map to the same
	// generated artifact path. Later-stage tools would silently overwrite one
	// of the two outputs, so this is rejected at configuration time.
	ErrArtifactNameCollision = errors.New("generated artifact name collision")
)
