package model

// GeneratedArtifact is the header/source pair the external generator
// produces for one descriptor. The paths are a pure function of
// (output root, base name, type tag); see the naming package. An artifact
// is owned by exactly one descriptor and never mutated after creation.
type GeneratedArtifact struct {
	// Header is the generated header file path.
	Header string
	// Source is the generated source file path.
	Source string
	// Descriptor is the path of the descriptor the pair was generated from.
	Descriptor string
}
