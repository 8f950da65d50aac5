// Package classify splits a module's raw input list into code-generation
// descriptors and literal compiled sources, and infers each descriptor's
// kind from the closed set of descriptor types.
package classify

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/modforge/internal/model"
)

// descriptorSuffix marks a file as a code-generation input. A descriptor
// file is named "<base><Tag>Ai.xml" where Tag is one of the descriptor
// types.
const descriptorSuffix = "Ai.xml"

// IsDescriptor reports whether the path names a code-generation descriptor.
func IsDescriptor(path string) bool {
	return strings.HasSuffix(filepath.Base(path), descriptorSuffix)
}

// Partition splits raw inputs into descriptors and literal sources,
// preserving the input order within each list. Unrecognized extensions are
// literal sources: the permissive default is deliberate, so plain headers
// and sources never need annotation.
func Partition(inputs []string) (descriptors, sources []string) {
	for _, in := range inputs {
		if IsDescriptor(in) {
			descriptors = append(descriptors, in)
		} else {
			sources = append(sources, in)
		}
	}
	return descriptors, sources
}

// Describe infers the descriptor's type and derives its base name. The
// inference is total over the closed type set: a descriptor whose name
// matches no known tag fails with model.ErrUnknownDescriptorType, which
// aborts configuration for the owning module.
func Describe(path string) (model.Descriptor, error) {
	name := filepath.Base(path)
	stem, ok := strings.CutSuffix(name, descriptorSuffix)
	if !ok {
		return model.Descriptor{}, fmt.Errorf("%s is not a descriptor file: %w", path, model.ErrUnknownDescriptorType)
	}

	for _, typ := range model.DescriptorTypes() {
		base, ok := strings.CutSuffix(stem, typ.Tag())
		if ok && base != "" {
			return model.Descriptor{Path: path, Type: typ, BaseName: base}, nil
		}
	}
	return model.Descriptor{}, fmt.Errorf("cannot infer type of descriptor %s: %w", path, model.ErrUnknownDescriptorType)
}
