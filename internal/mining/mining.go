// Package mining defines the dependency-mining collaborator contract: the
// external tool that extracts inter-module dependency identifiers from a
// descriptor's content.
//
// The core's control flow stays pure by modeling the call as a synchronous
// collaborator returning a value. The Miner interface is the single place
// tests substitute a fake.
package mining

import (
	"context"

	"github.com/vk/modforge/internal/model"
)

// Miner extracts the dependency identifiers a descriptor references: names
// of other descriptor types or modules it imports. Identifiers are returned
// in document order and may contain duplicates; the resolver deduplicates.
type Miner interface {
	MineDependencies(ctx context.Context, descriptorPath string, id model.ModuleID, typeTag model.DescriptorType) ([]string, error)
}
