// Package codegen defines the external code-generator contract and the
// invoker that drives it once per descriptor.
//
// The generator itself is an external collaborator: it parses a descriptor
// and materializes the header/source pair at the paths it is given. The
// core only knows the invocation contract, so tests substitute a recording
// implementation and production shells out to the configured binary.
package codegen

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/vk/modforge/internal/ctxlog"
	"github.com/vk/modforge/internal/model"
)

// Generator is the external code-generation contract: one call per
// descriptor, side effect of writing the two output files. A failure is
// fatal to the owning module's configuration.
type Generator interface {
	Generate(ctx context.Context, typeTag model.DescriptorType, descriptorPath, headerPath, sourcePath string) error
}

// CommandGenerator invokes an external generator binary. The binary
// receives the type tag, the resolved descriptor path, and the two target
// paths as flags.
type CommandGenerator struct {
	// Bin is the generator executable.
	Bin string
	// ExtraArgs are prepended to every invocation, before the per-call flags.
	ExtraArgs []string
}

// NewCommandGenerator creates a generator backed by the given binary.
func NewCommandGenerator(bin string, extraArgs ...string) *CommandGenerator {
	return &CommandGenerator{Bin: bin, ExtraArgs: extraArgs}
}

// Generate implements the Generator interface.
func (g *CommandGenerator) Generate(ctx context.Context, typeTag model.DescriptorType, descriptorPath, headerPath, sourcePath string) error {
	logger := ctxlog.FromContext(ctx)

	args := append([]string{}, g.ExtraArgs...)
	args = append(args,
		"--type", typeTag.Tag(),
		"--input", descriptorPath,
		"--header", headerPath,
		"--source", sourcePath,
	)

	logger.Debug("Invoking external generator.", "bin", g.Bin, "descriptor", descriptorPath)
	cmd := exec.CommandContext(ctx, g.Bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("generator %s failed for %s: %w: %s", g.Bin, descriptorPath, err, output)
	}
	return nil
}
