package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vk/modforge/internal/model"
)

// GeneratorCall records one invocation of the recording generator.
type GeneratorCall struct {
	Type       model.DescriptorType
	Descriptor string
	Header     string
	Source     string
}

// RecordingGenerator implements codegen.Generator for tests. It honors the
// contract's side effect by materializing stub header/source files, and
// records every call.
type RecordingGenerator struct {
	mu    sync.Mutex
	calls []GeneratorCall
	// Fail, when non-nil, is returned from every Generate call.
	Fail error
}

// NewRecordingGenerator creates an empty recording generator.
func NewRecordingGenerator() *RecordingGenerator {
	return &RecordingGenerator{}
}

// Generate implements the codegen.Generator interface.
func (g *RecordingGenerator) Generate(ctx context.Context, typeTag model.DescriptorType, descriptorPath, headerPath, sourcePath string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Fail != nil {
		return g.Fail
	}

	for _, out := range []string{headerPath, sourcePath} {
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return err
		}
		stub := fmt.Sprintf("// generated from %s\n", descriptorPath)
		if err := os.WriteFile(out, []byte(stub), 0644); err != nil {
			return err
		}
	}

	g.calls = append(g.calls, GeneratorCall{
		Type:       typeTag,
		Descriptor: descriptorPath,
		Header:     headerPath,
		Source:     sourcePath,
	})
	return nil
}

// Calls returns a copy of the recorded invocations.
func (g *RecordingGenerator) Calls() []GeneratorCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]GeneratorCall, len(g.calls))
	copy(out, g.calls)
	return out
}

// StaticMiner implements mining.Miner from a fixed table keyed by the
// descriptor's base file name.
type StaticMiner struct {
	Deps map[string][]string
}

// MineDependencies implements the mining.Miner interface.
func (m *StaticMiner) MineDependencies(ctx context.Context, descriptorPath string, id model.ModuleID, typeTag model.DescriptorType) ([]string, error) {
	return m.Deps[filepath.Base(descriptorPath)], nil
}
