// Package emit defines the build plan handed to the downstream build tool
// and its YAML serialization.
//
// The plan is the whole boundary: per module one compiled unit (sources,
// broadcast defines, link dependencies, build-order dependencies,
// configuration-time staleness inputs), plus the install registry. Units
// appear in topological order so the downstream tool can schedule them
// front to back.
package emit

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Plan is the complete output of one configuration pass.
type Plan struct {
	// Workspace is the absolute workspace root.
	Workspace string `yaml:"workspace"`
	// BuildConfig is the active build-configuration tag.
	BuildConfig string `yaml:"build_config"`
	// OutputPolicy records where generated artifacts were placed.
	OutputPolicy string `yaml:"output_policy"`
	// Units are the compiled units in topological (build) order.
	Units []Unit `yaml:"units"`
	// Install is the install registry: one record per installable module.
	Install []InstallRecord `yaml:"install"`
}

// Unit is one module's compiled output.
type Unit struct {
	Module string `yaml:"module"`
	Kind   string `yaml:"kind"`
	// Output is the artifact path the build tool must produce.
	Output string `yaml:"output"`
	// Sources is the final compiled source list, generated pairs first.
	Sources []string `yaml:"sources"`
	// Defines is the compile-definition set broadcast to every source.
	Defines []string `yaml:"defines,omitempty"`
	// Link is the link-level dependency list: dependency artifacts and
	// propagated link flags, in deterministic order.
	Link []string `yaml:"link,omitempty"`
	// DependsOn lists the modules that must be built before this one.
	DependsOn []string `yaml:"depends_on,omitempty"`
	// StaleIf lists files whose change invalidates configuration itself,
	// not just compilation.
	StaleIf []string `yaml:"stale_if,omitempty"`
}

// InstallRecord registers one artifact for installation.
type InstallRecord struct {
	Module      string `yaml:"module"`
	Artifact    string `yaml:"artifact"`
	Destination string `yaml:"destination"`
}

// UnitFor returns the unit for the given module ID, or nil.
func (p *Plan) UnitFor(module string) *Unit {
	for i := range p.Units {
		if p.Units[i].Module == module {
			return &p.Units[i]
		}
	}
	return nil
}

// Write serializes the plan as YAML.
func (p *Plan) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("cannot encode build plan: %w", err)
	}
	return enc.Close()
}

// Read parses a serialized plan. The downstream tool side of the boundary
// uses this; tests use it to assert on emitted plans.
func Read(r io.Reader) (*Plan, error) {
	var p Plan
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("cannot decode build plan: %w", err)
	}
	return &p, nil
}
