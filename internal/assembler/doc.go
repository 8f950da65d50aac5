// Package assembler turns declared modules into a validated build plan.
//
// Assembly runs in two phases, mirroring how the downstream build tool
// consumes the result. Per module: classify inputs, name and generate
// artifacts, resolve mined and declared dependencies. Across modules:
// build the dependency graph, reject cycles, compute link closures in
// topological order, and emit one compiled unit plus install record per
// module.
//
// Per-module assembly is synchronous: every step consumes outputs of the
// previous one, and a module either completes or fails fatally. Nothing
// here compiles or links; the assembler only produces a correct, acyclic
// graph for the downstream tool to schedule against.
package assembler
