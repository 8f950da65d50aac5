// Package dag provides the directed acyclic graph used to validate and
// order cross-module build dependencies before the plan is emitted.
//
// The assembler adds one node per module and one edge per module-kind
// dependency. Cycle detection runs before plan emission because a cyclic
// dependency graph cannot be scheduled by the downstream build tool; the
// deterministic topological order drives stable plan output and link
// closure computation.
package dag
