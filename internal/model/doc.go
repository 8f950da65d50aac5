// Package model defines the core data types of the module-assembly layer:
// modules, code-generation descriptors, generated artifacts, dependency
// edges, and the configuration-time error taxonomy.
//
// The types here are deliberately free of I/O and of any knowledge about
// manifests, generators, or the downstream build tool. Packages higher in
// the stack (classify, naming, codegen, resolver, assembler) create and
// mutate these values during a configuration pass; once a Module has been
// finalized it is handed off read-only.
package model
