// Package workspace loads the HCL build manifests that declare modules and
// workspace-wide settings, and exposes them as a format-agnostic model.
//
// A workspace is a directory tree containing descriptor and source files
// plus .hcl manifests. Each manifest may declare any number of `module`
// blocks; at most one `workspace` block per workspace carries the global
// configuration surface (output policy, build configuration tag, global
// defines, generator command). A module's location — and therefore its
// identity — is the directory of the manifest that declares it.
package workspace
